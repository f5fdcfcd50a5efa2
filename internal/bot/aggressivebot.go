package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/flipforbots/internal/deck"
	"github.com/lox/flipforbots/internal/game"
)

const aggressiveThreshold = 25

// AggressiveBot chases big hands and the seven-unique bonus, banking only
// when its hand is already worth a lot.
type AggressiveBot struct {
	logger *log.Logger
}

// NewAggressiveBot creates a new AggressiveBot instance.
func NewAggressiveBot(logger *log.Logger) *AggressiveBot {
	return &AggressiveBot{logger: logger.WithPrefix("aggressivebot")}
}

func (b *AggressiveBot) ChooseAction(view game.TurnView) game.Action {
	if view.BankScore >= aggressiveThreshold {
		return game.ActionStay
	}
	// One card from the bonus with a big hand at stake: take the points.
	if uniqueNumbers(view.Hand) >= 6 && view.BankScore >= 20 {
		return game.ActionStay
	}
	return game.ActionHit
}

func uniqueNumbers(hand []deck.Card) int {
	var mask uint16
	for _, c := range hand {
		if c.Type == deck.Number {
			mask |= 1 << c.Value
		}
	}
	n := 0
	for ; mask != 0; mask &= mask - 1 {
		n++
	}
	return n
}
