package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/flipforbots/internal/deck"
	"github.com/lox/flipforbots/internal/game"
)

// SmartBot is a layered heuristic: it chases the seven-unique bonus, plays
// looser when holding a x2 modifier, and otherwise banks in a middle band
// based on how crowded its hand already is.
type SmartBot struct {
	logger *log.Logger
}

// NewSmartBot creates a new SmartBot instance.
func NewSmartBot(logger *log.Logger) *SmartBot {
	return &SmartBot{logger: logger.WithPrefix("smartbot")}
}

func (b *SmartBot) ChooseAction(view game.TurnView) game.Action {
	unique := uniqueNumbers(view.Hand)
	if unique >= 6 {
		return game.ActionHit
	}
	// Decisions run off the raw number sum so a x2 in hand reads as
	// upside rather than an inflated bank.
	sum := numberSum(view.Hand)
	if hasMultiplier(view.Hand) && sum < 20 {
		return game.ActionHit
	}
	switch {
	case sum < 12:
		return game.ActionHit
	case sum > 20:
		return game.ActionStay
	case unique < 5:
		// Middle band with a sparse hand: another number is unlikely to bust.
		return game.ActionHit
	default:
		return game.ActionStay
	}
}

func numberSum(hand []deck.Card) int {
	sum := 0
	for _, c := range hand {
		if c.Type == deck.Number {
			sum += c.Value
		}
	}
	return sum
}

func hasMultiplier(hand []deck.Card) bool {
	for _, c := range hand {
		if c.Type == deck.Modifier && c.Kind.IsMultiplier() {
			return true
		}
	}
	return false
}
