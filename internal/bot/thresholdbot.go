package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/flipforbots/internal/game"
)

const (
	// DefaultThreshold is a middle-of-the-road banking point.
	DefaultThreshold = 15

	// ConservativeThreshold banks early and almost never busts.
	ConservativeThreshold = 10
)

// ThresholdBot hits until its hand is worth at least the threshold, then
// banks. It ignores the deck entirely.
type ThresholdBot struct {
	threshold int
	logger    *log.Logger
}

// NewThresholdBot creates a bot that banks at the given hand score.
func NewThresholdBot(threshold int, logger *log.Logger) *ThresholdBot {
	return &ThresholdBot{threshold: threshold, logger: logger.WithPrefix("thresholdbot")}
}

func (b *ThresholdBot) ChooseAction(view game.TurnView) game.Action {
	if view.BankScore < b.threshold {
		return game.ActionHit
	}
	return game.ActionStay
}
