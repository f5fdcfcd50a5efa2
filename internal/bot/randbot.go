package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/flipforbots/internal/game"
)

// RandBot flips a coin every turn. Useful as a baseline opponent and for
// fuzzing the engine.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance.
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger.WithPrefix("randbot")}
}

func (b *RandBot) ChooseAction(view game.TurnView) game.Action {
	if b.rng.IntN(2) == 0 {
		return game.ActionHit
	}
	return game.ActionStay
}
