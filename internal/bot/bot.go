// Package bot provides the built-in opponents. Each bot implements
// game.Agent and decides only whether to flip another card or bank the
// current hand.
package bot

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/flipforbots/internal/game"
)

// Kinds lists the bot names accepted by New, in rough order of strength.
var Kinds = []string{"rand", "conservative", "threshold", "aggressive", "smart", "solver"}

// New creates a bot by name. Unknown names return an error listing the
// valid kinds.
func New(kind string, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	switch kind {
	case "rand":
		return NewRandBot(rng, logger), nil
	case "conservative":
		return NewThresholdBot(ConservativeThreshold, logger), nil
	case "threshold":
		return NewThresholdBot(DefaultThreshold, logger), nil
	case "aggressive":
		return NewAggressiveBot(logger), nil
	case "smart":
		return NewSmartBot(logger), nil
	case "solver":
		return NewSolverBot(logger), nil
	default:
		return nil, fmt.Errorf("unknown bot kind %q (valid: %v)", kind, Kinds)
	}
}
