package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/flipforbots/internal/game"
	"github.com/lox/flipforbots/internal/solver"
)

// SolverBot plays each turn optimally by running the exact expected-value
// search over the cards still in the deck.
type SolverBot struct {
	solver *solver.Solver
	logger *log.Logger
}

// NewSolverBot creates a new SolverBot instance.
func NewSolverBot(logger *log.Logger) *SolverBot {
	return &SolverBot{
		solver: solver.New(logger),
		logger: logger.WithPrefix("solverbot"),
	}
}

func (b *SolverBot) ChooseAction(view game.TurnView) game.Action {
	eval := b.solver.Evaluate(view.Hand, view.Remaining)
	b.logger.Debug("evaluated turn",
		"bank", eval.Bank,
		"hitEV", eval.HitEV,
		"action", eval.Action,
		"states", eval.States)
	if eval.Action == solver.Hit {
		return game.ActionHit
	}
	return game.ActionStay
}
