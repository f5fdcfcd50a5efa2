package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/flipforbots/internal/game"
	"github.com/lox/flipforbots/internal/rl"
)

// QBot plays greedily from a trained Q-table.
type QBot struct {
	table  *rl.QTable
	logger *log.Logger
}

// NewQBot creates a bot over an already-loaded table.
func NewQBot(table *rl.QTable, logger *log.Logger) *QBot {
	return &QBot{table: table, logger: logger.WithPrefix("qbot")}
}

// NewQBotFromFile loads a table saved by a training run.
func NewQBotFromFile(path string, logger *log.Logger) (*QBot, error) {
	table, err := rl.LoadQTable(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded q-table", "path", path, "states", table.Len())
	return NewQBot(table, logger), nil
}

func (b *QBot) ChooseAction(view game.TurnView) game.Action {
	state := rl.StateFromView(view)
	action := b.table.Best(state)
	b.logger.Debug("q-table lookup",
		"state", state.String(),
		"qHit", b.table.Get(state, game.ActionHit),
		"qStay", b.table.Get(state, game.ActionStay),
		"action", action)
	return action
}
