package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/flipforbots/internal/tui"
)

// PlayCmd starts an interactive terminal game
type PlayCmd struct {
	Bots   []string `default:"conservative,smart" help:"Bot kinds for the opponent seats"`
	Target int      `default:"200" help:"Total score that ends the game"`
	Seed   int64    `default:"0" help:"RNG seed (0 for random)"`
	Debug  bool     `help:"Write debug logs to flipforbots.log"`
}

func (c *PlayCmd) Run() error {
	logger := quietLogger()
	if c.Debug {
		f, err := os.OpenFile("flipforbots.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{
			Level:           log.DebugLevel,
			ReportTimestamp: true,
		})
	}

	return tui.Run(tui.Config{
		Bots:        c.Bots,
		TargetScore: c.Target,
		Seed:        c.Seed,
		Logger:      logger,
	})
}
