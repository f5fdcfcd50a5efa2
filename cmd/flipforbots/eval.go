package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/flipforbots/internal/display"
	"github.com/lox/flipforbots/internal/simulator"
)

// EvalCmd runs a trained q-table through full games and reports statistics
type EvalCmd struct {
	QTable    string   `required:"" help:"Path to the trained q-table"`
	Games     int      `default:"10000" help:"Number of games to simulate"`
	Opponents []string `default:"conservative,smart" help:"Bot kinds for the remaining seats"`
	Target    int      `default:"200" help:"Total score that ends the game"`
	Seed      int64    `default:"0" help:"RNG seed (0 for random)"`
	Workers   int      `default:"0" help:"Concurrent games (0 uses all CPUs)"`
	Debug     bool     `help:"Enable debug logging"`
}

func (c *EvalCmd) Run() error {
	logger := setupLogger(c.Debug)

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		logger.Info("using random seed", "seed", seed)
	}

	sim, err := simulator.New(simulator.Config{
		Games:       c.Games,
		Subject:     "q",
		QTablePath:  c.QTable,
		Opponents:   c.Opponents,
		TargetScore: c.Target,
		Seed:        seed,
		Workers:     c.Workers,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	styles := display.NewStyles()
	fmt.Println(styles.RenderSummary(stats, "q", c.Opponents))
	return nil
}
