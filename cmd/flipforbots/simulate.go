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

// SimulateCmd runs bot-vs-bot games and prints a statistical summary
type SimulateCmd struct {
	Games     int      `default:"10000" help:"Number of games to simulate"`
	Bot       string   `default:"solver" help:"Bot kind under test (or 'q' with --q-table)"`
	QTable    string   `help:"Path to a trained q-table for the 'q' subject"`
	Opponents []string `default:"conservative,smart" help:"Bot kinds for the remaining seats"`
	Target    int      `default:"200" help:"Total score that ends the game"`
	Seed      int64    `default:"0" help:"RNG seed (0 for random)"`
	Workers   int      `default:"0" help:"Concurrent games (0 uses all CPUs)"`
	Debug     bool     `help:"Enable debug logging"`
}

func (c *SimulateCmd) Run() error {
	logger := setupLogger(c.Debug)

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		logger.Info("using random seed", "seed", seed)
	}

	sim, err := simulator.New(simulator.Config{
		Games:       c.Games,
		Subject:     c.Bot,
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

	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("simulation complete", "games", stats.Games, "elapsed", time.Since(start))

	styles := display.NewStyles()
	fmt.Println(styles.RenderSummary(stats, c.Bot, c.Opponents))
	return nil
}
