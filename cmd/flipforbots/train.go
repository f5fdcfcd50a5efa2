package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/flipforbots/internal/bot"
	"github.com/lox/flipforbots/internal/randutil"
	"github.com/lox/flipforbots/internal/rl"
)

// TrainCmd trains a Q-learning bot against the scripted bots
type TrainCmd struct {
	Out             string   `required:"" help:"Path to write the trained q-table"`
	Episodes        int      `default:"20000" help:"Number of training episodes"`
	EvalEvery       int      `default:"1000" help:"Greedy evaluation interval in episodes (0 disables)"`
	EvalEpisodes    int      `default:"500" help:"Episodes per greedy evaluation"`
	ProgressEvery   int      `default:"0" help:"Log progress every N episodes (0 => episodes/100)"`
	Opponents       []string `default:"conservative,smart" help:"Bot kinds for the opponent seats"`
	Curriculum      bool     `help:"Train in stages against progressively harder opponents (overrides --opponents)"`
	Target          int      `default:"200" help:"Total score that ends the game"`
	Seed            int64    `default:"0" help:"RNG seed (0 for random)"`
	Alpha           float64  `default:"0.1" help:"Learning rate"`
	Gamma           float64  `default:"0.95" help:"Discount factor"`
	Epsilon         float64  `default:"1.0" help:"Initial exploration rate"`
	EpsilonMin      float64  `default:"0.05" help:"Exploration rate floor"`
	EpsilonDecay    float64  `default:"0.998" help:"Exploration decay per episode"`
	CheckpointPath  string   `help:"Path to write periodic q-table checkpoints"`
	CheckpointEvery int      `default:"0" help:"Checkpoint interval in episodes (0 disables)"`
	ResumeFrom      string   `help:"Resume training from an existing q-table"`
	Debug           bool     `help:"Enable debug logging"`
}

// trainingStage is one block of episodes against a fixed opponent line-up
type trainingStage struct {
	Kinds    []string
	Episodes int
}

// curriculumStages splits the episode budget easy-to-hard, weighted toward
// the harder opponents.
func curriculumStages(episodes int) ([]trainingStage, error) {
	first := episodes * 25 / 100
	second := episodes * 35 / 100
	third := episodes - first - second
	if first < 1 || second < 1 || third < 1 {
		return nil, fmt.Errorf("curriculum training needs more episodes (got %d)", episodes)
	}
	return []trainingStage{
		{Kinds: []string{"rand", "rand"}, Episodes: first},
		{Kinds: []string{"conservative", "conservative"}, Episodes: second},
		{Kinds: []string{"threshold", "threshold"}, Episodes: third},
	}, nil
}

func (c *TrainCmd) Run() error {
	logger := setupLogger(c.Debug)

	table := rl.NewQTable()
	if c.ResumeFrom != "" {
		loaded, err := rl.LoadQTable(c.ResumeFrom)
		if err != nil {
			return fmt.Errorf("load q-table: %w", err)
		}
		table = loaded
		logger.Info("resuming from q-table", "path", c.ResumeFrom, "states", table.Len())
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		logger.Info("using random seed", "seed", seed)
	}

	agentCfg := rl.DefaultConfig()
	agentCfg.Alpha = c.Alpha
	agentCfg.Gamma = c.Gamma
	agentCfg.Epsilon = c.Epsilon
	agentCfg.EpsilonMin = c.EpsilonMin
	agentCfg.EpsilonDecay = c.EpsilonDecay

	stages := []trainingStage{{Kinds: c.Opponents, Episodes: c.Episodes}}
	if c.Curriculum {
		var err error
		stages, err = curriculumStages(c.Episodes)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	for i, stage := range stages {
		if c.Curriculum {
			logger.Info("curriculum stage",
				"stage", i+1,
				"of", len(stages),
				"opponents", stage.Kinds,
				"episodes", stage.Episodes)
		}

		trainer, err := c.newStageTrainer(logger, table, stage, agentCfg, seed+int64(i)<<32)
		if err != nil {
			return err
		}
		if err := trainer.Run(ctx, progressLogger(logger)); err != nil {
			return err
		}

		// Exploration and learning rate keep decaying across stages
		// rather than resetting with each new line-up.
		agentCfg.Epsilon = trainer.Agent().Epsilon()
		agentCfg.Alpha = trainer.Agent().Alpha()
	}
	logger.Info("training complete",
		"episodes", c.Episodes,
		"states", table.Len(),
		"elapsed", time.Since(start))

	if err := table.Save(c.Out); err != nil {
		return fmt.Errorf("save q-table: %w", err)
	}
	logger.Info("q-table saved", "path", c.Out)
	return nil
}

func (c *TrainCmd) newStageTrainer(logger *log.Logger, table *rl.QTable, stage trainingStage, agentCfg rl.Config, seed int64) (*rl.Trainer, error) {
	cfg := rl.DefaultTrainerConfig()
	cfg.Episodes = stage.Episodes
	cfg.EvalEvery = c.EvalEvery
	cfg.EvalEpisodes = c.EvalEpisodes
	cfg.ProgressEvery = c.ProgressEvery
	if cfg.ProgressEvery == 0 && stage.Episodes >= 100 {
		cfg.ProgressEvery = stage.Episodes / 100
	}
	cfg.TargetScore = c.Target
	cfg.Seed = seed
	cfg.CheckpointPath = c.CheckpointPath
	cfg.CheckpointEvery = c.CheckpointEvery
	cfg.Agent = agentCfg

	// Opponents share one RNG; game decks get per-episode seeds
	rng := randutil.New(seed)
	for i, kind := range stage.Kinds {
		b, err := bot.New(kind, rng, logger)
		if err != nil {
			return nil, err
		}
		cfg.Opponents = append(cfg.Opponents, b)
		cfg.OpponentNames = append(cfg.OpponentNames, fmt.Sprintf("%s-%d", kind, i+1))
	}

	return rl.NewTrainer(table, cfg, logger)
}

func progressLogger(logger *log.Logger) func(rl.Progress) {
	return func(p rl.Progress) {
		fields := []interface{}{
			"episode", p.Episode,
			"epsilon", fmt.Sprintf("%.3f", p.Epsilon),
			"alpha", fmt.Sprintf("%.4f", p.Alpha),
			"states", p.States,
			"avgReward", fmt.Sprintf("%.2f", p.AvgReward),
		}
		if p.WinRate >= 0 {
			fields = append(fields, "winRate", fmt.Sprintf("%.1f%%", p.WinRate*100))
		}
		logger.Info("training progress", fields...)
	}
}
