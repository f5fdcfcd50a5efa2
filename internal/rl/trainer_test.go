package rl

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/flipforbots/internal/game"
)

// bankAt is a minimal opponent for training runs in tests.
type bankAt struct {
	threshold int
}

func (b bankAt) ChooseAction(view game.TurnView) game.Action {
	if view.BankScore < b.threshold {
		return game.ActionHit
	}
	return game.ActionStay
}

func testTrainerConfig() TrainerConfig {
	cfg := DefaultTrainerConfig()
	cfg.Episodes = 20
	cfg.EvalEvery = 10
	cfg.EvalEpisodes = 2
	cfg.ProgressEvery = 10
	cfg.TargetScore = 50 // short games keep the test fast
	cfg.Opponents = []game.Agent{bankAt{15}, bankAt{20}}
	cfg.OpponentNames = []string{"opp1", "opp2"}
	return cfg
}

func TestTrainerRun(t *testing.T) {
	table := NewQTable()
	trainer, err := NewTrainer(table, testTrainerConfig(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewTrainer() error = %v", err)
	}

	var reports []Progress
	if err := trainer.Run(context.Background(), func(p Progress) {
		reports = append(reports, p)
	}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if table.Len() == 0 {
		t.Error("training should populate the table")
	}
	if len(reports) != 2 {
		t.Fatalf("got %d progress reports, want 2", len(reports))
	}
	if reports[len(reports)-1].Episode != 20 {
		t.Errorf("final progress episode = %d, want 20", reports[len(reports)-1].Episode)
	}
	if trainer.Agent().Stats().Updates == 0 {
		t.Error("training should record updates")
	}
}

func TestTrainerCheckpoints(t *testing.T) {
	cfg := testTrainerConfig()
	cfg.EvalEvery = 0
	cfg.CheckpointPath = filepath.Join(t.TempDir(), "checkpoint.json")
	cfg.CheckpointEvery = 10

	trainer, err := NewTrainer(NewQTable(), cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewTrainer() error = %v", err)
	}
	if err := trainer.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	loaded, err := LoadQTable(cfg.CheckpointPath)
	if err != nil {
		t.Fatalf("LoadQTable() error = %v", err)
	}
	if loaded.Len() == 0 {
		t.Error("checkpoint should hold learned states")
	}
}

func TestTrainerValidation(t *testing.T) {
	logger := log.New(io.Discard)

	cfg := testTrainerConfig()
	cfg.Episodes = 0
	if _, err := NewTrainer(NewQTable(), cfg, logger); err == nil {
		t.Error("zero episodes should be rejected")
	}

	cfg = testTrainerConfig()
	cfg.Opponents = nil
	cfg.OpponentNames = nil
	if _, err := NewTrainer(NewQTable(), cfg, logger); err == nil {
		t.Error("missing opponents should be rejected")
	}

	cfg = testTrainerConfig()
	cfg.OpponentNames = cfg.OpponentNames[:1]
	if _, err := NewTrainer(NewQTable(), cfg, logger); err == nil {
		t.Error("mismatched opponent names should be rejected")
	}
}

func TestTrainerCancellation(t *testing.T) {
	trainer, err := NewTrainer(NewQTable(), testTrainerConfig(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewTrainer() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := trainer.Run(ctx, nil); err == nil {
		t.Error("cancelled context should stop the run")
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	trainer, err := NewTrainer(NewQTable(), testTrainerConfig(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewTrainer() error = %v", err)
	}

	first, err := trainer.Evaluate(context.Background(), 3, 0)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	second, err := trainer.Evaluate(context.Background(), 3, 0)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if first != second {
		t.Errorf("evaluation not deterministic: %v vs %v", first, second)
	}
}
