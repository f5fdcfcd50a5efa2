package rl

import (
	"path/filepath"
	"testing"

	"github.com/lox/flipforbots/internal/game"
)

func TestQTableOptimisticDefaults(t *testing.T) {
	table := NewQTable()
	s := State{HandSum: 12, Unique: 3}

	if got := table.Get(s, game.ActionHit); got != OptimisticInit {
		t.Errorf("unseen Get = %v, want %v", got, OptimisticInit)
	}
	if got := table.Best(s); got != game.ActionHit {
		t.Errorf("unseen Best = %v, want hit on ties", got)
	}
	if table.Len() != 0 {
		t.Errorf("reads should not materialize entries, len = %d", table.Len())
	}
}

func TestQTableSetAndBest(t *testing.T) {
	table := NewQTable()
	s := State{HandSum: 18}

	table.Set(s, game.ActionStay, 5.0)
	if got := table.Best(s); got != game.ActionStay {
		t.Errorf("Best = %v, want stay", got)
	}
	// The untouched action keeps its optimistic default.
	if got := table.Get(s, game.ActionHit); got != OptimisticInit {
		t.Errorf("Get(hit) = %v, want %v", got, OptimisticInit)
	}
	if got := table.Max(s); got != 5.0 {
		t.Errorf("Max = %v, want 5.0", got)
	}
}

func TestQTableSaveLoad(t *testing.T) {
	table := NewQTable()
	a := State{HandSum: 10, Unique: 2, Round: 3}
	b := State{HandSum: 25, HasTimes2: true, DiffBin: -2}
	table.Set(a, game.ActionHit, 1.5)
	table.Set(a, game.ActionStay, -0.5)
	table.Set(b, game.ActionStay, 12.0)

	path := filepath.Join(t.TempDir(), "qtable.json")
	if err := table.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadQTable(path)
	if err != nil {
		t.Fatalf("LoadQTable() error = %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("loaded %d states, want 2", loaded.Len())
	}
	if got := loaded.Get(a, game.ActionHit); got != 1.5 {
		t.Errorf("Get(a, hit) = %v, want 1.5", got)
	}
	if got := loaded.Get(b, game.ActionStay); got != 12.0 {
		t.Errorf("Get(b, stay) = %v, want 12.0", got)
	}
}

func TestLoadQTableMissingFile(t *testing.T) {
	if _, err := LoadQTable(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("loading a missing file should fail")
	}
}
