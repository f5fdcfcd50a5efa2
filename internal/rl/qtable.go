package rl

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lox/flipforbots/internal/fileutil"
	"github.com/lox/flipforbots/internal/game"
)

// OptimisticInit is the Q-value assumed for unseen state-action pairs. A
// small positive value keeps early exploration alive under sparse rewards.
const OptimisticInit = 0.1

// QTable maps discretized states to a Q-value per action. Actions index
// the value array: game.ActionStay and game.ActionHit.
type QTable struct {
	entries map[State][2]float64
}

// NewQTable creates an empty table.
func NewQTable() *QTable {
	return &QTable{entries: make(map[State][2]float64)}
}

// Get returns the Q-value for a state-action pair, falling back to the
// optimistic initial value for unseen states.
func (t *QTable) Get(s State, a game.Action) float64 {
	if q, ok := t.entries[s]; ok {
		return q[a]
	}
	return OptimisticInit
}

// Set records a Q-value, materializing the entry if needed.
func (t *QTable) Set(s State, a game.Action, value float64) {
	q, ok := t.entries[s]
	if !ok {
		q = [2]float64{OptimisticInit, OptimisticInit}
	}
	q[a] = value
	t.entries[s] = q
}

// Max returns the highest Q-value available from a state.
func (t *QTable) Max(s State) float64 {
	hit := t.Get(s, game.ActionHit)
	stay := t.Get(s, game.ActionStay)
	if hit > stay {
		return hit
	}
	return stay
}

// Best returns the greedy action for a state, preferring to hit on exact
// ties so an untrained table still plays.
func (t *QTable) Best(s State) game.Action {
	if t.Get(s, game.ActionHit) >= t.Get(s, game.ActionStay) {
		return game.ActionHit
	}
	return game.ActionStay
}

// Len returns the number of states with learned values.
func (t *QTable) Len() int {
	return len(t.entries)
}

// tableEntry is the serialized form of one table row. Struct keys cannot
// be JSON object keys, so the file holds a flat list.
type tableEntry struct {
	State State      `json:"state"`
	Q     [2]float64 `json:"q"`
}

type tableFile struct {
	Entries []tableEntry `json:"entries"`
}

// Save writes the table to path atomically.
func (t *QTable) Save(path string) error {
	file := tableFile{Entries: make([]tableEntry, 0, len(t.entries))}
	for s, q := range t.entries {
		file.Entries = append(file.Entries, tableEntry{State: s, Q: q})
	}
	if err := fileutil.WriteJSONAtomic(path, file, 0o644); err != nil {
		return fmt.Errorf("save q-table: %w", err)
	}
	return nil
}

// LoadQTable reads a table previously written by Save.
func LoadQTable(path string) (*QTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load q-table: %w", err)
	}
	var file tableFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse q-table %s: %w", path, err)
	}
	t := NewQTable()
	for _, e := range file.Entries {
		t.entries[e.State] = e.Q
	}
	return t, nil
}
