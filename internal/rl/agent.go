package rl

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/flipforbots/internal/game"
)

// Config holds the Q-learning hyperparameters.
type Config struct {
	Alpha        float64 // learning rate
	AlphaMin     float64
	AlphaDecay   float64 // multiplicative, per episode
	Gamma        float64 // discount factor
	Epsilon      float64 // exploration rate
	EpsilonMin   float64
	EpsilonDecay float64 // multiplicative, per episode
}

// DefaultConfig returns hyperparameters that converge against the built-in
// heuristic opponents.
func DefaultConfig() Config {
	return Config{
		Alpha:        0.1,
		AlphaMin:     0.01,
		AlphaDecay:   0.9995,
		Gamma:        0.95,
		Epsilon:      1.0,
		EpsilonMin:   0.05,
		EpsilonDecay: 0.998,
	}
}

// Stats counts what the agent has done so far.
type Stats struct {
	Updates       int
	Explorations  int
	Exploitations int
}

// Agent learns a hit/stay policy with epsilon-greedy tabular Q-learning.
type Agent struct {
	table  *QTable
	cfg    Config
	rng    *rand.Rand
	logger *log.Logger
	stats  Stats
}

// NewAgent creates an agent over the given table. The table may already
// hold learned values, in which case training continues from them.
func NewAgent(table *QTable, cfg Config, rng *rand.Rand, logger *log.Logger) *Agent {
	return &Agent{
		table:  table,
		cfg:    cfg,
		rng:    rng,
		logger: logger.WithPrefix("rl"),
	}
}

// SelectAction picks epsilon-greedy during training, greedy otherwise.
func (a *Agent) SelectAction(s State, training bool) game.Action {
	if training && a.rng.Float64() < a.cfg.Epsilon {
		a.stats.Explorations++
		return game.Action(a.rng.IntN(2))
	}
	a.stats.Exploitations++
	return a.table.Best(s)
}

// Update applies the Q-learning rule for one observed transition. Terminal
// transitions carry no future value.
func (a *Agent) Update(s State, action game.Action, reward float64, next State, terminal bool) {
	current := a.table.Get(s, action)
	future := 0.0
	if !terminal {
		future = a.table.Max(next)
	}
	target := reward + a.cfg.Gamma*future
	a.table.Set(s, action, current+a.cfg.Alpha*(target-current))
	a.stats.Updates++
}

// DecayEpsilon reduces exploration toward the configured floor. Called
// once per episode.
func (a *Agent) DecayEpsilon() {
	if a.cfg.Epsilon > a.cfg.EpsilonMin {
		a.cfg.Epsilon = max(a.cfg.EpsilonMin, a.cfg.Epsilon*a.cfg.EpsilonDecay)
	}
}

// DecayAlpha reduces the learning rate toward the configured floor.
func (a *Agent) DecayAlpha() {
	if a.cfg.Alpha > a.cfg.AlphaMin {
		a.cfg.Alpha = max(a.cfg.AlphaMin, a.cfg.Alpha*a.cfg.AlphaDecay)
	}
}

// Epsilon returns the current exploration rate.
func (a *Agent) Epsilon() float64 { return a.cfg.Epsilon }

// Alpha returns the current learning rate.
func (a *Agent) Alpha() float64 { return a.cfg.Alpha }

// Table returns the underlying Q-table.
func (a *Agent) Table() *QTable { return a.table }

// Stats returns counters accumulated since the agent was created.
func (a *Agent) Stats() Stats { return a.stats }
