package rl

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/flipforbots/internal/deck"
	"github.com/lox/flipforbots/internal/game"
	"github.com/lox/flipforbots/internal/randutil"
)

func testAgent(cfg Config) *Agent {
	return NewAgent(NewQTable(), cfg, randutil.New(1), log.New(io.Discard))
}

func TestUpdateRule(t *testing.T) {
	cfg := DefaultConfig()
	agent := testAgent(cfg)

	s := State{HandSum: 10}
	next := State{HandSum: 15}
	agent.Update(s, game.ActionHit, 5.0, next, false)

	// Q = init + alpha*(r + gamma*maxNext - init), with maxNext still at
	// the optimistic default.
	want := OptimisticInit + cfg.Alpha*(5.0+cfg.Gamma*OptimisticInit-OptimisticInit)
	if got := agent.Table().Get(s, game.ActionHit); math.Abs(got-want) > 1e-12 {
		t.Errorf("Q after update = %v, want %v", got, want)
	}
}

func TestUpdateTerminalIgnoresFutureValue(t *testing.T) {
	cfg := DefaultConfig()
	agent := testAgent(cfg)

	s := State{HandSum: 20}
	agent.Update(s, game.ActionStay, -10.0, State{}, true)

	want := OptimisticInit + cfg.Alpha*(-10.0-OptimisticInit)
	if got := agent.Table().Get(s, game.ActionStay); math.Abs(got-want) > 1e-12 {
		t.Errorf("Q after terminal update = %v, want %v", got, want)
	}
}

func TestSelectActionGreedyWhenNotTraining(t *testing.T) {
	agent := testAgent(DefaultConfig()) // epsilon 1.0, pure exploration if training
	s := State{HandSum: 18}
	agent.Table().Set(s, game.ActionStay, 10.0)

	for i := 0; i < 20; i++ {
		if got := agent.SelectAction(s, false); got != game.ActionStay {
			t.Fatalf("greedy SelectAction = %v, want stay", got)
		}
	}
}

func TestDecaySchedulesRespectFloors(t *testing.T) {
	cfg := DefaultConfig()
	agent := testAgent(cfg)

	for i := 0; i < 100000; i++ {
		agent.DecayEpsilon()
		agent.DecayAlpha()
	}
	if got := agent.Epsilon(); got != cfg.EpsilonMin {
		t.Errorf("epsilon floor = %v, want %v", got, cfg.EpsilonMin)
	}
	if got := agent.Alpha(); got != cfg.AlphaMin {
		t.Errorf("alpha floor = %v, want %v", got, cfg.AlphaMin)
	}
}

func TestStateOfDiscretization(t *testing.T) {
	p := &game.Player{Name: "p", TotalScore: 4700}
	p.Hand = []deck.Card{
		deck.NumberCard(7),
		deck.NumberCard(7),
		deck.NumberCard(12),
		deck.ModifierCard(deck.TimesTwo),
	}

	s := StateOf(p, 25, 0)
	if s.Cards != 4 || s.Numbers != 3 {
		t.Errorf("cards=%d numbers=%d, want 4/3", s.Cards, s.Numbers)
	}
	if s.HandSum != 26 {
		t.Errorf("HandSum = %d, want 26", s.HandSum)
	}
	if s.Unique != 2 {
		t.Errorf("Unique = %d, want 2 (duplicates collapse)", s.Unique)
	}
	if !s.HasTimes2 || s.HasPlus2 {
		t.Errorf("modifier flags wrong: %+v", s)
	}
	if s.Round != 10 {
		t.Errorf("Round = %d, want capped at 10", s.Round)
	}
	if s.ScoreBin != 50 {
		t.Errorf("ScoreBin = %d, want 50 (capped at 500 then binned)", s.ScoreBin)
	}
	if s.DiffBin != 5 {
		t.Errorf("DiffBin = %d, want clamped to 5", s.DiffBin)
	}
}

func TestStateFromViewMatchesStateOf(t *testing.T) {
	hand := []deck.Card{deck.NumberCard(3), deck.ModifierCard(deck.PlusFour)}
	view := game.TurnView{
		Hand:       hand,
		TotalScore: 40,
		Round:      2,
		Opponents:  []game.OpponentView{{TotalScore: 60}},
	}
	p := &game.Player{Name: "p", Hand: hand, TotalScore: 40}

	if got, want := StateFromView(view), StateOf(p, 2, 60); got != want {
		t.Errorf("StateFromView = %+v, want %+v", got, want)
	}
}
