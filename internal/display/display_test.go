package display

import (
	"strings"
	"testing"

	"github.com/lox/flipforbots/internal/deck"
	"github.com/lox/flipforbots/internal/game"
	"github.com/lox/flipforbots/internal/statistics"
)

// plainStyles skips terminal detection so output is stable in tests.
func plainStyles() *Styles {
	return &Styles{plain: true}
}

func TestRenderHand(t *testing.T) {
	s := plainStyles()

	cards, err := deck.ParseCards("5 +10 x2")
	if err != nil {
		t.Fatalf("ParseCards() error = %v", err)
	}
	if got, want := s.RenderHand(cards), "[5 +10 x2]"; got != want {
		t.Errorf("RenderHand() = %q, want %q", got, want)
	}
	if got, want := s.RenderHand(nil), "[]"; got != want {
		t.Errorf("RenderHand(nil) = %q, want %q", got, want)
	}
}

func TestRenderScoreboard(t *testing.T) {
	s := plainStyles()
	players := []*game.Player{
		{Name: "you", TotalScore: 40},
		{Name: "bot", TotalScore: 55, Busted: true},
	}

	out := s.RenderScoreboard(players, "you")
	if !strings.Contains(out, "> you: 40 total") {
		t.Errorf("current player not marked:\n%s", out)
	}
	if !strings.Contains(out, "bot: 55 total") || !strings.Contains(out, "(busted)") {
		t.Errorf("bust status missing:\n%s", out)
	}
}

func TestRenderSummary(t *testing.T) {
	s := plainStyles()
	var stats statistics.Statistics
	stats.Add(statistics.GameResult{Won: true, Score: 210, BestOpponent: 180, Margin: 30, Rounds: 9, Seat: 0})
	stats.Add(statistics.GameResult{Won: false, Score: 150, BestOpponent: 205, Margin: -55, Rounds: 11, Busts: 2, Seat: 1})

	out := s.RenderSummary(&stats, "solver", []string{"smart", "rand"})
	for _, want := range []string{
		"solver vs smart, rand",
		"Games played:  2",
		"Win rate:      50.0% (1 wins)",
		"seat 0: 1 games",
		"seat 1: 1 games",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
