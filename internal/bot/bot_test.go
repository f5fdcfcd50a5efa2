package bot

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/flipforbots/internal/deck"
	"github.com/lox/flipforbots/internal/game"
	"github.com/lox/flipforbots/internal/randutil"
	"github.com/lox/flipforbots/internal/rl"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func mustCards(t *testing.T, s string) []deck.Card {
	t.Helper()
	cards, err := deck.ParseCards(s)
	if err != nil {
		t.Fatalf("ParseCards(%q) error = %v", s, err)
	}
	return cards
}

func TestNewKnowsAllKinds(t *testing.T) {
	rng := randutil.New(1)
	for _, kind := range Kinds {
		agent, err := New(kind, rng, testLogger())
		if err != nil {
			t.Errorf("New(%q) error = %v", kind, err)
		}
		if agent == nil {
			t.Errorf("New(%q) returned nil agent", kind)
		}
	}
	if _, err := New("bogus", rng, testLogger()); err == nil {
		t.Error("unknown kind should error")
	}
}

func TestThresholdBot(t *testing.T) {
	b := NewThresholdBot(15, testLogger())

	tests := []struct {
		name string
		hand string
		want game.Action
	}{
		{"empty hand", "", game.ActionHit},
		{"below threshold", "4 8", game.ActionHit},
		{"at threshold", "7 8", game.ActionStay},
		{"modifiers count", "5 +10", game.ActionStay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := mustCards(t, tt.hand)
			view := game.TurnView{Hand: hand, BankScore: scoreOf(t, hand)}
			if got := b.ChooseAction(view); got != tt.want {
				t.Errorf("ChooseAction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggressiveBot(t *testing.T) {
	b := NewAggressiveBot(testLogger())

	tests := []struct {
		name string
		hand string
		want game.Action
	}{
		{"keeps flipping a medium hand", "9 12", game.ActionHit},
		{"banks a big hand", "10 11 12", game.ActionStay},
		{"six unique with points banks", "1 2 3 4 5 6", game.ActionStay},
		{"six unique but cheap keeps chasing", "0 1 2 3 4 5", game.ActionHit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := mustCards(t, tt.hand)
			view := game.TurnView{Hand: hand, BankScore: scoreOf(t, hand)}
			if got := b.ChooseAction(view); got != tt.want {
				t.Errorf("ChooseAction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSmartBot(t *testing.T) {
	b := NewSmartBot(testLogger())

	tests := []struct {
		name string
		hand string
		want game.Action
	}{
		{"small hand hits", "3 5", game.ActionHit},
		{"big hand banks", "9 12", game.ActionStay},
		{"middle band sparse hand hits", "6 7", game.ActionHit},
		{"middle band crowded hand banks", "1 2 3 4 5", game.ActionStay},
		{"multiplier loosens play", "8 9 x2", game.ActionHit},
		{"six unique chases the bonus", "2 3 4 5 6 7", game.ActionHit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := mustCards(t, tt.hand)
			view := game.TurnView{Hand: hand, BankScore: scoreOf(t, hand)}
			if got := b.ChooseAction(view); got != tt.want {
				t.Errorf("ChooseAction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSolverBot(t *testing.T) {
	b := NewSolverBot(testLogger())

	// Single safe card left: hitting gains points for free.
	view := game.TurnView{
		Hand:      mustCards(t, ""),
		Remaining: mustCards(t, "5"),
	}
	if got := b.ChooseAction(view); got != game.ActionHit {
		t.Errorf("free point hit = %v, want hit", got)
	}

	// The only card left duplicates the hand: hitting can only bust.
	view = game.TurnView{
		Hand:      mustCards(t, "5"),
		Remaining: mustCards(t, "5"),
	}
	if got := b.ChooseAction(view); got != game.ActionStay {
		t.Errorf("guaranteed bust = %v, want stay", got)
	}
}

func TestQBotPlaysGreedy(t *testing.T) {
	table := rl.NewQTable()
	hand := mustCards(t, "9 12")
	view := game.TurnView{Hand: hand, BankScore: scoreOf(t, hand)}

	state := rl.StateFromView(view)
	table.Set(state, game.ActionStay, 10.0)
	table.Set(state, game.ActionHit, -5.0)

	b := NewQBot(table, testLogger())
	if got := b.ChooseAction(view); got != game.ActionStay {
		t.Errorf("ChooseAction() = %v, want learned stay", got)
	}
}

// scoreOf banks a hand through a throwaway player so view scores match
// what the engine would report.
func scoreOf(t *testing.T, hand []deck.Card) int {
	t.Helper()
	p := &game.Player{Name: "scratch", Hand: hand}
	return p.Score()
}
