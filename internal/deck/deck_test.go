package deck

import (
	"testing"

	"github.com/lox/flipforbots/internal/randutil"
)

func TestDeckComposition(t *testing.T) {
	d := New(randutil.New(1))

	if d.CardsRemaining() != 83 {
		t.Fatalf("full deck has %d cards, want 83", d.CardsRemaining())
	}

	var numbers [NumberValues]int
	var mods [NumModifierKinds]int
	for _, c := range d.Remaining() {
		switch c.Type {
		case Number:
			numbers[c.Value]++
		case Modifier:
			mods[c.Kind]++
		}
	}

	for v := 0; v <= MaxNumber; v++ {
		want := v
		if v == 0 {
			want = 1
		}
		if numbers[v] != want {
			t.Errorf("value %d appears %d times, want %d", v, numbers[v], want)
		}
	}
	for k := ModifierKind(0); k < NumModifierKinds; k++ {
		if mods[k] != 1 {
			t.Errorf("modifier %s appears %d times, want 1", k, mods[k])
		}
	}
}

func TestDeckDrawDepletes(t *testing.T) {
	d := New(randutil.New(2))

	for i := 0; i < 83; i++ {
		if _, ok := d.Draw(); !ok {
			t.Fatalf("draw %d failed with cards remaining", i)
		}
	}
	if d.CardsRemaining() != 0 {
		t.Fatalf("deck should be empty, has %d", d.CardsRemaining())
	}

	// Everything drawn belongs to the in-flight round, so nothing can be
	// reshuffled back in.
	if _, ok := d.Draw(); ok {
		t.Error("draw from exhausted deck should fail")
	}
}

func TestDeckReshuffleExcludesCurrentRound(t *testing.T) {
	d := New(randutil.New(3))

	// Round one: draw 40 cards, then bank them as discards.
	for i := 0; i < 40; i++ {
		d.Draw()
	}
	d.EndRound()

	// Round two: exhaust the remaining 43, then keep drawing into the
	// reshuffled discards from round one.
	seen := 0
	for i := 0; i < 43+40; i++ {
		if _, ok := d.Draw(); !ok {
			t.Fatalf("draw %d failed; reshuffle should have restocked the pile", i)
		}
		seen++
	}
	if seen != 83 {
		t.Fatalf("drew %d cards across reshuffle, want 83", seen)
	}

	// All 83 are now held by the current round; the pile is truly dry.
	if _, ok := d.Draw(); ok {
		t.Error("no cards should remain once every card is in the current round")
	}
}

func TestDeckReset(t *testing.T) {
	d := New(randutil.New(4))
	for i := 0; i < 10; i++ {
		d.Draw()
	}
	d.EndRound()
	d.Reset()
	if d.CardsRemaining() != 83 {
		t.Errorf("reset deck has %d cards, want 83", d.CardsRemaining())
	}
}

func TestDeckDeterminism(t *testing.T) {
	a := New(randutil.New(42))
	b := New(randutil.New(42))
	for i := 0; i < 83; i++ {
		ca, _ := a.Draw()
		cb, _ := b.Draw()
		if ca != cb {
			t.Fatalf("draw %d differs: %v vs %v", i, ca, cb)
		}
	}
}
