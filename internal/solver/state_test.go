package solver

import (
	"testing"

	"github.com/lox/flipforbots/internal/deck"
)

// conventionalScore sums the number cards, applies each modifier in hand
// order and adds the seven-unique bonus -- the reference semantics the affine
// parametrization must reproduce exactly.
func conventionalScore(hand []deck.Card) int {
	sum := 0
	unique := map[int]bool{}
	for _, c := range hand {
		if c.Type == deck.Number {
			sum += c.Value
			unique[c.Value] = true
		}
	}
	for _, c := range hand {
		if c.Type != deck.Modifier {
			continue
		}
		if c.Kind.IsMultiplier() {
			sum *= c.Kind.Amount()
		} else {
			sum += c.Kind.Amount()
		}
	}
	if len(unique) >= 7 {
		sum += 15
	}
	return sum
}

func TestEncodeHandAffineEquivalence(t *testing.T) {
	base := NewBaseSumTable()

	hands := []string{
		"",
		"5",
		"0",
		"3 7 12",
		"+2",
		"x2",
		"5 +4",
		"5 x2",
		"5 +4 x2",   // (5+4)*2 = 18
		"5 x2 +4",   // 5*2+4 = 14; order matters
		"+2 3 x2 8", // modifiers interleaved with numbers
		"+2 +4 +10 x2",
		"1 2 3 4 5 6 7",     // seven unique, bonus applies
		"1 2 3 4 5 6 7 x2",  // bonus is outside the affine map
		"0 1 2 3 4 5 6 +10", // seven unique with additive modifier
		"12 11 10 +10 x2",
	}

	for _, spec := range hands {
		hand, err := deck.ParseCards(spec)
		if err != nil {
			t.Fatalf("ParseCards(%q) error = %v", spec, err)
		}
		st := EncodeHand(hand)
		got := st.Score(base)
		want := conventionalScore(hand)
		if got != want {
			t.Errorf("hand %q: affine score %d (mask=%#x a=%d b=%d), conventional %d",
				spec, got, st.Mask, st.A, st.B, want)
		}
	}
}

func TestEncodeHandEmptyState(t *testing.T) {
	st := EncodeHand(nil)
	if st.Mask != 0 || st.A != 1 || st.B != 0 {
		t.Errorf("empty hand encodes to %+v, want mask=0 a=1 b=0", st)
	}
}

func TestEncodeHandOrderDependence(t *testing.T) {
	base := NewBaseSumTable()

	early, _ := deck.ParseCards("x2 5 +4")
	late, _ := deck.ParseCards("5 +4 x2")

	if got := EncodeHand(early).Score(base); got != 14 {
		t.Errorf("x2 before +4 scores %d, want 14", got)
	}
	if got := EncodeHand(late).Score(base); got != 18 {
		t.Errorf("x2 after +4 scores %d, want 18", got)
	}
}

func TestEncodeHandUnknownModifierIsNoOp(t *testing.T) {
	hand := []deck.Card{
		deck.NumberCard(5),
		{Type: deck.Modifier, Kind: deck.ModifierKind(99)},
	}
	st := EncodeHand(hand)
	if st.A != 1 || st.B != 0 {
		t.Errorf("unknown modifier altered transform: a=%d b=%d", st.A, st.B)
	}
}
