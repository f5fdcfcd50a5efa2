package solver

import (
	"math/bits"

	"github.com/lox/flipforbots/internal/deck"
)

// TurnState is the compact parametric form of an accumulated hand: a bitmask
// of held number values and an affine transform (A, B) capturing the combined
// effect of modifier cards in the order drawn. Banking in this state is worth
// A*base_sum(Mask)+B, so the literal hand never needs to be stored.
type TurnState struct {
	Mask uint16
	A    int
	B    int
}

// EncodeHand replays a hand in draw order into a TurnState. Number cards OR
// in their value bit; modifiers fold into the affine transform. The result
// scores identically to summing the numbers and applying each modifier in
// hand order.
func EncodeHand(hand []deck.Card) TurnState {
	st := TurnState{A: 1}
	for _, c := range hand {
		switch c.Type {
		case deck.Number:
			if c.Value >= 0 && c.Value <= deck.MaxNumber {
				st.Mask |= 1 << c.Value
			}
		case deck.Modifier:
			st.A, st.B = applyModifier(c.Kind, st.A, st.B)
		}
	}
	return st
}

// applyModifier folds one modifier into the affine transform. An additive
// delta d shifts the offset; a multiplicative factor m distributes over the
// whole map: (a*x+b)*m = (a*m)*x + b*m. Unrecognized kinds leave the
// transform unchanged.
func applyModifier(k deck.ModifierKind, a, b int) (int, int) {
	if k.IsMultiplier() {
		m := k.Amount()
		return a * m, b * m
	}
	return a, b + k.Amount()
}

// Score returns the value of banking immediately in this state, including
// the bonus for holding seven distinct numbers.
func (st TurnState) Score(base *BaseSumTable) int {
	score := st.A*base.Sum(st.Mask) + st.B
	if bits.OnesCount16(st.Mask) >= sevenUnique {
		score += sevenBonus
	}
	return score
}
