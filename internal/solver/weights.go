package solver

import "github.com/lox/flipforbots/internal/deck"

// Weights holds draw-probability weights for the remaining draw pile: a count
// per number value and a count per modifier kind. All weights are
// non-negative and reflect only cards still drawable.
type Weights struct {
	Numbers [deck.NumberValues]int
	Mods    [deck.NumModifierKinds]int
}

// BuildWeights aggregates the remaining cards into draw weights. An empty
// input yields all-zero weights.
func BuildWeights(cards []deck.Card) Weights {
	var w Weights
	for _, c := range cards {
		switch c.Type {
		case deck.Number:
			if c.Value >= 0 && c.Value < len(w.Numbers) {
				w.Numbers[c.Value]++
			}
		case deck.Modifier:
			if c.Kind >= 0 && c.Kind < deck.NumModifierKinds {
				w.Mods[c.Kind]++
			}
		}
	}
	return w
}

// Total returns the combined weight of all drawable cards.
func (w Weights) Total() int {
	total := 0
	for _, n := range w.Numbers {
		total += n
	}
	for _, m := range w.Mods {
		total += m
	}
	return total
}

// ModsMask returns a bitmask with one bit per modifier kind that still has a
// card in the pile. The solver clears bits as hypothetical continuations
// consume modifiers.
func (w Weights) ModsMask() uint8 {
	var mask uint8
	for k, n := range w.Mods {
		if n > 0 {
			mask |= 1 << k
		}
	}
	return mask
}
