package deck

import (
	rand "math/rand/v2"
)

// Deck represents the Flip-7 draw pile.
//
// The full set holds 83 cards: number value v appears v times (value 0 once),
// plus one copy of each modifier. Drawn cards accumulate in a current-round
// pile; EndRound moves them to the discards. When the draw pile empties, the
// discards (never the in-flight round's cards) are reshuffled back in, so a
// card drawn this round can never be redrawn until the round is over.
type Deck struct {
	cards      []Card
	discards   []Card
	roundCards []Card
	rng        *rand.Rand
}

// New creates a freshly shuffled full deck using the provided RNG.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: standardCards(),
		rng:   rng,
	}
	d.Shuffle()
	return d
}

// StandardSet returns a fresh copy of the full 83-card composition.
func StandardSet() []Card {
	return standardCards()
}

// standardCards returns the full Flip-7 composition in a fixed order.
func standardCards() []Card {
	cards := make([]Card, 0, 83)
	for v := 0; v <= MaxNumber; v++ {
		n := v
		if v == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			cards = append(cards, NumberCard(v))
		}
	}
	for k := ModifierKind(0); k < NumModifierKinds; k++ {
		cards = append(cards, ModifierCard(k))
	}
	return cards
}

// Shuffle randomizes the order of the draw pile
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card. If the draw pile is empty the
// discards are reshuffled in first; returns false only when both are empty.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		if len(d.discards) == 0 {
			return Card{}, false
		}
		d.cards = append(d.cards, d.discards...)
		d.discards = d.discards[:0]
		d.Shuffle()
	}

	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	d.roundCards = append(d.roundCards, card)
	return card, true
}

// CardsRemaining returns the number of cards left in the draw pile
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// Remaining returns a copy of the undrawn cards. Callers must not rely on
// the order; only the multiset is meaningful.
func (d *Deck) Remaining() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// EndRound moves the current round's drawn cards to the discard pile
func (d *Deck) EndRound() {
	d.discards = append(d.discards, d.roundCards...)
	d.roundCards = d.roundCards[:0]
}

// Reset restores the full shuffled composition
func (d *Deck) Reset() {
	d.cards = standardCards()
	d.discards = d.discards[:0]
	d.roundCards = d.roundCards[:0]
	d.Shuffle()
}
