package game

import "github.com/lox/flipforbots/internal/deck"

// Player represents one seat in a Flip-7 game. The hand is kept in draw
// order; scoring applies modifiers in that order.
type Player struct {
	Name       string
	Hand       []deck.Card
	TotalScore int
	RoundScore int
	Busted     bool
	Stayed     bool
	SevenBonus bool
}

// NewPlayer creates a player with an empty hand
func NewPlayer(name string) *Player {
	return &Player{Name: name}
}

// AddCard appends a drawn card to the hand and updates the bust and
// seven-unique flags.
func (p *Player) AddCard(c deck.Card) {
	p.Hand = append(p.Hand, c)

	if c.Type == deck.Number {
		seen := 0
		for _, h := range p.Hand {
			if h.Type == deck.Number && h.Value == c.Value {
				seen++
			}
		}
		if seen > 1 {
			p.Busted = true
			return
		}
	}

	if p.UniqueNumbers() == 7 {
		p.SevenBonus = true
		p.Stayed = true // seventh unique number force-ends the turn
	}
}

// UniqueNumbers returns how many distinct number values the player holds.
func (p *Player) UniqueNumbers() int {
	var mask uint16
	for _, c := range p.Hand {
		if c.Type == deck.Number {
			mask |= 1 << c.Value
		}
	}
	n := 0
	for ; mask != 0; mask &= mask - 1 {
		n++
	}
	return n
}

// Score computes the value of the hand if banked now: sum of number cards,
// modifiers applied in draw order, plus the seven-unique bonus. A busted
// hand is worth nothing.
func (p *Player) Score() int {
	if p.Busted {
		return 0
	}

	score := 0
	for _, c := range p.Hand {
		if c.Type == deck.Number {
			score += c.Value
		}
	}
	for _, c := range p.Hand {
		if c.Type != deck.Modifier {
			continue
		}
		if c.Kind.IsMultiplier() {
			score *= c.Kind.Amount()
		} else {
			score += c.Kind.Amount()
		}
	}
	if p.SevenBonus {
		score += 15
	}
	return score
}

// Stay banks the current hand and ends the player's turn
func (p *Player) Stay() {
	p.Stayed = true
}

// CanAct returns true if the player can still hit or stay this round
func (p *Player) CanAct() bool {
	return !p.Busted && !p.Stayed
}

// ResetForRound clears per-round state while keeping the running total.
func (p *Player) ResetForRound() {
	p.Hand = p.Hand[:0]
	p.RoundScore = 0
	p.Busted = false
	p.Stayed = false
	p.SevenBonus = false
}
