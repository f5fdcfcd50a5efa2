// Package rl implements a tabular Q-learning agent for the flip-or-bank
// decision, an alternative to the exact solver that learns whole-game
// strategy from self-play instead of computing single-turn expected value.
package rl

import (
	"fmt"

	"github.com/lox/flipforbots/internal/deck"
	"github.com/lox/flipforbots/internal/game"
)

const (
	maxHandSum  = 100
	maxRoundBin = 10
	maxScore    = 500
)

// State is a discretized snapshot of the learner's situation. It is
// comparable so it can key the Q-table directly. Sums and scores are
// capped and binned to keep the table small.
type State struct {
	Cards      int
	Numbers    int
	HandSum    int
	Unique     int
	HasPlus2   bool
	HasPlus4   bool
	HasPlus10  bool
	HasTimes2  bool
	Busted     bool
	Stayed     bool
	SevenBonus bool
	Round      int
	ScoreBin   int
	DiffBin    int
}

// StateOf builds a State for a player mid-game. bestOpponent is the
// highest banked total among the other seats.
func StateOf(p *game.Player, round, bestOpponent int) State {
	s := State{
		Cards:      len(p.Hand),
		Busted:     p.Busted,
		Stayed:     p.Stayed,
		SevenBonus: p.SevenBonus,
		Round:      min(round, maxRoundBin),
		ScoreBin:   min(p.TotalScore, maxScore) / 10,
		DiffBin:    diffBin(p.TotalScore, bestOpponent),
	}
	fillHand(&s, p.Hand)
	return s
}

// StateFromView builds a State from the immutable view handed to agents.
// The player is mid-turn, so the busted/stayed/bonus flags are all false.
func StateFromView(view game.TurnView) State {
	best := 0
	for _, opp := range view.Opponents {
		if opp.TotalScore > best {
			best = opp.TotalScore
		}
	}
	s := State{
		Cards:    len(view.Hand),
		Round:    min(view.Round, maxRoundBin),
		ScoreBin: min(view.TotalScore, maxScore) / 10,
		DiffBin:  diffBin(view.TotalScore, best),
	}
	fillHand(&s, view.Hand)
	return s
}

func fillHand(s *State, hand []deck.Card) {
	sum := 0
	var seen uint16
	for _, c := range hand {
		if c.Type == deck.Number {
			s.Numbers++
			sum += c.Value
			seen |= 1 << c.Value
			continue
		}
		switch c.Kind {
		case deck.PlusTwo:
			s.HasPlus2 = true
		case deck.PlusFour:
			s.HasPlus4 = true
		case deck.PlusTen:
			s.HasPlus10 = true
		case deck.TimesTwo:
			s.HasTimes2 = true
		}
	}
	s.HandSum = min(sum, maxHandSum)
	for ; seen != 0; seen &= seen - 1 {
		s.Unique++
	}
}

// diffBin bins the lead over the best opponent into tens, clamped to ±5.
func diffBin(total, bestOpponent int) int {
	d := (min(total, maxScore) - min(bestOpponent, maxScore)) / 10
	if d > 5 {
		return 5
	}
	if d < -5 {
		return -5
	}
	return d
}

func (s State) String() string {
	return fmt.Sprintf("cards=%d sum=%d unique=%d round=%d score=%d diff=%d",
		s.Cards, s.HandSum, s.Unique, s.Round, s.ScoreBin*10, s.DiffBin*10)
}
