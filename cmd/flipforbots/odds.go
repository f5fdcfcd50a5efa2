package main

import (
	"fmt"
	"time"

	"github.com/lox/flipforbots/internal/deck"
	"github.com/lox/flipforbots/internal/display"
	"github.com/lox/flipforbots/internal/solver"
)

// OddsCmd evaluates a single hit-or-stay decision
type OddsCmd struct {
	Hand  string `arg:"" optional:"" help:"Cards held this turn, e.g. '5 8 +10'"`
	Drawn string `help:"Cards drawn by other players this round, e.g. '3 3 12 x2'"`
	Debug bool   `help:"Enable debug logging"`
}

func (c *OddsCmd) Run() error {
	logger := setupLogger(c.Debug)

	hand, err := deck.ParseCards(c.Hand)
	if err != nil {
		return fmt.Errorf("parse hand: %w", err)
	}
	drawn, err := deck.ParseCards(c.Drawn)
	if err != nil {
		return fmt.Errorf("parse drawn cards: %w", err)
	}

	// Everything not in a hand or flipped this round is still in the pile
	remaining, err := removeCards(deck.StandardSet(), append(append([]deck.Card{}, hand...), drawn...))
	if err != nil {
		return err
	}

	s := solver.New(logger)
	start := time.Now()
	eval := s.Evaluate(hand, remaining)
	elapsed := time.Since(start)

	styles := display.NewStyles()
	fmt.Printf("Hand:      %s\n", styles.RenderHand(hand))
	fmt.Printf("Bank now:  %d points\n", eval.Bank)
	fmt.Printf("Hit EV:    %.4f points\n", eval.HitEV)
	fmt.Printf("Optimal:   %s\n", eval.Action)
	logger.Debug("search finished", "states", eval.States, "elapsed", elapsed)
	return nil
}

// removeCards removes one instance per card from the set, failing when a
// card appears more often than the deck holds.
func removeCards(set, cards []deck.Card) ([]deck.Card, error) {
	counts := make(map[deck.Card]int, len(cards))
	for _, c := range cards {
		counts[c]++
	}

	out := make([]deck.Card, 0, len(set))
	for _, c := range set {
		if counts[c] > 0 {
			counts[c]--
			continue
		}
		out = append(out, c)
	}
	for c, n := range counts {
		if n > 0 {
			return nil, fmt.Errorf("card %s appears more often than the deck holds", c)
		}
	}
	return out, nil
}
