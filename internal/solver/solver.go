// Package solver implements the optimal single-turn decision engine: given a
// player's accumulated hand and the exact multiset of cards left in the draw
// pile, it computes whether hitting or staying maximizes the expected score
// for the turn, assuming optimal play on every later decision. The search is
// an exact memoized expectimax over turn states; no draws are simulated.
package solver

import (
	"math/bits"

	"github.com/charmbracelet/log"
	"github.com/lox/flipforbots/internal/deck"
)

// Action is the solver's verdict for a single decision point
type Action int

const (
	Stay Action = iota
	Hit
)

// String returns the string representation of an action
func (a Action) String() string {
	if a == Hit {
		return "hit"
	}
	return "stay"
}

// Position is a snapshot of everything one hit-or-stay decision depends on,
// built once per decision from the live game and deck.
type Position struct {
	Hand        []deck.Card
	Remaining   []deck.Card
	RoundActive bool
	Stayed      bool
	Busted      bool
}

// Evaluation reports the solver's view of a position: the score for banking
// now, the expected value of drawing once and continuing optimally, and the
// resulting action.
type Evaluation struct {
	Bank   int
	HitEV  float64
	Action Action
	States int // memoized states expanded by the search
}

// Solver decides hit-or-stay for Flip-7 turns. The base-sum table is built
// once at construction and shared read-only by every decision; memo tables
// live for a single evaluation since draw weights shift between decisions.
type Solver struct {
	base   *BaseSumTable
	logger *log.Logger
}

// New creates a solver. The logger is only used for diagnostics on
// unexpected inputs and may be a discard logger in tests.
func New(logger *log.Logger) *Solver {
	return &Solver{
		base:   NewBaseSumTable(),
		logger: logger.WithPrefix("solver"),
	}
}

// ChooseAction decides hit or stay for the given position. Degenerate
// positions -- inactive round, player already done, empty or zero-weight
// pile -- resolve to the safe default Stay without invoking the search.
func (s *Solver) ChooseAction(pos Position) Action {
	if !pos.RoundActive || pos.Stayed || pos.Busted {
		return Stay
	}
	if len(pos.Remaining) == 0 {
		return Stay
	}
	weights := BuildWeights(pos.Remaining)
	if weights.Total() <= 0 {
		return Stay
	}
	for _, c := range pos.Hand {
		if c.Type == deck.Modifier && c.Kind.Amount() == 0 {
			// Scored as a no-op, but it means a card type this engine
			// does not know about is in play.
			s.logger.Warn("unrecognized modifier kind in hand", "kind", int(c.Kind))
		}
	}
	return s.evaluate(EncodeHand(pos.Hand), weights).Action
}

// Evaluate exposes the full expected-value breakdown for a hand against a
// remaining pile, for inspection tooling and bots that want the EVs.
func (s *Solver) Evaluate(hand, remaining []deck.Card) Evaluation {
	st := EncodeHand(hand)
	weights := BuildWeights(remaining)
	if weights.Total() <= 0 {
		bank := st.Score(s.base)
		return Evaluation{Bank: bank, HitEV: float64(bank), Action: Stay}
	}
	return s.evaluate(st, weights)
}

func (s *Solver) evaluate(st TurnState, weights Weights) Evaluation {
	sr := &search{
		base:    s.base,
		weights: weights,
		v:       make(map[stateKey]float64),
		q:       make(map[stateKey]float64),
	}

	bank := st.Score(s.base)
	hitEV := sr.hitValue(st.Mask, weights.ModsMask(), st.A, st.B)

	// Ties favor staying: banking is the zero-risk default.
	action := Stay
	if hitEV > float64(bank) {
		action = Hit
	}
	return Evaluation{
		Bank:   bank,
		HitEV:  hitEV,
		Action: action,
		States: len(sr.v) + len(sr.q),
	}
}

// stateKey identifies a search state: held numbers, modifier kinds still
// drawable along this continuation, and the accumulated affine transform.
type stateKey struct {
	mask uint16
	mods uint8
	a, b int32
}

// search carries one decision's memo tables. Weights are fixed for its
// lifetime; the state space is bounded because each modifier kind can be
// consumed at most once per continuation and masks only grow.
type search struct {
	base    *BaseSumTable
	weights Weights
	v       map[stateKey]float64
	q       map[stateKey]float64
}

// value is the optimal expected score from this state onward: the better of
// banking now and hitting once then continuing optimally.
func (s *search) value(mask uint16, mods uint8, a, b int) float64 {
	key := stateKey{mask: mask, mods: mods, a: int32(a), b: int32(b)}
	if v, ok := s.v[key]; ok {
		return v
	}

	bank := float64(TurnState{Mask: mask, A: a, B: b}.Score(s.base))
	hit := s.hitValue(mask, mods, a, b)
	v := bank
	if hit > bank {
		v = hit
	}
	s.v[key] = v
	return v
}

// hitValue is the expected final score after drawing exactly one card now
// and then playing optimally. Outcomes are averaged over every drawable card
// weighted by its share of the remaining pile.
func (s *search) hitValue(mask uint16, mods uint8, a, b int) float64 {
	key := stateKey{mask: mask, mods: mods, a: int32(a), b: int32(b)}
	if q, ok := s.q[key]; ok {
		return q
	}

	z := 0
	for _, w := range s.weights.Numbers {
		z += w
	}
	for k, w := range s.weights.Mods {
		if mods&(1<<k) != 0 {
			z += w
		}
	}

	// Nothing drawable: hitting is impossible, so its expected value is
	// defined as the bank value. This keeps a sterile hit from ever
	// looking better than staying.
	if z <= 0 {
		bank := float64(TurnState{Mask: mask, A: a, B: b}.Score(s.base))
		s.q[key] = bank
		return bank
	}

	ev := 0.0

	for value, weight := range s.weights.Numbers {
		if weight <= 0 {
			continue
		}
		p := float64(weight) / float64(z)

		var outcome float64
		if mask&(1<<value) != 0 {
			// Duplicate number: bust, forfeiting the whole turn.
			outcome = 0
		} else {
			next := mask | 1<<value
			if bits.OnesCount16(next) >= sevenUnique {
				// Seventh unique number force-ends the turn with
				// the bonus; no further choice exists.
				outcome = float64(TurnState{Mask: next, A: a, B: b}.Score(s.base))
			} else {
				outcome = s.value(next, mods, a, b)
			}
		}
		ev += p * outcome
	}

	for k := deck.ModifierKind(0); k < deck.NumModifierKinds; k++ {
		weight := s.weights.Mods[k]
		if weight <= 0 || mods&(1<<k) == 0 {
			continue
		}
		p := float64(weight) / float64(z)
		na, nb := applyModifier(k, a, b)
		// This kind cannot be drawn twice along the same continuation.
		ev += p * s.value(mask, mods&^(1<<k), na, nb)
	}

	s.q[key] = ev
	return ev
}
