package game

import "github.com/lox/flipforbots/internal/deck"

// Action represents a player's choice at a decision point
type Action int

const (
	ActionStay Action = iota
	ActionHit
)

// String returns the string representation of an action
func (a Action) String() string {
	if a == ActionHit {
		return "hit"
	}
	return "stay"
}

// OpponentView is the publicly visible state of another seat
type OpponentView struct {
	Name          string
	TotalScore    int
	BankScore     int // value of their hand if banked now
	UniqueNumbers int
	Busted        bool
	Stayed        bool
}

// TurnView is the read-only state handed to an agent when it must decide.
// Every drawn card in Flip-7 is public, so the remaining pile's multiset is
// common knowledge; its order is not exposed.
type TurnView struct {
	Hand        []deck.Card
	Remaining   []deck.Card
	BankScore   int
	TotalScore  int
	Round       int
	TargetScore int
	Opponents   []OpponentView
}

// Agent represents any entity (human, bot or remote client) that can decide
// hit-or-stay. Agents receive immutable state and return a decision; the
// engine applies it.
type Agent interface {
	ChooseAction(view TurnView) Action
}

// CurrentView builds the TurnView for the acting player.
func (g *Game) CurrentView() TurnView {
	p := g.CurrentPlayer()

	view := TurnView{
		Hand:        append([]deck.Card(nil), p.Hand...),
		Remaining:   g.deck.Remaining(),
		BankScore:   p.Score(),
		TotalScore:  p.TotalScore,
		Round:       g.round,
		TargetScore: g.target,
	}
	for _, o := range g.players {
		if o == p {
			continue
		}
		view.Opponents = append(view.Opponents, OpponentView{
			Name:          o.Name,
			TotalScore:    o.TotalScore,
			BankScore:     o.Score(),
			UniqueNumbers: o.UniqueNumbers(),
			Busted:        o.Busted,
			Stayed:        o.Stayed,
		})
	}
	return view
}
