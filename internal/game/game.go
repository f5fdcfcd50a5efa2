package game

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/flipforbots/internal/deck"
)

// DefaultTargetScore is the running total that ends the game.
const DefaultTargetScore = 200

var (
	// ErrRoundInactive is returned when an action arrives between rounds
	ErrRoundInactive = errors.New("round is not active")

	// ErrTurnOver is returned when the acting player has already banked or busted
	ErrTurnOver = errors.New("player has already ended their turn")

	// ErrDeckEmpty is returned when no card can be drawn
	ErrDeckEmpty = errors.New("deck is empty")

	// ErrGameOver is returned for actions on a finished game
	ErrGameOver = errors.New("game is over")
)

// Game holds the state of one Flip-7 game: the shared deck, the seats, turn
// rotation and round/game progression. It performs no I/O and no logging;
// the Engine drives it and the caller applies agent decisions.
type Game struct {
	players     []*Player
	deck        *deck.Deck
	current     int
	round       int
	roundActive bool
	over        bool
	winner      *Player
	target      int
}

// Option customises game construction
type Option func(*Game)

// WithTargetScore overrides the total score that ends the game
func WithTargetScore(target int) Option {
	return func(g *Game) { g.target = target }
}

// New creates a game with one seat per name, a freshly shuffled deck and the
// first round active. At least two seats are required.
func New(rng *rand.Rand, names []string, opts ...Option) (*Game, error) {
	if len(names) < 2 {
		return nil, fmt.Errorf("flip-7 needs at least 2 players, got %d", len(names))
	}

	g := &Game{
		deck:        deck.New(rng),
		round:       1,
		roundActive: true,
		target:      DefaultTargetScore,
	}
	for _, name := range names {
		g.players = append(g.players, NewPlayer(name))
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Players returns the seats in turn order
func (g *Game) Players() []*Player { return g.players }

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() *Player { return g.players[g.current] }

// CurrentIndex returns the seat index of the acting player
func (g *Game) CurrentIndex() int { return g.current }

// Deck returns the shared draw pile
func (g *Game) Deck() *deck.Deck { return g.deck }

// Round returns the 1-based round number
func (g *Game) Round() int { return g.round }

// RoundActive reports whether a round is in progress
func (g *Game) RoundActive() bool { return g.roundActive }

// Over reports whether the game has finished
func (g *Game) Over() bool { return g.over }

// Winner returns the winning player once the game is over, else nil
func (g *Game) Winner() *Player { return g.winner }

// TargetScore returns the total that ends the game
func (g *Game) TargetScore() int { return g.target }

// HitOutcome describes what a draw did to the acting player's turn.
type HitOutcome struct {
	Card       deck.Card
	Busted     bool
	SevenBonus bool
	RoundEnded bool
}

// Hit draws a card for the acting player. A duplicate number busts the turn;
// a seventh unique number banks the hand with the bonus and ends the round.
func (g *Game) Hit() (HitOutcome, error) {
	if !g.roundActive {
		return HitOutcome{}, ErrRoundInactive
	}
	p := g.CurrentPlayer()
	if !p.CanAct() {
		return HitOutcome{}, ErrTurnOver
	}

	card, ok := g.deck.Draw()
	if !ok {
		return HitOutcome{}, ErrDeckEmpty
	}
	p.AddCard(card)

	out := HitOutcome{Card: card, Busted: p.Busted, SevenBonus: p.SevenBonus}
	if p.SevenBonus {
		// Seven uniques end the round for everyone; remaining players
		// bank whatever they hold.
		g.endRound()
		out.RoundEnded = true
		return out, nil
	}

	g.advance()
	out.RoundEnded = !g.roundActive
	return out, nil
}

// Stay banks the acting player's hand and ends their turn.
func (g *Game) Stay() error {
	if !g.roundActive {
		return ErrRoundInactive
	}
	p := g.CurrentPlayer()
	if !p.CanAct() {
		return ErrTurnOver
	}
	p.Stay()
	g.advance()
	return nil
}

// advance moves to the next player who can still act, ending the round when
// nobody can.
func (g *Game) advance() {
	for i := 1; i <= len(g.players); i++ {
		next := (g.current + i) % len(g.players)
		if g.players[next].CanAct() {
			g.current = next
			return
		}
	}
	g.endRound()
}

// endRound banks every hand, moves the round's cards to the discards and
// checks the running totals against the target.
func (g *Game) endRound() {
	g.roundActive = false

	for _, p := range g.players {
		p.RoundScore = p.Score()
		p.TotalScore += p.RoundScore
	}
	g.deck.EndRound()

	// Highest total at or past the target wins; earlier seat breaks ties.
	var winner *Player
	for _, p := range g.players {
		if p.TotalScore >= g.target && (winner == nil || p.TotalScore > winner.TotalScore) {
			winner = p
		}
	}
	if winner != nil {
		g.over = true
		g.winner = winner
	}
}

// StartNewRound resets the seats for the next round. The deck is never
// reset between rounds; drawn cards only return via the discard reshuffle.
func (g *Game) StartNewRound() error {
	if g.over {
		return ErrGameOver
	}
	if g.roundActive {
		return errors.New("round already active")
	}

	g.round++
	g.roundActive = true
	g.current = 0
	for _, p := range g.players {
		p.ResetForRound()
	}
	return nil
}
