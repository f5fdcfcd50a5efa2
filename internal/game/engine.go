package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// maxRounds caps a game as a guard against agents that never bank while the
// discard reshuffle keeps the deck alive.
const maxRounds = 1000

// Engine drives a complete game, asking each seat's agent for decisions and
// applying them. It is shared between simulation, training and the server.
type Engine struct {
	game   *Game
	agents map[string]Agent
	logger *log.Logger
}

// NewEngine creates an engine. Every seat must have an agent.
func NewEngine(g *Game, agents map[string]Agent, logger *log.Logger) (*Engine, error) {
	for _, p := range g.Players() {
		if agents[p.Name] == nil {
			return nil, fmt.Errorf("no agent for player %q", p.Name)
		}
	}
	return &Engine{
		game:   g,
		agents: agents,
		logger: logger.WithPrefix("engine"),
	}, nil
}

// GameResult summarises a finished game.
type GameResult struct {
	Winner       string
	Rounds       int
	FinalScores  map[string]int
	Busts        map[string]int
	SevenBonuses map[string]int
}

// Play runs the game to completion and returns the result.
func (e *Engine) Play() (*GameResult, error) {
	g := e.game
	result := &GameResult{
		FinalScores:  make(map[string]int),
		Busts:        make(map[string]int),
		SevenBonuses: make(map[string]int),
	}

	for !g.Over() {
		if err := e.playRound(result); err != nil {
			return nil, err
		}
		if g.Over() {
			break
		}
		if g.Round() >= maxRounds {
			return nil, fmt.Errorf("game exceeded %d rounds without a winner", maxRounds)
		}
		if err := g.StartNewRound(); err != nil {
			return nil, err
		}
	}

	for _, p := range g.Players() {
		result.FinalScores[p.Name] = p.TotalScore
	}
	result.Rounds = g.Round()
	if w := g.Winner(); w != nil {
		result.Winner = w.Name
	}

	e.logger.Debug("game finished",
		"winner", result.Winner,
		"rounds", result.Rounds,
		"scores", result.FinalScores)
	return result, nil
}

func (e *Engine) playRound(result *GameResult) error {
	g := e.game

	for g.RoundActive() {
		p := g.CurrentPlayer()
		agent := e.agents[p.Name]

		switch agent.ChooseAction(g.CurrentView()) {
		case ActionHit:
			out, err := g.Hit()
			if errors.Is(err, ErrDeckEmpty) {
				// Nothing left to draw even after reshuffling; the
				// player banks instead.
				e.logger.Debug("deck empty on hit, staying", "player", p.Name)
				if err := g.Stay(); err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return fmt.Errorf("hit for %s: %w", p.Name, err)
			}
			e.logger.Debug("hit",
				"player", p.Name,
				"card", out.Card.String(),
				"busted", out.Busted,
				"sevenBonus", out.SevenBonus)
			if out.Busted {
				result.Busts[p.Name]++
			}
			if out.SevenBonus {
				result.SevenBonuses[p.Name]++
			}
		case ActionStay:
			if err := g.Stay(); err != nil {
				return fmt.Errorf("stay for %s: %w", p.Name, err)
			}
			e.logger.Debug("stay", "player", p.Name, "banked", p.Score())
		}
	}
	return nil
}
