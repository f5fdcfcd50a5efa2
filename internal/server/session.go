package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/flipforbots/internal/bot"
	"github.com/lox/flipforbots/internal/game"
	"github.com/lox/flipforbots/internal/randutil"
)

// maxSessionRounds guards against games that can never reach the target
const maxSessionRounds = 1000

// session runs one game between a connected client and the configured
// house bots, streaming every event back over the connection.
type session struct {
	cfg    GameConfig
	game   *game.Game
	agents map[string]game.Agent
	net    *NetworkAgent
	conn   messageSender
	logger *log.Logger
}

func (s *Server) newSession(conn *Connection, playerName string, cfg GameConfig) (*session, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)

	names := []string{playerName}
	agents := make(map[string]game.Agent, len(cfg.Bots)+1)

	netAgent := NewNetworkAgent(playerName, conn, s.logger, cfg.DecisionTimeout, s.clock)
	agents[playerName] = netAgent

	for i, kind := range cfg.Bots {
		b, err := bot.New(kind, rng, s.logger)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("%s-%d", kind, i+1)
		names = append(names, name)
		agents[name] = b
	}

	g, err := game.New(rng, names, game.WithTargetScore(cfg.TargetScore))
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:    cfg,
		game:   g,
		agents: agents,
		net:    netAgent,
		conn:   conn,
		logger: s.logger.WithPrefix("session").With("player", playerName, "game", cfg.Name),
	}, nil
}

// run plays the game to completion, or until the context is cancelled
func (s *session) run(ctx context.Context) error {
	g := s.game

	names := make([]string, 0, len(g.Players()))
	for _, p := range g.Players() {
		names = append(names, p.Name)
	}
	s.send(MessageTypeGameStart, GameStartData{
		Players:     names,
		TargetScore: g.TargetScore(),
	})

	// The first round is live as soon as the game is built; later rounds
	// start between iterations.
	for {
		s.send(MessageTypeRoundStart, RoundStartData{
			Round:          g.Round(),
			CardsRemaining: g.Deck().CardsRemaining(),
		})

		for g.RoundActive() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s.playTurn(); err != nil {
				return err
			}
		}

		scores := make(map[string]int, len(g.Players()))
		totals := make(map[string]int, len(g.Players()))
		for _, p := range g.Players() {
			scores[p.Name] = p.RoundScore
			totals[p.Name] = p.TotalScore
		}
		s.send(MessageTypeRoundEnd, RoundEndData{
			Round:  g.Round(),
			Scores: scores,
			Totals: totals,
		})

		if g.Over() {
			break
		}
		if g.Round() >= maxSessionRounds {
			return fmt.Errorf("game exceeded %d rounds", maxSessionRounds)
		}
		if err := g.StartNewRound(); err != nil {
			return err
		}
	}

	totals := make(map[string]int, len(g.Players()))
	for _, p := range g.Players() {
		totals[p.Name] = p.TotalScore
	}
	s.send(MessageTypeGameEnd, GameEndData{
		Winner: g.Winner().Name,
		Rounds: g.Round(),
		Totals: totals,
	})
	s.logger.Info("Game finished", "winner", g.Winner().Name, "rounds", g.Round())

	return nil
}

func (s *session) playTurn() error {
	g := s.game
	p := g.CurrentPlayer()

	action := s.agents[p.Name].ChooseAction(g.CurrentView())

	if action == game.ActionHit {
		out, err := g.Hit()
		if errors.Is(err, game.ErrDeckEmpty) {
			// No cards left to flip; the hand banks instead
			return s.stayCurrent(p)
		}
		if err != nil {
			return err
		}
		s.send(MessageTypeCardFlipped, CardFlippedData{
			Player:     p.Name,
			Card:       out.Card.String(),
			Busted:     out.Busted,
			SevenBonus: out.SevenBonus,
			BankScore:  p.Score(),
		})
		return nil
	}

	return s.stayCurrent(p)
}

func (s *session) stayCurrent(p *game.Player) error {
	banked := p.Score()
	if err := s.game.Stay(); err != nil {
		return err
	}
	s.send(MessageTypePlayerStayed, PlayerStayedData{
		Player: p.Name,
		Banked: banked,
	})
	return nil
}

// send serializes an event for the client; send failures only log since the
// connection teardown path already handles the disconnect.
func (s *session) send(messageType MessageType, data interface{}) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		s.logger.Error("Failed to create message", "type", messageType, "error", err)
		return
	}
	if err := s.conn.SendMessage(msg); err != nil {
		s.logger.Debug("Failed to send message", "type", messageType, "error", err)
	}
}
