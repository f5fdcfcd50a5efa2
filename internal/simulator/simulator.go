// Package simulator plays large batches of games to measure how a bot
// performs against a fixed field of opponents.
package simulator

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/flipforbots/internal/bot"
	"github.com/lox/flipforbots/internal/game"
	"github.com/lox/flipforbots/internal/randutil"
	"github.com/lox/flipforbots/internal/rl"
	"github.com/lox/flipforbots/internal/statistics"
)

const subjectName = "subject"

// Config holds configuration for running simulations.
type Config struct {
	Games       int
	Subject     string   // bot kind under test, or "q" with QTablePath set
	QTablePath  string   // q-table for a "q" subject
	Opponents   []string // bot kinds for the remaining seats
	TargetScore int
	Seed        int64
	Workers     int // 0 uses GOMAXPROCS
	Logger      *log.Logger
}

// Simulator runs batches of full games with seat rotation.
type Simulator struct {
	config Config
	qtable *rl.QTable
}

// New creates a new simulator with the given configuration.
func New(config Config) (*Simulator, error) {
	if config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive (got %d)", config.Games)
	}
	if len(config.Opponents) < 1 {
		return nil, fmt.Errorf("at least one opponent is required")
	}
	if config.TargetScore <= 0 {
		config.TargetScore = game.DefaultTargetScore
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}

	s := &Simulator{config: config}
	if config.Subject == "q" {
		if config.QTablePath == "" {
			return nil, fmt.Errorf("subject %q requires a q-table path", config.Subject)
		}
		table, err := rl.LoadQTable(config.QTablePath)
		if err != nil {
			return nil, err
		}
		s.qtable = table
	}
	return s, nil
}

// Run executes the simulation. Games are distributed over a worker pool
// and results are deterministic for a given seed regardless of worker
// count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	players := 1 + len(s.config.Opponents)
	s.config.Logger.Info("starting simulation",
		"games", s.config.Games,
		"subject", s.config.Subject,
		"opponents", s.config.Opponents,
		"players", players,
		"workers", s.config.Workers,
		"seed", s.config.Seed)

	stats := &statistics.Statistics{}
	var mu sync.Mutex

	grp, ctx := errgroup.WithContext(ctx)
	indexes := make(chan int)

	grp.Go(func() error {
		defer close(indexes)
		for i := 0; i < s.config.Games; i++ {
			select {
			case indexes <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < s.config.Workers; w++ {
		grp.Go(func() error {
			for i := range indexes {
				result, err := s.playGame(i)
				if err != nil {
					return fmt.Errorf("game %d: %w", i, err)
				}
				mu.Lock()
				stats.Add(result)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.config.Logger.Info("simulation complete",
		"games", stats.Games,
		"winRate", stats.WinRate(),
		"meanMargin", stats.Mean())
	return stats, nil
}

// playGame runs one game with the subject rotated through the seats.
func (s *Simulator) playGame(index int) (statistics.GameResult, error) {
	seed := randutil.GameSeed(s.config.Seed, index)
	rng := randutil.New(seed)
	players := 1 + len(s.config.Opponents)
	seat := index % players

	names := make([]string, players)
	agents := make(map[string]game.Agent, players)

	subject, err := s.makeSubject(rng)
	if err != nil {
		return statistics.GameResult{}, err
	}
	names[seat] = subjectName
	agents[subjectName] = subject

	oppIndex := 0
	for i := 0; i < players; i++ {
		if i == seat {
			continue
		}
		name := fmt.Sprintf("opp%d", oppIndex+1)
		agent, err := bot.New(s.config.Opponents[oppIndex], rng, s.config.Logger)
		if err != nil {
			return statistics.GameResult{}, err
		}
		names[i] = name
		agents[name] = agent
		oppIndex++
	}

	g, err := game.New(rng, names, game.WithTargetScore(s.config.TargetScore))
	if err != nil {
		return statistics.GameResult{}, err
	}
	engine, err := game.NewEngine(g, agents, s.config.Logger)
	if err != nil {
		return statistics.GameResult{}, err
	}
	result, err := engine.Play()
	if err != nil {
		return statistics.GameResult{}, err
	}

	score := result.FinalScores[subjectName]
	best := 0
	for name, total := range result.FinalScores {
		if name != subjectName && total > best {
			best = total
		}
	}

	return statistics.GameResult{
		Won:          result.Winner == subjectName,
		Score:        score,
		BestOpponent: best,
		Margin:       score - best,
		Rounds:       result.Rounds,
		Busts:        result.Busts[subjectName],
		SevenBonuses: result.SevenBonuses[subjectName],
		Seat:         seat,
		Seed:         seed,
	}, nil
}

func (s *Simulator) makeSubject(rng *rand.Rand) (game.Agent, error) {
	if s.config.Subject == "q" {
		return bot.NewQBot(s.qtable, s.config.Logger), nil
	}
	return bot.New(s.config.Subject, rng, s.config.Logger)
}
