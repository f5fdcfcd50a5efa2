package rl

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/flipforbots/internal/game"
	"github.com/lox/flipforbots/internal/randutil"
)

// Reward shaping. Immediate rewards fire on the learner's own action,
// round and game rewards fire once when the round or game settles.
const (
	rewardBust       = -10.0
	rewardSevenBonus = 50.0
	rewardStayed     = 1.0
	rewardRoundWin   = 20.0
	rewardRoundLoss  = -10.0
	rewardGameWin    = 100.0
	rewardGameLoss   = -50.0
)

const (
	learnerName      = "learner"
	maxEpisodeRounds = 1000
)

// TrainerConfig controls a training run.
type TrainerConfig struct {
	Episodes        int
	EvalEvery       int // greedy evaluation interval in episodes (0 disables)
	EvalEpisodes    int
	ProgressEvery   int // progress callback interval in episodes
	Opponents       []game.Agent
	OpponentNames   []string
	TargetScore     int
	Seed            int64
	CheckpointPath  string
	CheckpointEvery int // episodes between checkpoints (0 disables)
	Agent           Config
}

// DefaultTrainerConfig returns a run against two mid-strength opponents'
// worth of defaults; callers still supply the opponents themselves.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		Episodes:      1000,
		EvalEvery:     100,
		EvalEpisodes:  10,
		ProgressEvery: 100,
		TargetScore:   game.DefaultTargetScore,
		Seed:          1,
		Agent:         DefaultConfig(),
	}
}

// Progress is passed to the progress callback during training.
type Progress struct {
	Episode   int
	Epsilon   float64
	Alpha     float64
	States    int
	AvgReward float64 // mean episode reward since the last report
	WinRate   float64 // from the most recent greedy evaluation, -1 before one runs
}

// Trainer runs Q-learning episodes of full games against fixed opponents.
type Trainer struct {
	cfg    TrainerConfig
	agent  *Agent
	logger *log.Logger
}

// NewTrainer creates a trainer writing into the given table.
func NewTrainer(table *QTable, cfg TrainerConfig, logger *log.Logger) (*Trainer, error) {
	if cfg.Episodes <= 0 {
		return nil, fmt.Errorf("episodes must be positive (got %d)", cfg.Episodes)
	}
	if len(cfg.Opponents) < 1 {
		return nil, errors.New("at least one opponent is required")
	}
	if len(cfg.Opponents) != len(cfg.OpponentNames) {
		return nil, fmt.Errorf("got %d opponents but %d names",
			len(cfg.Opponents), len(cfg.OpponentNames))
	}
	agentRng := randutil.New(cfg.Seed)
	return &Trainer{
		cfg:    cfg,
		agent:  NewAgent(table, cfg.Agent, agentRng, logger),
		logger: logger.WithPrefix("trainer"),
	}, nil
}

// Agent returns the training agent, mainly for inspecting stats afterward.
func (t *Trainer) Agent() *Agent { return t.agent }

// Run trains for the configured number of episodes, invoking progress
// periodically. It stops early if ctx is cancelled.
func (t *Trainer) Run(ctx context.Context, progress func(Progress)) error {
	t.logger.Info("starting training",
		"episodes", t.cfg.Episodes,
		"opponents", t.cfg.OpponentNames,
		"epsilon", t.agent.Epsilon(),
		"alpha", t.agent.Alpha())

	var rewardSum float64
	lastWinRate := -1.0

	for episode := 1; episode <= t.cfg.Episodes; episode++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		reward, _, err := t.playEpisode(randutil.GameSeed(t.cfg.Seed, episode), true)
		if err != nil {
			return fmt.Errorf("episode %d: %w", episode, err)
		}
		rewardSum += reward

		t.agent.DecayEpsilon()
		t.agent.DecayAlpha()

		if t.cfg.EvalEvery > 0 && episode%t.cfg.EvalEvery == 0 {
			winRate, err := t.Evaluate(ctx, t.cfg.EvalEpisodes, episode)
			if err != nil {
				return err
			}
			lastWinRate = winRate
		}

		if t.cfg.CheckpointEvery > 0 && episode%t.cfg.CheckpointEvery == 0 && t.cfg.CheckpointPath != "" {
			if err := t.agent.Table().Save(t.cfg.CheckpointPath); err != nil {
				return fmt.Errorf("checkpoint at episode %d: %w", episode, err)
			}
			t.logger.Debug("wrote checkpoint", "episode", episode, "path", t.cfg.CheckpointPath)
		}

		if progress != nil && t.cfg.ProgressEvery > 0 && episode%t.cfg.ProgressEvery == 0 {
			progress(Progress{
				Episode:   episode,
				Epsilon:   t.agent.Epsilon(),
				Alpha:     t.agent.Alpha(),
				States:    t.agent.Table().Len(),
				AvgReward: rewardSum / float64(t.cfg.ProgressEvery),
				WinRate:   lastWinRate,
			})
			rewardSum = 0
		}
	}

	stats := t.agent.Stats()
	t.logger.Info("training complete",
		"states", t.agent.Table().Len(),
		"updates", stats.Updates,
		"explorations", stats.Explorations,
		"exploitations", stats.Exploitations)
	return nil
}

// Evaluate plays greedy (no exploration, no updates) episodes and returns
// the learner's win rate.
func (t *Trainer) Evaluate(ctx context.Context, episodes, seedOffset int) (float64, error) {
	if episodes <= 0 {
		return 0, nil
	}
	wins := 0
	for i := 0; i < episodes; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		// Offset keeps evaluation decks disjoint from training decks.
		seed := randutil.GameSeed(t.cfg.Seed, 1<<20+seedOffset+i)
		_, won, err := t.playEpisode(seed, false)
		if err != nil {
			return 0, err
		}
		if won {
			wins++
		}
	}
	winRate := float64(wins) / float64(episodes)
	t.logger.Info("evaluation", "wins", wins, "episodes", episodes, "winRate", winRate)
	return winRate, nil
}

// transition remembers the learner's last state-action pair so the round
// and game rewards can be credited to it even when an opponent's action
// is what ends the round.
type transition struct {
	state  State
	action game.Action
}

func (t *Trainer) playEpisode(seed int64, training bool) (float64, bool, error) {
	names := append([]string{learnerName}, t.cfg.OpponentNames...)
	g, err := game.New(randutil.New(seed), names, game.WithTargetScore(t.cfg.TargetScore))
	if err != nil {
		return 0, false, err
	}

	opponents := make(map[string]game.Agent, len(t.cfg.Opponents))
	for i, name := range t.cfg.OpponentNames {
		opponents[name] = t.cfg.Opponents[i]
	}

	var episodeReward float64
	var pending *transition

	for !g.Over() {
		for g.RoundActive() {
			p := g.CurrentPlayer()
			if p.Name != learnerName {
				if err := t.applyOpponent(g, opponents[p.Name]); err != nil {
					return 0, false, err
				}
				if !g.RoundActive() && pending != nil {
					// An opponent closed out the round; settle the
					// learner's last decision.
					reward := t.settleReward(g)
					if training {
						t.agent.Update(pending.state, pending.action, reward, State{}, true)
					}
					episodeReward += reward
					pending = nil
				}
				continue
			}

			learner := p
			s := StateOf(learner, g.Round(), bestOpponentTotal(g, learner))
			action := t.agent.SelectAction(s, training)

			if err := applyAction(g, action); err != nil {
				return 0, false, err
			}

			reward := immediateReward(learner)
			if g.RoundActive() {
				next := StateOf(learner, g.Round(), bestOpponentTotal(g, learner))
				if training {
					t.agent.Update(s, action, reward, next, false)
				}
				pending = &transition{state: s, action: action}
			} else {
				reward += t.settleReward(g)
				if training {
					t.agent.Update(s, action, reward, State{}, true)
				}
				pending = nil
			}
			episodeReward += reward
		}

		if g.Over() {
			break
		}
		if g.Round() >= maxEpisodeRounds {
			return 0, false, fmt.Errorf("episode exceeded %d rounds", maxEpisodeRounds)
		}
		if err := g.StartNewRound(); err != nil {
			return 0, false, err
		}
	}

	won := g.Winner() != nil && g.Winner().Name == learnerName
	return episodeReward, won, nil
}

func (t *Trainer) applyOpponent(g *game.Game, agent game.Agent) error {
	action := agent.ChooseAction(g.CurrentView())
	return applyAction(g, action)
}

func applyAction(g *game.Game, action game.Action) error {
	if action == game.ActionHit {
		_, err := g.Hit()
		if errors.Is(err, game.ErrDeckEmpty) {
			return g.Stay()
		}
		return err
	}
	return g.Stay()
}

// immediateReward scores the learner's situation right after its action.
func immediateReward(p *game.Player) float64 {
	switch {
	case p.Busted:
		return rewardBust
	case p.SevenBonus:
		return rewardSevenBonus
	case p.Stayed:
		return rewardStayed
	default:
		return 0
	}
}

// settleReward scores a finished round, plus the game outcome if this
// round ended it.
func (t *Trainer) settleReward(g *game.Game) float64 {
	var learner *game.Player
	best := 0
	for _, p := range g.Players() {
		if p.Name == learnerName {
			learner = p
			continue
		}
		if p.RoundScore > best {
			best = p.RoundScore
		}
	}

	reward := 0.0
	switch {
	case learner.RoundScore > best:
		reward += rewardRoundWin
	case learner.RoundScore < best:
		reward += rewardRoundLoss
	}

	if g.Over() {
		if w := g.Winner(); w != nil && w.Name == learnerName {
			reward += rewardGameWin
		} else {
			reward += rewardGameLoss
		}
	}
	return reward
}

func bestOpponentTotal(g *game.Game, learner *game.Player) int {
	best := 0
	for _, p := range g.Players() {
		if p != learner && p.TotalScore > best {
			best = p.TotalScore
		}
	}
	return best
}
