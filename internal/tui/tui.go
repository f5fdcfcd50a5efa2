// Package tui provides an interactive terminal game of one human seat
// against bot opponents, with solver hints on demand.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/flipforbots/internal/bot"
	"github.com/lox/flipforbots/internal/display"
	"github.com/lox/flipforbots/internal/game"
	"github.com/lox/flipforbots/internal/randutil"
	"github.com/lox/flipforbots/internal/solver"
)

const humanName = "you"

// Config sets up an interactive game.
type Config struct {
	Bots        []string // bot kinds for the opponent seats
	TargetScore int
	Seed        int64
	Logger      *log.Logger
}

// Model is the Bubble Tea model for an interactive game.
type Model struct {
	game   *game.Game
	agents map[string]game.Agent
	solver *solver.Solver
	styles *display.Styles
	logger *log.Logger

	logViewport viewport.Model
	actionInput textinput.Model

	gameLog     []string
	focusedPane int // 0 = log, 1 = input
	quitting    bool
	gameOver    bool

	width  int
	height int
}

// NewModel creates a model with the human in seat 0.
func NewModel(cfg Config) (*Model, error) {
	if len(cfg.Bots) < 1 {
		return nil, fmt.Errorf("at least one bot opponent is required")
	}
	if cfg.TargetScore <= 0 {
		cfg.TargetScore = game.DefaultTargetScore
	}

	rng := randutil.New(cfg.Seed)
	names := make([]string, 0, 1+len(cfg.Bots))
	names = append(names, humanName)
	agents := make(map[string]game.Agent, len(cfg.Bots))
	for i, kind := range cfg.Bots {
		name := fmt.Sprintf("%s-%d", kind, i+1)
		agent, err := bot.New(kind, rng, cfg.Logger)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		agents[name] = agent
	}

	g, err := game.New(rng, names, game.WithTargetScore(cfg.TargetScore))
	if err != nil {
		return nil, err
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "hit, stay, odds, scores, help, quit"
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		game:        g,
		agents:      agents,
		solver:      solver.New(cfg.Logger),
		styles:      display.NewStyles(),
		logger:      cfg.Logger.WithPrefix("tui"),
		logViewport: vp,
		actionInput: ti,
		focusedPane: 1,
	}

	m.addLog(fmt.Sprintf("Flip 7 to %d points against %s.", cfg.TargetScore, strings.Join(cfg.Bots, ", ")))
	m.addLog("Commands: hit (h), stay (s), odds (?), scores, help, quit.")
	m.addLog("")
	m.addLog(fmt.Sprintf("--- Round %d ---", g.Round()))
	return m, nil
}

// Run plays an interactive game to completion.
func Run(cfg Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				input := strings.TrimSpace(m.actionInput.Value())
				m.actionInput.SetValue("")
				if quit := m.handleCommand(input); quit {
					m.quitting = true
					return m, tea.Sequence(tea.ClearScreen, tea.Quit)
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleCommand applies one user command, returning true to quit.
func (m *Model) handleCommand(input string) bool {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "quit", "q", "exit":
		return true
	case "help":
		m.addLog("hit (h)     flip another card")
		m.addLog("stay (s)    bank your hand")
		m.addLog("odds (?)    show the solver's expected values")
		m.addLog("scores      show all banked totals")
		m.addLog("quit (q)    leave the game")
		return false
	case "scores", "players":
		for _, line := range strings.Split(m.styles.RenderScoreboard(m.game.Players(), m.currentName()), "\n") {
			if line != "" {
				m.addLog(line)
			}
		}
		return false
	case "odds", "?", "o":
		m.showOdds()
		return false
	case "hit", "h":
		m.playHuman(game.ActionHit)
		return false
	case "stay", "s":
		m.playHuman(game.ActionStay)
		return false
	default:
		m.addLog(fmt.Sprintf("Unknown command %q. Type 'help' for commands.", fields[0]))
		return false
	}
}

func (m *Model) currentName() string {
	if m.game.RoundActive() {
		return m.game.CurrentPlayer().Name
	}
	return ""
}

func (m *Model) humansTurn() bool {
	return m.game.RoundActive() && m.game.CurrentPlayer().Name == humanName
}

func (m *Model) showOdds() {
	if m.gameOver {
		m.addLog("The game is over.")
		return
	}
	if !m.humansTurn() {
		m.addLog("Not your turn.")
		return
	}
	view := m.game.CurrentView()
	eval := m.solver.Evaluate(view.Hand, view.Remaining)
	m.addLog(fmt.Sprintf("Bank now: %d points. Hit EV: %.3f. Optimal: %s.",
		eval.Bank, eval.HitEV, strings.ToLower(eval.Action.String())))
}

// playHuman applies the human action then advances the bots until it is
// the human's turn again or the round settles.
func (m *Model) playHuman(action game.Action) {
	if m.gameOver {
		m.addLog("The game is over. Type 'quit' to leave.")
		return
	}
	if !m.humansTurn() {
		m.addLog("Not your turn.")
		return
	}

	if err := m.applyAction(m.game.CurrentPlayer(), action); err != nil {
		m.addLog(fmt.Sprintf("Error: %v", err))
		return
	}
	m.advance()
}

// advance runs bot turns and round transitions until the game needs human
// input again.
func (m *Model) advance() {
	for {
		if m.game.RoundActive() {
			p := m.game.CurrentPlayer()
			if p.Name == humanName {
				return
			}
			action := m.agents[p.Name].ChooseAction(m.game.CurrentView())
			if err := m.applyAction(p, action); err != nil {
				m.addLog(fmt.Sprintf("Error: %v", err))
				return
			}
			continue
		}

		m.logRoundSummary()
		if m.game.Over() {
			m.logGameOver()
			return
		}
		if err := m.game.StartNewRound(); err != nil {
			m.addLog(fmt.Sprintf("Error: %v", err))
			return
		}
		m.addLog("")
		m.addLog(fmt.Sprintf("--- Round %d ---", m.game.Round()))
	}
}

func (m *Model) applyAction(p *game.Player, action game.Action) error {
	if action == game.ActionStay {
		banked := p.Score()
		if err := m.game.Stay(); err != nil {
			return err
		}
		m.addLog(fmt.Sprintf("%s banks %d points.", p.Name, banked))
		return nil
	}

	out, err := m.game.Hit()
	if errors.Is(err, game.ErrDeckEmpty) {
		m.addLog("The deck is out of cards; banking instead.")
		return m.game.Stay()
	}
	if err != nil {
		return err
	}

	switch {
	case out.Busted:
		m.addLog(fmt.Sprintf("%s flips %s and BUSTS.", p.Name, m.styles.RenderCard(out.Card)))
	case out.SevenBonus:
		m.addLog(fmt.Sprintf("%s flips %s - FLIP 7! +15 bonus, round over.", p.Name, m.styles.RenderCard(out.Card)))
	default:
		m.addLog(fmt.Sprintf("%s flips %s (hand %s, worth %d).",
			p.Name, m.styles.RenderCard(out.Card), m.styles.RenderHand(p.Hand), p.Score()))
	}
	return nil
}

func (m *Model) logRoundSummary() {
	m.addLog("")
	m.addLog("Round complete:")
	for _, p := range m.game.Players() {
		m.addLog(fmt.Sprintf("  %s banked %d, total %d", p.Name, p.RoundScore, p.TotalScore))
	}
}

func (m *Model) logGameOver() {
	m.gameOver = true
	m.addLog("")
	if w := m.game.Winner(); w != nil {
		if w.Name == humanName {
			m.addLog("You win!")
		} else {
			m.addLog(fmt.Sprintf("%s wins with %d points.", w.Name, w.TotalScore))
		}
	}
	m.addLog("Type 'quit' to leave.")
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderLogPane(), m.renderActionPane())
}

func (m *Model) renderLogPane() string {
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))

	style := LogPaneStyle.Width(m.width - 4)
	if m.focusedPane == 0 {
		style = style.BorderForeground(FocusedBorderColor)
	}
	return style.Render(m.logViewport.View())
}

func (m *Model) renderActionPane() string {
	var content strings.Builder

	if m.humansTurn() {
		p := m.game.CurrentPlayer()
		content.WriteString(HandInfoStyle.Render(fmt.Sprintf(
			"Hand: %s  Worth: %d  Banked: %d  Deck: %d cards",
			m.styles.RenderHand(p.Hand), p.Score(), p.TotalScore, m.game.Deck().CardsRemaining())))
		content.WriteString("\n")
		content.WriteString(ActionsStyle.Render("Actions: [hit] [stay] [odds]"))
		content.WriteString("\n")
	} else if m.gameOver {
		content.WriteString(HandInfoStyle.Render("Game over"))
		content.WriteString("\n")
	}

	content.WriteString(m.actionInput.View())
	content.WriteString("\n")
	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}

	style := ActionPaneStyle.Width(m.width - 4)
	if m.focusedPane == 1 {
		style = style.BorderForeground(FocusedBorderColor)
	}
	return style.Render(content.String())
}

func (m *Model) updateDimensions() {
	if m.height <= 0 || m.width <= 0 {
		return
	}
	actionPaneHeight := 7
	logHeight := m.height - actionPaneHeight - 1
	if logHeight < 3 {
		logHeight = 3
	}
	m.logViewport.Width = m.width - 4
	m.logViewport.Height = logHeight - 4
	m.actionInput.Width = m.width - 8
}

func (m *Model) addLog(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}
