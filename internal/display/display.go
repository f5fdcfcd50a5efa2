// Package display renders cards, scoreboards and simulation summaries for
// the terminal. The TUI and the CLI commands share these styles.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/flipforbots/internal/deck"
	"github.com/lox/flipforbots/internal/game"
	"github.com/lox/flipforbots/internal/statistics"
)

// Styles contains all styling for terminal output.
type Styles struct {
	NumberCard   lipgloss.Style
	ModifierCard lipgloss.Style
	Header       lipgloss.Style
	Success      lipgloss.Style
	Error        lipgloss.Style
	Warning      lipgloss.Style
	Info         lipgloss.Style
	Bold         lipgloss.Style

	plain bool
}

// NewStyles builds the default style set, degrading to plain text when the
// terminal reports no color support.
func NewStyles() *Styles {
	if termenv.EnvColorProfile() == termenv.Ascii {
		return &Styles{plain: true}
	}
	return &Styles{
		NumberCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		ModifierCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// RenderCard formats a single card.
func (s *Styles) RenderCard(c deck.Card) string {
	if s.plain {
		return c.String()
	}
	if c.Type == deck.Modifier {
		return s.ModifierCard.Render(c.String())
	}
	return s.NumberCard.Render(c.String())
}

// RenderHand formats a hand as a bracketed card list.
func (s *Styles) RenderHand(cards []deck.Card) string {
	if len(cards) == 0 {
		return "[]"
	}
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = s.RenderCard(c)
	}
	return "[" + strings.Join(rendered, " ") + "]"
}

// RenderScoreboard formats the banked totals for all players, marking the
// named current player.
func (s *Styles) RenderScoreboard(players []*game.Player, current string) string {
	var b strings.Builder
	for _, p := range players {
		marker := "  "
		if p.Name == current {
			marker = "> "
		}
		status := ""
		switch {
		case p.Busted:
			status = s.maybe(s.Error, " (busted)")
		case p.SevenBonus:
			status = s.maybe(s.Success, " (flip 7!)")
		case p.Stayed:
			status = s.maybe(s.Info, " (banked)")
		}
		fmt.Fprintf(&b, "%s%s: %d total, hand %s worth %d%s\n",
			marker, p.Name, p.TotalScore, s.RenderHand(p.Hand), p.Score(), status)
	}
	return b.String()
}

// RenderSummary formats simulation statistics into a report.
func (s *Styles) RenderSummary(stats *statistics.Statistics, subject string, opponents []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n",
		s.maybe(s.Header, fmt.Sprintf(" %s vs %s ", subject, strings.Join(opponents, ", "))))
	fmt.Fprintf(&b, "Games played:  %d\n", stats.Games)
	fmt.Fprintf(&b, "Win rate:      %.1f%% (%d wins)\n", stats.WinRate()*100, stats.Wins)
	fmt.Fprintf(&b, "Mean margin:   %+.2f points vs best opponent\n", stats.Mean())
	fmt.Fprintf(&b, "Median margin: %+.2f\n", stats.Median())

	lo, hi := stats.ConfidenceInterval95()
	fmt.Fprintf(&b, "95%% CI:        [%+.2f, %+.2f]\n", lo, hi)
	fmt.Fprintf(&b, "Percentiles:   P5=%+.1f P25=%+.1f P75=%+.1f P95=%+.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25),
		stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Fprintf(&b, "Mean score:    %.1f (best %d)\n", stats.MeanScore(), stats.MaxScore)
	fmt.Fprintf(&b, "Mean rounds:   %.1f\n", stats.MeanRounds())
	fmt.Fprintf(&b, "Busts/game:    %.2f\n", stats.BustRate())
	fmt.Fprintf(&b, "Flip 7s:       %d\n", stats.SevenBonuses)

	b.WriteString("Seats:\n")
	for seat := 0; seat < len(stats.SeatResults); seat++ {
		ss := stats.SeatResults[seat]
		if ss.Games == 0 {
			continue
		}
		fmt.Fprintf(&b, "  seat %d: %d games, %.1f%% wins, %+.2f mean margin\n",
			seat, ss.Games, stats.SeatWinRate(seat)*100, stats.SeatMean(seat))
	}
	return b.String()
}

// maybe applies a style unless running plain.
func (s *Styles) maybe(style lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return style.Render(text)
}
