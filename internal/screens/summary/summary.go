// Package summary shows the outcome of a finished quiz session.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/holavoca/internal/router"
	"github.com/abhisek/holavoca/internal/screen"
	"github.com/abhisek/holavoca/internal/ui/components"
	"github.com/abhisek/holavoca/internal/ui/layout"
	"github.com/abhisek/holavoca/internal/ui/theme"
)

// Result is the finished session's outcome.
type Result struct {
	UnitID    string
	UnitTitle string
	Score     int
	Total     int
	Threshold int
	Passed    bool
	IsReview  bool
	XPEarned  int
	// GemsEarned is the gem bonus for completing the unit; zero for
	// failed runs and review sessions.
	GemsEarned int
}

// Screen displays a session result.
type Screen struct {
	result Result
	// retry rebuilds a fresh session for the same unit; nil disables
	// the retry key.
	retry func() tea.Msg
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the summary screen. retry may be nil.
func New(result Result, retry func() tea.Msg) *Screen {
	return &Screen{result: result, retry: retry}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Results"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
	}
	if s.retry != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Try again"})
	}
	return hints
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "r", "R":
		if s.retry != nil {
			return s, s.retry
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	r := s.result

	var b strings.Builder
	b.WriteString("\n")

	headline := "Unit passed!"
	headlineColor := theme.Success
	switch {
	case r.IsReview:
		headline = "Review finished"
		headlineColor = theme.Secondary
	case !r.Passed:
		headline = "Not this time"
		headlineColor = theme.Error
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(headlineColor).
		Bold(true).
		Render(headline))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(r.UnitTitle))
	b.WriteString("\n\n")

	accuracy := 0.0
	if r.Total > 0 {
		accuracy = float64(r.Score) / float64(r.Total)
	}
	statsLine := fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
		r.Total, r.Score, accuracy*100)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n")

	bar := components.NewProgressBar("", accuracy, true, min(width-8, 40))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")

	if !r.IsReview {
		needed := fmt.Sprintf("Pass mark: %d/%d", r.Threshold, r.Total)
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(needed))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Rewards")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("⚡ +%d xp", r.XPEarned))))
	b.WriteString("\n")
	if r.GemsEarned > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
				Render(fmt.Sprintf("◆ +%d gems", r.GemsEarned))))
		b.WriteString("\n")
	}

	if !r.Passed && !r.IsReview {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Press R to try the unit again."))
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
