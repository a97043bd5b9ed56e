// Package leaderboard shows the weekly ranking, falling back to a demo
// board when the cloud is unreachable.
package leaderboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/holavoca/internal/cloud"
	"github.com/abhisek/holavoca/internal/router"
	"github.com/abhisek/holavoca/internal/screen"
	"github.com/abhisek/holavoca/internal/ui/layout"
	"github.com/abhisek/holavoca/internal/ui/theme"
)

// Fetch loads the live leaderboard rows.
type Fetch func(ctx context.Context) ([]cloud.Leader, error)

type leadersMsg struct {
	Leaders []cloud.Leader
	Demo    bool
}

// Screen displays the leaderboard.
type Screen struct {
	fetch   Fetch
	timeout time.Duration

	leaders []cloud.Leader
	demo    bool
	loading bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the leaderboard screen. A nil fetch skips the network and
// shows the demo board immediately.
func New(fetch Fetch, timeout time.Duration) *Screen {
	if timeout <= 0 {
		timeout = cloud.DefaultLeaderboardTimeout
	}
	return &Screen{fetch: fetch, timeout: timeout, loading: fetch != nil}
}

func (s *Screen) Init() tea.Cmd {
	if s.fetch == nil {
		return func() tea.Msg {
			return leadersMsg{Leaders: cloud.DemoLeaders(), Demo: true}
		}
	}
	fetch, timeout := s.fetch, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		leaders, err := fetch(ctx)
		if err != nil || len(leaders) == 0 {
			return leadersMsg{Leaders: cloud.DemoLeaders(), Demo: true}
		}
		return leadersMsg{Leaders: leaders}
	}
}

func (s *Screen) Title() string {
	return "Leaderboard"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case leadersMsg:
		s.leaders = msg.Leaders
		s.demo = msg.Demo
		s.loading = false
		return s, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	if s.loading {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Loading leaderboard...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render("🏆 This week's top learners"))
	b.WriteString("\n")
	if s.demo {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("(demo board, cloud sync is off)"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, l := range s.leaders {
		rank := fmt.Sprintf("%2d.", i+1)
		switch i {
		case 0:
			rank = "🥇"
		case 1:
			rank = "🥈"
		case 2:
			rank = "🥉"
		}

		line := fmt.Sprintf("%s %s %-14s ⚡ %-5d 🔥 %d",
			rank, l.Avatar, l.DisplayName, l.XP, l.Streak)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if l.IsSelf {
			line += "  (you)"
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
