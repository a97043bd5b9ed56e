// Package app assembles the Bubble Tea program around the screen router.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/holavoca/internal/progress"
	"github.com/abhisek/holavoca/internal/router"
	"github.com/abhisek/holavoca/internal/screen"
	"github.com/abhisek/holavoca/internal/screens/home"
	"github.com/abhisek/holavoca/internal/store"
	"github.com/abhisek/holavoca/internal/tutor"
	"github.com/abhisek/holavoca/internal/ui/layout"
	"github.com/abhisek/holavoca/internal/units"
	"github.com/abhisek/holavoca/internal/vocab"
)

// Deps carries everything the TUI needs. Optional collaborators are
// nil when their feature is not configured.
type Deps struct {
	Units    []units.Unit
	Pool     []vocab.Entry
	Progress *progress.Store
	Events   *store.EventRepo

	// Leaders is nil when cloud sync is off; the leaderboard screen
	// then shows demo data.
	Leaders       home.LeaderFetch
	LeaderTimeout time.Duration

	// NewTutor is nil when no language model is configured.
	NewTutor func() *tutor.Session

	Log *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	prog   *progress.Store
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(deps Deps) AppModel {
	homeScreen := home.New(
		deps.Units, deps.Pool, deps.Progress, deps.Events,
		deps.Leaders, deps.LeaderTimeout, deps.NewTutor, deps.Log,
	)
	return AppModel{
		router: router.New(homeScreen),
		prog:   deps.Progress,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	snap := m.prog.Snapshot()
	header := layout.RenderHeader(title, snap.XP, snap.Gems, snap.Streak, m.width)

	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// footerHints prefers the active screen's own hints.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints := p.KeyHints()
		return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
