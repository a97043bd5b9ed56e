// Package unitlist is the unit picker.
package unitlist

import (
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/holavoca/internal/progress"
	"github.com/abhisek/holavoca/internal/router"
	"github.com/abhisek/holavoca/internal/screen"
	sessionscreen "github.com/abhisek/holavoca/internal/screens/session"
	"github.com/abhisek/holavoca/internal/store"
	"github.com/abhisek/holavoca/internal/ui/layout"
	"github.com/abhisek/holavoca/internal/ui/theme"
	"github.com/abhisek/holavoca/internal/units"
	"github.com/abhisek/holavoca/internal/vocab"
)

// Screen lists all units and starts a session for the chosen one.
type Screen struct {
	allUnits []units.Unit
	pool     []vocab.Entry
	prog     *progress.Store
	events   *store.EventRepo
	log      *slog.Logger

	selected int
	offset   int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the unit picker. The cursor starts on the first
// uncompleted unit.
func New(allUnits []units.Unit, pool []vocab.Entry, prog *progress.Store, events *store.EventRepo, log *slog.Logger) *Screen {
	s := &Screen{
		allUnits: allUnits,
		pool:     pool,
		prog:     prog,
		events:   events,
		log:      log,
	}
	completed := completedSet(prog)
	for i, u := range allUnits {
		if !completed[u.ID] {
			s.selected = i
			break
		}
	}
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Units"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.allUnits)-1 {
			s.selected++
		}
	case "enter":
		if len(s.allUnits) == 0 {
			return s, nil
		}
		unit := s.allUnits[s.selected]
		return s, func() tea.Msg {
			return router.PushScreenMsg{
				Screen: sessionscreen.New(unit, s.pool, s.prog, s.events, s.log),
			}
		}
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	if len(s.allUnits) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No units available. Check your vocabulary sources.")
	}

	completed := completedSet(s.prog)

	// Window the list to the visible rows.
	visible := height - 4
	if visible < 3 {
		visible = 3
	}
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+visible {
		s.offset = s.selected - visible + 1
	}
	end := min(s.offset+visible, len(s.allUnits))

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d units · %d completed", len(s.allUnits), len(completed))))
	b.WriteString("\n\n")

	for i := s.offset; i < end; i++ {
		u := s.allUnits[i]

		mark := "  "
		if completed[u.ID] {
			mark = lipgloss.NewStyle().Foreground(theme.Success).Render("✔ ")
		}
		line := fmt.Sprintf("%s%-12s %d words", mark, u.Title, len(u.Words))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if completed[u.ID] {
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}
		if i == s.selected {
			line = "▸ " + line
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		} else {
			line = "  " + line
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if end < len(s.allUnits) {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("…"))
	}

	return b.String()
}

func completedSet(prog *progress.Store) map[string]bool {
	snap := prog.Snapshot()
	out := make(map[string]bool, len(snap.CompletedUnits))
	for _, id := range snap.CompletedUnits {
		out[id] = true
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
