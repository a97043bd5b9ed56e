// Package review lists the learner's mistake words and starts review
// sessions over them.
package review

import (
	"fmt"
	"log/slog"
	"sort"
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

// mistakeRow is one word in the list, ordered worst-first.
type mistakeRow struct {
	Word  string
	Count int
}

// Screen shows the mistake list.
type Screen struct {
	pool   []vocab.Entry
	prog   *progress.Store
	events *store.EventRepo
	log    *slog.Logger

	rows         []mistakeRow
	selected     int
	confirmClear bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the review screen from the current mistake tallies.
func New(pool []vocab.Entry, prog *progress.Store, events *store.EventRepo, log *slog.Logger) *Screen {
	s := &Screen{pool: pool, prog: prog, events: events, log: log}
	s.reload()
	return s
}

func (s *Screen) reload() {
	snap := s.prog.Snapshot()
	rows := make([]mistakeRow, 0, len(snap.Mistakes))
	for w, n := range snap.Mistakes {
		rows = append(rows, mistakeRow{Word: w, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Word < rows[j].Word
	})
	s.rows = rows
	if s.selected >= len(rows) {
		s.selected = len(rows) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Review"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.confirmClear {
		return []layout.KeyHint{
			{Key: "Y", Description: "Clear all"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start review"},
		{Key: "D", Description: "Remove word"},
		{Key: "C", Description: "Clear all"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.confirmClear {
		switch kmsg.String() {
		case "y", "Y":
			s.prog.ClearAllMistakes()
			s.confirmClear = false
			s.reload()
		case "n", "N", "esc":
			s.confirmClear = false
		}
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.rows)-1 {
			s.selected++
		}
	case "d", "D":
		if len(s.rows) > 0 {
			s.prog.ClearMistake(s.rows[s.selected].Word)
			s.reload()
		}
	case "c", "C":
		if len(s.rows) > 0 {
			s.confirmClear = true
		}
	case "enter":
		if len(s.rows) > 0 {
			return s, s.startReview()
		}
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

// startReview builds a review unit from the mistake words that still
// exist in the corpus. Words imported on another device may be absent
// locally; they are skipped rather than quizzed without options.
func (s *Screen) startReview() tea.Cmd {
	byWord := make(map[string]vocab.Entry, len(s.pool))
	for _, e := range s.pool {
		byWord[e.Word] = e
	}

	var words []vocab.Entry
	for _, r := range s.rows {
		if e, ok := byWord[r.Word]; ok {
			words = append(words, e)
		}
	}
	if len(words) == 0 {
		return nil
	}

	unit := units.Unit{
		ID:    units.ReviewUnitID,
		Title: "Mistake Review",
		Words: words,
	}
	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: sessionscreen.New(unit, s.pool, s.prog, s.events, s.log),
		}
	}
}

func (s *Screen) View(width, height int) string {
	if s.confirmClear {
		return renderConfirmClear(width)
	}

	if len(s.rows) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No mistakes to review. ¡Bien hecho!")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d words to review", len(s.rows))))
	b.WriteString("\n\n")

	visible := height - 4
	if visible < 3 {
		visible = 3
	}
	offset := 0
	if s.selected >= visible {
		offset = s.selected - visible + 1
	}
	end := min(offset+visible, len(s.rows))

	for i := offset; i < end; i++ {
		r := s.rows[i]
		count := lipgloss.NewStyle().Foreground(theme.Error).
			Render(fmt.Sprintf("✘ %d", r.Count))
		line := fmt.Sprintf("%-20s %s", r.Word, count)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			line = "▸ " + line
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		} else {
			line = "  " + line
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func renderConfirmClear(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Clear the whole mistake list?"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, clear it"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep it"))
	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
