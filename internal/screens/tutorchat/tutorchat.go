// Package tutorchat is the conversation screen over a tutor session.
package tutorchat

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/holavoca/internal/router"
	"github.com/abhisek/holavoca/internal/screen"
	"github.com/abhisek/holavoca/internal/tutor"
	"github.com/abhisek/holavoca/internal/ui/components"
	"github.com/abhisek/holavoca/internal/ui/layout"
	"github.com/abhisek/holavoca/internal/ui/theme"
)

type lineMsg struct {
	Line tutor.Line
	OK   bool
}

// Screen renders the tutor transcript and input box.
type Screen struct {
	sess    *tutor.Session
	input   components.TextInput
	lines   []tutor.Line
	waiting bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the chat screen over an already-started session. The
// screen owns the session and closes it when the learner leaves.
func New(sess *tutor.Session) *Screen {
	return &Screen{
		sess:  sess,
		input: components.NewTextInput("Say something in Spanish...", false, 200),
	}
}

func (s *Screen) Init() tea.Cmd {
	return tea.Batch(s.input.Init(), s.waitForLine())
}

func (s *Screen) Title() string {
	return "Tutor"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "End chat"},
	}
}

// waitForLine blocks on the session's transcript channel and resubmits
// itself after every delivery.
func (s *Screen) waitForLine() tea.Cmd {
	sess := s.sess
	return func() tea.Msg {
		line, ok := <-sess.Lines()
		return lineMsg{Line: line, OK: ok}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lineMsg:
		if !msg.OK {
			return s, nil
		}
		s.lines = append(s.lines, msg.Line)
		if msg.Line.Speaker == "tutor" {
			s.waiting = false
		}
		return s, s.waitForLine()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			s.sess.Close()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			text := strings.TrimSpace(s.input.Value())
			if text == "" || s.waiting {
				return s, nil
			}
			s.sess.Send(text)
			s.waiting = true
			s.input = components.NewTextInput("Say something in Spanish...", false, 200)
			return s, s.input.Init()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder

	transcriptRows := height - 4
	if transcriptRows < 3 {
		transcriptRows = 3
	}

	youStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	tutorStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(theme.Error)
	textStyle := lipgloss.NewStyle().Foreground(theme.Text).Width(min(width-12, 70))

	// Render the newest lines that fit.
	var rendered []string
	for _, l := range s.lines {
		var label string
		switch {
		case l.Err != nil:
			label = errStyle.Render("  !    ")
		case l.Speaker == "you":
			label = youStyle.Render("  you  ")
		default:
			label = tutorStyle.Render("  tutor")
		}
		body := textStyle.Render(l.Text)
		rendered = append(rendered, label+" "+body)
	}

	rows := 0
	start := len(rendered)
	for start > 0 {
		next := lipgloss.Height(rendered[start-1])
		if rows+next > transcriptRows {
			break
		}
		rows += next
		start--
	}

	if len(rendered) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("  The tutor is listening. Say hola!"))
		b.WriteString("\n")
	} else {
		for _, r := range rendered[start:] {
			b.WriteString(r)
			b.WriteString("\n")
		}
	}

	for i := rows; i < transcriptRows; i++ {
		b.WriteString("\n")
	}

	if s.waiting {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("  escribiendo..."))
	}
	b.WriteString("\n")
	b.WriteString("  > " + s.input.View())

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
