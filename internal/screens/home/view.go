package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/holavoca/internal/ui/components"
	"github.com/abhisek/holavoca/internal/ui/theme"
)

// Block-letter title shown on wide terminals.
const titleFull = ` ██╗  ██╗ ██████╗ ██╗      █████╗ ██╗
 ██║  ██║██╔═══██╗██║     ██╔══██╗██║
 ███████║██║   ██║██║     ███████║██║
 ██╔══██║██║   ██║██║     ██╔══██║╚═╝
 ██║  ██║╚██████╔╝███████╗██║  ██║██╗
 ╚═╝  ╚═╝ ╚═════╝ ╚══════╝╚═╝  ╚═╝╚═╝`

const titleCompact = "¡ H O L A V O C A !"

const subtitle = "Spanish vocabulary, one unit at a time"

func (h *HomeScreen) View(width, height int) string {
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, h.renderStatsBar(cw, compact))
	sections = append(sections, h.renderMenu(cw))

	content := strings.Join(sections, "\n\n")
	return components.Frame(content, width, height)
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	title := titleFull
	if compact {
		title = titleCompact
	}
	block := style.Render(title) + "\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(subtitle)
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderStatsBar shows the learner's running totals, read live so a
// finished session is reflected as soon as the stack unwinds here.
func (h *HomeScreen) renderStatsBar(cw int, compact bool) string {
	snap := h.prog.Snapshot()

	xpStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	gemStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	streakStyle := lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	unitStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s %s",
			xpStyle.Render(fmt.Sprintf("⚡%d", snap.XP)),
			gemStyle.Render(fmt.Sprintf("◆%d", snap.Gems)),
			streakStyle.Render(fmt.Sprintf("🔥%d", snap.Streak)),
			unitStyle.Render(fmt.Sprintf("✔%d/%d", len(snap.CompletedUnits), len(h.allUnits))),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s  %s",
			xpStyle.Render(fmt.Sprintf("⚡ %d XP", snap.XP)),
			gemStyle.Render(fmt.Sprintf("◆ %d GEMS", snap.Gems)),
			streakStyle.Render(fmt.Sprintf("🔥 %d DAY STREAK", snap.Streak)),
			unitStyle.Render(fmt.Sprintf("✔ %d/%d UNITS", len(snap.CompletedUnits), len(h.allUnits))),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// menuButtonWidth is the fixed width for menu buttons.
const menuButtonWidth = 24

func (h *HomeScreen) renderMenu(cw int) string {
	var buttons []string
	for i, label := range h.menuLabels {
		if h.disabled[i] {
			buttons = append(buttons, lipgloss.NewStyle().
				Width(menuButtonWidth).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Border).
				Padding(0, 1).
				Render(label))
			continue
		}
		buttons = append(buttons, components.CardButton(label, i == h.menu.Selected, menuButtonWidth))
	}
	block := strings.Join(buttons, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}
