// Package home is the application's main menu.
package home

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/holavoca/internal/cloud"
	"github.com/abhisek/holavoca/internal/progress"
	"github.com/abhisek/holavoca/internal/router"
	"github.com/abhisek/holavoca/internal/screen"
	"github.com/abhisek/holavoca/internal/screens/leaderboard"
	"github.com/abhisek/holavoca/internal/screens/review"
	"github.com/abhisek/holavoca/internal/screens/tutorchat"
	"github.com/abhisek/holavoca/internal/screens/unitlist"
	"github.com/abhisek/holavoca/internal/store"
	"github.com/abhisek/holavoca/internal/tutor"
	"github.com/abhisek/holavoca/internal/ui/components"
	"github.com/abhisek/holavoca/internal/units"
	"github.com/abhisek/holavoca/internal/vocab"
)

// LeaderFetch loads the leaderboard rows; nil falls back to demo data.
type LeaderFetch func(ctx context.Context) ([]cloud.Leader, error)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu       components.Menu
	menuLabels []string
	disabled   map[int]bool
	prog       *progress.Store
	allUnits   []units.Unit
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. tutorNew may be nil when no language
// model is configured; leaders may be nil when the cloud is offline.
func New(allUnits []units.Unit, pool []vocab.Entry, prog *progress.Store, events *store.EventRepo, leaders LeaderFetch, leaderTimeout time.Duration, tutorNew func() *tutor.Session, log *slog.Logger) *HomeScreen {
	if log == nil {
		log = slog.Default()
	}

	menuLabels := []string{"LEARN", "REVIEW MISTAKES", "LEADERBOARD", "TUTOR CHAT", "EXIT"}
	disabled := map[int]bool{}
	if tutorNew == nil {
		disabled[3] = true
	}

	var fetch leaderboard.Fetch
	if leaders != nil {
		fetch = leaderboard.Fetch(leaders)
	}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: unitlist.New(allUnits, pool, prog, events, log),
				}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: review.New(pool, prog, events, log),
				}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: leaderboard.New(fetch, leaderTimeout),
				}
			}
		}},
		{Label: menuLabels[3], Disabled: tutorNew == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: tutorchat.New(tutorNew()),
				}
			}
		}},
		{Label: menuLabels[4], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		disabled:   disabled,
		prog:       prog,
		allUnits:   allUnits,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}
