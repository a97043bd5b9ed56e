package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/holavoca/internal/app"
	"github.com/abhisek/holavoca/internal/cloud"
	"github.com/abhisek/holavoca/internal/config"
	"github.com/abhisek/holavoca/internal/llm"
	"github.com/abhisek/holavoca/internal/progress"
	"github.com/abhisek/holavoca/internal/store"
	"github.com/abhisek/holavoca/internal/tutor"
	"github.com/abhisek/holavoca/internal/units"
	"github.com/abhisek/holavoca/internal/vocab"
)

// flushTimeout bounds the final cloud push on exit.
const flushTimeout = 5 * time.Second

// runApp opens the stores, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	events, err := st.EventRepo()
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}

	vocabStore, err := vocab.Open()
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}
	sources := cfg.Sources
	if len(sources) == 0 {
		sources = vocabStore.Sources()
	}
	allUnits := units.Build(vocabStore, sources)
	pool := vocabStore.FilterBySources(sources)

	log := openLogger(dbPath)

	prog := progress.NewStore(st.ProgressRepo(), log)

	deps := app.Deps{
		Units:         allUnits,
		Pool:          pool,
		Progress:      prog,
		Events:        events,
		LeaderTimeout: cfg.LeaderboardTimeout,
		Log:           log,
	}

	// Cloud sync is best-effort: a bad DSN degrades to offline mode.
	var syncer *progress.Syncer
	if cfg.CloudEnabled() {
		remote, err := cloud.Open(ctx, cfg.CloudDSN, cfg.UserID, cfg.DisplayName, cfg.Avatar)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Cloud sync unavailable:", err)
		} else {
			defer remote.Close()
			syncer = progress.NewSyncer(prog, remote, log, cfg.SyncDebounce)
			size := cfg.LeaderboardSize
			deps.Leaders = func(ctx context.Context) ([]cloud.Leader, error) {
				return remote.TopLeaders(ctx, size)
			}
		}
	}

	if llmCfg, ok := llm.DiscoverConfig(); ok {
		provider, err := llm.NewProvider(ctx, llmCfg, log)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "The tutor will be unavailable.")
		} else {
			deps.NewTutor = func() *tutor.Session {
				return tutor.NewSession(provider, pool, tutor.DefaultConfig())
			}
		}
	}

	runErr := app.Run(deps)

	if syncer != nil {
		flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		if err := syncer.Flush(flushCtx); err != nil {
			log.Warn("final cloud push failed", "err", err)
		}
		cancel()
		syncer.Close()
	}

	return runErr
}

// openLogger writes structured logs next to the database so they never
// bleed into the alt-screen TUI. Falls back to a discard logger.
func openLogger(dbPath string) *slog.Logger {
	f, err := os.OpenFile(dbPath+".log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(f, nil))
}
