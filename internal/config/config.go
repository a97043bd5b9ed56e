// Package config loads application settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds everything configurable about the app. All fields come
// from HOLAVOCA_* environment variables with workable defaults, so a
// fresh install runs with zero configuration (offline, demo
// leaderboard).
type Config struct {
	// DBPath overrides the local SQLite database location. Empty means
	// the XDG default.
	DBPath string `env:"HOLAVOCA_DB" env-default:""`

	// UserID identifies the learner in the shared cloud store.
	UserID string `env:"HOLAVOCA_USER_ID" env-default:""`

	// DisplayName and Avatar are shown on the leaderboard.
	DisplayName string `env:"HOLAVOCA_DISPLAY_NAME" env-default:""`
	Avatar      string `env:"HOLAVOCA_AVATAR" env-default:"🌮"`

	// CloudDSN is the Postgres connection string for cloud sync. Empty
	// disables sync entirely.
	CloudDSN string `env:"HOLAVOCA_CLOUD_DSN" env-default:""`

	// SyncDebounce is the quiet window before local changes are pushed.
	SyncDebounce time.Duration `env:"HOLAVOCA_SYNC_DEBOUNCE" env-default:"5s"`

	// LeaderboardSize caps the rows shown on the leaderboard screen.
	LeaderboardSize int `env:"HOLAVOCA_LEADERBOARD_SIZE" env-default:"10"`

	// LeaderboardTimeout bounds the cloud query before the demo
	// fallback is shown.
	LeaderboardTimeout time.Duration `env:"HOLAVOCA_LEADERBOARD_TIMEOUT" env-default:"3s"`

	// Sources selects which vocabulary volumes feed unit generation.
	// Empty means all volumes.
	Sources []string `env:"HOLAVOCA_SOURCES" env-separator:"," env-default:""`
}

// Load reads .env (when present) and then the environment.
func Load() (*Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// CloudEnabled reports whether cloud sync is configured.
func (c *Config) CloudEnabled() bool {
	return c.CloudDSN != "" && c.UserID != ""
}

func (c *Config) validate() error {
	if c.CloudDSN != "" && c.UserID == "" {
		return fmt.Errorf("HOLAVOCA_CLOUD_DSN is set but HOLAVOCA_USER_ID is empty")
	}
	if c.LeaderboardSize <= 0 {
		return fmt.Errorf("HOLAVOCA_LEADERBOARD_SIZE must be positive, got %d", c.LeaderboardSize)
	}
	if c.SyncDebounce <= 0 {
		return fmt.Errorf("HOLAVOCA_SYNC_DEBOUNCE must be positive, got %s", c.SyncDebounce)
	}
	return nil
}
