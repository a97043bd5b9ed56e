package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/holavoca/internal/config"
	"github.com/abhisek/holavoca/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "holavoca",
	Short: "Spanish vocabulary trainer for the terminal",
	Long:  "HolaVoca — a terminal Spanish vocabulary trainer with quiz units, mistake review, cloud sync and an AI tutor.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides HOLAVOCA_DB env var)")

	rootCmd.AddCommand(unitsCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then the configured HOLAVOCA_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
