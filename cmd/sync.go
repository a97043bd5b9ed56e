package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/holavoca/internal/cloud"
	"github.com/abhisek/holavoca/internal/config"
	"github.com/abhisek/holavoca/internal/progress"
	"github.com/abhisek/holavoca/internal/store"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Merge local progress with the cloud once and push the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if !cfg.CloudEnabled() {
			return fmt.Errorf("cloud sync not configured: set HOLAVOCA_CLOUD_DSN and HOLAVOCA_USER_ID")
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

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		prog := progress.NewStore(st.ProgressRepo(), nil)
		local := prog.Snapshot()

		remote, err := cloud.Open(ctx, cfg.CloudDSN, cfg.UserID, cfg.DisplayName, cfg.Avatar)
		if err != nil {
			return fmt.Errorf("cloud connection failed: %w", err)
		}
		defer remote.Close()

		remoteSnap, err := remote.Load(ctx)
		if err != nil {
			return fmt.Errorf("cloud read failed: %w", err)
		}

		if remoteSnap == nil {
			if err := remote.Save(ctx, local); err != nil {
				return fmt.Errorf("cloud write failed: %w", err)
			}
			fmt.Printf("No remote document yet; pushed local progress (%d xp).\n", local.XP)
			return nil
		}

		merged, pushBack := prog.ApplyRemote(*remoteSnap)
		if pushBack {
			if err := remote.Save(ctx, merged); err != nil {
				return fmt.Errorf("cloud write failed: %w", err)
			}
		}

		fmt.Printf("Local:  %d xp, %d gems, %d units\n", local.XP, local.Gems, len(local.CompletedUnits))
		fmt.Printf("Remote: %d xp, %d gems, %d units\n", remoteSnap.XP, remoteSnap.Gems, len(remoteSnap.CompletedUnits))
		fmt.Printf("Merged: %d xp, %d gems, %d units", merged.XP, merged.Gems, len(merged.CompletedUnits))
		if pushBack {
			fmt.Println("  (pushed)")
		} else {
			fmt.Println("  (remote already up to date)")
		}
		return nil
	},
}
