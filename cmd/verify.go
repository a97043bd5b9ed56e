package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/holavoca/internal/cloud"
	"github.com/abhisek/holavoca/internal/config"
	"github.com/abhisek/holavoca/internal/vocab"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the vocabulary corpus and cloud connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		vocabStore, err := vocab.Open()
		if err != nil {
			return fmt.Errorf("load vocabulary: %w", err)
		}

		all := vocabStore.All()
		fmt.Printf("Corpus: %d entries\n", len(all))

		var blank, gendered int
		for _, e := range all {
			if e.Word == "" || e.Meaning == "" {
				blank++
			}
			if len(e.SupportedGenders()) > 0 {
				gendered++
			}
		}
		for _, src := range vocabStore.Sources() {
			fmt.Printf("  %-24s %d words\n", src, vocabStore.TotalWordCount([]string{src}))
		}
		fmt.Printf("  %-24s %d\n", "with gender forms", gendered)
		if blank > 0 {
			return fmt.Errorf("corpus check failed: %d entries with blank word or meaning", blank)
		}
		fmt.Println("Corpus OK.")

		if !cfg.CloudEnabled() {
			fmt.Println("\nCloud sync not configured (set HOLAVOCA_CLOUD_DSN and HOLAVOCA_USER_ID).")
			return nil
		}

		fmt.Println("\nChecking cloud connection...")
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		remote, err := cloud.Open(ctx, cfg.CloudDSN, cfg.UserID, cfg.DisplayName, cfg.Avatar)
		if err != nil {
			return fmt.Errorf("cloud connection failed: %w", err)
		}
		defer remote.Close()

		snap, err := remote.Load(ctx)
		if err != nil {
			return fmt.Errorf("cloud document read failed: %w", err)
		}
		if snap == nil {
			fmt.Printf("Cloud OK. No progress document yet for user %q.\n", cfg.UserID)
			return nil
		}
		fmt.Printf("Cloud OK. Remote progress: %d xp, %d gems, %d completed units.\n",
			snap.XP, snap.Gems, len(snap.CompletedUnits))
		return nil
	},
}
