package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/holavoca/internal/config"
	"github.com/abhisek/holavoca/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		ctx := context.Background()

		snap, err := st.ProgressRepo().Load(ctx)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		if snap == nil {
			fmt.Println("No progress yet. Run `holavoca` and finish a unit!")
			return nil
		}

		fmt.Println("Progress")
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("  XP:              %d\n", snap.XP)
		fmt.Printf("  Gems:            %d\n", snap.Gems)
		fmt.Printf("  Streak:          %d days\n", snap.Streak)
		fmt.Printf("  Units completed: %d\n", len(snap.CompletedUnits))
		fmt.Printf("  Mistake words:   %d\n", len(snap.Mistakes))
		if snap.LastStudyDate != "" {
			fmt.Printf("  Last studied:    %s\n", snap.LastStudyDate)
		}

		events, err := st.EventRepo()
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}

		answers, err := events.Stats(ctx)
		if err != nil {
			return fmt.Errorf("query answers: %w", err)
		}
		completed, err := events.SessionCount(ctx, store.SessionCompleted)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		abandoned, err := events.SessionCount(ctx, store.SessionAbandoned)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		fmt.Println("\nActivity")
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("  Answers:   %d (%d correct", answers.Total, answers.Correct)
		if answers.Total > 0 {
			fmt.Printf(", %.0f%%", 100*float64(answers.Correct)/float64(answers.Total))
		}
		fmt.Println(")")
		fmt.Printf("  Sessions:  %d finished, %d abandoned\n", completed, abandoned)

		hardest, err := events.HardestWords(ctx, 5)
		if err != nil {
			return fmt.Errorf("query hardest words: %w", err)
		}
		if len(hardest) > 0 {
			fmt.Println("\nHardest words")
			fmt.Println(strings.Repeat("─", 48))
			for _, w := range hardest {
				fmt.Printf("  %-20s %d/%d wrong\n", w.Word, w.Wrong, w.Total)
			}
		}
		return nil
	},
}
