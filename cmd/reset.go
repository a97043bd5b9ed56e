package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/holavoca/internal/config"
	"github.com/abhisek/holavoca/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner progress",
	Long:  "Deletes the local progress document (xp, gems, streak, completed units, mistakes). The answer history stays unless --events is given. The cloud copy is untouched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		withEvents, _ := cmd.Flags().GetBool("events")
		yes, _ := cmd.Flags().GetBool("yes")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}

		if !yes {
			fmt.Printf("This deletes your local progress in %s. Type 'reset' to confirm: ", dbPath)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.TrimSpace(line) != "reset" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.Reset(cmd.Context(), withEvents); err != nil {
			return fmt.Errorf("reset: %w", err)
		}

		if withEvents {
			fmt.Println("Progress and event history cleared.")
		} else {
			fmt.Println("Progress cleared. Event history kept (use --events to clear it too).")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("events", false, "Also clear the answer/session event history")
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
