package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/holavoca/internal/config"
	"github.com/abhisek/holavoca/internal/units"
	"github.com/abhisek/holavoca/internal/vocab"
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "Show the unit breakdown for the selected volumes",
	RunE: func(cmd *cobra.Command, args []string) error {
		mix, _ := cmd.Flags().GetBool("mix")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		vocabStore, err := vocab.Open()
		if err != nil {
			return fmt.Errorf("load vocabulary: %w", err)
		}
		sources := cfg.Sources
		if len(sources) == 0 {
			sources = vocabStore.Sources()
		}

		all := units.Build(vocabStore, sources)
		total := vocabStore.TotalWordCount(sources)

		fmt.Printf("Volumes:  %s\n", strings.Join(sources, ", "))
		fmt.Printf("Words:    %d (after dedup)\n", total)
		fmt.Printf("Units:    %d\n\n", len(all))

		for _, u := range all {
			first, last := "", ""
			if len(u.Words) > 0 {
				first = u.Words[0].Word
				last = u.Words[len(u.Words)-1].Word
			}
			fmt.Printf("  %-10s %2d words   %s … %s\n", u.Title, len(u.Words), first, last)
		}

		if mix {
			fmt.Println()
			printMix(all, sources)
		}
		return nil
	},
}

// printMix reports the per-volume composition of the first unit, which
// shows whether cross-volume interleaving is doing its job.
func printMix(all []units.Unit, sources []string) {
	if len(all) == 0 {
		fmt.Println("No units to analyze.")
		return
	}
	if len(sources) < 2 {
		fmt.Println("Volume mix needs at least two volumes selected.")
		return
	}

	u := all[0]
	counts := make(map[string]int)
	for _, w := range u.Words {
		counts[w.Source]++
	}

	srcs := make([]string, 0, len(counts))
	for s := range counts {
		srcs = append(srcs, s)
	}
	sort.Strings(srcs)

	fmt.Printf("Volume mix of %s:\n", u.Title)
	for _, s := range srcs {
		fmt.Printf("  %-24s %2d/%d\n", s, counts[s], len(u.Words))
	}
	if len(counts) == 1 {
		fmt.Println("\nWARNING: the first unit draws from a single volume; interleaving is broken.")
	}
}

func init() {
	unitsCmd.Flags().Bool("mix", false, "Analyze the volume mix of the first unit")
}
