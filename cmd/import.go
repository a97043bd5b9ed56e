package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/holavoca/internal/extract"
	"github.com/abhisek/holavoca/internal/llm"
)

var importCmd = &cobra.Command{
	Use:   "import <image>",
	Short: "Extract vocabulary from a textbook page photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		mime := mimeForExt(filepath.Ext(path))
		if mime == "" {
			return fmt.Errorf("unsupported image type %q (use jpg, png or webp)", filepath.Ext(path))
		}

		llmCfg, ok := llm.DiscoverConfig()
		if !ok {
			return fmt.Errorf("no LLM API key found: set GEMINI_API_KEY for image extraction")
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		provider, err := llm.NewProvider(ctx, llmCfg, nil)
		if err != nil {
			return fmt.Errorf("create provider: %w", err)
		}

		extractor := extract.New(provider, extract.DefaultConfig())
		imported, err := extractor.Extract(ctx, llm.Image{MIMEType: mime, Data: data})
		if err != nil {
			return fmt.Errorf("extract vocabulary: %w", err)
		}
		if len(imported) == 0 {
			fmt.Println("No vocabulary found on this page.")
			return nil
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(imported)
		}

		fmt.Printf("Extracted %d words:\n\n", len(imported))
		for _, w := range imported {
			grammar := ""
			if w.Entry.GrammarInfo != "" {
				grammar = fmt.Sprintf(" (%s)", w.Entry.GrammarInfo)
			}
			fmt.Printf("  %-20s%-12s %s\n", w.Entry.Word, grammar, w.Entry.Meaning)
			if w.Entry.Example != "" {
				fmt.Printf("  %-20s%-12s %s\n", "", "", "› "+w.Entry.Example)
			}
		}
		return nil
	},
}

func mimeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	}
	return ""
}

func init() {
	importCmd.Flags().Bool("json", false, "Print extracted entries as JSON")
}
