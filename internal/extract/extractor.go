// Package extract reads vocabulary entries out of textbook page images
// using a vision-capable LLM provider.
package extract

import (
	"context"
	"encoding/json"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/abhisek/holavoca/internal/llm"
	"github.com/abhisek/holavoca/internal/vocab"
)

// Imported is one extracted vocabulary entry with a fresh id and
// zero-value learning state, ready to be reviewed and merged into a
// word list.
type Imported struct {
	ID      string      `json:"id"`
	Entry   vocab.Entry `json:"entry"`
	Level   int         `json:"level"`
	Mastery int         `json:"mastery"`
}

// Config tunes the extraction request.
type Config struct {
	// Source is the volume label stamped on every extracted entry.
	Source string

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns extraction settings that work for typical
// textbook page photos.
func DefaultConfig() Config {
	return Config{
		Source:    "imported",
		MaxTokens: 4096,
	}
}

// Extractor turns page images into vocabulary entries.
type Extractor struct {
	provider llm.Provider
	config   Config
}

// New creates an Extractor over the given provider. The provider must
// support image input (Gemini).
func New(provider llm.Provider, cfg Config) *Extractor {
	return &Extractor{provider: provider, config: cfg}
}

// vocabOutput is the raw LLM response before id assignment.
type vocabOutput struct {
	Entries []struct {
		Word    string `json:"word"`
		Grammar string `json:"grammar"`
		Meaning string `json:"meaning"`
		Example string `json:"example"`
	} `json:"entries"`
}

// Extract reads all vocabulary entries from one page image.
func (e *Extractor) Extract(ctx context.Context, image llm.Image) ([]Imported, error) {
	ctx = llm.WithPurpose(ctx, "vocab-extract")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{
				Role:    llm.RoleUser,
				Content: "Extract all vocabulary entries from this page.",
				Images:  []llm.Image{image},
			},
		},
		Schema:      VocabSchema,
		MaxTokens:   e.config.MaxTokens,
		Temperature: e.config.Temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("extract vocabulary: %w", err)
	}

	var raw vocabOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}

	out := make([]Imported, 0, len(raw.Entries))
	seen := make(map[string]bool, len(raw.Entries))
	for _, r := range raw.Entries {
		entry := vocab.Entry{
			Word:        r.Word,
			GrammarInfo: r.Grammar,
			Meaning:     r.Meaning,
			Example:     r.Example,
			Source:      e.config.Source,
		}
		if entry.Word == "" || entry.Meaning == "" {
			continue
		}
		if seen[entry.Key()] {
			continue
		}
		seen[entry.Key()] = true

		id, err := gonanoid.New()
		if err != nil {
			return nil, fmt.Errorf("generate entry id: %w", err)
		}
		out = append(out, Imported{ID: id, Entry: entry})
	}
	return out, nil
}
