package extract

import "github.com/abhisek/holavoca/internal/llm"

// VocabSchema defines the JSON schema for vocabulary extraction responses.
var VocabSchema = &llm.Schema{
	Name:        "vocab-extraction",
	Description: "Spanish vocabulary entries read from a textbook page image",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"entries": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"word": map[string]any{
							"type":        "string",
							"description": "The Spanish headword exactly as printed, including gender notation like niño/a or profesor(a)",
						},
						"grammar": map[string]any{
							"type":        "string",
							"description": "Part-of-speech and gender info as printed, e.g. 'm.', 'f.', 'm./f.'. Empty when absent.",
						},
						"meaning": map[string]any{
							"type":        "string",
							"description": "The translation printed next to the word",
						},
						"example": map[string]any{
							"type":        "string",
							"description": "Example sentence when printed, otherwise empty",
						},
					},
					"required":             []any{"word", "grammar", "meaning", "example"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"entries"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You read pages of Spanish vocabulary textbooks.
Extract every vocabulary entry visible in the image, preserving the
printed spelling exactly, including gender suffix notation (niño/a,
profesor(a), el/la estudiante). Do not invent entries, translate
meanings, or normalize spelling. Skip page headers, footers and
exercise instructions.`
