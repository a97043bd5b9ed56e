package vocab

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/vocab.json
var corpusJSON []byte

// LoadCorpus parses and validates the embedded vocabulary corpus.
// A malformed corpus is a fatal startup error: every entry must carry
// a word, a meaning and a source volume.
func LoadCorpus() ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(corpusJSON, &entries); err != nil {
		return nil, fmt.Errorf("parse vocab corpus: %w", err)
	}
	for i, e := range entries {
		if e.Word == "" || e.Meaning == "" || e.Source == "" {
			return nil, fmt.Errorf("vocab corpus entry %d: missing required field (word=%q meaning=%q source=%q)",
				i, e.Word, e.Meaning, e.Source)
		}
	}
	return entries, nil
}
