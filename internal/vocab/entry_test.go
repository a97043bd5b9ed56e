package vocab

import "testing"

func TestGenderedForm(t *testing.T) {
	tests := []struct {
		word   string
		gender Gender
		want   string
	}{
		{"abogado/a", Masculine, "abogado"},
		{"abogado/a", Feminine, "abogada"},
		{"actor/actriz", Masculine, "actor"},
		{"actor/actriz", Feminine, "actriz"},
		{"escritor(a)", Masculine, "escritor"},
		{"escritor(a)", Feminine, "escritora"},
		{"profesor(a)", Feminine, "profesora"},
		{"niño/a", Masculine, "niño"},
		{"niño/a", Feminine, "niña"},
		// No trailing "o" before a single-char suffix: append.
		{"cantant/e", Feminine, "cantante"},
		// No markers: unchanged for both genders.
		{"mesa", Masculine, "mesa"},
		{"mesa", Feminine, "mesa"},
		{"café", Feminine, "café"},
	}

	for _, tt := range tests {
		got := GenderedForm(tt.word, tt.gender)
		if got != tt.want {
			t.Errorf("GenderedForm(%q, %q) = %q, want %q", tt.word, tt.gender, got, tt.want)
		}
	}
}

func TestGenderedForm_NeverEmpty(t *testing.T) {
	entries, err := LoadCorpus()
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}
	for _, e := range entries {
		for _, g := range []Gender{Masculine, Feminine} {
			if GenderedForm(e.Word, g) == "" {
				t.Errorf("GenderedForm(%q, %q) returned empty string", e.Word, g)
			}
		}
	}
}

func TestSupportedGenders(t *testing.T) {
	tests := []struct {
		entry Entry
		want  int
	}{
		{Entry{Word: "abogado/a", GrammarInfo: "m/f"}, 2},
		{Entry{Word: "escritor(a)", GrammarInfo: "m/f"}, 2},
		{Entry{Word: "pan", GrammarInfo: "m"}, 1},
		{Entry{Word: "casa", GrammarInfo: "f"}, 1},
		{Entry{Word: "hoy", GrammarInfo: ""}, 0},
	}

	for _, tt := range tests {
		got := tt.entry.SupportedGenders()
		if len(got) != tt.want {
			t.Errorf("SupportedGenders(%q) = %v, want %d genders", tt.entry.Word, got, tt.want)
		}
	}
}

func TestEntryKey(t *testing.T) {
	a := Entry{Word: "Hola"}
	b := Entry{Word: "hola "}
	if a.Key() != b.Key() {
		t.Errorf("keys differ: %q vs %q", a.Key(), b.Key())
	}
}
