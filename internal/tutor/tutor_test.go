package tutor

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/holavoca/internal/llm"
	"github.com/abhisek/holavoca/internal/vocab"
)

func collectLines(t *testing.T, s *Session, n int) []Line {
	t.Helper()
	var out []Line
	for len(out) < n {
		select {
		case l, ok := <-s.Lines():
			if !ok {
				t.Fatalf("lines channel closed after %d of %d lines", len(out), n)
			}
			out = append(out, l)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d lines", len(out), n)
		}
	}
	return out
}

func TestSessionExchange(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`"¡Hola! ¿Cómo estás? (Hello! How are you?)"`),
	})
	s := NewSession(mock, nil, DefaultConfig())
	defer s.Close()

	s.Send("hola")

	lines := collectLines(t, s, 2)
	if lines[0].Speaker != "you" || lines[0].Text != "hola" {
		t.Errorf("first line = %+v, want learner echo", lines[0])
	}
	if lines[1].Speaker != "tutor" || !strings.Contains(lines[1].Text, "¡Hola!") {
		t.Errorf("second line = %+v, want tutor reply", lines[1])
	}
	if lines[1].Err != nil {
		t.Errorf("unexpected reply error: %v", lines[1].Err)
	}
}

func TestSessionVocabInSystemPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`"Sí"`),
	})
	words := []vocab.Entry{{Word: "abril", Meaning: "April", Source: "1"}}
	s := NewSession(mock, words, DefaultConfig())
	defer s.Close()

	s.Send("hola")
	collectLines(t, s, 2)

	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d", mock.CallCount())
	}
	if !strings.Contains(mock.Calls[0].System, "abril") {
		t.Error("vocabulary missing from system prompt")
	}
}

func TestSessionReplyErrorSurfaces(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	s := NewSession(mock, nil, DefaultConfig())
	defer s.Close()

	s.Send("hola")
	lines := collectLines(t, s, 2)
	if lines[1].Err == nil {
		t.Error("expected error on tutor line")
	}
	if lines[1].Text == "" {
		t.Error("expected fallback text on failed reply")
	}
}

func TestSessionHistoryAccumulates(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`"uno"`)},
		llm.MockResponse{Content: json.RawMessage(`"dos"`)},
	)
	s := NewSession(mock, nil, DefaultConfig())
	defer s.Close()

	s.Send("primera")
	collectLines(t, s, 2)
	s.Send("segunda")
	collectLines(t, s, 2)

	// Second turn resends the first exchange plus the new message.
	second := mock.Calls[1]
	if len(second.Messages) != 3 {
		t.Fatalf("second turn history = %d messages, want 3", len(second.Messages))
	}
	if second.Messages[1].Role != llm.RoleAssistant || second.Messages[1].Content != "uno" {
		t.Errorf("history missing tutor turn: %+v", second.Messages)
	}
}

func TestSessionCloseClosesLines(t *testing.T) {
	s := NewSession(llm.NewMockProvider(), nil, DefaultConfig())
	s.Close()

	select {
	case _, ok := <-s.Lines():
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Error("lines channel not closed")
	}

	// Close twice and send after close are no-ops.
	s.Close()
	s.Send("hola")
}

func TestSessionIDsUnique(t *testing.T) {
	a := NewSession(llm.NewMockProvider(), nil, DefaultConfig())
	b := NewSession(llm.NewMockProvider(), nil, DefaultConfig())
	defer a.Close()
	defer b.Close()
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("ids not unique: %q %q", a.ID(), b.ID())
	}
}
