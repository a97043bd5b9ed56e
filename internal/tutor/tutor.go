// Package tutor runs a free-form Spanish conversation session with an
// LLM, grounded in the learner's current vocabulary.
package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/holavoca/internal/llm"
	"github.com/abhisek/holavoca/internal/vocab"
)

// Line is one transcript entry.
type Line struct {
	// Speaker is "you" for the learner, "tutor" for the model.
	Speaker string
	Text    string
	// Err is set when the tutor's reply failed; Text then holds a
	// user-facing fallback.
	Err error
}

// Config tunes the conversation session.
type Config struct {
	MaxTokens   int
	Temperature float64
	// MaxHistory caps how many past messages are resent per turn.
	MaxHistory int
}

// DefaultConfig returns conversation settings suitable for short
// practice chats.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.7,
		MaxHistory:  20,
	}
}

// Session is one ongoing conversation. Replies are produced
// asynchronously and delivered on Lines.
type Session struct {
	id       string
	provider llm.Provider
	cfg      Config
	system   string

	lines  chan Line
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	history []llm.Message
	wg      sync.WaitGroup
	closed  bool
}

// NewSession starts a conversation over the given vocabulary. The words
// become part of the system prompt so the tutor leans on them.
func NewSession(provider llm.Provider, words []vocab.Entry, cfg Config) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	return &Session{
		id:       uuid.NewString(),
		provider: provider,
		cfg:      cfg,
		system:   buildSystemPrompt(words),
		lines:    make(chan Line, 8),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Lines delivers transcript entries as they are produced. The channel
// closes when the session is closed.
func (s *Session) Lines() <-chan Line {
	return s.lines
}

// Send submits a learner message. The learner's own line is delivered
// immediately; the tutor's reply follows asynchronously.
func (s *Session) Send(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.history = append(s.history, llm.Message{Role: llm.RoleUser, Content: text})
	msgs := s.turnHistory()
	s.wg.Add(1)
	s.mu.Unlock()

	s.deliver(Line{Speaker: "you", Text: text})

	go func() {
		defer s.wg.Done()
		s.reply(s.ctx, msgs)
	}()
}

// Close ends the session and closes the transcript channel after any
// in-flight reply settles.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	close(s.lines)
}

func (s *Session) reply(ctx context.Context, msgs []llm.Message) {
	ctx = llm.WithPurpose(ctx, "tutor-chat")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      s.system,
		Messages:    msgs,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		s.deliver(Line{
			Speaker: "tutor",
			Text:    "Lo siento, no puedo responder ahora. (The tutor is unreachable.)",
			Err:     err,
		})
		return
	}

	text := decodeReply(resp.Content)

	s.mu.Lock()
	s.history = append(s.history, llm.Message{Role: llm.RoleAssistant, Content: text})
	s.mu.Unlock()

	s.deliver(Line{Speaker: "tutor", Text: text})
}

// deliver drops the line when the session closed underneath the reply.
func (s *Session) deliver(l Line) {
	select {
	case s.lines <- l:
	case <-s.ctx.Done():
	}
}

// turnHistory returns the trailing window of conversation to resend.
// Caller must hold mu.
func (s *Session) turnHistory() []llm.Message {
	h := s.history
	if s.cfg.MaxHistory > 0 && len(h) > s.cfg.MaxHistory {
		h = h[len(h)-s.cfg.MaxHistory:]
	}
	out := make([]llm.Message, len(h))
	copy(out, h)
	return out
}

// decodeReply unwraps responses that arrive JSON-quoted.
func decodeReply(raw json.RawMessage) string {
	var quoted string
	if err := json.Unmarshal(raw, &quoted); err == nil {
		return quoted
	}
	return string(raw)
}

func buildSystemPrompt(words []vocab.Entry) string {
	var b strings.Builder
	b.WriteString(`You are a friendly Spanish conversation tutor. Keep replies to 2-3 short sentences of simple Spanish, then one line with the English gloss in parentheses. Gently correct the learner's mistakes.`)

	if len(words) > 0 {
		b.WriteString("\n\nPrefer vocabulary the learner is studying:\n")
		for _, w := range words {
			fmt.Fprintf(&b, "- %s (%s)\n", w.Word, w.Meaning)
		}
	}
	return b.String()
}
