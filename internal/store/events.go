package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// Session actions recorded in the event log.
const (
	SessionStarted   = "started"
	SessionCompleted = "completed"
	SessionAbandoned = "abandoned"
)

// AnswerEvent records one answered quiz question.
type AnswerEvent struct {
	Word         string
	UnitID       string
	QuestionType string
	Correct      bool
}

// SessionEvent records a quiz session lifecycle change.
type SessionEvent struct {
	UnitID    string
	Action    string
	Questions int
	Correct   int
	Passed    bool
}

// AnswerStats aggregates the answer log for the stats view.
type AnswerStats struct {
	Total   int
	Correct int
}

// WordTally is a per-word answer count from the event log.
type WordTally struct {
	Word  string
	Wrong int
	Total int
}

// EventRepo appends to and queries the append-only event log. Events
// share a single monotonic sequence so answers and session changes keep
// a global order across tables.
type EventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// AppendAnswer records one answered question.
func (r *EventRepo) AppendAnswer(ctx context.Context, ev AnswerEvent) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO answer_events (sequence, word, unit_id, question_type, correct, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		seq, ev.Word, ev.UnitID, ev.QuestionType, boolInt(ev.Correct), now(),
	)
	if err != nil {
		return fmt.Errorf("append answer event: %w", err)
	}
	return nil
}

// AppendSession records a session lifecycle event.
func (r *EventRepo) AppendSession(ctx context.Context, ev SessionEvent) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO session_events (sequence, unit_id, action, questions, correct, passed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seq, ev.UnitID, ev.Action, ev.Questions, ev.Correct, boolInt(ev.Passed), now(),
	)
	if err != nil {
		return fmt.Errorf("append session event: %w", err)
	}
	return nil
}

// Stats returns overall answer accuracy.
func (r *EventRepo) Stats(ctx context.Context) (AnswerStats, error) {
	var s AnswerStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(correct), 0) FROM answer_events`,
	).Scan(&s.Total, &s.Correct)
	if err != nil {
		return AnswerStats{}, fmt.Errorf("query answer stats: %w", err)
	}
	return s, nil
}

// HardestWords returns the words answered wrong most often, limited to
// limit rows, hardest first.
func (r *EventRepo) HardestWords(ctx context.Context, limit int) ([]WordTally, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT word, COUNT(*) - SUM(correct), COUNT(*)
		FROM answer_events
		GROUP BY word
		HAVING COUNT(*) - SUM(correct) > 0
		ORDER BY COUNT(*) - SUM(correct) DESC, word ASC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query hardest words: %w", err)
	}
	defer rows.Close()

	var out []WordTally
	for rows.Next() {
		var t WordTally
		if err := rows.Scan(&t.Word, &t.Wrong, &t.Total); err != nil {
			return nil, fmt.Errorf("scan word tally: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SessionCount returns how many sessions finished with the given action.
func (r *EventRepo) SessionCount(ctx context.Context, action string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM session_events WHERE action = ?`, action,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("query session count: %w", err)
	}
	return n, nil
}

// sequenceCounter assigns a single increasing sequence to every event
// regardless of type, so the two event tables keep one global order.
// The mutex serializes within the process; the RETURNING clause makes
// the increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
