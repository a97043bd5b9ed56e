package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/holavoca/internal/progress"
)

// ProgressRepo stores the learner's progress document as a single JSON
// row. It implements progress.Repo.
type ProgressRepo struct {
	db *sql.DB
}

// Load returns the stored snapshot, or (nil, nil) when none has been
// saved yet.
func (r *ProgressRepo) Load(ctx context.Context) (*progress.Snapshot, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM progress WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	var snap progress.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	return &snap, nil
}

// Save upserts the full snapshot.
func (r *ProgressRepo) Save(ctx context.Context, snap progress.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO progress (id, data, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		string(raw), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
