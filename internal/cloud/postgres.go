// Package cloud syncs the learner's progress document to a shared
// PostgreSQL store and serves the leaderboard from it. The app works
// fully offline; everything here is optional.
package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhisek/holavoca/internal/progress"
)

// notifyChannel carries the user id of every changed progress row.
const notifyChannel = "holavoca_progress"

const schema = `
CREATE TABLE IF NOT EXISTS progress_docs (
	user_id      TEXT PRIMARY KEY,
	display_name TEXT NOT NULL DEFAULT '',
	avatar       TEXT NOT NULL DEFAULT '',
	data         JSONB NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE OR REPLACE FUNCTION notify_progress_change() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('` + notifyChannel + `', NEW.user_id);
	RETURN NEW;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS progress_docs_notify ON progress_docs;
CREATE TRIGGER progress_docs_notify
	AFTER INSERT OR UPDATE ON progress_docs
	FOR EACH ROW EXECUTE FUNCTION notify_progress_change();
`

// PostgresStore is a progress.Remote backed by a shared Postgres
// database. Each learner owns one document row keyed by user id.
type PostgresStore struct {
	pool        *pgxpool.Pool
	userID      string
	displayName string
	avatar      string
}

// Open connects to the database at dsn, applies the schema, and binds
// the store to the given user id.
func Open(ctx context.Context, dsn, userID, displayName, avatar string) (*PostgresStore, error) {
	if userID == "" {
		return nil, errors.New("cloud: user id is required")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse cloud DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping cloud store: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply cloud schema: %w", err)
	}

	return &PostgresStore{
		pool:        pool,
		userID:      userID,
		displayName: displayName,
		avatar:      avatar,
	}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Load fetches the learner's document, or (nil, nil) when the learner
// has never synced.
func (s *PostgresStore) Load(ctx context.Context) (*progress.Snapshot, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM progress_docs WHERE user_id = $1`, s.userID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cloud progress: %w", err)
	}

	var snap progress.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode cloud progress: %w", err)
	}
	return &snap, nil
}

// Save upserts the learner's full document.
func (s *PostgresStore) Save(ctx context.Context, snap progress.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode cloud progress: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO progress_docs (user_id, display_name, avatar, data, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = excluded.display_name,
			avatar = excluded.avatar,
			data = excluded.data,
			updated_at = now()`,
		s.userID, s.displayName, s.avatar, raw,
	)
	if err != nil {
		return fmt.Errorf("save cloud progress: %w", err)
	}
	return nil
}

// Subscribe blocks on a LISTEN connection and invokes onChange with a
// fresh copy of the learner's document each time their row changes.
// Returns when ctx is cancelled or the connection drops.
func (s *PostgresStore) Subscribe(ctx context.Context, onChange func(progress.Snapshot)) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		return fmt.Errorf("listen %s: %w", notifyChannel, err)
	}

	for {
		note, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("wait for notification: %w", err)
		}
		if note.Payload != s.userID {
			continue
		}

		snap, err := s.Load(ctx)
		if err != nil || snap == nil {
			continue
		}
		onChange(*snap)
	}
}
