package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
)

// DefaultLeaderboardTimeout bounds how long the leaderboard screen
// waits for the shared store before falling back to demo data.
const DefaultLeaderboardTimeout = 3 * time.Second

// Leader is one row of the leaderboard.
type Leader struct {
	UserID      string
	DisplayName string
	Avatar      string
	XP          int
	Streak      int
	IsSelf      bool
}

// TopLeaders returns the top n learners ordered by xp descending, ties
// broken by display name. The bound wait is the caller's ctx.
func (s *PostgresStore) TopLeaders(ctx context.Context, n int) ([]Leader, error) {
	query, args, err := squirrel.
		Select(
			"user_id",
			"display_name",
			"avatar",
			"COALESCE((data->>'xp')::int, 0) AS xp",
			"COALESCE((data->>'streak')::int, 0) AS streak",
		).
		From("progress_docs").
		OrderBy("xp DESC", "display_name ASC").
		Limit(uint64(n)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build leaderboard query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var out []Leader
	for rows.Next() {
		var l Leader
		if err := rows.Scan(&l.UserID, &l.DisplayName, &l.Avatar, &l.XP, &l.Streak); err != nil {
			return nil, fmt.Errorf("scan leader: %w", err)
		}
		l.IsSelf = l.UserID == s.userID
		out = append(out, l)
	}
	return out, rows.Err()
}

// DemoLeaders is the offline leaderboard shown when no cloud store is
// configured or the query times out.
func DemoLeaders() []Leader {
	return []Leader{
		{UserID: "demo-1", DisplayName: "Lucía", Avatar: "🦊", XP: 2840, Streak: 21},
		{UserID: "demo-2", DisplayName: "Mateo", Avatar: "🐻", XP: 2310, Streak: 14},
		{UserID: "demo-3", DisplayName: "Sofía", Avatar: "🦉", XP: 1980, Streak: 9},
		{UserID: "demo-4", DisplayName: "Diego", Avatar: "🐸", XP: 1540, Streak: 12},
		{UserID: "demo-5", DisplayName: "Valentina", Avatar: "🐱", XP: 1120, Streak: 5},
		{UserID: "demo-6", DisplayName: "Javier", Avatar: "🐢", XP: 870, Streak: 3},
		{UserID: "demo-7", DisplayName: "Camila", Avatar: "🦋", XP: 610, Streak: 7},
	}
}
