// internal/leaderboard/sqlite.go
//
// SQLite-backed Store over the scores table (see sql/0001_init.sql).
// A separate date column holds the day key so the leaderboard query is
// a plain indexed equality filter.

package leaderboard

import (
	"context"
	"database/sql"
	"time"
)

// SQLStore persists records in the scores table.
type SQLStore struct{ db *sql.DB }

// NewSQLStore wraps an open database handle.
func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// Append inserts one score row. SQLite serializes writers, so
// concurrent appends cannot interleave within a row.
func (s *SQLStore) Append(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scores(display_name, score, date, recorded_at)
		 VALUES(?,?,?,?)`,
		r.Name, r.Score, r.DateKey(), r.RecordedAt.Format(TimeFormat),
	)
	return err
}

// TopForDay fetches the top scores for a day key.
// Ordered by score DESC, then recorded_at ASC (earlier save wins ties).
func (s *SQLStore) TopForDay(ctx context.Context, date string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultTop
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT display_name, score, recorded_at
        FROM scores
        WHERE date=?
        ORDER BY score DESC, recorded_at ASC
        LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0, limit)
	for rows.Next() {
		var r Record
		var recorded string
		if err := rows.Scan(&r.Name, &r.Score, &recorded); err != nil {
			return nil, err
		}
		r.RecordedAt, _ = time.Parse(TimeFormat, recorded)
		out = append(out, r)
	}
	return out, rows.Err()
}
