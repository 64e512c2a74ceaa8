// internal/leaderboard/leaderboard.go
//
// Persistent score records and the daily top-5 view over them.
//
// A record is one saved quiz score: (display name, score, timestamp).
// The wire timestamp format is "DD-MM-YYYY HH:MM", kept from the
// original flat-file deployment so old score files stay readable. The
// read path filters records to a calendar day and ranks by score
// descending.

package leaderboard

import (
	"context"
	"sort"
	"time"
)

const (
	// TimeFormat is the stored per-record timestamp layout.
	TimeFormat = "02-01-2006 15:04"
	// DateFormat is the day-key layout used for filtering.
	DateFormat = "02-01-2006"
	// DefaultTop is how many records the leaderboard view shows.
	DefaultTop = 5
)

// Record is one saved score.
type Record struct {
	Name       string    `json:"name"`
	Score      int       `json:"score"`
	RecordedAt time.Time `json:"recordedAt"`
}

// DateKey returns the record's day key in DateFormat.
func (r Record) DateKey() string {
	return r.RecordedAt.Format(DateFormat)
}

// Store is the append-only score record store.
// Implementations: sqlite (default) and a CSV flat file.
type Store interface {
	// Append persists one record. One record per write; implementations
	// must tolerate concurrent appends without corrupting the store.
	Append(ctx context.Context, r Record) error

	// TopForDay returns up to limit records for the given day key
	// (DateFormat), sorted by score descending.
	TopForDay(ctx context.Context, date string, limit int) ([]Record, error)
}

// TopN filters records to the given day key and returns the top n by
// score descending (ties keep insertion order). Pure helper shared by
// the CSV store and tests.
func TopN(records []Record, date string, n int) []Record {
	out := make([]Record, 0, n)
	for _, r := range records {
		if r.DateKey() == date {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
