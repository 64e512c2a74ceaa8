package leaderboard

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// openScoresDB gives each test a fresh in-memory scores table matching
// sql/0001_init.sql.
func openScoresDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(`CREATE TABLE scores (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		display_name TEXT NOT NULL,
		score        INTEGER NOT NULL,
		date         TEXT NOT NULL,
		recorded_at  TEXT NOT NULL
	);
	CREATE INDEX idx_scores_date ON scores(date);`); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestSQLStoreRoundTrip(t *testing.T) {
	s := NewSQLStore(openScoresDB(t))
	ctx := context.Background()

	records := []Record{
		{Name: "A", Score: 90, RecordedAt: at(t, "01-01-2024 10:00")},
		{Name: "B", Score: 70, RecordedAt: at(t, "01-01-2024 11:00")},
		{Name: "C", Score: 95, RecordedAt: at(t, "02-01-2024 09:00")},
	}
	for _, r := range records {
		if err := s.Append(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.TopForDay(ctx, "01-01-2024", DefaultTop)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Name != "A" || got[1].Name != "B" {
		t.Fatalf("unexpected leaderboard: %+v", got)
	}
	if got[0].Score != 90 {
		t.Fatalf("score lost in round trip: %+v", got[0])
	}
	if got[0].RecordedAt.Format(TimeFormat) != "01-01-2024 10:00" {
		t.Fatalf("timestamp lost in round trip: %v", got[0].RecordedAt)
	}

	if got, err := s.TopForDay(ctx, "03-01-2024", DefaultTop); err != nil || len(got) != 0 {
		t.Fatalf("expected empty day, got %+v (err %v)", got, err)
	}
}

func TestSQLStoreTieBreaksOnEarlierSave(t *testing.T) {
	s := NewSQLStore(openScoresDB(t))
	ctx := context.Background()
	day := "05-06-2024"

	for _, r := range []Record{
		{Name: "later50", Score: 50, RecordedAt: at(t, day+" 12:00")},
		{Name: "high", Score: 100, RecordedAt: at(t, day+" 09:00")},
		{Name: "earlier50", Score: 50, RecordedAt: at(t, day+" 08:00")},
	} {
		if err := s.Append(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.TopForDay(ctx, day, DefaultTop)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].Name != "high" {
		t.Fatalf("unexpected leaderboard: %+v", got)
	}
	// score DESC, recorded_at ASC: the earlier save wins the tie.
	if got[1].Name != "earlier50" || got[2].Name != "later50" {
		t.Fatalf("tie order broken: %+v", got)
	}
}

func TestSQLStoreLimitsToTopFive(t *testing.T) {
	s := NewSQLStore(openScoresDB(t))
	ctx := context.Background()
	day := "05-06-2024"

	for i, stamp := range []string{"08:00", "09:00", "10:00", "11:00", "12:00", "13:00", "14:00"} {
		r := Record{Name: "p", Score: 10 * (i + 1), RecordedAt: at(t, day+" "+stamp)}
		if err := s.Append(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.TopForDay(ctx, day, 0) // non-positive limit falls back to DefaultTop
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != DefaultTop {
		t.Fatalf("expected %d records, got %d", DefaultTop, len(got))
	}
	if got[0].Score != 70 || got[len(got)-1].Score != 30 {
		t.Fatalf("wrong slice of the ranking: %+v", got)
	}
}
