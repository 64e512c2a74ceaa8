package leaderboard

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func at(t *testing.T, stamp string) time.Time {
	t.Helper()
	ts, err := time.Parse(TimeFormat, stamp)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestTopNFiltersByDay(t *testing.T) {
	records := []Record{
		{Name: "A", Score: 90, RecordedAt: at(t, "01-01-2024 10:00")},
		{Name: "B", Score: 70, RecordedAt: at(t, "01-01-2024 11:00")},
		{Name: "C", Score: 95, RecordedAt: at(t, "02-01-2024 09:00")},
	}

	got := TopN(records, "01-01-2024", DefaultTop)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(got), got)
	}
	if got[0].Name != "A" || got[1].Name != "B" {
		t.Fatalf("wrong order: %+v", got)
	}

	if got := TopN(records, "03-01-2024", DefaultTop); len(got) != 0 {
		t.Fatalf("expected empty day, got %+v", got)
	}
}

func TestTopNTruncatesAndKeepsTieOrder(t *testing.T) {
	day := "05-06-2024"
	records := []Record{
		{Name: "first50", Score: 50, RecordedAt: at(t, day+" 08:00")},
		{Name: "high", Score: 100, RecordedAt: at(t, day+" 09:00")},
		{Name: "second50", Score: 50, RecordedAt: at(t, day+" 10:00")},
		{Name: "low", Score: 10, RecordedAt: at(t, day+" 11:00")},
	}

	got := TopN(records, day, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if got[0].Name != "high" {
		t.Fatalf("expected high first, got %+v", got)
	}
	// Stable sort keeps the earlier 50 ahead of the later one.
	if got[1].Name != "first50" || got[2].Name != "second50" {
		t.Fatalf("tie order broken: %+v", got)
	}
}

func TestCSVStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	s := NewCSVStore(path)
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
}

func TestCSVStoreMissingFileIsEmpty(t *testing.T) {
	s := NewCSVStore(filepath.Join(t.TempDir(), "absent.csv"))
	got, err := s.TopForDay(context.Background(), "01-01-2024", DefaultTop)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty leaderboard, got %+v", got)
	}
}

func TestCSVStoreConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	s := NewCSVStore(path)
	ctx := context.Background()
	rec := Record{Name: "Racer", Score: 60, RecordedAt: at(t, "01-01-2024 10:00")}

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Append(ctx, rec)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}

	// Every row must survive intact: no interleaved or torn writes.
	got, err := s.TopForDay(ctx, "01-01-2024", writers)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != writers {
		t.Fatalf("expected %d records, got %d", writers, len(got))
	}
	for _, r := range got {
		if r.Name != "Racer" || r.Score != 60 {
			t.Fatalf("corrupted record: %+v", r)
		}
	}
}

func TestCSVStoreSkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	raw := "A,90,01-01-2024 10:00\nbroken,notanumber,01-01-2024 10:30\nB,70,01-01-2024 11:00\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewCSVStore(path)
	got, err := s.TopForDay(context.Background(), "01-01-2024", DefaultTop)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected malformed row skipped, got %+v", got)
	}
}
