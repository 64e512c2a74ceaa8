// internal/leaderboard/csv.go
//
// Flat-file Store implementation: one CSV row per saved score, appended
// to a scores file. This matches the original deployment's scores.csv
// format (name,score,"DD-MM-YYYY HH:MM") and is selected with the
// SCORES_FILE environment variable.

package leaderboard

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// CSVStore appends score rows to a flat file.
type CSVStore struct {
	path string
	mu   sync.Mutex // serializes appends within this process
}

// NewCSVStore creates a store over the given file path. The file is
// created on first append; a missing file on read means "no data yet".
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Append writes one record as a single CSV row.
func (s *CSVStore) Append(ctx context.Context, r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open scores file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{r.Name, strconv.Itoa(r.Score), r.RecordedAt.Format(TimeFormat)}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// TopForDay reads all rows and reduces them with TopN.
// A missing file yields an empty leaderboard, not an error.
func (s *CSVStore) TopForDay(ctx context.Context, date string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultTop
	}

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open scores file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read scores file: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		score, err := strconv.Atoi(row[1])
		if err != nil {
			continue // malformed row, skip rather than fail the view
		}
		at, err := time.Parse(TimeFormat, row[2])
		if err != nil {
			continue
		}
		records = append(records, Record{Name: row[0], Score: score, RecordedAt: at})
	}
	return TopN(records, date, limit), nil
}
