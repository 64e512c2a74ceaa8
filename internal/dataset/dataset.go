// internal/dataset/dataset.go
//
// Provides the image dataset for the sorting game.
//
// Responsibilities:
//   - Load the item table from an environment-provided CSV file or fall back
//     to a small embedded default so the game is always playable.
//   - Normalize categories to their canonical capitalized form.
//   - Resolve image paths relative to the images directory.
//   - Supply sampling without replacement over the remaining items.
//
// Dataset format (CSV with header):
//   name,file,category
//   Leaf,leaf.jpeg,organic
//
// Initialization behavior (Init):
//   1. If DATASET_FILE is set and readable, load items from it.
//   2. If DATASET_FILE is unset or the file is missing, fall back to the
//      embedded default table. A missing file is NOT an error.
//
// Environment variables:
//   DATASET_FILE=/path/to/items.csv
//   IMAGES_DIR=/path/to/images   (default "images")
//
// Constraints:
//   • Category values must normalize to Organic or Inorganic; other rows
//     are skipped.
//   • Items are keyed by their file name for the used-set.
//   • Initialization is run once (sync.Once).

package dataset

import (
	"crypto/rand"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Bietran/game-pemilahan-sampah/assets"
)

// Category is one of the two waste classes the game teaches.
type Category string

const (
	Organic   Category = "Organic"
	Inorganic Category = "Inorganic"
)

// ParseCategory normalizes arbitrary capitalization ("organic", "ORGANIC")
// to the canonical form. Returns false for anything else.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "organic":
		return Organic, true
	case "inorganic":
		return Inorganic, true
	}
	return "", false
}

// Item is a single entry of the sorting-game dataset.
type Item struct {
	Name      string   `json:"name"`
	File      string   `json:"file"`      // identity key within a session
	ImagePath string   `json:"imagePath"` // File resolved against the images dir
	Category  Category `json:"category"`
}

var (
	initOnce   sync.Once
	items      []Item
	initialErr error
)

// Init loads the dataset exactly once.
// Returns an error only if the resulting table is empty or malformed;
// an absent DATASET_FILE silently substitutes the embedded default.
func Init() error {
	initOnce.Do(func() {
		imagesDir := os.Getenv("IMAGES_DIR")
		if imagesDir == "" {
			imagesDir = "images"
		}

		path := os.Getenv("DATASET_FILE")
		if path != "" {
			f, err := os.Open(path)
			switch {
			case err == nil:
				defer f.Close()
				items, initialErr = readItems(f, imagesDir)
				return
			case errors.Is(err, os.ErrNotExist):
				// fall through to the embedded table
			default:
				initialErr = fmt.Errorf("open dataset %s: %w", path, err)
				return
			}
		}

		raw, err := assets.DefaultItemsCSV()
		if err != nil {
			initialErr = fmt.Errorf("embedded dataset: %w", err)
			return
		}
		items, initialErr = readItems(strings.NewReader(string(raw)), imagesDir)
	})
	return initialErr
}

// readItems parses CSV rows into Items, skipping the header and any row
// whose category does not normalize to Organic/Inorganic.
func readItems(r io.Reader, imagesDir string) ([]Item, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var out []Item
	for i, row := range rows {
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "name") {
			continue // header
		}
		if len(row) < 3 {
			continue
		}
		cat, ok := ParseCategory(row[2])
		if !ok {
			continue
		}
		file := strings.TrimSpace(row[1])
		out = append(out, Item{
			Name:      strings.TrimSpace(row[0]),
			File:      file,
			ImagePath: filepath.Join(imagesDir, file),
			Category:  cat,
		})
	}
	if len(out) == 0 {
		return nil, errors.New("dataset: item table is empty")
	}
	return out, nil
}

// Items returns the loaded dataset.
func Items() []Item { return items }

// Len reports the dataset size.
func Len() int { return len(items) }

// Sample selects uniformly at random from items not in used, keyed by
// Item.File. The second return is false once the exclusion set covers
// the full dataset.
func Sample(used map[string]struct{}) (Item, bool) {
	remaining := make([]Item, 0, len(items))
	for _, it := range items {
		if _, ok := used[it.File]; !ok {
			remaining = append(remaining, it)
		}
	}
	if len(remaining) == 0 {
		return Item{}, false
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(remaining))))
	return remaining[nBig.Int64()], true
}

// SetItemsForTest replaces the dataset, bypassing Init. Test helper only.
func SetItemsForTest(list []Item) {
	items = list
}
