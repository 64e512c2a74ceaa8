// internal/knn/knn.go
//
// K-nearest-neighbor classifier over mean image colors, used by the
// offline training utility (cmd/trainmodel). The server never loads the
// model at runtime; this package exists so the trainer stays testable.
//
// A fitted model maps a mean RGB color to a waste label via majority
// vote among the K nearest training samples (squared Euclidean
// distance). Ties go to the nearer neighbor set, which with sorted
// neighbors means the first label encountered wins.

package knn

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"sort"
)

// Label is the class a sample belongs to.
type Label int

const (
	LabelOrganic   Label = 0
	LabelInorganic Label = 1
)

// Sample is one training observation: a mean RGB color and its label.
type Sample struct {
	Color [3]float64 `json:"color"`
	Label Label      `json:"label"`
}

// Model is a fitted (i.e. memorized) KNN classifier.
type Model struct {
	K       int      `json:"k"`
	Samples []Sample `json:"samples"`
}

// New returns an empty model with the given neighbor count.
func New(k int) *Model {
	return &Model{K: k}
}

// Fit adds training samples. KNN "training" is just memorization.
func (m *Model) Fit(samples []Sample) {
	m.Samples = append(m.Samples, samples...)
}

// Predict classifies a mean color by majority vote among the K nearest
// samples. Returns an error on an unfitted model.
func (m *Model) Predict(color [3]float64) (Label, error) {
	if len(m.Samples) == 0 {
		return 0, errors.New("knn: model has no samples")
	}

	type scored struct {
		dist  float64
		label Label
	}
	neighbors := make([]scored, len(m.Samples))
	for i, s := range m.Samples {
		neighbors[i] = scored{dist: sqDist(color, s.Color), label: s.Label}
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].dist < neighbors[j].dist
	})

	k := m.K
	if k <= 0 {
		k = 1
	}
	if k > len(neighbors) {
		k = len(neighbors)
	}

	votes := map[Label]int{}
	for _, n := range neighbors[:k] {
		votes[n.label]++
	}

	best := neighbors[0].label // nearest wins a tie
	for _, n := range neighbors[:k] {
		if votes[n.label] > votes[best] {
			best = n.label
		}
	}
	return best, nil
}

// sqDist is squared Euclidean distance in RGB space.
func sqDist(a, b [3]float64) float64 {
	var d float64
	for i := range a {
		diff := a[i] - b[i]
		d += diff * diff
	}
	return d
}

// Save serializes the fitted model to a JSON file.
func (m *Model) Save(path string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}

// Load reads a model back from a JSON file.
func Load(path string) (*Model, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var m Model
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return &m, nil
}

// MeanColor computes the average RGB of an image, scaled to 0-255.
func MeanColor(img image.Image) [3]float64 {
	bounds := img.Bounds()
	var sum [3]float64
	var n float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			sum[0] += float64(r >> 8)
			sum[1] += float64(g >> 8)
			sum[2] += float64(b >> 8)
			n++
		}
	}
	if n == 0 {
		return [3]float64{}
	}
	return [3]float64{sum[0] / n, sum[1] / n, sum[2] / n}
}
