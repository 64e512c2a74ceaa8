// cmd/trainmodel/main.go
//
// Offline training utility: fits a 3-NN mean-color classifier from two
// directories of labeled images and serializes the model to a file.
// The game server does not use the model; this is a standalone tool.
//
// Usage:
//   trainmodel -organic dataset/organic -inorganic dataset/inorganic -out model_knn.json

package main

import (
	"flag"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Bietran/game-pemilahan-sampah/internal/knn"
)

func main() {
	organicDir := flag.String("organic", "dataset/organic", "directory of organic training images")
	inorganicDir := flag.String("inorganic", "dataset/inorganic", "directory of inorganic training images")
	out := flag.String("out", "model_knn.json", "output model file")
	k := flag.Int("k", 3, "number of neighbors")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	model := knn.New(*k)

	organic := collectSamples(*organicDir, knn.LabelOrganic)
	inorganic := collectSamples(*inorganicDir, knn.LabelInorganic)
	model.Fit(organic)
	model.Fit(inorganic)

	if len(model.Samples) == 0 {
		log.Fatal().Msg("no training images could be read")
	}

	if err := model.Save(*out); err != nil {
		log.Fatal().Err(err).Str("out", *out).Msg("save model")
	}
	log.Info().
		Int("organic", len(organic)).
		Int("inorganic", len(inorganic)).
		Str("out", *out).
		Msg("model saved")
}

// collectSamples decodes every readable image in dir and reduces each to
// its mean RGB color. Unreadable files are skipped with a warning.
func collectSamples(dir string, label knn.Label) []knn.Sample {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("read training dir")
		return nil
	}

	var out []knn.Sample
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		color, err := meanColorOfFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("skip image")
			continue
		}
		out = append(out, knn.Sample{Color: color, Label: label})
	}
	return out
}

// meanColorOfFile opens and decodes one image file.
func meanColorOfFile(path string) ([3]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return [3]float64{}, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return [3]float64{}, err
	}
	return knn.MeanColor(img), nil
}
