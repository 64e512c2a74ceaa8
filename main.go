package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Bietran/game-pemilahan-sampah/internal/dataset"
	"github.com/Bietran/game-pemilahan-sampah/internal/game"
	"github.com/Bietran/game-pemilahan-sampah/internal/httpserver"
	"github.com/Bietran/game-pemilahan-sampah/internal/leaderboard"
	"github.com/Bietran/game-pemilahan-sampah/internal/quiz"
	"github.com/Bietran/game-pemilahan-sampah/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := dataset.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load image dataset")
	}
	if err := quiz.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load quiz bank")
	}
	log.Info().Int("items", dataset.Len()).Int("questions", quiz.Len()).Msg("content loaded")

	db, err := openDB(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	// Scores live in sqlite by default; SCORES_FILE switches to the
	// flat-file format of the original deployment.
	var scores leaderboard.Store = leaderboard.NewSQLStore(db)
	if path := os.Getenv("SCORES_FILE"); path != "" {
		scores = leaderboard.NewCSVStore(path)
		log.Info().Str("file", path).Msg("using CSV score store")
	}

	cfg := game.Config{
		SortPoints:    envInt("SORT_POINTS", 10),
		QuizPoints:    envInt("QUIZ_POINTS", 20),
		SortQuestions: envInt("SORT_QUESTIONS", 10),
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, scores, db, cfg)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting waste-sort server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
