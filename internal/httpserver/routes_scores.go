// internal/httpserver/routes_scores.go
//
// Score persistence and the daily leaderboard.
// Exposes two endpoints:
//   - POST /scores      → record the session's final quiz score under a
//                         visitor-supplied display name
//   - GET  /leaderboard → top 5 scores for today (or a given date)
//
// Saving is only allowed once the quiz run has finished, and a blank or
// whitespace-only name is rejected with a warning; nothing is written.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Bietran/game-pemilahan-sampah/internal/leaderboard"
)

// maxDisplayName bounds what ends up in the score record, in runes.
const maxDisplayName = 40

// mountScores registers the /scores and /leaderboard routes.
func (s *Server) mountScores(r chi.Router) {
	r.Post("/scores", s.handleSaveScore)
	r.Get("/leaderboard", s.handleLeaderboard)
}

// saveScoreReq is the payload for POST /scores.
type saveScoreReq struct {
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`
}

// saveScoreRes is returned on a successful save.
type saveScoreRes struct {
	Saved  bool               `json:"saved"`
	Record leaderboard.Record `json:"record"`
}

// handleSaveScore appends the finished quiz score to the record store.
func (s *Server) handleSaveScore(w http.ResponseWriter, r *http.Request) {
	var req saveScoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		http.Error(w, `{"error":"name_required","warning":"enter a name first"}`, http.StatusBadRequest)
		return
	}
	if runes := []rune(name); len(runes) > maxDisplayName {
		name = string(runes[:maxDisplayName])
	}

	sess, err := s.store.Get(r.Context(), req.SessionID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if sess.Quiz == nil || !sess.Quiz.Finished() {
		http.Error(w, `{"error":"quiz_not_finished"}`, http.StatusConflict)
		return
	}

	rec := leaderboard.Record{
		Name:       name,
		Score:      sess.Quiz.State.Score,
		RecordedAt: s.now(),
	}
	if err := s.scores.Append(r.Context(), rec); err != nil {
		log.Error().Err(err).Str("name", name).Msg("append score")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(saveScoreRes{Saved: true, Record: rec})
}

// lbRes is returned by /leaderboard.
type lbRes struct {
	Date string               `json:"date"`
	Top  []leaderboard.Record `json:"top"`
}

// handleLeaderboard returns the top 5 for the given date (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = s.now().Format(leaderboard.DateFormat)
	}
	rows, err := s.scores.TopForDay(r.Context(), date, leaderboard.DefaultTop)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("read leaderboard")
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
