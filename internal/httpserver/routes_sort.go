// internal/httpserver/routes_sort.go
//
// HTTP routes for the sorting mini-game.
// Exposes three endpoints under /sort:
//   - POST /sort/question → draw (or redisplay) the current image
//   - POST /sort/answer   → classify the image as organic/inorganic
//   - POST /sort/restart  → replay with a fresh accumulator and used-set
//
// A run ends after the configured question count (10 by default). The
// image pool can run dry first only when the dataset is smaller than
// that count; the client then gets a blocking images_exhausted error.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Bietran/game-pemilahan-sampah/internal/dataset"
	"github.com/Bietran/game-pemilahan-sampah/internal/game"
)

// mountSort registers all /sort routes.
func (s *Server) mountSort(r chi.Router) {
	r.Route("/sort", func(r chi.Router) {
		r.Post("/question", s.handleSortQuestion)
		r.Post("/answer", s.handleSortAnswer)
		r.Post("/restart", s.handleSortRestart)
	})
}

// sortReq is the common request payload for /sort endpoints.
type sortReq struct {
	SessionID string `json:"sessionId"`
	Category  string `json:"category,omitempty"` // /sort/answer only
}

// sortQuestionRes is returned by /sort/question.
// When the run is already over it carries the summary instead of an item.
type sortQuestionRes struct {
	Finished  bool      `json:"finished"`
	Name      string    `json:"name,omitempty"`
	ImagePath string    `json:"imagePath,omitempty"`
	Answered  int       `json:"answered"`
	Limit     int       `json:"limit"`
	Tier      game.Tier `json:"tier,omitempty"`
}

// handleSortQuestion draws the next image for the session, or reports
// the terminal summary once the question limit is reached.
func (s *Server) handleSortQuestion(w http.ResponseWriter, r *http.Request) {
	var req sortReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess := s.getSessionOnPage(w, r, req.SessionID, game.PageSorting)
	if sess == nil {
		return
	}
	run := sess.Sorting

	answered, limit := run.Progress()
	if run.Finished() {
		_ = json.NewEncoder(w).Encode(sortQuestionRes{
			Finished: true, Answered: answered, Limit: limit, Tier: run.Tier(),
		})
		return
	}

	item, err := run.Question(s.now())
	if err != nil {
		writeGameError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(sortQuestionRes{
		Name:      item.Name,
		ImagePath: item.ImagePath,
		Answered:  answered,
		Limit:     limit,
	})
}

// sortAnswerRes is returned by /sort/answer.
type sortAnswerRes struct {
	Correct  bool             `json:"correct"`
	Category dataset.Category `json:"category"` // the right answer
	Elapsed  float64          `json:"elapsed"`
	Stats    statsView        `json:"stats"`
	Finished bool             `json:"finished"`
	Tier     game.Tier        `json:"tier,omitempty"`
}

// handleSortAnswer scores the displayed image against the chosen
// category. Feedback is transient: the response carries it, the session
// immediately awaits the next /sort/question.
func (s *Server) handleSortAnswer(w http.ResponseWriter, r *http.Request) {
	var req sortReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	chosen, ok := dataset.ParseCategory(req.Category)
	if !ok {
		writeGameError(w, game.ErrInvalidCategory)
		return
	}
	sess := s.getSessionOnPage(w, r, req.SessionID, game.PageSorting)
	if sess == nil {
		return
	}

	out, err := sess.Sorting.Answer(chosen, s.now())
	if err != nil {
		writeGameError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	if out.Finished {
		// Best effort; the run result is still returned on failure.
		s.recordResult(w, r, sess, "sorting", sess.Sorting.State)
	}

	_ = json.NewEncoder(w).Encode(sortAnswerRes{
		Correct:  out.Correct,
		Category: out.Category,
		Elapsed:  out.Elapsed,
		Stats:    statsOf(sess.Sorting.State),
		Finished: out.Finished,
		Tier:     out.Tier,
	})
}

// handleSortRestart replays the sorting game within the same session.
func (s *Server) handleSortRestart(w http.ResponseWriter, r *http.Request) {
	var req sortReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess := s.getSessionOnPage(w, r, req.SessionID, game.PageSorting)
	if sess == nil {
		return
	}
	sess.RestartSorting()
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(stateView(sess))
}
