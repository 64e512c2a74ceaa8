// internal/httpserver/routes_quiz.go
//
// HTTP routes for the mini quiz.
// Exposes four endpoints under /quiz:
//   - GET  /quiz/question → the current question (no state change)
//   - POST /quiz/answer   → score an option, reveal the explanation
//   - POST /quiz/continue → acknowledge the explanation and advance
//   - POST /quiz/restart  → replay from question 0
//
// Answer and continue are deliberately separate transitions so the
// explanation is always shown before the index moves.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Bietran/game-pemilahan-sampah/internal/game"
	"github.com/Bietran/game-pemilahan-sampah/internal/quiz"
)

// mountQuiz registers all /quiz routes.
func (s *Server) mountQuiz(r chi.Router) {
	r.Route("/quiz", func(r chi.Router) {
		r.Get("/question", s.handleQuizQuestion)
		r.Post("/answer", s.handleQuizAnswer)
		r.Post("/continue", s.handleQuizContinue)
		r.Post("/restart", s.handleQuizRestart)
	})
}

// quizReq is the common request payload for /quiz POST endpoints.
type quizReq struct {
	SessionID string `json:"sessionId"`
	Option    *int   `json:"option,omitempty"` // /quiz/answer only
}

// quizQuestionRes is returned by GET /quiz/question.
type quizQuestionRes struct {
	Finished         bool     `json:"finished"`
	Index            int      `json:"index"`
	Total            int      `json:"total"`
	Question         string   `json:"question,omitempty"`
	Options          []string `json:"options,omitempty"`
	AwaitingContinue bool     `json:"awaitingContinue"`
	Explanation      string   `json:"explanation,omitempty"` // only while awaiting
}

// handleQuizQuestion renders the current question, or the pending
// explanation when the last answer has not been acknowledged yet.
func (s *Server) handleQuizQuestion(w http.ResponseWriter, r *http.Request) {
	sess := s.getSessionOnPage(w, r, r.URL.Query().Get("session"), game.PageQuiz)
	if sess == nil {
		return
	}
	run := sess.Quiz

	res := quizQuestionRes{
		Finished:         run.Finished(),
		Index:            run.Index(),
		Total:            quiz.Len(),
		AwaitingContinue: run.AwaitingContinue(),
		Explanation:      run.Explanation(),
	}
	if !run.Finished() {
		item, err := run.Question()
		if err != nil {
			writeGameError(w, err)
			return
		}
		res.Question = item.Question
		res.Options = item.Options
	}
	_ = json.NewEncoder(w).Encode(res)
}

// quizAnswerRes is returned by /quiz/answer.
type quizAnswerRes struct {
	Correct     bool      `json:"correct"`
	Answer      int       `json:"answer"` // index of the correct option
	Explanation string    `json:"explanation"`
	Elapsed     float64   `json:"elapsed"`
	Stats       statsView `json:"stats"`
}

// handleQuizAnswer scores the chosen option. The run then waits for
// /quiz/continue; a second answer in that window is rejected.
func (s *Server) handleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	var req quizReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.Option == nil {
		writeGameError(w, game.ErrInvalidOption)
		return
	}
	sess := s.getSessionOnPage(w, r, req.SessionID, game.PageQuiz)
	if sess == nil {
		return
	}

	out, err := sess.Quiz.Answer(*req.Option, s.now())
	if err != nil {
		writeGameError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	_ = json.NewEncoder(w).Encode(quizAnswerRes{
		Correct:     out.Correct,
		Answer:      out.Answer,
		Explanation: out.Explanation,
		Elapsed:     out.Elapsed,
		Stats:       statsOf(sess.Quiz.State),
	})
}

// quizContinueRes is returned by /quiz/continue.
// On the final acknowledgement it carries the summary and a fun fact.
type quizContinueRes struct {
	Finished bool      `json:"finished"`
	Index    int       `json:"index"`
	Total    int       `json:"total"`
	Stats    statsView `json:"stats"`
	Tier     game.Tier `json:"tier,omitempty"`
	Fact     string    `json:"fact,omitempty"`
}

// handleQuizContinue acknowledges the explanation and advances the
// index. This is the only transition that moves the quiz forward.
func (s *Server) handleQuizContinue(w http.ResponseWriter, r *http.Request) {
	var req quizReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess := s.getSessionOnPage(w, r, req.SessionID, game.PageQuiz)
	if sess == nil {
		return
	}
	run := sess.Quiz

	if err := run.Continue(s.now()); err != nil {
		writeGameError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	res := quizContinueRes{
		Finished: run.Finished(),
		Index:    run.Index(),
		Total:    quiz.Len(),
		Stats:    statsOf(run.State),
	}
	if res.Finished {
		res.Tier = run.Tier()
		res.Fact = quiz.RandomFact()
		// Best effort; the summary is still returned on failure.
		s.recordResult(w, r, sess, "quiz", run.State)
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleQuizRestart replays the quiz within the same session.
func (s *Server) handleQuizRestart(w http.ResponseWriter, r *http.Request) {
	var req quizReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess := s.getSessionOnPage(w, r, req.SessionID, game.PageQuiz)
	if sess == nil {
		return
	}
	sess.RestartQuiz(s.now())
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(stateView(sess))
}
