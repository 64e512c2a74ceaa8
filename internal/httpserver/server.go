// internal/httpserver/server.go
//
// HTTP server wiring for the waste-sorting game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Session endpoints (optional auth): /session/new, /session/navigate,
//     /session/state, /session/reset, /session/end.
//   - Sorting-game and quiz endpoints, mounted from routes_sort.go and
//     routes_quiz.go.
//   - Score saving + daily leaderboard, mounted from routes_scores.go.
//   - Auth + profile/stat endpoints (require auth): /auth/*, /stats/me.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Every state mutation goes through the session store: fetch session,
//     apply controller transition, save, render the new state. The browser
//     re-renders from the JSON it gets back; there is no ambient state.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Bietran/game-pemilahan-sampah/internal/game"
	"github.com/Bietran/game-pemilahan-sampah/internal/leaderboard"
	"github.com/Bietran/game-pemilahan-sampah/internal/store"
)

// Server bundles router, session store, score store, and DB handle.
type Server struct {
	r      *chi.Mux
	store  store.Store
	scores leaderboard.Store
	db     *sql.DB
	cfg    game.Config
	now    func() time.Time // swappable clock for tests
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, scores leaderboard.Store, db *sql.DB, cfg game.Config) *Server {
	s := &Server{r: chi.NewRouter(), store: st, scores: scores, db: db, cfg: cfg, now: time.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"waste-sort-go","endpoints":["/health","POST /session/new","POST /sort/answer","POST /quiz/answer","/scores","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Session lifecycle — OPTIONAL AUTH (guests can play)
	opt := s.r.With(s.withOptionalAuth())
	opt.Post("/session/new", s.handleNewSession)
	opt.Post("/session/navigate", s.handleNavigate)
	opt.Get("/session/state", s.handleSessionState)
	opt.Post("/session/reset", s.handleSessionReset)
	opt.Post("/session/end", s.handleSessionEnd)

	// Mini-games
	s.mountSort(opt)
	s.mountQuiz(opt)

	// Scores + daily leaderboard
	s.mountScores(opt)

	// Auth + profile/stats (require auth)
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ----------------------------- sessions ------------------------------------

// newSessionRes is the payload for POST /session/new.
type newSessionRes struct {
	SessionID string    `json:"sessionId"`
	Page      game.Page `json:"page"`
}

// handleNewSession creates a session parked on the home page.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess := game.NewSession(s.cfg, s.now())
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(newSessionRes{SessionID: sess.ID, Page: sess.Page})
}

// navigateReq is the payload for POST /session/navigate.
type navigateReq struct {
	SessionID string `json:"sessionId"`
	Page      string `json:"page"` // "home" | "sorting" | "quiz"
}

// handleNavigate switches pages. Entering a game page restarts that game
// (fresh accumulator, cleared used-set) per the session lifecycle rules.
func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	page, ok := game.ParsePage(req.Page)
	if !ok {
		http.Error(w, `{"error":"unknown_page"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.SessionID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	sess.Navigate(page, s.now())
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(stateView(sess))
}

// handleSessionState renders the dashboard view of both games.
func (s *Server) handleSessionState(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), r.URL.Query().Get("session"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(stateView(sess))
}

// resetReq is the payload for POST /session/reset.
type resetReq struct {
	SessionID string `json:"sessionId"`
}

// handleSessionReset wipes both games and returns to the home page.
func (s *Server) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.SessionID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	sess.Reset()
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(stateView(sess))
}

// endReq is the payload for POST /session/end.
type endReq struct {
	SessionID string `json:"sessionId"`
}

// handleSessionEnd drops the session from the store entirely. Unlike
// reset, the ID is gone afterwards; the visitor starts over with
// /session/new.
func (s *Server) handleSessionEnd(w http.ResponseWriter, r *http.Request) {
	var req endReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if _, err := s.store.Get(r.Context(), req.SessionID); err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if err := s.store.Delete(r.Context(), req.SessionID); err != nil {
		http.Error(w, `{"error":"delete_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ended": true})
}

// ------------------------------ views --------------------------------------

// statsView summarizes one accumulator for the dashboard.
type statsView struct {
	Score    int     `json:"score"`
	Correct  int     `json:"correct"`
	Wrong    int     `json:"wrong"`
	Total    int     `json:"totalQuestions"`
	Accuracy float64 `json:"accuracy"`
}

// runView wraps statsView with progress/terminal fields.
type runView struct {
	statsView
	Answered int       `json:"answered"`
	Limit    int       `json:"limit"`
	Finished bool      `json:"finished"`
	Tier     game.Tier `json:"tier,omitempty"`
}

// sessionView is the full re-render payload after any mutation.
type sessionView struct {
	SessionID string    `json:"sessionId"`
	Page      game.Page `json:"page"`
	Sorting   *runView  `json:"sorting,omitempty"`
	Quiz      *runView  `json:"quiz,omitempty"`
}

func statsOf(g game.GameState) statsView {
	return statsView{
		Score:    g.Score,
		Correct:  g.Correct,
		Wrong:    g.Wrong,
		Total:    g.TotalQuestions(),
		Accuracy: g.Accuracy(),
	}
}

// stateView builds the sessionView for a session.
func stateView(sess *game.Session) sessionView {
	v := sessionView{SessionID: sess.ID, Page: sess.Page}
	if run := sess.Sorting; run != nil {
		answered, limit := run.Progress()
		rv := runView{statsView: statsOf(run.State), Answered: answered, Limit: limit, Finished: run.Finished()}
		if rv.Finished {
			rv.Tier = run.Tier()
		}
		v.Sorting = &rv
	}
	if run := sess.Quiz; run != nil {
		answered, total := run.Progress()
		rv := runView{statsView: statsOf(run.State), Answered: answered, Limit: total, Finished: run.Finished()}
		if rv.Finished {
			rv.Tier = run.Tier()
		}
		v.Quiz = &rv
	}
	return v
}

// ------------------------------ helpers ------------------------------------

// getSessionOnPage loads a session and checks it is on the expected page.
// Writes the error response itself; callers bail on nil.
func (s *Server) getSessionOnPage(w http.ResponseWriter, r *http.Request, id string, page game.Page) *game.Session {
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil
	}
	if sess.Page != page {
		http.Error(w, `{"error":"wrong_page","page":"`+string(sess.Page)+`"}`, http.StatusConflict)
		return nil
	}
	return sess
}

// writeGameError maps run state-machine errors onto HTTP responses.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrPoolExhausted):
		http.Error(w, `{"error":"images_exhausted"}`, http.StatusConflict)
	case errors.Is(err, game.ErrRunFinished):
		http.Error(w, `{"error":"run_finished"}`, http.StatusConflict)
	case errors.Is(err, game.ErrNoQuestion):
		http.Error(w, `{"error":"no_question"}`, http.StatusConflict)
	case errors.Is(err, game.ErrAwaitingContinue):
		http.Error(w, `{"error":"awaiting_continue"}`, http.StatusConflict)
	case errors.Is(err, game.ErrNotAwaitingContinue):
		http.Error(w, `{"error":"nothing_to_continue"}`, http.StatusConflict)
	case errors.Is(err, game.ErrInvalidOption), errors.Is(err, game.ErrInvalidCategory):
		http.Error(w, `{"error":"invalid_answer"}`, http.StatusBadRequest)
	default:
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
