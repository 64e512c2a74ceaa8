// internal/game/session.go
//
// Session ties the two mini-games to a single visitor. It owns the
// current page and one run per game, and replaces a run wholesale when
// the visitor enters (or restarts) that game. There is no ambient
// global state: handlers fetch the session from the store and mutate it
// explicitly.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Session holds the navigation and game state for one visitor.
type Session struct {
	ID        string
	Page      Page
	CreatedAt time.Time
	Config    Config

	Sorting *SortingRun // nil until the sorting page is first entered
	Quiz    *QuizRun    // nil until the quiz page is first entered
}

// NewSession starts a session on the home page.
func NewSession(cfg Config, now time.Time) *Session {
	return &Session{
		ID:        randomID(),
		Page:      PageHome,
		CreatedAt: now,
		Config:    cfg,
	}
}

// Navigate switches pages. Entering a game page starts that game fresh:
// a new run, a new accumulator, and (for sorting) an empty used-set.
// Navigating home leaves run state readable for the dashboard.
func (s *Session) Navigate(page Page, now time.Time) {
	s.Page = page
	switch page {
	case PageSorting:
		s.Sorting = NewSortingRun(s.Config)
	case PageQuiz:
		s.Quiz = NewQuizRun(s.Config, now)
	case PageHome:
		// keep finished/in-progress runs visible
	}
}

// RestartSorting replays the sorting game in place.
func (s *Session) RestartSorting() {
	s.Sorting = NewSortingRun(s.Config)
}

// RestartQuiz replays the quiz in place.
func (s *Session) RestartQuiz(now time.Time) {
	s.Quiz = NewQuizRun(s.Config, now)
}

// Reset wipes both games and returns to the home page.
func (s *Session) Reset() {
	s.Page = PageHome
	s.Sorting = nil
	s.Quiz = nil
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
