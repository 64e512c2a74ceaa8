// internal/game/types.go
//
// Core type definitions for the waste-sorting game.
// Defines:
//   - Page: which screen the session is on (home/sorting/quiz).
//   - Tier: outcome classification on a finished run.
//   - Config: tunable point values and question counts.
//   - Sentinel errors shared by the run state machines.

package game

import "errors"

// Page identifies one of the three screens a session can be on.
type Page string

const (
	PageHome    Page = "home"
	PageSorting Page = "sorting"
	PageQuiz    Page = "quiz"
)

// ParsePage maps a wire string onto a Page.
func ParsePage(s string) (Page, bool) {
	switch Page(s) {
	case PageHome, PageSorting, PageQuiz:
		return Page(s), true
	}
	return "", false
}

// Tier classifies a finished run by score percentage.
// Boundaries are inclusive: >=80% top, >=60% great, else keep-trying.
type Tier string

const (
	TierTop        Tier = "top"
	TierGreat      Tier = "great"
	TierKeepTrying Tier = "keep_trying"
)

// TierFor computes the outcome tier for score out of max points.
func TierFor(score, max int) Tier {
	if max <= 0 {
		return TierKeepTrying
	}
	pct := score * 100 / max
	switch {
	case pct >= 80:
		return TierTop
	case pct >= 60:
		return TierGreat
	default:
		return TierKeepTrying
	}
}

// Config carries the per-deployment game constants.
// Sorting and quiz point values differ in the original game and are kept
// as independent knobs rather than unified.
type Config struct {
	SortPoints    int // points per correct sorting answer
	QuizPoints    int // points per correct quiz answer
	SortQuestions int // answered questions that end a sorting run
}

// DefaultConfig returns the stock values: 10-point sorting answers over
// 10 questions, 20-point quiz answers.
func DefaultConfig() Config {
	return Config{SortPoints: 10, QuizPoints: 20, SortQuestions: 10}
}

var (
	// ErrRunFinished rejects input once a run has hit its terminal state.
	ErrRunFinished = errors.New("run finished")
	// ErrPoolExhausted signals the sorting image pool ran dry before the
	// question limit. Only reachable when the dataset is smaller than the
	// configured question count.
	ErrPoolExhausted = errors.New("all images exhausted")
	// ErrNoQuestion rejects an answer when no question is displayed.
	ErrNoQuestion = errors.New("no question displayed")
	// ErrAwaitingContinue rejects a second answer before the explanation
	// has been acknowledged.
	ErrAwaitingContinue = errors.New("awaiting continue")
	// ErrNotAwaitingContinue rejects a continue with nothing to acknowledge.
	ErrNotAwaitingContinue = errors.New("nothing to continue from")
	// ErrInvalidOption rejects an option index outside the question.
	ErrInvalidOption = errors.New("invalid option")
	// ErrInvalidCategory rejects an unknown waste category.
	ErrInvalidCategory = errors.New("invalid category")
)
