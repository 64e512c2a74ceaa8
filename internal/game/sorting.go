// internal/game/sorting.go
//
// State machine for one sorting-game run.
// Responsibilities:
//   - Draw images from the dataset without replacement (used-set).
//   - Score answers with elapsed response time.
//   - Track the terminal condition (configured question limit) and the
//     outcome tier of a finished run.
//
// Flow: question displayed → answered (feedback is transient, the
// current item clears immediately) → next question, until the limit is
// reached or the pool runs dry.

package game

import (
	"time"

	"github.com/Bietran/game-pemilahan-sampah/internal/dataset"
)

// SortingRun holds the state of a single sorting-game session.
type SortingRun struct {
	State GameState

	used          map[string]struct{} // item files already shown
	current       *dataset.Item       // question on screen, nil between questions
	questionStart time.Time

	limit  int
	points int
}

// NewSortingRun constructs a fresh run with an empty used-set.
func NewSortingRun(cfg Config) *SortingRun {
	return &SortingRun{
		used:   make(map[string]struct{}),
		limit:  cfg.SortQuestions,
		points: cfg.SortPoints,
	}
}

// Finished reports whether the run hit its question limit.
func (r *SortingRun) Finished() bool {
	return r.State.TotalQuestions() >= r.limit
}

// Question returns the item to display, drawing a new one when none is
// on screen. Drawing marks the item used, so no image repeats within the
// run. Returns ErrRunFinished past the limit and ErrPoolExhausted when
// the exclusion set covers the whole dataset.
func (r *SortingRun) Question(now time.Time) (dataset.Item, error) {
	if r.Finished() {
		return dataset.Item{}, ErrRunFinished
	}
	if r.current != nil {
		return *r.current, nil
	}
	item, ok := dataset.Sample(r.used)
	if !ok {
		return dataset.Item{}, ErrPoolExhausted
	}
	r.used[item.File] = struct{}{}
	r.current = &item
	r.questionStart = now
	return item, nil
}

// SortOutcome is the result of answering one sorting question.
type SortOutcome struct {
	Correct  bool
	Category dataset.Category // the right answer
	Elapsed  float64          // seconds from display to answer
	Finished bool
	Tier     Tier // set only when Finished
}

// Answer scores the displayed question against the chosen category and
// clears it (feedback auto-clears; the next Question call draws again).
func (r *SortingRun) Answer(chosen dataset.Category, now time.Time) (SortOutcome, error) {
	if r.Finished() {
		return SortOutcome{}, ErrRunFinished
	}
	if r.current == nil {
		return SortOutcome{}, ErrNoQuestion
	}

	elapsed := now.Sub(r.questionStart).Seconds()
	correct := chosen == r.current.Category
	r.State.AddAnswer(correct, elapsed, r.points)

	out := SortOutcome{
		Correct:  correct,
		Category: r.current.Category,
		Elapsed:  elapsed,
	}
	r.current = nil

	if r.Finished() {
		out.Finished = true
		out.Tier = r.Tier()
	}
	return out, nil
}

// Tier classifies the run's score against the maximum attainable.
func (r *SortingRun) Tier() Tier {
	return TierFor(r.State.Score, r.limit*r.points)
}

// Progress reports answered questions out of the run limit.
func (r *SortingRun) Progress() (answered, limit int) {
	return r.State.TotalQuestions(), r.limit
}
