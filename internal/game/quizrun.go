// internal/game/quizrun.go
//
// State machine for one quiz run over the fixed question bank.
//
// The flow is two-step on purpose: Answer scores the question and
// reveals the explanation, Continue acknowledges it and advances. The
// index increments in Continue and nowhere else, so the explanation can
// never be skipped and can never double-advance.

package game

import (
	"time"

	"github.com/Bietran/game-pemilahan-sampah/internal/quiz"
)

// QuizRun holds the state of a single quiz session.
type QuizRun struct {
	State GameState

	index            int
	awaitingContinue bool
	explanation      string
	questionStart    time.Time

	points int
}

// NewQuizRun starts a run at question 0 with the clock running.
func NewQuizRun(cfg Config, now time.Time) *QuizRun {
	return &QuizRun{points: cfg.QuizPoints, questionStart: now}
}

// Finished reports whether all questions have been answered and
// acknowledged.
func (q *QuizRun) Finished() bool {
	return q.index >= quiz.Len()
}

// Index is the zero-based position of the current question.
func (q *QuizRun) Index() int { return q.index }

// AwaitingContinue reports whether an explanation is pending
// acknowledgement.
func (q *QuizRun) AwaitingContinue() bool { return q.awaitingContinue }

// Explanation returns the pending explanation, or "".
func (q *QuizRun) Explanation() string { return q.explanation }

// Question returns the current question. ErrRunFinished past the end.
func (q *QuizRun) Question() (quiz.Item, error) {
	if q.Finished() {
		return quiz.Item{}, ErrRunFinished
	}
	return quiz.Get(q.index)
}

// QuizOutcome is the result of answering one quiz question.
type QuizOutcome struct {
	Correct     bool
	Answer      int // index of the correct option
	Explanation string
	Elapsed     float64
}

// Answer scores the chosen option and parks the run until Continue.
func (q *QuizRun) Answer(option int, now time.Time) (QuizOutcome, error) {
	if q.Finished() {
		return QuizOutcome{}, ErrRunFinished
	}
	if q.awaitingContinue {
		return QuizOutcome{}, ErrAwaitingContinue
	}
	item, err := quiz.Get(q.index)
	if err != nil {
		return QuizOutcome{}, err
	}
	if option < 0 || option >= len(item.Options) {
		return QuizOutcome{}, ErrInvalidOption
	}

	elapsed := now.Sub(q.questionStart).Seconds()
	correct := option == item.Answer
	q.State.AddAnswer(correct, elapsed, q.points)

	q.awaitingContinue = true
	q.explanation = item.Explanation

	return QuizOutcome{
		Correct:     correct,
		Answer:      item.Answer,
		Explanation: item.Explanation,
		Elapsed:     elapsed,
	}, nil
}

// Continue acknowledges the explanation and advances to the next
// question, restarting the response clock. This is the only place the
// index moves.
func (q *QuizRun) Continue(now time.Time) error {
	if !q.awaitingContinue {
		return ErrNotAwaitingContinue
	}
	q.index++
	q.awaitingContinue = false
	q.explanation = ""
	q.questionStart = now
	return nil
}

// Tier classifies the run's score as a percentage of the maximum.
func (q *QuizRun) Tier() Tier {
	return TierFor(q.State.Score, quiz.Len()*q.points)
}

// Progress reports acknowledged questions out of the bank size.
func (q *QuizRun) Progress() (answered, total int) {
	return q.index, quiz.Len()
}
