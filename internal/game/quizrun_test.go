package game

import (
	"errors"
	"testing"
	"time"

	"github.com/Bietran/game-pemilahan-sampah/internal/quiz"
)

func seedQuizBank(t *testing.T) {
	t.Helper()
	items := make([]quiz.Item, 5)
	for i := range items {
		items[i] = quiz.Item{
			Question:    "question",
			Options:     []string{"a", "b", "c", "d"},
			Answer:      i % 4,
			Explanation: "because",
		}
	}
	quiz.SetBankForTest(items, []string{"a fact"})
}

func TestQuizAllCorrectScoresHundred(t *testing.T) {
	seedQuizBank(t)
	now := time.Now()
	run := NewQuizRun(DefaultConfig(), now)

	for i := 0; i < 5; i++ {
		item, err := run.Question()
		if err != nil {
			t.Fatalf("question %d: %v", i, err)
		}
		out, err := run.Answer(item.Answer, now)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if !out.Correct {
			t.Fatalf("answer %d should be correct", i)
		}
		if err := run.Continue(now); err != nil {
			t.Fatalf("continue %d: %v", i, err)
		}
	}

	if !run.Finished() {
		t.Fatal("run should be finished")
	}
	if run.State.Score != 100 {
		t.Fatalf("expected score 100, got %d", run.State.Score)
	}
	if run.Tier() != TierTop {
		t.Fatalf("expected top tier, got %q", run.Tier())
	}
}

func TestQuizAllWrongScoresZero(t *testing.T) {
	seedQuizBank(t)
	now := time.Now()
	run := NewQuizRun(DefaultConfig(), now)

	for i := 0; i < 5; i++ {
		item, err := run.Question()
		if err != nil {
			t.Fatal(err)
		}
		wrong := (item.Answer + 1) % len(item.Options)
		if _, err := run.Answer(wrong, now); err != nil {
			t.Fatal(err)
		}
		if err := run.Continue(now); err != nil {
			t.Fatal(err)
		}
	}

	if run.State.Score != 0 {
		t.Fatalf("expected score 0, got %d", run.State.Score)
	}
	if run.Tier() != TierKeepTrying {
		t.Fatalf("expected keep-trying tier, got %q", run.Tier())
	}
}

func TestQuizIndexAdvancesOnlyOnContinue(t *testing.T) {
	seedQuizBank(t)
	now := time.Now()
	run := NewQuizRun(DefaultConfig(), now)

	if _, err := run.Answer(0, now); err != nil {
		t.Fatal(err)
	}
	if run.Index() != 0 {
		t.Fatalf("index moved on answer: %d", run.Index())
	}
	if !run.AwaitingContinue() {
		t.Fatal("expected run to await continue")
	}

	// Second answer before continue is rejected and scores nothing.
	if _, err := run.Answer(1, now); !errors.Is(err, ErrAwaitingContinue) {
		t.Fatalf("expected ErrAwaitingContinue, got %v", err)
	}
	if run.State.TotalQuestions() != 1 {
		t.Fatalf("rejected answer was recorded: %d", run.State.TotalQuestions())
	}

	if err := run.Continue(now); err != nil {
		t.Fatal(err)
	}
	if run.Index() != 1 {
		t.Fatalf("expected index 1 after continue, got %d", run.Index())
	}

	// Double continue is rejected: no silent double-advance.
	if err := run.Continue(now); !errors.Is(err, ErrNotAwaitingContinue) {
		t.Fatalf("expected ErrNotAwaitingContinue, got %v", err)
	}
	if run.Index() != 1 {
		t.Fatalf("index double-advanced to %d", run.Index())
	}
}

func TestQuizAnswerRevealsExplanation(t *testing.T) {
	seedQuizBank(t)
	now := time.Now()
	run := NewQuizRun(DefaultConfig(), now)

	out, err := run.Answer(3, now)
	if err != nil {
		t.Fatal(err)
	}
	if out.Explanation != "because" {
		t.Fatalf("expected explanation, got %q", out.Explanation)
	}
	if run.Explanation() != "because" {
		t.Fatal("explanation not held until continue")
	}
	if err := run.Continue(now); err != nil {
		t.Fatal(err)
	}
	if run.Explanation() != "" {
		t.Fatal("explanation not cleared on continue")
	}
}

func TestQuizRejectsInvalidOption(t *testing.T) {
	seedQuizBank(t)
	now := time.Now()
	run := NewQuizRun(DefaultConfig(), now)

	if _, err := run.Answer(4, now); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	if _, err := run.Answer(-1, now); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
}

func TestQuizTerminalRejectsFurtherInput(t *testing.T) {
	seedQuizBank(t)
	now := time.Now()
	run := NewQuizRun(DefaultConfig(), now)

	for i := 0; i < 5; i++ {
		if _, err := run.Answer(0, now); err != nil {
			t.Fatal(err)
		}
		if err := run.Continue(now); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := run.Answer(0, now); !errors.Is(err, ErrRunFinished) {
		t.Fatalf("expected ErrRunFinished, got %v", err)
	}
	if _, err := run.Question(); !errors.Is(err, ErrRunFinished) {
		t.Fatalf("expected ErrRunFinished from Question, got %v", err)
	}
}

func TestSessionNavigateResetsEnteredGame(t *testing.T) {
	seedDataset(t, 12)
	seedQuizBank(t)
	now := time.Now()
	sess := NewSession(DefaultConfig(), now)

	if sess.Page != PageHome {
		t.Fatalf("new session should start at home, got %q", sess.Page)
	}

	sess.Navigate(PageSorting, now)
	item, err := sess.Sorting.Question(now)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sess.Sorting.Answer(item.Category, now); err != nil {
		t.Fatal(err)
	}
	if sess.Sorting.State.TotalQuestions() != 1 {
		t.Fatal("answer not recorded")
	}

	// Leaving and re-entering the sorting page starts over.
	sess.Navigate(PageHome, now)
	if sess.Sorting.State.TotalQuestions() != 1 {
		t.Fatal("going home should keep run state readable")
	}
	sess.Navigate(PageSorting, now)
	if sess.Sorting.State.TotalQuestions() != 0 {
		t.Fatal("re-entering sorting should reset the run")
	}

	sess.Navigate(PageQuiz, now)
	if sess.Quiz == nil || sess.Quiz.Index() != 0 {
		t.Fatal("entering quiz should start a fresh run")
	}

	sess.Reset()
	if sess.Page != PageHome || sess.Sorting != nil || sess.Quiz != nil {
		t.Fatal("reset should wipe both games and return home")
	}
}
