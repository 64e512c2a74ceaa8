package game

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Bietran/game-pemilahan-sampah/internal/dataset"
)

func seedDataset(t *testing.T, n int) {
	t.Helper()
	items := make([]dataset.Item, n)
	for i := range items {
		cat := dataset.Organic
		if i%2 == 1 {
			cat = dataset.Inorganic
		}
		items[i] = dataset.Item{
			Name:     fmt.Sprintf("Item %d", i),
			File:     fmt.Sprintf("item_%d.jpeg", i),
			Category: cat,
		}
	}
	dataset.SetItemsForTest(items)
}

func TestSortingNoImageRepeatsWithinRun(t *testing.T) {
	seedDataset(t, 12)
	run := NewSortingRun(DefaultConfig())
	now := time.Now()

	seen := map[string]struct{}{}
	for i := 0; i < 10; i++ {
		item, err := run.Question(now)
		if err != nil {
			t.Fatalf("question %d: %v", i, err)
		}
		if _, dup := seen[item.File]; dup {
			t.Fatalf("item %q shown twice", item.File)
		}
		seen[item.File] = struct{}{}
		if _, err := run.Answer(item.Category, now.Add(time.Second)); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}
}

func TestSortingPoolExhaustion(t *testing.T) {
	seedDataset(t, 3) // smaller than the 10-question limit
	run := NewSortingRun(DefaultConfig())
	now := time.Now()

	for i := 0; i < 3; i++ {
		item, err := run.Question(now)
		if err != nil {
			t.Fatalf("question %d: %v", i, err)
		}
		if _, err := run.Answer(item.Category, now); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}

	_, err := run.Question(now)
	if !errors.Is(err, ErrPoolExhausted) {
		t.Fatalf("expected ErrPoolExhausted, got %v", err)
	}
}

func TestSortingTerminalAtTenAnswers(t *testing.T) {
	seedDataset(t, 20)
	run := NewSortingRun(DefaultConfig())
	now := time.Now()

	if run.State.TotalQuestions() != 0 {
		t.Fatalf("fresh run should have 0 answered questions")
	}

	// First answer correct.
	item, err := run.Question(now)
	if err != nil {
		t.Fatal(err)
	}
	out, err := run.Answer(item.Category, now.Add(500*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if !out.Correct || run.State.Correct != 1 || run.State.Wrong != 0 || run.State.Score != 10 {
		t.Fatalf("after one correct answer: %+v", run.State)
	}

	// Nine more, alternating correct/wrong.
	for i := 0; i < 9; i++ {
		item, err := run.Question(now)
		if err != nil {
			t.Fatalf("question %d: %v", i, err)
		}
		chosen := item.Category
		if i%2 == 0 {
			chosen = wrongCategory(item.Category)
		}
		if _, err := run.Answer(chosen, now); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}

	if !run.Finished() {
		t.Fatalf("run should be finished after 10 answers, got %d", run.State.TotalQuestions())
	}
	if _, err := run.Question(now); !errors.Is(err, ErrRunFinished) {
		t.Fatalf("expected ErrRunFinished from Question, got %v", err)
	}
	if _, err := run.Answer(dataset.Organic, now); !errors.Is(err, ErrRunFinished) {
		t.Fatalf("expected ErrRunFinished from Answer, got %v", err)
	}
}

func TestSortingAnswerWithoutQuestion(t *testing.T) {
	seedDataset(t, 5)
	run := NewSortingRun(DefaultConfig())
	if _, err := run.Answer(dataset.Organic, time.Now()); !errors.Is(err, ErrNoQuestion) {
		t.Fatalf("expected ErrNoQuestion, got %v", err)
	}
}

func TestSortingRecordsElapsedSeconds(t *testing.T) {
	seedDataset(t, 5)
	run := NewSortingRun(DefaultConfig())
	start := time.Now()

	if _, err := run.Question(start); err != nil {
		t.Fatal(err)
	}
	out, err := run.Answer(dataset.Organic, start.Add(1500*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if out.Elapsed != 1.5 {
		t.Fatalf("expected elapsed 1.5s, got %v", out.Elapsed)
	}
}

func wrongCategory(c dataset.Category) dataset.Category {
	if c == dataset.Organic {
		return dataset.Inorganic
	}
	return dataset.Organic
}
