package game

import "testing"

func TestAddAnswerKeepsCountInvariant(t *testing.T) {
	var g GameState
	answers := []struct {
		correct bool
		elapsed float64
	}{
		{true, 1.2}, {false, 0.4}, {true, 3.0}, {true, 0.9}, {false, 2.2},
	}

	for i, a := range answers {
		g.AddAnswer(a.correct, a.elapsed, 10)
		if g.Correct+g.Wrong != len(g.Times) {
			t.Fatalf("after answer %d: correct+wrong=%d, times=%d", i, g.Correct+g.Wrong, len(g.Times))
		}
	}
	if g.TotalQuestions() != 5 {
		t.Fatalf("expected 5 total questions, got %d", g.TotalQuestions())
	}
	if g.Correct != 3 || g.Wrong != 2 {
		t.Fatalf("expected 3 correct / 2 wrong, got %d / %d", g.Correct, g.Wrong)
	}
	if g.Score != 30 {
		t.Fatalf("expected score 30, got %d", g.Score)
	}
}

func TestAccuracyZeroBeforeAnyAnswer(t *testing.T) {
	var g GameState
	if got := g.Accuracy(); got != 0 {
		t.Fatalf("expected accuracy exactly 0, got %v", got)
	}
}

func TestAccuracyExactRatio(t *testing.T) {
	var g GameState
	g.AddAnswer(true, 1, 10)
	g.AddAnswer(true, 1, 10)
	g.AddAnswer(true, 1, 10)
	g.AddAnswer(false, 1, 10)
	if got := g.Accuracy(); got != 0.75 {
		t.Fatalf("expected accuracy 0.75, got %v", got)
	}
}

func TestWrongAnswerAwardsNoPoints(t *testing.T) {
	var g GameState
	g.AddAnswer(false, 2.5, 20)
	if g.Score != 0 {
		t.Fatalf("expected score 0 after wrong answer, got %d", g.Score)
	}
	if len(g.Times) != 1 || g.Times[0] != 2.5 {
		t.Fatalf("response time not recorded: %v", g.Times)
	}
}
