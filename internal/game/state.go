// internal/game/state.go
//
// GameState is the per-run score accumulator. One instance lives inside
// each SortingRun/QuizRun and is replaced wholesale on restart.

package game

// GameState accumulates score, correct/wrong counts, and per-question
// response times for one play-through.
//
// Invariant: Correct+Wrong == len(Times) after every AddAnswer.
type GameState struct {
	Score   int       `json:"score"`
	Correct int       `json:"correct"`
	Wrong   int       `json:"wrong"`
	Times   []float64 `json:"times"` // response seconds, one per answered question
}

// AddAnswer records one answered question. Points are awarded only on a
// correct answer; the response time is appended either way. Inputs are
// trusted (callers guarantee responseTime >= 0).
func (g *GameState) AddAnswer(isCorrect bool, responseTime float64, points int) {
	if isCorrect {
		g.Correct++
		g.Score += points
	} else {
		g.Wrong++
	}
	g.Times = append(g.Times, responseTime)
}

// TotalQuestions reports how many questions have been answered.
func (g *GameState) TotalQuestions() int {
	return g.Correct + g.Wrong
}

// Accuracy is Correct/TotalQuestions, or exactly 0 before any answer.
func (g *GameState) Accuracy() float64 {
	total := g.TotalQuestions()
	if total == 0 {
		return 0
	}
	return float64(g.Correct) / float64(total)
}
