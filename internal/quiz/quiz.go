// internal/quiz/quiz.go
//
// Fixed question bank for the mini quiz.
//
// Responsibilities:
//   - Load the five-question bank from an environment-provided JSON file
//     or fall back to the embedded default.
//   - Serve questions strictly in index order (no shuffling).
//   - Supply the fun-fact pool shown on the quiz summary page.
//
// Environment variables:
//   QUIZ_FILE=/path/to/questions.json
//
// Constraints:
//   • Each item has exactly 4 options and an answer index in [0,3].
//   • The bank is read-only after Init and identical across sessions.
//   • Initialization is run once (sync.Once).

package quiz

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sync"

	"github.com/Bietran/game-pemilahan-sampah/assets"
)

// Item is a single multiple-choice question.
type Item struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      int      `json:"answer"` // index into Options
	Explanation string   `json:"explanation"`
}

// bankFile matches the on-disk/embedded JSON shape.
type bankFile struct {
	Questions []Item   `json:"questions"`
	Facts     []string `json:"facts"`
}

// ErrOutOfRange is returned by Get for an index past the end of the bank.
// Under correct controller use the terminal-condition check guards this.
var ErrOutOfRange = errors.New("quiz: question index out of range")

var (
	initOnce   sync.Once
	bank       bankFile
	initialErr error
)

// Init loads the question bank exactly once.
// A missing QUIZ_FILE silently substitutes the embedded bank.
func Init() error {
	initOnce.Do(func() {
		var raw []byte
		if path := os.Getenv("QUIZ_FILE"); path != "" {
			if b, err := os.ReadFile(path); err == nil {
				raw = b
			} else if !errors.Is(err, os.ErrNotExist) {
				initialErr = fmt.Errorf("open quiz bank %s: %w", path, err)
				return
			}
		}
		if raw == nil {
			var err error
			raw, err = assets.QuestionsJSON()
			if err != nil {
				initialErr = fmt.Errorf("embedded quiz bank: %w", err)
				return
			}
		}

		if err := json.Unmarshal(raw, &bank); err != nil {
			initialErr = fmt.Errorf("decode quiz bank: %w", err)
			return
		}
		initialErr = validate(bank.Questions)
	})
	return initialErr
}

// validate enforces the 4-options/answer-in-range shape on every item.
func validate(qs []Item) error {
	if len(qs) == 0 {
		return errors.New("quiz: question bank is empty")
	}
	for i, q := range qs {
		if len(q.Options) != 4 {
			return fmt.Errorf("quiz: question %d has %d options, want 4", i, len(q.Options))
		}
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return fmt.Errorf("quiz: question %d answer index %d out of range", i, q.Answer)
		}
	}
	return nil
}

// Len reports the number of questions in the bank.
func Len() int { return len(bank.Questions) }

// Get returns the question at index. Callers must check index < Len();
// an out-of-range index is a controller logic error, not user input.
func Get(index int) (Item, error) {
	if index < 0 || index >= len(bank.Questions) {
		return Item{}, ErrOutOfRange
	}
	return bank.Questions[index], nil
}

// Facts returns the fun-fact pool.
func Facts() []string { return bank.Facts }

// RandomFact picks a random fact for the summary page.
// Returns "" when the pool is empty.
func RandomFact() string {
	if len(bank.Facts) == 0 {
		return ""
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(bank.Facts))))
	return bank.Facts[nBig.Int64()]
}

// SetBankForTest replaces the loaded bank, bypassing Init. Test helper only.
func SetBankForTest(questions []Item, facts []string) {
	bank = bankFile{Questions: questions, Facts: facts}
}
