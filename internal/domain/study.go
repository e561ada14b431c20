package domain

import (
	"errors"
	"fmt"
)

// ArtifactKind selects which structured artifact the generation adapter
// produces from normalized text.
type ArtifactKind string

const (
	KindFlashcards ArtifactKind = "flashcards"
	KindQuiz       ArtifactKind = "quiz"
)

// Record-count bounds per artifact kind. Requested counts are clamped into
// these ranges, never rejected.
const (
	FlashcardMinCount     = 3
	FlashcardMaxCount     = 25
	FlashcardDefaultCount = 15

	QuizMinCount     = 3
	QuizMaxCount     = 15
	QuizDefaultCount = 5
)

// Minimum normalized-text lengths (in runes) below which generation
// soft-fails without calling the model. Quizzes need more context than
// flashcards to produce plausible distractors.
const (
	FlashcardMinTextLen = 10
	QuizMinTextLen      = 50
)

// QuizOptionCount is the exact number of answer options per quiz question.
const QuizOptionCount = 4

// ClampCount constrains a requested record count into the kind's valid
// range. A non-positive count means "not specified" and yields the kind's
// default.
func (k ArtifactKind) ClampCount(requested int) int {
	var min, max, def int
	switch k {
	case KindQuiz:
		min, max, def = QuizMinCount, QuizMaxCount, QuizDefaultCount
	default:
		min, max, def = FlashcardMinCount, FlashcardMaxCount, FlashcardDefaultCount
	}
	switch {
	case requested <= 0:
		return def
	case requested < min:
		return min
	case requested > max:
		return max
	}
	return requested
}

// Flashcard is a single question/answer pair. No uniqueness constraint is
// imposed; order follows the model output.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Validate checks that both sides of the card are present.
func (f Flashcard) Validate() error {
	if f.Front == "" {
		return errors.New("flashcard is missing its front side")
	}
	if f.Back == "" {
		return errors.New("flashcard is missing its back side")
	}
	return nil
}

// QuizQuestion is a multiple-choice question with exactly four options and
// at least one correct option index.
type QuizQuestion struct {
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	CorrectAnswers []int    `json:"correctAnswers"`
}

// Validate checks the question's structural invariants: four options, at
// least one correct index, and every index within [0, 3].
func (q QuizQuestion) Validate() error {
	if q.Question == "" {
		return errors.New("quiz question is missing its question text")
	}
	if len(q.Options) != QuizOptionCount {
		return fmt.Errorf("quiz question has %d options, expected %d", len(q.Options), QuizOptionCount)
	}
	if len(q.CorrectAnswers) == 0 {
		return errors.New("quiz question has no correct answer index")
	}
	for _, idx := range q.CorrectAnswers {
		if idx < 0 || idx >= QuizOptionCount {
			return fmt.Errorf("correct answer index %d is out of range [0, %d]", idx, QuizOptionCount-1)
		}
	}
	return nil
}
