package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cardsmith/cardsmith-api/internal/domain"
	"github.com/cardsmith/cardsmith-api/internal/normalizer"
)

// Normalizer turns a source into bounded plain text.
type Normalizer interface {
	Normalize(ctx context.Context, src domain.Source) (normalizer.Result, error)
}

// Generator turns normalized text into study records.
type Generator interface {
	GenerateFlashcards(ctx context.Context, text string, requested int) ([]domain.Flashcard, error)
	GenerateQuiz(ctx context.Context, text string, requested int) ([]domain.QuizQuestion, error)
}

// StudyService chains normalization and generation for a single request.
// Both stages are synchronous; nothing is persisted between calls.
type StudyService struct {
	normalizer Normalizer
	generator  Generator
	logger     *slog.Logger
}

// NewStudyService creates a StudyService. All dependencies are required.
func NewStudyService(n Normalizer, g Generator, logger *slog.Logger) (*StudyService, error) {
	if n == nil {
		return nil, errors.New("normalizer cannot be nil")
	}
	if g == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &StudyService{normalizer: n, generator: g, logger: logger}, nil
}

// CreateFlashcards normalizes the source and generates at most maxCards
// flashcards from it.
func (s *StudyService) CreateFlashcards(
	ctx context.Context,
	src domain.Source,
	maxCards int,
) ([]domain.Flashcard, error) {
	text, err := s.normalize(ctx, src)
	if err != nil {
		return nil, err
	}
	return s.generator.GenerateFlashcards(ctx, text, maxCards)
}

// CreateQuiz normalizes the source and generates at most numQuestions quiz
// questions from it.
func (s *StudyService) CreateQuiz(
	ctx context.Context,
	src domain.Source,
	numQuestions int,
) ([]domain.QuizQuestion, error) {
	text, err := s.normalize(ctx, src)
	if err != nil {
		return nil, err
	}
	return s.generator.GenerateQuiz(ctx, text, numQuestions)
}

// normalize runs the normalization stage. A skipped result is not an error:
// its marker text flows to generation so the model can explain what happened,
// but the skip is logged for operators.
func (s *StudyService) normalize(ctx context.Context, src domain.Source) (string, error) {
	result, err := s.normalizer.Normalize(ctx, src)
	if err != nil {
		return "", err
	}

	if result.Kind == normalizer.ResultSkipped {
		s.logger.InfoContext(ctx, "source skipped during normalization",
			"source_kind", string(src.Kind),
			"reason", result.Reason)
	} else {
		s.logger.DebugContext(ctx, "source normalized",
			"source_kind", string(src.Kind),
			"text_length", len(result.Text))
	}

	return result.Text, nil
}
