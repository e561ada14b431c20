package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardsmith/cardsmith-api/internal/config"
	"github.com/cardsmith/cardsmith-api/internal/domain"
	"github.com/cardsmith/cardsmith-api/internal/normalizer"
)

type fakeNormalizer struct {
	result normalizer.Result
	err    error
	got    domain.Source
}

func (f *fakeNormalizer) Normalize(ctx context.Context, src domain.Source) (normalizer.Result, error) {
	f.got = src
	if f.err != nil {
		return normalizer.Result{}, f.err
	}
	return f.result, nil
}

type fakeGenerator struct {
	cards     []domain.Flashcard
	questions []domain.QuizQuestion
	err       error
	gotText   string
	gotCount  int
	calls     int
}

func (f *fakeGenerator) GenerateFlashcards(ctx context.Context, text string, requested int) ([]domain.Flashcard, error) {
	f.calls++
	f.gotText = text
	f.gotCount = requested
	return f.cards, f.err
}

func (f *fakeGenerator) GenerateQuiz(ctx context.Context, text string, requested int) ([]domain.QuizQuestion, error) {
	f.calls++
	f.gotText = text
	f.gotCount = requested
	return f.questions, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, n Normalizer, g Generator) *StudyService {
	t.Helper()
	svc, err := NewStudyService(n, g, testLogger())
	require.NoError(t, err)
	return svc
}

func TestNewStudyServiceValidation(t *testing.T) {
	t.Parallel()

	n := &fakeNormalizer{}
	g := &fakeGenerator{}

	_, err := NewStudyService(nil, g, testLogger())
	assert.Error(t, err)

	_, err = NewStudyService(n, nil, testLogger())
	assert.Error(t, err)

	_, err = NewStudyService(n, g, nil)
	assert.Error(t, err)
}

func TestCreateFlashcardsChainsStages(t *testing.T) {
	t.Parallel()

	n := &fakeNormalizer{result: normalizer.Result{
		Text: "normalized text about cells",
		Kind: normalizer.ResultExtracted,
	}}
	g := &fakeGenerator{cards: []domain.Flashcard{{Front: "Q", Back: "A"}}}
	svc := newTestService(t, n, g)

	src, err := domain.NewInlineSource("raw text about cells")
	require.NoError(t, err)

	cards, err := svc.CreateFlashcards(context.Background(), src, 7)
	require.NoError(t, err)
	assert.Len(t, cards, 1)
	assert.Equal(t, "normalized text about cells", g.gotText,
		"generation must receive the normalized text, not the raw source")
	assert.Equal(t, 7, g.gotCount)
	assert.Equal(t, src, n.got)
}

func TestCreateQuizChainsStages(t *testing.T) {
	t.Parallel()

	n := &fakeNormalizer{result: normalizer.Result{
		Text: "normalized text about cells",
		Kind: normalizer.ResultExtracted,
	}}
	g := &fakeGenerator{questions: []domain.QuizQuestion{{
		Question:       "Q",
		Options:        []string{"A", "B", "C", "D"},
		CorrectAnswers: []int{0},
	}}}
	svc := newTestService(t, n, g)

	src, err := domain.NewInlineSource("raw text about cells")
	require.NoError(t, err)

	questions, err := svc.CreateQuiz(context.Background(), src, 4)
	require.NoError(t, err)
	assert.Len(t, questions, 1)
	assert.Equal(t, 4, g.gotCount)
}

func TestCreateFlashcardsNormalizationFailureStopsPipeline(t *testing.T) {
	t.Parallel()

	n := &fakeNormalizer{err: normalizer.ErrDecode}
	g := &fakeGenerator{}
	svc := newTestService(t, n, g)

	src, err := domain.NewInlineSource("some text")
	require.NoError(t, err)

	_, err = svc.CreateFlashcards(context.Background(), src, 5)
	assert.ErrorIs(t, err, normalizer.ErrDecode)
	assert.Equal(t, 0, g.calls, "generation must not run when normalization fails")
}

func TestCreateFlashcardsSkippedResultStillGenerates(t *testing.T) {
	t.Parallel()

	n := &fakeNormalizer{result: normalizer.Result{
		Text:   "[Binary file: https://example.com/image.png]",
		Kind:   normalizer.ResultSkipped,
		Reason: "binary file extension",
	}}
	g := &fakeGenerator{cards: []domain.Flashcard{{Front: "Q", Back: "A"}}}
	svc := newTestService(t, n, g)

	src, err := domain.NewURLSource("https://example.com/image.png")
	require.NoError(t, err)

	_, err = svc.CreateFlashcards(context.Background(), src, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, g.calls, "a skipped source still flows to generation as marker text")
	assert.Contains(t, g.gotText, "Binary file")
}

func TestCreateQuizGenerationFailurePropagates(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("model exploded")
	n := &fakeNormalizer{result: normalizer.Result{
		Text: "normalized",
		Kind: normalizer.ResultExtracted,
	}}
	g := &fakeGenerator{err: sentinel}
	svc := newTestService(t, n, g)

	src, err := domain.NewInlineSource("some text")
	require.NoError(t, err)

	_, err = svc.CreateQuiz(context.Background(), src, 5)
	assert.ErrorIs(t, err, sentinel)
}

// End to end through the real normalizer with a fake generator.
func TestCreateFlashcardsWithRealNormalizer(t *testing.T) {
	t.Parallel()

	norm, err := normalizer.NewService(testLogger(), config.FetchConfig{
		TimeoutSeconds:    2,
		UserAgent:         "test-agent",
		MaxPlainTextChars: 5000,
	})
	require.NoError(t, err)

	g := &fakeGenerator{cards: []domain.Flashcard{{Front: "Q", Back: "A"}}}
	svc := newTestService(t, norm, g)

	src, err := domain.NewInlineSource("  The mitochondria is the   powerhouse of the cell.  ")
	require.NoError(t, err)

	cards, err := svc.CreateFlashcards(context.Background(), src, 3)
	require.NoError(t, err)
	assert.Len(t, cards, 1)
	assert.Equal(t, "The mitochondria is the   powerhouse of the cell.", g.gotText,
		"inline text is trimmed but otherwise passed through verbatim")
}
