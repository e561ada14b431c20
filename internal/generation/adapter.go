package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/cardsmith/cardsmith-api/internal/domain"
)

// Options tunes the adapter's sampling per artifact kind. Quiz generation
// gets a larger output budget because every record carries four options.
type Options struct {
	Temperature        float32
	FlashcardMaxTokens int32
	QuizMaxTokens      int32
}

func (o *Options) applyDefaults() {
	if o.Temperature <= 0 {
		o.Temperature = 0.3
	}
	if o.FlashcardMaxTokens <= 0 {
		o.FlashcardMaxTokens = 2048
	}
	if o.QuizMaxTokens <= 0 {
		o.QuizMaxTokens = 4096
	}
}

// Adapter converts normalized text plus a request shape into validated
// structured records via a ModelClient. It is stateless per call; no retries
// are performed anywhere, a single failure is terminal for the request.
type Adapter struct {
	client ModelClient
	logger *slog.Logger
	opts   Options
}

// NewAdapter creates an Adapter. client may be nil when no model credential
// is configured; every Generate* call then fails fast with
// ErrServiceUnavailable.
func NewAdapter(client ModelClient, logger *slog.Logger, opts Options) (*Adapter, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	opts.applyDefaults()
	return &Adapter{client: client, logger: logger, opts: opts}, nil
}

// Available reports whether a model client is configured.
func (a *Adapter) Available() bool {
	return a.client != nil
}

// placeholderFlashcard is returned as the sole record when the source text
// is too short to generate from. A deliberate soft-fail, not an error.
func placeholderFlashcard() domain.Flashcard {
	return domain.Flashcard{
		Front: "Not enough source material",
		Back:  "Provide at least a sentence or two of text to generate flashcards from.",
	}
}

// GenerateFlashcards produces at most the clamped requested number of
// flashcards from the given normalized text.
func (a *Adapter) GenerateFlashcards(
	ctx context.Context,
	text string,
	requested int,
) ([]domain.Flashcard, error) {
	if a.client == nil {
		return nil, ErrServiceUnavailable
	}

	count := domain.KindFlashcards.ClampCount(requested)

	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < domain.FlashcardMinTextLen {
		a.logger.InfoContext(ctx, "source text too short for flashcards, returning placeholder",
			"text_length", utf8.RuneCountInString(trimmed))
		return []domain.Flashcard{placeholderFlashcard()}, nil
	}

	prompt := flashcardPrompt(a.boundInput(ctx, trimmed), count)
	reply, err := a.invoke(ctx, prompt, SamplingConfig{
		Temperature:     a.opts.Temperature,
		MaxOutputTokens: a.opts.FlashcardMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	raw, err := extractArray(reply.Text)
	if err != nil {
		return nil, err
	}

	var cards []domain.Flashcard
	if err := json.Unmarshal([]byte(raw), &cards); err != nil {
		return nil, fmt.Errorf("%w: %v (response sample: %q)",
			ErrMalformedResponse, err, responseSample(reply.Text))
	}

	// Per-record validation is advisory: shape drift is logged, the record
	// still ships. Tightening this to a filter is a deliberate policy change.
	for i, card := range cards {
		if err := card.Validate(); err != nil {
			a.logger.WarnContext(ctx, "flashcard failed shape validation",
				"index", i,
				"issue", err.Error())
		}
	}

	if len(cards) > count {
		a.logger.DebugContext(ctx, "model over-produced flashcards, truncating",
			"produced", len(cards),
			"requested", count)
		cards = cards[:count]
	}

	return cards, nil
}

// quizRecordSchema is the per-record shape the quiz prompt demands from the
// model; it is mapped onto domain.QuizQuestion after parsing.
type quizRecordSchema struct {
	Question             string   `json:"question"`
	Options              []string `json:"options"`
	CorrectAnswerIndices []int    `json:"correctAnswerIndices"`
}

// GenerateQuiz produces at most the clamped requested number of
// multiple-choice questions from the given normalized text.
func (a *Adapter) GenerateQuiz(
	ctx context.Context,
	text string,
	requested int,
) ([]domain.QuizQuestion, error) {
	if a.client == nil {
		return nil, ErrServiceUnavailable
	}

	count := domain.KindQuiz.ClampCount(requested)

	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < domain.QuizMinTextLen {
		// Quizzes need enough context for plausible distractors; with too
		// little text the result is an empty quiz, not an error.
		a.logger.InfoContext(ctx, "source text too short for a quiz, returning empty set",
			"text_length", utf8.RuneCountInString(trimmed))
		return []domain.QuizQuestion{}, nil
	}

	prompt := quizPrompt(a.boundInput(ctx, trimmed), count)
	reply, err := a.invoke(ctx, prompt, SamplingConfig{
		Temperature:     a.opts.Temperature,
		MaxOutputTokens: a.opts.QuizMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	raw, err := extractArray(reply.Text)
	if err != nil {
		return nil, err
	}

	var records []quizRecordSchema
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: %v (response sample: %q)",
			ErrMalformedResponse, err, responseSample(reply.Text))
	}

	questions := make([]domain.QuizQuestion, 0, len(records))
	for i, rec := range records {
		question := domain.QuizQuestion{
			Question:       rec.Question,
			Options:        rec.Options,
			CorrectAnswers: rec.CorrectAnswerIndices,
		}
		if err := question.Validate(); err != nil {
			a.logger.WarnContext(ctx, "quiz question failed shape validation",
				"index", i,
				"issue", err.Error())
		}
		questions = append(questions, question)
	}

	if len(questions) > count {
		a.logger.DebugContext(ctx, "model over-produced quiz questions, truncating",
			"produced", len(questions),
			"requested", count)
		questions = questions[:count]
	}

	return questions, nil
}

// boundInput truncates text to MaxInputChars runes. Truncation is silent
// toward the caller and only logged.
func (a *Adapter) boundInput(ctx context.Context, text string) string {
	runes := []rune(text)
	if len(runes) <= MaxInputChars {
		return text
	}
	a.logger.InfoContext(ctx, "truncating source text for generation",
		"original_length", len(runes),
		"bounded_length", MaxInputChars)
	return string(runes[:MaxInputChars])
}

// invoke calls the model and rejects replies without usable content.
func (a *Adapter) invoke(ctx context.Context, prompt string, cfg SamplingConfig) (Reply, error) {
	a.logger.DebugContext(ctx, "invoking model",
		"prompt_length", len(prompt),
		"max_output_tokens", cfg.MaxOutputTokens)

	reply, err := a.client.Generate(ctx, prompt, cfg)
	if err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if strings.TrimSpace(reply.Text) == "" {
		return Reply{}, fmt.Errorf("%w (block reason: %q, finish reason: %q)",
			ErrEmptyModelResponse, reply.BlockReason, reply.FinishReason)
	}

	return reply, nil
}

// extractArray locates the outermost JSON array delimiters in the raw model
// reply. Models wrap their output in prose more often than not; everything
// outside the first '[' and the last ']' is discarded. If either delimiter
// is absent or out of order the reply is unsalvageable.
func extractArray(raw string) (string, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("%w: no JSON array found (response sample: %q)",
			ErrMalformedResponse, responseSample(raw))
	}
	return raw[start : end+1], nil
}

// responseSample bounds a raw reply for inclusion in error messages and logs.
func responseSample(raw string) string {
	const sampleLen = 200
	raw = strings.TrimSpace(raw)
	if len(raw) <= sampleLen {
		return raw
	}
	return raw[:sampleLen] + "..."
}
