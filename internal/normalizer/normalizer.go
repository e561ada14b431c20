package normalizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/cardsmith/cardsmith-api/internal/config"
	"github.com/cardsmith/cardsmith-api/internal/domain"
)

// ResultKind distinguishes real extracted content from diagnostic
// placeholder markers, so callers never have to string-sniff Result.Text.
type ResultKind string

const (
	// ResultExtracted means Text is genuine content from the source.
	ResultExtracted ResultKind = "extracted"

	// ResultSkipped means Text is a placeholder marker standing in for
	// content that was deliberately not extracted (binary URL, non-HTML
	// content type, script-rendered page). Skips are successes, not errors.
	ResultSkipped ResultKind = "skipped"
)

// Result is the outcome of a successful normalization.
type Result struct {
	Text string
	Kind ResultKind

	// Reason is set for skipped results and explains why no real content
	// was extracted.
	Reason string
}

func extracted(text string) Result {
	return Result{Text: text, Kind: ResultExtracted}
}

func skipped(marker, reason string) Result {
	return Result{Text: marker, Kind: ResultSkipped, Reason: reason}
}

// Service normalizes tagged input sources into bounded plain text.
// It is stateless per call and safe for concurrent use.
type Service struct {
	logger            *slog.Logger
	client            *http.Client
	userAgent         string
	maxPlainTextChars int
}

// NewService creates a normalizer Service with the provided logger and
// fetch configuration.
func NewService(logger *slog.Logger, cfg config.FetchConfig) (*Service, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Service{
		logger:            logger,
		client:            &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		userAgent:         cfg.UserAgent,
		maxPlainTextChars: cfg.MaxPlainTextChars,
	}, nil
}

// Normalize dispatches on the source variant and produces a plain-text
// Result or a classified error. Inline text is a pure pass-through, so
// repeated calls on the same input yield identical output.
func (s *Service) Normalize(ctx context.Context, src domain.Source) (Result, error) {
	switch src.Kind {
	case domain.SourceInline:
		text := strings.TrimSpace(src.Text)
		if text == "" {
			return Result{}, fmt.Errorf("%w: text must not be blank", domain.ErrEmptyInput)
		}
		return extracted(text), nil

	case domain.SourceUpload:
		if src.File == nil {
			return Result{}, fmt.Errorf("%w: no file attached", domain.ErrEmptyInput)
		}
		return s.normalizeUpload(ctx, src.File)

	case domain.SourceURL:
		return s.normalizeURL(ctx, src.URL)

	default:
		return Result{}, fmt.Errorf("%w: unknown source kind %q", domain.ErrNoSource, src.Kind)
	}
}

// collapseWhitespace trims the string and folds every run of consecutive
// whitespace (including newlines) into a single space.
func collapseWhitespace(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !space {
				b.WriteByte(' ')
				space = true
			}
			continue
		}
		space = false
		b.WriteRune(r)
	}

	return b.String()
}

// truncateRunes bounds s to at most limit runes without splitting a rune.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
