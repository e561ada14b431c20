package gemini

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardsmith/cardsmith-api/internal/config"
	"github.com/cardsmith/cardsmith-api/internal/generation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		cfg  config.LLMConfig
	}{
		{"missing api key", config.LLMConfig{ModelName: "gemini-2.0-flash"}},
		{"missing model name", config.LLMConfig{GeminiAPIKey: "test-key"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewClient(context.Background(), testLogger(), tc.cfg)
			assert.ErrorIs(t, err, generation.ErrInvalidConfig)
		})
	}
}

func TestNewClientRequiresLogger(t *testing.T) {
	t.Parallel()

	_, err := NewClient(context.Background(), nil, config.LLMConfig{
		GeminiAPIKey: "test-key",
		ModelName:    "gemini-2.0-flash",
	})
	assert.Error(t, err)
}
