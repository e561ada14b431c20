package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/cardsmith/cardsmith-api/internal/config"
	"github.com/cardsmith/cardsmith-api/internal/generation"
)

// Client implements generation.ModelClient backed by the Gemini API.
type Client struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// NewClient creates a Client from LLM configuration. The API key and model
// name are required; callers that have no key should not construct a Client
// and instead leave the adapter's model client nil.
func NewClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Client{
		logger: logger,
		client: genaiClient,
		model:  cfg.ModelName,
	}, nil
}

// Generate sends the prompt to the configured Gemini model and returns the
// provider-neutral reply.
func (c *Client) Generate(
	ctx context.Context,
	prompt string,
	cfg generation.SamplingConfig,
) (generation.Reply, error) {
	c.logger.DebugContext(ctx, "calling Gemini API",
		"model", c.model,
		"prompt_length", len(prompt))

	resp, err := c.client.Models.GenerateContent(
		ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(cfg.Temperature),
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
	)
	if err != nil {
		return generation.Reply{}, fmt.Errorf("gemini API call failed: %w", err)
	}

	reply := generation.Reply{Text: resp.Text()}

	if resp.PromptFeedback != nil {
		reply.BlockReason = string(resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) > 0 {
		reply.FinishReason = string(resp.Candidates[0].FinishReason)
	}

	return reply, nil
}
