package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cardsmith/cardsmith-api/internal/config"
	"github.com/cardsmith/cardsmith-api/internal/generation"
	"github.com/cardsmith/cardsmith-api/internal/normalizer"
	"github.com/cardsmith/cardsmith-api/internal/platform/gemini"
	"github.com/cardsmith/cardsmith-api/internal/service"
)

// application holds the wired components of the server.
type application struct {
	config       *config.Config
	logger       *slog.Logger
	studyService *service.StudyService
}

// newApplication wires the normalization and generation stages into the
// study service. The server starts without a Gemini API key; generation
// endpoints then answer 503 until one is configured.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	norm, err := normalizer.NewService(logger, cfg.Fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to create normalizer: %w", err)
	}

	// The interface variable stays nil unless a concrete client is
	// assigned; assigning a nil *gemini.Client would defeat the adapter's
	// nil check.
	var modelClient generation.ModelClient
	if cfg.LLM.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, logger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		modelClient = client
	} else {
		logger.Warn("no Gemini API key configured, generation endpoints will be unavailable")
	}

	adapter, err := generation.NewAdapter(modelClient, logger, generation.Options{
		Temperature:        cfg.LLM.Temperature,
		FlashcardMaxTokens: cfg.LLM.FlashcardMaxOutputTokens,
		QuizMaxTokens:      cfg.LLM.QuizMaxOutputTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create generation adapter: %w", err)
	}

	studyService, err := service.NewStudyService(norm, adapter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create study service: %w", err)
	}

	return &application{
		config:       cfg,
		logger:       logger,
		studyService: studyService,
	}, nil
}

// run starts the HTTP server and blocks until shutdown.
func (app *application) run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.setupRouter())
}
