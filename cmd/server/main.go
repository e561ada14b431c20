// Package main implements the entry point for the cardsmith API server,
// which turns pasted text, uploaded documents, and web pages into
// LLM-generated flashcards and quizzes.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/cardsmith/cardsmith-api/internal/config"
	"github.com/cardsmith/cardsmith-api/internal/platform/logger"
)

func main() {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	app, err := initializeApp(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.run(context.Background()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, and wires the
// application components.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.LLM.ModelName,
		"api_key_present", cfg.LLM.GeminiAPIKey != "")

	return newApplication(ctx, cfg, appLogger)
}
