package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cardsmith/cardsmith-api/internal/api"
	apiMiddleware "github.com/cardsmith/cardsmith-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	maxUploadBytes := int64(app.config.Upload.MaxSizeMB) << 20
	studyHandler := api.NewStudyHandler(app.studyService, maxUploadBytes)

	r.Route("/api", func(r chi.Router) {
		r.Post("/flashcards", studyHandler.CreateFlashcards)
		r.Post("/quiz", studyHandler.CreateQuiz)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
