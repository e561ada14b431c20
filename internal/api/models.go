package api

import "github.com/cardsmith/cardsmith-api/internal/domain"

// GenerateRequest is the JSON body for both generation endpoints. Exactly
// one of Text or URL must be set; file uploads use multipart form data
// instead of this body.
type GenerateRequest struct {
	Text         string `json:"text"`
	URL          string `json:"url"`
	MaxCards     int    `json:"maxCards"`
	NumQuestions int    `json:"numQuestions"`
}

// FlashcardsResponse is the success body of the flashcards endpoint.
type FlashcardsResponse struct {
	Flashcards []domain.Flashcard `json:"flashcards"`
}

// QuizResponse is the success body of the quiz endpoint.
type QuizResponse struct {
	Quiz []domain.QuizQuestion `json:"quiz"`
}
