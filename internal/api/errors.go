package api

import (
	"errors"
	"net/http"

	"github.com/cardsmith/cardsmith-api/internal/domain"
	"github.com/cardsmith/cardsmith-api/internal/generation"
	"github.com/cardsmith/cardsmith-api/internal/normalizer"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Input
// problems are the caller's fault, upstream problems surface as gateway
// errors, and anything unrecognized is a plain 500.
func MapErrorToStatusCode(err error) int {
	switch {
	// Request shape and input errors
	case errors.Is(err, domain.ErrEmptyInput),
		errors.Is(err, domain.ErrNoSource),
		errors.Is(err, domain.ErrConflictingSources),
		errors.Is(err, normalizer.ErrInvalidURL),
		errors.Is(err, normalizer.ErrDecode):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, domain.ErrDisallowedMediaType),
		errors.Is(err, normalizer.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType

	case errors.Is(err, normalizer.ErrExtraction):
		return http.StatusUnprocessableEntity

	// Upstream failures: the remote page or the model provider
	case errors.Is(err, normalizer.ErrFetch),
		errors.Is(err, normalizer.ErrNetworkUnreachable),
		errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrEmptyModelResponse),
		errors.Is(err, generation.ErrMalformedResponse):
		return http.StatusBadGateway

	case errors.Is(err, generation.ErrServiceUnavailable):
		return http.StatusServiceUnavailable

	case errors.Is(err, normalizer.ErrNetworkTimeout):
		return http.StatusGatewayTimeout

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for an error.
// Input errors echo their own composed message since those carry actionable
// detail (which media type, which URL). Upstream errors get fixed messages
// because their chains can carry raw provider payloads or SDK internals.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrEmptyInput),
		errors.Is(err, domain.ErrNoSource),
		errors.Is(err, domain.ErrConflictingSources),
		errors.Is(err, domain.ErrFileTooLarge),
		errors.Is(err, domain.ErrDisallowedMediaType),
		errors.Is(err, normalizer.ErrInvalidURL),
		errors.Is(err, normalizer.ErrDecode),
		errors.Is(err, normalizer.ErrUnsupportedType),
		errors.Is(err, normalizer.ErrExtraction):
		return err.Error()

	case errors.Is(err, normalizer.ErrNetworkTimeout):
		return "Fetching the URL timed out"

	case errors.Is(err, normalizer.ErrNetworkUnreachable):
		return "The URL could not be reached"

	case errors.Is(err, normalizer.ErrFetch):
		return "Failed to fetch content from the URL"

	case errors.Is(err, generation.ErrServiceUnavailable):
		return "AI generation is not configured on this server"

	case errors.Is(err, generation.ErrEmptyModelResponse):
		return "The AI model returned no usable content; try different source material"

	case errors.Is(err, generation.ErrMalformedResponse):
		return "The AI model response could not be parsed; please try again"

	case errors.Is(err, generation.ErrGenerationFailed):
		return "Failed to generate study material"

	default:
		return "An unexpected error occurred"
	}
}
