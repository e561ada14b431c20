package generation

import "errors"

// Common errors returned by the generation package.
var (
	// ErrServiceUnavailable is returned when no model client is configured.
	// The guard fires before any prompt work.
	ErrServiceUnavailable = errors.New("AI generation is not configured on this server")

	// ErrEmptyModelResponse is returned when the model reply carries no
	// usable content (blocked by safety filtering or structurally empty).
	ErrEmptyModelResponse = errors.New("the model returned no usable content")

	// ErrMalformedResponse is returned when the model reply cannot be
	// reduced to a JSON array of records.
	ErrMalformedResponse = errors.New("the model response could not be parsed")

	// ErrGenerationFailed is returned when the model call itself fails.
	ErrGenerationFailed = errors.New("failed to generate study material")

	// ErrInvalidConfig is returned when a model client is constructed with
	// invalid configuration.
	ErrInvalidConfig = errors.New("invalid generation configuration")
)
