package domain

import "errors"

// Input validation errors. These are caused by the client and map to 4xx
// responses in the API layer.
var (
	// ErrEmptyInput is returned when the supplied text, file, or URL is
	// empty after trimming.
	ErrEmptyInput = errors.New("input is empty")

	// ErrNoSource is returned when a request supplies no text, file, or URL.
	ErrNoSource = errors.New("no input provided: supply text, a file, or a URL")

	// ErrConflictingSources is returned when a request supplies more than
	// one of text, file, and URL.
	ErrConflictingSources = errors.New("conflicting input: supply exactly one of text, file, or URL")

	// ErrFileTooLarge is returned when an uploaded file exceeds MaxUploadBytes.
	ErrFileTooLarge = errors.New("uploaded file exceeds the maximum allowed size")

	// ErrDisallowedMediaType is returned when an uploaded file's declared
	// media type is not on the upload allow-list.
	ErrDisallowedMediaType = errors.New("file type is not allowed")
)
