package normalizer

import "errors"

// Classified normalization failures. Each sentinel is wrapped with a short
// human-readable cause; the API layer maps them to status codes with
// errors.Is and forwards the message as-is, so messages must stay free of
// internal detail.
var (
	// ErrUnsupportedType is returned when an uploaded file's declared media
	// type has no extraction strategy.
	ErrUnsupportedType = errors.New("unsupported document type")

	// ErrDecode is returned when a plain-text upload is not valid UTF-8.
	ErrDecode = errors.New("could not decode file as UTF-8 text")

	// ErrExtraction is returned when a PDF or DOCX document cannot be read.
	ErrExtraction = errors.New("could not extract text from document")

	// ErrInvalidURL is returned when a remote-document URL does not use an
	// HTTP(S) scheme.
	ErrInvalidURL = errors.New("URL must start with http:// or https://")

	// ErrFetch is returned for HTTP error statuses and non-timeout,
	// non-connectivity transport failures.
	ErrFetch = errors.New("could not fetch URL")

	// ErrNetworkTimeout is returned when fetching a remote document exceeds
	// the configured timeout.
	ErrNetworkTimeout = errors.New("timed out fetching URL")

	// ErrNetworkUnreachable is returned when the remote host cannot be
	// reached (DNS failure, connection refused).
	ErrNetworkUnreachable = errors.New("could not reach the remote host")
)
