package domain

import (
	"fmt"
	"strings"
)

// SourceKind discriminates the variants of the Source union.
type SourceKind string

const (
	// SourceInline is text pasted directly by the user.
	SourceInline SourceKind = "inline"

	// SourceUpload is an uploaded document (plain text, PDF, or DOCX).
	SourceUpload SourceKind = "upload"

	// SourceURL is a remote web document to fetch and extract.
	SourceURL SourceKind = "url"
)

// Media types accepted for uploaded files.
const (
	MediaTypeText = "text/plain"
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// MaxUploadBytes is the upload size ceiling (10 MB).
const MaxUploadBytes = 10 << 20

// FileUpload holds the raw bytes and declared metadata of an uploaded document.
type FileUpload struct {
	Data      []byte
	MediaType string
	Name      string
}

// Source is the tagged input union handed to the content normalizer.
// Exactly one variant is populated; use the New*Source constructors, which
// enforce non-emptiness.
type Source struct {
	Kind SourceKind

	// Text is set for SourceInline.
	Text string

	// File is set for SourceUpload.
	File *FileUpload

	// URL is set for SourceURL.
	URL string
}

// NewInlineSource creates an inline-text source. The text is trimmed; empty
// text is rejected with ErrEmptyInput.
func NewInlineSource(text string) (Source, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Source{}, fmt.Errorf("%w: text must not be blank", ErrEmptyInput)
	}
	return Source{Kind: SourceInline, Text: text}, nil
}

// NewUploadSource creates an uploaded-file source. Empty file contents are
// rejected with ErrEmptyInput. The declared media type is normalized to
// lower case; any parameters (e.g. "; charset=utf-8") are dropped.
func NewUploadSource(data []byte, mediaType, name string) (Source, error) {
	if len(data) == 0 {
		return Source{}, fmt.Errorf("%w: uploaded file is empty", ErrEmptyInput)
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if mt, _, found := strings.Cut(mediaType, ";"); found {
		mediaType = strings.TrimSpace(mt)
	}
	return Source{
		Kind: SourceUpload,
		File: &FileUpload{Data: data, MediaType: mediaType, Name: name},
	}, nil
}

// NewURLSource creates a remote-document source. The URL is trimmed; an
// empty URL is rejected with ErrEmptyInput. Scheme validation happens later
// in the normalizer.
func NewURLSource(rawURL string) (Source, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Source{}, fmt.Errorf("%w: URL must not be blank", ErrEmptyInput)
	}
	return Source{Kind: SourceURL, URL: rawURL}, nil
}

// AllowedMediaType reports whether mediaType is on the upload allow-list.
func AllowedMediaType(mediaType string) bool {
	switch mediaType {
	case MediaTypeText, MediaTypePDF, MediaTypeDOCX:
		return true
	}
	return false
}
