package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/cardsmith/cardsmith-api/internal/api/shared"
	"github.com/cardsmith/cardsmith-api/internal/domain"
)

// StudyService is the orchestration boundary the handler depends on.
type StudyService interface {
	CreateFlashcards(ctx context.Context, src domain.Source, maxCards int) ([]domain.Flashcard, error)
	CreateQuiz(ctx context.Context, src domain.Source, numQuestions int) ([]domain.QuizQuestion, error)
}

// StudyHandler handles the generation endpoints. Both accept either a JSON
// body or a multipart form; multipart is the only way to upload a file.
type StudyHandler struct {
	service        StudyService
	maxUploadBytes int64
}

// NewStudyHandler creates a StudyHandler. maxUploadBytes bounds uploaded
// file size; zero or negative falls back to the domain ceiling.
func NewStudyHandler(service StudyService, maxUploadBytes int64) *StudyHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = domain.MaxUploadBytes
	}
	return &StudyHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// CreateFlashcards handles POST /api/flashcards.
func (h *StudyHandler) CreateFlashcards(w http.ResponseWriter, r *http.Request) {
	src, req, err := h.parseRequest(r)
	if err != nil {
		respondMappedError(w, r, err)
		return
	}

	cards, err := h.service.CreateFlashcards(r.Context(), src, req.MaxCards)
	if err != nil {
		respondMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, FlashcardsResponse{Flashcards: cards})
}

// CreateQuiz handles POST /api/quiz.
func (h *StudyHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	src, req, err := h.parseRequest(r)
	if err != nil {
		respondMappedError(w, r, err)
		return
	}

	questions, err := h.service.CreateQuiz(r.Context(), src, req.NumQuestions)
	if err != nil {
		respondMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QuizResponse{Quiz: questions})
}

// parseRequest extracts the source and counts from either a JSON body or a
// multipart form.
func (h *StudyHandler) parseRequest(r *http.Request) (domain.Source, GenerateRequest, error) {
	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if contentType == "multipart/form-data" {
		return h.parseMultipart(r)
	}
	return h.parseJSON(r)
}

func (h *StudyHandler) parseJSON(r *http.Request) (domain.Source, GenerateRequest, error) {
	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return domain.Source{}, GenerateRequest{}, fmt.Errorf(
			"%w: request body must be valid JSON", domain.ErrEmptyInput)
	}

	src, err := buildSource(strings.TrimSpace(req.Text), strings.TrimSpace(req.URL), nil)
	return src, req, err
}

func (h *StudyHandler) parseMultipart(r *http.Request) (domain.Source, GenerateRequest, error) {
	// The extra slack covers multipart framing and the small text fields.
	r.Body = http.MaxBytesReader(nil, r.Body, h.maxUploadBytes+64*1024)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return domain.Source{}, GenerateRequest{}, fmt.Errorf(
				"%w: the limit is %d MB", domain.ErrFileTooLarge, domain.MaxUploadBytes>>20)
		}
		return domain.Source{}, GenerateRequest{}, fmt.Errorf(
			"%w: malformed multipart form", domain.ErrEmptyInput)
	}

	req := GenerateRequest{
		Text:         strings.TrimSpace(r.FormValue("text")),
		URL:          strings.TrimSpace(r.FormValue("url")),
		MaxCards:     formInt(r, "maxCards"),
		NumQuestions: formInt(r, "numQuestions"),
	}

	upload, err := h.readUpload(r)
	if err != nil {
		return domain.Source{}, GenerateRequest{}, err
	}

	src, err := buildSource(req.Text, req.URL, upload)
	return src, req, err
}

// readUpload extracts and validates the uploaded file, if any. The declared
// media type is checked against the allow-list before the file is read.
func (h *StudyHandler) readUpload(r *http.Request) (*domain.FileUpload, error) {
	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not read uploaded file", domain.ErrEmptyInput)
	}
	defer func() { _ = file.Close() }()

	if header.Size > h.maxUploadBytes {
		return nil, fmt.Errorf("%w: %q is %d bytes, the limit is %d MB",
			domain.ErrFileTooLarge, header.Filename, header.Size, domain.MaxUploadBytes>>20)
	}

	mediaType, _, _ := mime.ParseMediaType(header.Header.Get("Content-Type"))
	mediaType = strings.ToLower(mediaType)
	if !domain.AllowedMediaType(mediaType) {
		return nil, fmt.Errorf("%w: %q is not supported; upload a txt, PDF, or DOCX file",
			domain.ErrDisallowedMediaType, mediaType)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read uploaded file", domain.ErrEmptyInput)
	}

	return &domain.FileUpload{Data: data, MediaType: mediaType, Name: header.Filename}, nil
}

// buildSource enforces the exactly-one-source rule across the three input
// channels and constructs the matching Source variant.
func buildSource(text, rawURL string, upload *domain.FileUpload) (domain.Source, error) {
	provided := 0
	if text != "" {
		provided++
	}
	if rawURL != "" {
		provided++
	}
	if upload != nil {
		provided++
	}

	switch {
	case provided == 0:
		return domain.Source{}, fmt.Errorf(
			"%w: provide text, a url, or a file", domain.ErrNoSource)
	case provided > 1:
		return domain.Source{}, fmt.Errorf(
			"%w: provide exactly one of text, url, or file", domain.ErrConflictingSources)
	}

	switch {
	case upload != nil:
		return domain.NewUploadSource(upload.Data, upload.MediaType, upload.Name)
	case rawURL != "":
		return domain.NewURLSource(rawURL)
	default:
		return domain.NewInlineSource(text)
	}
}

func formInt(r *http.Request, field string) int {
	value := strings.TrimSpace(r.FormValue(field))
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

// respondMappedError translates an internal error into a sanitized HTTP
// response and logs the full error.
func respondMappedError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
