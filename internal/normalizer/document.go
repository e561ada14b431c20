package normalizer

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/cardsmith/cardsmith-api/internal/domain"
)

// normalizeUpload dispatches an uploaded file to the extraction strategy for
// its declared media type. The handler has already enforced the allow-list
// and size ceiling; the type is re-checked here before dispatch anyway.
func (s *Service) normalizeUpload(ctx context.Context, file *domain.FileUpload) (Result, error) {
	switch file.MediaType {
	case domain.MediaTypeText:
		// Contract: output is exactly the UTF-8 decoding of the input bytes.
		if !utf8.Valid(file.Data) {
			return Result{}, fmt.Errorf("%w: the file does not appear to be UTF-8 encoded", ErrDecode)
		}
		return extracted(string(file.Data)), nil

	case domain.MediaTypePDF:
		text, err := s.extractPDF(ctx, file)
		if err != nil {
			return Result{}, err
		}
		return extracted(text), nil

	case domain.MediaTypeDOCX:
		text, err := s.extractDOCX(ctx, file)
		if err != nil {
			return Result{}, err
		}
		return extracted(text), nil

	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedType, file.MediaType)
	}
}

// extractPDF pulls the plain text out of a PDF document. Every parser
// failure collapses into ErrExtraction with a user-facing hint; the raw
// parser diagnostic goes to the log only.
func (s *Service) extractPDF(ctx context.Context, file *domain.FileUpload) (text string, err error) {
	// The pdf library panics on some malformed inputs instead of returning
	// an error, so the whole extraction runs under a recover.
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "pdf extraction panicked",
				"file_name", file.Name,
				"panic", fmt.Sprint(r))
			err = pdfExtractionError()
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to open pdf",
			"file_name", file.Name,
			"error", err)
		return "", pdfExtractionError()
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to extract pdf text",
			"file_name", file.Name,
			"error", err)
		return "", pdfExtractionError()
	}

	raw, err := io.ReadAll(plain)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read pdf text stream",
			"file_name", file.Name,
			"error", err)
		return "", pdfExtractionError()
	}

	return collapseWhitespace(string(raw)), nil
}

func pdfExtractionError() error {
	return fmt.Errorf("%w: the PDF may be corrupted or password-protected", ErrExtraction)
}

// extractDOCX reads word/document.xml from the DOCX zip container and
// collects the text runs (<w:t> elements), one line per paragraph.
// Structural oddities are logged but do not fail the call; only an
// unreadable container does.
func (s *Service) extractDOCX(ctx context.Context, file *domain.FileUpload) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to open docx container",
			"file_name", file.Name,
			"error", err)
		return "", fmt.Errorf("%w: the document is not a readable DOCX file", ErrExtraction)
	}

	var docXML *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML = f
			break
		}
	}
	if docXML == nil {
		s.logger.ErrorContext(ctx, "docx container has no word/document.xml",
			"file_name", file.Name)
		return "", fmt.Errorf("%w: the document is missing its main part", ErrExtraction)
	}

	rc, err := docXML.Open()
	if err != nil {
		return "", fmt.Errorf("%w: the document body could not be read", ErrExtraction)
	}
	defer func() { _ = rc.Close() }()

	text, warnings := collectWordText(rc)
	for _, warn := range warnings {
		s.logger.WarnContext(ctx, "docx conversion warning",
			"file_name", file.Name,
			"warning", warn)
	}

	return text, nil
}

// collectWordText streams the WordprocessingML body, gathering character
// data inside <w:t> runs and emitting a newline at each paragraph end.
// Returns the assembled text plus any non-fatal structural warnings.
func collectWordText(r io.Reader) (string, []string) {
	var (
		b        strings.Builder
		warnings []string
		inRun    bool
	)

	decoder := xml.NewDecoder(r)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("document body ended early: %v", err))
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inRun = true
			case "tab":
				b.WriteByte('\t')
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inRun {
				b.Write(t)
			}
		}
	}

	return strings.TrimSpace(b.String()), warnings
}
