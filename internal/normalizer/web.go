package normalizer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxFetchBytes bounds how much of a remote response body is read.
const maxFetchBytes = 2 << 20

// shortExtractionChars is the threshold below which an HTML extraction is
// accepted but flagged as suspiciously short.
const shortExtractionChars = 150

// binaryExtensions lists URL path extensions that are never fetched:
// images, audio, video, archives, and executables.
var binaryExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {}, ".svg": {},
	".bmp": {}, ".ico": {}, ".tiff": {},
	".mp3": {}, ".wav": {}, ".ogg": {}, ".flac": {}, ".aac": {}, ".m4a": {},
	".mp4": {}, ".avi": {}, ".mov": {}, ".mkv": {}, ".webm": {}, ".wmv": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {}, ".rar": {}, ".7z": {},
	".exe": {}, ".msi": {}, ".dmg": {}, ".iso": {}, ".bin": {}, ".apk": {},
}

// selectors for noise stripping and content region priority. A page's main
// region wins over an article region, which wins over generic content-class
// containers; the whole body is the last resort.
var (
	noiseSelector = "script, style, noscript, nav, form, header, footer, aside, iframe, [aria-hidden='true']"

	contentSelectors = []string{
		"main",
		"article",
		"#content, .content, [class*='content']",
	}
)

// normalizeURL fetches a remote document and reduces it to plain text.
// Binary URLs, non-HTML content types, and empty extractions yield skipped
// results rather than errors; HTTP error statuses and transport failures
// yield classified errors.
func (s *Service) normalizeURL(ctx context.Context, rawURL string) (Result, error) {
	lower := strings.ToLower(rawURL)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return Result{}, fmt.Errorf("%w: got %q", ErrInvalidURL, rawURL)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %q is not a valid URL", ErrInvalidURL, rawURL)
	}

	// Known binary payloads are never fetched; the caller gets a marker
	// naming the URL instead.
	if ext := strings.ToLower(path.Ext(parsed.Path)); ext != "" {
		if _, ok := binaryExtensions[ext]; ok {
			s.logger.InfoContext(ctx, "skipping binary url", "url", rawURL, "extension", ext)
			marker := fmt.Sprintf("[The link %s points to a binary file (%s) and was not fetched.]", rawURL, ext)
			return skipped(marker, "binary file extension "+ext), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %q is not a valid URL", ErrInvalidURL, rawURL)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return Result{}, s.classifyTransportError(ctx, rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Any status is accepted at the transport layer and inspected here.
	if resp.StatusCode >= 400 {
		s.logger.InfoContext(ctx, "remote document returned error status",
			"url", rawURL,
			"status", resp.StatusCode)
		return Result{}, fmt.Errorf("%w: the server responded with status %d", ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return Result{}, s.classifyTransportError(ctx, rawURL, err)
	}

	contentType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	switch {
	case contentType == "text/plain":
		return extracted(truncateRunes(string(body), s.maxPlainTextChars)), nil

	case contentType == "text/html" || contentType == "application/xhtml+xml":
		return s.extractWebPage(ctx, rawURL, body)

	default:
		s.logger.InfoContext(ctx, "remote document has non-text content type",
			"url", rawURL,
			"content_type", contentType)
		marker := fmt.Sprintf("[The content at %s has type %q and was not converted to text.]", rawURL, contentType)
		return skipped(marker, "unsupported content type "+contentType), nil
	}
}

// extractWebPage strips non-content elements from an HTML document and
// selects text from the highest-priority content region.
func (s *Service) extractWebPage(ctx context.Context, rawURL string, body []byte) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to parse html", "url", rawURL, "error", err)
		return Result{}, fmt.Errorf("%w: the page could not be parsed as HTML", ErrFetch)
	}

	doc.Find(noiseSelector).Remove()

	var text string
	for _, sel := range contentSelectors {
		if region := doc.Find(sel).First(); region.Length() > 0 {
			text = region.Text()
			break
		}
	}
	if text == "" {
		text = doc.Find("body").Text()
	}

	text = collapseWhitespace(text)
	if text == "" {
		s.logger.InfoContext(ctx, "html extraction yielded no text", "url", rawURL)
		marker := fmt.Sprintf("[No readable text found at %s; the page likely renders its content with JavaScript.]", rawURL)
		return skipped(marker, "empty extraction"), nil
	}

	if len(text) < shortExtractionChars {
		s.logger.WarnContext(ctx, "html extraction is suspiciously short",
			"url", rawURL,
			"length", len(text))
	}

	return extracted(text), nil
}

// classifyTransportError maps a transport failure onto the network error
// taxonomy: timeout, unreachable host, or generic fetch failure.
func (s *Service) classifyTransportError(ctx context.Context, rawURL string, err error) error {
	s.logger.ErrorContext(ctx, "failed to fetch remote document", "url", rawURL, "error", err)

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: the server did not respond in time", ErrNetworkTimeout)
	}

	var dnsErr *net.DNSError
	var opErr *net.OpError
	if errors.As(err, &dnsErr) || errors.As(err, &opErr) {
		return fmt.Errorf("%w: check that the URL is correct and the site is online", ErrNetworkUnreachable)
	}

	return fmt.Errorf("%w: %s", ErrFetch, "the request could not be completed")
}
