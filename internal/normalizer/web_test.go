package normalizer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardsmith/cardsmith-api/internal/domain"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func urlSource(t *testing.T, rawURL string) domain.Source {
	t.Helper()
	src, err := domain.NewURLSource(rawURL)
	require.NoError(t, err)
	return src
}

func TestNormalizeURLRejectsNonHTTPScheme(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	for _, rawURL := range []string{"ftp://example.com/file.txt", "file:///etc/passwd", "example.com/page"} {
		_, err := svc.Normalize(context.Background(), urlSource(t, rawURL))
		assert.ErrorIs(t, err, ErrInvalidURL, "url %q", rawURL)
	}
}

// Binary URLs are short-circuited before any network activity.
func TestNormalizeBinaryURLNeverFetches(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	svc.client.Transport = roundTripFunc(func(r *http.Request) (*http.Response, error) {
		t.Errorf("unexpected network call to %s", r.URL)
		return nil, nil
	})

	result, err := svc.Normalize(context.Background(), urlSource(t, "http://example.com/movie.mp4"))
	require.NoError(t, err)
	assert.Equal(t, ResultSkipped, result.Kind)
	assert.Contains(t, result.Text, "movie.mp4", "the marker should name the URL")
	assert.Contains(t, result.Reason, ".mp4")
}

func TestNormalizeURLErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer server.Close()

	svc := newTestService(t)
	_, err := svc.Normalize(context.Background(), urlSource(t, server.URL+"/missing"))
	require.ErrorIs(t, err, ErrFetch)
	assert.Contains(t, err.Error(), "404")
}

func TestNormalizeURLPlainTextTruncated(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 6000)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(long))
	}))
	defer server.Close()

	svc := newTestService(t)
	result, err := svc.Normalize(context.Background(), urlSource(t, server.URL+"/readme"))
	require.NoError(t, err)
	assert.Equal(t, ResultExtracted, result.Kind)
	assert.Len(t, result.Text, 5000, "plain text is bounded to the first 5,000 characters")
	assert.Equal(t, long[:5000], result.Text)
}

func TestNormalizeURLSendsIdentifyingHeader(t *testing.T) {
	t.Parallel()

	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("hello"))
	}))
	defer server.Close()

	svc := newTestService(t)
	_, err := svc.Normalize(context.Background(), urlSource(t, server.URL))
	require.NoError(t, err)
	assert.Equal(t, "cardsmith-test", gotUserAgent)
}

func TestNormalizeURLNonHTMLContentType(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer server.Close()

	svc := newTestService(t)
	result, err := svc.Normalize(context.Background(), urlSource(t, server.URL+"/paper"))
	require.NoError(t, err, "a non-HTML content type is a skip, not an error")
	assert.Equal(t, ResultSkipped, result.Kind)
	assert.Contains(t, result.Text, "application/pdf", "the marker should name the content type")
}

func TestNormalizeURLHTMLPrefersMainRegion(t *testing.T) {
	t.Parallel()

	page := `<!doctype html>
<html><head><title>t</title><script>var x = "never this";</script></head>
<body>
  <nav>Site navigation links</nav>
  <header>Big banner</header>
  <main>
    <h1>Cell biology</h1>
    <p>The   mitochondria is the
powerhouse of the cell.</p>
  </main>
  <article>Unrelated article text</article>
  <footer>Copyright</footer>
</body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	svc := newTestService(t)
	result, err := svc.Normalize(context.Background(), urlSource(t, server.URL+"/bio"))
	require.NoError(t, err)
	assert.Equal(t, ResultExtracted, result.Kind)
	assert.Equal(t, "Cell biology The mitochondria is the powerhouse of the cell.", result.Text)
}

func TestNormalizeURLHTMLFallsBackThroughRegions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		page     string
		expected string
	}{
		{
			name:     "article when no main",
			page:     `<html><body><article>Article text here</article><div>other</div></body></html>`,
			expected: "Article text here",
		},
		{
			name:     "content class when no main or article",
			page:     `<html><body><div class="post-content">Classed content</div><div>sidebar</div></body></html>`,
			expected: "Classed content",
		},
		{
			name:     "whole body as last resort",
			page:     `<html><body><div>Just a bare page</div></body></html>`,
			expected: "Just a bare page",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				_, _ = w.Write([]byte(tc.page))
			}))
			defer server.Close()

			svc := newTestService(t)
			result, err := svc.Normalize(context.Background(), urlSource(t, server.URL))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result.Text)
		})
	}
}

func TestNormalizeURLHTMLEmptyExtraction(t *testing.T) {
	t.Parallel()

	page := `<html><body><script>renderApp()</script><div id="root"></div></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	svc := newTestService(t)
	result, err := svc.Normalize(context.Background(), urlSource(t, server.URL+"/app"))
	require.NoError(t, err, "an empty extraction is a skip, not an error")
	assert.Equal(t, ResultSkipped, result.Kind)
	assert.Contains(t, result.Text, "JavaScript")
	assert.Equal(t, "empty extraction", result.Reason)
}

func TestNormalizeURLTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	svc := newTestService(t)
	svc.client.Timeout = 50 * time.Millisecond

	_, err := svc.Normalize(context.Background(), urlSource(t, server.URL))
	assert.ErrorIs(t, err, ErrNetworkTimeout)
}

func TestNormalizeURLUnreachableHost(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	// Port 1 is reserved and nothing listens on it; the dial is refused.
	_, err := svc.Normalize(context.Background(), urlSource(t, "http://127.0.0.1:1/page"))
	assert.ErrorIs(t, err, ErrNetworkUnreachable)
}
