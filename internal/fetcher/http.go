package fetcher

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"
)

// HTTPFetcher fetches icon resources over HTTP(S).
//
// Design decision: We use a struct with the http.Client rather than
// passing the client on each call because:
//  1. Client configuration (redirect policy, timeouts) must be consistent
//  2. Connection pooling works better with a shared client
//  3. Easier to test with mock transport
//
// Redirects are never followed: the classifier treats any status >= 300
// as a labeled outcome, which requires seeing the 3xx itself rather than
// the page it points at.
type HTTPFetcher struct {
	// client is the underlying HTTP client.
	client *http.Client

	// userAgent is the User-Agent header sent with each request.
	userAgent string

	// maxBodySize limits the response body size to prevent memory
	// exhaustion. Icons are small; the default is 2MB.
	maxBodySize int64

	// timeout is the per-request timeout.
	timeout time.Duration

	// headers are extra request headers, e.g. auth for staging sites.
	headers map[string]string
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
func WithMaxBodySize(size int64) Option {
	return func(f *HTTPFetcher) {
		f.maxBodySize = size
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(f *HTTPFetcher) {
		f.timeout = timeout
	}
}

// WithHeaders sets extra request headers sent with every fetch.
// Needed for staging sites behind basic auth or cookie walls.
func WithHeaders(headers map[string]string) Option {
	return func(f *HTTPFetcher) {
		f.headers = headers
	}
}

// NewHTTPFetcher creates an HTTPFetcher. When client is nil a default
// client is created with redirect following disabled. When a custom
// client is supplied its redirect policy is overridden for the same
// reason: 3xx responses must reach the classifier as-is.
func NewHTTPFetcher(client *http.Client, opts ...Option) *HTTPFetcher {
	if client == nil {
		client = &http.Client{}
	}
	client.CheckRedirect = func(_ *http.Request, _ []*http.Request) error {
		return http.ErrUseLastResponse
	}

	f := &HTTPFetcher{
		client:      client,
		userAgent:   "iconaudit/1.0 (+https://github.com/nao1215/iconaudit)",
		maxBodySize: 2 * 1024 * 1024, // 2MB
		timeout:     30 * time.Second,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch retrieves the resource at url.
// Transport failures (DNS, refused connection, timeout) are returned as
// errors; any HTTP status is returned in the Result for classification.
func (f *HTTPFetcher) Fetch(ctx context.Context, url, declaredType string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}
	if declaredType != "" {
		// Prefer what the site says it serves; keep */* so servers that
		// ignore the declared type still respond.
		req.Header.Set("Accept", declaredType+",*/*;q=0.8")
	} else {
		req.Header.Set("Accept", "image/*,*/*;q=0.8")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	result := &Result{
		StatusCode:  resp.StatusCode,
		ContentType: parseContentType(resp.Header.Get("Content-Type")),
	}

	// A zero Content-Length means there is no body worth reading.
	// We surface that as a nil Body so the classifier can take its
	// silent no-body path.
	if resp.ContentLength == 0 {
		resp.Body.Close()
		cancel()
		return result, nil
	}

	result.Body = &cancelReadCloser{
		ReadCloser: newLimitedReadCloser(resp.Body, f.maxBodySize),
		cancel:     cancel,
	}
	return result, nil
}

// parseContentType strips parameters (charset etc.) from a Content-Type
// header value. Malformed values are passed through untouched so the
// classifier can still build a data URL from whatever the server sent.
func parseContentType(header string) string {
	if header == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return header
	}
	return mediaType
}

// limitedReadCloser caps reads from the underlying body while keeping
// the Close method of the original stream.
type limitedReadCloser struct {
	io.Reader
	closer io.Closer
}

func newLimitedReadCloser(rc io.ReadCloser, limit int64) io.ReadCloser {
	return &limitedReadCloser{
		Reader: io.LimitReader(rc, limit),
		closer: rc,
	}
}

// Close closes the underlying stream.
func (l *limitedReadCloser) Close() error {
	return l.closer.Close()
}

// cancelReadCloser releases the request's timeout context when the body
// is closed. Without this the context would leak until the timer fires.
type cancelReadCloser struct {
	io.ReadCloser
	cancel context.CancelFunc
}

// Close closes the body and cancels the request context.
func (c *cancelReadCloser) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
