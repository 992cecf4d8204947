package fetcher

import (
	"context"
	"io"
)

// Result is the outcome of fetching a single resource.
type Result struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// ContentType is the server-declared media type, stripped of
	// parameters. Empty when the server did not declare one.
	ContentType string

	// Body is the response body stream. Nil when the server returned
	// no body worth reading; callers must check before draining.
	// The caller owns the stream and must close it.
	Body io.ReadCloser
}

// Fetcher is the fetch capability consumed by the icon classifier.
//
// Design decision: We pass the declared content type into Fetch rather
// than keeping it classifier-internal because HTTP servers vary their
// response on the Accept header; the declared type is the best hint we
// have about what the site intended to serve.
type Fetcher interface {
	// Fetch retrieves the resource at url. declaredType may be empty.
	// A non-2xx status is not an error; callers classify it.
	Fetch(ctx context.Context, url, declaredType string) (*Result, error)
}
