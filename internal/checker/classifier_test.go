package checker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/nao1215/iconaudit/internal/fetcher"
)

// recordingObserver records classification events in emission order.
type recordingObserver struct {
	events []string
}

func (o *recordingObserver) NoHref()        { o.events = append(o.events, "noHref") }
func (o *recordingObserver) Icon404()       { o.events = append(o.events, "icon404") }
func (o *recordingObserver) Downloadable()  { o.events = append(o.events, "downloadable") }
func (o *recordingObserver) Square(size int) {
	o.events = append(o.events, fmt.Sprintf("square(%d)", size))
}
func (o *recordingObserver) CannotGet(statusCode int) {
	o.events = append(o.events, fmt.Sprintf("cannotGet(%d)", statusCode))
}
func (o *recordingObserver) NotSquare(width, height int) {
	o.events = append(o.events, fmt.Sprintf("notSquare(%d,%d)", width, height))
}
func (o *recordingObserver) RightSize(size int) {
	o.events = append(o.events, fmt.Sprintf("rightSize(%d)", size))
}
func (o *recordingObserver) WrongSize(size int) {
	o.events = append(o.events, fmt.Sprintf("wrongSize(%d)", size))
}

// fakeFetcher returns a canned result or error for any URL.
type fakeFetcher struct {
	result *fetcher.Result
	err    error
}

func (f *fakeFetcher) Fetch(_ context.Context, _, _ string) (*fetcher.Result, error) {
	return f.result, f.err
}

// pngBytes encodes a width x height PNG for use as a fetched body.
func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func bodyResult(statusCode int, contentType string, body []byte) *fetcher.Result {
	return &fetcher.Result{
		StatusCode:  statusCode,
		ContentType: contentType,
		Body:        io.NopCloser(bytes.NewReader(body)),
	}
}

func assertEvents(t *testing.T, got, want []string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

// TestClassify tests the fixed outcome decision sequence.
func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("empty url emits noHref without fetching", func(t *testing.T) {
		t.Parallel()

		observer := &recordingObserver{}
		fetch := &fakeFetcher{err: errors.New("must not be called")}

		output, err := Classify(context.Background(), "", observer, fetch, "", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output != nil {
			t.Errorf("expected nil output, got %+v", output)
		}
		assertEvents(t, observer.events, []string{"noHref"})
	})

	t.Run("404 emits icon404, not cannotGet", func(t *testing.T) {
		t.Parallel()

		observer := &recordingObserver{}
		fetch := &fakeFetcher{result: bodyResult(404, "text/html", []byte("not found"))}

		output, err := Classify(context.Background(), "https://example.com/favicon.ico", observer, fetch, "", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output != nil {
			t.Errorf("expected nil output, got %+v", output)
		}
		assertEvents(t, observer.events, []string{"icon404"})
	})

	t.Run("non-404 status >= 300 emits cannotGet with the code", func(t *testing.T) {
		t.Parallel()

		for _, statusCode := range []int{301, 403, 500, 503} {
			observer := &recordingObserver{}
			fetch := &fakeFetcher{result: &fetcher.Result{StatusCode: statusCode}}

			output, err := Classify(context.Background(), "https://example.com/favicon.ico", observer, fetch, "", 0)
			if err != nil {
				t.Fatalf("status %d: unexpected error: %v", statusCode, err)
			}
			if output != nil {
				t.Errorf("status %d: expected nil output", statusCode)
			}
			assertEvents(t, observer.events, []string{fmt.Sprintf("cannotGet(%d)", statusCode)})
		}
	})

	t.Run("square icon matching expected size", func(t *testing.T) {
		t.Parallel()

		observer := &recordingObserver{}
		fetch := &fakeFetcher{result: bodyResult(200, "image/png", pngBytes(t, 48, 48))}

		output, err := Classify(context.Background(), "https://example.com/favicon.png", observer, fetch, "image/png", 48)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output == nil {
			t.Fatal("expected output")
		}
		assertEvents(t, observer.events, []string{"downloadable", "square(48)", "rightSize(48)"})

		if output.Width != 48 || output.Height != 48 {
			t.Errorf("dimensions = %dx%d, want 48x48", output.Width, output.Height)
		}
		if output.URL != "https://example.com/favicon.png" {
			t.Errorf("unexpected URL: %q", output.URL)
		}
		if !strings.HasPrefix(output.Content, "data:image/png;base64,") {
			t.Errorf("unexpected content prefix: %q", output.Content[:min(40, len(output.Content))])
		}
		if len(output.Raw) == 0 {
			t.Error("expected raw bytes to be kept")
		}
	})

	t.Run("square icon with wrong expected size", func(t *testing.T) {
		t.Parallel()

		observer := &recordingObserver{}
		fetch := &fakeFetcher{result: bodyResult(200, "image/png", pngBytes(t, 32, 32))}

		_, err := Classify(context.Background(), "https://example.com/favicon.png", observer, fetch, "", 48)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertEvents(t, observer.events, []string{"downloadable", "square(32)", "wrongSize(32)"})
	})

	t.Run("square icon without expected size emits no size verdict", func(t *testing.T) {
		t.Parallel()

		observer := &recordingObserver{}
		fetch := &fakeFetcher{result: bodyResult(200, "image/png", pngBytes(t, 64, 64))}

		_, err := Classify(context.Background(), "https://example.com/favicon.png", observer, fetch, "", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertEvents(t, observer.events, []string{"downloadable", "square(64)"})
	})

	t.Run("non-square icon skips all size checks", func(t *testing.T) {
		t.Parallel()

		observer := &recordingObserver{}
		fetch := &fakeFetcher{result: bodyResult(200, "image/png", pngBytes(t, 32, 16))}

		_, err := Classify(context.Background(), "https://example.com/favicon.png", observer, fetch, "", 32)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertEvents(t, observer.events, []string{"downloadable", "notSquare(32,16)"})
	})

	t.Run("missing content type falls back to the url extension", func(t *testing.T) {
		t.Parallel()

		observer := &recordingObserver{}
		fetch := &fakeFetcher{result: bodyResult(200, "", pngBytes(t, 16, 16))}

		output, err := Classify(context.Background(), "https://example.com/icon.png", observer, fetch, "", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(output.Content, "data:image/png;base64,") {
			t.Errorf("expected extension-derived media type, got %q", output.Content[:min(40, len(output.Content))])
		}
	})

	t.Run("missing content type and unknown extension use octet-stream", func(t *testing.T) {
		t.Parallel()

		observer := &recordingObserver{}
		fetch := &fakeFetcher{result: bodyResult(200, "", pngBytes(t, 16, 16))}

		output, err := Classify(context.Background(), "https://example.com/icon", observer, fetch, "", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(output.Content, "data:application/octet-stream;base64,") {
			t.Errorf("expected octet-stream fallback, got %q", output.Content[:min(50, len(output.Content))])
		}
	})

	t.Run("2xx without body is silent", func(t *testing.T) {
		t.Parallel()

		observer := &recordingObserver{}
		fetch := &fakeFetcher{result: &fetcher.Result{StatusCode: 200}}

		output, err := Classify(context.Background(), "https://example.com/favicon.ico", observer, fetch, "", 48)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output == nil {
			t.Fatal("expected output for the silent path")
		}
		if output.Content != "" {
			t.Errorf("expected no content, got %q", output.Content)
		}
		if output.URL != "https://example.com/favicon.ico" {
			t.Errorf("unexpected URL: %q", output.URL)
		}
		assertEvents(t, observer.events, nil)
	})

	t.Run("undecodable body is a fatal error", func(t *testing.T) {
		t.Parallel()

		observer := &recordingObserver{}
		fetch := &fakeFetcher{result: bodyResult(200, "image/png", []byte("this is not an image"))}

		_, err := Classify(context.Background(), "https://example.com/favicon.png", observer, fetch, "", 0)
		if err == nil {
			t.Fatal("expected a decode error")
		}
		// Downloadable fires before the decode is attempted.
		assertEvents(t, observer.events, []string{"downloadable"})
	})

	t.Run("fetch error propagates", func(t *testing.T) {
		t.Parallel()

		observer := &recordingObserver{}
		fetch := &fakeFetcher{err: errors.New("connection refused")}

		_, err := Classify(context.Background(), "https://example.com/favicon.ico", observer, fetch, "", 0)
		if err == nil {
			t.Fatal("expected an error")
		}
		assertEvents(t, observer.events, nil)
	})
}
