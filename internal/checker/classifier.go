package checker

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/nao1215/iconaudit/internal/fetcher"
	"github.com/nao1215/iconaudit/internal/imagemeta"
)

// ClassificationOutput is the classifier's result for one icon.
type ClassificationOutput struct {
	// Content is a base64 data URL embedding of the fetched bytes,
	// present only when a body was fetched and decoded.
	Content string `json:"content,omitempty"`

	// URL is the icon URL that was fetched.
	URL string `json:"url,omitempty"`

	// Width and Height are the decoded pixel dimensions. Zero when the
	// metadata decode yielded nothing usable (e.g. an SVG without
	// width/height attributes).
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Raw holds the fetched bytes for follow-up metadata checks,
	// so they never need to be refetched.
	Raw []byte `json:"-"` // Excluded from JSON due to size
}

// Classify fetches one icon and drives the observer through the outcome
// events. The decision sequence is fixed and its branches are mutually
// exclusive, checked in this priority:
//
//  1. Empty iconURL: emit NoHref, return nil without fetching.
//  2. Status 404: emit Icon404. 404 is a distinguished signal and is
//     checked before the general non-2xx branch.
//  3. Status >= 300: emit CannotGet with the status code.
//  4. Body present: emit Downloadable, drain the body, decode image
//     dimensions, build a data URL, then emit the square/size events.
//  5. 2xx with no body: return an output with no content and emit
//     nothing. The silent path is deliberate; see the package tests.
//
// Classification-domain outcomes (404, non-2xx, size mismatches) are
// recorded via the observer and never returned as errors. Failures
// draining or decoding the body are fatal for this check and propagate.
//
// expectedSize 0 means no expected size was given; declaredType "" means
// no type attribute was declared.
func Classify(ctx context.Context, iconURL string, observer IconObserver, fetch fetcher.Fetcher, declaredType string, expectedSize int) (*ClassificationOutput, error) {
	if iconURL == "" {
		observer.NoHref()
		return nil, nil //nolint:nilnil // no icon means no output and no failure
	}

	result, err := fetch.Fetch(ctx, iconURL, declaredType)
	if err != nil {
		return nil, err
	}

	switch {
	case result.StatusCode == http.StatusNotFound:
		closeBody(result)
		observer.Icon404()
		return nil, nil //nolint:nilnil // outcome recorded via observer

	case result.StatusCode >= 300:
		closeBody(result)
		observer.CannotGet(result.StatusCode)
		return nil, nil //nolint:nilnil // outcome recorded via observer

	case result.Body != nil:
		observer.Downloadable()

		buf, err := Collect(result.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read icon body from %s: %w", iconURL, err)
		}

		dims, err := imagemeta.DecodeDimensions(buf)
		if err != nil {
			return nil, fmt.Errorf("failed to decode icon %s: %w", iconURL, err)
		}

		contentType := result.ContentType
		if contentType == "" {
			contentType = InferMIMEType(iconURL)
		}

		output := &ClassificationOutput{
			Content: "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(buf),
			URL:     iconURL,
			Width:   dims.Width,
			Height:  dims.Height,
			Raw:     buf,
		}

		if dims.Width > 0 && dims.Height > 0 {
			if dims.Width != dims.Height {
				observer.NotSquare(dims.Width, dims.Height)
			} else {
				observer.Square(dims.Width)
				if expectedSize > 0 {
					// Exact equality only; there is no tolerance.
					if dims.Width == expectedSize {
						observer.RightSize(dims.Width)
					} else {
						observer.WrongSize(dims.Width)
					}
				}
			}
		}

		return output, nil

	default:
		// 2xx with no body. The original checker emits no event here;
		// we preserve that even though a 200 with an empty body
		// arguably deserves its own signal.
		return &ClassificationOutput{URL: iconURL}, nil
	}
}

func closeBody(result *fetcher.Result) {
	if result.Body != nil {
		result.Body.Close()
	}
}
