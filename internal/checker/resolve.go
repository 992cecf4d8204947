package checker

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidBaseURL is returned when the base document URL cannot be
// parsed. The reference itself is never validated beyond its prefix.
var ErrInvalidBaseURL = errors.New("invalid base URL")

// ResolveReference resolves a possibly relative icon reference against
// the base document URL. Rules, checked in order:
//
//  1. http:// or https:// prefix: already absolute, returned unchanged.
//  2. // prefix: protocol-relative, the base's scheme is prepended.
//  3. / prefix: root-relative, appended to the base's origin.
//  4. Anything else: appended to the base URL, which is normalized to
//     end with a slash first.
//
// Rule 4 is a naive concatenation: ".." segments are not collapsed and
// the base's trailing path component is kept. This matches how the
// declared references are produced upstream and keeps the resolution
// predictable for audit output.
func ResolveReference(baseURL, reference string) (string, error) {
	if strings.HasPrefix(reference, "http://") || strings.HasPrefix(reference, "https://") {
		return reference, nil
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidBaseURL, baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q: missing scheme or host", ErrInvalidBaseURL, baseURL)
	}

	if strings.HasPrefix(reference, "//") {
		return parsed.Scheme + ":" + reference, nil
	}

	if strings.HasPrefix(reference, "/") {
		return parsed.Scheme + "://" + parsed.Host + reference, nil
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL + reference, nil
}
