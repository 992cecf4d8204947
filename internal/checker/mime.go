package checker

import "strings"

// InferMIMEType maps the final dot-delimited extension of path to an
// image media type. It is the fallback used when the server declared no
// content type of its own.
//
// The match is case-sensitive on the literal suffix as given: "ICON.PNG"
// falls through to application/octet-stream. Normalizing here would make
// the built data URL disagree with what the audited site actually
// serves, so we deliberately do not.
func InferMIMEType(path string) string {
	ext := path
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		ext = path[idx+1:]
	}

	switch ext {
	case "png":
		return "image/png"
	case "svg":
		return "image/svg+xml"
	case "ico":
		return "image/x-icon"
	case "jpg", "jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
