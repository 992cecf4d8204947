package checker

import "testing"

// TestInferMIMEType tests the extension-based media type fallback.
func TestInferMIMEType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "png", path: "https://example.com/favicon.png", want: "image/png"},
		{name: "svg", path: "https://example.com/icon.svg", want: "image/svg+xml"},
		{name: "ico", path: "https://example.com/favicon.ico", want: "image/x-icon"},
		{name: "jpg", path: "https://example.com/icon.jpg", want: "image/jpeg"},
		{name: "jpeg", path: "https://example.com/icon.jpeg", want: "image/jpeg"},
		{name: "no extension", path: "https://example.com/favicon", want: "application/octet-stream"},
		{name: "unknown extension", path: "https://example.com/icon.webp", want: "application/octet-stream"},
		{name: "uppercase is not normalized", path: "https://example.com/ICON.PNG", want: "application/octet-stream"},
		{name: "only last extension counts", path: "https://example.com/icon.png.bak", want: "application/octet-stream"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := InferMIMEType(tt.path); got != tt.want {
				t.Errorf("InferMIMEType(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
