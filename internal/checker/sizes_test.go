package checker

import "testing"

// TestParseSizeAttribute tests parsing of declared WxH size attributes.
func TestParseSizeAttribute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		sizes string
		want  int
	}{
		{name: "square size", sizes: "48x48", want: 48},
		{name: "large square size", sizes: "180x180", want: 180},
		{name: "first token wins", sizes: "16x16 32x32", want: 16},
		{name: "embedded in other text", sizes: "icon-192x192.png", want: 192},
		{name: "unequal dimensions", sizes: "32x16", want: 0},
		{name: "empty attribute", sizes: "", want: 0},
		{name: "keyword any", sizes: "any", want: 0},
		{name: "no x separator", sizes: "4848", want: 0},
		{name: "zero size", sizes: "0x0", want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ParseSizeAttribute(tt.sizes); got != tt.want {
				t.Errorf("ParseSizeAttribute(%q) = %d, want %d", tt.sizes, got, tt.want)
			}
		})
	}
}
