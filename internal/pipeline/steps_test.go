package pipeline

import (
	"context"
	"testing"

	"github.com/nao1215/iconaudit/internal/checker"
	"github.com/nao1215/iconaudit/internal/fetcher"
	"github.com/nao1215/iconaudit/internal/model"
)

// noHrefFetcher is never called; the steps under test declare no hrefs.
type noHrefFetcher struct{}

func (f *noHrefFetcher) Fetch(_ context.Context, _, _ string) (*fetcher.Result, error) {
	panic("fetch must not be called for undeclared icons")
}

// TestStepNames tests the fixed step names used in performed-checks lists.
func TestStepNames(t *testing.T) {
	t.Parallel()

	fetch := &noHrefFetcher{}
	tests := []struct {
		name string
		step Step
		want string
	}{
		{name: "desktop", step: NewDesktopFaviconStep(fetch, checker.DesktopFaviconInput{}), want: "desktop-favicon"},
		{name: "touch", step: NewTouchIconStep(fetch, checker.TouchIconInput{}), want: "touch-icon"},
		{name: "manifest", step: NewManifestIconsStep(fetch, checker.ManifestInput{}), want: "manifest-icons"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.step.Name(); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestStepsFillTheirSections tests that each step writes its own report
// section and leaves the others untouched.
func TestStepsFillTheirSections(t *testing.T) {
	t.Parallel()

	t.Run("desktop step fills the desktop section", func(t *testing.T) {
		t.Parallel()

		step := NewDesktopFaviconStep(&noHrefFetcher{}, checker.DesktopFaviconInput{
			BaseURL:  "https://example.com",
			AppTitle: "Example",
		})

		report := model.NewFaviconReport("https://example.com")
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(report.Desktop.Messages) != 1 || report.Desktop.Messages[0].ID != model.MsgDesktopNoHref {
			t.Errorf("unexpected desktop messages: %v", report.Desktop.Messages)
		}
		if report.Desktop.AppTitle != "Example" {
			t.Errorf("app title = %q, want %q", report.Desktop.AppTitle, "Example")
		}
		if len(report.Touch.Messages) != 0 || len(report.Manifest.Messages) != 0 {
			t.Error("expected other sections to stay empty")
		}
	})

	t.Run("touch step fills the touch section", func(t *testing.T) {
		t.Parallel()

		step := NewTouchIconStep(&noHrefFetcher{}, checker.TouchIconInput{
			BaseURL: "https://example.com",
		})

		report := model.NewFaviconReport("https://example.com")
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(report.Touch.Messages) != 1 || report.Touch.Messages[0].ID != model.MsgTouchIconNoHref {
			t.Errorf("unexpected touch messages: %v", report.Touch.Messages)
		}
	})

	t.Run("manifest step fills the manifest section", func(t *testing.T) {
		t.Parallel()

		step := NewManifestIconsStep(&noHrefFetcher{}, checker.ManifestInput{
			BaseURL: "https://example.com",
			Name:    "Example App",
		})

		report := model.NewFaviconReport("https://example.com")
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(report.Manifest.Messages) != 1 || report.Manifest.Messages[0].ID != model.MsgManifestIconNoHref {
			t.Errorf("unexpected manifest messages: %v", report.Manifest.Messages)
		}
		if report.Manifest.Name != "Example App" {
			t.Errorf("manifest name = %q, want %q", report.Manifest.Name, "Example App")
		}
	})
}
