package checker

import (
	"context"
	"testing"

	"github.com/nao1215/iconaudit/internal/model"
)

func assertMessageIDs(t *testing.T, messages []model.CheckerMessage, want []model.MessageID) {
	t.Helper()

	if len(messages) != len(want) {
		t.Fatalf("got %d messages %v, want ids %v", len(messages), messages, want)
	}
	for i, id := range want {
		if messages[i].ID != id {
			t.Fatalf("message %d has id %q, want %q", i, messages[i].ID, id)
		}
	}
}

// TestCheckDesktopFavicon tests the desktop favicon check end to end.
func TestCheckDesktopFavicon(t *testing.T) {
	t.Parallel()

	t.Run("no href declared", func(t *testing.T) {
		t.Parallel()

		fetch := &fakeFetcher{}
		report, err := CheckDesktopFavicon(context.Background(), fetch, DesktopFaviconInput{
			BaseURL:  "https://example.com",
			AppTitle: "Example",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertMessageIDs(t, report.Messages, []model.MessageID{model.MsgDesktopNoHref})
		if report.Messages[0].Status != model.StatusError {
			t.Errorf("expected StatusError, got %v", report.Messages[0].Status)
		}
		if report.AppTitle != "Example" {
			t.Errorf("expected app title to be carried, got %q", report.AppTitle)
		}
		if report.IconURL != "" {
			t.Errorf("expected empty icon URL, got %q", report.IconURL)
		}
	})

	t.Run("favicon matching its declared size", func(t *testing.T) {
		t.Parallel()

		fetch := &fakeFetcher{result: bodyResult(200, "image/png", pngBytes(t, 48, 48))}
		report, err := CheckDesktopFavicon(context.Background(), fetch, DesktopFaviconInput{
			BaseURL:      "https://example.com",
			Href:         "/favicon.png",
			DeclaredType: "image/png",
			Sizes:        "48x48",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertMessageIDs(t, report.Messages, []model.MessageID{
			model.MsgDesktopDownloadable,
			model.MsgDesktopSquare,
			model.MsgDesktopRightSize,
		})
		if report.IconURL != "https://example.com/favicon.png" {
			t.Errorf("unexpected icon URL: %q", report.IconURL)
		}
	})

	t.Run("favicon not found", func(t *testing.T) {
		t.Parallel()

		fetch := &fakeFetcher{result: bodyResult(404, "text/html", []byte("gone"))}
		report, err := CheckDesktopFavicon(context.Background(), fetch, DesktopFaviconInput{
			BaseURL: "https://example.com",
			Href:    "/favicon.ico",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertMessageIDs(t, report.Messages, []model.MessageID{model.MsgDesktop404})
	})

	t.Run("non-square favicon without a declared size", func(t *testing.T) {
		t.Parallel()

		fetch := &fakeFetcher{result: bodyResult(200, "image/png", pngBytes(t, 32, 16))}
		report, err := CheckDesktopFavicon(context.Background(), fetch, DesktopFaviconInput{
			BaseURL: "https://example.com",
			Href:    "/favicon.png",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertMessageIDs(t, report.Messages, []model.MessageID{
			model.MsgDesktopDownloadable,
			model.MsgDesktopNotSquare,
		})
	})

	t.Run("invalid base url fails the check", func(t *testing.T) {
		t.Parallel()

		fetch := &fakeFetcher{}
		_, err := CheckDesktopFavicon(context.Background(), fetch, DesktopFaviconInput{
			BaseURL: "not a url",
			Href:    "/favicon.ico",
		})
		if err == nil {
			t.Fatal("expected an error for an invalid base URL")
		}
	})
}
