package checker

import (
	"context"
	"fmt"

	"github.com/nao1215/iconaudit/internal/fetcher"
	"github.com/nao1215/iconaudit/internal/model"
)

// DesktopFaviconInput is the candidate set for the desktop favicon
// check, produced upstream (CLI flags or the config file).
type DesktopFaviconInput struct {
	// BaseURL is the document URL the href is resolved against.
	BaseURL string

	// Href is the declared favicon reference. Empty means the page
	// declared no favicon.
	Href string

	// DeclaredType is the declared type attribute, if any.
	DeclaredType string

	// Sizes is the declared sizes attribute, if any.
	Sizes string

	// AppTitle is the declared application title, carried into the
	// report section unchanged.
	AppTitle string
}

// CheckDesktopFavicon classifies the desktop favicon candidate into a
// report section. Classification outcomes become messages; only
// infrastructure failures (unparsable base URL, body drain or decode
// errors) are returned.
func CheckDesktopFavicon(ctx context.Context, fetch fetcher.Fetcher, input DesktopFaviconInput) (*model.DesktopFaviconReport, error) {
	report := &model.DesktopFaviconReport{
		Messages: make([]model.CheckerMessage, 0),
		AppTitle: input.AppTitle,
	}

	iconURL := ""
	if input.Href != "" {
		resolved, err := ResolveReference(input.BaseURL, input.Href)
		if err != nil {
			return nil, err
		}
		iconURL = resolved
	}

	observer := &desktopObserver{report: report}
	output, err := Classify(ctx, iconURL, observer, fetch, input.DeclaredType, ParseSizeAttribute(input.Sizes))
	if err != nil {
		return nil, err
	}

	if output != nil {
		report.IconURL = output.URL
		if msg, ok := exifMessage(output, model.MsgDesktopEXIFMetadata); ok {
			report.Messages = append(report.Messages, msg)
		}
	}
	return report, nil
}

// desktopObserver maps the generic classification events onto
// desktop-favicon message ids.
type desktopObserver struct {
	report *model.DesktopFaviconReport
}

func (o *desktopObserver) append(id model.MessageID, text string) {
	o.report.Messages = append(o.report.Messages, model.NewMessage(id, text))
}

func (o *desktopObserver) NoHref() {
	o.append(model.MsgDesktopNoHref, "No favicon is declared for the page.")
}

func (o *desktopObserver) Icon404() {
	o.append(model.MsgDesktop404, "The favicon was not found (404).")
}

func (o *desktopObserver) CannotGet(statusCode int) {
	o.append(model.MsgDesktopCannotGet, fmt.Sprintf("The favicon cannot be downloaded (HTTP %d).", statusCode))
}

func (o *desktopObserver) Downloadable() {
	o.append(model.MsgDesktopDownloadable, "The favicon is downloadable.")
}

func (o *desktopObserver) Square(size int) {
	o.append(model.MsgDesktopSquare, fmt.Sprintf("The favicon is square (%dx%d).", size, size))
}

func (o *desktopObserver) NotSquare(width, height int) {
	o.append(model.MsgDesktopNotSquare, fmt.Sprintf("The favicon is %dx%d; favicons must be square.", width, height))
}

func (o *desktopObserver) RightSize(size int) {
	o.append(model.MsgDesktopRightSize, fmt.Sprintf("The favicon has its declared size (%dx%d).", size, size))
}

func (o *desktopObserver) WrongSize(size int) {
	o.append(model.MsgDesktopWrongSize, fmt.Sprintf("The favicon is %dx%d, which differs from its declared size.", size, size))
}
