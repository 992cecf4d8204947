package checker

import (
	"context"
	"fmt"

	"github.com/nao1215/iconaudit/internal/fetcher"
	"github.com/nao1215/iconaudit/internal/model"
)

// DefaultTouchIconSize is the expected edge length for Apple touch
// icons. 180 is the size current iOS devices request; smaller legacy
// sizes are upscaled by the device and look blurry.
const DefaultTouchIconSize = 180

// TouchIconInput is the candidate set for the Apple touch icon check.
type TouchIconInput struct {
	// BaseURL is the document URL the href is resolved against.
	BaseURL string

	// Href is the declared touch icon reference.
	Href string

	// Sizes is the declared sizes attribute, if any. When it parses to
	// a square size, that size takes priority over ExpectedSize.
	Sizes string

	// ExpectedSize is the required edge length. Zero means
	// DefaultTouchIconSize.
	ExpectedSize int
}

// CheckTouchIcon classifies the Apple touch icon candidate into a
// report section.
func CheckTouchIcon(ctx context.Context, fetch fetcher.Fetcher, input TouchIconInput) (*model.TouchIconReport, error) {
	report := &model.TouchIconReport{
		Messages: make([]model.CheckerMessage, 0),
	}

	iconURL := ""
	if input.Href != "" {
		resolved, err := ResolveReference(input.BaseURL, input.Href)
		if err != nil {
			return nil, err
		}
		iconURL = resolved
	}

	expected := ParseSizeAttribute(input.Sizes)
	if expected == 0 {
		expected = input.ExpectedSize
	}
	if expected == 0 {
		expected = DefaultTouchIconSize
	}

	observer := &touchObserver{report: report}
	output, err := Classify(ctx, iconURL, observer, fetch, "", expected)
	if err != nil {
		return nil, err
	}

	if output != nil {
		report.IconURL = output.URL
		if msg, ok := exifMessage(output, model.MsgTouchIconEXIFMetadata); ok {
			report.Messages = append(report.Messages, msg)
		}
	}
	return report, nil
}

// touchObserver maps the generic classification events onto touch-icon
// message ids.
type touchObserver struct {
	report *model.TouchIconReport
}

func (o *touchObserver) append(id model.MessageID, text string) {
	o.report.Messages = append(o.report.Messages, model.NewMessage(id, text))
}

func (o *touchObserver) NoHref() {
	o.append(model.MsgTouchIconNoHref, "No Apple touch icon is declared for the page.")
}

func (o *touchObserver) Icon404() {
	o.append(model.MsgTouchIcon404, "The touch icon was not found (404).")
}

func (o *touchObserver) CannotGet(statusCode int) {
	o.append(model.MsgTouchIconCannotGet, fmt.Sprintf("The touch icon cannot be downloaded (HTTP %d).", statusCode))
}

func (o *touchObserver) Downloadable() {
	o.append(model.MsgTouchIconDownloadable, "The touch icon is downloadable.")
}

func (o *touchObserver) Square(size int) {
	o.append(model.MsgTouchIconSquare, fmt.Sprintf("The touch icon is square (%dx%d).", size, size))
}

func (o *touchObserver) NotSquare(width, height int) {
	o.append(model.MsgTouchIconNotSquare, fmt.Sprintf("The touch icon is %dx%d; touch icons must be square.", width, height))
}

func (o *touchObserver) RightSize(size int) {
	o.append(model.MsgTouchIconRightSize, fmt.Sprintf("The touch icon has the expected size (%dx%d).", size, size))
}

func (o *touchObserver) WrongSize(size int) {
	o.append(model.MsgTouchIconWrongSize, fmt.Sprintf("The touch icon is %dx%d instead of the expected size.", size, size))
}
