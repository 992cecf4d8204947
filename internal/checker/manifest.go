package checker

import (
	"context"
	"fmt"

	"github.com/nao1215/iconaudit/internal/fetcher"
	"github.com/nao1215/iconaudit/internal/model"
)

// ManifestIconInput is one declared icon entry from a web app manifest.
type ManifestIconInput struct {
	// Src is the icon reference, resolved against the base URL.
	Src string

	// Sizes is the declared sizes attribute, if any.
	Sizes string

	// Type is the declared media type, if any.
	Type string
}

// ManifestInput is the candidate set for the web-app-manifest check.
// The manifest document itself is parsed upstream; this check only
// audits the declared icon entries and carries the presentation fields
// into the report.
type ManifestInput struct {
	// BaseURL is the document URL icon references are resolved against.
	BaseURL string

	// Name is the declared manifest name.
	Name string

	// ThemeColor is the declared theme color.
	ThemeColor string

	// BackgroundColor is the declared background color.
	BackgroundColor string

	// Icons are the declared icon entries in declaration order.
	Icons []ManifestIconInput
}

// CheckManifestIcons classifies every declared manifest icon, in
// declaration order, into a single report section. An empty icon list
// is treated like a missing reference: the NoHref outcome is emitted
// once for the section.
//
// Each icon's expected size comes from its own declared sizes
// attribute; manifests routinely declare several sizes of the same
// artwork, so there is no single section-wide expectation.
func CheckManifestIcons(ctx context.Context, fetch fetcher.Fetcher, input ManifestInput) (*model.WebManifestReport, error) {
	report := &model.WebManifestReport{
		Messages:        make([]model.CheckerMessage, 0),
		Name:            input.Name,
		ThemeColor:      input.ThemeColor,
		BackgroundColor: input.BackgroundColor,
	}

	observer := &manifestObserver{report: report}

	if len(input.Icons) == 0 {
		observer.NoHref()
		return report, nil
	}

	for _, icon := range input.Icons {
		iconURL := ""
		if icon.Src != "" {
			resolved, err := ResolveReference(input.BaseURL, icon.Src)
			if err != nil {
				return nil, err
			}
			iconURL = resolved
		}

		output, err := Classify(ctx, iconURL, observer, fetch, icon.Type, ParseSizeAttribute(icon.Sizes))
		if err != nil {
			return nil, err
		}

		if output != nil {
			if report.IconURL == "" {
				report.IconURL = output.URL
			}
			if msg, ok := exifMessage(output, model.MsgManifestIconEXIFMetadata); ok {
				report.Messages = append(report.Messages, msg)
			}
		}
	}
	return report, nil
}

// manifestObserver maps the generic classification events onto
// manifest-icon message ids.
type manifestObserver struct {
	report *model.WebManifestReport
}

func (o *manifestObserver) append(id model.MessageID, text string) {
	o.report.Messages = append(o.report.Messages, model.NewMessage(id, text))
}

func (o *manifestObserver) NoHref() {
	o.append(model.MsgManifestIconNoHref, "The web app manifest declares no icons.")
}

func (o *manifestObserver) Icon404() {
	o.append(model.MsgManifestIcon404, "A manifest icon was not found (404).")
}

func (o *manifestObserver) CannotGet(statusCode int) {
	o.append(model.MsgManifestIconCannotGet, fmt.Sprintf("A manifest icon cannot be downloaded (HTTP %d).", statusCode))
}

func (o *manifestObserver) Downloadable() {
	o.append(model.MsgManifestIconDownloadable, "The manifest icon is downloadable.")
}

func (o *manifestObserver) Square(size int) {
	o.append(model.MsgManifestIconSquare, fmt.Sprintf("The manifest icon is square (%dx%d).", size, size))
}

func (o *manifestObserver) NotSquare(width, height int) {
	o.append(model.MsgManifestIconNotSquare, fmt.Sprintf("The manifest icon is %dx%d; manifest icons must be square.", width, height))
}

func (o *manifestObserver) RightSize(size int) {
	o.append(model.MsgManifestIconRightSize, fmt.Sprintf("The manifest icon matches its declared size (%dx%d).", size, size))
}

func (o *manifestObserver) WrongSize(size int) {
	o.append(model.MsgManifestIconWrongSize, fmt.Sprintf("The manifest icon is %dx%d, which differs from its declared size.", size, size))
}
