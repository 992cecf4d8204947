package pipeline

import (
	"context"

	"github.com/nao1215/iconaudit/internal/checker"
	"github.com/nao1215/iconaudit/internal/fetcher"
	"github.com/nao1215/iconaudit/internal/model"
)

// DesktopFaviconStep audits the classic desktop favicon.
type DesktopFaviconStep struct {
	fetch fetcher.Fetcher
	input checker.DesktopFaviconInput
}

// NewDesktopFaviconStep creates the desktop favicon step.
func NewDesktopFaviconStep(fetch fetcher.Fetcher, input checker.DesktopFaviconInput) *DesktopFaviconStep {
	return &DesktopFaviconStep{fetch: fetch, input: input}
}

// Name returns the step name.
func (s *DesktopFaviconStep) Name() string { return "desktop-favicon" }

// Do runs the desktop favicon check and stores the section.
func (s *DesktopFaviconStep) Do(ctx context.Context, report *model.FaviconReport) error {
	section, err := checker.CheckDesktopFavicon(ctx, s.fetch, s.input)
	if err != nil {
		return err
	}
	report.Desktop = *section
	return nil
}

// TouchIconStep audits the Apple touch icon.
type TouchIconStep struct {
	fetch fetcher.Fetcher
	input checker.TouchIconInput
}

// NewTouchIconStep creates the touch icon step.
func NewTouchIconStep(fetch fetcher.Fetcher, input checker.TouchIconInput) *TouchIconStep {
	return &TouchIconStep{fetch: fetch, input: input}
}

// Name returns the step name.
func (s *TouchIconStep) Name() string { return "touch-icon" }

// Do runs the touch icon check and stores the section.
func (s *TouchIconStep) Do(ctx context.Context, report *model.FaviconReport) error {
	section, err := checker.CheckTouchIcon(ctx, s.fetch, s.input)
	if err != nil {
		return err
	}
	report.Touch = *section
	return nil
}

// ManifestIconsStep audits the web-app-manifest icons.
type ManifestIconsStep struct {
	fetch fetcher.Fetcher
	input checker.ManifestInput
}

// NewManifestIconsStep creates the manifest icons step.
func NewManifestIconsStep(fetch fetcher.Fetcher, input checker.ManifestInput) *ManifestIconsStep {
	return &ManifestIconsStep{fetch: fetch, input: input}
}

// Name returns the step name.
func (s *ManifestIconsStep) Name() string { return "manifest-icons" }

// Do runs the manifest icons check and stores the section.
func (s *ManifestIconsStep) Do(ctx context.Context, report *model.FaviconReport) error {
	section, err := checker.CheckManifestIcons(ctx, s.fetch, s.input)
	if err != nil {
		return err
	}
	report.Manifest = *section
	return nil
}
