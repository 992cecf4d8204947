package model

import "time"

// DesktopFaviconReport holds the classified outcomes for the classic
// desktop favicon plus the page metadata that accompanies it.
type DesktopFaviconReport struct {
	// Messages are the checker messages in emission order.
	Messages []CheckerMessage `json:"messages"`

	// IconURL is the resolved favicon URL that was checked.
	// Empty when no favicon reference was declared.
	IconURL string `json:"icon_url,omitempty"`

	// AppTitle is the declared application title for the page.
	AppTitle string `json:"app_title,omitempty"`
}

// TouchIconReport holds the classified outcomes for the Apple touch icon.
type TouchIconReport struct {
	// Messages are the checker messages in emission order.
	Messages []CheckerMessage `json:"messages"`

	// IconURL is the resolved touch icon URL that was checked.
	IconURL string `json:"icon_url,omitempty"`
}

// WebManifestReport holds the classified outcomes for the web-app-manifest
// icons together with the manifest's declared presentation fields.
type WebManifestReport struct {
	// Messages are the checker messages in emission order.
	// When the manifest declares several icons, the messages for each
	// icon appear in declaration order.
	Messages []CheckerMessage `json:"messages"`

	// IconURL is the resolved URL of the first icon that produced a
	// classification output.
	IconURL string `json:"icon_url,omitempty"`

	// Name is the declared manifest name.
	Name string `json:"name,omitempty"`

	// ThemeColor is the declared theme color.
	ThemeColor string `json:"theme_color,omitempty"`

	// BackgroundColor is the declared background color.
	BackgroundColor string `json:"background_color,omitempty"`
}

// FaviconReport aggregates the three icon category sections for one site.
// There are no cross-section invariants; each section is independently
// valid even when the others are empty.
type FaviconReport struct {
	// BaseURL is the audited site's base document URL.
	BaseURL string `json:"base_url"`

	// AuditedAt is the timestamp when the audit was performed.
	AuditedAt time.Time `json:"audited_at"`

	// Desktop is the desktop favicon section.
	Desktop DesktopFaviconReport `json:"desktop_favicon"`

	// Touch is the Apple touch icon section.
	Touch TouchIconReport `json:"touch_icon"`

	// Manifest is the web-app-manifest section.
	Manifest WebManifestReport `json:"web_manifest"`

	// PerformedChecks lists the audit steps that actually ran.
	PerformedChecks []string `json:"performed_checks,omitempty"`

	// Error contains a fatal error that interrupted a check, if any.
	// Classification outcomes (404, wrong size) are never stored here;
	// they appear as messages in the sections.
	Error error `json:"-"` // Excluded from JSON

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewFaviconReport creates an empty report for the given base URL.
func NewFaviconReport(baseURL string) *FaviconReport {
	return &FaviconReport{
		BaseURL:   baseURL,
		AuditedAt: time.Now(),
	}
}

// sections returns the message sequences of all three sections.
// Concatenation order is fixed (desktop, touch, manifest) so that
// aggregate views are deterministic.
func (r *FaviconReport) sections() [][]CheckerMessage {
	return [][]CheckerMessage{
		r.Desktop.Messages,
		r.Touch.Messages,
		r.Manifest.Messages,
	}
}

// HasErrors reports whether any message across the three sections has
// StatusError. The check short-circuits on the first hit.
func (r *FaviconReport) HasErrors() bool {
	return r.hasStatus(StatusError)
}

// HasWarnings reports whether any message across the three sections has
// StatusWarning. The check short-circuits on the first hit.
func (r *FaviconReport) HasWarnings() bool {
	return r.hasStatus(StatusWarning)
}

func (r *FaviconReport) hasStatus(status Status) bool {
	for _, messages := range r.sections() {
		for _, m := range messages {
			if m.Status == status {
				return true
			}
		}
	}
	return false
}

// CountByStatus returns how many messages across all sections carry the
// given status. Used by the database layer to index stored reports.
func (r *FaviconReport) CountByStatus(status Status) int {
	count := 0
	for _, messages := range r.sections() {
		for _, m := range messages {
			if m.Status == status {
				count++
			}
		}
	}
	return count
}
