package config

// SiteConfig holds the declared icon candidates for a single site.
// These are the upstream-produced references the audit classifies; the
// tool never discovers them by parsing HTML or manifest documents.
type SiteConfig struct {
	// Favicon is the declared desktop favicon candidate.
	Favicon IconCandidate `yaml:"favicon,omitempty"`

	// AppTitle is the declared application title for the page.
	AppTitle string `yaml:"appTitle,omitempty"`

	// TouchIcon is the declared Apple touch icon candidate.
	TouchIcon IconCandidate `yaml:"touchIcon,omitempty"`

	// TouchIconSize overrides the expected touch icon edge length.
	// Zero means the built-in default.
	TouchIconSize int `yaml:"touchIconSize,omitempty"`

	// Manifest holds the web-app-manifest declarations.
	Manifest ManifestConfig `yaml:"manifest,omitempty"`

	// Headers are custom HTTP headers to include in requests to this site.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// IconCandidate is one declared icon reference with its attributes.
type IconCandidate struct {
	// Href is the icon reference, absolute or relative to the site.
	Href string `yaml:"href,omitempty"`

	// Sizes is the declared sizes attribute, e.g. "48x48".
	Sizes string `yaml:"sizes,omitempty"`

	// Type is the declared media type, e.g. "image/png".
	Type string `yaml:"type,omitempty"`
}

// ManifestIcon is one declared web-app-manifest icon entry. Manifest
// icons use "src" rather than "href", matching the manifest member the
// declaration came from.
type ManifestIcon struct {
	// Src is the icon reference, absolute or relative to the site.
	Src string `yaml:"src,omitempty"`

	// Sizes is the declared sizes attribute, e.g. "192x192".
	Sizes string `yaml:"sizes,omitempty"`

	// Type is the declared media type, e.g. "image/png".
	Type string `yaml:"type,omitempty"`
}

// ManifestConfig holds the declared web-app-manifest fields.
type ManifestConfig struct {
	// Name is the declared manifest name.
	Name string `yaml:"name,omitempty"`

	// ThemeColor is the declared theme color.
	ThemeColor string `yaml:"themeColor,omitempty"`

	// BackgroundColor is the declared background color.
	BackgroundColor string `yaml:"backgroundColor,omitempty"`

	// Icons are the declared icon entries in declaration order.
	Icons []ManifestIcon `yaml:"icons,omitempty"`
}

// File represents the structure of the .iconaudit configuration file.
type File struct {
	// Sites maps base document URLs to their declared candidates.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults contains settings applied to all sites unless overridden
	// in the site-specific entry.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the candidate set for a base URL, merged over
// the defaults.
func (cf *File) GetSiteConfig(baseURL string) SiteConfig {
	result := cf.Defaults

	siteConfig, ok := cf.Sites[baseURL]
	if !ok {
		return result
	}

	if siteConfig.Favicon.Href != "" {
		result.Favicon = siteConfig.Favicon
	}
	if siteConfig.AppTitle != "" {
		result.AppTitle = siteConfig.AppTitle
	}
	if siteConfig.TouchIcon.Href != "" {
		result.TouchIcon = siteConfig.TouchIcon
	}
	if siteConfig.TouchIconSize != 0 {
		result.TouchIconSize = siteConfig.TouchIconSize
	}
	if siteConfig.Manifest.Name != "" || len(siteConfig.Manifest.Icons) > 0 {
		result.Manifest = siteConfig.Manifest
	}
	if len(siteConfig.Headers) > 0 {
		// Copy before merging so the shared defaults map is never mutated.
		merged := make(map[string]string, len(result.Headers)+len(siteConfig.Headers))
		for k, v := range result.Headers {
			merged[k] = v
		}
		for k, v := range siteConfig.Headers {
			merged[k] = v
		}
		result.Headers = merged
	}

	return result
}
