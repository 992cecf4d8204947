// Package pipeline orchestrates the icon audit steps for one site and
// fans audits out over multiple sites.
//
// Each icon category (desktop favicon, touch icon, manifest icons) is a
// Step; a Pipeline runs the steps in order against a shared report.
// BatchProcessor runs whole-site pipelines concurrently with a bounded
// errgroup.
package pipeline
