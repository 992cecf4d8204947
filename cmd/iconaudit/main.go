// Package main provides the entry point for the iconaudit CLI.
//
// iconaudit audits a website's icon assets (desktop favicon, Apple
// touch icon, web-app-manifest icons): it fetches each declared icon,
// inspects its image metadata, and classifies the outcome into a
// severity-tagged JSON report.
//
// Usage:
//
//	iconaudit audit <base-url>
//	iconaudit compare <base-url>
//
// See --help for all available options.
package main

// main is the entry point for iconaudit.
func main() {
	Execute()
}
