// Package report serializes audit results for downstream tooling.
//
// Rendering a human-facing report is out of scope for iconaudit; the
// only built-in format is JSON, intended for CI pipelines and other
// programs. The Writer interface keeps the door open for additional
// machine formats without touching callers.
package report
