// Package log provides slog handlers tailored to iconaudit's output.
//
// Audit runs routinely log values that are enormous when printed as-is:
// base64 data URLs of fetched icons reach hundreds of kilobytes. The
// TruncatingHandler wraps any slog.Handler and caps oversized string
// attribute values before they reach the underlying handler, keeping
// log lines readable without losing which attribute was logged.
package log
