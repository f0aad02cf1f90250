// Package logging configures slog handlers for console and JSON output and
// provides the standardized attribute helpers used across slate.
package logging
