// Package logging provides slog helpers with consistent attribute naming
// for the digest pipeline stages, plus PII-safe helpers for logging about
// email senders.
package logging
