package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/mail"
	"os"
	"strings"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyStage    = "stage"
	KeyStatus   = "status"
	KeyError    = "error"
	KeyDuration = "duration"
	KeyCount    = "count"
)

// Pipeline stage names used as the stage attribute value.
const (
	StageAuth    = "auth"
	StageFetch   = "fetch"
	StageScore   = "score"
	StagePublish = "publish"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// Setup installs a text handler writing to stderr as the default logger.
// Debug mode lowers the level so per-message details become visible.
func Setup(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// WithStage returns a logger with the stage attribute set.
func WithStage(logger *slog.Logger, stage string) *slog.Logger {
	return logger.With(slog.String(KeyStage, stage))
}

// Stage returns a slog attribute for the pipeline stage.
func Stage(stage string) slog.Attr {
	return slog.String(KeyStage, stage)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Count returns a slog attribute for an item count.
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from
// output, so Err(maybeNilErr) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeEmail returns a hashed representation of an email address for
// logging purposes. This allows correlating log entries without exposing PII.
func AnonymizeEmail(email string) string {
	if email == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(email))
	return "user:" + hex.EncodeToString(hash[:8])
}

// ExtractDomain extracts the domain part from an email address. Useful for
// lower-cardinality logging where the full address would expose PII.
// Accepts both bare addresses and RFC 5322 "Name <addr>" From headers.
func ExtractDomain(email string) string {
	if email == "" {
		return ""
	}
	if addr, err := mail.ParseAddress(email); err == nil {
		email = addr.Address
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// SenderDomain returns a slog attribute for the sender's domain.
func SenderDomain(email string) slog.Attr {
	return slog.String("sender_domain", ExtractDomain(email))
}
