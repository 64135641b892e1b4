package logging

import (
	"errors"
	"log/slog"
	"testing"
)

func TestWithStage(t *testing.T) {
	logger := slog.Default()
	result := WithStage(logger, StageFetch)
	if result == nil {
		t.Error("WithStage returned nil")
	}
}

func TestStageAttr(t *testing.T) {
	attr := Stage(StageScore)
	if attr.Key != KeyStage {
		t.Errorf("Stage key = %q, want %q", attr.Key, KeyStage)
	}
	if attr.Value.String() != StageScore {
		t.Errorf("Stage value = %q, want %q", attr.Value.String(), StageScore)
	}
}

func TestStatusAttr(t *testing.T) {
	attr := Status(StatusSuccess)
	if attr.Key != KeyStatus {
		t.Errorf("Status key = %q, want %q", attr.Key, KeyStatus)
	}
	if attr.Value.String() != StatusSuccess {
		t.Errorf("Status value = %q, want %q", attr.Value.String(), StatusSuccess)
	}
}

func TestCountAttr(t *testing.T) {
	attr := Count(7)
	if attr.Key != KeyCount {
		t.Errorf("Count key = %q, want %q", attr.Key, KeyCount)
	}
	if attr.Value.Int64() != 7 {
		t.Errorf("Count value = %d, want 7", attr.Value.Int64())
	}
}

func TestErr(t *testing.T) {
	// Test with error
	err := errors.New("test error")
	attr := Err(err)
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "test error" {
		t.Errorf("Err value = %q, want %q", attr.Value.String(), "test error")
	}

	// Test with nil - should return an empty group that slog will omit
	attr = Err(nil)
	if attr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty string (empty group)", attr.Key)
	}
}

func TestAnonymizeEmail(t *testing.T) {
	tests := []struct {
		email    string
		wantLen  int
		hasValue bool
	}{
		{"jane@example.com", 21, true}, // "user:" + 16 hex chars
		{"user@gmail.com", 21, true},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			result := AnonymizeEmail(tt.email)
			if tt.hasValue {
				if len(result) != tt.wantLen {
					t.Errorf("AnonymizeEmail(%q) length = %d, want %d", tt.email, len(result), tt.wantLen)
				}
				if result[:5] != "user:" {
					t.Errorf("AnonymizeEmail(%q) should start with 'user:', got %q", tt.email, result)
				}
			} else if result != "" {
				t.Errorf("AnonymizeEmail(%q) = %q, want empty string", tt.email, result)
			}
		})
	}

	// Deterministic hashing
	if AnonymizeEmail("test@example.com") != AnonymizeEmail("test@example.com") {
		t.Error("AnonymizeEmail should return deterministic results")
	}
	if AnonymizeEmail("test@example.com") == AnonymizeEmail("other@example.com") {
		t.Error("Different emails should produce different hashes")
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{"jane@example.com", "example.com"},
		{"Alerts <noreply@github.com>", "github.com"},
		{"invalid", ""},
		{"", ""},
		{"@", ""},
		{"user@", ""},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			result := ExtractDomain(tt.email)
			if result != tt.expected {
				t.Errorf("ExtractDomain(%q) = %q, want %q", tt.email, result, tt.expected)
			}
		})
	}
}

func TestSenderDomain(t *testing.T) {
	attr := SenderDomain("jane@example.com")
	if attr.Key != "sender_domain" {
		t.Errorf("SenderDomain key = %q, want %q", attr.Key, "sender_domain")
	}
	if attr.Value.String() != "example.com" {
		t.Errorf("SenderDomain value = %q, want %q", attr.Value.String(), "example.com")
	}
}

func TestSetup(t *testing.T) {
	logger := Setup(true)
	if logger == nil {
		t.Fatal("Setup returned nil")
	}
	if slog.Default() != logger {
		t.Error("Setup should install the returned logger as default")
	}
}
