package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewAppliesLevel(t *testing.T) {
	log := New(Config{Level: "error", Format: "json"})

	if log.GetLevel() != zerolog.ErrorLevel {
		t.Fatalf("expected error level, got %v", log.GetLevel())
	}
}

func TestNewConsoleFormat(t *testing.T) {
	// Console format must still produce a usable logger.
	log := New(Config{Level: "debug", Format: "console"})

	if log.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %v", log.GetLevel())
	}
}
