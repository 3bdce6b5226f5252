package main

import (
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		raw     string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"-4", slog.LevelDebug, false},
		{"bogus", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			level, err := parseLogLevel(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse %q: %v", tt.raw, err)
			}
			if level != tt.want {
				t.Fatalf("expected level %v, got %v", tt.want, level)
			}
		})
	}
}

func TestSelectedLogLevel(t *testing.T) {
	tests := []struct {
		name       string
		flag       string
		env        string
		config     string
		wantLevel  string
		wantSource string
	}{
		{"flag wins", "debug", "warn", "error", "debug", "flag"},
		{"env beats config", "", "warn", "error", "warn", "env"},
		{"config fallback", "", "", "error", "error", "config"},
		{"default", "", "", "", "", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, source := selectedLogLevel(tt.flag, tt.env, tt.config)
			if level != tt.wantLevel || source != tt.wantSource {
				t.Fatalf("expected (%q, %q), got (%q, %q)", tt.wantLevel, tt.wantSource, level, source)
			}
		})
	}
}
