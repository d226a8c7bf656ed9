package storage

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"testing"
	"time"
)

func TestReportKey(t *testing.T) {
	at := time.Date(2026, 6, 14, 23, 30, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^reports/2026-06-14/[0-9a-f-]{36}\.json$`)

	first, second := ReportKey(at), ReportKey(at)
	if !pattern.MatchString(first) {
		t.Fatalf("ReportKey() = %q, want match for %s", first, pattern)
	}
	if first == second {
		t.Errorf("ReportKey() returned the same key twice: %q", first)
	}
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		key  string
		want string
	}{
		{"host only", "https://cdn.example.com/", "reports/a.json", "https://cdn.example.com/reports/a.json"},
		{"with path", "https://cdn.example.com/cup/", "reports/a.json", "https://cdn.example.com/cup/reports/a.json"},
		{"leading slash key", "https://cdn.example.com/cup/", "/reports/a.json", "https://cdn.example.com/cup/reports/a.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, err := url.Parse(tt.base)
			if err != nil {
				t.Fatal(err)
			}
			if got := publicURL(base, tt.key); got != tt.want {
				t.Errorf("publicURL(%q, %q) = %q, want %q", tt.base, tt.key, got, tt.want)
			}
		})
	}
}

func TestNewR2UploaderRejectsPartialConfig(t *testing.T) {
	cfg := R2Config{AccountID: "acc", BucketName: "bucket"}
	if !cfg.Enabled() {
		t.Fatal("Enabled() = false for a partially filled config")
	}
	if _, err := NewR2Uploader(context.Background(), cfg); !errors.Is(err, ErrR2ConfigIncomplete) {
		t.Fatalf("NewR2Uploader() error = %v, want %v", err, ErrR2ConfigIncomplete)
	}
	if (R2Config{}).Enabled() {
		t.Error("Enabled() = true for an empty config")
	}
}
