package styles

import (
	"strings"
	"testing"
)

func TestVerdictColor(t *testing.T) {
	tests := []struct {
		verdict  string
		expected string // Expected color hex value
	}{
		{"pass", "#10B981"},
		{"fail", "#F87171"},
		{"aborted", "#FB923C"},
		{"stopped", "#FBBF24"},
		{"running", "#60A5FA"},
		{"unknown", "#9CA3AF"}, // Should fall back to MutedColor
	}

	for _, tt := range tests {
		t.Run(tt.verdict, func(t *testing.T) {
			got := VerdictColor(tt.verdict)
			if string(got) != tt.expected {
				t.Errorf("VerdictColor(%q) = %q, want %q", tt.verdict, got, tt.expected)
			}
		})
	}
}

func TestVerdictIcon(t *testing.T) {
	tests := []struct {
		verdict  string
		expected string
	}{
		{"pass", "✓"},
		{"fail", "✗"},
		{"aborted", "⚠"},
		{"stopped", "■"},
		{"running", "●"},
		{"unknown", "○"},
	}

	for _, tt := range tests {
		t.Run(tt.verdict, func(t *testing.T) {
			if got := VerdictIcon(tt.verdict); got != tt.expected {
				t.Errorf("VerdictIcon(%q) = %q, want %q", tt.verdict, got, tt.expected)
			}
		})
	}
}

func TestBadge(t *testing.T) {
	got := Badge("pass")
	if !strings.Contains(got, "pass") || !strings.Contains(got, "✓") {
		t.Errorf("Badge(pass) = %q, want icon and verdict", got)
	}
}
