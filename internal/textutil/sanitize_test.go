package textutil_test

import (
	"testing"

	"lepa/internal/textutil"
)

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"whitespace collapses to dashes", "igal igal  sea dance.mp3", "igal-igal-sea-dance.mp3"},
		{"unsafe characters removed", `lullaby?<>|.mp3`, "lullaby.mp3"},
		{"slashes become dashes", "music/track.mp3", "music-track.mp3"},
		{"tabs and newlines", "a\tb\nc.ogg", "a-b-c.ogg"},
		{"empty input", "   ", "file"},
		{"only unsafe characters", `?<>|`, "file"},
		{"already clean", "kulintangan.mp3", "kulintangan.mp3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := textutil.SanitizeFileName(tc.input); got != tc.expected {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}
