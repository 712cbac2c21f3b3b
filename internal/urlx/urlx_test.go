// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package urlx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		input    string
		pos      Position
		expected string
	}{
		{"runtime", Segment, "runtime"},                    // Unreserved passthrough
		{"@babel", Segment, "%40babel"},                    // Scope marker
		{"sha256:abc", Segment, "sha256%3Aabc"},            // Colon escaped in segments
		{"sha256:abc", Query, "sha256:abc"},                // Colon kept in query values
		{"https://github.com/x", Query, "https://github.com/x"},
		{"a b", Segment, "a%20b"},                          // Space
		{"1.0.0+build", Segment, "1.0.0%2Bbuild"},          // Plus is not unreserved
		{"", Segment, ""},                                  // Empty string
		{"~user_name-1.0", Segment, "~user_name-1.0"},      // Full unreserved alphabet
	}
	for _, tt := range tests {
		if got := Escape(tt.input, tt.pos); got != tt.expected {
			t.Errorf("Escape(%q, %d) = %q, expected %q", tt.input, tt.pos, got, tt.expected)
		}
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"%40babel", "@babel", false},
		{"runtime", "runtime", false},
		{"a%20b", "a b", false},
		{"1.0.0%2Bbuild", "1.0.0+build", false},
		{"a+b", "a+b", false}, // '+' is literal, not space
		{"%zz", "", true},     // Invalid hex
		{"%4", "", true},      // Truncated escape
	}
	for _, tt := range tests {
		got, err := Unescape(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("Unescape(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.expected {
			t.Errorf("Unescape(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	for _, s := range []string{"@babel", "a b c", "sha256:abc/def", "100%", "x=y&z", "#frag?q"} {
		for _, pos := range []Position{Segment, Query} {
			got, err := Unescape(Escape(s, pos))
			if err != nil {
				t.Errorf("Unescape(Escape(%q, %d)) error: %v", s, pos, err)
				continue
			}
			if got != s {
				t.Errorf("Unescape(Escape(%q, %d)) = %q", s, pos, got)
			}
		}
	}
}

func TestSplitQuery(t *testing.T) {
	tests := []struct {
		input    string
		expected [][2]string
	}{
		{"a=1&b=2", [][2]string{{"a", "1"}, {"b", "2"}}},
		{"a=1", [][2]string{{"a", "1"}}},
		{"bare", [][2]string{{"bare", ""}}},                       // Bare key
		{"a=1&&b=2", [][2]string{{"a", "1"}, {"b", "2"}}},         // Empty pair skipped
		{"a=x=y", [][2]string{{"a", "x=y"}}},                      // Split on first '=' only
		{"", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.expected, SplitQuery(tt.input)); diff != "" {
			t.Errorf("SplitQuery(%q) diff (-want +got):\n%s", tt.input, diff)
		}
	}
}
