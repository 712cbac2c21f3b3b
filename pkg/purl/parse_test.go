// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package purl

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected PackageURL
		wantErr  error
	}{
		{
			name:     "simple",
			input:    "pkg:npm/lodash@4.17.21",
			expected: PackageURL{Type: "npm", Name: "lodash", Version: "4.17.21"},
		},
		{
			name:     "scoped namespace",
			input:    "pkg:npm/%40babel/runtime@7.18.6",
			expected: PackageURL{Type: "npm", Namespace: "@babel", Name: "runtime", Version: "7.18.6"},
		},
		{
			name:     "raw at-sign namespace",
			input:    "pkg:npm/@babel/runtime",
			expected: PackageURL{Type: "npm", Namespace: "@babel", Name: "runtime"},
		},
		{
			name:     "uppercase scheme",
			input:    "PKG:npm/lodash",
			expected: PackageURL{Type: "npm", Name: "lodash"},
		},
		{
			name:     "extra slashes after scheme",
			input:    "pkg://npm/lodash",
			expected: PackageURL{Type: "npm", Name: "lodash"},
		},
		{
			name:     "schemeless but plausible",
			input:    "npm/lodash@4.17.21",
			expected: PackageURL{Type: "npm", Name: "lodash", Version: "4.17.21"},
		},
		{
			name:  "multi-segment namespace",
			input: "pkg:golang/github.com/google/go-cmp@v0.7.0",
			expected: PackageURL{
				Type: "golang", Namespace: "github.com/google", Name: "go-cmp", Version: "v0.7.0",
			},
		},
		{
			name:  "consecutive slashes collapse",
			input: "pkg:golang/github.com//google//go-cmp",
			expected: PackageURL{
				Type: "golang", Namespace: "github.com/google", Name: "go-cmp",
			},
		},
		{
			name:  "qualifiers and subpath",
			input: "pkg:deb/debian/curl@7.50.3-1?arch=i386&distro=jessie#usr/bin",
			expected: PackageURL{
				Type: "deb", Namespace: "debian", Name: "curl", Version: "7.50.3-1",
				Qualifiers: map[string]string{"arch": "i386", "distro": "jessie"},
				Subpath:    "usr/bin",
			},
		},
		{
			name:  "bare qualifier key defaults to empty value",
			input: "pkg:npm/x?checked",
			expected: PackageURL{
				Type: "npm", Name: "x",
				Qualifiers: map[string]string{"checked": ""},
			},
		},
		{
			name:  "encoded version",
			input: "pkg:docker/cassandra@sha256%3A244fd47e07d1",
			expected: PackageURL{
				Type: "docker", Name: "cassandra", Version: "sha256:244fd47e07d1",
			},
		},
		{
			name:  "traversal subpath segments stripped",
			input: "pkg:npm/x#../../etc/passwd",
			expected: PackageURL{
				Type: "npm", Name: "x", Subpath: "etc/passwd",
			},
		},
		{
			name:  "encoded traversal stripped",
			input: "pkg:npm/x#%2E%2E/etc",
			expected: PackageURL{
				Type: "npm", Name: "x", Subpath: "etc",
			},
		},
		{
			name:  "case preserved before normalization",
			input: "pkg:NPM/Lodash",
			expected: PackageURL{
				Type: "NPM", Name: "Lodash",
			},
		},
		{name: "type only", input: "pkg:npm", wantErr: ErrMissingName},
		{name: "empty name", input: "pkg:npm/", wantErr: ErrMissingName},
		{name: "scheme only", input: "pkg:", wantErr: ErrMissingName},
		{name: "no scheme no path", input: "lodash", wantErr: ErrInvalidScheme},
		{name: "url not a purl", input: "http://example.com/foo", wantErr: ErrInvalidScheme},
		{name: "empty input", input: "", wantErr: ErrInvalidScheme},
		{name: "bad escape in name", input: "pkg:npm/%zz", wantErr: ErrMalformedEncoding},
		{name: "bad escape in version", input: "pkg:npm/x@1.0%", wantErr: ErrMalformedEncoding},
		{name: "duplicate qualifier key", input: "pkg:npm/x?a=1&A=2", wantErr: ErrMalformedQualifiers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				if !IsParseError(err) {
					t.Errorf("Parse(%q) error %v not classified as parse error", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Parse(%q) diff (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

// faultyCodec simulates an internal fault in the URL-parsing facility.
type faultyCodec struct{}

func (faultyCodec) Unescape(string) (string, error) {
	return "", errors.New("simulated decoder fault")
}

func TestParseCodecFault(t *testing.T) {
	p := Parser{Codec: faultyCodec{}}
	_, err := p.Parse("pkg:npm/x?a=b")
	if !errors.Is(err, ErrMalformedQualifiers) {
		t.Fatalf("Parse() error = %v, want ErrMalformedQualifiers", err)
	}
	if !strings.Contains(err.Error(), "failed to parse as URL") {
		t.Errorf("Parse() error %q does not identify a URL-parsing fault", err)
	}
}

func TestParseCodecFaultOutsideQualifiers(t *testing.T) {
	p := Parser{Codec: faultyCodec{}}
	_, err := p.Parse("pkg:npm/lodash")
	if !errors.Is(err, ErrMalformedEncoding) {
		t.Fatalf("Parse() error = %v, want ErrMalformedEncoding", err)
	}
}
