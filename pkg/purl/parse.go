// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package purl

import (
	"strings"

	"github.com/google/oss-purl/internal/urlx"
	"github.com/pkg/errors"
)

// Parser decomposes purl strings into raw, unvalidated PackageURL values.
// The zero value uses the standard percent-decoder; tests may substitute a
// faulty Codec.
type Parser struct {
	Codec urlx.Codec
}

// Parse decomposes s without applying ecosystem rules. Most callers want
// FromString, which also normalizes.
func Parse(s string) (PackageURL, error) {
	return Parser{}.Parse(s)
}

func (pr Parser) codec() urlx.Codec {
	if pr.Codec != nil {
		return pr.Codec
	}
	return urlx.Std{}
}

// Parse applies the purl grammar to s left to right: scheme, subpath,
// qualifiers, version, then the type/namespace/name path.
func (pr Parser) Parse(s string) (PackageURL, error) {
	dec := pr.codec()
	rest := s
	if len(rest) >= 4 && strings.EqualFold(rest[:4], "pkg:") {
		rest = rest[4:]
	} else if !plausiblePath(rest) {
		return PackageURL{}, errors.Wrapf(ErrInvalidScheme, "in %q", s)
	}
	// Tolerate accidental slashes after the scheme.
	rest = strings.TrimLeft(rest, "/")

	var p PackageURL
	if before, frag, ok := strings.Cut(rest, "#"); ok {
		rest = before
		segs, err := subpathSegments(frag, dec)
		if err != nil {
			return PackageURL{}, err
		}
		p.Subpath = strings.Join(segs, "/")
	}
	if before, query, ok := strings.Cut(rest, "?"); ok {
		rest = before
		quals, err := parseQualifiers(query, dec)
		if err != nil {
			return PackageURL{}, err
		}
		p.Qualifiers = quals
	}
	// The version separator is the last '@' of the path portion, which an
	// npm-style raw "@scope" namespace never is.
	if i := strings.LastIndexByte(rest, '@'); i >= 0 && i > strings.LastIndexByte(rest, '/') {
		version, err := dec.Unescape(rest[i+1:])
		if err != nil {
			return PackageURL{}, errors.Wrapf(ErrMalformedEncoding, "version %q", rest[i+1:])
		}
		p.Version = version
		rest = rest[:i]
	}

	segs := strings.Split(rest, "/")
	if len(segs) < 2 {
		return PackageURL{}, errors.Wrapf(ErrMissingName, "in %q", s)
	}
	p.Type = segs[0]
	name, err := dec.Unescape(segs[len(segs)-1])
	if err != nil {
		return PackageURL{}, errors.Wrapf(ErrMalformedEncoding, "name %q", segs[len(segs)-1])
	}
	if name == "" {
		return PackageURL{}, errors.Wrapf(ErrMissingName, "in %q", s)
	}
	p.Name = name
	var nsSegs []string
	for _, seg := range segs[1 : len(segs)-1] {
		// Consecutive slashes collapse to a segment boundary.
		if seg == "" {
			continue
		}
		d, err := dec.Unescape(seg)
		if err != nil {
			return PackageURL{}, errors.Wrapf(ErrMalformedEncoding, "namespace segment %q", seg)
		}
		nsSegs = append(nsSegs, d)
	}
	p.Namespace = strings.Join(nsSegs, "/")
	return p, nil
}

// plausiblePath reports whether a scheme-less input still reads as a purl
// path: a valid type token followed by a slash.
func plausiblePath(s string) bool {
	s = strings.TrimLeft(s, "/")
	i := strings.IndexByte(s, '/')
	if i <= 0 {
		return false
	}
	return validTypeToken(strings.ToLower(s[:i]))
}

// validTypeToken checks the type charset: ASCII letters, digits, '.', '+',
// '-', not starting with a digit.
func validTypeToken(t string) bool {
	if t == "" || (t[0] >= '0' && t[0] <= '9') {
		return false
	}
	for i := 0; i < len(t); i++ {
		switch c := t[i]; {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case c == '.', c == '+', c == '-':
		default:
			return false
		}
	}
	return true
}

func subpathSegments(frag string, dec urlx.Codec) ([]string, error) {
	var segs []string
	for _, seg := range strings.Split(frag, "/") {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		d, err := dec.Unescape(seg)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedEncoding, "subpath segment %q", seg)
		}
		// Traversal segments are stripped, encoded or not.
		if d == "." || d == ".." {
			continue
		}
		segs = append(segs, d)
	}
	return segs, nil
}

func parseQualifiers(query string, dec urlx.Codec) (map[string]string, error) {
	pairs := urlx.SplitQuery(query)
	if len(pairs) == 0 {
		return nil, nil
	}
	quals := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		k, err := dec.Unescape(kv[0])
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedQualifiers, "failed to parse as URL: key %q: %v", kv[0], err)
		}
		v, err := dec.Unescape(kv[1])
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedQualifiers, "failed to parse as URL: value of %q: %v", k, err)
		}
		k = strings.ToLower(k)
		if _, dup := quals[k]; dup {
			return nil, errors.Wrapf(ErrMalformedQualifiers, "duplicate key %q", k)
		}
		quals[k] = v
	}
	return quals, nil
}
