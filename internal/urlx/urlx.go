// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package urlx provides the percent-encoding primitives for the purl grammar.
package urlx

import (
	"net/url"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// Position selects the encoding alphabet for a grammar position.
type Position int

const (
	// Segment covers namespace, name, version, and subpath segments.
	Segment Position = iota
	// Query covers qualifier values.
	Query
)

// shouldEscape reports whether c must be percent-encoded at the given
// position. The unescaped set is the RFC 3986 unreserved characters; query
// values additionally admit ':' and '/', which are common in checksum and
// repository_url qualifiers and carry no meaning there.
func shouldEscape(c byte, pos Position) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return false
	case c == '-', c == '.', c == '_', c == '~':
		return false
	}
	if pos == Query && (c == ':' || c == '/') {
		return false
	}
	return true
}

// Escape percent-encodes s for the given grammar position.
func Escape(s string, pos Position) string {
	var hexCount int
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i], pos) {
			hexCount++
		}
	}
	if hexCount == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2*hexCount)
	for i := 0; i < len(s); i++ {
		if c := s[i]; shouldEscape(c, pos) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0xf])
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Unescape reverses percent-encoding. Unlike query unescaping, '+' stays
// literal: the purl grammar has no form-encoded positions.
func Unescape(s string) (string, error) {
	return url.PathUnescape(s)
}

// SplitQuery splits an ampersand-joined query into key/value pairs in input
// order. A bare key maps to the empty string. Keys and values remain
// escaped; callers decode them with a Codec.
func SplitQuery(q string) [][2]string {
	var pairs [][2]string
	for _, kv := range strings.Split(q, "&") {
		if kv == "" {
			continue
		}
		k, v, _ := strings.Cut(kv, "=")
		pairs = append(pairs, [2]string{k, v})
	}
	return pairs
}

// Codec is the percent-decode facility used by the purl parser. It is an
// explicit dependency so tests can substitute a faulty decoder without
// touching process-wide state.
type Codec interface {
	Unescape(s string) (string, error)
}

// Std is the default Codec, backed by net/url.
type Std struct{}

func (Std) Unescape(s string) (string, error) {
	return url.PathUnescape(s)
}
