// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package purl parses, validates, and canonicalizes package URLs of the
// form "pkg:type/namespace/name@version?qualifiers#subpath".
//
// A PackageURL is produced either by FromString or by a Builder; both
// routes apply the per-ecosystem rules registered in the type table, so a
// successfully constructed value is always in canonical form and
// round-trips through String and FromString unchanged.
package purl

import (
	"sort"
	"strings"

	"github.com/google/oss-purl/internal/urlx"
)

// PackageURL is a canonical package identifier. Values are treated as
// immutable: every transformation returns a new value.
//
// Namespace and Subpath hold slash-joined, percent-decoded path segments.
// Qualifier keys are lowercase; re-encoding happens only in String.
type PackageURL struct {
	Type       string
	Namespace  string
	Name       string
	Version    string
	Qualifiers map[string]string
	Subpath    string
}

// New assembles a PackageURL from raw fields and normalizes it against the
// rules for typ.
func New(typ, namespace, name, version string, qualifiers map[string]string, subpath string) (PackageURL, error) {
	return PackageURL{
		Type:       typ,
		Namespace:  namespace,
		Name:       name,
		Version:    version,
		Qualifiers: qualifiers,
		Subpath:    subpath,
	}.Normalize()
}

// FromString parses s and normalizes the result.
func FromString(s string) (PackageURL, error) {
	raw, err := Parse(s)
	if err != nil {
		return PackageURL{}, err
	}
	return raw.Normalize()
}

// MustParse is FromString that panics on error, for static purl literals.
func MustParse(s string) PackageURL {
	p, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String serializes p into canonical purl form. It is total on normalized
// values; qualifiers are emitted in lexicographic key order.
func (p PackageURL) String() string {
	var b strings.Builder
	b.WriteString("pkg:")
	b.WriteString(p.Type)
	b.WriteByte('/')
	if p.Namespace != "" {
		for _, seg := range strings.Split(p.Namespace, "/") {
			b.WriteString(urlx.Escape(seg, urlx.Segment))
			b.WriteByte('/')
		}
	}
	b.WriteString(urlx.Escape(p.Name, urlx.Segment))
	if p.Version != "" {
		b.WriteByte('@')
		b.WriteString(urlx.Escape(p.Version, urlx.Segment))
	}
	if len(p.Qualifiers) > 0 {
		keys := make([]string, 0, len(p.Qualifiers))
		for k := range p.Qualifiers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('?')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte('&')
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(urlx.Escape(p.Qualifiers[k], urlx.Query))
		}
	}
	if p.Subpath != "" {
		b.WriteByte('#')
		for i, seg := range strings.Split(p.Subpath, "/") {
			if i > 0 {
				b.WriteByte('/')
			}
			b.WriteString(urlx.Escape(seg, urlx.Segment))
		}
	}
	return b.String()
}

// Equal reports field-wise equality. PackageURL holds a map, so == does
// not apply.
func (p PackageURL) Equal(o PackageURL) bool {
	if p.Type != o.Type || p.Namespace != o.Namespace || p.Name != o.Name ||
		p.Version != o.Version || p.Subpath != o.Subpath {
		return false
	}
	if len(p.Qualifiers) != len(o.Qualifiers) {
		return false
	}
	for k, v := range p.Qualifiers {
		if ov, ok := o.Qualifiers[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// clone returns a copy of p that shares no mutable state with it.
func (p PackageURL) clone() PackageURL {
	if p.Qualifiers != nil {
		q := make(map[string]string, len(p.Qualifiers))
		for k, v := range p.Qualifiers {
			q[k] = v
		}
		p.Qualifiers = q
	}
	return p
}
