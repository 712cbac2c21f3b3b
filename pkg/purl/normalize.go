// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package purl

import (
	"strings"

	"github.com/pkg/errors"
)

// Normalize applies the ecosystem rules for p.Type and returns the
// canonical value. It is idempotent: normalizing an already-canonical
// value is a no-op.
func (p PackageURL) Normalize() (PackageURL, error) {
	n := p.clone()
	n.Type = strings.ToLower(n.Type)
	if !validTypeToken(n.Type) {
		return PackageURL{}, errors.Wrapf(ErrInvalidType, "%q", p.Type)
	}
	rules, _ := lookupRules(n.Type)

	n.Namespace = cleanPath(applyCase(rules.namespaceCase, n.Namespace))
	n.Name = applyCase(rules.nameCase, n.Name)
	if rules.nameTransform != nil {
		n.Name = rules.nameTransform(n.Name)
	}
	if n.Name == "" {
		return PackageURL{}, errors.Wrap(ErrMissingName, n.Type)
	}
	n.Version = applyCase(rules.versionCase, n.Version)
	n.Subpath = cleanSubpath(n.Subpath)

	quals, err := normalizeQualifiers(n.Qualifiers)
	if err != nil {
		return PackageURL{}, err
	}
	for k, v := range rules.defaultQualifiers {
		if _, ok := quals[k]; !ok {
			if quals == nil {
				quals = make(map[string]string)
			}
			quals[k] = v
		}
	}
	for _, k := range rules.requiredQualifiers {
		if _, ok := quals[k]; !ok {
			return PackageURL{}, errors.Wrapf(ErrMissingQualifier, "%s requires %q", n.Type, k)
		}
	}
	for _, k := range rules.forbiddenQualifiers {
		if _, ok := quals[k]; ok {
			return PackageURL{}, errors.Wrapf(ErrForbiddenQualifier, "%s forbids %q", n.Type, k)
		}
	}
	n.Qualifiers = quals

	if rules.validVersion != nil && n.Version != "" {
		if err := rules.validVersion(n.Version); err != nil {
			return PackageURL{}, errors.Wrapf(ErrInvalidVersion, "%s: %v", n.Type, err)
		}
	}
	if rules.subpath == subpathForbid && n.Subpath != "" {
		return PackageURL{}, errors.Wrap(ErrSubpathNotAllowed, n.Type)
	}
	if rules.check != nil {
		if err := rules.check(&n); err != nil {
			return PackageURL{}, err
		}
	}
	return n, nil
}

func applyCase(r caseRule, s string) string {
	switch r {
	case caseLower:
		return strings.ToLower(s)
	case caseUpper:
		return strings.ToUpper(s)
	default:
		return s
	}
}

// cleanPath drops empty segments so builder-supplied namespaces match
// parser output.
func cleanPath(p string) string {
	if !strings.Contains(p, "//") && !strings.HasPrefix(p, "/") && !strings.HasSuffix(p, "/") {
		return p
	}
	var segs []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return strings.Join(segs, "/")
}

// cleanSubpath additionally strips '.' and '..' segments.
func cleanSubpath(p string) string {
	if p == "" {
		return ""
	}
	var segs []string
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		segs = append(segs, seg)
	}
	return strings.Join(segs, "/")
}

// normalizeQualifiers lowercases keys, validates the key charset, and
// drops empty values (an empty value is the same as an absent key).
func normalizeQualifiers(quals map[string]string) (map[string]string, error) {
	if len(quals) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(quals))
	for k, v := range quals {
		lk := strings.ToLower(k)
		if !validQualifierKey(lk) {
			return nil, errors.Wrapf(ErrInvalidQualifier, "%q", k)
		}
		if v == "" {
			continue
		}
		if _, dup := out[lk]; dup {
			return nil, errors.Wrapf(ErrInvalidQualifier, "duplicate key %q", lk)
		}
		out[lk] = v
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func validQualifierKey(k string) bool {
	if k == "" {
		return false
	}
	for i := 0; i < len(k); i++ {
		switch c := k[i]; {
		case 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		case c == '.', c == '_', c == '+', c == '-':
		default:
			return false
		}
	}
	return true
}
