// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package purl

import "strings"

// Builder accumulates purl fields for fluent construction. It has value
// semantics: every setter returns a new Builder and independently held
// values never alias mutable state, so chains can be forked freely.
//
//	p, err := purl.NPM().WithNamespace("@babel").WithName("runtime").WithVersion("7.18.6").Build()
//
// Build routes through the same normalizer as FromString.
type Builder struct {
	p PackageURL
}

// NewBuilder starts a builder scoped to the given type token.
func NewBuilder(typ string) Builder {
	return Builder{p: PackageURL{Type: typ}}
}

// WithType sets the type token.
func (b Builder) WithType(typ string) Builder {
	b.p = b.p.clone()
	b.p.Type = typ
	return b
}

// WithNamespace sets the namespace, given as slash-joined decoded segments.
func (b Builder) WithNamespace(namespace string) Builder {
	b.p = b.p.clone()
	b.p.Namespace = namespace
	return b
}

// WithName sets the package name.
func (b Builder) WithName(name string) Builder {
	b.p = b.p.clone()
	b.p.Name = name
	return b
}

// WithVersion sets the version.
func (b Builder) WithVersion(version string) Builder {
	b.p = b.p.clone()
	b.p.Version = version
	return b
}

// WithQualifier adds one qualifier. Keys compare case-insensitively; the
// stored key is lowercase.
func (b Builder) WithQualifier(key, value string) Builder {
	b.p = b.p.clone()
	if b.p.Qualifiers == nil {
		b.p.Qualifiers = make(map[string]string, 1)
	}
	b.p.Qualifiers[strings.ToLower(key)] = value
	return b
}

// WithSubpath sets the subpath, given as slash-joined decoded segments.
func (b Builder) WithSubpath(subpath string) Builder {
	b.p = b.p.clone()
	b.p.Subpath = subpath
	return b
}

// Build normalizes the accumulated fields into a canonical PackageURL.
func (b Builder) Build() (PackageURL, error) {
	return b.p.Normalize()
}

// Ecosystem-scoped builder presets, keyed by the same tokens as the rule
// table.

func NPM() Builder     { return NewBuilder(TypeNPM) }
func PyPI() Builder    { return NewBuilder(TypePyPI) }
func Maven() Builder   { return NewBuilder(TypeMaven) }
func Cargo() Builder   { return NewBuilder(TypeCargo) }
func Gem() Builder     { return NewBuilder(TypeGem) }
func Golang() Builder  { return NewBuilder(TypeGolang) }
func GitHub() Builder  { return NewBuilder(TypeGithub) }
func Docker() Builder  { return NewBuilder(TypeDocker) }
func Nuget() Builder   { return NewBuilder(TypeNuget) }
func Generic() Builder { return NewBuilder(TypeGeneric) }
