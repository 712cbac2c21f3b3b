// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package purl

import (
	"sort"
	"testing"
)

func TestKnownTypes(t *testing.T) {
	types := KnownTypes()
	if len(types) < 35 {
		t.Errorf("KnownTypes() returned %d types, want at least 35", len(types))
	}
	if !sort.StringsAreSorted(types) {
		t.Error("KnownTypes() not sorted")
	}
	for _, typ := range []string{TypeNPM, TypePyPI, TypeMaven, TypeCargo, TypeGolang, TypeSWID} {
		if !KnownType(typ) {
			t.Errorf("KnownType(%q) = false", typ)
		}
	}
	if KnownType("unknown-eco") {
		t.Error("KnownType(\"unknown-eco\") = true")
	}
}

func TestURLTemplates(t *testing.T) {
	repo, download, ok := URLTemplates(TypeNPM)
	if !ok || repo == "" || download == "" {
		t.Errorf("URLTemplates(npm) = %q, %q, %v", repo, download, ok)
	}
	if _, _, ok := URLTemplates("unknown-eco"); ok {
		t.Error("URLTemplates(\"unknown-eco\") ok = true")
	}
	// Registered type without templates.
	repo, download, ok = URLTemplates(TypeGeneric)
	if !ok || repo != "" || download != "" {
		t.Errorf("URLTemplates(generic) = %q, %q, %v", repo, download, ok)
	}
}

func TestSemverVersions(t *testing.T) {
	if err := SemverVersions("1.2.3"); err != nil {
		t.Errorf("SemverVersions(\"1.2.3\") error: %v", err)
	}
	if err := SemverVersions("latest"); err == nil {
		t.Error("SemverVersions(\"latest\") accepted")
	}
}
