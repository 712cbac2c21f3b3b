// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package semver validates version strings against the Semantic Versioning
// 2.0.0 grammar. It backs the opt-in strict version predicates for
// ecosystems that version with semver.
package semver

import (
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// Semver is a parsed semantic version.
type Semver struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Build      string
}

// Adapted from: https://semver.org/spec/v2.0.0#is-there-a-suggested-regular-expression-regex-to-check-a-semver-string
var semverRE = regexp.MustCompile(`^v?(?P<Major>0|[1-9]\d*)\.(?P<Minor>0|[1-9]\d*)\.(?P<Patch>0|[1-9]\d*)(?:-(?P<Prerelease>(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?(?:\+(?P<Build>[0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`)

// New parses s as a semantic version, tolerating a leading "v".
func New(s string) (Semver, error) {
	matches := semverRE.FindStringSubmatch(s)
	if matches == nil {
		return Semver{}, errors.Errorf("invalid semver %q", s)
	}
	major, _ := strconv.Atoi(matches[semverRE.SubexpIndex("Major")])
	minor, _ := strconv.Atoi(matches[semverRE.SubexpIndex("Minor")])
	patch, _ := strconv.Atoi(matches[semverRE.SubexpIndex("Patch")])
	return Semver{
		major,
		minor,
		patch,
		matches[semverRE.SubexpIndex("Prerelease")],
		matches[semverRE.SubexpIndex("Build")],
	}, nil
}

// Check reports whether s is a well-formed semantic version.
func Check(s string) error {
	_, err := New(s)
	return err
}
