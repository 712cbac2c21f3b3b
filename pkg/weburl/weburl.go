// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package weburl derives repository and download locations from canonical
// package URLs using the per-type templates registered in the rule table.
// Types without a template yield no result; that is an absent capability,
// not a failure.
package weburl

import (
	"strings"

	"github.com/google/oss-purl/pkg/purl"
)

// RepositoryURL returns the browsable registry or source location for p.
func RepositoryURL(p purl.PackageURL) (string, bool) {
	repo, _, ok := purl.URLTemplates(p.Type)
	if !ok || repo == "" {
		return "", false
	}
	return expand(repo, p)
}

// DownloadURL returns the artifact location for p. A download_url
// qualifier takes precedence over any registered template.
func DownloadURL(p purl.PackageURL) (string, bool) {
	if u := p.Qualifiers["download_url"]; u != "" {
		return u, true
	}
	_, download, ok := purl.URLTemplates(p.Type)
	if !ok || download == "" {
		return "", false
	}
	return expand(download, p)
}

// expand substitutes p's fields into the template placeholders. A
// placeholder whose field is absent makes the whole derivation
// unavailable.
func expand(tmpl string, p purl.PackageURL) (string, bool) {
	subs := [...][2]string{
		{"{type}", p.Type},
		{"{namespace}", p.Namespace},
		{"{namespacePath}", strings.ReplaceAll(p.Namespace, ".", "/")},
		{"{fullname}", fullname(p)},
		{"{name}", p.Name},
		{"{version}", p.Version},
	}
	out := tmpl
	for _, sub := range subs {
		if !strings.Contains(out, sub[0]) {
			continue
		}
		if sub[1] == "" {
			return "", false
		}
		out = strings.ReplaceAll(out, sub[0], sub[1])
	}
	return out, true
}

// fullname is the namespace-qualified name as registries spell it, e.g.
// npm's "@babel/runtime".
func fullname(p purl.PackageURL) string {
	if p.Namespace == "" {
		return p.Name
	}
	return p.Namespace + "/" + p.Name
}
