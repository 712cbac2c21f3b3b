// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package purl

import "github.com/pkg/errors"

// Parse errors indicate the input string does not match the purl grammar.
var (
	ErrInvalidScheme       = errors.New("invalid purl scheme")
	ErrMissingName         = errors.New("purl name is required")
	ErrMalformedQualifiers = errors.New("malformed qualifiers")
	ErrMalformedEncoding   = errors.New("malformed percent-encoding")
)

// Validation errors indicate the grammar matched but the type's rules
// reject the content.
var (
	ErrInvalidType        = errors.New("invalid purl type")
	ErrInvalidNamespace   = errors.New("invalid purl namespace")
	ErrInvalidName        = errors.New("invalid purl name")
	ErrInvalidVersion     = errors.New("invalid purl version")
	ErrInvalidQualifier   = errors.New("invalid qualifier key")
	ErrMissingQualifier   = errors.New("required qualifier is missing")
	ErrForbiddenQualifier = errors.New("qualifier not permitted for type")
	ErrSubpathNotAllowed  = errors.New("subpath not permitted for type")
)

var (
	parseErrs = []error{
		ErrInvalidScheme,
		ErrMissingName,
		ErrMalformedQualifiers,
		ErrMalformedEncoding,
	}
	validationErrs = []error{
		ErrInvalidType,
		ErrInvalidNamespace,
		ErrInvalidName,
		ErrInvalidVersion,
		ErrInvalidQualifier,
		ErrMissingQualifier,
		ErrForbiddenQualifier,
		ErrSubpathNotAllowed,
	}
)

// IsParseError reports whether err belongs to the parse error family.
func IsParseError(err error) bool {
	for _, e := range parseErrs {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// IsValidationError reports whether err belongs to the validation error
// family.
func IsValidationError(err error) bool {
	for _, e := range validationErrs {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
