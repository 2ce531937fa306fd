// Copyright (c) 2026 Savora. All rights reserved.
// Author: eng@savora.app

// Package names canonicalizes user-supplied labels such as tag and
// ingredient names.
//
// # Usage
//
// Labels are stored and compared in canonical form so "  Vegan " and
// "Vegan" resolve to the same row. Unlike a URL slug, canonicalization
// preserves case, accents, and inner spacing.
package names

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Canonical normalizes a label for storage and comparison.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFC so composed and decomposed accents compare equal.
// 2. Trims leading and trailing whitespace.
// 3. Collapses internal whitespace runs into a single space.
func Canonical(s string) string {
	// 1. Unicode normalization
	result := norm.NFC.String(s)

	// 2. Trim and collapse whitespace
	fields := strings.Fields(result)
	return strings.Join(fields, " ")
}

// Equal reports whether two labels are the same in canonical form.
func Equal(a, b string) bool {
	return Canonical(a) == Canonical(b)
}
