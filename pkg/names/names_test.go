// Copyright (c) 2026 Savora. All rights reserved.
// Author: eng@savora.app

package names_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/savora/savora/pkg/names"
)

/*
TestCanonical verifies whitespace trimming and collapsing.
*/
func TestCanonical(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already_canonical", "Vegan", "Vegan"},
		{"leading_trailing_space", "  Vegan  ", "Vegan"},
		{"inner_whitespace_collapsed", "Comfort   Food", "Comfort Food"},
		{"tabs_and_newlines", "\tQuick\n Dinner ", "Quick Dinner"},
		{"case_preserved", "THAI curry", "THAI curry"},
		{"empty", "", ""},
		{"whitespace_only", "   \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, names.Canonical(tt.input))
		})
	}
}

/*
TestCanonical_UnicodeNFC verifies that composed and decomposed accents
canonicalize to the same string.
*/
func TestCanonical_UnicodeNFC(t *testing.T) {
	composed := "Crème"     // precomposed e-grave
	decomposed := "Crème" // e + combining grave

	assert.Equal(t, names.Canonical(composed), names.Canonical(decomposed))
	assert.Equal(t, composed, names.Canonical(decomposed))
}

/*
TestEqual verifies canonical-form comparison.
*/
func TestEqual(t *testing.T) {
	assert.False(t, names.Equal("Vegan", "  vegan  "), "case must be significant")
	assert.True(t, names.Equal("Vegan", " Vegan "))
	assert.True(t, names.Equal("Comfort  Food", "Comfort Food"))
	assert.False(t, names.Equal("Vegan", "Vegetarian"))
}
