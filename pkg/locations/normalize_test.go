// Zaparoo Core
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Core.
//
// Zaparoo Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Core.  If not, see <http://www.gnu.org/licenses/>.

package locations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNormalizeLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    Location
		expected Location
	}{
		{name: "empty", input: "", expected: ""},
		{name: "unchanged", input: "file:///sdA", expected: "file:///sdA"},
		{name: "trailing slash", input: "/roms/", expected: "/roms"},
		{name: "many trailing slashes", input: "/roms///", expected: "/roms"},
		{name: "root path kept", input: "/", expected: "/"},
		{name: "file root kept", input: "file:///", expected: "file:///"},
		{name: "percent decoded", input: "file:///My%20Games", expected: "file:///My Games"},
		{
			name:     "content uri decoded",
			input:    "content://com.android.externalstorage.documents/tree/primary%3AROMs",
			expected: "content://com.android.externalstorage.documents/tree/primary:ROMs",
		},
		{name: "encoded delimiter not decoded", input: "/a%7Cb", expected: "/a%7Cb"},
		{name: "invalid escape left alone", input: "/roms%zz/", expected: "/roms%zz"},
		{name: "decomposed unicode composed", input: "/Poke\u0301mon", expected: "/Pok\u00e9mon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, NormalizeLocation(tt.input))
		})
	}
}

// TestPropertyNormalizeIdempotent verifies normalising twice gives the same
// result for locations without escape sequences.
func TestPropertyNormalizeIdempotent(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		loc := Location(rapid.StringMatching(`[a-zA-Z0-9:/._ \x{00e9}\x{0301}-]{0,40}`).Draw(t, "loc"))

		once := NormalizeLocation(loc)
		twice := NormalizeLocation(once)

		if once != twice {
			t.Fatalf("not idempotent: %q then %q", once, twice)
		}
	})
}
