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

import "strings"

// Delimiter separates locations in the stored value. It must not appear
// inside a location; this is not checked.
const Delimiter = "|"

// Decode parses a stored value into locations, keeping their order. An
// unset key and an empty string both mean no locations, and empty segments
// from stray delimiters are dropped.
func Decode(value string) []Location {
	if value == "" {
		return []Location{}
	}

	parts := strings.Split(value, Delimiter)
	locs := make([]Location, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		locs = append(locs, Location(p))
	}
	return locs
}

// Encode joins locations into their stored form. Empty locations are
// skipped so they can never be persisted.
func Encode(locs []Location) string {
	var sb strings.Builder
	for _, l := range locs {
		if l == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(Delimiter)
		}
		sb.WriteString(string(l))
	}
	return sb.String()
}

// Dedupe returns locs without empty entries or repeats, keeping the first
// occurrence of each.
func Dedupe(locs []Location) []Location {
	seen := make(map[Location]struct{}, len(locs))
	out := make([]Location, 0, len(locs))
	for _, l := range locs {
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
