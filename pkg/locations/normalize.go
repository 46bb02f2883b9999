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
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeLocation is an opt-in normaliser for WithNormalizer. It
// percent-decodes the location, converts it to Unicode NFC and drops
// trailing slashes, so "file:///roms/" and "file:///r%6Fms" compare equal.
//
// Decoding is skipped when it would introduce the Delimiter or fails, and
// roots ("/", "file:///") keep their slash. Normalised values are what gets
// stored, so content URIs that depend on their encoding should not be
// normalised.
func NormalizeLocation(loc Location) Location {
	s := string(loc)
	if s == "" {
		return loc
	}

	if decoded, err := url.PathUnescape(s); err == nil &&
		!strings.Contains(decoded, Delimiter) {
		s = decoded
	}

	s = norm.NFC.String(s)

	trimmed := strings.TrimRight(s, "/")
	if trimmed != "" && !strings.HasSuffix(trimmed, ":") {
		s = trimmed
	}

	return Location(s)
}
