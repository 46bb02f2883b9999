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

// Package fixtures holds sample data shared between package tests.
package fixtures

// Search locations as they come back from the directory picker.
const (
	SDCardA      = "file:///sdA"
	SDCardB      = "file:///sdB"
	InternalROMs = "content://com.android.externalstorage.documents/tree/primary%3AROMs"
	USBGames     = "content://com.android.externalstorage.documents/tree/1A2B-3C4D%3AGames"
)

// SampleLocations returns a fresh copy of a typical configured set.
func SampleLocations() []string {
	return []string{SDCardA, InternalROMs, USBGames}
}
