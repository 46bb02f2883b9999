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

// Package locations keeps the ordered set of directories the emulator scans
// for game content. The set is stored as a single delimited string under one
// key of a key-value store and is read fresh on every call.
package locations

import (
	"context"
	"fmt"
)

// Location is an opaque identifier for a directory, usually an absolute path
// or a content/file URI. Locations are compared by exact string equality.
type Location string

// Store is the string-keyed persistence the registry reads and writes. Get
// must return "" and a nil error for a key that has never been set.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Result is the outcome of a registry mutation. None of the values are
// errors: AlreadyAdded only tells the caller no write happened. Unknown is
// returned alongside every error.
type Result int

const (
	Unknown Result = iota
	Success
	AlreadyAdded
	Deleted
)

func (r Result) String() string {
	switch r {
	case Unknown:
		return "unknown"
	case Success:
		return "success"
	case AlreadyAdded:
		return "already_added"
	case Deleted:
		return "deleted"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
