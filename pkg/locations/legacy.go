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
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// MigrateLegacyKey copies locations stored under legacyKey into key, for
// installs that kept them under a setting shared with something else. It
// only writes when key holds no locations and the legacy value decodes to
// at least one, and it never modifies legacyKey. Returns the number of
// locations migrated.
func MigrateLegacyKey(ctx context.Context, store Store, legacyKey, key string) (int, error) {
	if legacyKey == "" || legacyKey == key {
		return 0, nil
	}

	current, err := store.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to read locations: %w", err)
	}
	if len(Decode(current)) > 0 {
		log.Debug().Str("key", key).Msg("locations already present, skipping legacy migration")
		return 0, nil
	}

	legacy, err := store.Get(ctx, legacyKey)
	if err != nil {
		return 0, fmt.Errorf("failed to read legacy locations: %w", err)
	}

	locs := Dedupe(Decode(legacy))
	if len(locs) == 0 {
		return 0, nil
	}

	err = store.Set(ctx, key, Encode(locs))
	if err != nil {
		return 0, fmt.Errorf("failed to write migrated locations: %w", err)
	}

	log.Info().
		Str("from", legacyKey).
		Str("to", key).
		Int("count", len(locs)).
		Msg("migrated legacy search locations")
	return len(locs), nil
}
