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

package config

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Locations configures the search location registry.
type Locations struct {
	UndoDelay string `toml:"undo_delay,omitempty"`
	// Key is the store key the location set lives under. It must not be
	// shared with any other setting.
	Key string `toml:"key"`
	// LegacyKey is read once on startup to migrate locations stored by
	// older front-ends under an overloaded key.
	LegacyKey string `toml:"legacy_key,omitempty"`
	Normalize bool   `toml:"normalize"`
}

func (c *Instance) LocationsKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Locations.Key == "" {
		return DefaultLocationsKey
	}
	return c.vals.Locations.Key
}

func (c *Instance) LocationsLegacyKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Locations.LegacyKey
}

func (c *Instance) NormalizeLocations() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Locations.Normalize
}

func (c *Instance) SetNormalizeLocations(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Locations.Normalize = enabled
}

// UndoDelay returns how long a deferred delete waits before committing.
// Invalid or non-positive values fall back to DefaultUndoDelay.
func (c *Instance) UndoDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.vals.Locations.UndoDelay == "" {
		return DefaultUndoDelay
	}

	d, err := time.ParseDuration(c.vals.Locations.UndoDelay)
	if err != nil || d <= 0 {
		log.Warn().Msgf("invalid undo delay %q, using default", c.vals.Locations.UndoDelay)
		return DefaultUndoDelay
	}
	return d
}
