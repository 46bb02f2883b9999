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
	"path/filepath"
	"strings"
)

const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendTOML   = "toml"
	BackendINI    = "ini"
	BackendMemory = "memory"
)

// Store selects the key-value backend the locations are persisted in.
type Store struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path,omitempty"`
}

func (c *Instance) StoreBackend() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Store.Backend == "" {
		return BackendBolt
	}
	return strings.ToLower(c.vals.Store.Backend)
}

func (c *Instance) SetStoreBackend(backend string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Store.Backend = backend
}

// StorePath returns the backend file path. Relative paths and an empty
// path resolve against dataDir; an empty path uses the backend's default
// file name.
func (c *Instance) StorePath(dataDir string) string {
	backend := c.StoreBackend()

	c.mu.RLock()
	path := c.vals.Store.Path
	c.mu.RUnlock()

	if path == "" {
		switch backend {
		case BackendSQLite:
			path = SQLiteFile
		case BackendTOML:
			path = TOMLFile
		case BackendINI:
			path = INIFile
		default:
			path = BoltDBFile
		}
	}

	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dataDir, path)
}
