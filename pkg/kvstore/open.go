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

package kvstore

import (
	"fmt"

	"github.com/ZaparooProject/zaparoo-locations/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Open creates the store backend selected in cfg. File-based backends live
// under dataDir unless the config gives an absolute path.
func Open(cfg *config.Instance, fs afero.Fs, dataDir string) (Store, error) {
	backend := cfg.StoreBackend()
	path := cfg.StorePath(dataDir)

	log.Info().Str("backend", backend).Str("path", path).Msg("opening preference store")

	switch backend {
	case config.BackendBolt:
		s, err := OpenBolt(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendTOML:
		return NewTOMLStore(fs, path), nil
	case config.BackendINI:
		return NewINIStore(fs, path), nil
	case config.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}
}
