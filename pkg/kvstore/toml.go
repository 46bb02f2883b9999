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

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

type tomlDocument struct {
	Preferences map[string]string `toml:"preferences"`
}

type tomlCodec struct{}

func (tomlCodec) decode(data []byte) (map[string]string, error) {
	var doc tomlDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal toml: %w", err)
	}
	return doc.Preferences, nil
}

func (tomlCodec) encode(vals map[string]string) ([]byte, error) {
	data, err := toml.Marshal(&tomlDocument{Preferences: vals})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal toml: %w", err)
	}
	return data, nil
}

// TOMLStore keeps preferences in the [preferences] table of a TOML file.
type TOMLStore struct {
	*fileStore
}

func NewTOMLStore(fs afero.Fs, path string) *TOMLStore {
	return &TOMLStore{fileStore: newFileStore(fs, path, tomlCodec{})}
}
