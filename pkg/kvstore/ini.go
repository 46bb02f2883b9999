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
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

const iniSection = "preferences"

// Locations are URIs, so '#' and ';' are part of values rather than
// inline comments.
var iniLoadOptions = ini.LoadOptions{
	IgnoreInlineComment: true,
}

type iniCodec struct{}

func (iniCodec) decode(data []byte) (map[string]string, error) {
	f, err := ini.LoadSources(iniLoadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ini: %w", err)
	}

	sec, err := f.GetSection(iniSection)
	if err != nil {
		return make(map[string]string), nil //nolint:nilerr // missing section means no values
	}
	return sec.KeysHash(), nil
}

func (iniCodec) encode(vals map[string]string) ([]byte, error) {
	f := ini.Empty(iniLoadOptions)
	sec, err := f.NewSection(iniSection)
	if err != nil {
		return nil, fmt.Errorf("failed to create ini section: %w", err)
	}

	for _, k := range slices.Sorted(maps.Keys(vals)) {
		if _, err := sec.NewKey(k, vals[k]); err != nil {
			return nil, fmt.Errorf("failed to add ini key %q: %w", k, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write ini: %w", err)
	}
	return buf.Bytes(), nil
}

// INIStore keeps preferences in the [preferences] section of an INI file.
type INIStore struct {
	*fileStore
}

func NewINIStore(fs afero.Fs, path string) *INIStore {
	return &INIStore{fileStore: newFileStore(fs, path, iniCodec{})}
}
