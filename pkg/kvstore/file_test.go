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
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOMLStore_FileLayout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fs := afero.NewMemMapFs()
	s := NewTOMLStore(fs, "/cfg/preferences.toml")

	require.NoError(t, s.Set(ctx, "search_locations", "file:///sdA|file:///sdB"))

	data, err := afero.ReadFile(fs, "/cfg/preferences.toml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "[preferences]")
	assert.Contains(t, string(data), "search_locations")

	exists, err := afero.Exists(fs, "/cfg/preferences.toml.tmp")
	require.NoError(t, err)
	assert.False(t, exists, "temp file should be renamed away")
}

func TestTOMLStore_ReadsExternalEdits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/preferences.toml", []byte(`
[preferences]
search_locations = "/roms|/media/usb"
`), 0o600))

	s := NewTOMLStore(fs, "/cfg/preferences.toml")
	got, err := s.Get(ctx, "search_locations")
	require.NoError(t, err)
	assert.Equal(t, "/roms|/media/usb", got)
}

func TestTOMLStore_CorruptFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/preferences.toml", []byte("[preferences\n"), 0o600))

	s := NewTOMLStore(fs, "/cfg/preferences.toml")
	_, err := s.Get(ctx, "search_locations")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")

	// a corrupt file is never overwritten
	require.Error(t, s.Set(ctx, "search_locations", "/roms"))
}

func TestINIStore_ReadsExternalEdits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/preferences.ini", []byte(`
[other]
search_locations = wrong

[preferences]
search_locations = /roms|/media/usb
`), 0o600))

	s := NewINIStore(fs, "/cfg/preferences.ini")
	got, err := s.Get(ctx, "search_locations")
	require.NoError(t, err)
	assert.Equal(t, "/roms|/media/usb", got)
}

func TestINIStore_MissingSection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/preferences.ini", []byte("[other]\na = b\n"), 0o600))

	s := NewINIStore(fs, "/cfg/preferences.ini")
	got, err := s.Get(ctx, "search_locations")
	require.NoError(t, err)
	assert.Empty(t, got)
}
