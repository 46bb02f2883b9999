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
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeFactory struct {
	open func(t *testing.T) Store
	name string
}

func storeFactories() []storeFactory {
	return []storeFactory{
		{
			name: "memory",
			open: func(_ *testing.T) Store { return NewMemoryStore() },
		},
		{
			name: "bolt",
			open: func(t *testing.T) Store {
				s, err := OpenBolt(filepath.Join(t.TempDir(), "prefs.db"))
				require.NoError(t, err)
				return s
			},
		},
		{
			name: "sqlite",
			open: func(t *testing.T) Store {
				s, err := OpenSQLite(filepath.Join(t.TempDir(), "prefs.sqlite"))
				require.NoError(t, err)
				return s
			},
		},
		{
			name: "toml",
			open: func(_ *testing.T) Store {
				return NewTOMLStore(afero.NewMemMapFs(), "/prefs/preferences.toml")
			},
		},
		{
			name: "ini",
			open: func(_ *testing.T) Store {
				return NewINIStore(afero.NewMemMapFs(), "/prefs/preferences.ini")
			},
		},
	}
}

func TestStores_GetMissingKeyIsEmpty(t *testing.T) {
	t.Parallel()

	for _, f := range storeFactories() {
		t.Run(f.name, func(t *testing.T) {
			t.Parallel()
			s := f.open(t)
			defer func() { _ = s.Close() }()

			got, err := s.Get(context.Background(), "search_locations")
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestStores_SetThenGet(t *testing.T) {
	t.Parallel()

	values := []string{
		"file:///sdA",
		"file:///sdA|file:///sdB",
		"content://com.android.externalstorage.documents/tree/primary%3AGames",
		"/storage/emulated/0/ROMs #1;backup",
		"",
	}

	for _, f := range storeFactories() {
		t.Run(f.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			s := f.open(t)
			defer func() { _ = s.Close() }()

			for _, v := range values {
				require.NoError(t, s.Set(ctx, "search_locations", v))
				got, err := s.Get(ctx, "search_locations")
				require.NoError(t, err)
				assert.Equal(t, v, got)
			}
		})
	}
}

func TestStores_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	for _, f := range storeFactories() {
		t.Run(f.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			s := f.open(t)
			defer func() { _ = s.Close() }()

			require.NoError(t, s.Set(ctx, "search_locations", "file:///sdA"))
			require.NoError(t, s.Set(ctx, "game_path", "/games/last.3ds"))

			got, err := s.Get(ctx, "search_locations")
			require.NoError(t, err)
			assert.Equal(t, "file:///sdA", got)

			got, err = s.Get(ctx, "game_path")
			require.NoError(t, err)
			assert.Equal(t, "/games/last.3ds", got)
		})
	}
}

func TestStores_ClosedStoreFails(t *testing.T) {
	t.Parallel()

	for _, f := range storeFactories() {
		t.Run(f.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			s := f.open(t)
			require.NoError(t, s.Close())

			_, err := s.Get(ctx, "search_locations")
			require.ErrorIs(t, err, ErrClosed)
			require.ErrorIs(t, s.Set(ctx, "search_locations", "x"), ErrClosed)
		})
	}
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "search_locations", "file:///sdA|file:///sdB"))
	require.NoError(t, s.Close())

	s, err = OpenBolt(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	got, err := s.Get(ctx, "search_locations")
	require.NoError(t, err)
	assert.Equal(t, "file:///sdA|file:///sdB", got)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.sqlite")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "search_locations", "file:///sdA"))
	require.NoError(t, s.Close())

	// reopening re-runs migrations, which must be a no-op
	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	got, err := s.Get(ctx, "search_locations")
	require.NoError(t, err)
	assert.Equal(t, "file:///sdA", got)
}

func TestMemoryStore_Snapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "a", "1"))

	snap := s.Snapshot()
	snap["a"] = "changed"

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}
