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
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/ZaparooProject/zaparoo-locations/pkg/config"
	"github.com/ZaparooProject/zaparoo-locations/pkg/kvstore"
	"github.com/ZaparooProject/zaparoo-locations/pkg/testing/fixtures"
	"github.com/ZaparooProject/zaparoo-locations/pkg/testing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func stored(t *testing.T, store *kvstore.MemoryStore) string {
	t.Helper()
	v, err := store.Get(context.Background(), config.DefaultLocationsKey)
	require.NoError(t, err)
	return v
}

func TestRegistry_Scenario(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	reg := NewRegistry(store)

	res, err := reg.Add(ctx, fixtures.SDCardA)
	require.NoError(t, err)
	assert.Equal(t, Success, res)
	assert.Equal(t, "file:///sdA", stored(t, store))

	res, err = reg.Add(ctx, fixtures.SDCardB)
	require.NoError(t, err)
	assert.Equal(t, Success, res)
	assert.Equal(t, "file:///sdA|file:///sdB", stored(t, store))

	res, err = reg.Add(ctx, fixtures.SDCardA)
	require.NoError(t, err)
	assert.Equal(t, AlreadyAdded, res)
	assert.Equal(t, "file:///sdA|file:///sdB", stored(t, store))

	res, err = reg.Delete(ctx, fixtures.SDCardA)
	require.NoError(t, err)
	assert.Equal(t, Deleted, res)
	assert.Equal(t, "file:///sdB", stored(t, store))
}

func TestRegistry_ListEmptyStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	reg := NewRegistry(store)

	locs, err := reg.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, locs)
	assert.NotNil(t, locs)

	res, err := reg.Add(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, Success, res)
	assert.Equal(t, "a", stored(t, store))
}

func TestRegistry_ListToleratesMalformedValue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, config.DefaultLocationsKey, "|a||b|"))
	reg := NewRegistry(store)

	locs, err := reg.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Location{"a", "b"}, locs)

	// the next write cleans the stored value up
	_, err = reg.Add(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "a|b|c", stored(t, store))
}

func TestRegistry_OrderPreserved(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := NewRegistry(kvstore.NewMemoryStore())

	for _, loc := range []Location{"a", "b", "c"} {
		_, err := reg.Add(ctx, loc)
		require.NoError(t, err)
	}

	locs, err := reg.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Location{"a", "b", "c"}, locs)

	_, err = reg.Delete(ctx, "b")
	require.NoError(t, err)

	locs, err = reg.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Location{"a", "c"}, locs)
}

func TestRegistry_DeleteMissingStillWrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, config.DefaultLocationsKey, "a||b|"))
	reg := NewRegistry(store)

	res, err := reg.Delete(ctx, "zzz")
	require.NoError(t, err)
	assert.Equal(t, Deleted, res)
	assert.Equal(t, "a|b", stored(t, store))
}

func TestRegistry_DeleteRemovesDuplicates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, config.DefaultLocationsKey, "a|b|a|c"))
	reg := NewRegistry(store)

	_, err := reg.Delete(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "b|c", stored(t, store))
}

func TestRegistry_DeleteLastLeavesEmptyValue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	reg := NewRegistry(store)

	_, err := reg.Add(ctx, "a")
	require.NoError(t, err)
	_, err = reg.Delete(ctx, "a")
	require.NoError(t, err)

	assert.Empty(t, stored(t, store))
	locs, err := reg.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, locs)
}

func TestRegistry_AddEmptyIsNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &mocks.MockStore{}
	reg := NewRegistry(store)

	res, err := reg.Add(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, Success, res)
	store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegistry_AlreadyAddedDoesNotWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &mocks.MockStore{}
	store.On("Get", mock.Anything, config.DefaultLocationsKey).Return("a|b", nil)
	reg := NewRegistry(store)

	res, err := reg.Add(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, AlreadyAdded, res)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegistry_StoreErrorsPropagate(t *testing.T) {
	t.Parallel()

	errUnavailable := errors.New("storage unavailable")

	tests := []struct {
		setup func(s *mocks.MockStore)
		call  func(r *Registry) error
		name  string
	}{
		{
			name: "list read fails",
			setup: func(s *mocks.MockStore) {
				s.On("Get", mock.Anything, config.DefaultLocationsKey).Return("", errUnavailable)
			},
			call: func(r *Registry) error {
				_, err := r.List(context.Background())
				return err
			},
		},
		{
			name: "add read fails",
			setup: func(s *mocks.MockStore) {
				s.On("Get", mock.Anything, config.DefaultLocationsKey).Return("", errUnavailable)
			},
			call: func(r *Registry) error {
				_, err := r.Add(context.Background(), "a")
				return err
			},
		},
		{
			name: "add write fails",
			setup: func(s *mocks.MockStore) {
				s.On("Get", mock.Anything, config.DefaultLocationsKey).Return("", nil)
				s.On("Set", mock.Anything, config.DefaultLocationsKey, "a").Return(errUnavailable)
			},
			call: func(r *Registry) error {
				_, err := r.Add(context.Background(), "a")
				return err
			},
		},
		{
			name: "delete read fails",
			setup: func(s *mocks.MockStore) {
				s.On("Get", mock.Anything, config.DefaultLocationsKey).Return("", errUnavailable)
			},
			call: func(r *Registry) error {
				_, err := r.Delete(context.Background(), "a")
				return err
			},
		},
		{
			name: "delete write fails",
			setup: func(s *mocks.MockStore) {
				s.On("Get", mock.Anything, config.DefaultLocationsKey).Return("a|b", nil)
				s.On("Set", mock.Anything, config.DefaultLocationsKey, "b").Return(errUnavailable)
			},
			call: func(r *Registry) error {
				_, err := r.Delete(context.Background(), "a")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := &mocks.MockStore{}
			tt.setup(store)

			err := tt.call(NewRegistry(store))
			require.ErrorIs(t, err, errUnavailable)
			store.AssertExpectations(t)
		})
	}
}

func TestRegistry_ErrorsReturnUnknown(t *testing.T) {
	t.Parallel()

	errUnavailable := errors.New("storage unavailable")
	store := &mocks.MockStore{}
	store.On("Get", mock.Anything, config.DefaultLocationsKey).Return("a", nil)
	store.On("Set", mock.Anything, config.DefaultLocationsKey, mock.Anything).Return(errUnavailable)
	reg := NewRegistry(store)

	res, err := reg.Add(context.Background(), "b")
	require.ErrorIs(t, err, errUnavailable)
	assert.Equal(t, Unknown, res)

	res, err = reg.Delete(context.Background(), "a")
	require.ErrorIs(t, err, errUnavailable)
	assert.Equal(t, Unknown, res)
}

func TestRegistry_WithKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "game_path", "/games/last.3ds"))

	reg := NewRegistry(store, WithKey("emu_search_locations"))
	assert.Equal(t, "emu_search_locations", reg.Key())

	_, err := reg.Add(ctx, "a")
	require.NoError(t, err)

	snap := store.Snapshot()
	assert.Equal(t, "a", snap["emu_search_locations"])
	assert.Equal(t, "/games/last.3ds", snap["game_path"])

	assert.Equal(t, config.DefaultLocationsKey, NewRegistry(store, WithKey("")).Key())
}

func TestRegistry_WithNormalizer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	reg := NewRegistry(store, WithNormalizer(NormalizeLocation))

	res, err := reg.Add(ctx, "file:///roms/")
	require.NoError(t, err)
	assert.Equal(t, Success, res)
	assert.Equal(t, "file:///roms", stored(t, store))

	res, err = reg.Add(ctx, "file:///r%6Fms")
	require.NoError(t, err)
	assert.Equal(t, AlreadyAdded, res)

	_, err = reg.Delete(ctx, "file:///roms//")
	require.NoError(t, err)
	assert.Empty(t, stored(t, store))
}

func TestRegistry_ConcurrentAddsAreNotLost(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := NewRegistry(kvstore.NewMemoryStore())

	const n = 50
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := reg.Add(ctx, Location(fmt.Sprintf("/roms/%d", i)))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	locs, err := reg.List(ctx)
	require.NoError(t, err)
	assert.Len(t, locs, n)
	assert.ElementsMatch(t, Dedupe(locs), locs)
}

func TestRegistry_ConcurrentAddAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := NewRegistry(kvstore.NewMemoryStore())
	for _, l := range fixtures.SampleLocations() {
		_, err := reg.Add(ctx, Location(l))
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := reg.Add(ctx, Location(fmt.Sprintf("/usb/%d", i)))
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			_, err := reg.Delete(ctx, fixtures.SDCardA)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	locs, err := reg.List(ctx)
	require.NoError(t, err)
	assert.Len(t, locs, 22)
	assert.NotContains(t, locs, Location(fixtures.SDCardA))
	assert.Equal(t, Location(fixtures.InternalROMs), locs[0])
}

// TestPropertyDeleteIdempotent verifies a second delete leaves the stored
// value unchanged.
func TestPropertyDeleteIdempotent(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		locs := locationSetGen().Draw(t, "locs")
		target := rapid.OneOf(rapid.SampledFrom(append(slices.Clone(locs), "x")), locationGen()).Draw(t, "target")

		store := kvstore.NewMemoryStore()
		_ = store.Set(ctx, config.DefaultLocationsKey, Encode(locs))
		reg := NewRegistry(store)

		if _, err := reg.Delete(ctx, target); err != nil {
			t.Fatal(err)
		}
		once := store.Snapshot()[config.DefaultLocationsKey]

		if _, err := reg.Delete(ctx, target); err != nil {
			t.Fatal(err)
		}
		twice := store.Snapshot()[config.DefaultLocationsKey]

		if once != twice {
			t.Fatalf("delete not idempotent: %q then %q", once, twice)
		}
		for _, l := range Decode(twice) {
			if l == target {
				t.Fatalf("%q still present in %q", target, twice)
			}
		}
	})
}

// TestPropertyAddDedup verifies adding twice stores exactly one occurrence.
func TestPropertyAddDedup(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		locs := locationSetGen().Draw(t, "locs")
		loc := locationGen().Draw(t, "loc")

		store := kvstore.NewMemoryStore()
		_ = store.Set(ctx, config.DefaultLocationsKey, Encode(locs))
		reg := NewRegistry(store)

		first, err := reg.Add(ctx, loc)
		if err != nil {
			t.Fatal(err)
		}
		second, err := reg.Add(ctx, loc)
		if err != nil {
			t.Fatal(err)
		}
		if second != AlreadyAdded {
			t.Fatalf("second add returned %s", second)
		}

		got, _ := reg.List(ctx)
		count := 0
		for _, l := range got {
			if l == loc {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("%q stored %d times", loc, count)
		}

		wasPresent := false
		for _, l := range locs {
			if l == loc {
				wasPresent = true
			}
		}
		if wasPresent && first != AlreadyAdded {
			t.Fatalf("first add of present location returned %s", first)
		}
		if !wasPresent && (first != Success || got[len(got)-1] != loc) {
			t.Fatalf("first add returned %s, list %v", first, got)
		}
	})
}
