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

	"github.com/ZaparooProject/zaparoo-locations/pkg/config"
	"github.com/ZaparooProject/zaparoo-locations/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
)

// Registry is the single writer for one location key. Every call is a full
// read-modify-write against the store, serialised by mu so concurrent adds
// and deletes through the same Registry can't lose each other's updates.
// Writers outside this process or through a second Registry on the same key
// are not coordinated.
type Registry struct {
	store     Store
	normalize func(Location) Location
	key       string
	mu        syncutil.Mutex
}

type Option func(*Registry)

// WithKey sets the store key. Empty keys are ignored.
func WithKey(key string) Option {
	return func(r *Registry) {
		if key != "" {
			r.key = key
		}
	}
}

// WithNormalizer makes the registry compare and store locations after
// passing them through fn. See NormalizeLocation.
func WithNormalizer(fn func(Location) Location) Option {
	return func(r *Registry) {
		r.normalize = fn
	}
}

func NewRegistry(store Store, opts ...Option) *Registry {
	r := &Registry{
		store: store,
		key:   config.DefaultLocationsKey,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key returns the store key the registry reads and writes.
func (r *Registry) Key() string {
	return r.key
}

// List returns the configured locations in insertion order.
func (r *Registry) List(ctx context.Context) ([]Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read(ctx)
}

// Add appends loc to the set. It returns AlreadyAdded without writing if
// loc is already present. An empty location is a no-op.
func (r *Registry) Add(ctx context.Context, loc Location) (Result, error) {
	loc = r.norm(loc)
	if loc == "" {
		log.Debug().Str("key", r.key).Msg("ignoring empty location")
		return Success, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.read(ctx)
	if err != nil {
		return Unknown, err
	}

	for _, existing := range current {
		if r.norm(existing) == loc {
			log.Debug().Str("location", string(loc)).Msg("location already added")
			return AlreadyAdded, nil
		}
	}

	err = r.write(ctx, append(current, loc))
	if err != nil {
		return Unknown, err
	}

	log.Info().Str("location", string(loc)).Str("key", r.key).Msg("added search location")
	return Success, nil
}

// Delete removes every entry equal to loc and writes the remainder back in
// its original order. The write happens even if loc was not present, and
// the result is always Deleted.
func (r *Registry) Delete(ctx context.Context, loc Location) (Result, error) {
	loc = r.norm(loc)

	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.read(ctx)
	if err != nil {
		return Unknown, err
	}

	kept := make([]Location, 0, len(current))
	for _, existing := range current {
		if existing == "" || r.norm(existing) == loc {
			continue
		}
		kept = append(kept, existing)
	}

	err = r.write(ctx, kept)
	if err != nil {
		return Unknown, err
	}

	log.Info().
		Str("location", string(loc)).
		Str("key", r.key).
		Bool("present", len(kept) != len(current)).
		Msg("deleted search location")
	return Deleted, nil
}

func (r *Registry) read(ctx context.Context) ([]Location, error) {
	value, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read locations: %w", err)
	}
	return Decode(value), nil
}

func (r *Registry) write(ctx context.Context, locs []Location) error {
	err := r.store.Set(ctx, r.key, Encode(locs))
	if err != nil {
		return fmt.Errorf("failed to write locations: %w", err)
	}
	return nil
}

func (r *Registry) norm(loc Location) Location {
	if r.normalize == nil {
		return loc
	}
	return r.normalize(loc)
}
