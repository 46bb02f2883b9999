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
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ZaparooProject/zaparoo-locations/pkg/config"
	"github.com/ZaparooProject/zaparoo-locations/pkg/helpers/syncutil"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

var ErrRemoverClosed = errors.New("remover is closed")

// Deleter is the part of Registry a Remover commits deletes through.
type Deleter interface {
	Delete(ctx context.Context, loc Location) (Result, error)
}

type pendingDelete struct {
	timer clockwork.Timer
	seq   uint64
}

// Remover defers deletes for an undo window. A scheduled location stays in
// the store until its timer fires, Flush is called or the Remover is
// closed; Undo before then cancels the delete without touching the store.
type Remover struct {
	ctx      context.Context
	deleter  Deleter
	clock    clockwork.Clock
	pending  map[Location]*pendingDelete
	inflight sync.WaitGroup
	delay    time.Duration
	seq      uint64
	mu       syncutil.Mutex
	closed   bool
}

// NewRemover creates a Remover committing through deleter after delay.
// Deletes committed by the timer or by Close use ctx without its
// cancellation, so a pending delete still lands after ctx is done. A
// non-positive delay uses config.DefaultUndoDelay.
func NewRemover(
	ctx context.Context,
	deleter Deleter,
	clock clockwork.Clock,
	delay time.Duration,
) *Remover {
	if delay <= 0 {
		delay = config.DefaultUndoDelay
	}
	return &Remover{
		ctx:     context.WithoutCancel(ctx),
		deleter: deleter,
		clock:   clock,
		delay:   delay,
		pending: make(map[Location]*pendingDelete),
	}
}

// Schedule starts the undo window for loc. Scheduling a location that is
// already pending restarts its window.
func (r *Remover) Schedule(loc Location) error {
	if loc == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRemoverClosed
	}

	if prev, ok := r.pending[loc]; ok {
		prev.timer.Stop()
	}

	r.seq++
	p := &pendingDelete{seq: r.seq}
	p.timer = r.clock.AfterFunc(r.delay, func() {
		r.expire(loc, p)
	})
	r.pending[loc] = p

	log.Debug().Str("location", string(loc)).Dur("delay", r.delay).Msg("scheduled location delete")
	return nil
}

// Undo cancels a scheduled delete. It returns false if loc was not pending,
// including when its delete has already been committed.
func (r *Remover) Undo(loc Location) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pending[loc]
	if !ok {
		return false
	}
	p.timer.Stop()
	delete(r.pending, loc)

	log.Debug().Str("location", string(loc)).Msg("undid location delete")
	return true
}

// Pending lists locations awaiting delete, oldest first.
func (r *Remover) Pending() []Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedLocked()
}

// Flush commits every pending delete now, in schedule order. All deletes are
// attempted; failures are joined into the returned error.
func (r *Remover) Flush(ctx context.Context) error {
	r.mu.Lock()
	locs := r.sortedLocked()
	for _, loc := range locs {
		r.pending[loc].timer.Stop()
		delete(r.pending, loc)
	}
	r.mu.Unlock()

	var errs []error
	for _, loc := range locs {
		if err := r.commit(ctx, loc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close stops accepting new deletes, commits the pending ones and waits for
// any timer-triggered delete still running.
func (r *Remover) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	err := r.Flush(r.ctx)
	r.inflight.Wait()
	return err
}

func (r *Remover) expire(loc Location, p *pendingDelete) {
	r.mu.Lock()
	if r.closed || r.pending[loc] != p {
		r.mu.Unlock()
		return
	}
	delete(r.pending, loc)
	r.inflight.Add(1)
	r.mu.Unlock()

	defer r.inflight.Done()
	_ = r.commit(r.ctx, loc)
}

func (r *Remover) commit(ctx context.Context, loc Location) error {
	_, err := r.deleter.Delete(ctx, loc)
	if err != nil {
		log.Error().Err(err).Str("location", string(loc)).Msg("failed to commit location delete")
		return fmt.Errorf("failed to delete %q: %w", loc, err)
	}
	return nil
}

func (r *Remover) sortedLocked() []Location {
	locs := make([]Location, 0, len(r.pending))
	for loc := range r.pending {
		locs = append(locs, loc)
	}
	slices.SortFunc(locs, func(a, b Location) int {
		return cmp.Compare(r.pending[a].seq, r.pending[b].seq)
	})
	return locs
}
