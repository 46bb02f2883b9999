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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	bolterrors "go.etcd.io/bbolt/errors"
)

const BucketPreferences = "preferences"

// BoltStore keeps preferences in a single bbolt bucket.
type BoltStore struct {
	bdb *bolt.DB
}

func OpenBolt(path string) (*BoltStore, error) {
	err := os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory for bolt database: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(txn *bolt.Tx) error {
		_, err := txn.CreateBucketIfNotExists([]byte(BucketPreferences))
		return err //nolint:wrapcheck // wrapped below
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create %q bucket: %w", BucketPreferences, err)
	}

	return &BoltStore{bdb: db}, nil
}

func (s *BoltStore) Get(_ context.Context, key string) (string, error) {
	var value string
	err := s.bdb.View(func(txn *bolt.Tx) error {
		b := txn.Bucket([]byte(BucketPreferences))
		if b == nil {
			return fmt.Errorf("bucket %q does not exist", BucketPreferences)
		}
		value = string(b.Get([]byte(key)))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to view bolt database: %w", boltErr(err))
	}
	return value, nil
}

func (s *BoltStore) Set(_ context.Context, key, value string) error {
	err := s.bdb.Update(func(txn *bolt.Tx) error {
		b := txn.Bucket([]byte(BucketPreferences))
		if b == nil {
			return fmt.Errorf("bucket %q does not exist", BucketPreferences)
		}
		return b.Put([]byte(key), []byte(value)) //nolint:wrapcheck // wrapped below
	})
	if err != nil {
		return fmt.Errorf("failed to update bolt database: %w", boltErr(err))
	}
	return nil
}

func (s *BoltStore) Close() error {
	if err := s.bdb.Close(); err != nil {
		return fmt.Errorf("failed to close bolt database: %w", err)
	}
	return nil
}

func boltErr(err error) error {
	if errors.Is(err, bolterrors.ErrDatabaseNotOpen) {
		return fmt.Errorf("%w: %w", ErrClosed, err)
	}
	return err
}
