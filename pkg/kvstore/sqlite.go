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
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteConnParams = "?_journal_mode=WAL&_synchronous=FULL&_busy_timeout=5000"

// SQLiteStore keeps preferences in a Preferences table.
type SQLiteStore struct {
	sql *sql.DB
}

// OpenSQLite opens or creates the database at path and migrates it to the
// latest schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	err := os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory for database: %w", err)
	}

	sqlInstance, err := sql.Open("sqlite3", path+sqliteConnParams)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = migrateUp(sqlInstance)
	if err != nil {
		_ = sqlInstance.Close()
		return nil, fmt.Errorf("failed to run preference store migrations: %w", err)
	}

	return &SQLiteStore{sql: sqlInstance}, nil
}

// NewSQLiteStore wraps an already migrated connection.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{sql: db}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.sql.QueryRowContext(ctx,
		`select Value from Preferences where Key = ?;`,
		key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("failed to get preference %q: %w", key, sqlErr(err))
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.sql.ExecContext(ctx,
		`insert into Preferences (Key, Value) values (?, ?)
		on conflict(Key) do update set Value = excluded.Value;`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set preference %q: %w", key, sqlErr(err))
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	err := s.sql.Close()
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func sqlErr(err error) error {
	if err != nil && err.Error() == "sql: database is closed" {
		return fmt.Errorf("%w: %w", ErrClosed, err)
	}
	return err
}
