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

	"github.com/ZaparooProject/zaparoo-locations/pkg/helpers/syncutil"
	"github.com/spf13/afero"
)

// fileCodec converts a whole preferences file to and from its values.
type fileCodec interface {
	decode(data []byte) (map[string]string, error)
	encode(vals map[string]string) ([]byte, error)
}

// fileStore is a Store over a single file. Every Get re-reads the file so
// edits made while the process is running are picked up, and every Set
// rewrites it through a temp file and rename.
type fileStore struct {
	fs     afero.Fs
	codec  fileCodec
	path   string
	mu     syncutil.RWMutex
	closed bool
}

func newFileStore(fs afero.Fs, path string, codec fileCodec) *fileStore {
	return &fileStore{fs: fs, path: path, codec: codec}
}

func (s *fileStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", ErrClosed
	}

	vals, err := s.read()
	if err != nil {
		return "", err
	}
	return vals[key], nil
}

func (s *fileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	vals, err := s.read()
	if err != nil {
		return err
	}
	vals[key] = value

	data, err := s.codec.encode(vals)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.path, err)
	}

	err = s.fs.MkdirAll(filepath.Dir(s.path), 0o750)
	if err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	err = afero.WriteFile(s.fs, tmpPath, data, 0o600)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}

	err = s.fs.Rename(tmpPath, s.path)
	if err != nil {
		_ = s.fs.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

func (s *fileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fileStore) read() (map[string]string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	vals, err := s.codec.decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}
	if vals == nil {
		vals = make(map[string]string)
	}
	return vals, nil
}
