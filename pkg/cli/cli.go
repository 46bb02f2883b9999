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

// Package cli holds the flag handling and environment setup shared by the
// locations command.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/ZaparooProject/zaparoo-locations/internal/telemetry"
	"github.com/ZaparooProject/zaparoo-locations/pkg/api"
	"github.com/ZaparooProject/zaparoo-locations/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-locations/pkg/api/validation"
	"github.com/ZaparooProject/zaparoo-locations/pkg/config"
	"github.com/ZaparooProject/zaparoo-locations/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-locations/pkg/kvstore"
	"github.com/ZaparooProject/zaparoo-locations/pkg/locations"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var ErrMissingValue = errors.New("flag requires a value")

type Flags struct {
	fs      *flag.FlagSet
	List    *bool
	Add     *string
	Delete  *string
	Serve   *bool
	Config  *string
	Version *bool
}

// SetupFlags defines the command's flags on fs.
func SetupFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs: fs,
		List: fs.Bool(
			"list",
			false,
			"print saved search locations, one per line",
		),
		Add: fs.String(
			"add",
			"",
			"add a search location",
		),
		Delete: fs.String(
			"delete",
			"",
			"delete a search location",
		),
		Serve: fs.Bool(
			"serve",
			false,
			"serve the location api until interrupted",
		),
		Config: fs.String(
			"config",
			"",
			"path to config file",
		),
		Version: fs.Bool(
			"version",
			false,
			"print version and exit",
		),
	}
}

func (f *Flags) isFlagPassed(name string) bool {
	found := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// Pre parses args and handles flags that need no environment. Returns true
// if the command is done.
func (f *Flags) Pre(args []string, out io.Writer) (bool, error) {
	if err := f.fs.Parse(args); err != nil {
		return false, fmt.Errorf("failed to parse flags: %w", err)
	}

	if *f.Version {
		_, _ = fmt.Fprintf(out, "Zaparoo Locations v%s\n", config.AppVersion)
		return true, nil
	}

	return false, nil
}

// Setup loads the user config and initializes logging and error reporting.
// An empty cfgPath uses the default config location.
func Setup(cfgPath string, writers []io.Writer) (*config.Instance, error) {
	var cfg *config.Instance
	var err error
	if cfgPath != "" {
		cfg, err = config.OpenConfig(cfgPath, config.BaseDefaults)
	} else {
		cfg, err = config.NewConfig(helpers.ConfigDir(), config.BaseDefaults)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	err = helpers.InitLogging(helpers.LogDir(), cfg.DebugLogging(), writers...)
	if err != nil {
		return nil, fmt.Errorf("error initializing logging: %w", err)
	}

	// opt-in
	if err := telemetry.Init(
		cfg.ErrorReporting(),
		cfg.ErrorReportingDSN(),
		config.AppVersion,
	); err != nil {
		log.Warn().Err(err).Msg("failed to initialize error reporting")
	}

	return cfg, nil
}

// Services is the opened store and the registry and remover built on it.
type Services struct {
	Store    kvstore.Store
	Registry *locations.Registry
	Remover  *locations.Remover
}

// OpenServices opens the configured store, migrates any legacy location
// value and builds the registry and remover.
func OpenServices(
	ctx context.Context,
	cfg *config.Instance,
	fs afero.Fs,
	dataDir string,
	clock clockwork.Clock,
) (*Services, error) {
	store, err := kvstore.Open(cfg, fs, dataDir)
	if err != nil {
		return nil, fmt.Errorf("error opening store: %w", err)
	}

	key := cfg.LocationsKey()
	if legacy := cfg.LocationsLegacyKey(); legacy != "" {
		if _, err := locations.MigrateLegacyKey(ctx, store, legacy, key); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("error migrating legacy locations: %w", err)
		}
	}

	opts := []locations.Option{locations.WithKey(key)}
	if cfg.NormalizeLocations() {
		opts = append(opts, locations.WithNormalizer(locations.NormalizeLocation))
	}
	reg := locations.NewRegistry(store, opts...)

	return &Services{
		Store:    store,
		Registry: reg,
		Remover:  locations.NewRemover(ctx, reg, clock, cfg.UndoDelay()),
	}, nil
}

// Close commits pending deletes and closes the store.
func (s *Services) Close() error {
	return errors.Join(s.Remover.Close(), s.Store.Close())
}

// Run performs the action selected by the flags. With no action flag the
// saved locations are listed.
func (f *Flags) Run(ctx context.Context, cfg *config.Instance, svc *Services, out io.Writer) error {
	switch {
	case f.isFlagPassed("add"):
		loc, err := f.location("add", *f.Add)
		if err != nil {
			return err
		}
		res, err := svc.Registry.Add(ctx, loc)
		if err != nil {
			return fmt.Errorf("error adding location: %w", err)
		}
		_, _ = fmt.Fprintln(out, res)
	case f.isFlagPassed("delete"):
		loc, err := f.location("delete", *f.Delete)
		if err != nil {
			return err
		}
		res, err := svc.Registry.Delete(ctx, loc)
		if err != nil {
			return fmt.Errorf("error deleting location: %w", err)
		}
		_, _ = fmt.Fprintln(out, res)
	case *f.Serve:
		if err := api.Start(ctx, cfg, svc.Registry, svc.Remover); err != nil {
			return fmt.Errorf("error serving api: %w", err)
		}
	default:
		locs, err := svc.Registry.List(ctx)
		if err != nil {
			return fmt.Errorf("error listing locations: %w", err)
		}
		for _, loc := range locs {
			_, _ = fmt.Fprintln(out, loc)
		}
	}
	return nil
}

func (*Flags) location(name, value string) (locations.Location, error) {
	if value == "" {
		return "", fmt.Errorf("%s %w", name, ErrMissingValue)
	}
	if err := validation.DefaultValidator.Validate(&models.LocationParams{Location: value}); err != nil {
		return "", fmt.Errorf("invalid location: %w", err)
	}
	return locations.Location(value), nil
}
