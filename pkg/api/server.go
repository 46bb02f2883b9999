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

// Package api exposes the location registry over HTTP for front-ends that
// don't embed it.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	apimiddleware "github.com/ZaparooProject/zaparoo-locations/pkg/api/middleware"
	"github.com/ZaparooProject/zaparoo-locations/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-locations/pkg/config"
	"github.com/ZaparooProject/zaparoo-locations/pkg/locations"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	maxBodyBytes    = 64 * 1024
	shutdownTimeout = 5 * time.Second
)

type handlers struct {
	registry *locations.Registry
	remover  *locations.Remover
}

// NewRouter builds the API routes around the registry and remover.
func NewRouter(
	cfg *config.Instance,
	registry *locations.Registry,
	remover *locations.Remover,
	limiter *apimiddleware.IPRateLimiter,
) http.Handler {
	h := &handlers{registry: registry, remover: remover}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Use(middleware.Timeout(config.APIRequestTimeout))
	r.Use(apimiddleware.IPFilterMiddleware(apimiddleware.NewIPFilter(cfg.APIAllowedIPs())))
	r.Use(apimiddleware.RateLimitMiddleware(limiter))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.APIAllowedOrigins(),
		AllowedMethods: []string{"GET", "POST", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{},
	}))

	r.Get(models.PathLocations, h.handleList)
	r.Post(models.PathLocations, h.handleAdd)
	r.Delete(models.PathLocations, h.handleDelete)
	r.Get(models.PathLocationsPending, h.handlePending)
	r.Post(models.PathLocationsUndo, h.handleUndo)
	r.Post(models.PathLocationsFlush, h.handleFlush)

	return r
}

// Start serves the API on the configured address until ctx is cancelled.
func Start(
	ctx context.Context,
	cfg *config.Instance,
	registry *locations.Registry,
	remover *locations.Remover,
) error {
	listener, err := net.Listen("tcp", cfg.APIListen())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.APIListen(), err)
	}

	limiter := apimiddleware.NewIPRateLimiter(clockwork.NewRealClock())
	limiter.StartCleanup(ctx)

	return Serve(ctx, listener, NewRouter(cfg, registry, remover, limiter))
}

// Serve runs handler on listener until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, listener net.Listener, handler http.Handler) error {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", listener.Addr().String()).Msg("starting location api")
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info().Msg("stopping location api")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down api server: %w", err)
	}
	<-errCh
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write api response")
	}
}

func writeError(w http.ResponseWriter, status int, err error, fields any) {
	writeJSON(w, status, models.ErrorResponse{Error: err.Error(), Fields: fields})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return data, nil
}
