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

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ZaparooProject/zaparoo-locations/pkg/api/models"
	"github.com/ZaparooProject/zaparoo-locations/pkg/api/validation"
	"github.com/ZaparooProject/zaparoo-locations/pkg/locations"
	"github.com/rs/zerolog/log"
)

func (h *handlers) handleList(w http.ResponseWriter, r *http.Request) {
	locs, err := h.registry.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list locations")
		writeError(w, http.StatusInternalServerError, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, models.LocationsResponse{
		Locations: locs,
		Pending:   h.remover.Pending(),
	})
}

func (h *handlers) handlePending(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.LocationsResponse{
		Locations: []locations.Location{},
		Pending:   h.remover.Pending(),
	})
}

func (h *handlers) handleAdd(w http.ResponseWriter, r *http.Request) {
	var params models.LocationParams
	if !decodeParams(w, r, &params) {
		return
	}

	loc := locations.Location(params.Location)
	res, err := h.registry.Add(r.Context(), loc)
	if err != nil {
		log.Error().Err(err).Str("location", params.Location).Msg("failed to add location")
		writeError(w, http.StatusInternalServerError, err, nil)
		return
	}

	// a location re-added during its undo window just stays
	h.remover.Undo(loc)

	writeJSON(w, http.StatusOK, models.LocationResultResponse{Result: res, Location: loc})
}

func (h *handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	var params models.DeleteLocationParams
	if !decodeParams(w, r, &params) {
		return
	}

	loc := locations.Location(params.Location)

	if params.Undoable {
		if err := h.remover.Schedule(loc); err != nil {
			writeError(w, http.StatusServiceUnavailable, err, nil)
			return
		}
		writeJSON(w, http.StatusAccepted, models.PendingDeleteResponse{Location: loc, Pending: true})
		return
	}

	res, err := h.registry.Delete(r.Context(), loc)
	if err != nil {
		log.Error().Err(err).Str("location", params.Location).Msg("failed to delete location")
		writeError(w, http.StatusInternalServerError, err, nil)
		return
	}
	h.remover.Undo(loc)

	writeJSON(w, http.StatusOK, models.LocationResultResponse{Result: res, Location: loc})
}

func (h *handlers) handleUndo(w http.ResponseWriter, r *http.Request) {
	var params models.LocationParams
	if !decodeParams(w, r, &params) {
		return
	}

	loc := locations.Location(params.Location)
	writeJSON(w, http.StatusOK, models.UndoResponse{Location: loc, Undone: h.remover.Undo(loc)})
}

func (h *handlers) handleFlush(w http.ResponseWriter, r *http.Request) {
	if err := h.remover.Flush(r.Context()); err != nil {
		log.Error().Err(err).Msg("failed to flush pending deletes")
		writeError(w, http.StatusInternalServerError, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeParams reads and validates the JSON body into dest, writing a 400
// response and returning false if it can't.
func decodeParams[T any](w http.ResponseWriter, r *http.Request, dest *T) bool {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err, nil)
		return false
	}

	err = validation.ValidateAndUnmarshal(json.RawMessage(body), dest)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, err, verr.Fields)
		} else {
			writeError(w, http.StatusBadRequest, err, nil)
		}
		return false
	}
	return true
}
