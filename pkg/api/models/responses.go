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

package models

import "github.com/ZaparooProject/zaparoo-locations/pkg/locations"

type LocationsResponse struct {
	Locations []locations.Location `json:"locations"`
	Pending   []locations.Location `json:"pending"`
}

type LocationResultResponse struct {
	Result   locations.Result   `json:"result"`
	Location locations.Location `json:"location"`
}

// PendingDeleteResponse answers an undoable delete. The location stays
// listed until the undo window closes.
type PendingDeleteResponse struct {
	Location locations.Location `json:"location"`
	Pending  bool               `json:"pending"`
}

type UndoResponse struct {
	Location locations.Location `json:"location"`
	Undone   bool               `json:"undone"`
}

type ErrorResponse struct {
	Fields any    `json:"fields,omitempty"`
	Error  string `json:"error"`
}
