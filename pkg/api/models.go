// Pocketwheel Core
// Copyright (c) 2026 The Pocketwheel Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Pocketwheel Core.
//
// Pocketwheel Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Pocketwheel Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Pocketwheel Core.  If not, see <http://www.gnu.org/licenses/>.

package api

type VersionResponse struct {
	App      string `json:"app"`
	Version  string `json:"version"`
	BootUUID string `json:"bootUuid"`
}

type GameResponse struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

type GamesResponse struct {
	Games []GameResponse `json:"games"`
}

type StatusResponse struct {
	Execution    string `json:"execution"`
	RunningGame  string `json:"runningGame,omitempty"`
	RunningPID   int    `json:"runningPid,omitempty"`
	CatalogStale bool   `json:"catalogStale"`
	Online       bool   `json:"online"`
	ClockTime    string `json:"clockTime"`
}

type LaunchRequest struct {
	Path string `json:"path"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
