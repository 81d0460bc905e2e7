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

package launcher

import "errors"

var (
	// ErrAlreadyRunning is returned by Launch while a child game is
	// active. Concurrent launches are rejected, never queued.
	ErrAlreadyRunning = errors.New("a game is already running")

	// ErrMissingEntryPoint is returned when a project's entry point no
	// longer exists on disk at launch time.
	ErrMissingEntryPoint = errors.New("project entry point does not exist")
)
