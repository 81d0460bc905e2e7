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

package config

import "time"

const (
	AppName    = "pocketwheel"
	AppVersion = "1.2.0"

	CfgFile = "config.toml"
	LogFile = "core.log"
	PidFile = "core.pid"

	// EntryPointFile is the file that must exist at the top level of a
	// project folder for it to be listed and launched.
	EntryPointFile = "main.py"

	// ThumbnailFile is the optional menu image inside a project folder.
	ThumbnailFile = "thumbnail.png"

	APIRequestTimeout = 30 * time.Second
)
