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

package helpers

import (
	"path/filepath"

	"github.com/PocketwheelProject/pocketwheel-core/pkg/config"
	"github.com/adrg/xdg"
)

// ConfigDir returns the directory where the config file is stored.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, config.AppName)
}

// DataDir returns the directory used for logs and runtime files.
func DataDir() string {
	return filepath.Join(xdg.DataHome, config.AppName)
}

// Contains returns true if slice xs contains value x.
func Contains[T comparable](xs []T, x T) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
