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

package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// DisplayName derives a menu label from a project folder name. Runs of
// separator characters (anything not a letter or digit) collapse into a
// single space, then the result is title-cased. The derivation is pure
// and idempotent: DisplayName(DisplayName(x)) == DisplayName(x).
func DisplayName(folder string) string {
	mapped := strings.Map(func(r rune) rune {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			return r
		}
		return ' '
	}, folder)

	words := strings.Fields(mapped)
	return titleCaser.String(strings.ToLower(strings.Join(words, " ")))
}
