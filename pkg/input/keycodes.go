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

package input

import "strings"

// Key codes from the Linux input event interface
// (input-event-codes.h). Only the keys a handheld's buttons plausibly
// bind to are listed.
var keyboardCodes = map[string]int{
	"esc":       1,
	"1":         2,
	"2":         3,
	"3":         4,
	"4":         5,
	"5":         6,
	"6":         7,
	"7":         8,
	"8":         9,
	"9":         10,
	"0":         11,
	"tab":       15,
	"q":         16,
	"w":         17,
	"e":         18,
	"r":         19,
	"t":         20,
	"y":         21,
	"u":         22,
	"i":         23,
	"o":         24,
	"p":         25,
	"enter":     28,
	"ctrl":      29,
	"a":         30,
	"s":         31,
	"d":         32,
	"f":         33,
	"g":         34,
	"h":         35,
	"j":         36,
	"k":         37,
	"l":         38,
	"shift":     42,
	"z":         44,
	"x":         45,
	"c":         46,
	"v":         47,
	"b":         48,
	"n":         49,
	"m":         50,
	"space":     57,
	"f1":        59,
	"f2":        60,
	"f3":        61,
	"f4":        62,
	"up":        103,
	"pageup":    104,
	"left":      105,
	"right":     106,
	"end":       107,
	"down":      108,
	"pagedown":  109,
	"insert":    110,
	"delete":    111,
	"backspace": 14,
}

// KeyboardCode returns the Linux key code for a key name used in the
// button mapping config. Names are case-insensitive.
func KeyboardCode(name string) (int, bool) {
	code, ok := keyboardCodes[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}
