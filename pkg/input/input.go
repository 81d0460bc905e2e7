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

// Package input translates physical button presses into keyboard events.
// The relay runs for the whole process lifetime and feeds the OS input
// stream, so the foreground process, whether that is the front-end shell
// or a launched game, sees ordinary keyboard input and needs no
// awareness of the hardware.
package input

import (
	"fmt"

	"github.com/PocketwheelProject/pocketwheel-core/pkg/config"
	"github.com/PocketwheelProject/pocketwheel-core/pkg/helpers"
)

// Event is a single edge on a physical button: pressed or released.
type Event struct {
	Pin     int
	Pressed bool
}

// Source produces physical input events. Poll returns the edges seen
// since the previous call; an error is transient and the caller retries
// on its next cycle.
type Source interface {
	Poll() ([]Event, error)
	Close() error
}

// Keyboard is the synthesized keyboard device the relay emits into. The
// production implementation is a uinput virtual keyboard.
type Keyboard interface {
	KeyDown(key int) error
	KeyUp(key int) error
	Close() error
}

// Mapping is the fixed table from physical pin IDs to Linux keyboard
// codes. It is built once at startup and never changes afterwards.
type Mapping map[int]int

// MappingFromConfig resolves the configured button bindings into key
// codes. Unknown key names and doubly-bound pins fail startup rather
// than silently dropping a button.
func MappingFromConfig(buttons []config.ButtonMapping) (Mapping, error) {
	mapping := make(Mapping, len(buttons))
	seen := make([]int, 0, len(buttons))
	for _, b := range buttons {
		code, ok := KeyboardCode(b.Key)
		if !ok {
			return nil, fmt.Errorf("unknown keyboard key %q for pin %d", b.Key, b.Pin)
		}
		if helpers.Contains(seen, b.Pin) {
			return nil, fmt.Errorf("pin %d is bound to more than one key", b.Pin)
		}
		seen = append(seen, b.Pin)
		mapping[b.Pin] = code
	}
	return mapping, nil
}

// Pins returns the mapped pin IDs, for wiring up a hardware source.
func (m Mapping) Pins() []int {
	pins := make([]int, 0, len(m))
	for pin := range m {
		pins = append(pins, pin)
	}
	return pins
}
