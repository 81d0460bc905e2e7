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

//go:build linux

// Package uinputkbd backs the input relay with a uinput virtual
// keyboard. Events written here are indistinguishable from a physical
// keyboard to every other process, which is what lets unmodified games
// respond to the handheld's buttons.
package uinputkbd

import (
	"fmt"

	"github.com/bendahl/uinput"
)

const (
	DeviceName = "Pocketwheel"
	uinputDev  = "/dev/uinput"
)

// Keyboard wraps the uinput device behind the input.Keyboard interface.
// This device must be closed when the service stops.
type Keyboard struct {
	device uinput.Keyboard
}

func NewKeyboard() (*Keyboard, error) {
	kbd, err := uinput.CreateKeyboard(uinputDev, []byte(DeviceName))
	if err != nil {
		return nil, fmt.Errorf("failed to create keyboard device: %w", err)
	}
	return &Keyboard{device: kbd}, nil
}

func (k *Keyboard) KeyDown(key int) error {
	if err := k.device.KeyDown(key); err != nil {
		return fmt.Errorf("failed to press key down: %w", err)
	}
	return nil
}

func (k *Keyboard) KeyUp(key int) error {
	if err := k.device.KeyUp(key); err != nil {
		return fmt.Errorf("failed to release key: %w", err)
	}
	return nil
}

func (k *Keyboard) Close() error {
	if err := k.device.Close(); err != nil {
		return fmt.Errorf("failed to close keyboard device: %w", err)
	}
	return nil
}
