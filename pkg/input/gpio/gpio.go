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

// Package gpio reads button states through the sysfs GPIO interface.
// Buttons are wired active-low with pull-ups, so a value of 0 means
// pressed.
package gpio

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/PocketwheelProject/pocketwheel-core/pkg/input"
	"github.com/spf13/afero"
)

const DefaultSysfsRoot = "/sys/class/gpio"

// PinSource polls a set of GPIO pins and reports edges between polls.
// It implements input.Source.
type PinSource struct {
	fs   afero.Fs
	last map[int]bool
	root string
	pins []int
}

// NewPinSource exports the given pins, configures them as inputs, and
// returns a source ready to poll. Pins already exported by a previous
// run are reused.
func NewPinSource(fs afero.Fs, root string, pins []int) (*PinSource, error) {
	s := &PinSource{
		fs:   fs,
		root: root,
		pins: pins,
		last: make(map[int]bool, len(pins)),
	}

	for _, pin := range pins {
		if err := s.exportPin(pin); err != nil {
			return nil, err
		}
		// Buttons idle high. Assume released until the first poll.
		s.last[pin] = false
	}

	return s, nil
}

func (s *PinSource) exportPin(pin int) error {
	pinDir := filepath.Join(s.root, fmt.Sprintf("gpio%d", pin))

	if _, err := s.fs.Stat(pinDir); err != nil {
		exportPath := filepath.Join(s.root, "export")
		err := afero.WriteFile(s.fs, exportPath, []byte(strconv.Itoa(pin)), 0o600)
		if err != nil {
			return fmt.Errorf("failed to export gpio pin %d: %w", pin, err)
		}
	}

	directionPath := filepath.Join(pinDir, "direction")
	if err := afero.WriteFile(s.fs, directionPath, []byte("in"), 0o600); err != nil {
		return fmt.Errorf("failed to set gpio pin %d direction: %w", pin, err)
	}

	return nil
}

// Poll reads every pin and returns an event for each changed state.
// A read failure aborts the whole cycle so the caller retries with a
// consistent view next time.
func (s *PinSource) Poll() ([]input.Event, error) {
	var events []input.Event

	for _, pin := range s.pins {
		pressed, err := s.readPin(pin)
		if err != nil {
			return nil, err
		}
		if pressed != s.last[pin] {
			s.last[pin] = pressed
			events = append(events, input.Event{Pin: pin, Pressed: pressed})
		}
	}

	return events, nil
}

func (s *PinSource) readPin(pin int) (bool, error) {
	valuePath := filepath.Join(s.root, fmt.Sprintf("gpio%d", pin), "value")
	data, err := afero.ReadFile(s.fs, valuePath)
	if err != nil {
		return false, fmt.Errorf("failed to read gpio pin %d: %w", pin, err)
	}

	// Active low: 0 on the wire is a pressed button.
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("0")), nil
}

// Close unexports the pins. Errors are collected but non-fatal since
// unexport fails on shutdown paths where sysfs is already gone.
func (s *PinSource) Close() error {
	unexportPath := filepath.Join(s.root, "unexport")
	var firstErr error
	for _, pin := range s.pins {
		err := afero.WriteFile(s.fs, unexportPath, []byte(strconv.Itoa(pin)), 0o600)
		if err != nil && firstErr == nil && !os.IsNotExist(err) {
			firstErr = fmt.Errorf("failed to unexport gpio pin %d: %w", pin, err)
		}
	}
	return firstErr
}
