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

package gpio

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/PocketwheelProject/pocketwheel-core/pkg/input"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRoot = "/sys/class/gpio"

// fakeSysfs seeds the memory filesystem with pin dirs the way the
// kernel would present already-exported pins, all idle high.
func fakeSysfs(t *testing.T, pins ...int) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testRoot, 0o755))
	for _, pin := range pins {
		setPinValue(t, fs, pin, "1")
	}
	return fs
}

func setPinValue(t *testing.T, fs afero.Fs, pin int, value string) {
	t.Helper()
	path := filepath.Join(testRoot, fmt.Sprintf("gpio%d", pin), "value")
	require.NoError(t, afero.WriteFile(fs, path, []byte(value+"\n"), 0o644))
}

func TestPinSourceReportsEdges(t *testing.T) {
	t.Parallel()

	fs := fakeSysfs(t, 17, 18)
	source, err := NewPinSource(fs, testRoot, []int{17, 18})
	require.NoError(t, err)

	// All pins idle: no edges.
	events, err := source.Poll()
	require.NoError(t, err)
	assert.Empty(t, events)

	// Active low: 0 is a press.
	setPinValue(t, fs, 17, "0")
	events, err = source.Poll()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, input.Event{Pin: 17, Pressed: true}, events[0])

	// Held button produces no further events.
	events, err = source.Poll()
	require.NoError(t, err)
	assert.Empty(t, events)

	setPinValue(t, fs, 17, "1")
	events, err = source.Poll()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, input.Event{Pin: 17, Pressed: false}, events[0])
}

func TestPinSourceSimultaneousEdges(t *testing.T) {
	t.Parallel()

	fs := fakeSysfs(t, 17, 18)
	source, err := NewPinSource(fs, testRoot, []int{17, 18})
	require.NoError(t, err)

	setPinValue(t, fs, 17, "0")
	setPinValue(t, fs, 18, "0")

	events, err := source.Poll()
	require.NoError(t, err)
	assert.ElementsMatch(t, []input.Event{
		{Pin: 17, Pressed: true},
		{Pin: 18, Pressed: true},
	}, events)
}

func TestPinSourceReadFailure(t *testing.T) {
	t.Parallel()

	fs := fakeSysfs(t, 17)
	source, err := NewPinSource(fs, testRoot, []int{17})
	require.NoError(t, err)

	valuePath := filepath.Join(testRoot, "gpio17", "value")
	require.NoError(t, fs.Remove(valuePath))

	_, err = source.Poll()
	require.Error(t, err)

	// The source recovers once the pin is readable again.
	setPinValue(t, fs, 17, "0")
	events, err := source.Poll()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].Pressed)
}

func TestPinSourceExportsMissingPins(t *testing.T) {
	t.Parallel()

	fs := fakeSysfs(t)
	_, err := NewPinSource(fs, testRoot, []int{22})
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, filepath.Join(testRoot, "export"))
	require.NoError(t, err)
	assert.Equal(t, "22", string(data))

	direction, err := afero.ReadFile(fs, filepath.Join(testRoot, "gpio22", "direction"))
	require.NoError(t, err)
	assert.Equal(t, "in", string(direction))
}
