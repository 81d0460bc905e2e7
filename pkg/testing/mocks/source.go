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

package mocks

import (
	"sync"

	"github.com/PocketwheelProject/pocketwheel-core/pkg/input"
)

// MockSource implements input.Source for testing. Each Poll call
// returns the next queued batch of events (or error), so a test can
// script exactly what each polling cycle sees.
type MockSource struct {
	mu      sync.Mutex
	batches []pollResult
	Closed  bool
}

type pollResult struct {
	err    error
	events []input.Event
}

func NewMockSource() *MockSource {
	return &MockSource{}
}

// QueueEvents appends one poll cycle's worth of events.
func (m *MockSource) QueueEvents(events ...input.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, pollResult{events: events})
}

// QueueError appends a poll cycle that fails.
func (m *MockSource) QueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, pollResult{err: err})
}

func (m *MockSource) Poll() ([]input.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.batches) == 0 {
		return nil, nil
	}
	batch := m.batches[0]
	m.batches = m.batches[1:]
	return batch.events, batch.err
}

func (m *MockSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// Pending returns how many scripted poll cycles remain.
func (m *MockSource) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.batches)
}
