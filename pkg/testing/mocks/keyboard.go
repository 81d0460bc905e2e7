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

import "sync"

// MockKeyboard implements input.Keyboard for testing. It records all
// key events for verification.
type MockKeyboard struct {
	mu           sync.Mutex
	KeyDownCalls []int
	KeyUpCalls   []int
	Closed       bool
}

func NewMockKeyboard() *MockKeyboard {
	return &MockKeyboard{}
}

func (m *MockKeyboard) KeyDown(key int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.KeyDownCalls = append(m.KeyDownCalls, key)
	return nil
}

func (m *MockKeyboard) KeyUp(key int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.KeyUpCalls = append(m.KeyUpCalls, key)
	return nil
}

func (m *MockKeyboard) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// Downs returns a copy of the recorded key-down events.
func (m *MockKeyboard) Downs() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	downs := make([]int, len(m.KeyDownCalls))
	copy(downs, m.KeyDownCalls)
	return downs
}

// Ups returns a copy of the recorded key-up events.
func (m *MockKeyboard) Ups() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	ups := make([]int, len(m.KeyUpCalls))
	copy(ups, m.KeyUpCalls)
	return ups
}

// Reset clears all recorded calls.
func (m *MockKeyboard) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.KeyDownCalls = nil
	m.KeyUpCalls = nil
}
