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

// Package state holds the process-wide runtime state handle shared by
// the service, the API and the front-end shell. Execution state itself
// lives in the launch coordinator; this handle carries everything
// around it: lifetime context, boot identity and the notification
// stream.
//
// LOCKING RULES: the mu mutex protects all mutable fields. Never send
// to the notifications channel while holding the lock.
package state

import (
	"context"

	"github.com/PocketwheelProject/pocketwheel-core/pkg/helpers/syncutil"
)

type State struct {
	ctx           context.Context
	ctxCancelFunc context.CancelFunc
	Notifications chan<- Notification
	bootUUID      string
	mu            syncutil.RWMutex
	stopService   bool
}

func NewState(bootUUID string) (state *State, notificationCh <-chan Notification) {
	// Buffered so a slow websocket consumer never blocks a state
	// transition in the coordinator.
	ns := make(chan Notification, 100)
	ctx, ctxCancelFunc := context.WithCancel(context.Background())
	return &State{
		ctx:           ctx,
		ctxCancelFunc: ctxCancelFunc,
		Notifications: ns,
		bootUUID:      bootUUID,
	}, ns
}

// GetContext returns the service lifetime context, canceled when the
// service stops.
func (s *State) GetContext() context.Context {
	return s.ctx
}

// StopService cancels the lifetime context. Safe to call more than
// once.
func (s *State) StopService() {
	s.mu.Lock()
	s.stopService = true
	s.mu.Unlock()
	s.ctxCancelFunc()
}

func (s *State) Stopping() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stopService
}

func (s *State) BootUUID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bootUUID
}
