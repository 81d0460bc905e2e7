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

package state

import "github.com/rs/zerolog/log"

const (
	NotificationLaunchStarted = "launch.started"
	NotificationLaunchStopped = "launch.stopped"
	NotificationCatalogStale  = "catalog.stale"
)

// Notification is one event on the service's broadcast stream.
type Notification struct {
	Params any    `json:"params,omitempty"`
	Method string `json:"method"`
}

// LaunchParams describes the game a launch notification refers to.
type LaunchParams struct {
	Name string `json:"name"`
	Path string `json:"path"`
	PID  int    `json:"pid"`
}

// Notify publishes without blocking; if the buffer is full the event is
// dropped and logged, never stalling a state transition.
func Notify(ch chan<- Notification, method string, params any) {
	n := Notification{Method: method, Params: params}
	select {
	case ch <- n:
	default:
		log.Warn().Str("method", method).Msg("notification channel full, dropping")
	}
}
