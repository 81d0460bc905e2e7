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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	t.Parallel()

	st, notifications := NewState("boot-1234")
	require.NotNil(t, st)
	require.NotNil(t, notifications)

	assert.Equal(t, "boot-1234", st.BootUUID())
	assert.False(t, st.Stopping())

	select {
	case <-st.GetContext().Done():
		t.Fatal("context canceled before StopService")
	default:
	}
}

func TestStopServiceCancelsContext(t *testing.T) {
	t.Parallel()

	st, _ := NewState("boot-1234")
	st.StopService()

	assert.True(t, st.Stopping())
	select {
	case <-st.GetContext().Done():
	default:
		t.Fatal("context not canceled after StopService")
	}

	// Idempotent.
	st.StopService()
	assert.True(t, st.Stopping())
}

func TestNotifyDeliversInOrder(t *testing.T) {
	t.Parallel()

	st, notifications := NewState("boot-1234")

	Notify(st.Notifications, NotificationLaunchStarted, LaunchParams{Name: "Snake", PID: 42})
	Notify(st.Notifications, NotificationLaunchStopped, LaunchParams{Name: "Snake", PID: 42})

	first := <-notifications
	assert.Equal(t, NotificationLaunchStarted, first.Method)
	second := <-notifications
	assert.Equal(t, NotificationLaunchStopped, second.Method)
}

func TestNotifyNeverBlocks(t *testing.T) {
	t.Parallel()

	ch := make(chan Notification, 1)
	Notify(ch, NotificationCatalogStale, nil)
	// Buffer full: this must drop rather than block the caller.
	Notify(ch, NotificationCatalogStale, nil)

	assert.Len(t, ch, 1)
}
