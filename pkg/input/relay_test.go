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

package input_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PocketwheelProject/pocketwheel-core/pkg/input"
	"github.com/PocketwheelProject/pocketwheel-core/pkg/testing/mocks"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const pollInterval = 10 * time.Millisecond

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type relayFixture struct {
	clock    *clockwork.FakeClock
	source   *mocks.MockSource
	keyboard *mocks.MockKeyboard
	cancel   context.CancelFunc
	done     chan struct{}
}

func startRelay(t *testing.T, mapping input.Mapping) *relayFixture {
	t.Helper()

	f := &relayFixture{
		clock:    clockwork.NewFakeClock(),
		source:   mocks.NewMockSource(),
		keyboard: mocks.NewMockKeyboard(),
		done:     make(chan struct{}),
	}

	relay := input.NewRelay(f.source, f.keyboard, mapping, pollInterval, f.clock)

	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	go func() {
		relay.Run(ctx)
		close(f.done)
	}()

	// Wait for the relay to be parked on its ticker before advancing.
	blockCtx, blockCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer blockCancel()
	require.NoError(t, f.clock.BlockUntilContext(blockCtx, 1))

	t.Cleanup(func() {
		cancel()
		select {
		case <-f.done:
		case <-time.After(2 * time.Second):
			t.Fatal("relay did not stop")
		}
	})

	return f
}

// cycle advances one poll interval and waits for the relay to consume
// every scripted batch.
func (f *relayFixture) cycle(t *testing.T) {
	t.Helper()
	f.clock.Advance(pollInterval)
	assert.Eventually(t, func() bool {
		return f.source.Pending() == 0
	}, 2*time.Second, time.Millisecond)
}

func TestRelayEmitsOneKeyEventPerEdge(t *testing.T) {
	t.Parallel()

	f := startRelay(t, input.Mapping{17: 103})

	f.source.QueueEvents(input.Event{Pin: 17, Pressed: true})
	f.cycle(t)

	assert.Eventually(t, func() bool {
		return len(f.keyboard.Downs()) == 1
	}, 2*time.Second, time.Millisecond)
	assert.Empty(t, f.keyboard.Ups())
	assert.Equal(t, []int{103}, f.keyboard.Downs())

	f.source.QueueEvents(input.Event{Pin: 17, Pressed: false})
	f.cycle(t)

	assert.Eventually(t, func() bool {
		return len(f.keyboard.Ups()) == 1
	}, 2*time.Second, time.Millisecond)

	// No duplication on idle cycles.
	f.cycle(t)
	assert.Len(t, f.keyboard.Downs(), 1)
	assert.Len(t, f.keyboard.Ups(), 1)
}

func TestRelayIgnoresUnmappedPins(t *testing.T) {
	t.Parallel()

	f := startRelay(t, input.Mapping{17: 103})

	f.source.QueueEvents(input.Event{Pin: 99, Pressed: true})
	f.cycle(t)

	assert.Empty(t, f.keyboard.Downs())
	assert.Empty(t, f.keyboard.Ups())
}

func TestRelaySurvivesSourceErrors(t *testing.T) {
	t.Parallel()

	f := startRelay(t, input.Mapping{17: 103})

	f.source.QueueError(errors.New("transient read failure"))
	f.source.QueueEvents(input.Event{Pin: 17, Pressed: true})

	f.cycle(t)
	f.cycle(t)

	assert.Eventually(t, func() bool {
		return len(f.keyboard.Downs()) == 1
	}, 2*time.Second, time.Millisecond)
}

func TestRelayClosesDevicesOnShutdown(t *testing.T) {
	t.Parallel()

	f := startRelay(t, input.Mapping{17: 103})

	f.cancel()
	select {
	case <-f.done:
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not stop")
	}

	require.True(t, f.source.Closed)
	require.True(t, f.keyboard.Closed)
}
