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

package input

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Relay polls a physical input source at a fixed cadence and synthesizes
// one keyboard event per button edge. It owns the keyboard device for
// its whole lifetime, keeping the emission point single-threaded.
//
// The relay is independent of the launch coordinator: it keeps running
// while a game owns the display, since the game expects keyboard input.
type Relay struct {
	source   Source
	keyboard Keyboard
	clock    clockwork.Clock
	mapping  Mapping
	interval time.Duration
}

func NewRelay(
	source Source,
	keyboard Keyboard,
	mapping Mapping,
	interval time.Duration,
	clock clockwork.Clock,
) *Relay {
	return &Relay{
		source:   source,
		keyboard: keyboard,
		mapping:  mapping,
		interval: interval,
		clock:    clock,
	}
}

// Run polls and emits until ctx is canceled. A failed read from the
// source is logged and retried on the next cycle; it never stops the
// relay.
func (r *Relay) Run(ctx context.Context) {
	log.Info().
		Dur("interval", r.interval).
		Int("buttons", len(r.mapping)).
		Msg("input relay started")

	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.close()
			return
		case <-ticker.Chan():
			events, err := r.source.Poll()
			if err != nil {
				log.Warn().Err(err).Msg("input source read failed, retrying next cycle")
				continue
			}
			for i := range events {
				r.emit(&events[i])
			}
		}
	}
}

// emit synthesizes the keyboard event for one physical edge. Pins with
// no mapping entry are ignored.
func (r *Relay) emit(event *Event) {
	key, ok := r.mapping[event.Pin]
	if !ok {
		return
	}

	var err error
	if event.Pressed {
		err = r.keyboard.KeyDown(key)
	} else {
		err = r.keyboard.KeyUp(key)
	}
	if err != nil {
		log.Warn().Err(err).
			Int("pin", event.Pin).
			Int("key", key).
			Msg("failed to synthesize keyboard event")
	}
}

func (r *Relay) close() {
	if err := r.source.Close(); err != nil {
		log.Warn().Err(err).Msg("error closing input source")
	}
	if err := r.keyboard.Close(); err != nil {
		log.Warn().Err(err).Msg("error closing keyboard device")
	}
	log.Info().Msg("input relay stopped")
}
