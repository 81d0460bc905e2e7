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

const DefaultDebounce = 200 * time.Millisecond

// PowerButton watches a dedicated button source and invokes onPress for
// each debounced press edge. The service wires onPress to a clean
// shutdown of the whole process.
type PowerButton struct {
	source    Source
	clock     clockwork.Clock
	lastPress time.Time
	interval  time.Duration
	debounce  time.Duration
}

func NewPowerButton(
	source Source,
	interval, debounce time.Duration,
	clock clockwork.Clock,
) *PowerButton {
	return &PowerButton{
		source:   source,
		interval: interval,
		debounce: debounce,
		clock:    clock,
	}
}

// Run polls until ctx is canceled. Release edges and presses inside the
// debounce window are ignored.
func (b *PowerButton) Run(ctx context.Context, onPress func()) {
	ticker := b.clock.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := b.source.Close(); err != nil {
				log.Warn().Err(err).Msg("error closing power button source")
			}
			return
		case <-ticker.Chan():
			events, err := b.source.Poll()
			if err != nil {
				log.Warn().Err(err).Msg("power button read failed, retrying next cycle")
				continue
			}
			for _, event := range events {
				if !event.Pressed {
					continue
				}
				now := b.clock.Now()
				if !b.lastPress.IsZero() && now.Sub(b.lastPress) < b.debounce {
					continue
				}
				b.lastPress = now
				log.Info().Msg("power button pressed, initiating shutdown")
				onPress()
			}
		}
	}
}
