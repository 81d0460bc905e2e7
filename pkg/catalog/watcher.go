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

package catalog

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watcher flags the catalog as stale when anything under the games root
// changes. It never rescans by itself: the shell checks Stale when it
// regains the display and performs a full rescan, so scan semantics stay
// identical to a cold start.
type Watcher struct {
	watcher *fsnotify.Watcher
	onStale func()
	stale   atomic.Bool
}

// OnStale installs a callback fired on the idle-to-stale transition.
// Must be set before Start.
func (w *Watcher) OnStale(fn func()) {
	w.onStale = fn
}

func NewWatcher(root string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}

	if err := fsw.Add(root); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch games root: %w", err)
	}

	return &Watcher{watcher: fsw}, nil
}

// Start consumes watch events until ctx is canceled. Watch errors are
// logged and the loop continues; a closed event channel ends it.
func (w *Watcher) Start(ctx context.Context) {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing filesystem watcher")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			log.Debug().Str("path", event.Name).Str("op", event.Op.String()).
				Msg("games root changed, marking catalog stale")
			if !w.stale.Swap(true) && w.onStale != nil {
				w.onStale()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("filesystem watcher error")
		}
	}
}

// Stale reports whether the games root changed since the last ClearStale.
func (w *Watcher) Stale() bool {
	return w.stale.Load()
}

func (w *Watcher) ClearStale() {
	w.stale.Store(false)
}
