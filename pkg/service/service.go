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

// Package service wires the core together: catalog scanner, input
// relay, launch coordinator, control API and the notification stream.
// Hardware devices are injected by the platform entry point so the
// wiring itself stays portable and testable.
package service

import (
	"fmt"
	"os"

	"github.com/PocketwheelProject/pocketwheel-core/pkg/api"
	"github.com/PocketwheelProject/pocketwheel-core/pkg/catalog"
	"github.com/PocketwheelProject/pocketwheel-core/pkg/config"
	"github.com/PocketwheelProject/pocketwheel-core/pkg/input"
	"github.com/PocketwheelProject/pocketwheel-core/pkg/launcher"
	"github.com/PocketwheelProject/pocketwheel-core/pkg/service/state"
	"github.com/PocketwheelProject/pocketwheel-core/pkg/status"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// StartArgs carries the hardware devices the entry point constructed.
type StartArgs struct {
	// Keyboard receives the relay's synthesized events.
	Keyboard input.Keyboard
	// Buttons is the game-button source polled by the relay.
	Buttons input.Source
	// PowerButton is the shutdown-switch source; nil disables it.
	PowerButton input.Source
	// Clock defaults to the real clock.
	Clock clockwork.Clock
	// DisableAPI skips the HTTP control surface (used by tools).
	DisableAPI bool
}

// Core is the running service. The front-end shell consumes its
// coordinator and scanner; everything else runs on its own goroutines
// until Stop.
type Core struct {
	State       *state.State
	Coordinator *launcher.Coordinator
	Scanner     *catalog.Scanner
	Watcher     *catalog.Watcher
	done        chan struct{}
}

func Start(cfg *config.Instance, args StartArgs) (*Core, error) {
	clock := args.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	bootUUID := uuid.NewString()
	st, notifications := state.NewState(bootUUID)
	log.Info().Str("bootUuid", bootUUID).Msg("starting service")

	if err := os.MkdirAll(cfg.GamesDir(), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create games directory: %w", err)
	}

	fs := afero.NewOsFs()
	scanner := catalog.NewScanner(fs)

	coordinator := launcher.NewCoordinator(launcher.CoordinatorOptions{
		Fs:          fs,
		Interpreter: cfg.Interpreter(),
		OnStarted: func(e launcher.Execution) {
			state.Notify(st.Notifications, state.NotificationLaunchStarted, state.LaunchParams{
				Name: e.Project.DisplayName,
				Path: e.Project.RootPath,
				PID:  e.PID,
			})
		},
		OnStopped: func(e launcher.Execution) {
			state.Notify(st.Notifications, state.NotificationLaunchStopped, state.LaunchParams{
				Name: e.Project.DisplayName,
				Path: e.Project.RootPath,
				PID:  e.PID,
			})
		},
	})

	mapping, err := input.MappingFromConfig(cfg.ButtonMappings())
	if err != nil {
		return nil, err
	}

	relay := input.NewRelay(args.Buttons, args.Keyboard, mapping, cfg.PollInterval(), clock)

	watcher, err := catalog.NewWatcher(cfg.GamesDir())
	if err != nil {
		// The catalog still works without the watcher, the shell just
		// rescans unconditionally.
		log.Warn().Err(err).Msg("games directory watcher unavailable")
		watcher = nil
	}
	if watcher != nil {
		watcher.OnStale(func() {
			state.Notify(st.Notifications, state.NotificationCatalogStale, nil)
		})
	}

	core := &Core{
		State:       st,
		Coordinator: coordinator,
		Scanner:     scanner,
		Watcher:     watcher,
		done:        make(chan struct{}),
	}

	eg := &errgroup.Group{}
	ctx := st.GetContext()

	eg.Go(func() error {
		relay.Run(ctx)
		return nil
	})

	if args.PowerButton != nil {
		power := input.NewPowerButton(
			args.PowerButton,
			cfg.PollInterval(),
			input.DefaultDebounce,
			clock,
		)
		eg.Go(func() error {
			power.Run(ctx, st.StopService)
			return nil
		})
	}

	if watcher != nil {
		eg.Go(func() error {
			watcher.Start(ctx)
			return nil
		})
	}

	if !args.DisableAPI {
		server := api.NewServer(api.ServerArgs{
			Cfg:       cfg,
			State:     st,
			Scanner:   scanner,
			Coord:     coordinator,
			Watcher:   watcher,
			StatusSrc: status.NewSource(clock),
		})
		eg.Go(func() error {
			return server.Start(ctx, notifications)
		})
	}

	go func() {
		if err := eg.Wait(); err != nil {
			log.Error().Err(err).Msg("service worker failed")
		}
		close(core.done)
	}()

	return core, nil
}

// Stop cancels the service context and waits for all workers to exit.
func (c *Core) Stop() error {
	c.State.StopService()
	<-c.done
	log.Info().Msg("service stopped")
	return nil
}

// Done is closed once every worker has exited, including after a power
// button shutdown.
func (c *Core) Done() <-chan struct{} {
	return c.done
}
