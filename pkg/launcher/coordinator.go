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

// Package launcher owns the execution state machine for child games.
// The state moves Idle -> Running -> Idle and nowhere else, and this
// package is its only writer.
package launcher

import (
	"context"

	"github.com/PocketwheelProject/pocketwheel-core/pkg/catalog"
	"github.com/PocketwheelProject/pocketwheel-core/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
)

// Execution is a snapshot of the coordinator's state.
type Execution struct {
	Project *catalog.Project
	Status  Status
	PID     int
}

// Coordinator starts a selected project as a child process and blocks
// the calling (front-end) goroutine until it exits. Blocking the caller
// is the suspension mechanism: while Launch has not returned, the shell
// performs no drawing or polling and the child owns the display. The
// input relay runs on its own goroutine and is unaffected.
type Coordinator struct {
	fs          afero.Fs
	start       StartFunc
	onStarted   func(Execution)
	onStopped   func(Execution)
	interpreter string
	current     Execution
	mu          syncutil.RWMutex
}

type CoordinatorOptions struct {
	// Fs is used for the pre-start entry point check.
	Fs afero.Fs
	// Start starts the child process; nil means StartProcess.
	Start StartFunc
	// Interpreter runs the entry point, e.g. "python3".
	Interpreter string
	// OnStarted and OnStopped observe state transitions. They are
	// called outside the state lock.
	OnStarted func(Execution)
	OnStopped func(Execution)
}

func NewCoordinator(opts CoordinatorOptions) *Coordinator {
	start := opts.Start
	if start == nil {
		start = StartProcess
	}
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Coordinator{
		fs:          fs,
		start:       start,
		interpreter: opts.Interpreter,
		onStarted:   opts.OnStarted,
		onStopped:   opts.OnStopped,
		current:     Execution{Status: StatusIdle},
	}
}

// Status returns a snapshot of the execution state.
func (c *Coordinator) Status() Execution {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Launch starts project's entry point with the project root as working
// directory and blocks until the child exits. It returns
// ErrAlreadyRunning if a child is active, and a launch error without
// ever entering Running if the entry point is missing or fails to
// start. Any child exit code settles the state back to Idle.
func (c *Coordinator) Launch(ctx context.Context, project *catalog.Project) error {
	exists, err := afero.Exists(c.fs, project.EntryPoint)
	if err != nil || !exists {
		log.Error().Err(err).
			Str("entryPoint", project.EntryPoint).
			Msg("entry point check failed")
		return ErrMissingEntryPoint
	}

	c.mu.Lock()
	if c.current.Status == StatusRunning {
		c.mu.Unlock()
		return ErrAlreadyRunning
	}

	proc, err := c.start(ctx, c.interpreter, project.EntryPoint, project.RootPath)
	if err != nil {
		// Start failed, state never left Idle.
		c.mu.Unlock()
		return err
	}

	c.current = Execution{
		Status:  StatusRunning,
		Project: project,
		PID:     proc.Pid(),
	}
	running := c.current
	onStarted := c.onStarted
	c.mu.Unlock()

	log.Info().
		Str("game", project.DisplayName).
		Int("pid", running.PID).
		Msg("game started, front-end suspended")

	if onStarted != nil {
		onStarted(running)
	}

	// The cooperative pause: this call owns the caller until the child
	// is done. No timeout, no cancellation - exiting is the game's job.
	exitCode, waitErr := proc.Wait()

	c.mu.Lock()
	c.current = Execution{Status: StatusIdle}
	onStopped := c.onStopped
	c.mu.Unlock()

	if waitErr != nil {
		log.Warn().Err(waitErr).Msg("error waiting on game process")
	}
	log.Info().
		Str("game", project.DisplayName).
		Int("exitCode", exitCode).
		Msg("game exited, front-end resumed")

	if onStopped != nil {
		onStopped(running)
	}

	return nil
}
