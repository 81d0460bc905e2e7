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

package launcher

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PocketwheelProject/pocketwheel-core/pkg/catalog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProcess struct {
	exit chan int
	pid  int
}

func (p *fakeProcess) Pid() int { return p.pid }

func (p *fakeProcess) Wait() (int, error) {
	return <-p.exit, nil
}

type fakeStarter struct {
	starts  atomic.Int32
	failErr error
	proc    *fakeProcess
}

func (f *fakeStarter) start(_ context.Context, _, _, _ string) (Process, error) {
	f.starts.Add(1)
	if f.failErr != nil {
		return nil, f.failErr
	}
	return f.proc, nil
}

func testProject(t *testing.T, fs afero.Fs, name string) *catalog.Project {
	t.Helper()

	root := filepath.Join("/games", name)
	entry := filepath.Join(root, "main.py")
	require.NoError(t, afero.WriteFile(fs, entry, []byte("print('hi')\n"), 0o644))

	return &catalog.Project{
		RootPath:    root,
		DisplayName: catalog.DisplayName(name),
		EntryPoint:  entry,
	}
}

func TestLaunchRunsUntilChildExit(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	project := testProject(t, fs, "Snake")
	starter := &fakeStarter{proc: &fakeProcess{exit: make(chan int), pid: 4242}}

	var started, stopped atomic.Int32
	coord := NewCoordinator(CoordinatorOptions{
		Fs:          fs,
		Start:       starter.start,
		Interpreter: "python3",
		OnStarted:   func(Execution) { started.Add(1) },
		OnStopped:   func(Execution) { stopped.Add(1) },
	})

	require.Equal(t, StatusIdle, coord.Status().Status)

	launchDone := make(chan error, 1)
	go func() {
		launchDone <- coord.Launch(context.Background(), project)
	}()

	require.Eventually(t, func() bool {
		return coord.Status().Status == StatusRunning
	}, 2*time.Second, time.Millisecond)

	execState := coord.Status()
	assert.Equal(t, 4242, execState.PID)
	require.NotNil(t, execState.Project)
	assert.Equal(t, "Snake", execState.Project.DisplayName)

	// Launch must still be blocked while the child runs.
	select {
	case <-launchDone:
		t.Fatal("Launch returned before child exit")
	case <-time.After(50 * time.Millisecond):
	}

	starter.proc.exit <- 0
	require.NoError(t, <-launchDone)

	assert.Equal(t, StatusIdle, coord.Status().Status)
	assert.Equal(t, int32(1), started.Load())
	assert.Equal(t, int32(1), stopped.Load())
}

func TestLaunchWhileRunningRejected(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	project := testProject(t, fs, "Snake")
	other := testProject(t, fs, "Flappy_bird")
	starter := &fakeStarter{proc: &fakeProcess{exit: make(chan int), pid: 1}}

	coord := NewCoordinator(CoordinatorOptions{
		Fs:          fs,
		Start:       starter.start,
		Interpreter: "python3",
	})

	launchDone := make(chan error, 1)
	go func() {
		launchDone <- coord.Launch(context.Background(), project)
	}()

	require.Eventually(t, func() bool {
		return coord.Status().Status == StatusRunning
	}, 2*time.Second, time.Millisecond)

	err := coord.Launch(context.Background(), other)
	require.ErrorIs(t, err, ErrAlreadyRunning)
	// No second child was started.
	assert.Equal(t, int32(1), starter.starts.Load())

	starter.proc.exit <- 0
	require.NoError(t, <-launchDone)
}

func TestRelaunchAfterExit(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	project := testProject(t, fs, "Snake")

	// Exit codes other than zero settle the state just the same.
	for _, exitCode := range []int{0, 1, 137} {
		starter := &fakeStarter{proc: &fakeProcess{exit: make(chan int, 1), pid: 7}}
		coord := NewCoordinator(CoordinatorOptions{
			Fs:          fs,
			Start:       starter.start,
			Interpreter: "python3",
		})

		starter.proc.exit <- exitCode
		require.NoError(t, coord.Launch(context.Background(), project))
		assert.Equal(t, StatusIdle, coord.Status().Status)

		// A fresh launch succeeds every time, no stuck Running state.
		starter.proc.exit <- 0
		require.NoError(t, coord.Launch(context.Background(), project))
		assert.Equal(t, StatusIdle, coord.Status().Status)
	}
}

func TestLaunchMissingEntryPoint(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	project := testProject(t, fs, "Snake")
	require.NoError(t, fs.Remove(project.EntryPoint))

	starter := &fakeStarter{proc: &fakeProcess{exit: make(chan int)}}
	var started atomic.Int32
	coord := NewCoordinator(CoordinatorOptions{
		Fs:          fs,
		Start:       starter.start,
		Interpreter: "python3",
		OnStarted:   func(Execution) { started.Add(1) },
	})

	err := coord.Launch(context.Background(), project)
	require.ErrorIs(t, err, ErrMissingEntryPoint)
	assert.Equal(t, StatusIdle, coord.Status().Status)
	assert.Equal(t, int32(0), starter.starts.Load())
	assert.Equal(t, int32(0), started.Load())
}

func TestLaunchStartFailureStaysIdle(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	project := testProject(t, fs, "Snake")
	startErr := errors.New("interpreter not found")
	starter := &fakeStarter{failErr: startErr}

	var started atomic.Int32
	coord := NewCoordinator(CoordinatorOptions{
		Fs:          fs,
		Start:       starter.start,
		Interpreter: "python3",
		OnStarted:   func(Execution) { started.Add(1) },
	})

	err := coord.Launch(context.Background(), project)
	require.ErrorIs(t, err, startErr)
	assert.Equal(t, StatusIdle, coord.Status().Status)
	assert.Equal(t, int32(0), started.Load())

	// The failed attempt does not poison later launches.
	starter.failErr = nil
	starter.proc = &fakeProcess{exit: make(chan int, 1), pid: 9}
	starter.proc.exit <- 0
	require.NoError(t, coord.Launch(context.Background(), project))
}
