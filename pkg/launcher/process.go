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
	"fmt"
	"os/exec"
)

// Process is a started child game. Wait blocks until it exits and
// returns the exit code.
type Process interface {
	Pid() int
	Wait() (int, error)
}

// StartFunc starts a project's entry point with the working directory
// set to the project root. It exists as an injection point so the
// coordinator's state machine is testable without spawning real
// interpreters.
type StartFunc func(ctx context.Context, interpreter, entryPoint, workDir string) (Process, error)

type osProcess struct {
	cmd *exec.Cmd
}

func (p *osProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *osProcess) Wait() (int, error) {
	err := p.cmd.Wait()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("failed waiting on child process: %w", err)
	}
	return 0, nil
}

// StartProcess is the production StartFunc. The child inherits the
// service's environment and owns the display until it exits.
func StartProcess(ctx context.Context, interpreter, entryPoint, workDir string) (Process, error) {
	//nolint:gosec // interpreter and entry point come from scanned config
	cmd := exec.CommandContext(ctx, interpreter, entryPoint)
	cmd.Dir = workDir

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start game process: %w", err)
	}
	return &osProcess{cmd: cmd}, nil
}
