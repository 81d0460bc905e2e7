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

package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/PocketwheelProject/pocketwheel-core/pkg/config"
)

func pidFilePath(dir string) string {
	return filepath.Join(dir, config.PidFile)
}

// WritePidFile records the current process PID in dir.
func WritePidFile(dir string) error {
	pid := os.Getpid()
	err := os.WriteFile(pidFilePath(dir), []byte(strconv.Itoa(pid)), 0o600)
	if err != nil {
		return fmt.Errorf("failed to write pid file: %w", err)
	}
	return nil
}

func RemovePidFile(dir string) error {
	err := os.Remove(pidFilePath(dir))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove pid file: %w", err)
	}
	return nil
}

// ReadPid returns the PID recorded in dir, or 0 if there is none.
func ReadPid(dir string) (int, error) {
	data, err := os.ReadFile(pidFilePath(dir))
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read pid file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to parse pid file: %w", err)
	}
	return pid, nil
}

// ServiceRunning reports whether the PID recorded in dir belongs to a
// live process. A stale pid file left by a crash reads as not running.
func ServiceRunning(dir string) bool {
	pid, err := ReadPid(dir)
	if err != nil || pid == 0 {
		return false
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
