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

// Package catalog discovers game projects under the games root. A
// project is any immediate subdirectory containing an entry point file
// at its top level. The catalog holds no state of its own: every scan
// reads the live filesystem.
package catalog

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/PocketwheelProject/pocketwheel-core/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Project is the in-memory record for one discovered game project.
type Project struct {
	// RootPath is the absolute path to the project's folder.
	RootPath string
	// DisplayName is derived from the folder name, e.g.
	// "Flappy_bird" becomes "Flappy Bird".
	DisplayName string
	// EntryPoint is the path to the file launched to start the game.
	EntryPoint string
	// Thumbnail is the path to the project's menu image, or empty if
	// the project has none and the display layer should use its
	// placeholder.
	Thumbnail string
}

// HasThumbnail reports whether the project provides its own menu image.
func (p *Project) HasThumbnail() bool {
	return p.Thumbnail != ""
}

type Scanner struct {
	fs afero.Fs
}

func NewScanner(fs afero.Fs) *Scanner {
	return &Scanner{fs: fs}
}

// Scan enumerates the immediate subdirectories of root and returns a
// descriptor for each valid project, sorted by folder name. Directories
// without an entry point are omitted silently: a half-copied or broken
// project is a normal condition, not an error. A single unreadable
// project directory is skipped and logged; only an unreadable root
// fails the scan.
func (s *Scanner) Scan(root string) ([]Project, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve games root: %w", err)
	}

	entries, err := afero.ReadDir(s.fs, absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read games root: %w", err)
	}

	projects := make([]Project, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		projectDir := filepath.Join(absRoot, entry.Name())
		entryPoint := filepath.Join(projectDir, config.EntryPointFile)

		ok, err := afero.Exists(s.fs, entryPoint)
		if err != nil {
			log.Warn().Err(err).
				Str("project", entry.Name()).
				Msg("skipping unreadable project directory")
			continue
		}
		if !ok {
			continue
		}

		project := Project{
			RootPath:    projectDir,
			DisplayName: DisplayName(entry.Name()),
			EntryPoint:  entryPoint,
		}

		thumb := filepath.Join(projectDir, config.ThumbnailFile)
		if hasThumb, thumbErr := afero.Exists(s.fs, thumb); thumbErr == nil && hasThumb {
			project.Thumbnail = thumb
		}

		projects = append(projects, project)
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].RootPath < projects[j].RootPath
	})

	log.Debug().Int("count", len(projects)).Str("root", absRoot).Msg("catalog scan complete")
	return projects, nil
}
