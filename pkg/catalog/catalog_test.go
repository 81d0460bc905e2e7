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
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T, fs afero.Fs, root, name string, entryPoint, thumbnail bool) {
	t.Helper()

	dir := filepath.Join(root, name)
	require.NoError(t, fs.MkdirAll(dir, 0o755))
	if entryPoint {
		err := afero.WriteFile(fs, filepath.Join(dir, "main.py"), []byte("print('hi')\n"), 0o644)
		require.NoError(t, err)
	}
	if thumbnail {
		err := afero.WriteFile(fs, filepath.Join(dir, "thumbnail.png"), []byte{0x89, 0x50}, 0o644)
		require.NoError(t, err)
	}
}

func TestScanRecognizesOnlyProjectsWithEntryPoint(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	root := "/games"
	writeProject(t, fs, root, "Flappy_bird", true, false)
	writeProject(t, fs, root, "Snake", true, true)
	writeProject(t, fs, root, "Broken", false, true)

	projects, err := NewScanner(fs).Scan(root)
	require.NoError(t, err)
	require.Len(t, projects, 2)

	assert.Equal(t, "Flappy Bird", projects[0].DisplayName)
	assert.Equal(t, filepath.Join(root, "Flappy_bird"), projects[0].RootPath)
	assert.Equal(t, filepath.Join(root, "Flappy_bird", "main.py"), projects[0].EntryPoint)
	assert.False(t, projects[0].HasThumbnail())

	assert.Equal(t, "Snake", projects[1].DisplayName)
	assert.True(t, projects[1].HasThumbnail())
	assert.Equal(t, filepath.Join(root, "Snake", "thumbnail.png"), projects[1].Thumbnail)
}

func TestScanIgnoresLooseFilesInRoot(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	root := "/games"
	writeProject(t, fs, root, "Snake", true, false)
	err := afero.WriteFile(fs, filepath.Join(root, "notes.txt"), []byte("not a game"), 0o644)
	require.NoError(t, err)
	err = afero.WriteFile(fs, filepath.Join(root, "main.py"), []byte("stray"), 0o644)
	require.NoError(t, err)

	projects, scanErr := NewScanner(fs).Scan(root)
	require.NoError(t, scanErr)
	require.Len(t, projects, 1)
	assert.Equal(t, "Snake", projects[0].DisplayName)
}

func TestScanMissingRootFails(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	_, err := NewScanner(fs).Scan("/nowhere")
	require.Error(t, err)
}

func TestScanEmptyRoot(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/games", 0o755))

	projects, err := NewScanner(fs).Scan("/games")
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestScanReflectsLiveFilesystem(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	root := "/games"
	writeProject(t, fs, root, "Snake", true, false)
	scanner := NewScanner(fs)

	projects, err := scanner.Scan(root)
	require.NoError(t, err)
	require.Len(t, projects, 1)

	// Removing the entry point disqualifies the project on the next
	// scan, no caching in between.
	require.NoError(t, fs.Remove(filepath.Join(root, "Snake", "main.py")))

	projects, err = scanner.Scan(root)
	require.NoError(t, err)
	assert.Empty(t, projects)

	writeProject(t, fs, root, "Snake", true, false)
	projects, err = scanner.Scan(root)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestScanOrderIsStable(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	root := "/games"
	for _, name := range []string{"zelda_like", "Asteroids", "pong"} {
		writeProject(t, fs, root, name, true, false)
	}

	projects, err := NewScanner(fs).Scan(root)
	require.NoError(t, err)
	require.Len(t, projects, 3)

	names := []string{projects[0].DisplayName, projects[1].DisplayName, projects[2].DisplayName}
	assert.Equal(t, []string{"Asteroids", "Pong", "Zelda Like"}, names)
}
