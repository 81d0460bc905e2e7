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

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PocketwheelProject/pocketwheel-core/pkg/helpers/syncutil"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	SchemaVersion = 1
	CfgEnv        = "POCKETWHEEL_CFG"
)

type Values struct {
	Games        Games   `toml:"games,omitempty"`
	Input        Input   `toml:"input,omitempty"`
	Service      Service `toml:"service,omitempty"`
	ConfigSchema int     `toml:"config_schema"`
	DebugLogging bool    `toml:"debug_logging"`
}

type Games struct {
	// Dir is the root folder scanned for project subdirectories.
	Dir string `toml:"dir,omitempty"`
	// Interpreter is the command used to run a project's entry point.
	Interpreter string `toml:"interpreter,omitempty"`
}

type Input struct {
	Buttons        []ButtonMapping `toml:"buttons,omitempty"`
	PollIntervalMs int             `toml:"poll_interval_ms,omitempty"`
	PowerButtonPin int             `toml:"power_button_pin,omitempty"`
}

// ButtonMapping binds one GPIO pin to a named keyboard key.
type ButtonMapping struct {
	Key string `toml:"key"`
	Pin int    `toml:"pin"`
}

type Service struct {
	APIPort int `toml:"api_port,omitempty"`
}

// BaseDefaults matches the stock handheld wiring: active-low buttons on
// the BCM pins below, power switch on pin 5.
var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Games: Games{
		Dir:         "games",
		Interpreter: "python3",
	},
	Input: Input{
		PollIntervalMs: 10,
		PowerButtonPin: 5,
		Buttons: []ButtonMapping{
			{Pin: 17, Key: "up"},
			{Pin: 18, Key: "down"},
			{Pin: 27, Key: "left"},
			{Pin: 22, Key: "right"},
			{Pin: 23, Key: "enter"},
			{Pin: 24, Key: "esc"},
		},
	},
	Service: Service{
		APIPort: 7331,
	},
}

type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

//nolint:gocritic // config struct copied for immutability
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		mu:       syncutil.RWMutex{},
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")

		if mkErr := os.MkdirAll(filepath.Dir(cfgPath), 0o750); mkErr != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", mkErr)
		}
		if saveErr := cfg.Save(); saveErr != nil {
			return nil, saveErr
		}
	}

	if err := cfg.Load(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return ErrNoConfigPath
	}

	if _, err := os.Stat(c.cfgPath); err != nil {
		return fmt.Errorf("failed to stat config file: %w", err)
	}

	//nolint:gosec // config path is controlled by the service
	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	newVals := c.defaults
	if err := toml.Unmarshal(data, &newVals); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Warn().
			Int("file", newVals.ConfigSchema).
			Int("supported", SchemaVersion).
			Msg("config schema version mismatch")
	}

	c.vals = newVals

	if c.vals.DebugLogging {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveLocked()
}

func (c *Instance) saveLocked() error {
	if c.cfgPath == "" {
		return ErrNoConfigPath
	}

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Instance) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfgPath
}

// GamesDir returns the configured games root. A relative value is
// resolved against the process working directory, matching how the
// front-end shell is started from its install folder.
func (c *Instance) GamesDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Games.Dir
}

func (c *Instance) SetGamesDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Games.Dir = dir
}

func (c *Instance) Interpreter() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Games.Interpreter == "" {
		return c.defaults.Games.Interpreter
	}
	return c.vals.Games.Interpreter
}

func (c *Instance) ButtonMappings() []ButtonMapping {
	c.mu.RLock()
	defer c.mu.RUnlock()
	buttons := make([]ButtonMapping, len(c.vals.Input.Buttons))
	copy(buttons, c.vals.Input.Buttons)
	return buttons
}

func (c *Instance) PollInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ms := c.vals.Input.PollIntervalMs
	if ms <= 0 {
		ms = c.defaults.Input.PollIntervalMs
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Instance) PowerButtonPin() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Input.PowerButtonPin
}

func (c *Instance) APIPort() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Service.APIPort == 0 {
		return c.defaults.Service.APIPort
	}
	return c.vals.Service.APIPort
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
	if enabled {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
