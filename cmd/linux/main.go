//go:build linux

/*
Pocketwheel Core
Copyright (c) 2026 The Pocketwheel Project Contributors.
SPDX-License-Identifier: GPL-3.0-or-later

This file is part of Pocketwheel Core.

Pocketwheel Core is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Pocketwheel Core is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Pocketwheel Core.  If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/PocketwheelProject/pocketwheel-core/pkg/config"
	"github.com/PocketwheelProject/pocketwheel-core/pkg/helpers"
	"github.com/PocketwheelProject/pocketwheel-core/pkg/input"
	"github.com/PocketwheelProject/pocketwheel-core/pkg/input/gpio"
	"github.com/PocketwheelProject/pocketwheel-core/pkg/input/uinputkbd"
	"github.com/PocketwheelProject/pocketwheel-core/pkg/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	gamesDir := flag.String("games", "", "override games directory")
	foreground := flag.Bool("foreground", false, "log to console as well as file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s v%s\n", config.AppName, config.AppVersion)
		return nil
	}

	var extraWriters []io.Writer
	if *foreground {
		extraWriters = append(extraWriters, zerolog.ConsoleWriter{Out: os.Stdout})
	}
	if err := helpers.InitLogging(extraWriters); err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}

	cfg, err := config.NewConfig(helpers.ConfigDir(), config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if *gamesDir != "" {
		cfg.SetGamesDir(*gamesDir)
	}

	if helpers.ServiceRunning(helpers.DataDir()) {
		return fmt.Errorf("%s is already running", config.AppName)
	}
	if err := helpers.WritePidFile(helpers.DataDir()); err != nil {
		return err
	}
	defer func() {
		if err := helpers.RemovePidFile(helpers.DataDir()); err != nil {
			log.Warn().Err(err).Msg("error removing pid file")
		}
	}()

	keyboard, err := uinputkbd.NewKeyboard()
	if err != nil {
		return fmt.Errorf("error creating virtual keyboard: %w", err)
	}

	fs := afero.NewOsFs()

	mapping, err := input.MappingFromConfig(cfg.ButtonMappings())
	if err != nil {
		return err
	}
	buttons, err := gpio.NewPinSource(fs, gpio.DefaultSysfsRoot, mapping.Pins())
	if err != nil {
		return fmt.Errorf("error setting up button pins: %w", err)
	}

	var power input.Source
	if pin := cfg.PowerButtonPin(); pin > 0 {
		power, err = gpio.NewPinSource(fs, gpio.DefaultSysfsRoot, []int{pin})
		if err != nil {
			log.Warn().Err(err).Msg("power button unavailable")
			power = nil
		}
	}

	core, err := service.Start(cfg, service.StartArgs{
		Keyboard:    keyboard,
		Buttons:     buttons,
		PowerButton: power,
	})
	if err != nil {
		return fmt.Errorf("error starting service: %w", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		log.Info().Str("signal", sig.String()).Msg("signal received, stopping")
		return core.Stop()
	case <-core.Done():
		// Power button or a fatal worker ended the service.
		return nil
	}
}
