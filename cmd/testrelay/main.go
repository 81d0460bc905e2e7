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

// Manual exercise tool for the input relay. Reads "press <pin>" and
// "release <pin>" lines from stdin and prints the keyboard events the
// relay would synthesize, without touching uinput or real hardware.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/PocketwheelProject/pocketwheel-core/pkg/config"
	"github.com/PocketwheelProject/pocketwheel-core/pkg/input"
	"github.com/jonboulle/clockwork"
)

type printKeyboard struct{}

func (printKeyboard) KeyDown(key int) error {
	fmt.Printf("key down: %d\n", key)
	return nil
}

func (printKeyboard) KeyUp(key int) error {
	fmt.Printf("key up: %d\n", key)
	return nil
}

func (printKeyboard) Close() error { return nil }

type stdinSource struct {
	mu      sync.Mutex
	pending []input.Event
}

func (s *stdinSource) push(event input.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, event)
}

func (s *stdinSource) Poll() ([]input.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.pending
	s.pending = nil
	return events, nil
}

func (*stdinSource) Close() error { return nil }

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	mapping, err := input.MappingFromConfig(config.BaseDefaults.Input.Buttons)
	if err != nil {
		return err
	}

	source := &stdinSource{}
	relay := input.NewRelay(
		source,
		printKeyboard{},
		mapping,
		10*time.Millisecond,
		clockwork.NewRealClock(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			fields := strings.Fields(scanner.Text())
			if len(fields) != 2 {
				fmt.Println("usage: press|release <pin>")
				continue
			}
			pin, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("bad pin:", fields[1])
				continue
			}
			switch fields[0] {
			case "press":
				source.push(input.Event{Pin: pin, Pressed: true})
			case "release":
				source.push(input.Event{Pin: pin, Pressed: false})
			default:
				fmt.Println("usage: press|release <pin>")
			}
		}
		cancel()
	}()

	fmt.Println("relay running, mapped pins:", mapping.Pins())
	relay.Run(ctx)
	return nil
}
