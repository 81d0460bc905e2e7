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

// Package status feeds the front-end shell's clock and network widgets.
// It is presentation support, not core state: the shell polls it, the
// launcher never touches it.
package status

import (
	"net"

	"github.com/jonboulle/clockwork"
)

const clockFormat = "15:04"

type Source struct {
	clock      clockwork.Clock
	interfaces func() ([]net.Addr, error)
}

func NewSource(clock clockwork.Clock) *Source {
	return &Source{
		clock:      clock,
		interfaces: net.InterfaceAddrs,
	}
}

// ClockTime returns the wall clock formatted for the shell's banner.
func (s *Source) ClockTime() string {
	return s.clock.Now().Format(clockFormat)
}

// Online reports whether any interface carries a non-loopback unicast
// address, which is as much "internet" as the status icon claims.
func (s *Source) Online() bool {
	addrs, err := s.interfaces()
	if err != nil {
		return false
	}

	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		if ipNet.IP.IsLoopback() {
			continue
		}
		if ipNet.IP.IsGlobalUnicast() {
			return true
		}
	}
	return false
}
