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

// Package api exposes a small local control surface over HTTP: the
// catalog, the execution state and a websocket stream of state
// transitions. It is a peer of the front-end shell, not part of the
// core launch path.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/PocketwheelProject/pocketwheel-core/pkg/catalog"
	"github.com/PocketwheelProject/pocketwheel-core/pkg/config"
	"github.com/PocketwheelProject/pocketwheel-core/pkg/launcher"
	"github.com/PocketwheelProject/pocketwheel-core/pkg/service/state"
	"github.com/PocketwheelProject/pocketwheel-core/pkg/status"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/olahol/melody"
	"github.com/rs/zerolog/log"
)

type Server struct {
	cfg       *config.Instance
	st        *state.State
	scanner   *catalog.Scanner
	coord     *launcher.Coordinator
	watcher   *catalog.Watcher
	statusSrc *status.Source
}

type ServerArgs struct {
	Cfg       *config.Instance
	State     *state.State
	Scanner   *catalog.Scanner
	Coord     *launcher.Coordinator
	Watcher   *catalog.Watcher
	StatusSrc *status.Source
}

func NewServer(args ServerArgs) *Server {
	return &Server{
		cfg:       args.Cfg,
		st:        args.State,
		scanner:   args.Scanner,
		coord:     args.Coord,
		watcher:   args.Watcher,
		statusSrc: args.StatusSrc,
	}
}

func broadcastNotifications(
	ctx context.Context,
	session *melody.Melody,
	notifications <-chan state.Notification,
) {
	for {
		select {
		case <-ctx.Done():
			return
		case notification, ok := <-notifications:
			if !ok {
				return
			}
			data, err := json.Marshal(notification)
			if err != nil {
				log.Error().Err(err).Msg("error marshalling notification")
				continue
			}
			if err := session.Broadcast(data); err != nil {
				log.Debug().Err(err).Msg("error broadcasting notification")
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("error writing response")
	}
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{
		App:      config.AppName,
		Version:  config.AppVersion,
		BootUUID: s.st.BootUUID(),
	})
}

func (s *Server) handleGames(w http.ResponseWriter, _ *http.Request) {
	projects, err := s.scanner.Scan(s.cfg.GamesDir())
	if err != nil {
		log.Error().Err(err).Msg("catalog scan failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "scan failed"})
		return
	}

	resp := GamesResponse{Games: make([]GameResponse, 0, len(projects))}
	for i := range projects {
		p := &projects[i]
		resp.Games = append(resp.Games, GameResponse{
			Name:      p.DisplayName,
			Path:      p.RootPath,
			Thumbnail: p.Thumbnail,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	exec := s.coord.Status()
	resp := StatusResponse{
		Execution:    string(exec.Status),
		CatalogStale: s.watcher != nil && s.watcher.Stale(),
		Online:       s.statusSrc.Online(),
		ClockTime:    s.statusSrc.ClockTime(),
	}
	if exec.Status == launcher.StatusRunning && exec.Project != nil {
		resp.RunningGame = exec.Project.DisplayName
		resp.RunningPID = exec.PID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLaunch(w http.ResponseWriter, r *http.Request) {
	var req LaunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing project path"})
		return
	}

	projects, err := s.scanner.Scan(s.cfg.GamesDir())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "scan failed"})
		return
	}

	var project *catalog.Project
	for i := range projects {
		if projects[i].RootPath == req.Path {
			project = &projects[i]
			break
		}
	}
	if project == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "project not found"})
		return
	}

	if s.coord.Status().Status == launcher.StatusRunning {
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: launcher.ErrAlreadyRunning.Error()})
		return
	}

	// Launch blocks until the game exits, so it runs on its own
	// goroutine here. Races with the shell's own launches settle in the
	// coordinator, which rejects the loser.
	go func() {
		err := s.coord.Launch(s.st.GetContext(), project)
		if err != nil && !errors.Is(err, launcher.ErrAlreadyRunning) {
			log.Error().Err(err).Str("game", project.DisplayName).Msg("api launch failed")
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "launching"})
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, notifications <-chan state.Notification) error {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Use(middleware.Timeout(config.APIRequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{},
	}))

	session := melody.New()
	session.Upgrader.CheckOrigin = func(_ *http.Request) bool { return true }
	go broadcastNotifications(ctx, session, notifications)

	r.Get("/api/v1", func(w http.ResponseWriter, r *http.Request) {
		if err := session.HandleRequest(w, r); err != nil {
			log.Error().Err(err).Msg("handling websocket request")
		}
	})

	r.Get("/api/v1/version", s.handleVersion)
	r.Get("/api/v1/games", s.handleGames)
	r.Get("/api/v1/status", s.handleStatus)
	r.Post("/api/v1/games/launch", s.handleLaunch)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(s.cfg.APIPort()),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("error shutting down api server")
		}
		if err := session.Close(); err != nil {
			log.Debug().Err(err).Msg("error closing websocket sessions")
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
