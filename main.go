// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
WallFE is a server-rendered front-end for a wallpaper-sharing REST backend.

Every page is rendered on the server from backend responses; the browser only
ever talks to WallFE.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"codeberg.org/wallfe/wallfe/config"
	"codeberg.org/wallfe/wallfe/core/audit"
	"codeberg.org/wallfe/wallfe/core/requests"
	"codeberg.org/wallfe/wallfe/server/middleware/limiter"
	"codeberg.org/wallfe/wallfe/server/router"
)

const (
	// Values for http.Server timeouts.
	// ref: gosec: G112
	readHeaderTimeout time.Duration = 15 * time.Second
	readTimeout       time.Duration = 60 * time.Second // uploads
	writeTimeout      time.Duration = 60 * time.Second // wallpaper downloads
	idleTimeout       time.Duration = 30 * time.Second

	serverShutdownDeadline time.Duration = 5 * time.Second
)

var errChmodSocket = errors.New("failed to change unix socket permissions")

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("WallFE failed")
	}
}

// run loads the configuration, serves until SIGINT or SIGTERM, then shuts down.
func run() error {
	audit.SetDefaultLogger()

	if err := config.Global.LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := requests.Setup(); err != nil {
		return fmt.Errorf("failed to set up backend client: %w", err)
	}

	log.Info().
		Str("backend", config.Global.Backend.BaseURL).
		Bool("cache", config.Global.Cache.Enabled).
		Bool("limiter", config.Global.Limiter.Enabled).
		Msg("Backend client ready")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listener, err := listen(ctx)
	if err != nil {
		return err
	}

	server := newServer()

	serveErr := make(chan error, 1)

	go func() {
		serveErr <- server.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received, draining connections")

		if err := shutdown(server); err != nil {
			return err
		}
	}

	limiter.Fini()

	log.Info().Msg("Server exited gracefully")

	return nil
}

func newServer() *http.Server {
	return &http.Server{
		Handler:           router.New(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownDeadline)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return nil
}

// listen opens the Unix domain socket when one is configured, and a TCP listener otherwise.
func listen(ctx context.Context) (net.Listener, error) {
	var lc net.ListenConfig

	if socket := config.Global.Basic.UnixSocket; socket != "" {
		listener, err := lc.Listen(ctx, "unix", socket)
		if err != nil {
			return nil, fmt.Errorf("failed to start Unix socket listener on %v: %w", socket, err)
		}

		if err := os.Chmod(socket, config.Global.Basic.UnixSocketPermissions); err != nil {
			_ = listener.Close()

			return nil, fmt.Errorf("%w: %w", errChmodSocket, err)
		}

		log.Info().
			Str("address", socket).
			Msg("Listening on Unix domain socket")

		return listener, nil
	}

	addr := net.JoinHostPort(config.Global.Basic.Host, config.Global.Basic.Port)

	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start TCP listener on %v: %w", addr, err)
	}

	// Port 0 picks a free port, so log what we actually got.
	port := listener.Addr().(*net.TCPAddr).Port

	log.Info().
		Str("address", listener.Addr().String()).
		Int("port", port).
		Str("url", fmt.Sprintf("http://wallfe.localhost:%d/", port)).
		Msg("Listening on address")

	return listener, nil
}
