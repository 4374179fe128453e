// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package httpserver runs an HTTP server until its context is canceled.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
)

// Server is an HTTP server implementation, which uses
// the HTTP handler provided.
type Server struct {
	settings     Settings
	address      string
	addressMutex sync.RWMutex
}

// New creates a new HTTP server from the given settings,
// setting defaults on the unset fields.
func New(settings Settings) (*Server, error) {
	settings.SetDefaults()
	err := settings.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating settings: %w", err)
	}

	return &Server{
		settings: settings,
	}, nil
}

// Run runs the HTTP server until ctx is canceled.
// The ready channel is closed once the server listens, and the
// done channel receives the error the server exits with, which
// is nil on a clean shutdown.
func (s *Server) Run(ctx context.Context, ready chan<- struct{}, done chan<- error) {
	server := http.Server{
		Handler:           s.settings.Handler,
		ReadTimeout:       s.settings.ReadTimeout,
		ReadHeaderTimeout: s.settings.ReadHeaderTimeout,
	}

	listener, err := net.Listen("tcp", s.settings.Address)
	if err != nil {
		done <- fmt.Errorf("listening: %w", err)
		return
	}

	s.addressMutex.Lock()
	s.address = listener.Addr().String()
	s.addressMutex.Unlock()

	shutdownErrCh := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.settings.ShutdownTimeout)
		defer cancel()
		shutdownErrCh <- server.Shutdown(shutdownCtx)
	}()

	s.settings.Logger.Info(s.settings.Name + " server listening on " + listener.Addr().String())
	close(ready)

	err = server.Serve(listener)
	if !errors.Is(err, http.ErrServerClosed) {
		// the shutdown goroutine only returns once ctx is canceled
		done <- fmt.Errorf("serving: %w", err)
		return
	}

	err = <-shutdownErrCh
	if err != nil {
		err = fmt.Errorf("shutting down: %w", err)
	}
	s.settings.Logger.Info(s.settings.Name + " server shut down")
	done <- err
}

// GetAddress returns the address the server listens on.
// It is empty until the server is ready.
func (s *Server) GetAddress() (address string) {
	s.addressMutex.RLock()
	defer s.addressMutex.RUnlock()
	return s.address
}
