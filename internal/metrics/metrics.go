// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package metrics serves prometheus metrics over HTTP.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ChainSafe/headertree/internal/httpserver"
	"github.com/ChainSafe/headertree/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultAddress is the default metrics server listening address.
const DefaultAddress = "localhost:9876"

const stopTimeout = 30 * time.Second

var logger log.LeveledLogger = log.NewFromGlobal(log.AddContext("pkg", "metrics"))

var ErrServerStopTimeout = errors.New("metrics server exit timeout")

// Server is a metrics http server
type Server struct {
	cancel context.CancelFunc
	server *httpserver.Server
	done   chan error
}

// NewServer creates a metrics server serving the metrics
// of the given gatherer on the /metrics path.
func NewServer(address string, gatherer prometheus.Gatherer) (s *Server, err error) {
	m := http.NewServeMux()
	m.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	server, err := httpserver.New(httpserver.Settings{
		Name:    "metrics",
		Address: address,
		Handler: m,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating metrics server: %w", err)
	}

	return &Server{server: server}, nil
}

// Start starts the metrics server and returns once it listens.
func (s *Server) Start() (err error) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	ready := make(chan struct{})
	s.done = make(chan error)

	go s.server.Run(ctx, ready, s.done)

	select {
	case <-ready:
		logger.Infof("serving metrics at http://%s/metrics", s.server.GetAddress())
		return nil
	case err := <-s.done:
		cancel()
		return fmt.Errorf("starting metrics server: %w", err)
	}
}

// Address returns the address the server listens on.
func (s *Server) Address() string {
	return s.server.GetAddress()
}

// Stop stops the metrics server
func (s *Server) Stop() (err error) {
	s.cancel()
	timer := time.NewTimer(stopTimeout)
	defer timer.Stop()

	select {
	case err := <-s.done:
		return err
	case <-timer.C:
		return fmt.Errorf("%w", ErrServerStopTimeout)
	}
}
