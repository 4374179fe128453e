// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package httpserver

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

var (
	ErrAddressInvalid         = errors.New("listening address is not valid")
	ErrShutdownTimeoutInvalid = errors.New("shutdown timeout must be positive")
)

// Settings are the settings of the HTTP server.
// Zero fields are set to their default by SetDefaults.
type Settings struct {
	// Name prefixes the server log messages.
	Name string
	// Address is the listening address. A zero port lets the
	// OS pick an available port.
	Address string
	// Handler defaults to an empty mux.
	Handler http.Handler
	// Logger defaults to a no-op logger.
	Logger Infoer
	// ReadTimeout defaults to 10 seconds.
	ReadTimeout time.Duration
	// ReadHeaderTimeout defaults to 1 second.
	ReadHeaderTimeout time.Duration
	// ShutdownTimeout defaults to 3 seconds.
	ShutdownTimeout time.Duration
}

// SetDefaults sets the default values on unset fields.
func (s *Settings) SetDefaults() {
	if s.Name == "" {
		s.Name = "http"
	}

	if s.Address == "" {
		s.Address = "localhost:0"
	}

	if s.Handler == nil {
		s.Handler = http.NewServeMux()
	}

	if s.Logger == nil {
		s.Logger = noopLogger{}
	}

	const (
		defaultReadTimeout       = 10 * time.Second
		defaultReadHeaderTimeout = time.Second
		defaultShutdownTimeout   = 3 * time.Second
	)

	if s.ReadTimeout == 0 {
		s.ReadTimeout = defaultReadTimeout
	}

	if s.ReadHeaderTimeout == 0 {
		s.ReadHeaderTimeout = defaultReadHeaderTimeout
	}

	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = defaultShutdownTimeout
	}
}

// Validate returns an error if the settings cannot be used.
func (s Settings) Validate() (err error) {
	_, _, err = net.SplitHostPort(s.Address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrAddressInvalid, err)
	}

	if s.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: %s", ErrShutdownTimeoutInvalid, s.ShutdownTimeout)
	}

	return nil
}
