// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package httpserver

// Infoer logs information messages at the info level.
type Infoer interface {
	Info(message string)
}

type noopLogger struct{}

func (noopLogger) Info(_ string) {}
