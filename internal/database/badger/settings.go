// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package badger

import (
	"errors"
	"fmt"
	"path/filepath"
)

var ErrPathNotSet = errors.New("path is not set")

// Settings are the settings to open a badger database.
type Settings struct {
	// Path is the directory of the database files,
	// required unless InMemory is true.
	Path string
	// InMemory keeps all data in memory, and Path is then ignored.
	// It defaults to false.
	InMemory *bool
}

// SetDefaults sets defaults on the unset fields.
func (s *Settings) SetDefaults() {
	if s.InMemory == nil {
		inMemory := false
		s.InMemory = &inMemory
	}
}

// Validate returns an error if the database cannot be opened
// with the settings. SetDefaults must be called first.
func (s Settings) Validate() error {
	switch {
	case *s.InMemory:
		return nil
	case s.Path == "":
		return fmt.Errorf("%w", ErrPathNotSet)
	}

	if _, err := filepath.Abs(s.Path); err != nil {
		return fmt.Errorf("resolving absolute path: %w", err)
	}
	return nil
}
