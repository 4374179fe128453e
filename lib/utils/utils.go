// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package utils

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ChainSafe/headertree/internal/database"
	"github.com/ChainSafe/headertree/internal/database/badger"
)

// DefaultDatabaseDir is the directory of the header database in the base path.
const DefaultDatabaseDir = "db"

// SetupDatabase opens the badger header database of the base path,
// or an empty in-memory one if inMemory is true.
func SetupDatabase(basePath string, inMemory bool) (database.Database, error) {
	db, err := badger.New(badger.Settings{
		Path:     filepath.Join(basePath, DefaultDatabaseDir),
		InMemory: &inMemory,
	})
	if err != nil {
		return nil, fmt.Errorf("creating badger database: %w", err)
	}
	return db, nil
}

// HomeDir returns the home directory of the user, or the
// empty string if it cannot be found.
func HomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	if current, err := user.Current(); err == nil {
		return current.HomeDir
	}
	return ""
}

// ExpandDir expands environment variables in path, then a leading ~
// to the home directory and a leading . to the working directory.
func ExpandDir(path string) string {
	path = os.ExpandEnv(path)

	switch {
	case path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`):
		if home := HomeDir(); home != "" {
			path = filepath.Join(home, path[1:])
		}
	case strings.HasPrefix(path, "./") || strings.HasPrefix(path, `.\`):
		if absolute, err := filepath.Abs(path); err == nil {
			path = absolute
		}
	}

	return filepath.Clean(path)
}

// BasePath returns the data directory of the given name within the
// headertree directory of the user's HOME directory, or the name itself
// if the HOME directory cannot be found.
func BasePath(name string) string {
	home := HomeDir()
	if home == "" {
		return name
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "HeaderTree", name)
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "HeaderTree", name)
	default:
		return filepath.Join(home, ".headertree", name)
	}
}
