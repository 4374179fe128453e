// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package badger stores the header database in a badger v3 database.
package badger

import (
	"fmt"

	"github.com/ChainSafe/headertree/internal/database"
	"github.com/ChainSafe/headertree/internal/log"
	badger "github.com/dgraph-io/badger/v3"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "badger"))

var _ database.Database = (*Database)(nil)

// Database is the badger backed database. Its tables share
// the same badger database, each under its own key prefix.
type Database struct {
	keyspace
}

// New opens the badger database described by the settings.
func New(settings Settings) (*Database, error) {
	settings.SetDefaults()
	err := settings.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating settings: %w", err)
	}

	options := badger.DefaultOptions(settings.Path)
	if *settings.InMemory {
		options = badger.DefaultOptions("").WithInMemory(true)
	}
	options = options.WithLogger(newBadgerLogger(logger))

	badgerDB, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("opening badger database: %w", err)
	}

	if *settings.InMemory {
		logger.Debug("opened in-memory badger database")
	} else {
		logger.Debugf("opened badger database at %s", settings.Path)
	}

	return &Database{
		keyspace: keyspace{badgerDB: badgerDB},
	}, nil
}

// NewTable returns a table storing its keys under the given prefix.
func (db *Database) NewTable(prefix string) database.Table {
	return db.keyspace.sub(prefix)
}

// Close closes the database. Operations on the database or its
// tables then fail with database.ErrClosed.
func (db *Database) Close() error {
	return convertError(db.badgerDB.Close())
}

// DropAll deletes every key of the database, tables included.
func (db *Database) DropAll() error {
	return convertError(db.badgerDB.DropAll())
}
