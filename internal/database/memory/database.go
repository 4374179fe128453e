// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package memory is a map backed database, used in tests and
// wherever headers do not need to outlive the process.
package memory

import (
	"sync"

	"github.com/ChainSafe/headertree/internal/database"
)

var _ database.Database = (*Database)(nil)

// store is the map shared by a database and its tables.
type store struct {
	mutex  sync.RWMutex
	values map[string][]byte
	closed bool
}

// Database is the in-memory database.
type Database struct {
	keyspace
}

// New returns an empty in-memory database.
func New() *Database {
	return &Database{
		keyspace: keyspace{
			store: &store{values: make(map[string][]byte)},
		},
	}
}

// NewTable returns a table storing its keys under the given prefix.
func (db *Database) NewTable(prefix string) database.Table {
	return db.keyspace.sub(prefix)
}

// Close releases the stored values. Further operations on the
// database or its tables fail with database.ErrClosed.
func (db *Database) Close() error {
	db.store.mutex.Lock()
	defer db.store.mutex.Unlock()

	if db.store.closed {
		return database.ErrClosed
	}
	db.store.closed = true
	db.store.values = nil
	return nil
}

// DropAll deletes every key of the database, tables included.
func (db *Database) DropAll() error {
	db.store.mutex.Lock()
	defer db.store.mutex.Unlock()

	if db.store.closed {
		return database.ErrClosed
	}
	db.store.values = make(map[string][]byte)
	return nil
}
