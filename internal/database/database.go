// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package database defines the key value store interfaces used
// to persist block headers.
package database

import "errors"

var (
	// ErrKeyNotFound is returned when a key is not found in the database.
	ErrKeyNotFound = errors.New("key not found")
	// ErrClosed is returned when operating on a closed database.
	ErrClosed = errors.New("database closed")
)

// Reader reads values from a key value store.
type Reader interface {
	Get(key []byte) (value []byte, err error)
}

// Writer writes and deletes values in a key value store.
type Writer interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// Database is a key value store. All methods are safe for concurrent use.
type Database interface {
	Reader
	Writer
	NewWriteBatch() WriteBatch
	NewTable(prefix string) Table
	Close() error
	DropAll() error
}

// Table is a view of a database where all keys are prefixed
// with the table prefix.
type Table interface {
	Reader
	Writer
	NewWriteBatch() WriteBatch
}

// WriteBatch buffers writes until it is flushed. It is not safe
// for concurrent use, although flushing it is.
type WriteBatch interface {
	Writer
	Flush() error
	Cancel()
}
