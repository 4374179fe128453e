// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package badger

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/headertree/internal/database"
	badger "github.com/dgraph-io/badger/v3"
)

var _ database.Table = (*keyspace)(nil)

// keyspace reads and writes the keys of the badger database
// starting with prefix. The database itself has an empty prefix.
type keyspace struct {
	badgerDB *badger.DB
	prefix   []byte
}

func (k *keyspace) sub(prefix string) *keyspace {
	return &keyspace{
		badgerDB: k.badgerDB,
		prefix:   k.key([]byte(prefix)),
	}
}

// key returns a new slice holding the prefix followed by key,
// so that keys never share the prefix backing array.
func (k *keyspace) key(key []byte) []byte {
	fullKey := make([]byte, len(k.prefix)+len(key))
	n := copy(fullKey, k.prefix)
	copy(fullKey[n:], key)
	return fullKey
}

// Get returns a copy of the value stored at key, or an error
// wrapping database.ErrKeyNotFound.
func (k *keyspace) Get(key []byte) (value []byte, err error) {
	fullKey := k.key(key)
	err = k.badgerDB.View(func(txn *badger.Txn) error {
		item, err := txn.Get(fullKey)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})

	switch {
	case err == nil:
		return value, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return nil, fmt.Errorf("%w: 0x%x", database.ErrKeyNotFound, fullKey)
	default:
		return nil, fmt.Errorf("reading key 0x%x: %w", fullKey, convertError(err))
	}
}

func (k *keyspace) Set(key, value []byte) error {
	err := k.badgerDB.Update(func(txn *badger.Txn) error {
		return txn.Set(k.key(key), value)
	})
	return convertError(err)
}

// Delete deletes key. Deleting a missing key is not an error.
func (k *keyspace) Delete(key []byte) error {
	err := k.badgerDB.Update(func(txn *badger.Txn) error {
		return txn.Delete(k.key(key))
	})
	return convertError(err)
}

func (k *keyspace) NewWriteBatch() database.WriteBatch {
	return &writeBatch{
		keyspace: k,
		batch:    k.badgerDB.NewWriteBatch(),
	}
}

// convertError maps badger errors to their database package equivalent.
func convertError(err error) error {
	if errors.Is(err, badger.ErrDBClosed) {
		return fmt.Errorf("%w", database.ErrClosed)
	}
	return err
}
