// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package memory

import (
	"fmt"

	"github.com/ChainSafe/headertree/internal/database"
)

var _ database.Table = (*keyspace)(nil)

// keyspace reads and writes the keys of the store starting with prefix.
type keyspace struct {
	store  *store
	prefix string
}

func (k *keyspace) sub(prefix string) *keyspace {
	return &keyspace{
		store:  k.store,
		prefix: k.prefix + prefix,
	}
}

func (k *keyspace) key(key []byte) string {
	return k.prefix + string(key)
}

// Get returns a copy of the value stored at key, or an error
// wrapping database.ErrKeyNotFound.
func (k *keyspace) Get(key []byte) (value []byte, err error) {
	k.store.mutex.RLock()
	defer k.store.mutex.RUnlock()

	if k.store.closed {
		return nil, database.ErrClosed
	}

	fullKey := k.key(key)
	value, ok := k.store.values[fullKey]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%x", database.ErrKeyNotFound, fullKey)
	}
	return cloneValue(value), nil
}

// Set stores a copy of value at key.
func (k *keyspace) Set(key, value []byte) error {
	k.store.mutex.Lock()
	defer k.store.mutex.Unlock()

	if k.store.closed {
		return database.ErrClosed
	}
	k.store.values[k.key(key)] = cloneValue(value)
	return nil
}

// Delete deletes key. Deleting a missing key is not an error.
func (k *keyspace) Delete(key []byte) error {
	k.store.mutex.Lock()
	defer k.store.mutex.Unlock()

	if k.store.closed {
		return database.ErrClosed
	}
	delete(k.store.values, k.key(key))
	return nil
}

func (k *keyspace) NewWriteBatch() database.WriteBatch {
	return &writeBatch{keyspace: k}
}

// cloneValue copies value, keeping empty values non-nil so that
// they read back the same as written.
func cloneValue(value []byte) []byte {
	return append(make([]byte, 0, len(value)), value...)
}
