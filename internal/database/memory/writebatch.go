// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package memory

import "github.com/ChainSafe/headertree/internal/database"

// write is a batched write. A nil value deletes the key.
type write struct {
	key   string
	value []byte
}

// writeBatch records writes to its keyspace and applies
// them all at once on Flush.
type writeBatch struct {
	keyspace *keyspace
	writes   []write
}

func (wb *writeBatch) Set(key, value []byte) error {
	wb.writes = append(wb.writes, write{
		key:   wb.keyspace.key(key),
		value: cloneValue(value),
	})
	return nil
}

func (wb *writeBatch) Delete(key []byte) error {
	wb.writes = append(wb.writes, write{key: wb.keyspace.key(key)})
	return nil
}

// Flush applies the writes in order, atomically for readers.
func (wb *writeBatch) Flush() error {
	store := wb.keyspace.store
	store.mutex.Lock()
	defer store.mutex.Unlock()

	if store.closed {
		return database.ErrClosed
	}

	for _, w := range wb.writes {
		if w.value == nil {
			delete(store.values, w.key)
			continue
		}
		store.values[w.key] = w.value
	}
	wb.writes = nil
	return nil
}

// Cancel discards the recorded writes.
func (wb *writeBatch) Cancel() {
	wb.writes = nil
}
