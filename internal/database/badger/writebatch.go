// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package badger

import badger "github.com/dgraph-io/badger/v3"

// writeBatch writes to the keyspace it was created from
// once flushed.
type writeBatch struct {
	keyspace *keyspace
	batch    *badger.WriteBatch
}

func (wb *writeBatch) Set(key, value []byte) error {
	return convertError(wb.batch.Set(wb.keyspace.key(key), value))
}

func (wb *writeBatch) Delete(key []byte) error {
	return convertError(wb.batch.Delete(wb.keyspace.key(key)))
}

// Flush commits the batched writes. The batch cannot be reused.
func (wb *writeBatch) Flush() error {
	return convertError(wb.batch.Flush())
}

// Cancel discards the batched writes.
func (wb *writeBatch) Cancel() {
	wb.batch.Cancel()
}
