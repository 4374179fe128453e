// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package columns holds the table prefixes of the blockchain database.
package columns

type Column string

const (
	// Meta holds the chain meta data, keyed by `metakeys`.
	Meta Column = "meta:"
	// Header maps block hashes to SCALE encoded headers.
	Header Column = "header:"
)

// Key returns the database key of `key` in the column.
func (c Column) Key(key []byte) []byte {
	prefixed := make([]byte, 0, len(c)+len(key))
	prefixed = append(prefixed, c...)
	return append(prefixed, key...)
}
