// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package runtime

import "golang.org/x/exp/constraints"

// Hash is the constraint for block hash types. Hashes are used as map keys
// so they must be comparable.
type Hash interface {
	comparable
	Bytes() []byte
	String() string
}

// Number is the constraint for block number types.
type Number interface {
	constraints.Unsigned
}

// Header is the part of a block header needed to navigate the block tree.
type Header[N Number, H Hash] interface {
	// Number returns the block number.
	Number() N
	// Hash returns the hash of the header.
	Hash() H
	// ParentHash returns the hash of the parent header.
	ParentHash() H
	// StateRoot returns the state trie root of the block.
	StateRoot() H
}
