// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package metakeys holds the keys of entries in the meta column.
package metakeys

// BestBlock is the best block key.
var BestBlock = []byte("best")

// GenesisHash is the genesis block hash key.
var GenesisHash = []byte("gen")
