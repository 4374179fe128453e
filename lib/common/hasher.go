// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

import "golang.org/x/crypto/blake2b"

// Blake2bHash returns the 256 bit blake2b hash of data.
// Block hashes are the hash of the SCALE encoded header.
func Blake2bHash(data []byte) Hash {
	return Hash(blake2b.Sum256(data))
}
