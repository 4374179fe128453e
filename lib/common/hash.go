// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// HashLength is the byte length of a Hash.
const HashLength = 32

// EmptyHash is the zero hash, used as the parent hash of the genesis block.
var EmptyHash = Hash{}

var (
	ErrNoPrefix   = errors.New("hex string is not 0x prefixed")
	ErrHashLength = errors.New("hash length is not 32 bytes")
)

// Hash is a 32 byte blake2b hash. It is encoded as a 0x prefixed
// hex string in text formats such as JSON.
type Hash [HashLength]byte

// NewHash copies the first 32 bytes of b into a Hash, zero
// padding it if b is shorter.
func NewHash(b []byte) (h Hash) {
	copy(h[:], b)
	return h
}

func (h Hash) Bytes() []byte { return h[:] }

func (h Hash) IsEmpty() bool { return h == EmptyHash }

// String returns the 0x prefixed hex string of the hash.
func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// Short returns the hex string of the hash with only its
// first and last 4 bytes, for log messages.
func (h Hash) Short() string {
	const n = 4
	return fmt.Sprintf("0x%x...%x", h[:n], h[HashLength-n:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) (err error) {
	*h, err = HexToHash(string(text))
	return err
}

// HexToHash parses a 0x prefixed hex string of exactly 32 bytes.
func HexToHash(s string) (h Hash, err error) {
	digits, ok := strings.CutPrefix(s, "0x")
	if !ok {
		return h, fmt.Errorf("%w: %q", ErrNoPrefix, s)
	}

	if hex.DecodedLen(len(digits)) != HashLength {
		return h, fmt.Errorf("%w: %q", ErrHashLength, s)
	}

	_, err = hex.Decode(h[:], []byte(digits))
	if err != nil {
		return Hash{}, fmt.Errorf("decoding hex string: %w", err)
	}
	return h, nil
}
