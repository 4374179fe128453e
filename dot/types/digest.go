// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// DigestItem is a SCALE encoded digest item of a block header,
// such as a pre-runtime, consensus or seal digest.
type DigestItem []byte

// MarshalJSON encodes the digest item as a 0x prefixed hex string.
func (d DigestItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("0x%x", []byte(d)))
}

// UnmarshalJSON decodes a 0x prefixed hex string into the digest item.
func (d *DigestItem) UnmarshalJSON(data []byte) error {
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return fmt.Errorf("decoding digest item string: %w", err)
	}

	if !strings.HasPrefix(s, "0x") {
		return fmt.Errorf("%w: %q", ErrDigestItemNoPrefix, s)
	}

	b, err := hex.DecodeString(s[2:])
	if err != nil {
		return fmt.Errorf("decoding digest item hex: %w", err)
	}

	*d = b
	return nil
}

// Digest is the list of digest items of a block header.
type Digest []DigestItem

// DeepCopy returns a copy of the digest sharing no memory with it.
func (d Digest) DeepCopy() Digest {
	if d == nil {
		return nil
	}

	cp := make(Digest, len(d))
	for i, item := range d {
		cp[i] = append(DigestItem(nil), item...)
	}
	return cp
}
