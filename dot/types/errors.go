// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import "errors"

var (
	// ErrDigestItemNoPrefix is returned when a JSON digest item is not 0x prefixed.
	ErrDigestItemNoPrefix = errors.New("digest item is not 0x prefixed")

	// ErrTrailingBytes is returned when decoding a header leaves unread bytes.
	ErrTrailingBytes = errors.New("trailing bytes after header")

	// ErrValueTooLarge is returned when a decoded compact integer is out of range.
	ErrValueTooLarge = errors.New("compact value too large")
)
