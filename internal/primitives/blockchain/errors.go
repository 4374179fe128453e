// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package blockchain

import "errors"

var (
	// ErrUnknownBlock is returned when the metadata of a block cannot be
	// found, neither in a cache nor in the underlying storage.
	ErrUnknownBlock = errors.New("unknown block")

	// ErrPivotOutOfBounds is returned when creating a tree route with
	// a pivot which is not an index of the route.
	ErrPivotOutOfBounds = errors.New("tree route pivot out of bounds")
)
