// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package db

import "errors"

var (
	ErrBlockExists    = errors.New("block already exists")
	ErrParentNotFound = errors.New("parent header not found")
	ErrInvalidNumber  = errors.New("block number is not its parent number plus one")
	ErrGenesisExists  = errors.New("a different genesis block is already stored")
)
