// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package db

import (
	"github.com/ChainSafe/headertree/dot/types"
	"github.com/ChainSafe/headertree/internal/primitives/runtime"
	"github.com/ChainSafe/headertree/lib/common"
)

var _ runtime.Header[uint, common.Hash] = headerView{}

// headerView exposes a header through the runtime.Header accessors.
type headerView struct {
	header *types.Header
}

func (v headerView) Number() uint { return v.header.Number }
func (v headerView) Hash() common.Hash { return v.header.Hash() }
func (v headerView) ParentHash() common.Hash { return v.header.ParentHash }
func (v headerView) StateRoot() common.Hash { return v.header.StateRoot }
