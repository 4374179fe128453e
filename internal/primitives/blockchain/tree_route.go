// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package blockchain

import (
	"fmt"
	"slices"

	"github.com/ChainSafe/headertree/internal/primitives/runtime"
	"github.com/disiqueira/gotree"
)

// TreeRoute is a tree-route from one block to another in the chain.
//
// All blocks prior to the pivot are the reverse-order unique ancestry
// of the first block, the block at the pivot index is the common ancestor,
// and all blocks after the pivot are the ancestry of the second block, in
// order.
//
// The ancestry sets include the given blocks, and thus the tree-route is
// never empty.
//
//	Tree route from R1 to E2. Retracted is [R1, R2, R3], Common is C, enacted [E1, E2]
//	  <- R3 <- R2 <- R1
//	 /
//	C
//	 \-> E1 -> E2
//
//	Tree route from C to E2. Retracted empty. Common is C, enacted [E1, E2]
//	C -> E1 -> E2
type TreeRoute[H, N any] struct {
	route []HashNumber[H, N]
	pivot uint
}

// NewTreeRouteFromParts creates a tree route from an already computed route
// and pivot. The pivot must be a valid index of the route.
func NewTreeRouteFromParts[H, N any](route []HashNumber[H, N], pivot uint) (TreeRoute[H, N], error) {
	if pivot >= uint(len(route)) {
		return TreeRoute[H, N]{}, fmt.Errorf("%w: pivot %d, route length %d",
			ErrPivotOutOfBounds, pivot, len(route))
	}

	return TreeRoute[H, N]{
		route: slices.Clone(route),
		pivot: pivot,
	}, nil
}

// NewTreeRoute computes the tree route between the blocks `from` and `to`.
// Every block on the route is looked up through its parent link, so the
// cost is proportional to the length of the route.
func NewTreeRoute[H runtime.Hash, N runtime.Number](backend HeaderMetaData[H, N], from H, to H) (
	TreeRoute[H, N], error) {
	fromData, err := backend.HeaderMetadata(from)
	if err != nil {
		return TreeRoute[H, N]{}, err
	}
	toData, err := backend.HeaderMetadata(to)
	if err != nil {
		return TreeRoute[H, N]{}, err
	}

	var (
		fromBranch []HashNumber[H, N]
		toBranch   []HashNumber[H, N]
	)

	for toData.Number > fromData.Number {
		toBranch = append(toBranch, HashNumber[H, N]{Hash: toData.Hash, Number: toData.Number})
		toData, err = backend.HeaderMetadata(toData.Parent)
		if err != nil {
			return TreeRoute[H, N]{}, err
		}
	}

	for fromData.Number > toData.Number {
		fromBranch = append(fromBranch, HashNumber[H, N]{Hash: fromData.Hash, Number: fromData.Number})
		fromData, err = backend.HeaderMetadata(fromData.Parent)
		if err != nil {
			return TreeRoute[H, N]{}, err
		}
	}

	// numbers are equal now. walk backwards until the block is the same
	for toData.Hash != fromData.Hash {
		toBranch = append(toBranch, HashNumber[H, N]{Hash: toData.Hash, Number: toData.Number})
		toData, err = backend.HeaderMetadata(toData.Parent)
		if err != nil {
			return TreeRoute[H, N]{}, err
		}

		fromBranch = append(fromBranch, HashNumber[H, N]{Hash: fromData.Hash, Number: fromData.Number})
		fromData, err = backend.HeaderMetadata(fromData.Parent)
		if err != nil {
			return TreeRoute[H, N]{}, err
		}
	}

	// add the pivot block and append the reversed to-branch
	pivot := uint(len(fromBranch))
	route := make([]HashNumber[H, N], 0, len(fromBranch)+1+len(toBranch))
	route = append(route, fromBranch...)
	route = append(route, HashNumber[H, N]{Hash: toData.Hash, Number: toData.Number})
	slices.Reverse(toBranch)
	route = append(route, toBranch...)

	return TreeRoute[H, N]{
		route: route,
		pivot: pivot,
	}, nil
}

// Retracted returns a slice of all retracted blocks in reverse order (towards common ancestor).
func (tr TreeRoute[H, N]) Retracted() []HashNumber[H, N] {
	return tr.route[:tr.pivot]
}

// CommonBlock returns the common ancestor block. This might be one of the two blocks of the
// route. It panics on the zero value TreeRoute.
func (tr TreeRoute[H, N]) CommonBlock() HashNumber[H, N] {
	return tr.route[tr.pivot]
}

// Enacted returns a slice of enacted blocks (descendants of the common ancestor).
func (tr TreeRoute[H, N]) Enacted() []HashNumber[H, N] {
	return tr.route[tr.pivot+1:]
}

// Last returns the last block of the route, which is the `to` block.
func (tr TreeRoute[H, N]) Last() *HashNumber[H, N] {
	if len(tr.route) == 0 {
		return nil
	}
	last := tr.route[len(tr.route)-1]
	return &last
}

// Route returns a copy of the full route, retracted blocks first.
func (tr TreeRoute[H, N]) Route() []HashNumber[H, N] {
	return slices.Clone(tr.route)
}

// Pivot returns the index of the common block in the route.
func (tr TreeRoute[H, N]) Pivot() uint {
	return tr.pivot
}

// Len returns the number of blocks in the route.
func (tr TreeRoute[H, N]) Len() int {
	return len(tr.route)
}

// String returns a printable tree of the route rooted at the common block.
func (tr TreeRoute[H, N]) String() string {
	if len(tr.route) == 0 {
		return "empty tree route"
	}

	tree := gotree.New("common " + tr.CommonBlock().String())

	retracted := tree.Add(fmt.Sprintf("retracted (%d)", tr.pivot))
	for _, block := range tr.Retracted() {
		retracted.Add(block.String())
	}

	enacted := tree.Add(fmt.Sprintf("enacted (%d)", len(tr.Enacted())))
	for _, block := range tr.Enacted() {
		enacted.Add(block.String())
	}

	return tree.Print()
}
