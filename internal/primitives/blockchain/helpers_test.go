// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package blockchain

import (
	"fmt"
	"sync"
	"testing"

	"github.com/ChainSafe/headertree/lib/common"
	"github.com/stretchr/testify/require"
)

type testHeader struct {
	number    uint
	hash      common.Hash
	parent    common.Hash
	stateRoot common.Hash
}

func (h testHeader) Number() uint { return h.number }
func (h testHeader) Hash() common.Hash { return h.hash }
func (h testHeader) ParentHash() common.Hash { return h.parent }
func (h testHeader) StateRoot() common.Hash { return h.stateRoot }

// testBackend is an in-memory header metadata backend counting its lookups.
type testBackend struct {
	mutex    sync.Mutex
	metadata map[common.Hash]CachedHeaderMetadata[common.Hash, uint]
	lookups  int
}

func newTestBackend() *testBackend {
	return &testBackend{
		metadata: make(map[common.Hash]CachedHeaderMetadata[common.Hash, uint]),
	}
}

func (b *testBackend) HeaderMetadata(hash common.Hash) (CachedHeaderMetadata[common.Hash, uint], error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.lookups++
	metadata, ok := b.metadata[hash]
	if !ok {
		return CachedHeaderMetadata[common.Hash, uint]{}, fmt.Errorf("%w: %s", ErrUnknownBlock, hash)
	}
	return metadata, nil
}

func (b *testBackend) InsertHeaderMetadata(hash common.Hash, metadata CachedHeaderMetadata[common.Hash, uint]) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.metadata[hash] = metadata
}

func (b *testBackend) RemoveHeaderMetadata(hash common.Hash) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	delete(b.metadata, hash)
}

func (b *testBackend) resetLookups() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.lookups = 0
}

func (b *testBackend) lookupCount() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.lookups
}

var _ HeaderMetaData[common.Hash, uint] = (*testBackend)(nil)

func hashOf(name string) common.Hash {
	return common.Blake2bHash([]byte(name))
}

// testChain builds block trees with blocks identified by name.
type testChain struct {
	t       *testing.T
	backend *testBackend
	numbers map[string]uint
}

func newTestChain(t *testing.T) *testChain {
	t.Helper()

	chain := &testChain{
		t:       t,
		backend: newTestBackend(),
		numbers: make(map[string]uint),
	}
	chain.backend.InsertHeaderMetadata(hashOf("G"), NewCachedHeaderMetadata[common.Hash, uint](testHeader{
		number:    0,
		hash:      hashOf("G"),
		parent:    common.EmptyHash,
		stateRoot: hashOf("state-G"),
	}))
	chain.numbers["G"] = 0
	return chain
}

func (c *testChain) add(name, parent string) {
	c.t.Helper()

	parentNumber, ok := c.numbers[parent]
	require.Truef(c.t, ok, "parent %s not found", parent)

	number := parentNumber + 1
	c.backend.InsertHeaderMetadata(hashOf(name), NewCachedHeaderMetadata[common.Hash, uint](testHeader{
		number:    number,
		hash:      hashOf(name),
		parent:    hashOf(parent),
		stateRoot: hashOf("state-" + name),
	}))
	c.numbers[name] = number
}

// addChain adds count blocks named prefix1, prefix2... on top of parent and
// returns the name of the last block.
func (c *testChain) addChain(prefix, parent string, count int) (last string) {
	c.t.Helper()

	last = parent
	for i := 1; i <= count; i++ {
		name := fmt.Sprintf("%s%d", prefix, i)
		c.add(name, last)
		last = name
	}
	return last
}

func (c *testChain) hashNumber(name string) HashNumber[common.Hash, uint] {
	c.t.Helper()

	number, ok := c.numbers[name]
	require.Truef(c.t, ok, "block %s not found", name)
	return HashNumber[common.Hash, uint]{Hash: hashOf(name), Number: number}
}

func (c *testChain) hashNumbers(names ...string) []HashNumber[common.Hash, uint] {
	c.t.Helper()

	hashNumbers := make([]HashNumber[common.Hash, uint], len(names))
	for i, name := range names {
		hashNumbers[i] = c.hashNumber(name)
	}
	return hashNumbers
}

// naiveLowestCommonAncestor computes the lowest common ancestor with parent
// links only, without touching jump pointers.
func (c *testChain) naiveLowestCommonAncestor(one, two string) common.Hash {
	c.t.Helper()

	ancestors := make(map[common.Hash]struct{})
	for hash := hashOf(one); ; {
		ancestors[hash] = struct{}{}
		metadata := c.backend.metadata[hash]
		if metadata.Number == 0 {
			break
		}
		hash = metadata.Parent
	}

	for hash := hashOf(two); ; {
		if _, ok := ancestors[hash]; ok {
			return hash
		}
		metadata, ok := c.backend.metadata[hash]
		require.True(c.t, ok)
		hash = metadata.Parent
	}
}

// scenarioChain builds G -> B1 -> B2 -> B3 and B1 -> F2 -> F3.
func scenarioChain(t *testing.T) *testChain {
	t.Helper()

	chain := newTestChain(t)
	chain.add("B1", "G")
	chain.add("B2", "B1")
	chain.add("B3", "B2")
	chain.add("F2", "B1")
	chain.add("F3", "F2")
	return chain
}
