// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package blockchain

import (
	"fmt"
	"sync"

	"github.com/ChainSafe/headertree/internal/primitives/runtime"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultHeaderMetadataCacheSize is the default number of entries kept by a
// HeaderMetadataCache. It should be larger than the usual distance between
// the best and the finalized block.
const DefaultHeaderMetadataCacheSize = 5000

// HashNumber is the hash and number of a block.
type HashNumber[H, N any] struct {
	// The hash of the block.
	Hash H
	// The number of the block.
	Number N
}

func (hn HashNumber[H, N]) String() string {
	return fmt.Sprintf("#%v (%v)", hn.Number, hn.Hash)
}

// LowestCommonAncestor returns the lowest common ancestor of the blocks
// `one` and `two`.
//
// Ancestor jump pointers are followed as long as they do not skip below the
// number of the other block, then parent links are walked until both sides
// meet. The starting headers which are strictly above the common ancestor
// get their jump pointer set to it, so repeated queries against the same
// anchor become cheaper.
func LowestCommonAncestor[H runtime.Hash, N runtime.Number](
	backend HeaderMetaData[H, N], one, two H) (HashNumber[H, N], error) {
	headerOne, err := backend.HeaderMetadata(one)
	if err != nil {
		return HashNumber[H, N]{}, err
	}
	if headerOne.Number > 0 && headerOne.Parent == two {
		return HashNumber[H, N]{Hash: two, Number: headerOne.Number - 1}, nil
	}

	headerTwo, err := backend.HeaderMetadata(two)
	if err != nil {
		return HashNumber[H, N]{}, err
	}
	if headerTwo.Number > 0 && headerTwo.Parent == one {
		return HashNumber[H, N]{Hash: one, Number: headerOne.Number}, nil
	}

	origHeaderOne := headerOne
	origHeaderTwo := headerTwo

	// follow the jump pointers as far as they stay at or above the other side
	for headerOne.Number > headerTwo.Number {
		ancestor, ancestorNumber := jumpTarget(headerOne)
		if ancestorNumber < headerTwo.Number {
			break
		}
		headerOne, err = backend.HeaderMetadata(ancestor)
		if err != nil {
			return HashNumber[H, N]{}, err
		}
	}

	for headerOne.Number < headerTwo.Number {
		ancestor, ancestorNumber := jumpTarget(headerTwo)
		if ancestorNumber < headerOne.Number {
			break
		}
		headerTwo, err = backend.HeaderMetadata(ancestor)
		if err != nil {
			return HashNumber[H, N]{}, err
		}
	}

	// walk the remaining path with parent links
	for headerOne.Hash != headerTwo.Hash {
		if headerOne.Number > headerTwo.Number {
			headerOne, err = backend.HeaderMetadata(headerOne.Parent)
		} else {
			headerTwo, err = backend.HeaderMetadata(headerTwo.Parent)
		}
		if err != nil {
			return HashNumber[H, N]{}, err
		}
	}

	// only the sides which descended get their jump pointer updated
	if origHeaderOne.Number > headerOne.Number {
		origHeaderOne.setAncestor(headerOne.Hash, headerOne.Number)
		backend.InsertHeaderMetadata(origHeaderOne.Hash, origHeaderOne)
	}
	if origHeaderTwo.Number > headerOne.Number {
		origHeaderTwo.setAncestor(headerOne.Hash, headerOne.Number)
		backend.InsertHeaderMetadata(origHeaderTwo.Hash, origHeaderTwo)
	}

	return HashNumber[H, N]{Hash: headerOne.Hash, Number: headerOne.Number}, nil
}

// LowestCommonAncestorMultiblock returns the lowest common ancestor of all
// the given blocks. It returns nil if no hash is given.
func LowestCommonAncestorMultiblock[H runtime.Hash, N runtime.Number](
	backend HeaderMetaData[H, N], hashes []H) (*HashNumber[H, N], error) {
	if len(hashes) == 0 {
		return nil, nil //nolint:nilnil
	}

	first, err := backend.HeaderMetadata(hashes[0])
	if err != nil {
		return nil, err
	}

	lca := HashNumber[H, N]{Hash: first.Hash, Number: first.Number}
	for _, hash := range hashes[1:] {
		lca, err = LowestCommonAncestor(backend, lca.Hash, hash)
		if err != nil {
			return nil, err
		}
	}
	return &lca, nil
}

// HeaderMetaData handles header metadata: hash, number, parent hash, etc.
type HeaderMetaData[H, N any] interface {
	// HeaderMetadata returns the metadata of the block with the given hash.
	// It returns an error wrapping ErrUnknownBlock if the block is not known.
	HeaderMetadata(hash H) (CachedHeaderMetadata[H, N], error)
	InsertHeaderMetadata(hash H, headerMetadata CachedHeaderMetadata[H, N])
	RemoveHeaderMetadata(hash H)
}

// HeaderMetadataCache caches header metadata in an in-memory LRU cache.
// It is safe for concurrent use.
type HeaderMetadataCache[H comparable, N any] struct {
	cache *lru.Cache[H, CachedHeaderMetadata[H, N]]
	mutex sync.Mutex
}

// NewHeaderMetadataCache creates a new header metadata cache holding up to
// capacity entries, or DefaultHeaderMetadataCacheSize entries if no capacity
// or a zero capacity is given.
func NewHeaderMetadataCache[H comparable, N any](capacity ...uint32) *HeaderMetadataCache[H, N] {
	size := DefaultHeaderMetadataCacheSize
	if len(capacity) > 0 && capacity[0] > 0 {
		size = int(capacity[0])
	}

	cache, err := lru.New[H, CachedHeaderMetadata[H, N]](size)
	if err != nil {
		panic(err)
	}

	return &HeaderMetadataCache[H, N]{
		cache: cache,
	}
}

// HeaderMetadata returns the cached metadata for the given hash, and whether
// it was found. Finding an entry marks it as recently used.
func (hmc *HeaderMetadataCache[H, N]) HeaderMetadata(hash H) (metadata CachedHeaderMetadata[H, N], ok bool) {
	hmc.mutex.Lock()
	defer hmc.mutex.Unlock()
	return hmc.cache.Get(hash)
}

// InsertHeaderMetadata inserts or replaces the metadata for the given hash,
// evicting the least recently used entry if the cache is full.
func (hmc *HeaderMetadataCache[H, N]) InsertHeaderMetadata(hash H, metadata CachedHeaderMetadata[H, N]) {
	hmc.mutex.Lock()
	defer hmc.mutex.Unlock()
	hmc.cache.Add(hash, metadata)
}

// RemoveHeaderMetadata removes the metadata for the given hash, if any.
func (hmc *HeaderMetadataCache[H, N]) RemoveHeaderMetadata(hash H) {
	hmc.mutex.Lock()
	defer hmc.mutex.Unlock()
	hmc.cache.Remove(hash)
}

// Len returns the number of cached entries.
func (hmc *HeaderMetadataCache[H, N]) Len() int {
	hmc.mutex.Lock()
	defer hmc.mutex.Unlock()
	return hmc.cache.Len()
}

// CachedHeaderMetadata is the cached header metadata used to efficiently
// traverse the block tree.
type CachedHeaderMetadata[H, N any] struct {
	// Hash of the header.
	Hash H
	// Block number.
	Number N
	// Hash of parent header.
	Parent H
	// Block state root.
	StateRoot H
	// Hash of an ancestor header. Used to jump through the tree.
	ancestor H
	// Number of the ancestor header, so that a jump landing below the
	// other side of a query is skipped without looking the ancestor up.
	ancestorNumber N
}

// NewCachedHeaderMetadata creates the metadata of a header. Its jump pointer
// is set to the parent of the header.
func NewCachedHeaderMetadata[H runtime.Hash, N runtime.Number](header runtime.Header[N, H]) CachedHeaderMetadata[H, N] {
	metadata := CachedHeaderMetadata[H, N]{
		Hash:      header.Hash(),
		Number:    header.Number(),
		Parent:    header.ParentHash(),
		StateRoot: header.StateRoot(),
		ancestor:  header.ParentHash(),
	}
	if metadata.Number > 0 {
		metadata.ancestorNumber = metadata.Number - 1
	}
	return metadata
}

// Ancestor returns the hash of the ancestor the metadata jumps to.
// It is always an ancestor of the block, at least as far as its parent.
// It is the zero hash for metadata of a block above genesis which was not
// created by NewCachedHeaderMetadata, such metadata jumps to its parent.
func (chm CachedHeaderMetadata[H, N]) Ancestor() H {
	return chm.ancestor
}

// jumpTarget returns the hash and number of the block the metadata jumps to,
// falling back to the parent if no jump pointer is set.
func jumpTarget[H runtime.Hash, N runtime.Number](chm CachedHeaderMetadata[H, N]) (hash H, number N) {
	var zero H
	if chm.ancestor == zero && chm.Number > 0 {
		return chm.Parent, chm.Number - 1
	}
	return chm.ancestor, chm.ancestorNumber
}

func (chm *CachedHeaderMetadata[H, N]) setAncestor(hash H, number N) {
	chm.ancestor = hash
	chm.ancestorNumber = number
}
