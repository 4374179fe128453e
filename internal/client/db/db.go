// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package db implements a persistent block header backend on top of a
// key value database, with header and header metadata caches.
package db

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ChainSafe/headertree/dot/types"
	"github.com/ChainSafe/headertree/internal/client/db/columns"
	"github.com/ChainSafe/headertree/internal/client/db/metakeys"
	"github.com/ChainSafe/headertree/internal/database"
	"github.com/ChainSafe/headertree/internal/log"
	"github.com/ChainSafe/headertree/internal/primitives/blockchain"
	"github.com/ChainSafe/headertree/lib/common"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "client/db"))

// headerCacheSize is the number of decoded headers kept in memory.
const headerCacheSize = 8192

// Settings are the settings of a BlockchainDB.
type Settings struct {
	// CacheCapacity is the capacity of the header metadata cache.
	// It defaults to blockchain.DefaultHeaderMetadataCacheSize if zero.
	CacheCapacity uint32
	// Registerer is used to register the database metrics.
	// Metrics are not registered if it is nil.
	Registerer prometheus.Registerer
}

var _ blockchain.HeaderMetaData[common.Hash, uint] = (*BlockchainDB)(nil)

// BlockchainDB stores block headers in a database and serves their
// metadata for tree navigation. All methods are safe for concurrent use.
type BlockchainDB struct {
	db            database.Database
	headers       database.Table
	meta          database.Table
	headerCache   *lru.Cache[common.Hash, *types.Header]
	metadataCache *blockchain.HeaderMetadataCache[common.Hash, uint]
	metrics       *metrics

	// importMutex serialises writes so the existence checks
	// and the chain info stay consistent with the stored headers.
	importMutex sync.Mutex
	// cacheMutex is held for reading from a header read on a cache miss
	// until the caches are filled, and for writing while a pruned header
	// is deleted and dropped from the caches.
	cacheMutex sync.RWMutex
	infoMutex  sync.RWMutex
	info        Info
}

// NewBlockchainDB creates a blockchain database using the given
// key value database, and loads the chain info stored in it.
func NewBlockchainDB(db database.Database, settings Settings) (*BlockchainDB, error) {
	headerCache, err := lru.New[common.Hash, *types.Header](headerCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating header cache: %w", err)
	}

	capacity := settings.CacheCapacity
	if capacity == 0 {
		capacity = blockchain.DefaultHeaderMetadataCacheSize
	}

	meta := db.NewTable(string(columns.Meta))
	info, err := readInfo(meta)
	if err != nil {
		return nil, fmt.Errorf("reading chain info: %w", err)
	}

	logger.Debugf("loaded chain info: genesis %s, best block %s", info.GenesisHash, info.Best)

	return &BlockchainDB{
		db:            db,
		headers:       db.NewTable(string(columns.Header)),
		meta:          meta,
		headerCache:   headerCache,
		metadataCache: blockchain.NewHeaderMetadataCache[common.Hash, uint](capacity),
		metrics:       newMetrics(settings.Registerer),
		info:          info,
	}, nil
}

// Info returns the chain info of the database.
func (bdb *BlockchainDB) Info() Info {
	bdb.infoMutex.RLock()
	defer bdb.infoMutex.RUnlock()
	return bdb.info
}

// Header returns the header of the block with the given hash.
// It returns an error wrapping blockchain.ErrUnknownBlock if the
// header is not stored.
func (bdb *BlockchainDB) Header(hash common.Hash) (*types.Header, error) {
	header, ok := bdb.headerCache.Get(hash)
	if ok {
		return header.DeepCopy(), nil
	}

	bdb.cacheMutex.RLock()
	defer bdb.cacheMutex.RUnlock()

	header, err := bdb.loadHeader(hash)
	if err != nil {
		return nil, err
	}
	return header.DeepCopy(), nil
}

// loadHeader reads the header from the database and adds it to the header
// cache. The caller must hold cacheMutex for reading.
func (bdb *BlockchainDB) loadHeader(hash common.Hash) (*types.Header, error) {
	encoded, err := bdb.headers.Get(hash[:])
	if err != nil {
		if errors.Is(err, database.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: header was not found in the database: %s",
				blockchain.ErrUnknownBlock, hash)
		}
		return nil, fmt.Errorf("getting header %s: %w", hash, err)
	}

	header, err := types.DecodeHeader(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding header %s: %w", hash, err)
	}

	bdb.headerCache.Add(hash, header)
	return header, nil
}

// InsertHeader stores the given header. The parent header must already
// be stored unless the header is a genesis header, that is of number 0.
func (bdb *BlockchainDB) InsertHeader(header *types.Header) error {
	bdb.importMutex.Lock()
	defer bdb.importMutex.Unlock()

	hash := header.Hash()
	_, err := bdb.headers.Get(hash[:])
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", ErrBlockExists, hash)
	case !errors.Is(err, database.ErrKeyNotFound):
		return fmt.Errorf("checking header %s existence: %w", hash, err)
	}

	info := bdb.Info()
	genesis := header.Number == 0
	if genesis {
		if !info.GenesisHash.IsEmpty() {
			return fmt.Errorf("%w: %s", ErrGenesisExists, info.GenesisHash)
		}
	} else {
		parent, err := bdb.Header(header.ParentHash)
		if err != nil {
			if errors.Is(err, blockchain.ErrUnknownBlock) {
				return fmt.Errorf("%w: %s for block %s", ErrParentNotFound, header.ParentHash, hash)
			}
			return fmt.Errorf("getting parent header: %w", err)
		}

		if parent.Number+1 != header.Number {
			return fmt.Errorf("%w: block %s has number %d and parent number %d",
				ErrInvalidNumber, hash, header.Number, parent.Number)
		}
	}

	encoded, err := header.Encode()
	if err != nil {
		return fmt.Errorf("encoding header: %w", err)
	}

	writeBatch := bdb.db.NewWriteBatch()
	err = writeBatch.Set(columns.Header.Key(hash[:]), encoded)
	if err != nil {
		writeBatch.Cancel()
		return fmt.Errorf("writing header: %w", err)
	}

	if genesis {
		info.GenesisHash = hash
		err = writeBatch.Set(columns.Meta.Key(metakeys.GenesisHash), hash[:])
		if err != nil {
			writeBatch.Cancel()
			return fmt.Errorf("writing genesis hash: %w", err)
		}
	}

	if genesis || header.Number > info.Best.Number {
		info.Best = blockchain.HashNumber[common.Hash, uint]{Hash: hash, Number: header.Number}
		err = bdb.setBestBlock(writeBatch, info.Best)
		if err != nil {
			writeBatch.Cancel()
			return err
		}
	}

	err = writeBatch.Flush()
	if err != nil {
		return fmt.Errorf("flushing header %s: %w", hash, err)
	}

	bdb.headerCache.Add(hash, header.DeepCopy())
	bdb.setInfo(info)
	logger.Tracef("inserted header %s with number %d", hash.Short(), header.Number)
	return nil
}

// PruneHeader deletes the header of the given hash from the database
// and drops it from the caches. If the header is the best block, its
// parent becomes the best block.
func (bdb *BlockchainDB) PruneHeader(hash common.Hash) error {
	bdb.importMutex.Lock()
	defer bdb.importMutex.Unlock()

	header, err := bdb.Header(hash)
	if err != nil {
		return err
	}

	info := bdb.Info()
	writeBatch := bdb.db.NewWriteBatch()
	err = writeBatch.Delete(columns.Header.Key(hash[:]))
	if err != nil {
		writeBatch.Cancel()
		return fmt.Errorf("deleting header: %w", err)
	}

	if hash == info.GenesisHash {
		info.GenesisHash = common.Hash{}
		err = writeBatch.Delete(columns.Meta.Key(metakeys.GenesisHash))
		if err != nil {
			writeBatch.Cancel()
			return fmt.Errorf("deleting genesis hash: %w", err)
		}
	}

	if hash == info.Best.Hash {
		if header.Number == 0 {
			info.Best = blockchain.HashNumber[common.Hash, uint]{}
			err = writeBatch.Delete(columns.Meta.Key(metakeys.BestBlock))
			if err != nil {
				writeBatch.Cancel()
				return fmt.Errorf("deleting best block: %w", err)
			}
		} else {
			info.Best = blockchain.HashNumber[common.Hash, uint]{
				Hash:   header.ParentHash,
				Number: header.Number - 1,
			}
			err = bdb.setBestBlock(writeBatch, info.Best)
			if err != nil {
				writeBatch.Cancel()
				return err
			}
		}
	}

	bdb.cacheMutex.Lock()
	err = writeBatch.Flush()
	if err == nil {
		bdb.RemoveHeaderMetadata(hash)
	}
	bdb.cacheMutex.Unlock()
	if err != nil {
		return fmt.Errorf("flushing pruning of header %s: %w", hash, err)
	}

	bdb.setInfo(info)
	bdb.metrics.headersPruned.Inc()
	logger.Debugf("pruned header %s with number %d", hash.Short(), header.Number)
	return nil
}

func (bdb *BlockchainDB) setBestBlock(writeBatch database.WriteBatch,
	best blockchain.HashNumber[common.Hash, uint]) error {
	encoded, err := encodeHashNumber(best)
	if err != nil {
		return fmt.Errorf("encoding best block: %w", err)
	}

	err = writeBatch.Set(columns.Meta.Key(metakeys.BestBlock), encoded)
	if err != nil {
		return fmt.Errorf("writing best block: %w", err)
	}
	return nil
}

func (bdb *BlockchainDB) setInfo(info Info) {
	bdb.infoMutex.Lock()
	defer bdb.infoMutex.Unlock()
	bdb.info = info
}

// HeaderMetadata returns the metadata of the block with the given hash,
// loading it from the stored header on a cache miss.
func (bdb *BlockchainDB) HeaderMetadata(hash common.Hash) (
	blockchain.CachedHeaderMetadata[common.Hash, uint], error) {
	metadata, ok := bdb.metadataCache.HeaderMetadata(hash)
	if ok {
		bdb.metrics.cacheHits.Inc()
		return metadata, nil
	}

	bdb.metrics.cacheMisses.Inc()
	logger.Tracef("header metadata cache miss for block %s", hash.Short())

	bdb.cacheMutex.RLock()
	defer bdb.cacheMutex.RUnlock()

	header, ok := bdb.headerCache.Get(hash)
	if !ok {
		var err error
		header, err = bdb.loadHeader(hash)
		if err != nil {
			return blockchain.CachedHeaderMetadata[common.Hash, uint]{}, err
		}
	}

	metadata = blockchain.NewCachedHeaderMetadata[common.Hash, uint](headerView{header: header})
	bdb.InsertHeaderMetadata(hash, metadata)
	return metadata, nil
}

// InsertHeaderMetadata inserts the metadata in the metadata cache.
func (bdb *BlockchainDB) InsertHeaderMetadata(hash common.Hash,
	metadata blockchain.CachedHeaderMetadata[common.Hash, uint]) {
	bdb.metadataCache.InsertHeaderMetadata(hash, metadata)
	bdb.metrics.cacheEntries.Set(float64(bdb.metadataCache.Len()))
}

// RemoveHeaderMetadata drops the header and its metadata from the caches.
// The stored header is left untouched.
func (bdb *BlockchainDB) RemoveHeaderMetadata(hash common.Hash) {
	bdb.headerCache.Remove(hash)
	bdb.metadataCache.RemoveHeaderMetadata(hash)
	bdb.metrics.cacheEntries.Set(float64(bdb.metadataCache.Len()))
}

// TreeRoute returns the tree route from the block `from` to the block `to`.
func (bdb *BlockchainDB) TreeRoute(from, to common.Hash) (blockchain.TreeRoute[common.Hash, uint], error) {
	return blockchain.NewTreeRoute[common.Hash, uint](bdb, from, to)
}

// LowestCommonAncestor returns the lowest common ancestor of the blocks `one` and `two`.
func (bdb *BlockchainDB) LowestCommonAncestor(one, two common.Hash) (
	blockchain.HashNumber[common.Hash, uint], error) {
	return blockchain.LowestCommonAncestor[common.Hash, uint](bdb, one, two)
}

// LowestCommonAncestorMultiblock returns the lowest common ancestor of all
// the given blocks, or nil if no block is given.
func (bdb *BlockchainDB) LowestCommonAncestorMultiblock(hashes []common.Hash) (
	*blockchain.HashNumber[common.Hash, uint], error) {
	return blockchain.LowestCommonAncestorMultiblock[common.Hash, uint](bdb, hashes)
}
