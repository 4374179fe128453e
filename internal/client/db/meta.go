// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package db

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/ChainSafe/headertree/internal/client/db/metakeys"
	"github.com/ChainSafe/headertree/internal/database"
	"github.com/ChainSafe/headertree/internal/primitives/blockchain"
	"github.com/ChainSafe/headertree/lib/common"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

// Info is the chain information of the database.
type Info struct {
	// GenesisHash is the hash of the genesis block, empty if no
	// genesis block was inserted yet.
	GenesisHash common.Hash
	// Best is the highest block inserted, the first one inserted
	// winning ties.
	Best blockchain.HashNumber[common.Hash, uint]
}

func encodeHashNumber(hashNumber blockchain.HashNumber[common.Hash, uint]) ([]byte, error) {
	buffer := bytes.NewBuffer(nil)
	encoder := scale.NewEncoder(buffer)

	err := encoder.Write(hashNumber.Hash[:])
	if err != nil {
		return nil, fmt.Errorf("encoding hash: %w", err)
	}

	err = encoder.EncodeUintCompact(*new(big.Int).SetUint64(uint64(hashNumber.Number)))
	if err != nil {
		return nil, fmt.Errorf("encoding number: %w", err)
	}

	return buffer.Bytes(), nil
}

func decodeHashNumber(encoded []byte) (hashNumber blockchain.HashNumber[common.Hash, uint], err error) {
	decoder := scale.NewDecoder(bytes.NewReader(encoded))

	err = decoder.Read(hashNumber.Hash[:])
	if err != nil {
		return hashNumber, fmt.Errorf("decoding hash: %w", err)
	}

	number, err := decoder.DecodeUintCompact()
	if err != nil {
		return hashNumber, fmt.Errorf("decoding number: %w", err)
	}
	hashNumber.Number = uint(number.Uint64())

	return hashNumber, nil
}

// readInfo reads the chain information from the meta table. Missing
// entries leave the corresponding fields empty.
func readInfo(meta database.Reader) (info Info, err error) {
	genesis, err := meta.Get(metakeys.GenesisHash)
	switch {
	case errors.Is(err, database.ErrKeyNotFound):
	case err != nil:
		return info, fmt.Errorf("getting genesis hash: %w", err)
	default:
		info.GenesisHash = common.NewHash(genesis)
	}

	best, err := meta.Get(metakeys.BestBlock)
	switch {
	case errors.Is(err, database.ErrKeyNotFound):
	case err != nil:
		return info, fmt.Errorf("getting best block: %w", err)
	default:
		info.Best, err = decodeHashNumber(best)
		if err != nil {
			return info, fmt.Errorf("decoding best block: %w", err)
		}
	}

	return info, nil
}
