// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"bytes"
	"fmt"
	"math"
	"math/big"

	"github.com/ChainSafe/headertree/lib/common"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

// maxDigestItems bounds the number of digest items accepted when decoding.
const maxDigestItems = 1 << 16

// Header is a block header
type Header struct {
	ParentHash     common.Hash `json:"parentHash"`
	Number         uint        `json:"number"`
	StateRoot      common.Hash `json:"stateRoot"`
	ExtrinsicsRoot common.Hash `json:"extrinsicsRoot"`
	Digest         Digest      `json:"digest"`
	hash           common.Hash
}

// NewHeader creates a new block header and sets its hash field
func NewHeader(parentHash, stateRoot, extrinsicsRoot common.Hash,
	number uint, digest Digest) *Header {
	bh := &Header{
		ParentHash:     parentHash,
		Number:         number,
		StateRoot:      stateRoot,
		ExtrinsicsRoot: extrinsicsRoot,
		Digest:         digest,
	}

	bh.Hash()
	return bh
}

// Hash returns the hash of the block header.
// If the internal hash field is nil, it hashes the block and sets the hash field.
// It panics if the header cannot be encoded.
func (bh *Header) Hash() common.Hash {
	if bh.hash.IsEmpty() {
		enc, err := bh.Encode()
		if err != nil {
			panic(err)
		}

		bh.hash = common.Blake2bHash(enc)
	}

	return bh.hash
}

// ResetHash clears the cached hash so the next Hash call recomputes it.
// It must be called after mutating an exported field.
func (bh *Header) ResetHash() {
	bh.hash = common.Hash{}
}

// Encode returns the SCALE encoding of a header
func (bh *Header) Encode() ([]byte, error) {
	buffer := bytes.NewBuffer(nil)
	encoder := scale.NewEncoder(buffer)

	err := encoder.Write(bh.ParentHash[:])
	if err != nil {
		return nil, fmt.Errorf("encoding parent hash: %w", err)
	}

	err = encoder.EncodeUintCompact(*new(big.Int).SetUint64(uint64(bh.Number)))
	if err != nil {
		return nil, fmt.Errorf("encoding number: %w", err)
	}

	err = encoder.Write(bh.StateRoot[:])
	if err != nil {
		return nil, fmt.Errorf("encoding state root: %w", err)
	}

	err = encoder.Write(bh.ExtrinsicsRoot[:])
	if err != nil {
		return nil, fmt.Errorf("encoding extrinsics root: %w", err)
	}

	err = encoder.EncodeUintCompact(*big.NewInt(int64(len(bh.Digest))))
	if err != nil {
		return nil, fmt.Errorf("encoding digest length: %w", err)
	}

	for i, item := range bh.Digest {
		err = encoder.EncodeUintCompact(*big.NewInt(int64(len(item))))
		if err != nil {
			return nil, fmt.Errorf("encoding digest item %d length: %w", i, err)
		}

		err = encoder.Write(item)
		if err != nil {
			return nil, fmt.Errorf("encoding digest item %d: %w", i, err)
		}
	}

	return buffer.Bytes(), nil
}

// MustEncode returns the SCALE encoded header and panics if it fails to encode
func (bh *Header) MustEncode() []byte {
	enc, err := bh.Encode()
	if err != nil {
		panic(err)
	}
	return enc
}

// DecodeHeader decodes a SCALE encoded header. The returned header has its
// hash set to the hash of the input.
func DecodeHeader(encoded []byte) (*Header, error) {
	reader := bytes.NewReader(encoded)
	decoder := scale.NewDecoder(reader)

	bh := new(Header)

	err := decoder.Read(bh.ParentHash[:])
	if err != nil {
		return nil, fmt.Errorf("decoding parent hash: %w", err)
	}

	number, err := decodeCompactUint(decoder, math.MaxUint)
	if err != nil {
		return nil, fmt.Errorf("decoding number: %w", err)
	}
	bh.Number = uint(number)

	err = decoder.Read(bh.StateRoot[:])
	if err != nil {
		return nil, fmt.Errorf("decoding state root: %w", err)
	}

	err = decoder.Read(bh.ExtrinsicsRoot[:])
	if err != nil {
		return nil, fmt.Errorf("decoding extrinsics root: %w", err)
	}

	digestLength, err := decodeCompactUint(decoder, maxDigestItems)
	if err != nil {
		return nil, fmt.Errorf("decoding digest length: %w", err)
	}

	if digestLength > 0 {
		bh.Digest = make(Digest, digestLength)
	}

	for i := range bh.Digest {
		itemLength, err := decodeCompactUint(decoder, uint64(reader.Len()))
		if err != nil {
			return nil, fmt.Errorf("decoding digest item %d length: %w", i, err)
		}

		item := make(DigestItem, itemLength)
		if itemLength > 0 {
			err = decoder.Read(item)
			if err != nil {
				return nil, fmt.Errorf("decoding digest item %d: %w", i, err)
			}
		}
		bh.Digest[i] = item
	}

	if reader.Len() > 0 {
		return nil, fmt.Errorf("%w: %d bytes left", ErrTrailingBytes, reader.Len())
	}

	bh.hash = common.Blake2bHash(encoded)
	return bh, nil
}

func decodeCompactUint(decoder *scale.Decoder, limit uint64) (value uint64, err error) {
	bigValue, err := decoder.DecodeUintCompact()
	if err != nil {
		return 0, err
	}

	if !bigValue.IsUint64() || bigValue.Uint64() > limit {
		return 0, fmt.Errorf("%w: %s exceeds %d", ErrValueTooLarge, bigValue, limit)
	}

	return bigValue.Uint64(), nil
}

// DeepCopy returns a deep copy of the header to prevent side effects down the road
func (bh *Header) DeepCopy() *Header {
	cp := *bh
	cp.Digest = bh.Digest.DeepCopy()
	return &cp
}

func (bh *Header) String() string {
	return fmt.Sprintf("ParentHash=%s Number=%d StateRoot=%s ExtrinsicsRoot=%s Digest=%d items Hash=%s",
		bh.ParentHash, bh.Number, bh.StateRoot, bh.ExtrinsicsRoot, len(bh.Digest), bh.Hash())
}
