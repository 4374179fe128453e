// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package db

import (
	"testing"

	"github.com/ChainSafe/headertree/internal/primitives/blockchain"
	"github.com/ChainSafe/headertree/lib/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_encodeHashNumber(t *testing.T) {
	t.Parallel()

	hashNumber := blockchain.HashNumber[common.Hash, uint]{
		Hash:   common.Hash{1, 2},
		Number: 64,
	}

	encoded, err := encodeHashNumber(hashNumber)
	require.NoError(t, err)

	expected := append(common.Hash{1, 2}.Bytes(), 0x01, 0x01)
	assert.Equal(t, expected, encoded)

	decoded, err := decodeHashNumber(encoded)
	require.NoError(t, err)
	assert.Equal(t, hashNumber, decoded)
}
