// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"

	"github.com/ChainSafe/headertree/internal/client/db"
	"github.com/spf13/cobra"
)

func newLCACommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lca <hash> <hash> [hash...]",
		Short: "Print the lowest common ancestor of blocks",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execLCA(cmd, args)
		},
	}
}

func execLCA(cmd *cobra.Command, args []string) error {
	hashes, err := parseHashes(args)
	if err != nil {
		return err
	}

	return withBlockchainDB(func(bdb *db.BlockchainDB) error {
		lca, err := bdb.LowestCommonAncestorMultiblock(hashes)
		if err != nil {
			return fmt.Errorf("failed to compute lowest common ancestor: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), lca.String())
		return nil
	})
}
