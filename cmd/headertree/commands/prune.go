// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"

	"github.com/ChainSafe/headertree/internal/client/db"
	"github.com/spf13/cobra"
)

func newPruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune <hash> [hash...]",
		Short: "Delete block headers from the database",
		Long: `prune <hash> deletes the stored header of the block and drops it from the caches.
Descendants of a pruned block are kept but no route can reach past it anymore.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execPrune(cmd, args)
		},
	}
}

func execPrune(cmd *cobra.Command, args []string) error {
	hashes, err := parseHashes(args)
	if err != nil {
		return err
	}

	return withBlockchainDB(func(bdb *db.BlockchainDB) error {
		for _, hash := range hashes {
			err := bdb.PruneHeader(hash)
			if err != nil {
				return fmt.Errorf("failed to prune header %s: %w", hash, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pruned %s\n", hash)
		}
		return nil
	})
}
