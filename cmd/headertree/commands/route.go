// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"

	"github.com/ChainSafe/headertree/internal/client/db"
	"github.com/spf13/cobra"
)

func newRouteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "route <from> <to>",
		Short: "Print the tree route between two blocks",
		Long: `route <from> <to> prints the blocks retracted from <from> down to
the common ancestor block, and the blocks enacted from it up to <to>.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execRoute(cmd, args)
		},
	}
}

func execRoute(cmd *cobra.Command, args []string) error {
	hashes, err := parseHashes(args)
	if err != nil {
		return err
	}

	return withBlockchainDB(func(bdb *db.BlockchainDB) error {
		treeRoute, err := bdb.TreeRoute(hashes[0], hashes[1])
		if err != nil {
			return fmt.Errorf("failed to compute tree route: %w", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), treeRoute.String())
		return nil
	})
}
