// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"

	"github.com/ChainSafe/headertree/internal/client/db"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the genesis and best blocks of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBlockchainDB(func(bdb *db.BlockchainDB) error {
				info := bdb.Info()
				if info.GenesisHash.IsEmpty() {
					fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("no headers stored"))
					return nil
				}

				fmt.Fprintf(cmd.OutOrStdout(), "genesis: %s\nbest: %s\n",
					info.GenesisHash, color.GreenString(info.Best.String()))
				return nil
			})
		},
	}
}
