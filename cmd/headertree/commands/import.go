// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ChainSafe/headertree/dot/types"
	"github.com/ChainSafe/headertree/internal/client/db"
	"github.com/spf13/cobra"
)

func newImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import block headers from a JSON file",
		Long: `import --file <path> imports the headers of a JSON array of headers.
Parents must appear before their children. Headers already stored are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execImport(cmd)
		},
	}
	cmd.Flags().String("file", "", "path to the JSON headers file")
	return cmd
}

func execImport(cmd *cobra.Command) error {
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("failed to get --file: %s", err)
	}
	if file == "" {
		return fmt.Errorf("--file must be specified")
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read headers file: %w", err)
	}

	var headers []*types.Header
	err = json.Unmarshal(data, &headers)
	if err != nil {
		return fmt.Errorf("failed to decode headers file: %w", err)
	}
	for i, header := range headers {
		if header == nil {
			return fmt.Errorf("failed to decode headers file: header %d is null", i)
		}
	}

	return withBlockchainDB(func(bdb *db.BlockchainDB) error {
		imported := 0
		for _, header := range headers {
			err := bdb.InsertHeader(header)
			if errors.Is(err, db.ErrBlockExists) {
				logger.Debugf("skipping stored header %s", header.Hash().Short())
				continue
			} else if err != nil {
				return fmt.Errorf("failed to import header %s: %w", header.Hash(), err)
			}
			imported++
		}

		logger.Infof("imported %d headers out of %d", imported, len(headers))
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d headers, best block %s\n",
			imported, bdb.Info().Best)
		return nil
	})
}
