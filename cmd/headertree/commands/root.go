// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"errors"
	"fmt"
	"strings"

	cfg "github.com/ChainSafe/headertree/config"
	"github.com/ChainSafe/headertree/internal/client/db"
	"github.com/ChainSafe/headertree/internal/log"
	"github.com/ChainSafe/headertree/internal/metrics"
	"github.com/ChainSafe/headertree/lib/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "HEADERTREE"

var (
	config = cfg.DefaultConfig()
	logger = log.NewFromGlobal(log.AddContext("pkg", "cmd"))
)

// NewRootCommand creates the root command and its sub commands
func NewRootCommand() (*cobra.Command, error) {
	viper.Reset()
	config = cfg.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "headertree",
		Short: "Block header tree command-line interface",
		Long: `headertree stores block headers and navigates the tree they form.
Usage:
	headertree import --file headers.json
	headertree route 0x<from> 0x<to>
	headertree lca 0x<hash> 0x<hash> [0x<hash>...]
	headertree prune 0x<hash>
	headertree info`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return parseConfig(cmd)
		},
	}

	if err := addRootFlags(cmd); err != nil {
		return nil, err
	}

	cmd.AddCommand(
		newImportCommand(),
		newRouteCommand(),
		newLCACommand(),
		newPruneCommand(),
		newInfoCommand(),
	)

	return cmd, nil
}

// addRootFlags adds the root flags to the command
func addRootFlags(cmd *cobra.Command) error {
	cmd.PersistentFlags().String("config", "", "Path to a TOML, YAML or JSON configuration file")

	if err := addStringFlagBindViper(cmd,
		"base-path",
		config.BasePath,
		"Data directory of the header database",
		"base-path"); err != nil {
		return fmt.Errorf("failed to add --base-path flag: %s", err)
	}

	if err := addStringFlagBindViper(cmd,
		"log",
		config.LogLevel,
		"Global log level. Supports levels trace, debug, info, warn, error and critical",
		"log"); err != nil {
		return fmt.Errorf("failed to add --log flag: %s", err)
	}

	if err := addBoolFlagBindViper(cmd,
		"in-memory",
		config.InMemory,
		"Keep the header database in memory only",
		"in-memory"); err != nil {
		return fmt.Errorf("failed to add --in-memory flag: %s", err)
	}

	if err := addUint32FlagBindViper(cmd,
		"cache-capacity",
		config.Cache.MetadataCapacity,
		"Number of header metadata entries kept in memory",
		"cache.metadata-capacity"); err != nil {
		return fmt.Errorf("failed to add --cache-capacity flag: %s", err)
	}

	if err := addBoolFlagBindViper(cmd,
		"metrics",
		config.Metrics.Enabled,
		"Serve prometheus metrics while the command runs",
		"metrics.enabled"); err != nil {
		return fmt.Errorf("failed to add --metrics flag: %s", err)
	}

	if err := addStringFlagBindViper(cmd,
		"metrics-address",
		config.Metrics.Address,
		"Listening address of the metrics server",
		"metrics.address"); err != nil {
		return fmt.Errorf("failed to add --metrics-address flag: %s", err)
	}

	return nil
}

// parseConfig parses the config from the configuration file,
// the environment and the command line flags, in increasing priority.
func parseConfig(cmd *cobra.Command) error {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get --config: %s", err)
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	config = cfg.DefaultConfig()
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.ExpandBasePath()

	if err := config.ValidateBasic(); err != nil {
		return fmt.Errorf("error in config: %w", err)
	}

	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		return err
	}
	log.Patch(log.SetLevel(level))

	return nil
}

// withBlockchainDB opens the header database described by the config,
// serves metrics if enabled, and runs f with the blockchain database.
// Everything is closed once f returns.
func withBlockchainDB(f func(bdb *db.BlockchainDB) error) (err error) {
	store, err := utils.SetupDatabase(config.BasePath, config.InMemory)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		closeErr := store.Close()
		if closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close database: %w", closeErr))
		}
	}()

	settings := db.Settings{
		CacheCapacity: config.Cache.MetadataCapacity,
	}

	if config.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		settings.Registerer = registry

		var server *metrics.Server
		server, err = metrics.NewServer(config.Metrics.Address, registry)
		if err != nil {
			return err
		}
		if err = server.Start(); err != nil {
			return err
		}
		defer func() {
			stopErr := server.Stop()
			if stopErr != nil {
				err = errors.Join(err, fmt.Errorf("failed to stop metrics server: %w", stopErr))
			}
		}()
	}

	bdb, err := db.NewBlockchainDB(store, settings)
	if err != nil {
		return fmt.Errorf("failed to create blockchain database: %w", err)
	}

	logger.Debugf("opened header database at %s", config.BasePath)
	return f(bdb)
}
