// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package config holds the headertree configuration.
package config

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/headertree/internal/log"
	"github.com/ChainSafe/headertree/internal/metrics"
	"github.com/ChainSafe/headertree/internal/primitives/blockchain"
	"github.com/ChainSafe/headertree/lib/utils"
)

const (
	// DefaultLogLevel is the default log level
	DefaultLogLevel = "info"
	// DefaultMetricsAddress is the default metrics server address
	DefaultMetricsAddress = metrics.DefaultAddress
)

// DefaultBasePath is the default base directory path
var DefaultBasePath = utils.BasePath("default")

var (
	ErrBasePathEmpty       = errors.New("base-path is empty")
	ErrCacheCapacityZero   = errors.New("cache capacity must be greater than zero")
	ErrMetricsAddressEmpty = errors.New("metrics address is empty")
)

// Config defines the configuration of headertree
type Config struct {
	// BasePath is the directory holding the database
	BasePath string `mapstructure:"base-path"`
	// LogLevel is the global log level
	LogLevel string `mapstructure:"log"`
	// InMemory keeps the database in memory only
	InMemory bool `mapstructure:"in-memory"`

	Cache   *CacheConfig   `mapstructure:"cache"`
	Metrics *MetricsConfig `mapstructure:"metrics"`
}

// CacheConfig is the cache configuration
type CacheConfig struct {
	// MetadataCapacity is the number of header metadata entries kept in memory
	MetadataCapacity uint32 `mapstructure:"metadata-capacity"`
}

// MetricsConfig is the prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BasePath: DefaultBasePath,
		LogLevel: DefaultLogLevel,
		Cache: &CacheConfig{
			MetadataCapacity: blockchain.DefaultHeaderMetadataCacheSize,
		},
		Metrics: &MetricsConfig{
			Address: DefaultMetricsAddress,
		},
	}
}

// ValidateBasic performs basic validation on the config
func (c *Config) ValidateBasic() error {
	if c.BasePath == "" && !c.InMemory {
		return fmt.Errorf("%w", ErrBasePathEmpty)
	}

	_, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	if c.Cache.MetadataCapacity == 0 {
		return fmt.Errorf("%w", ErrCacheCapacityZero)
	}

	if c.Metrics.Enabled && c.Metrics.Address == "" {
		return fmt.Errorf("%w", ErrMetricsAddressEmpty)
	}

	return nil
}

// ExpandBasePath expands the base path home prefix and environment variables.
func (c *Config) ExpandBasePath() {
	if c.BasePath != "" {
		c.BasePath = utils.ExpandDir(c.BasePath)
	}
}
