// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package db

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "headertree"

type metrics struct {
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	cacheEntries  prometheus.Gauge
	headersPruned prometheus.Counter
}

// newMetrics creates the database metrics and registers them with the
// given registerer. A nil registerer leaves the metrics unregistered.
func newMetrics(registerer prometheus.Registerer) *metrics {
	factory := promauto.With(registerer)
	return &metrics{
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "metadata_cache_hits_total",
			Help:      "total number of header metadata cache hits",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "metadata_cache_misses_total",
			Help:      "total number of header metadata cache misses",
		}),
		cacheEntries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "metadata_cache_entries",
			Help:      "number of header metadata entries cached in memory",
		}),
		headersPruned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "headers_pruned_total",
			Help:      "total number of headers pruned from the database",
		}),
	}
}
