// Copyright 2026 The Colvec Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package memory

import "github.com/prometheus/client_golang/prometheus"

// Collector implements prometheus.Collector over an Allocator's metrics.
type Collector struct {
	a *Allocator

	inUseBytes   *prometheus.Desc
	totalBytes   *prometheus.Desc
	allocCount   *prometheus.Desc
	releaseCount *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector constructs a prometheus collector exposing the allocator's
// accounting.
func NewCollector(a *Allocator) *Collector {
	return &Collector{
		a: a,
		inUseBytes: prometheus.NewDesc(
			"colvec_memory_in_use_bytes",
			"Bytes currently allocated to live buffers.",
			nil, nil,
		),
		totalBytes: prometheus.NewDesc(
			"colvec_memory_total_bytes",
			"Cumulative bytes allocated since the allocator was constructed.",
			nil, nil,
		),
		allocCount: prometheus.NewDesc(
			"colvec_memory_allocations_total",
			"Number of buffer allocations.",
			nil, nil,
		),
		releaseCount: prometheus.NewDesc(
			"colvec_memory_releases_total",
			"Number of backing allocations freed.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.inUseBytes
	ch <- c.totalBytes
	ch <- c.allocCount
	ch <- c.releaseCount
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	m := c.a.Metrics()
	ch <- prometheus.MustNewConstMetric(c.inUseBytes, prometheus.GaugeValue, float64(m.InUseBytes))
	ch <- prometheus.MustNewConstMetric(c.totalBytes, prometheus.CounterValue, float64(m.TotalBytes))
	ch <- prometheus.MustNewConstMetric(c.allocCount, prometheus.CounterValue, float64(m.AllocCount))
	ch <- prometheus.MustNewConstMetric(c.releaseCount, prometheus.CounterValue, float64(m.ReleaseCount))
}
