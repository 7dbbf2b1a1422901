// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace       = "stormx_db"
	metricsInterval = 10 * time.Second
)

type metrics struct {
	stallStart time.Time

	stall        metric.Averager
	readLatency  metric.Averager
	applyLatency metric.Averager

	compactions       *prometheus.CounterVec
	activeCompactions prometheus.Gauge

	tombstones     prometheus.Gauge
	obsoleteBytes  prometheus.Gauge
	obsoleteTables prometheus.Gauge

	writtenKeys prometheus.Counter
	deletedKeys prometheus.Counter
}

func newGauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
}

func newCounter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	m := &metrics{
		compactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compactions",
			Help:      "number of compactions by input level (l0 or deeper)",
		}, []string{"level"}),
		activeCompactions: newGauge("active_compactions", "number of running compactions"),
		tombstones:        newGauge("tombstones", "approximate count of internal tombstones"),
		obsoleteBytes:     newGauge("obsolete_bytes", "bytes held by tables no longer referenced"),
		obsoleteTables:    newGauge("obsolete_tables", "table files no longer referenced"),
		writtenKeys:       newCounter("written_keys", "keys set by committed calls"),
		deletedKeys:       newCounter("deleted_keys", "keys removed by committed calls"),
	}

	errs := wrappers.Errs{}
	var err error
	m.stall, err = metric.NewAverager(namespace+"_write_stall", "time writes waited on a stalled db", r)
	errs.Add(err)
	m.readLatency, err = metric.NewAverager(namespace+"_read_latency", "time spent in a single get", r)
	errs.Add(err)
	m.applyLatency, err = metric.NewAverager(namespace+"_apply_latency", "time spent committing a call", r)
	errs.Add(err)
	errs.Add(
		r.Register(m.compactions),
		r.Register(m.activeCompactions),
		r.Register(m.tombstones),
		r.Register(m.obsoleteBytes),
		r.Register(m.obsoleteTables),
		r.Register(m.writtenKeys),
		r.Register(m.deletedKeys),
	)
	return r, m, errs.Err
}

func (db *Database) onCompactionBegin(info pebble.CompactionInfo) {
	db.metrics.activeCompactions.Inc()
	level := "deeper"
	if len(info.Input) > 0 && info.Input[0].Level == 0 {
		level = "l0"
	}
	db.metrics.compactions.WithLabelValues(level).Inc()
}

func (db *Database) onCompactionEnd(pebble.CompactionInfo) {
	db.metrics.activeCompactions.Dec()
}

func (db *Database) onWriteStallBegin(pebble.WriteStallBeginInfo) {
	db.metrics.stallStart = time.Now()
}

func (db *Database) onWriteStallEnd() {
	db.metrics.stall.Observe(float64(time.Since(db.metrics.stallStart)))
}

// collectMetrics samples the pebble counters until the database closes.
func (db *Database) collectMetrics() {
	t := time.NewTicker(metricsInterval)
	defer t.Stop()

	for {
		select {
		case <-db.closing:
			return
		case <-t.C:
			sample := db.db.Metrics()
			db.metrics.tombstones.Set(float64(sample.Keys.TombstoneCount))
			db.metrics.obsoleteBytes.Set(float64(sample.Table.ObsoleteSize))
			db.metrics.obsoleteTables.Set(float64(sample.Table.ObsoleteCount))
		}
	}
}
