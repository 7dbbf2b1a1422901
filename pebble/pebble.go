// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"errors"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/stormxvm/state"
)

var _ state.Database = (*Database)(nil)

type Config struct {
	CacheSize                   int  `json:"cacheSize"`
	BytesPerSync                int  `json:"bytesPerSync"`
	WALBytesPerSync             int  `json:"walBytesPerSync"`
	MemTableStopWritesThreshold int  `json:"memTableStopWritesThreshold"`
	MemTableSize                int  `json:"memTableSize"`
	MaxOpenFiles                int  `json:"maxOpenFiles"`
	ConcurrentCompactions       int  `json:"concurrentCompactions"`
	Sync                        bool `json:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   16 * units.MiB,
		BytesPerSync:                units.MiB,
		WALBytesPerSync:             0,
		MemTableStopWritesThreshold: 8,
		MemTableSize:                4 * units.MiB,
		MaxOpenFiles:                1_024,
		ConcurrentCompactions:       1,
		Sync:                        true,
	}
}

// Database is a [state.Database] backed by pebble. All writes of an [Apply]
// call land in a single batch.
type Database struct {
	db *pebble.DB

	sync    bool
	metrics *metrics

	closing chan struct{}
}

func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	// These default settings are based on https://github.com/ethereum/go-ethereum/blob/master/ethdb/pebble/pebble.go
	d := &Database{closing: make(chan struct{}), sync: cfg.Sync}
	opts := &pebble.Options{
		Cache:                       pebble.NewCache(int64(cfg.CacheSize)),
		BytesPerSync:                cfg.BytesPerSync,
		Comparer:                    pebble.DefaultComparer,
		WALBytesPerSync:             cfg.WALBytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MemTableSize:                uint64(cfg.MemTableSize),
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.ConcurrentCompactions },
		Levels:                      make([]pebble.LevelOptions, 7),
	}
	opts.Experimental.ReadSamplingMultiplier = -1 // explicitly disable seek compaction
	for i := 0; i < len(opts.Levels); i++ {
		l := &opts.Levels[i]
		l.BlockSize = 32 * units.KiB
		l.IndexBlockSize = 256 * units.KiB
		if i > 0 {
			l.TargetFileSize = opts.Levels[i-1].TargetFileSize * 2
		}
		opts.Levels[i].EnsureDefaults()
	}
	opts.EventListener = &pebble.EventListener{
		CompactionBegin: d.onCompactionBegin,
		CompactionEnd:   d.onCompactionEnd,
		WriteStallBegin: d.onWriteStallBegin,
		WriteStallEnd:   d.onWriteStallEnd,
	}
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	d.metrics = metrics
	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db
	go d.collectMetrics()
	return d, registry, nil
}

func (db *Database) GetValue(_ context.Context, key []byte) ([]byte, error) {
	start := time.Now()
	defer func() {
		db.metrics.readLatency.Observe(float64(time.Since(start)))
	}()

	data, closer, err := db.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	ret := make([]byte, len(data))
	copy(ret, data)
	return ret, closer.Close()
}

// Apply commits [changes] in a single batch. Nothing is written if any
// change fails to stage.
func (db *Database) Apply(_ context.Context, changes map[string]maybe.Maybe[[]byte]) error {
	start := time.Now()
	batch := db.db.NewBatch()
	defer batch.Close()

	var deleted int
	for k, v := range changes {
		if v.IsNothing() {
			if err := batch.Delete([]byte(k), nil); err != nil {
				return err
			}
			deleted++
			continue
		}
		if err := batch.Set([]byte(k), v.Value(), nil); err != nil {
			return err
		}
	}
	opts := pebble.NoSync
	if db.sync {
		opts = pebble.Sync
	}
	if err := batch.Commit(opts); err != nil {
		return err
	}
	db.metrics.writtenKeys.Add(float64(len(changes) - deleted))
	db.metrics.deletedKeys.Add(float64(deleted))
	db.metrics.applyLatency.Observe(float64(time.Since(start)))
	return nil
}

func (db *Database) Close() error {
	close(db.closing)
	return db.db.Close()
}
