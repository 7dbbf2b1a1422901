// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/stormxvm/pebble"
	"github.com/ava-labs/stormxvm/utils"
)

const stateDB = "statedb"

// New opens the state database under [dataDir]. The returned gatherer
// exposes the database metrics.
func New(cfg pebble.Config, dataDir string) (*pebble.Database, prometheus.Gatherer, error) {
	path, err := utils.InitSubDirectory(dataDir, stateDB)
	if err != nil {
		return nil, nil, err
	}
	return pebble.New(path, cfg)
}
