// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/profiler"

	"github.com/ava-labs/stormxvm/consts"
	"github.com/ava-labs/stormxvm/pebble"
	"github.com/ava-labs/stormxvm/server"
	"github.com/ava-labs/stormxvm/trace"
	"github.com/ava-labs/stormxvm/version"
)

const (
	defaultDataDir                     = ".stormxvm"
	defaultRPCAddress                  = "127.0.0.1:9660"
	defaultLogMaxSize                  = 8 // MB
	defaultLogMaxFiles                 = 7
	defaultLogMaxAge                   = 30 // days
	defaultKafkaTopic                  = "stormxvm.calls"
	defaultContinuousProfilerFrequency = 1 * time.Minute
	defaultContinuousProfilerMaxFiles  = 10
	defaultShutdownTimeout             = 5 * time.Second
)

type Config struct {
	// Logging
	LogLevel        logging.Level `json:"logLevel"`
	LogDisplayLevel logging.Level `json:"logDisplayLevel"`
	LogDir          string        `json:"logDir"` // empty disables the file log
	LogMaxSize      int           `json:"logMaxSize"`
	LogMaxFiles     int           `json:"logMaxFiles"`
	LogMaxAge       int           `json:"logMaxAge"`
	LogCompress     bool          `json:"logCompress"`

	// Storage
	DataDir      string `json:"dataDir"`
	DatabaseSync bool   `json:"databaseSync"`
	GenesisPath  string `json:"genesisPath"`

	// RPC
	RPCAddress      string        `json:"rpcAddress"`
	AllowedOrigins  []string      `json:"allowedOrigins"`
	AllowedHosts    []string      `json:"allowedHosts"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout"`

	// Tracing
	TraceEnabled    bool    `json:"traceEnabled"`
	TraceSampleRate float64 `json:"traceSampleRate"`
	TraceEndpoint   string  `json:"traceEndpoint"`

	// Call publishing
	KafkaBrokers []string `json:"kafkaBrokers"`
	KafkaTopic   string   `json:"kafkaTopic"`

	// Profiling
	ContinuousProfilerDir string `json:"continuousProfilerDir"`
}

func New(b []byte) (*Config, error) {
	c := &Config{}
	c.setDefault()
	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", string(b), err)
		}
	}
	return c, nil
}

func (c *Config) setDefault() {
	c.LogLevel = logging.Info
	c.LogDisplayLevel = logging.Info
	c.LogMaxSize = defaultLogMaxSize
	c.LogMaxFiles = defaultLogMaxFiles
	c.LogMaxAge = defaultLogMaxAge
	c.LogCompress = true
	c.DataDir = defaultDataDir
	c.DatabaseSync = pebble.NewDefaultConfig().Sync
	c.RPCAddress = defaultRPCAddress
	c.AllowedOrigins = []string{"*"}
	c.ShutdownTimeout = defaultShutdownTimeout
	c.KafkaTopic = defaultKafkaTopic
}

func (c *Config) GetPebbleConfig() pebble.Config {
	cfg := pebble.NewDefaultConfig()
	cfg.Sync = c.DatabaseSync
	return cfg
}

func (c *Config) GetServerConfig() server.Config {
	cfg := server.NewDefaultConfig()
	cfg.AllowedOrigins = c.AllowedOrigins
	cfg.AllowedHosts = c.AllowedHosts
	cfg.ShutdownTimeout = c.ShutdownTimeout
	return cfg
}

func (c *Config) GetTraceConfig() *trace.Config {
	return &trace.Config{
		Enabled:         c.TraceEnabled,
		TraceSampleRate: c.TraceSampleRate,
		Endpoint:        c.TraceEndpoint,
		AppName:         consts.Name,
		Agent:           consts.Name,
		Version:         version.Version.String(),
	}
}

func (c *Config) GetContinuousProfilerConfig() *profiler.Config {
	if len(c.ContinuousProfilerDir) == 0 {
		return &profiler.Config{Enabled: false}
	}
	return &profiler.Config{
		Enabled:     true,
		Dir:         c.ContinuousProfilerDir,
		Freq:        defaultContinuousProfilerFrequency,
		MaxNumFiles: defaultContinuousProfilerMaxFiles,
	}
}

// PublishCalls reports whether committed calls are published to kafka.
func (c *Config) PublishCalls() bool {
	return len(c.KafkaBrokers) > 0
}
