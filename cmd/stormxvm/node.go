// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ava-labs/stormxvm/config"
	"github.com/ava-labs/stormxvm/controller"
	"github.com/ava-labs/stormxvm/genesis"
)

var ErrMissingGenesis = errors.New("genesis path is required")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a node serving the API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		c, err := openController(ctx, cmd)
		if err != nil {
			return err
		}
		defer c.Close()
		return c.Run(ctx)
	},
}

// openController builds a controller from the --config and --genesis flags.
func openController(ctx context.Context, cmd *cobra.Command) (*controller.Controller, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	var configBytes []byte
	if len(configPath) > 0 {
		configBytes, err = os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("%w: unable to read config", err)
		}
	}
	cfg, err := config.New(configBytes)
	if err != nil {
		return nil, err
	}

	genesisPath, err := cmd.Flags().GetString("genesis")
	if err != nil {
		return nil, err
	}
	if len(genesisPath) == 0 {
		genesisPath = cfg.GenesisPath
	}
	if len(genesisPath) == 0 {
		return nil, ErrMissingGenesis
	}
	genesisBytes, err := os.ReadFile(genesisPath)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read genesis", err)
	}
	g, err := genesis.Load(genesisBytes)
	if err != nil {
		return nil, err
	}
	return controller.New(ctx, cfg, g)
}
