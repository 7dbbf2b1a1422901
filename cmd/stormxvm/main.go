// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ava-labs/stormxvm/version"
)

var rootCmd = &cobra.Command{
	Use:          "stormxvm",
	Short:        "StormX token ledger node and CLI",
	Version:      version.Version.String(),
	SilenceUsage: true,
}

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text or json)")
	rootCmd.PersistentFlags().String("config", "", "Path to the node config file")
	rootCmd.PersistentFlags().String("genesis", "", "Path to the genesis file (overrides the config)")
	rootCmd.PersistentFlags().String("endpoint", "http://127.0.0.1:9660", "Node API endpoint")
	rootCmd.AddCommand(
		runCmd,
		execCmd,
		tokenCmd,
		balanceCmd,
		legacyBalanceCmd,
		migrationCmd,
		relayCmd,
		callCmd,
		unitsCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}
