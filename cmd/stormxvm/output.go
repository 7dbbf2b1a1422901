// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/ava-labs/stormxvm/chain"
	"github.com/ava-labs/stormxvm/utils"
)

func isJSONOutputRequested(cmd *cobra.Command) (bool, error) {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return false, fmt.Errorf("failed to get output format: %w", err)
	}
	return strings.ToLower(output) == "json", nil
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(b))
	return nil
}

// printValue prints [v] as JSON or through its String method.
func printValue(cmd *cobra.Command, v fmt.Stringer) error {
	isJSON, err := isJSONOutputRequested(cmd)
	if err != nil {
		return err
	}
	if isJSON {
		return printJSON(v)
	}
	fmt.Println(v.String())
	return nil
}

func formatFee(res *chain.Result) string {
	if res.Fee == nil {
		return utils.FormatBalance(new(uint256.Int))
	}
	return utils.FormatBalance(res.Fee)
}

// formatAmount renders a decimal base-unit string as whole tokens.
func formatAmount(s string) string {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return s
	}
	return utils.FormatBalance(v)
}
