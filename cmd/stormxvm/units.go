// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/stormxvm/utils"
)

type unitsResponse struct {
	Tokens    string `json:"tokens"`
	BaseUnits string `json:"baseUnits"`
}

func (r unitsResponse) String() string {
	return fmt.Sprintf("%s tokens = %s base units", r.Tokens, r.BaseUnits)
}

// unitsCmd converts whole tokens into the base units actions take.
var unitsCmd = &cobra.Command{
	Use:   "units AMOUNT",
	Short: "Convert a token amount (e.g. 1.5) to base units",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := utils.ParseBalance(args[0])
		if err != nil {
			return err
		}
		return printValue(cmd, unitsResponse{
			Tokens:    utils.FormatBalance(v),
			BaseUnits: v.Dec(),
		})
	},
}
