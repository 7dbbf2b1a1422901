// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/spf13/cobra"

	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/consts"
	"github.com/ava-labs/stormxvm/rpc"
	"github.com/ava-labs/stormxvm/utils"
)

func newClient(cmd *cobra.Command) (*rpc.JSONRPCClient, error) {
	endpoint, err := cmd.Flags().GetString("endpoint")
	if err != nil {
		return nil, fmt.Errorf("failed to get endpoint: %w", err)
	}
	return rpc.NewJSONRPCClient(endpoint), nil
}

// componentOrAddress resolves component names ("ledger", "swap", ...) and
// falls back to parsing [s] as an address.
func componentOrAddress(s string) (codec.Address, error) {
	switch strings.ToLower(s) {
	case "ledger":
		return consts.LedgerAddress, nil
	case "swap":
		return consts.SwapAddress, nil
	case "legacy":
		return consts.LegacyAddress, nil
	case "transfers":
		return consts.TransfersAddress, nil
	default:
		return codec.StringToAddress(s)
	}
}

type tokenResponse struct {
	*rpc.TokenReply
}

func (r tokenResponse) String() string {
	return fmt.Sprintf(
		"%s (%s, %s)\ntotal supply: %s\nowner: %s\nminter: %s\nreward role: %s\ntransfers enabled: %t",
		r.Name, r.Symbol, r.Standard,
		formatAmount(r.TotalSupply),
		r.Owner, r.Minter, r.RewardRole,
		r.TransfersEnabled,
	)
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Show the token metadata and roles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cli, err := newClient(cmd)
		if err != nil {
			return err
		}
		reply, err := cli.Token(context.Background())
		if err != nil {
			return err
		}
		return printValue(cmd, tokenResponse{reply})
	},
}

type balanceResponse struct {
	Address             codec.Address `json:"address"`
	Total               string        `json:"total"`
	Locked              string        `json:"locked"`
	Unlocked            string        `json:"unlocked"`
	AutoStakingDisabled bool          `json:"autoStakingDisabled"`
}

func (r balanceResponse) String() string {
	return fmt.Sprintf(
		"%s\ntotal: %s\nlocked: %s\nunlocked: %s\nauto staking disabled: %t",
		r.Address, r.Total, r.Locked, r.Unlocked, r.AutoStakingDisabled,
	)
}

var balanceCmd = &cobra.Command{
	Use:   "balance ADDRESS",
	Short: "Show the ledger balance of an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := componentOrAddress(args[0])
		if err != nil {
			return err
		}
		cli, err := newClient(cmd)
		if err != nil {
			return err
		}
		acct, err := cli.Balance(context.Background(), addr)
		if err != nil {
			return err
		}
		return printValue(cmd, balanceResponse{
			Address:             addr,
			Total:               utils.FormatBalance(acct.Total),
			Locked:              utils.FormatBalance(acct.Locked),
			Unlocked:            utils.FormatBalance(acct.Unlocked()),
			AutoStakingDisabled: acct.AutoStakingDisabled,
		})
	},
}

type legacyBalanceResponse struct {
	Address codec.Address `json:"address"`
	Balance string        `json:"balance"`
}

func (r legacyBalanceResponse) String() string {
	return fmt.Sprintf("%s\nlegacy balance: %s", r.Address, r.Balance)
}

var legacyBalanceCmd = &cobra.Command{
	Use:   "legacy-balance ADDRESS",
	Short: "Show the legacy token balance of an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := componentOrAddress(args[0])
		if err != nil {
			return err
		}
		cli, err := newClient(cmd)
		if err != nil {
			return err
		}
		bal, err := cli.LegacyBalance(context.Background(), addr)
		if err != nil {
			return err
		}
		return printValue(cmd, legacyBalanceResponse{
			Address: addr,
			Balance: utils.FormatBalance(bal),
		})
	},
}

type migrationResponse struct {
	*rpc.MigrationReply
}

func (r migrationResponse) String() string {
	deadline := "-"
	if r.Deadline > 0 {
		deadline = time.UnixMilli(r.Deadline).UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf(
		"status: %s\nopen: %t\ndeadline: %s\nsupply at init: %s\nconverted: %s\nowner: %s",
		r.Status, r.Open, deadline,
		formatAmount(r.SupplyAtInit),
		formatAmount(r.Converted),
		r.Owner,
	)
}

var migrationCmd = &cobra.Command{
	Use:   "migration",
	Short: "Show the state of the legacy token swap",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cli, err := newClient(cmd)
		if err != nil {
			return err
		}
		reply, err := cli.Migration(context.Background())
		if err != nil {
			return err
		}
		return printValue(cmd, migrationResponse{reply})
	},
}

type relayResponse struct {
	Component codec.Address `json:"component"`
	*rpc.RelayReply
}

func (r relayResponse) String() string {
	return fmt.Sprintf(
		"%s\nrecipient: %t\nfee: %s\nreserve: %s",
		r.Component, r.Recipient, formatAmount(r.Fee), r.Reserve,
	)
}

var relayCmd = &cobra.Command{
	Use:   "relay COMPONENT",
	Short: "Show the relay configuration of a component",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		component, err := componentOrAddress(args[0])
		if err != nil {
			return err
		}
		cli, err := newClient(cmd)
		if err != nil {
			return err
		}
		reply, err := cli.Relay(context.Background(), component)
		if err != nil {
			return err
		}
		return printValue(cmd, relayResponse{Component: component, RelayReply: reply})
	},
}

type callResponse struct {
	ID ids.ID `json:"id"`
	*rpc.CallReply
}

func (r callResponse) String() string {
	if !r.Found {
		return fmt.Sprintf("call %s not found", r.ID)
	}
	outcome := "succeeded"
	if !r.Success {
		outcome = "failed: " + r.Error
	}
	return fmt.Sprintf(
		"call %s %s\ntype: %s\nactor: %s\ntarget: %s\nrelayed: %t\nfee: %s\ntimestamp: %s",
		r.ID, outcome, r.Type, r.Actor, r.Target, r.Relayed,
		formatAmount(r.Fee),
		time.UnixMilli(r.Timestamp).UTC().Format(time.RFC3339),
	)
}

var callCmd = &cobra.Command{
	Use:   "call ID",
	Short: "Show a recorded call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ids.FromString(args[0])
		if err != nil {
			return err
		}
		cli, err := newClient(cmd)
		if err != nil {
			return err
		}
		reply, err := cli.Call(context.Background(), id)
		if err != nil {
			return err
		}
		return printValue(cmd, callResponse{ID: id, CallReply: reply})
	},
}
