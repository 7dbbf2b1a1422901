// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/holiman/uint256"

	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/requester"
	"github.com/ava-labs/stormxvm/storage"
)

type JSONRPCClient struct {
	requester *requester.EndpointRequester
}

func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	req := requester.New(uri, Name)
	return &JSONRPCClient{requester: req}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		"ping",
		nil,
		resp,
	)
	return resp.Success, err
}

func (cli *JSONRPCClient) Token(ctx context.Context) (*TokenReply, error) {
	resp := new(TokenReply)
	err := cli.requester.SendRequest(
		ctx,
		"token",
		nil,
		resp,
	)
	return resp, err
}

// Balance returns the account of [addr] with amounts in base units.
func (cli *JSONRPCClient) Balance(ctx context.Context, addr codec.Address) (*storage.Account, error) {
	resp := new(BalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		"balance",
		&AddressArgs{Address: addr},
		resp,
	)
	if err != nil {
		return nil, err
	}
	total, err := parseAmount(resp.Total)
	if err != nil {
		return nil, err
	}
	locked, err := parseAmount(resp.Locked)
	if err != nil {
		return nil, err
	}
	return &storage.Account{
		Total:               total,
		Locked:              locked,
		AutoStakingDisabled: !resp.AutoStaking,
	}, nil
}

func (cli *JSONRPCClient) Allowance(ctx context.Context, owner codec.Address, spender codec.Address) (*uint256.Int, error) {
	resp := new(AmountReply)
	err := cli.requester.SendRequest(
		ctx,
		"allowance",
		&AllowanceArgs{Owner: owner, Spender: spender},
		resp,
	)
	if err != nil {
		return nil, err
	}
	return parseAmount(resp.Amount)
}

func (cli *JSONRPCClient) TotalSupply(ctx context.Context) (*uint256.Int, error) {
	resp := new(AmountReply)
	err := cli.requester.SendRequest(
		ctx,
		"totalSupply",
		nil,
		resp,
	)
	if err != nil {
		return nil, err
	}
	return parseAmount(resp.Amount)
}

func (cli *JSONRPCClient) Migration(ctx context.Context) (*MigrationReply, error) {
	resp := new(MigrationReply)
	err := cli.requester.SendRequest(
		ctx,
		"migration",
		nil,
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) Relay(ctx context.Context, component codec.Address) (*RelayReply, error) {
	resp := new(RelayReply)
	err := cli.requester.SendRequest(
		ctx,
		"relay",
		&RelayArgs{Component: component},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) LegacyBalance(ctx context.Context, addr codec.Address) (*uint256.Int, error) {
	resp := new(LegacyBalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		"legacyBalance",
		&AddressArgs{Address: addr},
		resp,
	)
	if err != nil {
		return nil, err
	}
	return parseAmount(resp.Amount)
}

// Call returns the persisted outcome of [id]. The reply reports Found=false
// for unknown calls.
func (cli *JSONRPCClient) Call(ctx context.Context, id ids.ID) (*CallReply, error) {
	resp := new(CallReply)
	err := cli.requester.SendRequest(
		ctx,
		"call",
		&CallArgs{CallID: id},
		resp,
	)
	return resp, err
}

func parseAmount(s string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid amount %q", err, s)
	}
	return v, nil
}
