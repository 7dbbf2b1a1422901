// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package migration

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/state"
)

//go:generate go run go.uber.org/mock/mockgen -package=migration -destination=mock_legacy_ledger.go . LegacyLedger

// LegacyLedger is the token holdings are converted from. The swap must own it
// to debit holders.
type LegacyLedger interface {
	Address() codec.Address
	Owner(ctx context.Context, im state.Immutable) (codec.Address, error)
	PendingOwner(ctx context.Context, im state.Immutable) (codec.Address, error)
	AcceptOwnership(ctx context.Context, mu state.Mutable, actor codec.Address) error
	TotalSupply(ctx context.Context, im state.Immutable) (*uint256.Int, error)
	BalanceOf(ctx context.Context, im state.Immutable, addr codec.Address) (*uint256.Int, error)
	Destroy(ctx context.Context, mu state.Mutable, actor codec.Address, from codec.Address, amount *uint256.Int) error
	TransferOwnership(ctx context.Context, mu state.Mutable, actor codec.Address, newOwner codec.Address) error
}

// Ledger is the token holdings are converted into.
type Ledger interface {
	Address() codec.Address
	Mint(ctx context.Context, mu state.Mutable, actor codec.Address, to codec.Address, amount *uint256.Int) error
	ValidMinter(ctx context.Context, im state.Immutable) (codec.Address, error)
}
