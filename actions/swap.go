// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/ava-labs/stormxvm/chain"
	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/consts"
	"github.com/ava-labs/stormxvm/state"
)

var (
	_ chain.Action = (*BatchTransfers)(nil)
	_ chain.Action = (*InitializeMigration)(nil)
	_ chain.Action = (*Convert)(nil)
	_ chain.Action = (*DisableMigration)(nil)
	_ chain.Action = (*TransferOldTokenOwnership)(nil)
)

// BatchTransfers runs through the transfers contract. The actor must have
// approved the contract for at least the sum of [Amounts].
type BatchTransfers struct {
	Recipients []codec.Address `json:"recipients"`
	Amounts    []*uint256.Int  `json:"amounts"`
}

func (*BatchTransfers) GetTypeID() uint8 { return consts.BatchTransfersID }

func (*BatchTransfers) Target() codec.Address { return consts.TransfersAddress }

func (b *BatchTransfers) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Transfers().Transfers(ctx, mu, actor, b.Recipients, amountsOrZero(b.Amounts))
}

// InitializeMigration opens the swap at the call timestamp.
type InitializeMigration struct{}

func (*InitializeMigration) GetTypeID() uint8 { return consts.InitializeMigrationID }

func (*InitializeMigration) Target() codec.Address { return consts.SwapAddress }

func (*InitializeMigration) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, timestamp int64, actor codec.Address) error {
	return rt.Swap().Initialize(ctx, mu, actor, timestamp)
}

type Convert struct {
	Amount *uint256.Int `json:"amount"`
}

func (*Convert) GetTypeID() uint8 { return consts.ConvertID }

func (*Convert) Target() codec.Address { return consts.SwapAddress }

func (c *Convert) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Swap().Convert(ctx, mu, actor, amountOrZero(c.Amount))
}

type DisableMigration struct {
	Reserve codec.Address `json:"reserve"`
}

func (*DisableMigration) GetTypeID() uint8 { return consts.DisableMigrationID }

func (*DisableMigration) Target() codec.Address { return consts.SwapAddress }

func (d *DisableMigration) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, timestamp int64, actor codec.Address) error {
	return rt.Swap().DisableMigration(ctx, mu, actor, timestamp, d.Reserve)
}

type TransferOldTokenOwnership struct {
	NewOwner codec.Address `json:"newOwner"`
}

func (*TransferOldTokenOwnership) GetTypeID() uint8 { return consts.TransferOldTokenOwnershipID }

func (*TransferOldTokenOwnership) Target() codec.Address { return consts.SwapAddress }

func (t *TransferOldTokenOwnership) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Swap().TransferOldTokenOwnership(ctx, mu, actor, t.NewOwner)
}
