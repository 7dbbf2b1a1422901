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
	_ chain.Action = (*LegacyMintTokens)(nil)
	_ chain.Action = (*LegacyTransfer)(nil)
	_ chain.Action = (*LegacyTransferOwnership)(nil)
	_ chain.Action = (*LegacyAcceptOwnership)(nil)
)

type LegacyMintTokens struct {
	To     codec.Address `json:"to"`
	Amount *uint256.Int  `json:"amount"`
}

func (*LegacyMintTokens) GetTypeID() uint8 { return consts.LegacyMintTokensID }

func (*LegacyMintTokens) Target() codec.Address { return consts.LegacyAddress }

func (m *LegacyMintTokens) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Legacy().MintTokens(ctx, mu, actor, m.To, amountOrZero(m.Amount))
}

type LegacyTransfer struct {
	To     codec.Address `json:"to"`
	Amount *uint256.Int  `json:"amount"`
}

func (*LegacyTransfer) GetTypeID() uint8 { return consts.LegacyTransferID }

func (*LegacyTransfer) Target() codec.Address { return consts.LegacyAddress }

func (t *LegacyTransfer) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Legacy().Transfer(ctx, mu, actor, t.To, amountOrZero(t.Amount))
}

type LegacyTransferOwnership struct {
	NewOwner codec.Address `json:"newOwner"`
}

func (*LegacyTransferOwnership) GetTypeID() uint8 { return consts.LegacyTransferOwnershipID }

func (*LegacyTransferOwnership) Target() codec.Address { return consts.LegacyAddress }

func (t *LegacyTransferOwnership) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Legacy().TransferOwnership(ctx, mu, actor, t.NewOwner)
}

// LegacyAcceptOwnership completes a pending ownership handoff of the legacy
// ledger. The actor must be the pending owner.
type LegacyAcceptOwnership struct{}

func (*LegacyAcceptOwnership) GetTypeID() uint8 { return consts.LegacyAcceptOwnershipID }

func (*LegacyAcceptOwnership) Target() codec.Address { return consts.LegacyAddress }

func (*LegacyAcceptOwnership) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Legacy().AcceptOwnership(ctx, mu, actor)
}
