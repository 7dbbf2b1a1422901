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
	_ chain.Action = (*Initialize)(nil)
	_ chain.Action = (*Reward)(nil)
	_ chain.Action = (*Rewards)(nil)
	_ chain.Action = (*EnableTransfers)(nil)
	_ chain.Action = (*AssignRewardRole)(nil)
	_ chain.Action = (*AddValidMinter)(nil)
	_ chain.Action = (*AddRelayRecipient)(nil)
	_ chain.Action = (*DeleteRelayRecipient)(nil)
	_ chain.Action = (*TransferOwnership)(nil)
)

// Initialize makes [Minter] the ledger minter. It can only run once.
type Initialize struct {
	Minter codec.Address `json:"minter"`
}

func (*Initialize) GetTypeID() uint8 { return consts.InitializeID }

func (*Initialize) Target() codec.Address { return consts.LedgerAddress }

func (i *Initialize) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Ledger().Initialize(ctx, mu, actor, i.Minter)
}

type Reward struct {
	Recipient codec.Address `json:"recipient"`
	Amount    *uint256.Int  `json:"amount"`
}

func (*Reward) GetTypeID() uint8 { return consts.RewardID }

func (*Reward) Target() codec.Address { return consts.LedgerAddress }

func (r *Reward) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Ledger().Reward(ctx, mu, actor, r.Recipient, amountOrZero(r.Amount))
}

type Rewards struct {
	Recipients []codec.Address `json:"recipients"`
	Amounts    []*uint256.Int  `json:"amounts"`
}

func (*Rewards) GetTypeID() uint8 { return consts.RewardsID }

func (*Rewards) Target() codec.Address { return consts.LedgerAddress }

func (r *Rewards) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Ledger().Rewards(ctx, mu, actor, r.Recipients, amountsOrZero(r.Amounts))
}

type EnableTransfers struct {
	Enabled bool `json:"enabled"`
}

func (*EnableTransfers) GetTypeID() uint8 { return consts.EnableTransfersID }

func (*EnableTransfers) Target() codec.Address { return consts.LedgerAddress }

func (e *EnableTransfers) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Ledger().EnableTransfers(ctx, mu, actor, e.Enabled)
}

// AssignRewardRole grants the reward role. The empty address revokes it.
type AssignRewardRole struct {
	Rewarder codec.Address `json:"rewarder"`
}

func (*AssignRewardRole) GetTypeID() uint8 { return consts.AssignRewardRoleID }

func (*AssignRewardRole) Target() codec.Address { return consts.LedgerAddress }

func (a *AssignRewardRole) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Ledger().AssignRewardRole(ctx, mu, actor, a.Rewarder)
}

type AddValidMinter struct {
	Minter codec.Address `json:"minter"`
}

func (*AddValidMinter) GetTypeID() uint8 { return consts.AddValidMinterID }

func (*AddValidMinter) Target() codec.Address { return consts.LedgerAddress }

func (a *AddValidMinter) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Ledger().AddValidMinter(ctx, mu, actor, a.Minter)
}

type AddRelayRecipient struct {
	Recipient codec.Address `json:"recipient"`
}

func (*AddRelayRecipient) GetTypeID() uint8 { return consts.AddRelayRecipientID }

func (*AddRelayRecipient) Target() codec.Address { return consts.LedgerAddress }

func (a *AddRelayRecipient) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Ledger().AddRelayRecipient(ctx, mu, actor, a.Recipient)
}

type DeleteRelayRecipient struct {
	Recipient codec.Address `json:"recipient"`
}

func (*DeleteRelayRecipient) GetTypeID() uint8 { return consts.DeleteRelayRecipientID }

func (*DeleteRelayRecipient) Target() codec.Address { return consts.LedgerAddress }

func (d *DeleteRelayRecipient) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Ledger().DeleteRelayRecipient(ctx, mu, actor, d.Recipient)
}

type TransferOwnership struct {
	NewOwner codec.Address `json:"newOwner"`
}

func (*TransferOwnership) GetTypeID() uint8 { return consts.TransferOwnershipID }

func (*TransferOwnership) Target() codec.Address { return consts.LedgerAddress }

func (o *TransferOwnership) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Ledger().TransferOwnership(ctx, mu, actor, o.NewOwner)
}
