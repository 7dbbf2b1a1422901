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
	_ chain.Action = (*Mint)(nil)
	_ chain.Action = (*Transfer)(nil)
	_ chain.Action = (*TransferFrom)(nil)
	_ chain.Action = (*Approve)(nil)
	_ chain.Action = (*IncreaseAllowance)(nil)
	_ chain.Action = (*DecreaseAllowance)(nil)
	_ chain.Action = (*Lock)(nil)
	_ chain.Action = (*Unlock)(nil)
	_ chain.Action = (*Transfers)(nil)
	_ chain.Action = (*SetAutoStaking)(nil)
)

// amountOrZero keeps a missing JSON amount from reaching the ledger as nil.
func amountOrZero(a *uint256.Int) *uint256.Int {
	if a == nil {
		return new(uint256.Int)
	}
	return a
}

type Mint struct {
	To     codec.Address `json:"to"`
	Amount *uint256.Int  `json:"amount"`
}

func (*Mint) GetTypeID() uint8 { return consts.MintID }

func (*Mint) Target() codec.Address { return consts.LedgerAddress }

func (m *Mint) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Ledger().Mint(ctx, mu, actor, m.To, amountOrZero(m.Amount))
}

type Transfer struct {
	// To is the recipient of [Amount].
	To     codec.Address `json:"to"`
	Amount *uint256.Int  `json:"amount"`
}

func (*Transfer) GetTypeID() uint8 { return consts.TransferID }

func (*Transfer) Target() codec.Address { return consts.LedgerAddress }

func (t *Transfer) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Ledger().Transfer(ctx, mu, actor, t.To, amountOrZero(t.Amount))
}

// TransferFrom moves [Amount] from [From] to [To] using the allowance
// [From] granted the actor.
type TransferFrom struct {
	From   codec.Address `json:"from"`
	To     codec.Address `json:"to"`
	Amount *uint256.Int  `json:"amount"`
}

func (*TransferFrom) GetTypeID() uint8 { return consts.TransferFromID }

func (*TransferFrom) Target() codec.Address { return consts.LedgerAddress }

func (t *TransferFrom) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Ledger().TransferFrom(ctx, mu, actor, t.From, t.To, amountOrZero(t.Amount))
}

type Approve struct {
	Spender codec.Address `json:"spender"`
	Amount  *uint256.Int  `json:"amount"`
}

func (*Approve) GetTypeID() uint8 { return consts.ApproveID }

func (*Approve) Target() codec.Address { return consts.LedgerAddress }

func (a *Approve) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Ledger().Approve(ctx, mu, actor, a.Spender, amountOrZero(a.Amount))
}

type IncreaseAllowance struct {
	Spender codec.Address `json:"spender"`
	Amount  *uint256.Int  `json:"amount"`
}

func (*IncreaseAllowance) GetTypeID() uint8 { return consts.IncreaseAllowanceID }

func (*IncreaseAllowance) Target() codec.Address { return consts.LedgerAddress }

func (a *IncreaseAllowance) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Ledger().IncreaseAllowance(ctx, mu, actor, a.Spender, amountOrZero(a.Amount))
}

type DecreaseAllowance struct {
	Spender codec.Address `json:"spender"`
	Amount  *uint256.Int  `json:"amount"`
}

func (*DecreaseAllowance) GetTypeID() uint8 { return consts.DecreaseAllowanceID }

func (*DecreaseAllowance) Target() codec.Address { return consts.LedgerAddress }

func (a *DecreaseAllowance) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Ledger().DecreaseAllowance(ctx, mu, actor, a.Spender, amountOrZero(a.Amount))
}

type Lock struct {
	Amount *uint256.Int `json:"amount"`
}

func (*Lock) GetTypeID() uint8 { return consts.LockID }

func (*Lock) Target() codec.Address { return consts.LedgerAddress }

func (l *Lock) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Ledger().Lock(ctx, mu, actor, amountOrZero(l.Amount))
}

type Unlock struct {
	Amount *uint256.Int `json:"amount"`
}

func (*Unlock) GetTypeID() uint8 { return consts.UnlockID }

func (*Unlock) Target() codec.Address { return consts.LedgerAddress }

func (u *Unlock) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Ledger().Unlock(ctx, mu, actor, amountOrZero(u.Amount))
}

// Transfers pays every recipient from the actor's unlocked balance, all or
// nothing.
type Transfers struct {
	Recipients []codec.Address `json:"recipients"`
	Amounts    []*uint256.Int  `json:"amounts"`
}

func (*Transfers) GetTypeID() uint8 { return consts.TransfersID }

func (*Transfers) Target() codec.Address { return consts.LedgerAddress }

func (t *Transfers) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Ledger().Transfers(ctx, mu, actor, t.Recipients, amountsOrZero(t.Amounts))
}

type SetAutoStaking struct {
	Enabled bool `json:"enabled"`
}

func (*SetAutoStaking) GetTypeID() uint8 { return consts.SetAutoStakingID }

func (*SetAutoStaking) Target() codec.Address { return consts.LedgerAddress }

func (s *SetAutoStaking) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Ledger().SetAutoStaking(ctx, mu, actor, s.Enabled)
}

func amountsOrZero(amounts []*uint256.Int) []*uint256.Int {
	out := make([]*uint256.Int, len(amounts))
	for i, a := range amounts {
		out[i] = amountOrZero(a)
	}
	return out
}
