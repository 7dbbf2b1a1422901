// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package legacy implements the token being migrated away from. Ownership
// changes hands in two steps: the owner proposes, the proposed account
// accepts.
package legacy

import (
	"context"
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ava-labs/stormxvm/access"
	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/state"
	"github.com/ava-labs/stormxvm/storage"
)

var ErrNotPendingOwner = errors.New("not the pending owner")

type Ledger struct {
	address codec.Address
}

func New(address codec.Address) *Ledger {
	return &Ledger{address: address}
}

func (l *Ledger) Address() codec.Address {
	return l.address
}

func (*Ledger) BalanceOf(ctx context.Context, im state.Immutable, addr codec.Address) (*uint256.Int, error) {
	return storage.GetLegacyBalance(ctx, im, addr)
}

func (*Ledger) TotalSupply(ctx context.Context, im state.Immutable) (*uint256.Int, error) {
	return storage.GetLegacySupply(ctx, im)
}

func (l *Ledger) Owner(ctx context.Context, im state.Immutable) (codec.Address, error) {
	return storage.GetOwner(ctx, im, l.address)
}

func (l *Ledger) PendingOwner(ctx context.Context, im state.Immutable) (codec.Address, error) {
	return storage.GetPendingOwner(ctx, im, l.address)
}

func (l *Ledger) MintTokens(ctx context.Context, mu state.Mutable, actor codec.Address, to codec.Address, amount *uint256.Int) error {
	if err := access.New(mu).RequireOwner(ctx, l.address, actor); err != nil {
		return err
	}
	if to.IsZero() {
		return storage.ErrInvalidRecipient
	}
	supply, err := storage.GetLegacySupply(ctx, mu)
	if err != nil {
		return err
	}
	next, overflow := new(uint256.Int).AddOverflow(supply, amount)
	if overflow {
		return fmt.Errorf("%w: could not mint legacy (supply=%s, amount=%s)", storage.ErrOverflow, supply.Dec(), amount.Dec())
	}
	if err := storage.AddLegacyBalance(ctx, mu, to, amount); err != nil {
		return err
	}
	return storage.SetLegacySupply(ctx, mu, next)
}

// Destroy is the privileged debit used by the swap: it removes [amount] from
// [from] and from the supply.
func (l *Ledger) Destroy(ctx context.Context, mu state.Mutable, actor codec.Address, from codec.Address, amount *uint256.Int) error {
	if err := access.New(mu).RequireOwner(ctx, l.address, actor); err != nil {
		return err
	}
	if err := storage.SubLegacyBalance(ctx, mu, from, amount); err != nil {
		return err
	}
	supply, err := storage.GetLegacySupply(ctx, mu)
	if err != nil {
		return err
	}
	next, underflow := new(uint256.Int).SubOverflow(supply, amount)
	if underflow {
		return fmt.Errorf("%w: legacy supply below balance (supply=%s, amount=%s)", storage.ErrUnderflow, supply.Dec(), amount.Dec())
	}
	return storage.SetLegacySupply(ctx, mu, next)
}

func (*Ledger) Transfer(ctx context.Context, mu state.Mutable, from codec.Address, to codec.Address, amount *uint256.Int) error {
	if to.IsZero() {
		return storage.ErrInvalidRecipient
	}
	if err := storage.SubLegacyBalance(ctx, mu, from, amount); err != nil {
		return err
	}
	return storage.AddLegacyBalance(ctx, mu, to, amount)
}

// TransferOwnership proposes [newOwner]. Ownership moves on [AcceptOwnership].
func (l *Ledger) TransferOwnership(ctx context.Context, mu state.Mutable, actor codec.Address, newOwner codec.Address) error {
	if err := access.New(mu).RequireOwner(ctx, l.address, actor); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return storage.ErrInvalidAddress
	}
	return storage.SetPendingOwner(ctx, mu, l.address, newOwner)
}

func (l *Ledger) AcceptOwnership(ctx context.Context, mu state.Mutable, actor codec.Address) error {
	pending, err := storage.GetPendingOwner(ctx, mu, l.address)
	if err != nil {
		return err
	}
	if pending.IsZero() || pending != actor {
		return fmt.Errorf("%w: %s", ErrNotPendingOwner, actor)
	}
	if err := storage.SetOwner(ctx, mu, l.address, actor); err != nil {
		return err
	}
	return storage.SetPendingOwner(ctx, mu, l.address, codec.EmptyAddress)
}
