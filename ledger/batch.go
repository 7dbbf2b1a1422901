// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/state"
	"github.com/ava-labs/stormxvm/storage"
)

// Transfers sends amounts[i] to recipients[i] from [actor], in order. The
// batch is validated as a whole first so it applies entirely or not at all.
func (l *Ledger) Transfers(
	ctx context.Context,
	mu state.Mutable,
	actor codec.Address,
	recipients []codec.Address,
	amounts []*uint256.Int,
) error {
	if err := l.checkTransfersEnabled(ctx, mu); err != nil {
		return err
	}
	total, err := validateBatch(recipients, amounts)
	if err != nil {
		return err
	}
	if err := requireUnlocked(ctx, mu, actor, total); err != nil {
		return err
	}
	for i, recipient := range recipients {
		if err := move(ctx, mu, actor, recipient, amounts[i]); err != nil {
			return err
		}
	}
	return nil
}

// TransfersContract performs batched delegated transfers: the caller first
// approves the contract, then every leg is a transferFrom with the contract
// as spender.
type TransfersContract struct {
	address codec.Address
	ledger  *Ledger
}

func NewTransfersContract(address codec.Address, ledger *Ledger) *TransfersContract {
	return &TransfersContract{address: address, ledger: ledger}
}

func (t *TransfersContract) Address() codec.Address {
	return t.address
}

func (t *TransfersContract) Transfers(
	ctx context.Context,
	mu state.Mutable,
	actor codec.Address,
	recipients []codec.Address,
	amounts []*uint256.Int,
) error {
	if err := t.ledger.checkTransfersEnabled(ctx, mu); err != nil {
		return err
	}
	total, err := validateBatch(recipients, amounts)
	if err != nil {
		return err
	}
	if err := requireUnlocked(ctx, mu, actor, total); err != nil {
		return err
	}
	allowance, err := storage.GetAllowance(ctx, mu, actor, t.address)
	if err != nil {
		return err
	}
	if total.Gt(allowance) {
		return storage.ErrInsufficientAllowance
	}
	for i, recipient := range recipients {
		if err := t.ledger.TransferFrom(ctx, mu, t.address, actor, recipient, amounts[i]); err != nil {
			return err
		}
	}
	return nil
}
