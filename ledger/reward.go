// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ava-labs/stormxvm/access"
	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/state"
	"github.com/ava-labs/stormxvm/storage"
)

// Reward pays [amount] to [recipient] out of the unlocked balance of [actor].
func (l *Ledger) Reward(ctx context.Context, mu state.Mutable, actor codec.Address, recipient codec.Address, amount *uint256.Int) error {
	return l.Rewards(ctx, mu, actor, []codec.Address{recipient}, []*uint256.Int{amount})
}

// Rewards pays every recipient out of the unlocked balance of [actor]. The
// credit is locked unless the recipient disabled auto-staking. Either every
// recipient is paid or none is.
func (l *Ledger) Rewards(
	ctx context.Context,
	mu state.Mutable,
	actor codec.Address,
	recipients []codec.Address,
	amounts []*uint256.Int,
) error {
	if err := access.New(mu).RequireRewarder(ctx, l.address, actor); err != nil {
		return err
	}
	total, err := validateBatch(recipients, amounts)
	if err != nil {
		return err
	}
	if err := requireUnlocked(ctx, mu, actor, total); err != nil {
		return err
	}
	if err := storage.SubBalance(ctx, mu, actor, total); err != nil {
		return err
	}
	for i, recipient := range recipients {
		acct, err := storage.GetAccount(ctx, mu, recipient)
		if err != nil {
			return err
		}
		if err := storage.AddBalance(ctx, mu, recipient, amounts[i], !acct.AutoStakingDisabled); err != nil {
			return err
		}
	}
	return nil
}

// validateBatch checks the shape of a batch and returns the sum of its
// amounts.
func validateBatch(recipients []codec.Address, amounts []*uint256.Int) (*uint256.Int, error) {
	if len(recipients) != len(amounts) {
		return nil, fmt.Errorf("%w: %d recipients, %d amounts", ErrLengthMismatch, len(recipients), len(amounts))
	}
	total := new(uint256.Int)
	for i, recipient := range recipients {
		if recipient.IsZero() {
			return nil, fmt.Errorf("%w: batch index %d", storage.ErrInvalidRecipient, i)
		}
		var overflow bool
		total, overflow = new(uint256.Int).AddOverflow(total, amounts[i])
		if overflow {
			return nil, fmt.Errorf("%w: batch total exceeds 256 bits", storage.ErrOverflow)
		}
	}
	return total, nil
}
