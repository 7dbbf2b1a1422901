// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/state"
)

// [legacyBalancePrefix] + [address]
func LegacyBalanceKey(addr codec.Address) []byte {
	return addressKey(legacyBalancePrefix, addr, AmountChunks)
}

func GetLegacyBalance(ctx context.Context, im state.Immutable, addr codec.Address) (*uint256.Int, error) {
	return getAmount(ctx, im, LegacyBalanceKey(addr))
}

func AddLegacyBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount *uint256.Int) error {
	if addr.IsZero() {
		return ErrInvalidRecipient
	}
	bal, err := GetLegacyBalance(ctx, mu, addr)
	if err != nil {
		return err
	}
	next, overflow := new(uint256.Int).AddOverflow(bal, amount)
	if overflow {
		return fmt.Errorf(
			"%w: could not add legacy balance (bal=%s, addr=%s, amount=%s)",
			ErrOverflow,
			bal.Dec(),
			addr,
			amount.Dec(),
		)
	}
	return setAmount(ctx, mu, LegacyBalanceKey(addr), next)
}

func SubLegacyBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount *uint256.Int) error {
	bal, err := GetLegacyBalance(ctx, mu, addr)
	if err != nil {
		return err
	}
	if amount.Gt(bal) {
		return fmt.Errorf(
			"%w: could not subtract legacy balance (bal=%s, addr=%s, amount=%s)",
			ErrInsufficientLegacyBalance,
			bal.Dec(),
			addr,
			amount.Dec(),
		)
	}
	return setAmount(ctx, mu, LegacyBalanceKey(addr), new(uint256.Int).Sub(bal, amount))
}

func GetLegacySupply(ctx context.Context, im state.Immutable) (*uint256.Int, error) {
	return getAmount(ctx, im, legacySupplyKey)
}

func SetLegacySupply(ctx context.Context, mu state.Mutable, supply *uint256.Int) error {
	return setAmount(ctx, mu, legacySupplyKey, supply)
}
