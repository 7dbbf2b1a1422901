// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/holiman/uint256"

	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/consts"
	"github.com/ava-labs/stormxvm/keys"
	"github.com/ava-labs/stormxvm/state"
)

const (
	accountLen = 2*consts.Uint256Len + consts.ByteLen

	autoStakingDisabledFlag byte = 0x1
)

const AccountChunks uint16 = 2

// Account is the balance record of a single address. Locked never exceeds
// Total.
type Account struct {
	Total               *uint256.Int
	Locked              *uint256.Int
	AutoStakingDisabled bool
}

func newAccount() *Account {
	return &Account{Total: new(uint256.Int), Locked: new(uint256.Int)}
}

// Unlocked returns Total - Locked.
func (a *Account) Unlocked() *uint256.Int {
	return new(uint256.Int).Sub(a.Total, a.Locked)
}

func (a *Account) empty() bool {
	return a.Total.IsZero() && a.Locked.IsZero() && !a.AutoStakingDisabled
}

// [accountPrefix] + [address]
func AccountKey(addr codec.Address) []byte {
	return addressKey(accountPrefix, addr, AccountChunks)
}

// GetAccount returns the account of [addr]. Unknown addresses return an
// empty account.
func GetAccount(ctx context.Context, im state.Immutable, addr codec.Address) (*Account, error) {
	v, err := im.GetValue(ctx, AccountKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return newAccount(), nil
	}
	if err != nil {
		return nil, err
	}
	if len(v) != accountLen {
		return nil, fmt.Errorf("%w: account has length %d", ErrCorruptRecord, len(v))
	}
	return &Account{
		Total:               new(uint256.Int).SetBytes32(v[:consts.Uint256Len]),
		Locked:              new(uint256.Int).SetBytes32(v[consts.Uint256Len : 2*consts.Uint256Len]),
		AutoStakingDisabled: v[2*consts.Uint256Len]&autoStakingDisabledFlag != 0,
	}, nil
}

// SetAccount stores [acct], removing the record when it holds nothing.
func SetAccount(ctx context.Context, mu state.Mutable, addr codec.Address, acct *Account) error {
	if acct.Locked.Gt(acct.Total) {
		return fmt.Errorf("%w: locked exceeds total (total=%s, locked=%s, addr=%s)", ErrUnderflow, acct.Total.Dec(), acct.Locked.Dec(), addr)
	}
	k := AccountKey(addr)
	if acct.empty() {
		return mu.Remove(ctx, k)
	}
	v := make([]byte, accountLen)
	total := acct.Total.Bytes32()
	locked := acct.Locked.Bytes32()
	copy(v, total[:])
	copy(v[consts.Uint256Len:], locked[:])
	if acct.AutoStakingDisabled {
		v[2*consts.Uint256Len] = autoStakingDisabledFlag
	}
	return mu.Insert(ctx, k, v)
}

// AddBalance credits [amount] to the total of [addr]. If [lock] is set the
// credited amount is also locked.
func AddBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	amount *uint256.Int,
	lock bool,
) error {
	if addr.IsZero() {
		return ErrInvalidRecipient
	}
	acct, err := GetAccount(ctx, mu, addr)
	if err != nil {
		return err
	}
	total, overflow := new(uint256.Int).AddOverflow(acct.Total, amount)
	if overflow {
		return fmt.Errorf(
			"%w: could not add balance (bal=%s, addr=%s, amount=%s)",
			ErrOverflow,
			acct.Total.Dec(),
			addr,
			amount.Dec(),
		)
	}
	acct.Total = total
	if lock {
		// locked <= total before the credit so this cannot overflow
		acct.Locked = new(uint256.Int).Add(acct.Locked, amount)
	}
	return SetAccount(ctx, mu, addr, acct)
}

// SubBalance debits [amount] from the unlocked balance of [addr].
func SubBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	amount *uint256.Int,
) error {
	acct, err := GetAccount(ctx, mu, addr)
	if err != nil {
		return err
	}
	unlocked := acct.Unlocked()
	if amount.Gt(unlocked) {
		return fmt.Errorf(
			"%w: could not subtract balance (unlocked=%s, addr=%s, amount=%s)",
			ErrInsufficientUnlocked,
			unlocked.Dec(),
			addr,
			amount.Dec(),
		)
	}
	acct.Total = new(uint256.Int).Sub(acct.Total, amount)
	return SetAccount(ctx, mu, addr, acct)
}

// LockBalance moves [amount] of the unlocked balance of [addr] into the
// locked balance.
func LockBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount *uint256.Int) error {
	acct, err := GetAccount(ctx, mu, addr)
	if err != nil {
		return err
	}
	unlocked := acct.Unlocked()
	if amount.Gt(unlocked) {
		return fmt.Errorf(
			"%w: could not lock (unlocked=%s, addr=%s, amount=%s)",
			ErrInsufficientUnlocked,
			unlocked.Dec(),
			addr,
			amount.Dec(),
		)
	}
	acct.Locked = new(uint256.Int).Add(acct.Locked, amount)
	return SetAccount(ctx, mu, addr, acct)
}

// UnlockBalance moves [amount] of the locked balance of [addr] back into the
// unlocked balance.
func UnlockBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount *uint256.Int) error {
	acct, err := GetAccount(ctx, mu, addr)
	if err != nil {
		return err
	}
	if amount.Gt(acct.Locked) {
		return fmt.Errorf(
			"%w: could not unlock (locked=%s, addr=%s, amount=%s)",
			ErrInsufficientLocked,
			acct.Locked.Dec(),
			addr,
			amount.Dec(),
		)
	}
	acct.Locked = new(uint256.Int).Sub(acct.Locked, amount)
	return SetAccount(ctx, mu, addr, acct)
}

func SetAutoStakingDisabled(ctx context.Context, mu state.Mutable, addr codec.Address, disabled bool) error {
	acct, err := GetAccount(ctx, mu, addr)
	if err != nil {
		return err
	}
	acct.AutoStakingDisabled = disabled
	return SetAccount(ctx, mu, addr, acct)
}

// [allowancePrefix] + [owner] + [spender]
func AllowanceKey(owner codec.Address, spender codec.Address) []byte {
	k := make([]byte, 0, 1+2*codec.AddressLen+2)
	k = append(k, allowancePrefix)
	k = append(k, owner[:]...)
	k = append(k, spender[:]...)
	return keys.EncodeChunks(k, AmountChunks)
}

func GetAllowance(ctx context.Context, im state.Immutable, owner codec.Address, spender codec.Address) (*uint256.Int, error) {
	return getAmount(ctx, im, AllowanceKey(owner, spender))
}

func SetAllowance(ctx context.Context, mu state.Mutable, owner codec.Address, spender codec.Address, amount *uint256.Int) error {
	return setAmount(ctx, mu, AllowanceKey(owner, spender), amount)
}

// SubAllowance consumes [amount] of the allowance [owner] granted [spender].
func SubAllowance(ctx context.Context, mu state.Mutable, owner codec.Address, spender codec.Address, amount *uint256.Int) error {
	allowance, err := GetAllowance(ctx, mu, owner, spender)
	if err != nil {
		return err
	}
	if amount.Gt(allowance) {
		return fmt.Errorf(
			"%w: (allowance=%s, owner=%s, spender=%s, amount=%s)",
			ErrInsufficientAllowance,
			allowance.Dec(),
			owner,
			spender,
			amount.Dec(),
		)
	}
	return SetAllowance(ctx, mu, owner, spender, new(uint256.Int).Sub(allowance, amount))
}

func GetTotalSupply(ctx context.Context, im state.Immutable) (*uint256.Int, error) {
	return getAmount(ctx, im, supplyKey)
}

func AddTotalSupply(ctx context.Context, mu state.Mutable, amount *uint256.Int) error {
	supply, err := GetTotalSupply(ctx, mu)
	if err != nil {
		return err
	}
	next, overflow := new(uint256.Int).AddOverflow(supply, amount)
	if overflow {
		return fmt.Errorf("%w: could not add supply (supply=%s, amount=%s)", ErrOverflow, supply.Dec(), amount.Dec())
	}
	return setAmount(ctx, mu, supplyKey, next)
}
