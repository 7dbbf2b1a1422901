// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger implements the current token: balances with a lockable
// sub-balance, allowances, rewards and batched transfers.
package ledger

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ava-labs/stormxvm/access"
	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/consts"
	"github.com/ava-labs/stormxvm/state"
	"github.com/ava-labs/stormxvm/storage"
)

// Ledger is stateless: every operation reads and writes the [state.Mutable]
// it is given. Validation completes before the first write, so a failed
// operation leaves state untouched.
type Ledger struct {
	address codec.Address
}

func New(address codec.Address) *Ledger {
	return &Ledger{address: address}
}

func (l *Ledger) Address() codec.Address {
	return l.address
}

func (*Ledger) Name() string     { return consts.TokenName }
func (*Ledger) Symbol() string   { return consts.TokenSymbol }
func (*Ledger) Decimals() uint8  { return consts.TokenDecimals }
func (*Ledger) Standard() string { return consts.TokenStandard }

// Initialize designates the minter. It can only happen once.
func (l *Ledger) Initialize(ctx context.Context, mu state.Mutable, actor codec.Address, minter codec.Address) error {
	if err := access.New(mu).RequireOwner(ctx, l.address, actor); err != nil {
		return err
	}
	initialized, err := storage.GetLedgerInitialized(ctx, mu)
	if err != nil {
		return err
	}
	if initialized {
		return ErrAlreadyInitialized
	}
	if minter.IsZero() {
		return storage.ErrInvalidAddress
	}
	if err := storage.SetMinter(ctx, mu, minter); err != nil {
		return err
	}
	return storage.SetLedgerInitialized(ctx, mu)
}

func (l *Ledger) Mint(ctx context.Context, mu state.Mutable, actor codec.Address, to codec.Address, amount *uint256.Int) error {
	if err := access.New(mu).RequireMinter(ctx, actor); err != nil {
		return err
	}
	if to.IsZero() {
		return storage.ErrInvalidRecipient
	}
	supply, err := storage.GetTotalSupply(ctx, mu)
	if err != nil {
		return err
	}
	if _, overflow := new(uint256.Int).AddOverflow(supply, amount); overflow {
		return fmt.Errorf("%w: could not mint (supply=%s, amount=%s)", storage.ErrOverflow, supply.Dec(), amount.Dec())
	}
	// total balance of [to] is bounded by supply, so neither write can fail
	if err := storage.AddBalance(ctx, mu, to, amount, false); err != nil {
		return err
	}
	return storage.AddTotalSupply(ctx, mu, amount)
}

func (*Ledger) checkTransfersEnabled(ctx context.Context, im state.Immutable) error {
	enabled, err := storage.GetTransfersEnabled(ctx, im)
	if err != nil {
		return err
	}
	if !enabled {
		return ErrTransfersDisabled
	}
	return nil
}

// requireUnlocked returns [storage.ErrInsufficientUnlocked] if [addr] cannot
// spend [amount].
func requireUnlocked(ctx context.Context, im state.Immutable, addr codec.Address, amount *uint256.Int) error {
	acct, err := storage.GetAccount(ctx, im, addr)
	if err != nil {
		return err
	}
	unlocked := acct.Unlocked()
	if amount.Gt(unlocked) {
		return fmt.Errorf(
			"%w: (unlocked=%s, addr=%s, amount=%s)",
			storage.ErrInsufficientUnlocked,
			unlocked.Dec(),
			addr,
			amount.Dec(),
		)
	}
	return nil
}

// move debits the unlocked balance of [from] and credits [to].
func move(ctx context.Context, mu state.Mutable, from codec.Address, to codec.Address, amount *uint256.Int) error {
	if err := storage.SubBalance(ctx, mu, from, amount); err != nil {
		return err
	}
	return storage.AddBalance(ctx, mu, to, amount, false)
}

func (l *Ledger) Transfer(ctx context.Context, mu state.Mutable, from codec.Address, to codec.Address, amount *uint256.Int) error {
	if err := l.checkTransfersEnabled(ctx, mu); err != nil {
		return err
	}
	if to.IsZero() {
		return storage.ErrInvalidRecipient
	}
	return move(ctx, mu, from, to, amount)
}

// TransferFrom moves [amount] from [from] to [to] on behalf of [spender],
// consuming allowance.
func (l *Ledger) TransferFrom(
	ctx context.Context,
	mu state.Mutable,
	spender codec.Address,
	from codec.Address,
	to codec.Address,
	amount *uint256.Int,
) error {
	if err := l.checkTransfersEnabled(ctx, mu); err != nil {
		return err
	}
	if to.IsZero() {
		return storage.ErrInvalidRecipient
	}
	if err := requireUnlocked(ctx, mu, from, amount); err != nil {
		return err
	}
	if err := storage.SubAllowance(ctx, mu, from, spender, amount); err != nil {
		return err
	}
	return move(ctx, mu, from, to, amount)
}

func (*Ledger) Approve(ctx context.Context, mu state.Mutable, owner codec.Address, spender codec.Address, amount *uint256.Int) error {
	if spender.IsZero() {
		return storage.ErrInvalidAddress
	}
	return storage.SetAllowance(ctx, mu, owner, spender, amount)
}

func (*Ledger) IncreaseAllowance(ctx context.Context, mu state.Mutable, owner codec.Address, spender codec.Address, amount *uint256.Int) error {
	if spender.IsZero() {
		return storage.ErrInvalidAddress
	}
	allowance, err := storage.GetAllowance(ctx, mu, owner, spender)
	if err != nil {
		return err
	}
	next, overflow := new(uint256.Int).AddOverflow(allowance, amount)
	if overflow {
		return fmt.Errorf("%w: could not increase allowance (allowance=%s, amount=%s)", storage.ErrOverflow, allowance.Dec(), amount.Dec())
	}
	return storage.SetAllowance(ctx, mu, owner, spender, next)
}

func (*Ledger) DecreaseAllowance(ctx context.Context, mu state.Mutable, owner codec.Address, spender codec.Address, amount *uint256.Int) error {
	if spender.IsZero() {
		return storage.ErrInvalidAddress
	}
	return storage.SubAllowance(ctx, mu, owner, spender, amount)
}

func (*Ledger) Lock(ctx context.Context, mu state.Mutable, actor codec.Address, amount *uint256.Int) error {
	return storage.LockBalance(ctx, mu, actor, amount)
}

func (*Ledger) Unlock(ctx context.Context, mu state.Mutable, actor codec.Address, amount *uint256.Int) error {
	return storage.UnlockBalance(ctx, mu, actor, amount)
}

// SetAutoStaking sets whether rewards credited to [actor] are locked.
func (*Ledger) SetAutoStaking(ctx context.Context, mu state.Mutable, actor codec.Address, enabled bool) error {
	return storage.SetAutoStakingDisabled(ctx, mu, actor, !enabled)
}

func (l *Ledger) EnableTransfers(ctx context.Context, mu state.Mutable, actor codec.Address, enabled bool) error {
	if err := access.New(mu).RequireOwner(ctx, l.address, actor); err != nil {
		return err
	}
	return storage.SetTransfersEnabled(ctx, mu, enabled)
}

// AssignRewardRole grants the reward role to [rewarder]. The empty address
// revokes it.
func (l *Ledger) AssignRewardRole(ctx context.Context, mu state.Mutable, actor codec.Address, rewarder codec.Address) error {
	if err := access.New(mu).RequireOwner(ctx, l.address, actor); err != nil {
		return err
	}
	return storage.SetRewardRole(ctx, mu, rewarder)
}

func (l *Ledger) AddValidMinter(ctx context.Context, mu state.Mutable, actor codec.Address, minter codec.Address) error {
	if err := access.New(mu).RequireOwner(ctx, l.address, actor); err != nil {
		return err
	}
	if minter.IsZero() {
		return storage.ErrInvalidAddress
	}
	return storage.SetMinter(ctx, mu, minter)
}

func (l *Ledger) AddRelayRecipient(ctx context.Context, mu state.Mutable, actor codec.Address, recipient codec.Address) error {
	return l.setRelayRecipient(ctx, mu, actor, recipient, true)
}

func (l *Ledger) DeleteRelayRecipient(ctx context.Context, mu state.Mutable, actor codec.Address, recipient codec.Address) error {
	return l.setRelayRecipient(ctx, mu, actor, recipient, false)
}

func (l *Ledger) setRelayRecipient(ctx context.Context, mu state.Mutable, actor codec.Address, recipient codec.Address, member bool) error {
	if err := access.New(mu).RequireOwner(ctx, l.address, actor); err != nil {
		return err
	}
	if recipient.IsZero() {
		return storage.ErrInvalidAddress
	}
	return storage.SetRelayRecipient(ctx, mu, recipient, member)
}

func (l *Ledger) TransferOwnership(ctx context.Context, mu state.Mutable, actor codec.Address, newOwner codec.Address) error {
	if err := access.New(mu).RequireOwner(ctx, l.address, actor); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return storage.ErrInvalidAddress
	}
	return storage.SetOwner(ctx, mu, l.address, newOwner)
}

// CollectFee moves a relay fee from [from] to [reserve]. Only the ledger
// itself or a registered relay recipient may collect, and the transfer
// switch does not apply.
func (l *Ledger) CollectFee(
	ctx context.Context,
	mu state.Mutable,
	collector codec.Address,
	from codec.Address,
	reserve codec.Address,
	amount *uint256.Int,
) error {
	if collector != l.address {
		ok, err := access.New(mu).IsRecipient(ctx, collector)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s is not a relay recipient", access.ErrUnauthorized, collector)
		}
	}
	if reserve.IsZero() {
		return storage.ErrInvalidRecipient
	}
	return move(ctx, mu, from, reserve, amount)
}

func (*Ledger) TotalSupply(ctx context.Context, im state.Immutable) (*uint256.Int, error) {
	return storage.GetTotalSupply(ctx, im)
}

func (*Ledger) BalanceOf(ctx context.Context, im state.Immutable, addr codec.Address) (*uint256.Int, error) {
	acct, err := storage.GetAccount(ctx, im, addr)
	if err != nil {
		return nil, err
	}
	return acct.Total, nil
}

func (*Ledger) LockedBalanceOf(ctx context.Context, im state.Immutable, addr codec.Address) (*uint256.Int, error) {
	acct, err := storage.GetAccount(ctx, im, addr)
	if err != nil {
		return nil, err
	}
	return acct.Locked, nil
}

func (*Ledger) UnlockedBalanceOf(ctx context.Context, im state.Immutable, addr codec.Address) (*uint256.Int, error) {
	acct, err := storage.GetAccount(ctx, im, addr)
	if err != nil {
		return nil, err
	}
	return acct.Unlocked(), nil
}

func (*Ledger) Account(ctx context.Context, im state.Immutable, addr codec.Address) (*storage.Account, error) {
	return storage.GetAccount(ctx, im, addr)
}

func (*Ledger) Allowance(ctx context.Context, im state.Immutable, owner codec.Address, spender codec.Address) (*uint256.Int, error) {
	return storage.GetAllowance(ctx, im, owner, spender)
}

func (l *Ledger) Owner(ctx context.Context, im state.Immutable) (codec.Address, error) {
	return storage.GetOwner(ctx, im, l.address)
}

func (*Ledger) ValidMinter(ctx context.Context, im state.Immutable) (codec.Address, error) {
	return storage.GetMinter(ctx, im)
}

func (*Ledger) RewardRole(ctx context.Context, im state.Immutable) (codec.Address, error) {
	return storage.GetRewardRole(ctx, im)
}

func (*Ledger) TransfersEnabled(ctx context.Context, im state.Immutable) (bool, error) {
	return storage.GetTransfersEnabled(ctx, im)
}

func (*Ledger) IsRelayRecipient(ctx context.Context, im state.Immutable, addr codec.Address) (bool, error) {
	return storage.IsRelayRecipient(ctx, im, addr)
}
