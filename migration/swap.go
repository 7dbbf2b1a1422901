// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package migration converts legacy holdings into the current ledger 1:1
// during a bounded window. When the window closes the unconverted remainder
// is minted to a reserve so the current supply matches the legacy supply at
// initialization.
package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/holiman/uint256"

	"github.com/ava-labs/stormxvm/access"
	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/state"
	"github.com/ava-labs/stormxvm/storage"
)

type Swap struct {
	address codec.Address
	legacy  LegacyLedger
	ledger  Ledger
	window  time.Duration
}

func New(address codec.Address, legacy LegacyLedger, ledger Ledger, window time.Duration) *Swap {
	return &Swap{
		address: address,
		legacy:  legacy,
		ledger:  ledger,
		window:  window,
	}
}

func (s *Swap) Address() codec.Address {
	return s.address
}

// Setup records the ledgers the swap bridges, its owner and its reserve. The
// references can never change afterwards.
func (s *Swap) Setup(ctx context.Context, mu state.Mutable, owner codec.Address, reserve codec.Address) error {
	if owner.IsZero() {
		return storage.ErrInvalidAddress
	}
	if err := storage.SetMigrationRefs(ctx, mu, s.legacy.Address(), s.ledger.Address()); err != nil {
		return err
	}
	if err := storage.SetOwner(ctx, mu, s.address, owner); err != nil {
		return err
	}
	return storage.SetReserve(ctx, mu, s.address, reserve)
}

func (s *Swap) checkRefs(ctx context.Context, im state.Immutable) error {
	legacy, ledger, err := storage.GetMigrationRefs(ctx, im)
	if err != nil {
		return err
	}
	if legacy != s.legacy.Address() || ledger != s.ledger.Address() {
		return fmt.Errorf("%w: recorded legacy=%s ledger=%s", ErrRefMismatch, legacy, ledger)
	}
	return nil
}

// holdsAuthority reports whether the swap owns the legacy ledger.
func (s *Swap) holdsAuthority(ctx context.Context, im state.Immutable) (bool, error) {
	owner, err := s.legacy.Owner(ctx, im)
	if err != nil {
		return false, err
	}
	return owner == s.address, nil
}

// Initialize opens the migration. The swap must own the legacy ledger or be
// its pending owner, in which case it accepts the ownership first.
// [timestamp] is in unix milliseconds.
func (s *Swap) Initialize(ctx context.Context, mu state.Mutable, actor codec.Address, timestamp int64) error {
	if err := access.New(mu).RequireOwner(ctx, s.address, actor); err != nil {
		return err
	}
	if err := s.checkRefs(ctx, mu); err != nil {
		return err
	}
	m, err := storage.GetMigration(ctx, mu)
	if err != nil {
		return err
	}
	if m.Status != storage.MigrationUninitialized {
		return fmt.Errorf("%w: status=%s", ErrAlreadyInitialized, m.Status)
	}
	held, err := s.holdsAuthority(ctx, mu)
	if err != nil {
		return err
	}
	var claim bool
	if !held {
		pending, err := s.legacy.PendingOwner(ctx, mu)
		if err != nil {
			return err
		}
		if pending != s.address {
			return ErrOwnershipNotTransferred
		}
		claim = true
	}
	supply, err := s.legacy.TotalSupply(ctx, mu)
	if err != nil {
		return err
	}
	if claim {
		if err := s.legacy.AcceptOwnership(ctx, mu, s.address); err != nil {
			return err
		}
	}
	return storage.SetMigration(ctx, mu, &storage.Migration{
		Status:       storage.MigrationOpen,
		Deadline:     timestamp + s.window.Milliseconds(),
		SupplyAtInit: supply,
		Converted:    new(uint256.Int),
	})
}

// Convert burns [amount] of the legacy balance of [actor] and mints the same
// amount on the current ledger.
func (s *Swap) Convert(ctx context.Context, mu state.Mutable, actor codec.Address, amount *uint256.Int) error {
	m, err := storage.GetMigration(ctx, mu)
	if err != nil {
		return err
	}
	if m.Status != storage.MigrationOpen {
		return fmt.Errorf("%w: status=%s", ErrMigrationClosed, m.Status)
	}
	held, err := s.holdsAuthority(ctx, mu)
	if err != nil {
		return err
	}
	if !held {
		return ErrNotHoldingAuthority
	}
	if err := s.requireMinter(ctx, mu); err != nil {
		return err
	}
	bal, err := s.legacy.BalanceOf(ctx, mu, actor)
	if err != nil {
		return err
	}
	if amount.Gt(bal) {
		return fmt.Errorf(
			"%w: (bal=%s, addr=%s, amount=%s)",
			storage.ErrInsufficientLegacyBalance,
			bal.Dec(),
			actor,
			amount.Dec(),
		)
	}
	converted, overflow := new(uint256.Int).AddOverflow(m.Converted, amount)
	if overflow || converted.Gt(m.SupplyAtInit) {
		return fmt.Errorf("%w: converted exceeds supply at initialization", storage.ErrOverflow)
	}
	if err := s.legacy.Destroy(ctx, mu, s.address, actor, amount); err != nil {
		return err
	}
	if err := s.ledger.Mint(ctx, mu, s.address, actor, amount); err != nil {
		return err
	}
	m.Converted = converted
	return storage.SetMigration(ctx, mu, m)
}

func (s *Swap) requireMinter(ctx context.Context, im state.Immutable) error {
	minter, err := s.ledger.ValidMinter(ctx, im)
	if err != nil {
		return err
	}
	if minter != s.address {
		return ErrNotMinter
	}
	return nil
}

// DisableMigration closes the migration once the window elapsed and mints
// the unconverted remainder to [reserve].
func (s *Swap) DisableMigration(
	ctx context.Context,
	mu state.Mutable,
	actor codec.Address,
	timestamp int64,
	reserve codec.Address,
) error {
	if err := access.New(mu).RequireOwner(ctx, s.address, actor); err != nil {
		return err
	}
	m, err := storage.GetMigration(ctx, mu)
	if err != nil {
		return err
	}
	if m.Status != storage.MigrationOpen {
		return fmt.Errorf("%w: status=%s", ErrMigrationNotOpen, m.Status)
	}
	if timestamp < m.Deadline {
		return fmt.Errorf("%w: now=%d deadline=%d", ErrTooEarly, timestamp, m.Deadline)
	}
	if reserve.IsZero() {
		return storage.ErrInvalidAddress
	}
	remainder, underflow := new(uint256.Int).SubOverflow(m.SupplyAtInit, m.Converted)
	if underflow {
		return fmt.Errorf("%w: converted=%s supplyAtInit=%s", storage.ErrUnderflow, m.Converted.Dec(), m.SupplyAtInit.Dec())
	}
	if !remainder.IsZero() {
		if err := s.requireMinter(ctx, mu); err != nil {
			return err
		}
		if err := s.ledger.Mint(ctx, mu, s.address, reserve, remainder); err != nil {
			return err
		}
	}
	m.Status = storage.MigrationClosed
	return storage.SetMigration(ctx, mu, m)
}

// TransferOldTokenOwnership proposes [newOwner] as owner of the legacy
// ledger. The handoff completes when [newOwner] accepts on the legacy ledger.
func (s *Swap) TransferOldTokenOwnership(ctx context.Context, mu state.Mutable, actor codec.Address, newOwner codec.Address) error {
	if err := access.New(mu).RequireOwner(ctx, s.address, actor); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return storage.ErrInvalidAddress
	}
	held, err := s.holdsAuthority(ctx, mu)
	if err != nil {
		return err
	}
	if !held {
		return ErrNotHoldingAuthority
	}
	return s.legacy.TransferOwnership(ctx, mu, s.address, newOwner)
}

func (s *Swap) Owner(ctx context.Context, im state.Immutable) (codec.Address, error) {
	return storage.GetOwner(ctx, im, s.address)
}

func (*Swap) Migration(ctx context.Context, im state.Immutable) (*storage.Migration, error) {
	return storage.GetMigration(ctx, im)
}

func (*Swap) MigrationOpen(ctx context.Context, im state.Immutable) (bool, error) {
	m, err := storage.GetMigration(ctx, im)
	if err != nil {
		return false, err
	}
	return m.Status == storage.MigrationOpen, nil
}
