// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package relay charges relayed calls in ledger tokens. A call is first
// pre-checked; the returned [Charge] captures the fee and reserve in force at
// that moment and is applied after the call ran, whatever its outcome.
package relay

import (
	"context"
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ava-labs/stormxvm/access"
	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/ledger"
	"github.com/ava-labs/stormxvm/state"
	"github.com/ava-labs/stormxvm/storage"
)

var (
	ErrRelayRejected    = errors.New("relayed call rejected")
	ErrUnknownRecipient = errors.New("target does not accept relayed calls")
	ErrNoReserve        = errors.New("target has no reserve")
	ErrFeeUnpayable     = errors.New("relay fee unpayable after call")
)

// Charge is the fee owed for one accepted relayed call.
type Charge struct {
	Caller    codec.Address
	Collector codec.Address
	Reserve   codec.Address
	Fee       *uint256.Int
}

type FeeRelay struct {
	ledger *ledger.Ledger
}

func New(l *ledger.Ledger) *FeeRelay {
	return &FeeRelay{ledger: l}
}

// PreCheck decides whether [caller] may have a call to [target] relayed. It
// does not modify state.
func (r *FeeRelay) PreCheck(ctx context.Context, im state.Immutable, caller codec.Address, target codec.Address) (*Charge, error) {
	if caller.IsZero() {
		return nil, fmt.Errorf("%w: %w", ErrRelayRejected, storage.ErrInvalidAddress)
	}
	if target.IsZero() {
		return nil, fmt.Errorf("%w: %w", ErrRelayRejected, ErrUnknownRecipient)
	}
	if target != r.ledger.Address() {
		ok, err := access.New(im).IsRecipient(ctx, target)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %w: %s", ErrRelayRejected, ErrUnknownRecipient, target)
		}
	}
	fee, err := storage.GetChargeFee(ctx, im, target)
	if err != nil {
		return nil, err
	}
	reserve, err := storage.GetReserve(ctx, im, target)
	if err != nil {
		return nil, err
	}
	if reserve.IsZero() {
		return nil, fmt.Errorf("%w: %w: %s", ErrRelayRejected, ErrNoReserve, target)
	}
	unlocked, err := r.ledger.UnlockedBalanceOf(ctx, im, caller)
	if err != nil {
		return nil, err
	}
	if fee.Gt(unlocked) {
		return nil, fmt.Errorf(
			"%w: %w: (unlocked=%s, fee=%s, caller=%s)",
			ErrRelayRejected,
			storage.ErrInsufficientUnlocked,
			unlocked.Dec(),
			fee.Dec(),
			caller,
		)
	}
	return &Charge{
		Caller:    caller,
		Collector: target,
		Reserve:   reserve,
		Fee:       fee,
	}, nil
}

// Charge moves the fee of [c] from the caller to the reserve.
func (r *FeeRelay) Charge(ctx context.Context, mu state.Mutable, c *Charge) error {
	if c.Fee.IsZero() {
		return nil
	}
	return r.ledger.CollectFee(ctx, mu, c.Collector, c.Caller, c.Reserve, c.Fee)
}

// SetChargeFee sets the fee charged for relayed calls to [component].
func (*FeeRelay) SetChargeFee(ctx context.Context, mu state.Mutable, actor codec.Address, component codec.Address, fee *uint256.Int) error {
	if err := access.New(mu).RequireOwner(ctx, component, actor); err != nil {
		return err
	}
	return storage.SetChargeFee(ctx, mu, component, fee)
}

// SetReserve sets the account collecting relay fees for [component].
func (*FeeRelay) SetReserve(ctx context.Context, mu state.Mutable, actor codec.Address, component codec.Address, reserve codec.Address) error {
	if err := access.New(mu).RequireOwner(ctx, component, actor); err != nil {
		return err
	}
	if reserve.IsZero() {
		return storage.ErrInvalidAddress
	}
	return storage.SetReserve(ctx, mu, component, reserve)
}

func (*FeeRelay) ChargeFee(ctx context.Context, im state.Immutable, component codec.Address) (*uint256.Int, error) {
	return storage.GetChargeFee(ctx, im, component)
}

func (*FeeRelay) Reserve(ctx context.Context, im state.Immutable, component codec.Address) (codec.Address, error) {
	return storage.GetReserve(ctx, im, component)
}
