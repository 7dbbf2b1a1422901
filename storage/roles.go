// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"

	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/state"
)

// [ownerPrefix] + [component]
func OwnerKey(component codec.Address) []byte {
	return addressKey(ownerPrefix, component, AddressChunks)
}

func GetOwner(ctx context.Context, im state.Immutable, component codec.Address) (codec.Address, error) {
	return getAddress(ctx, im, OwnerKey(component))
}

func SetOwner(ctx context.Context, mu state.Mutable, component codec.Address, owner codec.Address) error {
	return setAddress(ctx, mu, OwnerKey(component), owner)
}

// [pendingOwnerPrefix] + [component]
func PendingOwnerKey(component codec.Address) []byte {
	return addressKey(pendingOwnerPrefix, component, AddressChunks)
}

func GetPendingOwner(ctx context.Context, im state.Immutable, component codec.Address) (codec.Address, error) {
	return getAddress(ctx, im, PendingOwnerKey(component))
}

func SetPendingOwner(ctx context.Context, mu state.Mutable, component codec.Address, pending codec.Address) error {
	return setAddress(ctx, mu, PendingOwnerKey(component), pending)
}

func GetMinter(ctx context.Context, im state.Immutable) (codec.Address, error) {
	return getAddress(ctx, im, minterKey)
}

func SetMinter(ctx context.Context, mu state.Mutable, minter codec.Address) error {
	return setAddress(ctx, mu, minterKey, minter)
}

func GetRewardRole(ctx context.Context, im state.Immutable) (codec.Address, error) {
	return getAddress(ctx, im, rewardRoleKey)
}

// SetRewardRole assigns the reward issuer. The empty address revokes it.
func SetRewardRole(ctx context.Context, mu state.Mutable, rewarder codec.Address) error {
	return setAddress(ctx, mu, rewardRoleKey, rewarder)
}

// GetTransfersEnabled defaults to true: only the disabled state is stored.
func GetTransfersEnabled(ctx context.Context, im state.Immutable) (bool, error) {
	disabled, err := getFlag(ctx, im, transfersDisabledKey)
	return !disabled, err
}

func SetTransfersEnabled(ctx context.Context, mu state.Mutable, enabled bool) error {
	return setFlag(ctx, mu, transfersDisabledKey, !enabled)
}

func GetLedgerInitialized(ctx context.Context, im state.Immutable) (bool, error) {
	return getFlag(ctx, im, initializedKey)
}

func SetLedgerInitialized(ctx context.Context, mu state.Mutable) error {
	return setFlag(ctx, mu, initializedKey, true)
}
