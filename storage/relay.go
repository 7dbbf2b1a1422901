// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/state"
)

// [relayRecipientPrefix] + [component]
func RelayRecipientKey(component codec.Address) []byte {
	return addressKey(relayRecipientPrefix, component, FlagChunks)
}

func IsRelayRecipient(ctx context.Context, im state.Immutable, component codec.Address) (bool, error) {
	return getFlag(ctx, im, RelayRecipientKey(component))
}

func SetRelayRecipient(ctx context.Context, mu state.Mutable, component codec.Address, member bool) error {
	return setFlag(ctx, mu, RelayRecipientKey(component), member)
}

// [chargeFeePrefix] + [component]
func ChargeFeeKey(component codec.Address) []byte {
	return addressKey(chargeFeePrefix, component, AmountChunks)
}

func GetChargeFee(ctx context.Context, im state.Immutable, component codec.Address) (*uint256.Int, error) {
	return getAmount(ctx, im, ChargeFeeKey(component))
}

func SetChargeFee(ctx context.Context, mu state.Mutable, component codec.Address, fee *uint256.Int) error {
	return setAmount(ctx, mu, ChargeFeeKey(component), fee)
}

// [reservePrefix] + [component]
func ReserveKey(component codec.Address) []byte {
	return addressKey(reservePrefix, component, AddressChunks)
}

func GetReserve(ctx context.Context, im state.Immutable, component codec.Address) (codec.Address, error) {
	return getAddress(ctx, im, ReserveKey(component))
}

func SetReserve(ctx context.Context, mu state.Mutable, component codec.Address, reserve codec.Address) error {
	if reserve.IsZero() {
		return ErrInvalidAddress
	}
	return setAddress(ctx, mu, ReserveKey(component), reserve)
}
