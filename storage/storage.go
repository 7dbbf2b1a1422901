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

// State
// 0x0/ (account)
//   -> [address] => total|locked|flags
// 0x1/ (allowance)
//   -> [owner|spender] => amount
// 0x2/ (supply) => amount
// 0x3/ (owner)
//   -> [component] => address
// 0x4/ (pending owner)
//   -> [component] => address
// 0x5/ (minter) => address
// 0x6/ (reward role) => address
// 0x7/ (transfers disabled) => flag
// 0x8/ (ledger initialized) => flag
// 0x9/ (relay recipient)
//   -> [component] => flag
// 0xa/ (relay charge fee)
//   -> [component] => amount
// 0xb/ (relay reserve)
//   -> [component] => address
// 0xc/ (migration) => status|deadline|supplyAtInit|converted
// 0xd/ (migration refs) => legacy|ledger
// 0xe/ (legacy balance)
//   -> [address] => amount
// 0xf/ (legacy supply) => amount
// 0x10/ (call)
//   -> [callID] => timestamp|type|actor|target|flags|fee|error
// 0x11/ (call nonce) => uint64

const (
	accountPrefix byte = iota
	allowancePrefix
	supplyPrefix
	ownerPrefix
	pendingOwnerPrefix
	minterPrefix
	rewardRolePrefix
	transfersDisabledPrefix
	initializedPrefix
	relayRecipientPrefix
	chargeFeePrefix
	reservePrefix
	migrationPrefix
	migrationRefsPrefix
	legacyBalancePrefix
	legacySupplyPrefix
	callPrefix
	callNoncePrefix
)

const (
	AmountChunks  uint16 = 1
	AddressChunks uint16 = 1
	FlagChunks    uint16 = 1
)

var (
	supplyKey            = keys.EncodeChunks([]byte{supplyPrefix}, AmountChunks)
	minterKey            = keys.EncodeChunks([]byte{minterPrefix}, AddressChunks)
	rewardRoleKey        = keys.EncodeChunks([]byte{rewardRolePrefix}, AddressChunks)
	transfersDisabledKey = keys.EncodeChunks([]byte{transfersDisabledPrefix}, FlagChunks)
	initializedKey       = keys.EncodeChunks([]byte{initializedPrefix}, FlagChunks)
	legacySupplyKey      = keys.EncodeChunks([]byte{legacySupplyPrefix}, AmountChunks)
	callNonceKey         = keys.EncodeChunks([]byte{callNoncePrefix}, 1)
)

// addressKey returns [prefix] + [addr] + [chunks].
func addressKey(prefix byte, addr codec.Address, chunks uint16) []byte {
	k := make([]byte, 0, 1+codec.AddressLen+consts.Uint16Len)
	k = append(k, prefix)
	k = append(k, addr[:]...)
	return keys.EncodeChunks(k, chunks)
}

func getAmount(ctx context.Context, im state.Immutable, key []byte) (*uint256.Int, error) {
	v, err := im.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return new(uint256.Int), nil
	}
	if err != nil {
		return nil, err
	}
	if len(v) != consts.Uint256Len {
		return nil, fmt.Errorf("%w: amount has length %d", ErrCorruptRecord, len(v))
	}
	return new(uint256.Int).SetBytes32(v), nil
}

// setAmount stores [amount] under [key]. Zero amounts are not stored.
func setAmount(ctx context.Context, mu state.Mutable, key []byte, amount *uint256.Int) error {
	if amount.IsZero() {
		return mu.Remove(ctx, key)
	}
	b := amount.Bytes32()
	return mu.Insert(ctx, key, b[:])
}

func getAddress(ctx context.Context, im state.Immutable, key []byte) (codec.Address, error) {
	v, err := im.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return codec.EmptyAddress, nil
	}
	if err != nil {
		return codec.EmptyAddress, err
	}
	if len(v) != codec.AddressLen {
		return codec.EmptyAddress, fmt.Errorf("%w: address has length %d", ErrCorruptRecord, len(v))
	}
	return codec.Address(v), nil
}

func setAddress(ctx context.Context, mu state.Mutable, key []byte, addr codec.Address) error {
	if addr.IsZero() {
		return mu.Remove(ctx, key)
	}
	return mu.Insert(ctx, key, addr[:])
}

func getFlag(ctx context.Context, im state.Immutable, key []byte) (bool, error) {
	_, err := im.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func setFlag(ctx context.Context, mu state.Mutable, key []byte, set bool) error {
	if !set {
		return mu.Remove(ctx, key)
	}
	return mu.Insert(ctx, key, []byte{0x1})
}
