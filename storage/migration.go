// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/holiman/uint256"

	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/consts"
	"github.com/ava-labs/stormxvm/keys"
	"github.com/ava-labs/stormxvm/state"
)

var ErrRefsAlreadySet = errors.New("migration references already set")

type MigrationStatus uint8

const (
	MigrationUninitialized MigrationStatus = iota
	MigrationOpen
	MigrationClosed
)

func (s MigrationStatus) String() string {
	switch s {
	case MigrationUninitialized:
		return "uninitialized"
	case MigrationOpen:
		return "open"
	case MigrationClosed:
		return "closed"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

const (
	migrationLen     = consts.ByteLen + consts.Uint64Len + 2*consts.Uint256Len
	migrationRefsLen = 2 * codec.AddressLen

	MigrationChunks     uint16 = 2
	MigrationRefsChunks uint16 = 2
)

var (
	migrationKey     = keys.EncodeChunks([]byte{migrationPrefix}, MigrationChunks)
	migrationRefsKey = keys.EncodeChunks([]byte{migrationRefsPrefix}, MigrationRefsChunks)
)

// Migration is the progress of the legacy conversion. Deadline is in unix
// milliseconds.
type Migration struct {
	Status       MigrationStatus
	Deadline     int64
	SupplyAtInit *uint256.Int
	Converted    *uint256.Int
}

func GetMigration(ctx context.Context, im state.Immutable) (*Migration, error) {
	v, err := im.GetValue(ctx, migrationKey)
	if errors.Is(err, database.ErrNotFound) {
		return &Migration{
			Status:       MigrationUninitialized,
			SupplyAtInit: new(uint256.Int),
			Converted:    new(uint256.Int),
		}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(v) != migrationLen {
		return nil, fmt.Errorf("%w: migration has length %d", ErrCorruptRecord, len(v))
	}
	offset := consts.ByteLen + consts.Uint64Len
	return &Migration{
		Status:       MigrationStatus(v[0]),
		Deadline:     int64(binary.BigEndian.Uint64(v[consts.ByteLen:])),
		SupplyAtInit: new(uint256.Int).SetBytes32(v[offset : offset+consts.Uint256Len]),
		Converted:    new(uint256.Int).SetBytes32(v[offset+consts.Uint256Len:]),
	}, nil
}

func SetMigration(ctx context.Context, mu state.Mutable, m *Migration) error {
	v := make([]byte, migrationLen)
	v[0] = byte(m.Status)
	binary.BigEndian.PutUint64(v[consts.ByteLen:], uint64(m.Deadline))
	offset := consts.ByteLen + consts.Uint64Len
	supply := m.SupplyAtInit.Bytes32()
	converted := m.Converted.Bytes32()
	copy(v[offset:], supply[:])
	copy(v[offset+consts.Uint256Len:], converted[:])
	return mu.Insert(ctx, migrationKey, v)
}

// GetMigrationRefs returns the legacy and current ledger the swap bridges.
func GetMigrationRefs(ctx context.Context, im state.Immutable) (codec.Address, codec.Address, error) {
	v, err := im.GetValue(ctx, migrationRefsKey)
	if errors.Is(err, database.ErrNotFound) {
		return codec.EmptyAddress, codec.EmptyAddress, nil
	}
	if err != nil {
		return codec.EmptyAddress, codec.EmptyAddress, err
	}
	if len(v) != migrationRefsLen {
		return codec.EmptyAddress, codec.EmptyAddress, fmt.Errorf("%w: migration refs have length %d", ErrCorruptRecord, len(v))
	}
	return codec.Address(v[:codec.AddressLen]), codec.Address(v[codec.AddressLen:]), nil
}

// SetMigrationRefs records the refs. It may only be called once.
func SetMigrationRefs(ctx context.Context, mu state.Mutable, legacy codec.Address, ledger codec.Address) error {
	if legacy.IsZero() || ledger.IsZero() {
		return ErrInvalidAddress
	}
	_, err := mu.GetValue(ctx, migrationRefsKey)
	if err == nil {
		return ErrRefsAlreadySet
	}
	if !errors.Is(err, database.ErrNotFound) {
		return err
	}
	v := make([]byte, 0, migrationRefsLen)
	v = append(v, legacy[:]...)
	v = append(v, ledger[:]...)
	return mu.Insert(ctx, migrationRefsKey, v)
}
