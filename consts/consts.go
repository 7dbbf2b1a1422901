// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import "time"

const (
	Name = "stormxvm"

	IDLen      = 32
	ByteLen    = 1
	BoolLen    = 1
	Uint16Len  = 2
	Uint64Len  = 8
	Uint256Len = 32
	MaxUint16  = ^uint16(0)
	MaxUint64  = ^uint64(0)

	MillisecondsPerSecond = 1000
)

// Token metadata reported by the ledger views.
const (
	TokenName     = "Storm Token"
	TokenSymbol   = "STORM"
	TokenDecimals = 18
	TokenStandard = "Storm Token v2.0"
)

const (
	// DefaultChargeFee is the relay fee, in base units, installed at genesis
	// when none is configured.
	DefaultChargeFee uint64 = 10

	// DefaultMigrationWindow is the time between swap initialization and the
	// earliest moment the migration can be closed.
	DefaultMigrationWindow = 24 * 7 * 24 * time.Hour
)

// Address type prefixes.
const (
	AccountTypeID   uint8 = 0
	ComponentTypeID uint8 = 1
)
