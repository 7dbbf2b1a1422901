// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"

	"github.com/ava-labs/stormxvm/codec"
)

// Component identities. Each on-ledger component acts under its own address
// so it can hold balances, allowances and ownership like any account.
var (
	LedgerAddress    = componentAddress("ledger")
	SwapAddress      = componentAddress("swap")
	LegacyAddress    = componentAddress("legacy")
	TransfersAddress = componentAddress("transfers")
)

func componentAddress(name string) codec.Address {
	return codec.CreateAddress(ComponentTypeID, ids.ID(hashing.ComputeHash256Array([]byte(name))))
}

// ComponentName returns a readable name for a component address, or the
// empty string if [addr] is not a component.
func ComponentName(addr codec.Address) string {
	switch addr {
	case LedgerAddress:
		return "ledger"
	case SwapAddress:
		return "swap"
	case LegacyAddress:
		return "legacy"
	case TransfersAddress:
		return "transfers"
	default:
		return ""
	}
}
