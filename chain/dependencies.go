// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/ledger"
	"github.com/ava-labs/stormxvm/legacy"
	"github.com/ava-labs/stormxvm/migration"
	"github.com/ava-labs/stormxvm/relay"
	"github.com/ava-labs/stormxvm/state"
)

// Action is a single external operation.
type Action interface {
	// GetTypeID uniquely identifies the action type.
	GetTypeID() uint8

	// Target is the component the action is addressed to. Relayed calls are
	// charged the fee configured for it.
	Target() codec.Address

	// Execute applies the action as [actor] at [timestamp] (unix ms). On
	// error the caller discards every write made to [mu].
	Execute(
		ctx context.Context,
		rt Runtime,
		mu state.Mutable,
		timestamp int64,
		actor codec.Address,
	) error
}

// Runtime exposes the components actions operate on.
type Runtime interface {
	Ledger() *ledger.Ledger
	Transfers() *ledger.TransfersContract
	Swap() *migration.Swap
	Legacy() *legacy.Ledger
	Relay() *relay.FeeRelay
}
