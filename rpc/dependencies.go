// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/stormxvm/chain"
	"github.com/ava-labs/stormxvm/state"
)

// Node is the read side of a running ledger.
type Node interface {
	Logger() logging.Logger
	Tracer() trace.Tracer
	// State returns committed state only.
	State() state.Immutable
	Runtime() chain.Runtime
}
