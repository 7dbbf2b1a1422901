// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"time"

	"github.com/ava-labs/stormxvm/consts"
	"github.com/ava-labs/stormxvm/ledger"
	"github.com/ava-labs/stormxvm/legacy"
	"github.com/ava-labs/stormxvm/migration"
	"github.com/ava-labs/stormxvm/relay"
)

var _ Runtime = (*Components)(nil)

type Components struct {
	ledger    *ledger.Ledger
	transfers *ledger.TransfersContract
	swap      *migration.Swap
	legacy    *legacy.Ledger
	relay     *relay.FeeRelay
}

// NewComponents wires every component at its well-known address.
// [migrationWindow] is the minimum time the swap stays open.
func NewComponents(migrationWindow time.Duration) *Components {
	l := ledger.New(consts.LedgerAddress)
	old := legacy.New(consts.LegacyAddress)
	return &Components{
		ledger:    l,
		transfers: ledger.NewTransfersContract(consts.TransfersAddress, l),
		swap:      migration.New(consts.SwapAddress, old, l, migrationWindow),
		legacy:    old,
		relay:     relay.New(l),
	}
}

func (c *Components) Ledger() *ledger.Ledger               { return c.ledger }
func (c *Components) Transfers() *ledger.TransfersContract { return c.transfers }
func (c *Components) Swap() *migration.Swap                { return c.swap }
func (c *Components) Legacy() *legacy.Ledger               { return c.legacy }
func (c *Components) Relay() *relay.FeeRelay               { return c.relay }
