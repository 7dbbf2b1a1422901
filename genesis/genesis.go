// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/holiman/uint256"

	"github.com/ava-labs/stormxvm/chain"
	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/consts"
	"github.com/ava-labs/stormxvm/state"
	"github.com/ava-labs/stormxvm/storage"
	"github.com/ava-labs/stormxvm/tstate"
)

var (
	ErrAlreadyApplied    = errors.New("genesis already applied")
	ErrMissingOwner      = errors.New("genesis owner is missing")
	ErrMissingReserve    = errors.New("genesis reserve is missing")
	ErrMissingMinter     = errors.New("ledger allocations require a minter")
	ErrInvalidAllocation = errors.New("invalid allocation")
	ErrInvalidWindow     = errors.New("migration window must be positive")
)

type Allocation struct {
	Address codec.Address `json:"address"`
	Balance *uint256.Int  `json:"balance"`
}

type Genesis struct {
	// Owner owns the ledger, the swap and the transfers contract.
	Owner codec.Address `json:"owner"`
	// LegacyOwner owns the legacy ledger. Defaults to [Owner].
	LegacyOwner codec.Address `json:"legacyOwner"`
	// Reserve collects relay fees and receives the unconverted remainder.
	Reserve codec.Address `json:"reserve"`
	// Minter is made the ledger minter when set.
	Minter codec.Address `json:"minter"`

	ChargeFee        *uint256.Int `json:"chargeFee"`
	TransfersEnabled bool         `json:"transfersEnabled"`
	// MigrationWindow is the minimum time, in milliseconds, the swap stays
	// open.
	MigrationWindow int64 `json:"migrationWindow"`

	// RelayRecipients are the components accepting relayed calls besides
	// the ledger.
	RelayRecipients []codec.Address `json:"relayRecipients"`

	LegacyAllocations []*Allocation `json:"legacyAllocations"`
	Allocations       []*Allocation `json:"allocations"`
}

func NewDefaultGenesis(owner codec.Address, reserve codec.Address) *Genesis {
	return &Genesis{
		Owner:            owner,
		Reserve:          reserve,
		ChargeFee:        uint256.NewInt(consts.DefaultChargeFee),
		TransfersEnabled: true,
		MigrationWindow:  consts.DefaultMigrationWindow.Milliseconds(),
		RelayRecipients:  []codec.Address{consts.SwapAddress},
	}
}

func Load(b []byte) (*Genesis, error) {
	g := &Genesis{
		TransfersEnabled: true,
		MigrationWindow:  consts.DefaultMigrationWindow.Milliseconds(),
	}
	if err := json.Unmarshal(b, g); err != nil {
		return nil, err
	}
	if err := g.Verify(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Genesis) Verify() error {
	if g.Owner.IsZero() {
		return ErrMissingOwner
	}
	if g.Reserve.IsZero() {
		return ErrMissingReserve
	}
	if len(g.Allocations) > 0 && g.Minter.IsZero() {
		return ErrMissingMinter
	}
	if g.MigrationWindow <= 0 {
		return fmt.Errorf("%w: %dms", ErrInvalidWindow, g.MigrationWindow)
	}
	for _, alloc := range append(append([]*Allocation{}, g.LegacyAllocations...), g.Allocations...) {
		if alloc == nil || alloc.Address.IsZero() || alloc.Balance == nil {
			return ErrInvalidAllocation
		}
	}
	return nil
}

// Window is the migration window as a duration.
func (g *Genesis) Window() time.Duration {
	return time.Duration(g.MigrationWindow) * time.Millisecond
}

func (g *Genesis) legacyOwner() codec.Address {
	if g.LegacyOwner.IsZero() {
		return g.Owner
	}
	return g.LegacyOwner
}

// InitializeState writes the genesis into [db]. It fails if [db] already
// holds a genesis.
func (g *Genesis) InitializeState(ctx context.Context, tracer trace.Tracer, db state.Database, rt chain.Runtime) error {
	ctx, span := tracer.Start(ctx, "Genesis.InitializeState")
	defer span.End()

	if err := g.Verify(); err != nil {
		return err
	}
	current, err := storage.GetOwner(ctx, db, rt.Ledger().Address())
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return ErrAlreadyApplied
	}

	view := tstate.New(db)
	if err := g.apply(ctx, view, rt); err != nil {
		return err
	}
	return db.Apply(ctx, view.Changes())
}

func (g *Genesis) apply(ctx context.Context, mu state.Mutable, rt chain.Runtime) error {
	l := rt.Ledger()
	for _, component := range []codec.Address{l.Address(), rt.Transfers().Address()} {
		if err := storage.SetOwner(ctx, mu, component, g.Owner); err != nil {
			return err
		}
	}
	if err := storage.SetOwner(ctx, mu, rt.Legacy().Address(), g.legacyOwner()); err != nil {
		return err
	}
	if err := rt.Swap().Setup(ctx, mu, g.Owner, g.Reserve); err != nil {
		return err
	}

	fee := g.ChargeFee
	if fee == nil {
		fee = new(uint256.Int)
	}
	recipients := append([]codec.Address{l.Address()}, g.RelayRecipients...)
	for _, component := range recipients {
		if err := storage.SetReserve(ctx, mu, component, g.Reserve); err != nil {
			return err
		}
		if err := storage.SetChargeFee(ctx, mu, component, fee); err != nil {
			return err
		}
	}
	for _, component := range g.RelayRecipients {
		if err := l.AddRelayRecipient(ctx, mu, g.Owner, component); err != nil {
			return err
		}
	}
	if err := storage.SetTransfersEnabled(ctx, mu, g.TransfersEnabled); err != nil {
		return err
	}

	for _, alloc := range g.LegacyAllocations {
		if err := rt.Legacy().MintTokens(ctx, mu, g.legacyOwner(), alloc.Address, alloc.Balance); err != nil {
			return fmt.Errorf("%w: legacy addr=%s, bal=%s", err, alloc.Address, alloc.Balance.Dec())
		}
	}
	if g.Minter.IsZero() {
		return nil
	}
	if err := l.Initialize(ctx, mu, g.Owner, g.Minter); err != nil {
		return err
	}
	for _, alloc := range g.Allocations {
		if err := l.Mint(ctx, mu, g.Minter, alloc.Address, alloc.Balance); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%s", err, alloc.Address, alloc.Balance.Dec())
		}
	}
	return nil
}
