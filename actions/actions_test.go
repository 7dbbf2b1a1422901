// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions_test

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/stormxvm/access"
	"github.com/ava-labs/stormxvm/actions"
	"github.com/ava-labs/stormxvm/chain"
	"github.com/ava-labs/stormxvm/chain/chaintest"
	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/consts"
	"github.com/ava-labs/stormxvm/genesis"
	"github.com/ava-labs/stormxvm/state"
	"github.com/ava-labs/stormxvm/state/statetest"
	"github.com/ava-labs/stormxvm/storage"
)

var (
	owner   = codec.CreateAddress(consts.AccountTypeID, ids.GenerateTestID())
	reserve = codec.CreateAddress(consts.AccountTypeID, ids.GenerateTestID())
	alice   = codec.CreateAddress(consts.AccountTypeID, ids.GenerateTestID())
	bob     = codec.CreateAddress(consts.AccountTypeID, ids.GenerateTestID())
)

func newState(t *testing.T) (chain.Runtime, state.Mutable) {
	g := genesis.NewDefaultGenesis(owner, reserve)
	g.Minter = owner
	g.Allocations = []*genesis.Allocation{
		{Address: alice, Balance: uint256.NewInt(100)},
	}
	rt := chain.NewComponents(g.Window())
	db := statetest.NewInMemoryStore()
	require.NoError(t, g.InitializeState(context.TODO(), trace.Noop, db, rt))
	return rt, db
}

func requireBalance(ctx context.Context, t *testing.T, im state.Immutable, addr codec.Address, total uint64, locked uint64) {
	acct, err := storage.GetAccount(ctx, im, addr)
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(total), acct.Total)
	require.Equal(t, uint256.NewInt(locked), acct.Locked)
}

func TestRegistryRoundTrip(t *testing.T) {
	for _, name := range actions.Names() {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			a, err := actions.New(name)
			require.NoError(err)
			got, ok := actions.Name(a.GetTypeID())
			require.True(ok)
			require.Equal(name, got)

			b, err := actions.Marshal(a)
			require.NoError(err)
			parsed, err := actions.Unmarshal(b)
			require.NoError(err)
			require.IsType(a, parsed)
		})
	}
}

func TestUnmarshal(t *testing.T) {
	require := require.New(t)

	a, err := actions.Unmarshal([]byte(`{"type":"transfer","args":{"to":"` + bob.String() + `","amount":"42"}}`))
	require.NoError(err)
	require.Equal(&actions.Transfer{To: bob, Amount: uint256.NewInt(42)}, a)

	a, err = actions.Unmarshal([]byte(`{"type":"enableTransfers"}`))
	require.NoError(err)
	require.Equal(&actions.EnableTransfers{}, a)

	_, err = actions.Unmarshal([]byte(`{"type":"selfdestruct"}`))
	require.ErrorIs(err, actions.ErrUnknownAction)

	_, err = actions.Unmarshal([]byte(`{"type":"transfer","args":{"amount":true}}`))
	require.Error(err)
}

func TestMarshalUnknownType(t *testing.T) {
	_, err := actions.Marshal(unknownAction{})
	require.ErrorIs(t, err, actions.ErrUnknownTypeID)
}

type unknownAction struct {
	*actions.Transfer
}

func (unknownAction) GetTypeID() uint8 { return 0xff }

func TestLedgerActions(t *testing.T) {
	rt, mu := newState(t)

	tests := []chaintest.ActionTest{
		{
			Name:    "transfer",
			Action:  &actions.Transfer{To: bob, Amount: uint256.NewInt(30)},
			Runtime: rt,
			State:   mu,
			Actor:   alice,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				requireBalance(ctx, t, mu, alice, 70, 0)
				requireBalance(ctx, t, mu, bob, 30, 0)
			},
		},
		{
			Name:        "transfer more than unlocked",
			Action:      &actions.Transfer{To: bob, Amount: uint256.NewInt(71)},
			Runtime:     rt,
			State:       mu,
			Actor:       alice,
			ExpectedErr: storage.ErrInsufficientUnlocked,
		},
		{
			Name:        "transfer to empty address",
			Action:      &actions.Transfer{Amount: uint256.NewInt(1)},
			Runtime:     rt,
			State:       mu,
			Actor:       alice,
			ExpectedErr: storage.ErrInvalidAddress,
		},
		{
			Name:    "lock",
			Action:  &actions.Lock{Amount: uint256.NewInt(50)},
			Runtime: rt,
			State:   mu,
			Actor:   alice,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				requireBalance(ctx, t, mu, alice, 70, 50)
			},
		},
		{
			Name:        "transfer locked tokens",
			Action:      &actions.Transfer{To: bob, Amount: uint256.NewInt(21)},
			Runtime:     rt,
			State:       mu,
			Actor:       alice,
			ExpectedErr: storage.ErrInsufficientUnlocked,
		},
		{
			Name:    "unlock",
			Action:  &actions.Unlock{Amount: uint256.NewInt(20)},
			Runtime: rt,
			State:   mu,
			Actor:   alice,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				requireBalance(ctx, t, mu, alice, 70, 30)
			},
		},
		{
			Name:        "unlock more than locked",
			Action:      &actions.Unlock{Amount: uint256.NewInt(31)},
			Runtime:     rt,
			State:       mu,
			Actor:       alice,
			ExpectedErr: storage.ErrInsufficientLocked,
		},
		{
			Name:        "mint without the minter role",
			Action:      &actions.Mint{To: bob, Amount: uint256.NewInt(1)},
			Runtime:     rt,
			State:       mu,
			Actor:       alice,
			ExpectedErr: access.ErrUnauthorized,
		},
		{
			Name:    "mint",
			Action:  &actions.Mint{To: bob, Amount: uint256.NewInt(5)},
			Runtime: rt,
			State:   mu,
			Actor:   owner,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				requireBalance(ctx, t, mu, bob, 35, 0)
				supply, err := storage.GetTotalSupply(ctx, mu)
				require.NoError(t, err)
				require.Equal(t, uint256.NewInt(105), supply)
			},
		},
		{
			Name:    "approve",
			Action:  &actions.Approve{Spender: bob, Amount: uint256.NewInt(10)},
			Runtime: rt,
			State:   mu,
			Actor:   alice,
		},
		{
			Name:        "transfer from above allowance",
			Action:      &actions.TransferFrom{From: alice, To: owner, Amount: uint256.NewInt(11)},
			Runtime:     rt,
			State:       mu,
			Actor:       bob,
			ExpectedErr: storage.ErrInsufficientAllowance,
		},
		{
			Name:    "transfer from",
			Action:  &actions.TransferFrom{From: alice, To: owner, Amount: uint256.NewInt(10)},
			Runtime: rt,
			State:   mu,
			Actor:   bob,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				requireBalance(ctx, t, mu, alice, 60, 30)
				requireBalance(ctx, t, mu, owner, 10, 0)
				allowance, err := storage.GetAllowance(ctx, mu, alice, bob)
				require.NoError(t, err)
				require.True(t, allowance.IsZero())
			},
		},
	}

	ctx := context.Background()
	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestEnableTransfersAction(t *testing.T) {
	rt, mu := newState(t)

	tests := []chaintest.ActionTest{
		{
			Name:        "not the owner",
			Action:      &actions.EnableTransfers{Enabled: false},
			Runtime:     rt,
			State:       mu,
			Actor:       alice,
			ExpectedErr: access.ErrUnauthorized,
		},
		{
			Name:    "disable",
			Action:  &actions.EnableTransfers{Enabled: false},
			Runtime: rt,
			State:   mu,
			Actor:   owner,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				enabled, err := storage.GetTransfersEnabled(ctx, mu)
				require.NoError(t, err)
				require.False(t, enabled)
			},
		},
	}

	ctx := context.Background()
	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func BenchmarkTransfer(b *testing.B) {
	rt := chain.NewComponents(consts.DefaultMigrationWindow)
	bench := &chaintest.ActionBenchmark{
		Name:    "transfer",
		Action:  &actions.Transfer{To: bob, Amount: uint256.NewInt(1)},
		Runtime: rt,
		CreateState: func() state.Mutable {
			mu := statetest.NewInMemoryStore()
			require.NoError(b, storage.SetTransfersEnabled(context.Background(), mu, true))
			require.NoError(b, storage.AddBalance(context.Background(), mu, alice, uint256.NewInt(10), false))
			return mu
		},
		Actor: alice,
	}
	bench.Run(context.Background(), b)
}
