// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain_test

import (
	"context"
	"maps"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/stormxvm/actions"
	"github.com/ava-labs/stormxvm/chain"
	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/consts"
	"github.com/ava-labs/stormxvm/event"
	"github.com/ava-labs/stormxvm/genesis"
	"github.com/ava-labs/stormxvm/relay"
	"github.com/ava-labs/stormxvm/state/statetest"
	"github.com/ava-labs/stormxvm/storage"
)

var (
	owner    = codec.CreateAddress(consts.AccountTypeID, ids.GenerateTestID())
	reserve  = codec.CreateAddress(consts.AccountTypeID, ids.GenerateTestID())
	reserve2 = codec.CreateAddress(consts.AccountTypeID, ids.GenerateTestID())
	user     = codec.CreateAddress(consts.AccountTypeID, ids.GenerateTestID())
	poor     = codec.CreateAddress(consts.AccountTypeID, ids.GenerateTestID())
	bob      = codec.CreateAddress(consts.AccountTypeID, ids.GenerateTestID())

	now = time.UnixMilli(1_700_000_000_000)
)

type testEnv struct {
	processor *chain.Processor
	db        *statetest.InMemoryStore
	clock     *mockable.Clock
}

// newTestEnv funds [owner] and [user] with 100 and [poor] with 5. The relay
// fee is 10 for the ledger.
func newTestEnv(t *testing.T, subs ...event.Subscription[*chain.Result]) *testEnv {
	require := require.New(t)
	ctx := context.TODO()

	g := genesis.NewDefaultGenesis(owner, reserve)
	g.Minter = owner
	g.Allocations = []*genesis.Allocation{
		{Address: owner, Balance: uint256.NewInt(100)},
		{Address: user, Balance: uint256.NewInt(100)},
		{Address: poor, Balance: uint256.NewInt(5)},
	}
	rt := chain.NewComponents(g.Window())
	db := statetest.NewInMemoryStore()
	require.NoError(g.InitializeState(ctx, trace.Noop, db, rt))

	clock := &mockable.Clock{}
	clock.Set(now)
	p, err := chain.NewProcessor(db, rt, clock, trace.Noop, logging.NoLog{}, prometheus.NewRegistry(), subs...)
	require.NoError(err)
	return &testEnv{processor: p, db: db, clock: clock}
}

func (e *testEnv) requireAccount(t *testing.T, addr codec.Address, total uint64, locked uint64) {
	require := require.New(t)
	acct, err := storage.GetAccount(context.TODO(), e.db, addr)
	require.NoError(err)
	require.Equal(uint256.NewInt(total), acct.Total, "total of %s", addr)
	require.Equal(uint256.NewInt(locked), acct.Locked, "locked of %s", addr)
}

func TestExecuteDirect(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	env := newTestEnv(t)

	res, err := env.processor.Execute(ctx, user, &actions.Transfer{To: bob, Amount: uint256.NewInt(40)})
	require.NoError(err)
	require.True(res.Success)
	require.NoError(res.Err)
	require.False(res.Relayed)
	require.True(res.Fee.IsZero())
	require.Equal(now.UnixMilli(), res.Timestamp)
	require.Equal(consts.TransferID, res.TypeID)
	require.Equal(consts.LedgerAddress, res.Target)

	env.requireAccount(t, user, 60, 0)
	env.requireAccount(t, bob, 40, 0)

	rec, ok, err := env.processor.Call(ctx, res.CallID)
	require.NoError(err)
	require.True(ok)
	require.True(rec.Success)
	require.Equal(user, rec.Actor)
	require.Empty(rec.Error)

	next, err := env.processor.Execute(ctx, user, &actions.Lock{Amount: uint256.NewInt(1)})
	require.NoError(err)
	require.NotEqual(res.CallID, next.CallID)
}

func TestExecuteFailureIsRecorded(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	env := newTestEnv(t)

	res, err := env.processor.Execute(ctx, user, &actions.Transfer{To: bob, Amount: uint256.NewInt(101)})
	require.NoError(err)
	require.False(res.Success)
	require.ErrorIs(res.Err, storage.ErrInsufficientUnlocked)

	env.requireAccount(t, user, 100, 0)
	env.requireAccount(t, bob, 0, 0)

	rec, ok, err := env.processor.Call(ctx, res.CallID)
	require.NoError(err)
	require.True(ok)
	require.False(rec.Success)
	require.Equal(res.Err.Error(), rec.Error)
}

func TestExecuteNilAction(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.processor.Execute(context.TODO(), user, nil)
	require.ErrorIs(t, err, chain.ErrNilAction)
}

func TestRelayedLock(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	res, err := env.processor.ExecuteRelayed(context.TODO(), user, &actions.Lock{Amount: uint256.NewInt(50)})
	require.NoError(err)
	require.True(res.Success)
	require.True(res.Relayed)
	require.Equal(uint256.NewInt(10), res.Fee)

	env.requireAccount(t, user, 90, 50)
	env.requireAccount(t, reserve, 10, 0)
}

func TestRelayedFailureStillCharged(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	res, err := env.processor.ExecuteRelayed(context.TODO(), user, &actions.Transfer{To: bob, Amount: uint256.NewInt(1000)})
	require.NoError(err)
	require.False(res.Success)
	require.ErrorIs(res.Err, storage.ErrInsufficientUnlocked)
	require.Equal(uint256.NewInt(10), res.Fee)

	env.requireAccount(t, user, 90, 0)
	env.requireAccount(t, bob, 0, 0)
	env.requireAccount(t, reserve, 10, 0)
}

func TestRelayedRejected(t *testing.T) {
	tests := []struct {
		name   string
		caller codec.Address
		action chain.Action
		err    error
	}{
		{
			name:   "fee above unlocked balance",
			caller: poor,
			action: &actions.Lock{Amount: uint256.NewInt(1)},
			err:    storage.ErrInsufficientUnlocked,
		},
		{
			name:   "target not a recipient",
			caller: user,
			action: &actions.LegacyTransfer{To: bob, Amount: uint256.NewInt(1)},
			err:    relay.ErrUnknownRecipient,
		},
		{
			name:   "empty caller",
			caller: codec.EmptyAddress,
			action: &actions.Lock{Amount: uint256.NewInt(1)},
			err:    storage.ErrInvalidAddress,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			var notified int
			env := newTestEnv(t, event.SubscriptionFunc[*chain.Result]{
				AcceptF: func(context.Context, *chain.Result) error {
					notified++
					return nil
				},
			})
			before := maps.Clone(env.db.Storage)

			res, err := env.processor.ExecuteRelayed(context.TODO(), tt.caller, tt.action)
			require.ErrorIs(err, relay.ErrRelayRejected)
			require.ErrorIs(err, tt.err)
			require.Nil(res)
			require.Equal(before, env.db.Storage)
			require.Zero(notified)
		})
	}
}

func TestRelayedFeeUnpayable(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	// the transfer itself succeeds but leaves 5, below the fee
	res, err := env.processor.ExecuteRelayed(context.TODO(), user, &actions.Transfer{To: bob, Amount: uint256.NewInt(95)})
	require.NoError(err)
	require.False(res.Success)
	require.ErrorIs(res.Err, relay.ErrFeeUnpayable)
	require.ErrorIs(res.Err, storage.ErrInsufficientUnlocked)

	env.requireAccount(t, user, 90, 0)
	env.requireAccount(t, bob, 0, 0)
	env.requireAccount(t, reserve, 10, 0)
}

func TestRelayedConfigPaysPreviousFee(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	env := newTestEnv(t)

	res, err := env.processor.ExecuteRelayed(ctx, owner, &actions.SetChargeFee{
		Component: consts.LedgerAddress,
		Fee:       uint256.NewInt(20),
	})
	require.NoError(err)
	require.True(res.Success)
	require.Equal(uint256.NewInt(10), res.Fee)
	env.requireAccount(t, owner, 90, 0)
	env.requireAccount(t, reserve, 10, 0)

	res, err = env.processor.ExecuteRelayed(ctx, owner, &actions.SetReserve{
		Component: consts.LedgerAddress,
		Reserve:   reserve2,
	})
	require.NoError(err)
	require.True(res.Success)
	env.requireAccount(t, owner, 70, 0)
	env.requireAccount(t, reserve, 30, 0)
	env.requireAccount(t, reserve2, 0, 0)

	res, err = env.processor.ExecuteRelayed(ctx, user, &actions.Lock{Amount: uint256.NewInt(1)})
	require.NoError(err)
	require.True(res.Success)
	env.requireAccount(t, user, 80, 1)
	env.requireAccount(t, reserve2, 20, 0)

	// only the owner may configure the relay, but the caller still pays
	res, err = env.processor.ExecuteRelayed(ctx, user, &actions.SetChargeFee{
		Component: consts.LedgerAddress,
		Fee:       new(uint256.Int),
	})
	require.NoError(err)
	require.False(res.Success)
	env.requireAccount(t, user, 60, 1)
	env.requireAccount(t, reserve2, 40, 0)
}

func TestZeroFeeRelay(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	env := newTestEnv(t)

	_, err := env.processor.Execute(ctx, owner, &actions.SetChargeFee{
		Component: consts.LedgerAddress,
		Fee:       new(uint256.Int),
	})
	require.NoError(err)

	res, err := env.processor.ExecuteRelayed(ctx, poor, &actions.Transfer{To: bob, Amount: uint256.NewInt(5)})
	require.NoError(err)
	require.True(res.Success)
	require.True(res.Fee.IsZero())
	env.requireAccount(t, poor, 0, 0)
	env.requireAccount(t, bob, 5, 0)
	env.requireAccount(t, reserve, 0, 0)
}

func TestSubscribersNotified(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()

	var results []*chain.Result
	env := newTestEnv(t, event.SubscriptionFunc[*chain.Result]{
		AcceptF: func(_ context.Context, r *chain.Result) error {
			results = append(results, r)
			return nil
		},
	})

	_, err := env.processor.Execute(ctx, user, &actions.Transfer{To: bob, Amount: uint256.NewInt(1)})
	require.NoError(err)
	_, err = env.processor.Execute(ctx, user, &actions.Transfer{To: bob, Amount: uint256.NewInt(1000)})
	require.NoError(err)

	require.Len(results, 2)
	require.True(results[0].Success)
	require.False(results[1].Success)
}

func TestSlowSubscriberDoesNotBlockCommits(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()

	var (
		release = make(chan struct{})
		entered = make(chan uint64, 2)
		order   []uint64
		env     *testEnv
	)
	env = newTestEnv(t, event.SubscriptionFunc[*chain.Result]{
		AcceptF: func(context.Context, *chain.Result) error {
			acct, err := storage.GetAccount(ctx, env.db, bob)
			if err != nil {
				return err
			}
			entered <- acct.Total.Uint64()
			<-release
			order = append(order, acct.Total.Uint64())
			return nil
		},
	})

	transfer := func(amount uint64) <-chan error {
		done := make(chan error, 1)
		go func() {
			_, err := env.processor.Execute(ctx, user, &actions.Transfer{To: bob, Amount: uint256.NewInt(amount)})
			done <- err
		}()
		return done
	}

	first := transfer(1)
	require.Equal(uint64(1), <-entered)

	// The first subscriber is still blocked but the next call commits.
	second := transfer(2)
	require.Eventually(func() bool {
		acct, err := storage.GetAccount(ctx, env.db, bob)
		return err == nil && acct.Total.Uint64() == 3
	}, 5*time.Second, 10*time.Millisecond)

	close(release)
	require.NoError(<-first)
	require.NoError(<-second)
	require.Equal(uint64(3), <-entered)
	require.Equal([]uint64{1, 3}, order)
	env.requireAccount(t, user, 97, 0)
}

func TestMigrationThroughProcessor(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()

	g := genesis.NewDefaultGenesis(owner, reserve)
	g.Minter = consts.SwapAddress
	g.LegacyAllocations = []*genesis.Allocation{
		{Address: user, Balance: uint256.NewInt(50)},
		{Address: owner, Balance: uint256.NewInt(50)},
	}
	rt := chain.NewComponents(g.Window())
	db := statetest.NewInMemoryStore()
	require.NoError(g.InitializeState(ctx, trace.Noop, db, rt))
	clock := &mockable.Clock{}
	clock.Set(now)
	p, err := chain.NewProcessor(db, rt, clock, trace.Noop, logging.NoLog{}, prometheus.NewRegistry())
	require.NoError(err)

	steps := []struct {
		actor  codec.Address
		action chain.Action
	}{
		{owner, &actions.LegacyTransferOwnership{NewOwner: consts.SwapAddress}},
		{owner, &actions.InitializeMigration{}},
		{user, &actions.Convert{Amount: uint256.NewInt(50)}},
	}
	for _, step := range steps {
		res, err := p.Execute(ctx, step.actor, step.action)
		require.NoError(err)
		require.NoError(res.Err)
	}

	res, err := p.Execute(ctx, owner, &actions.DisableMigration{Reserve: reserve})
	require.NoError(err)
	require.False(res.Success)

	clock.Set(now.Add(g.Window()))
	res, err = p.Execute(ctx, owner, &actions.DisableMigration{Reserve: reserve})
	require.NoError(err)
	require.NoError(res.Err)

	bal, err := rt.Ledger().BalanceOf(ctx, db, user)
	require.NoError(err)
	require.Equal(uint256.NewInt(50), bal)
	bal, err = rt.Ledger().BalanceOf(ctx, db, reserve)
	require.NoError(err)
	require.Equal(uint256.NewInt(50), bal)
	supply, err := rt.Ledger().TotalSupply(ctx, db)
	require.NoError(err)
	require.Equal(uint256.NewInt(100), supply)
}
