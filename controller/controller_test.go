// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"context"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/stormxvm/actions"
	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/config"
	"github.com/ava-labs/stormxvm/consts"
	"github.com/ava-labs/stormxvm/genesis"
	"github.com/ava-labs/stormxvm/storage"
)

var (
	owner   = codec.CreateAddress(consts.AccountTypeID, ids.GenerateTestID())
	reserve = codec.CreateAddress(consts.AccountTypeID, ids.GenerateTestID())
	user    = codec.CreateAddress(consts.AccountTypeID, ids.GenerateTestID())
)

func newTestConfig(t *testing.T) *config.Config {
	cfg, err := config.New(nil)
	require.NoError(t, err)
	cfg.DataDir = t.TempDir()
	cfg.LogDisplayLevel = logging.Off
	cfg.RPCAddress = "127.0.0.1:0"
	cfg.ShutdownTimeout = time.Second
	return cfg
}

func newTestGenesis() *genesis.Genesis {
	g := genesis.NewDefaultGenesis(owner, reserve)
	g.Minter = owner
	g.Allocations = []*genesis.Allocation{
		{Address: owner, Balance: uint256.NewInt(1_000)},
	}
	return g
}

func TestControllerPersists(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	cfg := newTestConfig(t)

	c, err := New(ctx, cfg, newTestGenesis())
	require.NoError(err)
	res, err := c.Processor().Execute(ctx, owner, &actions.Transfer{
		To:     user,
		Amount: uint256.NewInt(250),
	})
	require.NoError(err)
	require.True(res.Success)
	require.NoError(c.Close())

	// Reopening skips the genesis and keeps the committed transfer.
	c, err = New(ctx, cfg, newTestGenesis())
	require.NoError(err)
	defer func() {
		require.NoError(c.Close())
	}()
	acct, err := storage.GetAccount(ctx, c.State(), user)
	require.NoError(err)
	require.Equal(uint256.NewInt(250), acct.Total)
	supply, err := storage.GetTotalSupply(ctx, c.State())
	require.NoError(err)
	require.Equal(uint256.NewInt(1_000), supply)

	_, ok, err := c.Processor().Call(ctx, res.CallID)
	require.NoError(err)
	require.True(ok)
}

func TestControllerInvalidGenesis(t *testing.T) {
	require := require.New(t)

	g := newTestGenesis()
	g.Owner = codec.EmptyAddress
	_, err := New(context.TODO(), newTestConfig(t), g)
	require.ErrorIs(err, genesis.ErrMissingOwner)
}

func TestControllerRunStops(t *testing.T) {
	require := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())

	c, err := New(ctx, newTestConfig(t), newTestGenesis())
	require.NoError(err)
	defer func() {
		require.NoError(c.Close())
	}()

	done := make(chan error, 1)
	go func() {
		done <- c.Run(ctx)
	}()
	cancel()
	select {
	case err := <-done:
		require.NoError(err)
	case <-time.After(5 * time.Second):
		require.FailNow("controller did not stop")
	}
}
