// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"net/http"
	"net/http/httptest"
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
	"github.com/ava-labs/stormxvm/genesis"
	"github.com/ava-labs/stormxvm/state"
	"github.com/ava-labs/stormxvm/state/statetest"
)

var (
	owner   = codec.CreateAddress(consts.AccountTypeID, ids.GenerateTestID())
	reserve = codec.CreateAddress(consts.AccountTypeID, ids.GenerateTestID())
	user    = codec.CreateAddress(consts.AccountTypeID, ids.GenerateTestID())
	spender = codec.CreateAddress(consts.AccountTypeID, ids.GenerateTestID())
)

type testNode struct {
	processor *chain.Processor
}

func (*testNode) Logger() logging.Logger   { return logging.NoLog{} }
func (*testNode) Tracer() trace.Tracer     { return trace.Noop }
func (n *testNode) State() state.Immutable { return n.processor.State() }
func (n *testNode) Runtime() chain.Runtime { return n.processor.Runtime() }

func newTestServer(t *testing.T) (*testNode, *JSONRPCClient) {
	require := require.New(t)
	ctx := context.TODO()

	g := genesis.NewDefaultGenesis(owner, reserve)
	g.Minter = owner
	g.Allocations = []*genesis.Allocation{{Address: user, Balance: uint256.NewInt(100)}}
	g.LegacyAllocations = []*genesis.Allocation{{Address: user, Balance: uint256.NewInt(30)}}
	rt := chain.NewComponents(g.Window())
	db := statetest.NewInMemoryStore()
	require.NoError(g.InitializeState(ctx, trace.Noop, db, rt))

	clock := &mockable.Clock{}
	clock.Set(time.UnixMilli(1_700_000_000_000))
	p, err := chain.NewProcessor(db, rt, clock, trace.Noop, logging.NoLog{}, prometheus.NewRegistry())
	require.NoError(err)
	node := &testNode{processor: p}

	handler, err := NewJSONRPCHandler(node)
	require.NoError(err)
	mux := http.NewServeMux()
	mux.Handle(JSONRPCEndpoint, handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return node, NewJSONRPCClient(srv.URL)
}

func TestPingAndToken(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	_, cli := newTestServer(t)

	ok, err := cli.Ping(ctx)
	require.NoError(err)
	require.True(ok)

	token, err := cli.Token(ctx)
	require.NoError(err)
	require.Equal(consts.TokenSymbol, token.Symbol)
	require.Equal(uint8(consts.TokenDecimals), token.Decimals)
	require.Equal("100", token.TotalSupply)
	require.Equal(owner, token.Owner)
	require.Equal(owner, token.Minter)
	require.True(token.TransfersEnabled)
}

func TestBalances(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	node, cli := newTestServer(t)

	_, err := node.processor.Execute(ctx, user, &actions.Lock{Amount: uint256.NewInt(40)})
	require.NoError(err)
	_, err = node.processor.Execute(ctx, user, &actions.Approve{Spender: spender, Amount: uint256.NewInt(25)})
	require.NoError(err)

	acct, err := cli.Balance(ctx, user)
	require.NoError(err)
	require.Equal(uint256.NewInt(100), acct.Total)
	require.Equal(uint256.NewInt(40), acct.Locked)
	require.False(acct.AutoStakingDisabled)

	allowance, err := cli.Allowance(ctx, user, spender)
	require.NoError(err)
	require.Equal(uint256.NewInt(25), allowance)

	supply, err := cli.TotalSupply(ctx)
	require.NoError(err)
	require.Equal(uint256.NewInt(100), supply)

	legacyBal, err := cli.LegacyBalance(ctx, user)
	require.NoError(err)
	require.Equal(uint256.NewInt(30), legacyBal)
}

func TestMigrationAndRelay(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	_, cli := newTestServer(t)

	m, err := cli.Migration(ctx)
	require.NoError(err)
	require.False(m.Open)
	require.Equal(owner, m.Owner)

	relay, err := cli.Relay(ctx, consts.LedgerAddress)
	require.NoError(err)
	require.True(relay.Recipient)
	require.Equal("10", relay.Fee)
	require.Equal(reserve, relay.Reserve)

	relay, err = cli.Relay(ctx, consts.LegacyAddress)
	require.NoError(err)
	require.False(relay.Recipient)
}

func TestCall(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	node, cli := newTestServer(t)

	res, err := node.processor.ExecuteRelayed(ctx, user, &actions.Transfer{To: spender, Amount: uint256.NewInt(1_000)})
	require.NoError(err)

	reply, err := cli.Call(ctx, res.CallID)
	require.NoError(err)
	require.True(reply.Found)
	require.Equal("transfer", reply.Type)
	require.Equal(user, reply.Actor)
	require.True(reply.Relayed)
	require.False(reply.Success)
	require.Equal("10", reply.Fee)
	require.Equal(res.Err.Error(), reply.Error)

	reply, err = cli.Call(ctx, ids.GenerateTestID())
	require.NoError(err)
	require.False(reply.Found)
}
