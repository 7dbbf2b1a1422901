// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/stormxvm/chain"
	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/state"
	"github.com/ava-labs/stormxvm/tstate"
)

// ActionTest is a single parameterized test. It calls Execute on the action with the passed parameters
// and checks that all assertions pass.
type ActionTest struct {
	Name string

	Action chain.Action

	Runtime   chain.Runtime
	State     state.Mutable
	Timestamp int64
	Actor     codec.Address

	ExpectedErr error

	Assertion func(context.Context, *testing.T, state.Mutable)
}

// Run executes the [ActionTest] and make sure all assertions pass. A failing
// action must not leave any pending write behind.
func (test *ActionTest) Run(ctx context.Context, t *testing.T) {
	t.Run(test.Name, func(t *testing.T) {
		require := require.New(t)

		view := tstate.New(test.State)
		err := test.Action.Execute(ctx, test.Runtime, view, test.Timestamp, test.Actor)
		require.ErrorIs(err, test.ExpectedErr)
		if err != nil {
			require.Zero(view.PendingChanges())
		} else {
			for k, v := range view.Changes() {
				if v.HasValue() {
					require.NoError(test.State.Insert(ctx, []byte(k), v.Value()))
				} else {
					require.NoError(test.State.Remove(ctx, []byte(k)))
				}
			}
		}

		if test.Assertion != nil {
			test.Assertion(ctx, t, test.State)
		}
	})
}

// ActionBenchmark is a parameterized benchmark. To avoid using shared state
// between runs, a new state is created for each iteration using [CreateState].
type ActionBenchmark struct {
	Name   string
	Action chain.Action

	Runtime     chain.Runtime
	CreateState func() state.Mutable
	Timestamp   int64
	Actor       codec.Address

	ExpectedErr error
}

func (test *ActionBenchmark) Run(ctx context.Context, b *testing.B) {
	require := require.New(b)

	states := make([]state.Mutable, b.N)
	for i := 0; i < b.N; i++ {
		states[i] = test.CreateState()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		err := test.Action.Execute(ctx, test.Runtime, states[i], test.Timestamp, test.Actor)
		require.ErrorIs(err, test.ExpectedErr)
	}
}
