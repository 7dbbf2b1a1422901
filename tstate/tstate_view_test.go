// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/stormxvm/keys"
	"github.com/ava-labs/stormxvm/state/statetest"
)

var (
	key1 = keys.EncodeChunks([]byte("key1"), 1)
	key2 = keys.EncodeChunks([]byte("key2"), 2)

	testVal = []byte("value")
)

func TestGetValueFallsThroughToBase(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	base := statetest.NewInMemoryStore()
	require.NoError(base.Insert(ctx, key1, testVal))

	ts := New(base)
	val, err := ts.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(testVal, val)

	_, err = ts.GetValue(ctx, key2)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestInsertDoesNotTouchBase(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	base := statetest.NewInMemoryStore()

	ts := New(base)
	require.NoError(ts.Insert(ctx, key1, testVal))
	val, err := ts.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(testVal, val)
	require.Empty(base.Storage)
	require.Equal(1, ts.PendingChanges())

	require.NoError(base.Apply(ctx, ts.Changes()))
	val, err = base.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(testVal, val)
}

func TestInsertInvalidValue(t *testing.T) {
	require := require.New(t)
	ts := New(statetest.NewInMemoryStore())
	require.ErrorIs(ts.Insert(context.TODO(), key1, make([]byte, 65)), ErrInvalidKeyValue)
	require.Zero(ts.OpIndex())
}

func TestRemove(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	base := statetest.NewInMemoryStore()
	require.NoError(base.Insert(ctx, key1, testVal))

	ts := New(base)
	// missing key is a no-op
	require.NoError(ts.Remove(ctx, key2))
	require.Zero(ts.OpIndex())

	require.NoError(ts.Remove(ctx, key1))
	_, err := ts.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)

	require.NoError(base.Apply(ctx, ts.Changes()))
	require.Empty(base.Storage)
}

func TestRollback(t *testing.T) {
	ctx := context.TODO()
	tests := []struct {
		name  string
		setup func(*require.Assertions, *View)
		check func(*require.Assertions, *View)
	}{
		{
			name: "insert new key",
			setup: func(require *require.Assertions, ts *View) {
				require.NoError(ts.Insert(ctx, key2, testVal))
			},
			check: func(require *require.Assertions, ts *View) {
				_, err := ts.GetValue(ctx, key2)
				require.ErrorIs(err, database.ErrNotFound)
				require.Zero(ts.PendingChanges())
			},
		},
		{
			name: "overwrite base key",
			setup: func(require *require.Assertions, ts *View) {
				require.NoError(ts.Insert(ctx, key1, []byte("other")))
			},
			check: func(require *require.Assertions, ts *View) {
				val, err := ts.GetValue(ctx, key1)
				require.NoError(err)
				require.Equal(testVal, val)
			},
		},
		{
			name: "remove base key",
			setup: func(require *require.Assertions, ts *View) {
				require.NoError(ts.Remove(ctx, key1))
			},
			check: func(require *require.Assertions, ts *View) {
				val, err := ts.GetValue(ctx, key1)
				require.NoError(err)
				require.Equal(testVal, val)
			},
		},
		{
			name: "insert then remove",
			setup: func(require *require.Assertions, ts *View) {
				require.NoError(ts.Insert(ctx, key2, testVal))
				require.NoError(ts.Remove(ctx, key2))
			},
			check: func(require *require.Assertions, ts *View) {
				_, err := ts.GetValue(ctx, key2)
				require.ErrorIs(err, database.ErrNotFound)
				require.Zero(ts.PendingChanges())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			base := statetest.NewInMemoryStore()
			require.NoError(base.Insert(ctx, key1, testVal))
			ts := New(base)

			tt.setup(require, ts)
			ts.Rollback(ctx, 0)
			require.Zero(ts.OpIndex())
			tt.check(require, ts)
		})
	}
}

func TestPartialRollback(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(statetest.NewInMemoryStore())

	require.NoError(ts.Insert(ctx, key1, testVal))
	restore := ts.OpIndex()
	require.NoError(ts.Insert(ctx, key1, []byte("v2")))
	require.NoError(ts.Insert(ctx, key2, []byte("v3")))

	ts.Rollback(ctx, restore)
	require.Equal(restore, ts.OpIndex())
	val, err := ts.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(testVal, val)
	_, err = ts.GetValue(ctx, key2)
	require.ErrorIs(err, database.ErrNotFound)
}
