// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/ava-labs/stormxvm/keys"
	"github.com/ava-labs/stormxvm/state"
)

const defaultOps = 8

var _ state.Mutable = (*View)(nil)

type op struct {
	k string

	pastExists  bool
	pastV       []byte
	pastChanged bool
}

// View buffers writes on top of a read-only base. Nothing reaches the base
// until the caller applies [Changes] to it.
type View struct {
	base               state.Immutable
	pendingChangedKeys map[string]maybe.Maybe[[]byte]

	// Ops is a record of all operations performed on [View]. Tracking
	// operations allows for reverting state to a certain point-in-time.
	ops []*op
}

func New(base state.Immutable) *View {
	return &View{
		base:               base,
		pendingChangedKeys: make(map[string]maybe.Maybe[[]byte]),
		ops:                make([]*op, 0, defaultOps),
	}
}

// Rollback restores the View to the ts.ops[restorePoint] operation.
func (ts *View) Rollback(_ context.Context, restorePoint int) {
	for i := len(ts.ops) - 1; i >= restorePoint; i-- {
		op := ts.ops[i]

		// Key was untouched before this op.
		if !op.pastChanged {
			delete(ts.pendingChangedKeys, op.k)
			continue
		}

		// Key was deleted earlier in this view.
		if !op.pastExists {
			ts.pendingChangedKeys[op.k] = maybe.Nothing[[]byte]()
			continue
		}

		ts.pendingChangedKeys[op.k] = maybe.Some(op.pastV)
	}
	ts.ops = ts.ops[:restorePoint]
}

// OpIndex returns the number of operations done on ts.
func (ts *View) OpIndex() int {
	return len(ts.ops)
}

// GetValue returns the pending value for [key] if it was modified in this
// view, otherwise the value in the base.
func (ts *View) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	v, _, exists, err := ts.getValue(ctx, string(key))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, database.ErrNotFound
	}
	return v, nil
}

func (ts *View) getValue(ctx context.Context, key string) ([]byte, bool, bool, error) {
	if v, ok := ts.pendingChangedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false, nil
		}
		return v.Value(), true, true, nil
	}
	v, err := ts.base.GetValue(ctx, []byte(key))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, false, nil
	}
	if err != nil {
		return nil, false, false, err
	}
	return v, false, true, nil
}

// Insert sets or updates [key] to [value].
//
// Any bytes passed into [Insert] will be consumed by [View] and should
// not be modified/referenced after this call.
func (ts *View) Insert(ctx context.Context, key []byte, value []byte) error {
	if !keys.VerifyValue(key, value) {
		return ErrInvalidKeyValue
	}
	k := string(key)
	past, changed, exists, err := ts.getValue(ctx, k)
	if err != nil {
		return err
	}
	ts.pendingChangedKeys[k] = maybe.Some(value)
	ts.ops = append(ts.ops, &op{
		k: k,

		pastExists:  exists,
		pastV:       past,
		pastChanged: changed,
	})
	return nil
}

// Remove deletes [key]. Removing a missing key is a no-op.
func (ts *View) Remove(ctx context.Context, key []byte) error {
	k := string(key)
	past, changed, exists, err := ts.getValue(ctx, k)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	ts.pendingChangedKeys[k] = maybe.Nothing[[]byte]()
	ts.ops = append(ts.ops, &op{
		k: k,

		pastExists:  true,
		pastV:       past,
		pastChanged: changed,
	})
	return nil
}

func (ts *View) PendingChanges() int {
	return len(ts.pendingChangedKeys)
}

// Changes returns the pending changes of the view. The returned map must not
// be modified while the view is still in use.
func (ts *View) Changes() map[string]maybe.Maybe[[]byte] {
	return ts.pendingChangedKeys
}
