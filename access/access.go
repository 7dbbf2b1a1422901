// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package access answers authorization questions for privileged operations.
// Every component has a single owner; the ledger additionally has a minter,
// a reward issuer and a set of relay recipients.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/state"
	"github.com/ava-labs/stormxvm/storage"
)

var ErrUnauthorized = errors.New("unauthorized")

// Control evaluates roles against a state snapshot.
type Control struct {
	im state.Immutable
}

func New(im state.Immutable) *Control {
	return &Control{im: im}
}

func (c *Control) IsOwner(ctx context.Context, component codec.Address, actor codec.Address) (bool, error) {
	owner, err := storage.GetOwner(ctx, c.im, component)
	if err != nil {
		return false, err
	}
	return !owner.IsZero() && owner == actor, nil
}

func (c *Control) IsMinter(ctx context.Context, actor codec.Address) (bool, error) {
	minter, err := storage.GetMinter(ctx, c.im)
	if err != nil {
		return false, err
	}
	return !minter.IsZero() && minter == actor, nil
}

// IsRewarder reports whether [actor] may issue rewards on the ledger owned
// by [ledger]: the ledger owner always can.
func (c *Control) IsRewarder(ctx context.Context, ledger codec.Address, actor codec.Address) (bool, error) {
	rewarder, err := storage.GetRewardRole(ctx, c.im)
	if err != nil {
		return false, err
	}
	if !rewarder.IsZero() && rewarder == actor {
		return true, nil
	}
	return c.IsOwner(ctx, ledger, actor)
}

func (c *Control) IsRecipient(ctx context.Context, component codec.Address) (bool, error) {
	return storage.IsRelayRecipient(ctx, c.im, component)
}

// RequireOwner returns [ErrUnauthorized] unless [actor] owns [component].
func (c *Control) RequireOwner(ctx context.Context, component codec.Address, actor codec.Address) error {
	ok, err := c.IsOwner(ctx, component, actor)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s is not the owner", ErrUnauthorized, actor)
	}
	return nil
}

func (c *Control) RequireMinter(ctx context.Context, actor codec.Address) error {
	ok, err := c.IsMinter(ctx, actor)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s is not the minter", ErrUnauthorized, actor)
	}
	return nil
}

func (c *Control) RequireRewarder(ctx context.Context, ledger codec.Address, actor codec.Address) error {
	ok, err := c.IsRewarder(ctx, ledger, actor)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s may not issue rewards", ErrUnauthorized, actor)
	}
	return nil
}
