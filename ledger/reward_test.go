// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/stormxvm/access"
	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/storage"
)

func TestRewardsLockByDefault(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	l, mu := newTestLedger(t, map[codec.Address]uint64{owner: 100})

	require.NoError(l.Rewards(
		ctx,
		mu,
		owner,
		[]codec.Address{alice, bob},
		[]*uint256.Int{amt(10), amt(5)},
	))
	requireAccount(t, mu, owner, 85, 0)
	requireAccount(t, mu, alice, 10, 10)
	requireAccount(t, mu, bob, 5, 5)
	checkInvariants(t, mu, everyone...)
}

func TestRewardsAtomic(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	l, mu := newTestLedger(t, map[codec.Address]uint64{owner: 100})

	err := l.Rewards(
		ctx,
		mu,
		owner,
		[]codec.Address{alice, bob},
		[]*uint256.Int{amt(60), amt(41)},
	)
	require.ErrorIs(err, storage.ErrInsufficientUnlocked)
	requireAccount(t, mu, owner, 100, 0)
	requireAccount(t, mu, alice, 0, 0)
	requireAccount(t, mu, bob, 0, 0)
}

func TestRewardAutoStakingDisabled(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	l, mu := newTestLedger(t, map[codec.Address]uint64{owner: 100})

	require.NoError(l.SetAutoStaking(ctx, mu, alice, false))
	require.NoError(l.Reward(ctx, mu, owner, alice, amt(7)))
	requireAccount(t, mu, alice, 7, 0)
}

func TestRewardErrors(t *testing.T) {
	tests := []struct {
		name        string
		actor       codec.Address
		recipients  []codec.Address
		amounts     []*uint256.Int
		expectedErr error
	}{
		{
			name:        "stranger",
			actor:       bob,
			recipients:  []codec.Address{alice},
			amounts:     []*uint256.Int{amt(1)},
			expectedErr: access.ErrUnauthorized,
		},
		{
			name:        "length mismatch",
			actor:       owner,
			recipients:  []codec.Address{alice, bob},
			amounts:     []*uint256.Int{amt(1)},
			expectedErr: ErrLengthMismatch,
		},
		{
			name:        "null recipient",
			actor:       owner,
			recipients:  []codec.Address{alice, codec.EmptyAddress},
			amounts:     []*uint256.Int{amt(1), amt(1)},
			expectedErr: storage.ErrInvalidRecipient,
		},
		{
			name:        "sum overflows",
			actor:       owner,
			recipients:  []codec.Address{alice, bob},
			amounts:     []*uint256.Int{new(uint256.Int).SetAllOne(), amt(1)},
			expectedErr: storage.ErrOverflow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			l, mu := newTestLedger(t, map[codec.Address]uint64{owner: 100})
			require.ErrorIs(l.Rewards(context.TODO(), mu, tt.actor, tt.recipients, tt.amounts), tt.expectedErr)
			requireAccount(t, mu, owner, 100, 0)
		})
	}
}

func TestRewardRole(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	l, mu := newTestLedger(t, map[codec.Address]uint64{carol: 20})

	rewarder, err := l.RewardRole(ctx, mu)
	require.NoError(err)
	require.Equal(codec.EmptyAddress, rewarder)
	require.ErrorIs(l.Reward(ctx, mu, carol, alice, amt(1)), access.ErrUnauthorized)

	require.ErrorIs(l.AssignRewardRole(ctx, mu, carol, carol), access.ErrUnauthorized)
	require.NoError(l.AssignRewardRole(ctx, mu, owner, carol))
	require.NoError(l.Reward(ctx, mu, carol, alice, amt(1)))
	requireAccount(t, mu, carol, 19, 0)

	// revoke
	require.NoError(l.AssignRewardRole(ctx, mu, owner, codec.EmptyAddress))
	require.ErrorIs(l.Reward(ctx, mu, carol, alice, amt(1)), access.ErrUnauthorized)
}

func TestRewardsIgnoreTransferSwitch(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	l, mu := newTestLedger(t, map[codec.Address]uint64{owner: 10})

	require.NoError(l.EnableTransfers(ctx, mu, owner, false))
	require.NoError(l.Reward(ctx, mu, owner, alice, amt(10)))
	requireAccount(t, mu, alice, 10, 10)
}
