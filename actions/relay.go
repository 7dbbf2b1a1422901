// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/ava-labs/stormxvm/chain"
	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/consts"
	"github.com/ava-labs/stormxvm/state"
)

var (
	_ chain.Action = (*SetChargeFee)(nil)
	_ chain.Action = (*SetReserve)(nil)
)

// SetChargeFee configures the relay fee of [Component]. When relayed, the
// call pays the fee in force before it ran.
type SetChargeFee struct {
	Component codec.Address `json:"component"`
	Fee       *uint256.Int  `json:"fee"`
}

func (*SetChargeFee) GetTypeID() uint8 { return consts.SetChargeFeeID }

func (s *SetChargeFee) Target() codec.Address { return s.Component }

func (s *SetChargeFee) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Relay().SetChargeFee(ctx, mu, actor, s.Component, amountOrZero(s.Fee))
}

type SetReserve struct {
	Component codec.Address `json:"component"`
	Reserve   codec.Address `json:"reserve"`
}

func (*SetReserve) GetTypeID() uint8 { return consts.SetReserveID }

func (s *SetReserve) Target() codec.Address { return s.Component }

func (s *SetReserve) Execute(ctx context.Context, rt chain.Runtime, mu state.Mutable, _ int64, actor codec.Address) error {
	return rt.Relay().SetReserve(ctx, mu, actor, s.Component, s.Reserve)
}
