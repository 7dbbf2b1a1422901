// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"net/http"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/stormxvm/actions"
	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/storage"
)

type JSONRPCServer struct {
	node Node
}

func NewJSONRPCServer(node Node) *JSONRPCServer {
	return &JSONRPCServer{node: node}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.node.Logger().Info("ping")
	reply.Success = true
	return nil
}

type TokenReply struct {
	Name             string        `json:"name"`
	Symbol           string        `json:"symbol"`
	Decimals         uint8         `json:"decimals"`
	Standard         string        `json:"standard"`
	TotalSupply      string        `json:"totalSupply"`
	Owner            codec.Address `json:"owner"`
	Minter           codec.Address `json:"minter"`
	RewardRole       codec.Address `json:"rewardRole"`
	TransfersEnabled bool          `json:"transfersEnabled"`
}

func (j *JSONRPCServer) Token(req *http.Request, _ *struct{}, reply *TokenReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.Token")
	defer span.End()

	var (
		im = j.node.State()
		l  = j.node.Runtime().Ledger()
	)
	supply, err := l.TotalSupply(ctx, im)
	if err != nil {
		return err
	}
	owner, err := l.Owner(ctx, im)
	if err != nil {
		return err
	}
	minter, err := l.ValidMinter(ctx, im)
	if err != nil {
		return err
	}
	rewarder, err := l.RewardRole(ctx, im)
	if err != nil {
		return err
	}
	enabled, err := l.TransfersEnabled(ctx, im)
	if err != nil {
		return err
	}
	reply.Name = l.Name()
	reply.Symbol = l.Symbol()
	reply.Decimals = l.Decimals()
	reply.Standard = l.Standard()
	reply.TotalSupply = supply.Dec()
	reply.Owner = owner
	reply.Minter = minter
	reply.RewardRole = rewarder
	reply.TransfersEnabled = enabled
	return nil
}

type AddressArgs struct {
	Address codec.Address `json:"address"`
}

type BalanceReply struct {
	Total       string `json:"total"`
	Locked      string `json:"locked"`
	Unlocked    string `json:"unlocked"`
	AutoStaking bool   `json:"autoStaking"`
}

func (j *JSONRPCServer) Balance(req *http.Request, args *AddressArgs, reply *BalanceReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.Balance")
	defer span.End()

	acct, err := j.node.Runtime().Ledger().Account(ctx, j.node.State(), args.Address)
	if err != nil {
		return err
	}
	reply.Total = acct.Total.Dec()
	reply.Locked = acct.Locked.Dec()
	reply.Unlocked = acct.Unlocked().Dec()
	reply.AutoStaking = !acct.AutoStakingDisabled
	return nil
}

type AllowanceArgs struct {
	Owner   codec.Address `json:"owner"`
	Spender codec.Address `json:"spender"`
}

type AmountReply struct {
	Amount string `json:"amount"`
}

func (j *JSONRPCServer) Allowance(req *http.Request, args *AllowanceArgs, reply *AmountReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.Allowance")
	defer span.End()

	amount, err := j.node.Runtime().Ledger().Allowance(ctx, j.node.State(), args.Owner, args.Spender)
	if err != nil {
		return err
	}
	reply.Amount = amount.Dec()
	return nil
}

func (j *JSONRPCServer) TotalSupply(req *http.Request, _ *struct{}, reply *AmountReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.TotalSupply")
	defer span.End()

	supply, err := j.node.Runtime().Ledger().TotalSupply(ctx, j.node.State())
	if err != nil {
		return err
	}
	reply.Amount = supply.Dec()
	return nil
}

type MigrationReply struct {
	Status       string        `json:"status"`
	Open         bool          `json:"open"`
	Deadline     int64         `json:"deadline"`
	SupplyAtInit string        `json:"supplyAtInit"`
	Converted    string        `json:"converted"`
	Owner        codec.Address `json:"owner"`
}

func (j *JSONRPCServer) Migration(req *http.Request, _ *struct{}, reply *MigrationReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.Migration")
	defer span.End()

	var (
		im   = j.node.State()
		swap = j.node.Runtime().Swap()
	)
	m, err := swap.Migration(ctx, im)
	if err != nil {
		return err
	}
	owner, err := swap.Owner(ctx, im)
	if err != nil {
		return err
	}
	reply.Status = m.Status.String()
	reply.Open = m.Status == storage.MigrationOpen
	reply.Deadline = m.Deadline
	reply.SupplyAtInit = m.SupplyAtInit.Dec()
	reply.Converted = m.Converted.Dec()
	reply.Owner = owner
	return nil
}

type RelayArgs struct {
	Component codec.Address `json:"component"`
}

type RelayReply struct {
	Recipient bool          `json:"recipient"`
	Fee       string        `json:"fee"`
	Reserve   codec.Address `json:"reserve"`
}

func (j *JSONRPCServer) Relay(req *http.Request, args *RelayArgs, reply *RelayReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.Relay")
	defer span.End()

	var (
		im = j.node.State()
		rt = j.node.Runtime()
	)
	recipient, err := rt.Ledger().IsRelayRecipient(ctx, im, args.Component)
	if err != nil {
		return err
	}
	fee, err := rt.Relay().ChargeFee(ctx, im, args.Component)
	if err != nil {
		return err
	}
	reserve, err := rt.Relay().Reserve(ctx, im, args.Component)
	if err != nil {
		return err
	}
	reply.Recipient = recipient || args.Component == rt.Ledger().Address()
	reply.Fee = fee.Dec()
	reply.Reserve = reserve
	return nil
}

type LegacyBalanceReply struct {
	Amount       string        `json:"amount"`
	TotalSupply  string        `json:"totalSupply"`
	Owner        codec.Address `json:"owner"`
	PendingOwner codec.Address `json:"pendingOwner"`
}

func (j *JSONRPCServer) LegacyBalance(req *http.Request, args *AddressArgs, reply *LegacyBalanceReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.LegacyBalance")
	defer span.End()

	var (
		im     = j.node.State()
		legacy = j.node.Runtime().Legacy()
	)
	bal, err := legacy.BalanceOf(ctx, im, args.Address)
	if err != nil {
		return err
	}
	supply, err := legacy.TotalSupply(ctx, im)
	if err != nil {
		return err
	}
	owner, err := legacy.Owner(ctx, im)
	if err != nil {
		return err
	}
	pending, err := legacy.PendingOwner(ctx, im)
	if err != nil {
		return err
	}
	reply.Amount = bal.Dec()
	reply.TotalSupply = supply.Dec()
	reply.Owner = owner
	reply.PendingOwner = pending
	return nil
}

type CallArgs struct {
	CallID ids.ID `json:"callID"`
}

type CallReply struct {
	Found     bool          `json:"found"`
	Timestamp int64         `json:"timestamp"`
	TypeID    uint8         `json:"typeID"`
	Type      string        `json:"type"`
	Actor     codec.Address `json:"actor"`
	Target    codec.Address `json:"target"`
	Relayed   bool          `json:"relayed"`
	Success   bool          `json:"success"`
	Fee       string        `json:"fee"`
	Error     string        `json:"error"`
}

func (j *JSONRPCServer) Call(req *http.Request, args *CallArgs, reply *CallReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.Call")
	defer span.End()

	rec, found, err := storage.GetCall(ctx, j.node.State(), args.CallID)
	if err != nil {
		return err
	}
	reply.Found = found
	if !found {
		return nil
	}
	name, _ := actions.Name(rec.TypeID)
	reply.Timestamp = rec.Timestamp
	reply.TypeID = rec.TypeID
	reply.Type = name
	reply.Actor = rec.Actor
	reply.Target = rec.Target
	reply.Relayed = rec.Relayed
	reply.Success = rec.Success
	reply.Fee = rec.Fee.Dec()
	reply.Error = rec.Error
	return nil
}
