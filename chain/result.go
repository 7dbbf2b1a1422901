// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"encoding/json"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/holiman/uint256"

	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/storage"
)

// Result is the outcome of a processed call. A failed action still produces
// a Result (and, when relayed, still pays its fee); Err holds the reason.
type Result struct {
	CallID    ids.ID
	TypeID    uint8
	Actor     codec.Address
	Target    codec.Address
	Relayed   bool
	Success   bool
	Err       error
	Fee       *uint256.Int
	Timestamp int64
}

func (r *Result) record() *storage.CallRecord {
	rec := &storage.CallRecord{
		Timestamp: r.Timestamp,
		TypeID:    r.TypeID,
		Actor:     r.Actor,
		Target:    r.Target,
		Relayed:   r.Relayed,
		Success:   r.Success,
		Fee:       r.Fee,
	}
	if r.Err != nil {
		rec.Error = r.Err.Error()
	}
	return rec
}

type resultJSON struct {
	CallID    ids.ID        `json:"callID"`
	TypeID    uint8         `json:"typeID"`
	Actor     codec.Address `json:"actor"`
	Target    codec.Address `json:"target"`
	Relayed   bool          `json:"relayed"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	Fee       string        `json:"fee"`
	Timestamp int64         `json:"timestamp"`
}

func (r *Result) MarshalJSON() ([]byte, error) {
	rj := resultJSON{
		CallID:    r.CallID,
		TypeID:    r.TypeID,
		Actor:     r.Actor,
		Target:    r.Target,
		Relayed:   r.Relayed,
		Success:   r.Success,
		Fee:       "0",
		Timestamp: r.Timestamp,
	}
	if r.Err != nil {
		rj.Error = r.Err.Error()
	}
	if r.Fee != nil {
		rj.Fee = r.Fee.Dec()
	}
	return json.Marshal(rj)
}
