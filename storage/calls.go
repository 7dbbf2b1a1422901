// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"unicode/utf8"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/holiman/uint256"

	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/consts"
	"github.com/ava-labs/stormxvm/keys"
	"github.com/ava-labs/stormxvm/state"
)

const (
	// MaxCallErrorLen bounds the error text kept in a call record.
	MaxCallErrorLen = 256

	callRecordMaxLen = consts.Uint64Len + consts.ByteLen + 2*codec.AddressLen +
		2*consts.BoolLen + consts.Uint256Len + consts.Uint16Len + MaxCallErrorLen

	CallChunks uint16 = callRecordMaxLen/64 + 1
)

// CallRecord is the persisted outcome of a processed call.
type CallRecord struct {
	Timestamp int64
	TypeID    uint8
	Actor     codec.Address
	Target    codec.Address
	Relayed   bool
	Success   bool
	Fee       *uint256.Int
	Error     string
}

// [callPrefix] + [callID]
func CallKey(id ids.ID) []byte {
	k := make([]byte, 0, 1+consts.IDLen+consts.Uint16Len)
	k = append(k, callPrefix)
	k = append(k, id[:]...)
	return keys.EncodeChunks(k, CallChunks)
}

// NextCallID derives a fresh call identifier from a persisted counter.
func NextCallID(ctx context.Context, mu state.Mutable) (ids.ID, error) {
	var nonce uint64
	v, err := mu.GetValue(ctx, callNonceKey)
	switch {
	case err == nil:
		if len(v) != consts.Uint64Len {
			return ids.Empty, ErrCorruptRecord
		}
		nonce = binary.BigEndian.Uint64(v)
	case !errors.Is(err, database.ErrNotFound):
		return ids.Empty, err
	}
	nonce++
	b := binary.BigEndian.AppendUint64(nil, nonce)
	if err := mu.Insert(ctx, callNonceKey, b); err != nil {
		return ids.Empty, err
	}
	return ids.ID(hashing.ComputeHash256Array(append([]byte{callPrefix}, b...))), nil
}

func StoreCall(ctx context.Context, mu state.Mutable, id ids.ID, r *CallRecord) error {
	errText := truncateError(r.Error)
	fee := new(uint256.Int)
	if r.Fee != nil {
		fee = r.Fee
	}
	feeBytes := fee.Bytes32()
	p := &wrappers.Packer{MaxSize: callRecordMaxLen}
	p.PackLong(uint64(r.Timestamp))
	p.PackByte(r.TypeID)
	p.PackFixedBytes(r.Actor[:])
	p.PackFixedBytes(r.Target[:])
	p.PackBool(r.Relayed)
	p.PackBool(r.Success)
	p.PackFixedBytes(feeBytes[:])
	p.PackStr(errText)
	if p.Err != nil {
		return p.Err
	}
	return mu.Insert(ctx, CallKey(id), p.Bytes)
}

// truncateError cuts [s] to at most MaxCallErrorLen bytes without splitting
// a rune.
func truncateError(s string) string {
	if len(s) <= MaxCallErrorLen {
		return s
	}
	end := MaxCallErrorLen
	for end > 0 && !utf8.RuneStart(s[end]) {
		end--
	}
	return s[:end]
}

// GetCall returns the record of [id] and whether it exists.
func GetCall(ctx context.Context, im state.Immutable, id ids.ID) (*CallRecord, bool, error) {
	v, err := im.GetValue(ctx, CallKey(id))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	p := &wrappers.Packer{Bytes: v}
	r := &CallRecord{}
	r.Timestamp = int64(p.UnpackLong())
	r.TypeID = p.UnpackByte()
	copy(r.Actor[:], p.UnpackFixedBytes(codec.AddressLen))
	copy(r.Target[:], p.UnpackFixedBytes(codec.AddressLen))
	r.Relayed = p.UnpackBool()
	r.Success = p.UnpackBool()
	r.Fee = new(uint256.Int).SetBytes32(p.UnpackFixedBytes(consts.Uint256Len))
	r.Error = p.UnpackStr()
	if p.Err != nil {
		return nil, false, errors.Join(ErrCorruptRecord, p.Err)
	}
	return r, true, nil
}
