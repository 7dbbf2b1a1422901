// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "encoding/hex"

// ToHex returns the 0x-prefixed hex encoding of b.
func ToHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// LoadHex converts a hex encoded string (with or without a 0x prefix) into
// bytes. If [expectedSize] is not -1, the decoded length must match it.
func LoadHex(s string, expectedSize int) ([]byte, error) {
	if len(s) >= 2 && s[:2] == "0x" {
		s = s[2:]
	}
	bytes, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if expectedSize != -1 && len(bytes) != expectedSize {
		return nil, ErrInvalidSize
	}
	return bytes, nil
}
