// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestAddress(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(0, ids.GenerateTestID())
	addrStr, err := addr.MarshalText()
	require.NoError(err)

	var parsedAddr Address
	require.NoError(parsedAddr.UnmarshalText(addrStr))
	require.Equal(addr, parsedAddr)
	require.False(addr.IsZero())
	require.True(EmptyAddress.IsZero())
}

func TestAddressJSON(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(1, ids.GenerateTestID())

	addrJSONBytes, err := json.Marshal(addr)
	require.NoError(err)

	var parsedAddr Address
	require.NoError(json.Unmarshal(addrJSONBytes, &parsedAddr))
	require.Equal(addr, parsedAddr)
}

func TestStringToAddress(t *testing.T) {
	addr := CreateAddress(0, ids.GenerateTestID())
	valid := addr.String()

	// flip the last checksum nibble
	last := valid[len(valid)-1]
	flipped := byte('0')
	if last == '0' {
		flipped = '1'
	}
	corrupted := valid[:len(valid)-1] + string(flipped)

	tests := []struct {
		name        string
		input       string
		expected    Address
		expectedErr error
	}{
		{
			name:     "valid",
			input:    valid,
			expected: addr,
		},
		{
			name:     "valid without prefix",
			input:    strings.TrimPrefix(valid, "0x"),
			expected: addr,
		},
		{
			name:        "bad checksum",
			input:       corrupted,
			expectedErr: ErrBadChecksum,
		},
		{
			name:        "missing checksum",
			input:       valid[:len(valid)-8],
			expectedErr: ErrInvalidSize,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			parsed, err := StringToAddress(tt.input)
			require.ErrorIs(err, tt.expectedErr)
			require.Equal(tt.expected, parsed)
		})
	}
}
