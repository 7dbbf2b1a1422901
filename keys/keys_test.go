// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeChunks(t *testing.T) {
	tests := []struct {
		name      string
		valueSize int
		chunks    uint16
	}{
		{name: "empty", valueSize: 0, chunks: 0},
		{name: "one byte", valueSize: 1, chunks: 1},
		{name: "just under a chunk", valueSize: 63, chunks: 1},
		{name: "exactly a chunk", valueSize: 64, chunks: 2},
		{name: "account record", valueSize: 65, chunks: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			k, ok := Encode([]byte{0x1}, tt.valueSize)
			require.True(ok)
			chunks, ok := MaxChunks(k)
			require.True(ok)
			require.Equal(tt.chunks, chunks)
			require.True(VerifyValue(k, make([]byte, tt.valueSize)))
		})
	}
}

func TestVerifyValue(t *testing.T) {
	require := require.New(t)
	k := EncodeChunks([]byte{0x1}, 1)
	require.True(VerifyValue(k, make([]byte, 32)))
	require.False(VerifyValue(k, make([]byte, 64)))
	require.False(VerifyValue([]byte{0x1}, make([]byte, 1)))
	require.False(Valid([]byte{0x1}))
}
