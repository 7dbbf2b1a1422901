// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestInitSubDirectory(t *testing.T) {
	require := require.New(t)

	root := t.TempDir()
	p, err := InitSubDirectory(root, "statedb")
	require.NoError(err)
	require.Equal(filepath.Join(root, "statedb"), p)
	info, err := os.Stat(p)
	require.NoError(err)
	require.True(info.IsDir())
}

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		bal      *uint256.Int
		expected string
	}{
		{uint256.NewInt(0), "0"},
		{uint256.NewInt(1), "0.000000000000000001"},
		{uint256.NewInt(1_500_000_000_000_000_000), "1.5"},
		{new(uint256.Int).Mul(uint256.NewInt(100), uint256.NewInt(1_000_000_000_000_000_000)), "100"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, FormatBalance(tt.bal))
		})
	}
}

func TestParseBalance(t *testing.T) {
	tests := []struct {
		input    string
		expected *uint256.Int
		err      error
	}{
		{input: "1.5", expected: uint256.NewInt(1_500_000_000_000_000_000)},
		{input: "0.000000000000000001", expected: uint256.NewInt(1)},
		{input: "0", expected: uint256.NewInt(0)},
		{input: "-1", err: ErrNegativeBalance},
		{input: "0.0000000000000000001", err: ErrTooManyDecimals},
		{input: "1e80", err: ErrBalanceTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require := require.New(t)
			v, err := ParseBalance(tt.input)
			require.ErrorIs(err, tt.err)
			if tt.err == nil {
				require.Equal(tt.expected, v)
				require.Equal(tt.input, FormatBalance(v))
			}
		})
	}
}
