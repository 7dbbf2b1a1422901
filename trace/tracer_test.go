// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	require := require.New(t)

	disabled, err := New(&Config{AppName: "stormxvm"})
	require.NoError(err)
	require.Equal(trace.Noop, disabled)

	enabled, err := New(&Config{
		Enabled:         true,
		TraceSampleRate: 0,
		AppName:         "stormxvm",
		Agent:           "test",
	})
	require.NoError(err)
	_, span := enabled.Start(context.TODO(), "test")
	span.End()
	require.NoError(enabled.Close())
}
