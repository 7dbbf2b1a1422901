// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import "errors"

var (
	ErrLengthMismatch     = errors.New("recipients and amounts differ in length")
	ErrTransfersDisabled  = errors.New("transfers are disabled")
	ErrAlreadyInitialized = errors.New("already initialized")
)
