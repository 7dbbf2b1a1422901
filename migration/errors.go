// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package migration

import "errors"

var (
	ErrAlreadyInitialized      = errors.New("migration already initialized")
	ErrOwnershipNotTransferred = errors.New("legacy ownership not transferred to swap")
	ErrNotHoldingAuthority     = errors.New("swap does not own the legacy ledger")
	ErrMigrationClosed         = errors.New("migration is closed")
	ErrMigrationNotOpen        = errors.New("migration is not open")
	ErrTooEarly                = errors.New("migration window has not elapsed")
	ErrRefMismatch             = errors.New("swap wired to different ledgers than recorded")
	ErrNotMinter               = errors.New("swap is not the ledger minter")
)
