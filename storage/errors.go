// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidRecipient is an [ErrInvalidAddress] raised for the receiving
	// side of a credit.
	ErrInvalidRecipient = fmt.Errorf("%w: null recipient", ErrInvalidAddress)

	ErrInsufficientUnlocked      = errors.New("insufficient unlocked balance")
	ErrInsufficientLocked        = errors.New("insufficient locked balance")
	ErrInsufficientAllowance     = errors.New("insufficient allowance")
	ErrInsufficientLegacyBalance = errors.New("insufficient legacy balance")
	ErrOverflow                  = errors.New("overflow")
	ErrUnderflow                 = errors.New("underflow")
	ErrCorruptRecord             = errors.New("corrupt record")
)
