// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/ava-labs/stormxvm/consts"

	formatter "github.com/onsi/ginkgo/v2/formatter"
)

var (
	ErrNegativeBalance = errors.New("balance is negative")
	ErrTooManyDecimals = errors.New("balance has too many decimals")
	ErrBalanceTooLarge = errors.New("balance does not fit 256 bits")
)

func InitSubDirectory(rootPath string, name string) (string, error) {
	p := path.Join(rootPath, name)
	return p, os.MkdirAll(p, perms.ReadWriteExecute)
}

// Outputs to stdout.
//
// e.g.,
//
//	Out("{{green}}{{bold}}hi there %q{{/}}", "aa")
//	Out("{{magenta}}{{bold}}hi therea{{/}} {{cyan}}{{underline}}b{{/}}")
//
// ref.
// https://github.com/onsi/ginkgo/blob/v2.0.0/formatter/formatter.go#L52-L73
func Outf(format string, args ...interface{}) {
	s := formatter.F(format, args...)
	fmt.Fprint(formatter.ColorableStdOut, s)
}

// FormatBalance renders base units as whole tokens, e.g. 1500000000000000000
// is "1.5".
func FormatBalance(bal *uint256.Int) string {
	return decimal.NewFromBigInt(bal.ToBig(), -consts.TokenDecimals).String()
}

// ParseBalance parses whole tokens into base units.
func ParseBalance(bal string) (*uint256.Int, error) {
	d, err := decimal.NewFromString(bal)
	if err != nil {
		return nil, err
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrNegativeBalance, bal)
	}
	base := d.Shift(consts.TokenDecimals)
	if !base.Equal(base.Truncate(0)) {
		return nil, fmt.Errorf("%w: %s", ErrTooManyDecimals, bal)
	}
	v, overflow := uint256.FromBig(base.BigInt())
	if overflow {
		return nil, fmt.Errorf("%w: %s", ErrBalanceTooLarge, bal)
	}
	return v, nil
}
