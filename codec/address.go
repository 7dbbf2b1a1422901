// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"bytes"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
)

const (
	AddressLen  = 33
	checksumLen = 4
)

// Address represents the 33 byte address of an account or component.
// The first byte is a type prefix.
type Address [AddressLen]byte

var EmptyAddress = Address{}

// CreateAddress returns [Address] made from concatenating
// [typeID] with [id].
func CreateAddress(typeID uint8, id ids.ID) Address {
	var a Address
	a[0] = typeID
	copy(a[1:], id[:])
	return a
}

// IsZero reports whether a is the null identity.
func (a Address) IsZero() bool {
	return a == EmptyAddress
}

// String implements fmt.Stringer. The encoding is the 0x-prefixed hex of the
// address followed by a 4 byte checksum.
func (a Address) String() string {
	b := make([]byte, 0, AddressLen+checksumLen)
	b = append(b, a[:]...)
	b = append(b, hashing.Checksum(a[:], checksumLen)...)
	return ToHex(b)
}

// StringToAddress parses the output of [Address.String]. The checksum is
// verified.
func StringToAddress(s string) (Address, error) {
	b, err := LoadHex(s, AddressLen+checksumLen)
	if err != nil {
		return EmptyAddress, err
	}
	if !bytes.Equal(hashing.Checksum(b[:AddressLen], checksumLen), b[AddressLen:]) {
		return EmptyAddress, ErrBadChecksum
	}
	var a Address
	copy(a[:], b[:AddressLen])
	return a, nil
}

// MarshalText returns the checksummed hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a checksummed hex address.
func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := StringToAddress(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
