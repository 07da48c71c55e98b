// Copyright 2026 The ethbind Authors
// This file is part of the ethbind library.
//
// The ethbind library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ethbind library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ethbind library. If not, see <http://www.gnu.org/licenses/>.

package abi

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

var (
	big1  = big.NewInt(1)
	tt256 = new(big.Int).Lsh(big1, 256)
)

// checkIntegerBounds verifies that v is representable in the integer type t.
func checkIntegerBounds(t Type, v *big.Int) error {
	if t.T == UintTy {
		if v.Sign() < 0 || v.BitLen() > t.Size {
			return fmt.Errorf("%w: %v does not fit %v", ErrIntegerOverflow, v, t)
		}
		return nil
	}
	var (
		max = new(big.Int).Lsh(big1, uint(t.Size-1))
		min = new(big.Int).Neg(max)
	)
	max.Sub(max, big1)
	if v.Cmp(min) < 0 || v.Cmp(max) > 0 {
		return fmt.Errorf("%w: %v does not fit %v", ErrIntegerOverflow, v, t)
	}
	return nil
}

// packNum returns the 32 byte two's complement word of v.
func packNum(v *big.Int) []byte {
	var word uint256.Int
	word.SetFromBig(v)
	b := word.Bytes32()
	return b[:]
}

// packOffset encodes a head offset or a length prefix.
func packOffset(n int) []byte {
	b := uint256.NewInt(uint64(n)).Bytes32()
	return b[:]
}

// readInteger interprets a word as a number of the integer type t.
func readInteger(t Type, word []byte) *big.Int {
	v := new(big.Int).SetBytes(word[:32])
	if t.T == IntTy && v.Bit(255) == 1 {
		v.Sub(v, tt256)
	}
	return v
}

// readLength interprets a word as an offset or length, rejecting anything that
// cannot possibly index into a buffer of the given size.
func readLength(word []byte, limit int) (int, bool) {
	var v uint256.Int
	v.SetBytes32(word[:32])
	if !v.IsUint64() || v.Uint64() > uint64(limit) {
		return 0, false
	}
	return int(v.Uint64()), true
}

// U256 converts a big Int into a 256bit EVM word.
func U256(n *big.Int) []byte {
	return packNum(n)
}
