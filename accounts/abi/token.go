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
	"bytes"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Token is the wire level value tree the codec works on. Its shape mirrors the
// Type it was produced from, but it carries no widths or names of its own: a
// Token is only meaningful next to its Type.
type Token struct {
	Kind TypeKind

	Bool    bool           // BoolTy
	Address common.Address // AddressTy
	Int     *big.Int       // IntTy, UintTy
	Bytes   []byte         // FixedBytesTy, BytesTy, StringTy (UTF-8)
	Elems   []Token        // SliceTy, ArrayTy, TupleTy
}

// NewAddressToken wraps an address.
func NewAddressToken(addr common.Address) Token {
	return Token{Kind: AddressTy, Address: addr}
}

// NewBoolToken wraps a boolean.
func NewBoolToken(b bool) Token {
	return Token{Kind: BoolTy, Bool: b}
}

// NewIntToken wraps a signed integer.
func NewIntToken(v *big.Int) Token {
	return Token{Kind: IntTy, Int: new(big.Int).Set(v)}
}

// NewUintToken wraps an unsigned integer.
func NewUintToken(v *big.Int) Token {
	return Token{Kind: UintTy, Int: new(big.Int).Set(v)}
}

// NewFixedBytesToken wraps a bytesN value.
func NewFixedBytesToken(b []byte) Token {
	return Token{Kind: FixedBytesTy, Bytes: common.CopyBytes(b)}
}

// NewBytesToken wraps a dynamic byte string.
func NewBytesToken(b []byte) Token {
	return Token{Kind: BytesTy, Bytes: common.CopyBytes(b)}
}

// NewStringToken wraps a string.
func NewStringToken(s string) Token {
	return Token{Kind: StringTy, Bytes: []byte(s)}
}

// NewSliceToken wraps the elements of a dynamically sized array.
func NewSliceToken(elems ...Token) Token {
	return Token{Kind: SliceTy, Elems: elems}
}

// NewArrayToken wraps the elements of a fixed size array.
func NewArrayToken(elems ...Token) Token {
	return Token{Kind: ArrayTy, Elems: elems}
}

// NewTupleToken wraps the components of a tuple.
func NewTupleToken(elems ...Token) Token {
	return Token{Kind: TupleTy, Elems: elems}
}

// Equal reports whether two tokens hold the same value.
func (tok Token) Equal(other Token) bool {
	if tok.Kind != other.Kind {
		return false
	}
	switch tok.Kind {
	case BoolTy:
		return tok.Bool == other.Bool
	case AddressTy:
		return tok.Address == other.Address
	case IntTy, UintTy:
		if tok.Int == nil || other.Int == nil {
			return tok.Int == other.Int
		}
		return tok.Int.Cmp(other.Int) == 0
	case FixedBytesTy, BytesTy, StringTy:
		return bytes.Equal(tok.Bytes, other.Bytes)
	case SliceTy, ArrayTy, TupleTy:
		return TokensEqual(tok.Elems, other.Elems)
	}
	return false
}

// TokensEqual compares two token sequences element wise.
func TokensEqual(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer for debugging output.
func (tok Token) String() string {
	switch tok.Kind {
	case BoolTy:
		return fmt.Sprintf("bool(%t)", tok.Bool)
	case AddressTy:
		return fmt.Sprintf("address(%s)", tok.Address.Hex())
	case IntTy, UintTy:
		return fmt.Sprintf("%s(%v)", tok.Kind, tok.Int)
	case FixedBytesTy, BytesTy:
		return fmt.Sprintf("%s(%#x)", tok.Kind, tok.Bytes)
	case StringTy:
		return fmt.Sprintf("string(%q)", tok.Bytes)
	case SliceTy, ArrayTy, TupleTy:
		elems := make([]string, len(tok.Elems))
		for i, elem := range tok.Elems {
			elems[i] = elem.String()
		}
		return fmt.Sprintf("%s(%s)", tok.Kind, strings.Join(elems, ","))
	}
	return fmt.Sprintf("<%v>", tok.Kind)
}
