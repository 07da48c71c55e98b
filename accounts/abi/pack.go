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

	"github.com/ethereum/go-ethereum/common"
)

// Encode packs the tokens against their types following the head/tail layout:
// one head slot per element (inline for static types, a byte offset from the
// start of the head region for dynamic ones), followed by the tails of all
// dynamic elements in order.
func Encode(types []Type, tokens []Token) ([]byte, error) {
	if len(types) != len(tokens) {
		return nil, fmt.Errorf("%w: %d tokens for %d types", ErrTupleArity, len(tokens), len(types))
	}
	return encodeSequence(types, tokens)
}

// encodeSequence lays out a head/tail block. Offsets in the head are relative
// to the start of the block, which is what makes the scheme recursive.
func encodeSequence(types []Type, tokens []Token) ([]byte, error) {
	headSize := 0
	for _, t := range types {
		headSize += getTypeSize(t)
	}
	var (
		head = make([]byte, 0, min(headSize, 32*len(types)))
		tail []byte
	)
	for i, t := range types {
		packed, err := encodeToken(t, tokens[i])
		if err != nil {
			return nil, err
		}
		if isDynamicType(t) {
			head = append(head, packOffset(headSize+len(tail))...)
			tail = append(tail, packed...)
		} else {
			head = append(head, packed...)
		}
	}
	return append(head, tail...), nil
}

// encodeToken encodes a single value. Static values come back as their inline
// head encoding, dynamic ones as their tail.
func encodeToken(t Type, tok Token) ([]byte, error) {
	if tok.Kind != t.T {
		return nil, fmt.Errorf("%w: %v token for %v", ErrUnexpectedTokenShape, tok.Kind, t)
	}
	switch t.T {
	case AddressTy:
		return common.LeftPadBytes(tok.Address.Bytes(), 32), nil

	case BoolTy:
		if tok.Bool {
			return packOffset(1), nil
		}
		return packOffset(0), nil

	case IntTy, UintTy:
		if tok.Int == nil {
			return nil, fmt.Errorf("%w: nil integer for %v", ErrUnexpectedTokenShape, t)
		}
		if err := checkIntegerBounds(t, tok.Int); err != nil {
			return nil, err
		}
		return packNum(tok.Int), nil

	case FixedBytesTy:
		if len(tok.Bytes) != t.Size {
			return nil, fmt.Errorf("%w: %d bytes for %v", ErrUnexpectedTokenShape, len(tok.Bytes), t)
		}
		return common.RightPadBytes(tok.Bytes, 32), nil

	case BytesTy, StringTy:
		return packBytesSlice(tok.Bytes), nil

	case SliceTy:
		packed, err := encodeSequence(repeat(*t.Elem, len(tok.Elems)), tok.Elems)
		if err != nil {
			return nil, err
		}
		return append(packOffset(len(tok.Elems)), packed...), nil

	case ArrayTy:
		if len(tok.Elems) != t.Size {
			return nil, fmt.Errorf("%w: %d elements for %v", ErrTupleArity, len(tok.Elems), t)
		}
		return encodeSequence(repeat(*t.Elem, t.Size), tok.Elems)

	case TupleTy:
		if len(tok.Elems) != len(t.TupleElems) {
			return nil, fmt.Errorf("%w: %d components for %v", ErrTupleArity, len(tok.Elems), t)
		}
		return encodeSequence(tupleTypes(t), tok.Elems)
	}
	return nil, fmt.Errorf("%w: unknown type %v", ErrUnexpectedTokenShape, t)
}

// packBytesSlice packs the given bytes as [L, V] as the canonical representation
// bytes slice.
func packBytesSlice(bytes []byte) []byte {
	l := len(bytes)
	padded := (l + 31) / 32 * 32
	return append(packOffset(l), common.RightPadBytes(bytes, padded)...)
}
