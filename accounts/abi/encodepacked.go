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

// EncodePacked encodes the tokens in Solidity's non-standard packed mode
// (abi.encodePacked): values take their natural width, dynamic values carry
// no length and array elements are padded to a full word. Tuples and nested
// arrays are not supported.
func EncodePacked(types []Type, tokens []Token) ([]byte, error) {
	if len(types) != len(tokens) {
		return nil, fmt.Errorf("%w: %d tokens for %d types", ErrTupleArity, len(tokens), len(types))
	}
	var out []byte
	for i, t := range types {
		b, err := encodePacked(t, tokens[i], false)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out = append(out, b...)
	}
	return out, nil
}

func encodePacked(t Type, tok Token, inArray bool) ([]byte, error) {
	if tok.Kind != t.T {
		return nil, fmt.Errorf("%w: %v token for %v", ErrUnexpectedTokenShape, tok.Kind, t)
	}
	if inArray {
		switch t.T {
		case AddressTy, BoolTy, IntTy, UintTy, FixedBytesTy:
			return encodeToken(t, tok)
		}
		return nil, fmt.Errorf("abi: packed encoding of %v inside an array is not supported", t)
	}
	switch t.T {
	case AddressTy:
		return tok.Address.Bytes(), nil
	case BoolTy:
		if tok.Bool {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case IntTy, UintTy:
		word, err := encodeToken(t, tok)
		if err != nil {
			return nil, err
		}
		return word[32-t.Size/8:], nil
	case FixedBytesTy:
		if len(tok.Bytes) != t.Size {
			return nil, fmt.Errorf("%w: %d bytes for %v", ErrUnexpectedTokenShape, len(tok.Bytes), t)
		}
		return common.CopyBytes(tok.Bytes), nil
	case BytesTy, StringTy:
		return common.CopyBytes(tok.Bytes), nil
	case SliceTy, ArrayTy:
		if t.T == ArrayTy && len(tok.Elems) != t.Size {
			return nil, fmt.Errorf("%w: %d elements for %v", ErrTupleArity, len(tok.Elems), t)
		}
		var out []byte
		for i, elem := range tok.Elems {
			b, err := encodePacked(*t.Elem, elem, true)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, b...)
		}
		return out, nil
	}
	return nil, fmt.Errorf("abi: packed encoding of %v is not supported", t)
}
