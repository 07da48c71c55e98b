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

	"github.com/ethereum/go-ethereum/common"
)

// maxZeroSizeElems bounds the length prefix of arrays whose elements occupy
// no bytes at all (e.g. empty tuples), which the input size cannot bound.
const maxZeroSizeElems = 1 << 16

// decoder carries the work budget of a single Decode call. Every offset word,
// value word, word of bytes or string content and every zero-size value
// spends one unit. A canonical encoding never spends more than its word count
// plus the elements of zero-size arrays, while tails shared through repeated
// offsets spend the budget again on every visit and cannot expand a small
// input into a huge tree.
type decoder struct {
	budget int
}

func newDecoder(data []byte) *decoder {
	return &decoder{budget: len(data)/32 + maxZeroSizeElems}
}

func (d *decoder) spend(n int, t Type) error {
	if n > d.budget {
		return fmt.Errorf("%w: %v expands beyond the input size", ErrTruncatedInput, t)
	}
	d.budget -= n
	return nil
}

// Decode unpacks the data against the given types. It never panics on hostile
// input: truncated data, misaligned or out of range offsets and oversized
// length prefixes all surface as errors.
func Decode(types []Type, data []byte) ([]Token, error) {
	return newDecoder(data).decodeSequence(types, data)
}

// DecodeStrict is Decode with the additional requirement that the input is the
// canonical encoding of the result: padding must be zeroed, integers must fit
// their width and no trailing bytes may follow.
func DecodeStrict(types []Type, data []byte) ([]Token, error) {
	tokens, err := Decode(types, data)
	if err != nil {
		return nil, err
	}
	enc, err := Encode(types, tokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	if !bytes.Equal(enc, data) {
		return nil, fmt.Errorf("%w: non-canonical encoding", ErrInvalidData)
	}
	return tokens, nil
}

// decodeSequence reads a head/tail block starting at the beginning of data.
func (d *decoder) decodeSequence(types []Type, data []byte) ([]Token, error) {
	var (
		tokens = make([]Token, len(types))
		offset = 0
	)
	for i, t := range types {
		if offset > len(data) {
			return nil, fmt.Errorf("%w: element %d starts at %d of %d bytes", ErrTruncatedInput, i, offset, len(data))
		}
		if isDynamicType(t) {
			ptr, err := readOffset(data, offset)
			if err != nil {
				return nil, err
			}
			if err := d.spend(1, t); err != nil {
				return nil, err
			}
			if tokens[i], err = d.decodeToken(t, data[ptr:]); err != nil {
				return nil, err
			}
			offset += 32
			continue
		}
		tok, err := d.decodeToken(t, data[offset:])
		if err != nil {
			return nil, err
		}
		tokens[i] = tok
		offset += getTypeSize(t)
	}
	return tokens, nil
}

// readOffset reads the tail pointer stored at data[at:at+32].
func readOffset(data []byte, at int) (int, error) {
	if len(data) < at+32 {
		return 0, fmt.Errorf("%w: offset word at %d of %d bytes", ErrTruncatedInput, at, len(data))
	}
	ptr, ok := readLength(data[at:at+32], len(data))
	if !ok {
		return 0, fmt.Errorf("%w: offset %#x beyond %d bytes", ErrOffsetOutOfRange, data[at:at+32], len(data))
	}
	if ptr%32 != 0 {
		return 0, fmt.Errorf("%w: misaligned offset %d", ErrOffsetOutOfRange, ptr)
	}
	return ptr, nil
}

// readWord returns the first word of data.
func readWord(data []byte, t Type) ([]byte, error) {
	if len(data) < 32 {
		return nil, fmt.Errorf("%w: %v needs 32 bytes, have %d", ErrTruncatedInput, t, len(data))
	}
	return data[:32], nil
}

// decodeToken decodes a single value. For static types data points at the
// value's head slot, for dynamic types at its tail.
func (d *decoder) decodeToken(t Type, data []byte) (Token, error) {
	if isValueType(t) || (!isDynamicType(t) && getTypeSize(t) == 0) {
		if err := d.spend(1, t); err != nil {
			return Token{}, err
		}
	}
	switch t.T {
	case AddressTy:
		word, err := readWord(data, t)
		if err != nil {
			return Token{}, err
		}
		return NewAddressToken(common.BytesToAddress(word[12:])), nil

	case BoolTy:
		word, err := readWord(data, t)
		if err != nil {
			return Token{}, err
		}
		return NewBoolToken(word[31] != 0), nil

	case IntTy, UintTy:
		word, err := readWord(data, t)
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: t.T, Int: readInteger(t, word)}, nil

	case FixedBytesTy:
		word, err := readWord(data, t)
		if err != nil {
			return Token{}, err
		}
		return NewFixedBytesToken(word[:t.Size]), nil

	case BytesTy, StringTy:
		word, err := readWord(data, t)
		if err != nil {
			return Token{}, err
		}
		size, ok := readLength(word, len(data)-32)
		if !ok {
			return Token{}, fmt.Errorf("%w: %v length %#x exceeds %d bytes", ErrTruncatedInput, t, word, len(data)-32)
		}
		if err := d.spend(1+(size+31)/32, t); err != nil {
			return Token{}, err
		}
		return Token{Kind: t.T, Bytes: common.CopyBytes(data[32 : 32+size])}, nil

	case SliceTy:
		word, err := readWord(data, t)
		if err != nil {
			return Token{}, err
		}
		limit := (len(data) - 32) / 32
		if getTypeSize(*t.Elem) == 0 {
			limit = maxZeroSizeElems
		}
		size, ok := readLength(word, limit)
		if !ok {
			return Token{}, fmt.Errorf("%w: %v length %#x exceeds input", ErrTruncatedInput, t, word)
		}
		elems, err := d.decodeSequence(repeat(*t.Elem, size), data[32:])
		if err != nil {
			return Token{}, err
		}
		return NewSliceToken(elems...), nil

	case ArrayTy:
		if err := d.checkArraySize(t, len(data)); err != nil {
			return Token{}, err
		}
		elems, err := d.decodeSequence(repeat(*t.Elem, t.Size), data)
		if err != nil {
			return Token{}, err
		}
		return NewArrayToken(elems...), nil

	case TupleTy:
		elems, err := d.decodeSequence(tupleTypes(t), data)
		if err != nil {
			return Token{}, err
		}
		return NewTupleToken(elems...), nil
	}
	return Token{}, fmt.Errorf("%w: unknown type %v", ErrUnexpectedTokenShape, t)
}

// checkArraySize rejects fixed size arrays whose declared length cannot be
// backed by n bytes of input, before any per-element work is done.
func (d *decoder) checkArraySize(t Type, n int) error {
	elem := 32
	if !isDynamicType(*t.Elem) {
		elem = getTypeSize(*t.Elem)
	}
	if elem == 0 {
		if t.Size > d.budget {
			return fmt.Errorf("%w: %v expands beyond the input size", ErrTruncatedInput, t)
		}
		return nil
	}
	if t.Size > n/elem {
		return fmt.Errorf("%w: %v needs more than %d bytes", ErrTruncatedInput, t, n)
	}
	return nil
}
