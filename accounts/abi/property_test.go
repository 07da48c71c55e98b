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
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"pgregory.net/rapid"
)

// drawType draws a well formed type, nesting at most depth levels.
func drawType(t *rapid.T, depth int) Type {
	max := 9
	if depth == 0 {
		max = 6
	}
	switch rapid.IntRange(0, max).Draw(t, "kind") {
	case 0:
		return NewAddress()
	case 1:
		return NewBool()
	case 2:
		return Type{T: IntTy, Size: 8 * rapid.IntRange(1, 32).Draw(t, "bits")}
	case 3:
		return Type{T: UintTy, Size: 8 * rapid.IntRange(1, 32).Draw(t, "bits")}
	case 4:
		return Type{T: FixedBytesTy, Size: rapid.IntRange(0, 32).Draw(t, "size")}
	case 5:
		return NewBytes()
	case 6:
		return NewString()
	case 7:
		return NewSlice(drawType(t, depth-1))
	case 8:
		return NewArray(drawType(t, depth-1), rapid.IntRange(0, 3).Draw(t, "len"))
	default:
		fields := make([]Field, rapid.IntRange(0, 3).Draw(t, "fields"))
		for i := range fields {
			fields[i] = Field{Name: fmt.Sprintf("f%d", i), Type: drawType(t, depth-1)}
		}
		return NewTuple("", fields...)
	}
}

// drawToken draws a value of the given type.
func drawToken(t *rapid.T, typ Type) Token {
	switch typ.T {
	case AddressTy:
		return NewAddressToken(common.BytesToAddress(rapid.SliceOfN(rapid.Byte(), 20, 20).Draw(t, "address")))
	case BoolTy:
		return NewBoolToken(rapid.Bool().Draw(t, "bool"))
	case UintTy:
		raw := rapid.SliceOfN(rapid.Byte(), typ.Size/8, typ.Size/8).Draw(t, "uint")
		return NewUintToken(new(big.Int).SetBytes(raw))
	case IntTy:
		raw := rapid.SliceOfN(rapid.Byte(), typ.Size/8, typ.Size/8).Draw(t, "int")
		v := new(big.Int).SetBytes(raw)
		v.Sub(v, new(big.Int).Lsh(big1, uint(typ.Size-1)))
		return NewIntToken(v)
	case FixedBytesTy:
		return NewFixedBytesToken(rapid.SliceOfN(rapid.Byte(), typ.Size, typ.Size).Draw(t, "fixed"))
	case BytesTy:
		return NewBytesToken(rapid.SliceOfN(rapid.Byte(), 0, 70).Draw(t, "bytes"))
	case StringTy:
		return NewStringToken(rapid.String().Draw(t, "string"))
	case SliceTy:
		elems := make([]Token, rapid.IntRange(0, 3).Draw(t, "n"))
		for i := range elems {
			elems[i] = drawToken(t, *typ.Elem)
		}
		return NewSliceToken(elems...)
	case ArrayTy:
		elems := make([]Token, typ.Size)
		for i := range elems {
			elems[i] = drawToken(t, *typ.Elem)
		}
		return NewArrayToken(elems...)
	}
	elems := make([]Token, len(typ.TupleElems))
	for i, elem := range typ.TupleElems {
		elems[i] = drawToken(t, *elem)
	}
	return NewTupleToken(elems...)
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var (
			types  = make([]Type, rapid.IntRange(0, 4).Draw(t, "arity"))
			tokens = make([]Token, len(types))
		)
		for i := range types {
			types[i] = drawType(t, 2)
			tokens[i] = drawToken(t, types[i])
		}
		enc, err := Encode(types, tokens)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if len(enc)%32 != 0 {
			t.Fatalf("encoding of %d bytes is not word aligned", len(enc))
		}
		dec, err := DecodeStrict(types, enc)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !TokensEqual(tokens, dec) {
			t.Fatalf("round trip mismatch:\nhave %s\nwant %s", spew.Sdump(dec), spew.Sdump(tokens))
		}
	})
}

func TestNativeRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		typ := drawType(t, 2)
		tok := drawToken(t, typ)
		native, err := Detokenize(typ, tok)
		if err != nil {
			t.Fatalf("detokenize %v: %v", typ, err)
		}
		back, err := Tokenize(typ, native)
		if err != nil {
			t.Fatalf("tokenize %v: %v", typ, err)
		}
		if !back.Equal(tok) {
			t.Fatalf("native round trip mismatch for %v:\nhave %v\nwant %v", typ, back, tok)
		}
	})
}

func TestSelectorProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		inputs := make(Arguments, rapid.IntRange(0, 3).Draw(t, "inputs"))
		for i := range inputs {
			inputs[i] = Argument{Name: fmt.Sprintf("arg%d", i), Type: drawType(t, 1)}
		}
		name := rapid.StringMatching(`[a-zA-Z_][a-zA-Z0-9_]{0,12}`).Draw(t, "name")
		a := NewFunction(name, inputs, nil)

		// Argument names never influence the selector.
		renamed := make(Arguments, len(inputs))
		for i, input := range inputs {
			renamed[i] = Argument{Name: "other" + input.Name, Type: input.Type}
		}
		b := NewFunction(name, renamed, nil)

		selA, selB := a.Selector(), b.Selector()
		if selA != selB {
			t.Fatalf("selectors differ for %s", a.Sig())
		}
		if !bytes.Equal(selA[:], crypto.Keccak256([]byte(a.Sig()))[:4]) {
			t.Fatalf("selector of %s is not the hash prefix", a.Sig())
		}
		if a.ID() != crypto.Keccak256Hash([]byte(a.Sig())) {
			t.Fatalf("id of %s is not the signature hash", a.Sig())
		}
	})
}
