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
	"math/big"
	"reflect"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestTokenizeNative(t *testing.T) {
	for _, tt := range []struct {
		typ   Type
		value interface{}
		want  Token
	}{
		{mustType("uint8"), uint8(7), uintTok(7)},
		{mustType("uint256"), 7, uintTok(7)},
		{mustType("uint256"), big.NewInt(9), uintTok(9)},
		{mustType("uint256"), *big.NewInt(9), uintTok(9)},
		{mustType("uint256"), uint256.NewInt(11), uintTok(11)},
		{mustType("int32"), int32(-5), intTok(-5)},
		{NewBool(), true, NewBoolToken(true)},
		{NewAddress(), testAddr, NewAddressToken(testAddr)},
		{NewAddress(), [20]byte(testAddr), NewAddressToken(testAddr)},
		{mustType("bytes2"), [2]byte{1, 2}, NewFixedBytesToken([]byte{1, 2})},
		{mustType("bytes2"), []byte{1, 2}, NewFixedBytesToken([]byte{1, 2})},
		{NewBytes(), []byte{3}, NewBytesToken([]byte{3})},
		{NewString(), "hi", NewStringToken("hi")},
		{mustType("uint16[]"), []uint16{1, 2}, NewSliceToken(uintTok(1), uintTok(2))},
		{mustType("uint16[2]"), [2]uint16{1, 2}, NewArrayToken(uintTok(1), uintTok(2))},
		{pair, struct {
			Who  common.Address
			Name string
		}{testAddr, "x"}, NewTupleToken(NewAddressToken(testAddr), NewStringToken("x"))},
		{pair, &struct {
			A common.Address `abi:"who"`
			B string         `abi:"name"`
		}{testAddr, "x"}, NewTupleToken(NewAddressToken(testAddr), NewStringToken("x"))},
		{pair, struct {
			First  common.Address
			Second string
		}{testAddr, "x"}, NewTupleToken(NewAddressToken(testAddr), NewStringToken("x"))},
		{pair, []interface{}{testAddr, "x"}, NewTupleToken(NewAddressToken(testAddr), NewStringToken("x"))},
		{NewBool(), NewBoolToken(false), NewBoolToken(false)},
	} {
		tok, err := Tokenize(tt.typ, tt.value)
		require.NoError(t, err, "%v from %T", tt.typ, tt.value)
		require.True(t, tt.want.Equal(tok), "%v from %T: have %v", tt.typ, tt.value, tok)
	}
}

func TestTokenizeErrors(t *testing.T) {
	for _, tt := range []struct {
		typ   Type
		value interface{}
		err   error
	}{
		{mustType("uint8"), 256, ErrIntegerOverflow},
		{mustType("uint256"), -1, ErrIntegerOverflow},
		{mustType("uint256"), "1", ErrUnexpectedTokenShape},
		{mustType("uint256"), (*big.Int)(nil), ErrUnexpectedTokenShape},
		{mustType("bytes2"), []byte{1}, ErrUnexpectedTokenShape},
		{mustType("uint8[2]"), []uint8{1}, ErrTupleArity},
		{pair, []interface{}{testAddr}, ErrTupleArity},
		{NewBool(), uintTok(1), ErrUnexpectedTokenShape},
		{NewBool(), nil, ErrUnexpectedTokenShape},
		{NewBytes(), 42, ErrUnexpectedTokenShape},
		{NewBytes(), true, ErrUnexpectedTokenShape},
	} {
		_, err := Tokenize(tt.typ, tt.value)
		require.ErrorIs(t, err, tt.err, "%v from %T", tt.typ, tt.value)
	}
}

func TestDetokenizeTypes(t *testing.T) {
	for _, tt := range []struct {
		typ  Type
		tok  Token
		want interface{}
	}{
		{mustType("uint8"), uintTok(7), uint8(7)},
		{mustType("uint64"), uintTok(7), uint64(7)},
		{mustType("int16"), intTok(-7), int16(-7)},
		{NewBool(), NewBoolToken(true), true},
		{NewAddress(), NewAddressToken(testAddr), testAddr},
		{mustType("bytes2"), NewFixedBytesToken([]byte{1, 2}), [2]byte{1, 2}},
		{NewBytes(), NewBytesToken([]byte{3}), []byte{3}},
		{NewString(), NewStringToken("hi"), "hi"},
		{mustType("uint8[]"), NewSliceToken(uintTok(1)), []uint8{1}},
		{mustType("bool[2]"), NewArrayToken(NewBoolToken(true), NewBoolToken(false)), [2]bool{true, false}},
	} {
		v, err := Detokenize(tt.typ, tt.tok)
		require.NoError(t, err, tt.typ.String())
		require.Equal(t, tt.want, v, tt.typ.String())
	}

	v, err := Detokenize(mustType("uint24"), uintTok(70000))
	require.NoError(t, err)
	require.Equal(t, "70000", v.(*big.Int).String())

	v, err = Detokenize(pair, NewTupleToken(NewAddressToken(testAddr), NewStringToken("x")))
	require.NoError(t, err)
	rv := reflect.ValueOf(v)
	require.Equal(t, "Who", rv.Type().Field(0).Name)
	require.Equal(t, "who", rv.Type().Field(0).Tag.Get("abi"))
	require.Equal(t, testAddr, rv.Field(0).Interface())
	require.Equal(t, "x", rv.Field(1).Interface())

	anon := NewTuple("", Field{"", NewBool()}, Field{"_", NewBool()}, Field{"1x", NewBool()})
	v, err = Detokenize(anon, NewTupleToken(NewBoolToken(true), NewBoolToken(false), NewBoolToken(true)))
	require.NoError(t, err)
	typ := reflect.TypeOf(v)
	require.Equal(t, "Field0", typ.Field(0).Name)
	require.Equal(t, "Field1", typ.Field(1).Name)
	require.Equal(t, "Field2", typ.Field(2).Name)
}

func TestCopyConversions(t *testing.T) {
	var small uint8
	require.ErrorIs(t, Copy(&small, mustType("uint256"), uintTok(300)), ErrIntegerOverflow)
	require.NoError(t, Copy(&small, mustType("uint256"), uintTok(200)))
	require.Equal(t, uint8(200), small)

	var u *uint256.Int
	require.NoError(t, Copy(&u, mustType("uint256"), uintTok(5)))
	require.Equal(t, uint64(5), u.Uint64())

	var neg uint256.Int
	require.ErrorIs(t, Copy(&neg, mustType("int256"), intTok(-1)), ErrIntegerOverflow)

	var ptr *string
	require.NoError(t, Copy(&ptr, NewString(), NewStringToken("via pointer")))
	require.Equal(t, "via pointer", *ptr)

	var any interface{}
	require.NoError(t, Copy(&any, mustType("uint32"), uintTok(3)))
	require.Equal(t, uint32(3), any)

	var fixed [3]uint8
	require.ErrorIs(t, Copy(&fixed, mustType("uint8[2]"), NewArrayToken(uintTok(1), uintTok(2))), ErrTupleArity)

	var wrong string
	require.Error(t, Copy(&wrong, NewBool(), NewBoolToken(true)))
	require.Error(t, Copy(wrong, NewString(), NewStringToken("")))
}

func TestCopySkipsUnexportedTags(t *testing.T) {
	var out struct {
		x uint64 `abi:"x"`
		Y uint64
	}
	typ := NewTuple("", Field{"x", mustType("uint256")})
	require.NoError(t, Copy(&out, typ, NewTupleToken(uintTok(5))))
	require.Equal(t, uint64(5), out.Y)
	require.Zero(t, out.x)
}

func TestArgumentsPackUnpack(t *testing.T) {
	args := Arguments{
		{Name: "owner", Type: NewAddress()},
		{Name: "amount", Type: mustType("uint256")},
		{Name: "memo_text", Type: NewString()},
	}
	packed, err := args.Pack(testAddr, big.NewInt(1000), "thanks")
	require.NoError(t, err)

	values, err := args.UnpackValues(packed)
	require.NoError(t, err)
	require.Len(t, values, 3)
	require.Equal(t, testAddr, values[0])
	require.Equal(t, int64(1000), values[1].(*big.Int).Int64())
	require.Equal(t, "thanks", values[2])

	var out struct {
		Owner    common.Address
		Amount   *big.Int
		MemoText string
	}
	require.NoError(t, args.Unpack(&out, packed))
	require.Equal(t, testAddr, out.Owner)
	require.Equal(t, int64(1000), out.Amount.Int64())
	require.Equal(t, "thanks", out.MemoText)

	var list []interface{}
	require.NoError(t, args.Unpack(&list, packed))
	require.Len(t, list, 3)

	_, err = args.Pack(testAddr)
	require.ErrorIs(t, err, ErrTupleArity)
}

func TestArgumentsSingleCopy(t *testing.T) {
	args := Arguments{{Name: "value", Type: mustType("uint64")}}
	packed, err := args.Pack(uint64(77))
	require.NoError(t, err)

	var direct uint64
	require.NoError(t, args.Unpack(&direct, packed))
	require.Equal(t, uint64(77), direct)

	var wrapped struct{ Value uint64 }
	require.NoError(t, args.Unpack(&wrapped, packed))
	require.Equal(t, uint64(77), wrapped.Value)

	// A single tuple argument fills the struct itself.
	tupleArgs := Arguments{{Name: "p", Type: pair}}
	packed, err = tupleArgs.Pack([]interface{}{testAddr, "n"})
	require.NoError(t, err)
	var p struct {
		Who  common.Address
		Name string
	}
	require.NoError(t, tupleArgs.Unpack(&p, packed))
	require.Equal(t, "n", p.Name)

	require.NoError(t, Arguments{}.Unpack(&p, nil))
}

func TestToCamelCase(t *testing.T) {
	for input, want := range map[string]string{
		"memo_text": "MemoText",
		"_value":    "Value",
		"already":   "Already",
		"":          "",
		"a__b":      "AB",
	} {
		require.Equal(t, want, ToCamelCase(input), input)
	}
}
