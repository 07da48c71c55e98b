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
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestMethodSig(t *testing.T) {
	getValue := NewFunction("getValue", Arguments{{Type: mustType("uint256")}, {Type: NewAddress()}}, nil)
	require.Equal(t, "getValue(uint256,address)", getValue.Sig())

	sel := getValue.Selector()
	require.Equal(t, crypto.Keccak256([]byte("getValue(uint256,address)"))[:4], sel[:])

	transfer := NewFunction("transfer", Arguments{{Name: "to", Type: NewAddress()}, {Name: "value", Type: mustType("uint256")}}, nil)
	sel = transfer.Selector()
	require.Equal(t, "a9059cbb", hex.EncodeToString(sel[:]))

	event := NewEvent("Transfer", false, Arguments{
		{Name: "from", Type: NewAddress(), Indexed: true},
		{Name: "to", Type: NewAddress(), Indexed: true},
		{Name: "value", Type: mustType("uint256")},
	})
	require.Equal(t, common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"), event.ID())

	nested := NewFunction("fill", Arguments{{Name: "orders", Type: NewSlice(pair)}, {Name: "ids", Type: mustType("uint8[2]")}}, nil)
	require.Equal(t, "fill((address,string)[],uint8[2])", nested.Sig())
}

func TestMethodString(t *testing.T) {
	balanceOf := NewFunction("balanceOf", Arguments{{Name: "owner", Type: NewAddress()}}, Arguments{{Type: mustType("uint256")}})
	balanceOf.StateMutability = "view"
	require.Equal(t, "function balanceOf(address owner) view returns (uint256)", balanceOf.String())
	require.True(t, balanceOf.IsConstant())
	require.False(t, balanceOf.IsPayable())

	event := NewEvent("ValueChanged", true, Arguments{
		{Name: "author", Type: NewAddress(), Indexed: true},
		{Name: "oldValue", Type: NewString()},
	})
	require.Equal(t, "event ValueChanged(address indexed author, string oldValue) anonymous", event.String())

	ctor := Signature{Kind: Constructor, StateMutability: "payable", Inputs: Arguments{{Type: NewBool()}}}
	require.Equal(t, "constructor(bool) payable", ctor.String())
}

func TestMethodEmptyCall(t *testing.T) {
	getValue := NewFunction("getValue", nil, nil)
	data, err := getValue.EncodeCall(nil)
	require.NoError(t, err)
	require.Len(t, data, 4)
	require.Equal(t, crypto.Keccak256([]byte("getValue()"))[:4], data)

	tokens, err := getValue.DecodeCall(data)
	require.NoError(t, err)
	require.Empty(t, tokens)

	tokens, err = Decode([]Type{}, []byte{})
	require.NoError(t, err)
	require.Empty(t, tokens)
}

func TestMethodCallRoundTrip(t *testing.T) {
	setValue := NewFunction("setValue", Arguments{{Name: "value", Type: NewString()}, {Name: "to", Type: NewAddress()}}, nil)
	args := []Token{NewStringToken("hello"), NewAddressToken(testAddr)}
	data, err := setValue.EncodeCall(args)
	require.NoError(t, err)

	tokens, err := setValue.DecodeCall(data)
	require.NoError(t, err)
	require.True(t, TokensEqual(args, tokens))

	_, err = setValue.DecodeCall(data[:3])
	require.ErrorIs(t, err, ErrTruncatedInput)

	other := append([]byte{0, 0, 0, 0}, data[4:]...)
	_, err = setValue.DecodeCall(other)
	require.ErrorIs(t, err, ErrSignatureMismatch)

	_, err = setValue.DecodeCall(append(data, 0))
	require.ErrorIs(t, err, ErrInvalidData)

	_, err = setValue.EncodeCall(args[:1])
	require.ErrorIs(t, err, ErrTupleArity)
}

func TestMethodDecodeOutput(t *testing.T) {
	get := NewFunction("get", nil, Arguments{{Type: mustType("uint256")}, {Type: NewBool()}})
	tokens, err := get.DecodeOutput(hexData(word(42), word(1)))
	require.NoError(t, err)
	require.True(t, TokensEqual([]Token{uintTok(42), NewBoolToken(true)}, tokens))
}

func TestSignatureValidate(t *testing.T) {
	indexed := func(n int) Arguments {
		args := make(Arguments, n)
		for i := range args {
			args[i] = Argument{Type: mustType("uint256"), Indexed: true}
		}
		return args
	}
	for _, tt := range []struct {
		name string
		sig  Signature
		ok   bool
	}{
		{"plain function", NewFunction("f", Arguments{{Type: NewBool()}}, nil), true},
		{"unnamed function", NewFunction("", nil, nil), false},
		{"unnamed constructor", Signature{Kind: Constructor}, true},
		{"indexed method input", NewFunction("f", indexed(1), nil), false},
		{"three indexed", NewEvent("E", false, indexed(3)), true},
		{"four indexed", NewEvent("E", false, indexed(4)), false},
		{"four indexed anonymous", NewEvent("E", true, indexed(4)), true},
		{"five indexed anonymous", NewEvent("E", true, indexed(5)), false},
		{"bad input type", NewFunction("f", Arguments{{Type: Type{T: UintTy, Size: 3}}}, nil), false},
		{"bad output type", NewFunction("f", nil, Arguments{{Type: Type{T: FixedBytesTy, Size: 40}}}), false},
		{"unknown kind", Signature{Name: "x", Kind: Kind(42)}, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sig.Validate()
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrMalformedSignature)
			}
		})
	}
}
