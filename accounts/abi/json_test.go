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
	"strings"
	"testing"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/require"
)

const jsondata = `
[
	{ "type" : "constructor", "inputs" : [ { "name" : "owner", "type" : "address" } ] },
	{ "type" : "function", "name" : "balance", "constant" : true, "inputs" : [], "outputs" : [ { "name" : "", "type" : "uint256" } ] },
	{ "type" : "function", "name" : "send", "payable" : true, "inputs" : [ { "name" : "amount", "type" : "uint256" } ] },
	{ "type" : "function", "name" : "log", "stateMutability" : "nonpayable", "inputs" : [ { "name" : "message", "type" : "string" } ] },
	{ "type" : "function", "name" : "log", "stateMutability" : "nonpayable", "inputs" : [ { "name" : "message", "type" : "string" }, { "name" : "extra", "type" : "string" } ] },
	{ "type" : "function", "name" : "fill", "stateMutability" : "view", "inputs" : [
		{ "name" : "orders", "type" : "tuple[]", "internalType" : "struct Exchange.Order[]", "components" : [
			{ "name" : "maker", "type" : "address" },
			{ "name" : "amounts", "type" : "uint256[2]" },
			{ "name" : "", "type" : "tuple", "components" : [ { "name" : "", "type" : "bool" } ] }
		] }
	], "outputs" : [] },
	{ "type" : "event", "name" : "Filled", "anonymous" : false, "inputs" : [
		{ "name" : "maker", "type" : "address", "indexed" : true },
		{ "name" : "note", "type" : "string", "indexed" : false }
	] },
	{ "type" : "error", "name" : "InsufficientBalance", "inputs" : [ { "name" : "available", "type" : "uint256" }, { "name" : "required", "type" : "uint256" } ] },
	{ "type" : "fallback", "stateMutability" : "payable" },
	{ "type" : "receive", "stateMutability" : "payable" }
]`

func TestParseJSON(t *testing.T) {
	sigs, err := ParseJSON(strings.NewReader(jsondata))
	require.NoError(t, err)
	require.Len(t, sigs, 10)

	var kinds []string
	for _, sig := range sigs {
		kinds = append(kinds, sig.Kind.String())
	}
	require.Equal(t, []string{
		"constructor", "function", "function", "function", "function", "function",
		"event", "error", "fallback", "receive",
	}, kinds)

	require.Equal(t, "view", sigs[1].StateMutability)
	require.Equal(t, "payable", sigs[2].StateMutability)
	require.Equal(t, "nonpayable", sigs[0].StateMutability)
	require.Equal(t, "log(string)", sigs[3].Sig())
	require.Equal(t, "log(string,string)", sigs[4].Sig())

	fill := sigs[5]
	require.Equal(t, "fill((address,uint256[2],(bool))[])", fill.Sig())
	order := *fill.Inputs[0].Type.Elem
	require.Equal(t, "Order", order.TupleRawName)
	require.Equal(t, []string{"maker", "amounts", ""}, order.TupleRawNames)
	require.Equal(t, "", order.TupleElems[2].TupleRawName)

	require.True(t, sigs[6].Inputs[0].Indexed)
	require.False(t, sigs[6].Inputs[1].Indexed)
	require.Equal(t, "InsufficientBalance(uint256,uint256)", sigs[7].Sig())
}

func TestParseJSONErrors(t *testing.T) {
	for _, input := range []string{
		`{`,
		`[{ "type" : "function", "name" : "f", "inputs" : [ { "name" : "x", "type" : "uint7" } ] }]`,
		`[{ "type" : "function", "name" : "f", "inputs" : [ { "name" : "x", "type" : "function" } ] }]`,
		`[{ "type" : "function", "name" : "f", "inputs" : [ { "name" : "x", "type" : "fixed128x18" } ] }]`,
		`[{ "type" : "function", "name" : "f", "inputs" : [ { "name" : "x", "type" : "uint256[x]" } ] }]`,
		`[{ "type" : "function", "name" : "f", "inputs" : [ { "name" : "x", "type" : "uint256]" } ] }]`,
		`[{ "type" : "banana", "name" : "f" }]`,
		`[{ "type" : "function", "name" : "", "inputs" : [] }]`,
		`[{ "type" : "function", "name" : "f", "inputs" : [ { "name" : "x", "type" : "uint256", "indexed" : true } ] }]`,
	} {
		_, err := ParseJSON(strings.NewReader(input))
		require.ErrorIs(t, err, ErrMalformedSignature, input)
	}
}

func TestMarshalJSONRoundTrip(t *testing.T) {
	sigs, err := ParseJSON(strings.NewReader(jsondata))
	require.NoError(t, err)

	blob, err := MarshalJSON(sigs)
	require.NoError(t, err)
	again, err := ParseJSON(bytes.NewReader(blob))
	require.NoError(t, err)
	require.Len(t, again, len(sigs))

	for i := range sigs {
		require.Equal(t, sigs[i].String(), again[i].String())
		require.Equal(t, sigs[i].Kind, again[i].Kind)
	}
	order := *again[5].Inputs[0].Type.Elem
	require.Equal(t, "Order", order.TupleRawName)
	require.Equal(t, []string{"maker", "amounts", ""}, order.TupleRawNames)
	require.Contains(t, string(blob), `"internalType":"struct Order[]"`)
}

func TestFromGethType(t *testing.T) {
	for _, typ := range []string{"uint8", "int256", "address", "bytes", "string", "bytes32[3][]", "bool[]"} {
		gt, err := gethabi.NewType(typ, "", nil)
		require.NoError(t, err)
		ours, err := FromGethType(gt)
		require.NoError(t, err)
		require.Equal(t, gt.String(), ours.String())
	}
	gt, err := gethabi.NewType("tuple", "struct Pair", []gethabi.ArgumentMarshaling{
		{Name: "who", Type: "address"},
		{Name: "name", Type: "string"},
	})
	require.NoError(t, err)
	ours, err := FromGethType(gt)
	require.NoError(t, err)
	require.Equal(t, "(address,string)", ours.String())
	require.Equal(t, "Pair", ours.TupleRawName)
	require.Equal(t, []string{"who", "name"}, ours.TupleRawNames)
}
