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

package bind

import (
	"math/big"
	"testing"

	"github.com/ethbind/ethbind/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

const tokenABI = `[
	{ "type" : "event", "name" : "Transfer", "anonymous" : false, "inputs" : [
		{ "name" : "from", "type" : "address", "indexed" : true },
		{ "name" : "to", "type" : "address", "indexed" : true },
		{ "name" : "value", "type" : "uint256", "indexed" : false }
	] },
	{ "type" : "event", "name" : "Note", "anonymous" : false, "inputs" : [
		{ "name" : "tag", "type" : "string", "indexed" : true },
		{ "name" : "data", "type" : "bytes", "indexed" : false }
	] },
	{ "type" : "event", "name" : "Raw", "anonymous" : true, "inputs" : [
		{ "name" : "x", "type" : "uint256", "indexed" : true }
	] },
	{ "type" : "error", "name" : "InsufficientBalance", "inputs" : [
		{ "name" : "available", "type" : "uint256" },
		{ "name" : "required", "type" : "uint256" }
	] }
]`

func TestEventSet(t *testing.T) {
	t.Parallel()
	contract, err := ParseContract("Token", tokenABI)
	require.NoError(t, err)
	events := contract.Events

	var (
		from = common.HexToAddress("0x1111111111111111111111111111111111111111")
		to   = common.HexToAddress("0x2222222222222222222222222222222222222222")
	)
	tokens := []abi.Token{abi.NewAddressToken(from), abi.NewAddressToken(to), abi.NewUintToken(big.NewInt(1000))}
	topics, data, err := events.Encode("Transfer", tokens)
	require.NoError(t, err)
	require.Len(t, topics, 3)
	require.Equal(t, crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)")), topics[0])
	require.Equal(t, common.BytesToHash(from[:]), topics[1])

	entry, decoded, err := events.Decode(topics, data)
	require.NoError(t, err)
	require.Equal(t, "Transfer", entry.Ident)
	require.True(t, abi.TokensEqual(tokens, decoded))

	var transfer struct {
		From  common.Address
		To    common.Address
		Value *big.Int
	}
	require.NoError(t, entry.Copy(&transfer, decoded))
	require.Equal(t, to, transfer.To)
	require.Equal(t, int64(1000), transfer.Value.Int64())

	// Indexed strings are stored as their hash.
	note := events.Entry("Note")
	require.NotNil(t, note)
	require.Equal(t, abi.FixedBytesTy, note.Inputs[0].Type.T)
	topics, data, err = events.Encode("Note", []abi.Token{abi.NewStringToken("hi"), abi.NewBytesToken([]byte{1, 2})})
	require.NoError(t, err)
	require.Equal(t, crypto.Keccak256Hash([]byte("hi")), topics[1])
	entry, decoded, err = events.Decode(topics, data)
	require.NoError(t, err)
	require.Equal(t, "Note", entry.Ident)
	require.Equal(t, crypto.Keccak256([]byte("hi")), decoded[0].Bytes)
	require.Equal(t, []byte{1, 2}, decoded[1].Bytes)

	// Anonymous events carry no topic 0 and are matched by shape.
	topics, data, err = events.Encode("Raw", []abi.Token{abi.NewUintToken(big.NewInt(5))})
	require.NoError(t, err)
	require.Equal(t, []common.Hash{common.BigToHash(big.NewInt(5))}, topics)
	entry, _, err = events.Decode(topics, data)
	require.NoError(t, err)
	require.Equal(t, "Raw", entry.Ident)

	// Transfer with a topic missing.
	_, _, err = events.Decode([]common.Hash{crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)")), {}}, nil)
	require.ErrorIs(t, err, abi.ErrTopicCountMismatch)

	_, _, err = events.Encode("Missing", nil)
	require.Error(t, err)
}

func TestEventSetUnknownTopic(t *testing.T) {
	t.Parallel()
	contract, err := ParseContract("Token", tokenABI)
	require.NoError(t, err)
	// Drop the anonymous event, it would claim any single topic log.
	sigs := contract.ABI.Signatures()
	var named []abi.Signature
	for _, sig := range sigs {
		if !sig.Anonymous {
			named = append(named, sig)
		}
	}
	batch, err := Generate([]ContractABI{{Name: "Token", Signatures: named}})
	require.NoError(t, err)
	_, _, err = batch.Contracts[0].Events.Decode([]common.Hash{{0x01}, {}, {}}, nil)
	require.ErrorIs(t, err, abi.ErrSignatureMismatch)
}

func TestErrorSet(t *testing.T) {
	t.Parallel()
	contract, err := ParseContract("Token", tokenABI)
	require.NoError(t, err)
	errs := contract.Errors

	data, err := errs.Pack("InsufficientBalance", []interface{}{big.NewInt(1), big.NewInt(2)})
	require.NoError(t, err)
	require.Equal(t, selector("InsufficientBalance(uint256,uint256)"), data[:4])

	entry, tokens, err := errs.Decode(data)
	require.NoError(t, err)
	require.Equal(t, "InsufficientBalance", entry.Ident)
	require.Len(t, tokens, 2)

	reason, err := errs.Reason(data)
	require.NoError(t, err)
	require.Equal(t, "InsufficientBalance(uint(1), uint(2))", reason)

	// Standard reverts are not custom errors but still have a reason.
	std, err := abi.EncodeSelected(selector("Error(string)"), []abi.Type{abi.NewString()}, []abi.Token{abi.NewStringToken("boom")})
	require.NoError(t, err)
	_, _, err = errs.Decode(std)
	require.ErrorIs(t, err, abi.ErrInvalidData)
	reason, err = errs.Reason(std)
	require.NoError(t, err)
	require.Equal(t, "boom", reason)

	_, err = errs.Reason([]byte{0xde, 0xad})
	require.ErrorIs(t, err, abi.ErrInvalidData)
}
