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
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestABIContainer(t *testing.T) {
	abi, err := JSON(strings.NewReader(jsondata))
	require.NoError(t, err)

	require.NotNil(t, abi.Constructor)
	require.NotNil(t, abi.Fallback)
	require.NotNil(t, abi.Receive)
	require.Len(t, abi.Methods, 5)
	require.Len(t, abi.Events, 1)
	require.Len(t, abi.Errors, 1)
	require.Len(t, abi.Signatures(), 10)
	require.Len(t, abi.MethodsByName("log"), 2)

	sel := abi.Methods[1].Selector()
	m, err := abi.MethodBySelector(append(sel[:], 1, 2, 3))
	require.NoError(t, err)
	require.Equal(t, "send", m.Name)

	_, err = abi.MethodBySelector([]byte{1, 2})
	require.ErrorIs(t, err, ErrTruncatedInput)
	_, err = abi.MethodBySelector([]byte{1, 2, 3, 4})
	require.ErrorIs(t, err, ErrSignatureMismatch)

	ev, err := abi.EventByID(crypto.Keccak256Hash([]byte("Filled(address,string)")))
	require.NoError(t, err)
	require.Equal(t, "Filled", ev.Name)
	_, err = abi.EventByID(common.Hash{})
	require.ErrorIs(t, err, ErrSignatureMismatch)

	errSel := crypto.Keccak256([]byte("InsufficientBalance(uint256,uint256)"))[:4]
	custom, err := abi.ErrorBySelector(errSel)
	require.NoError(t, err)
	require.Equal(t, "InsufficientBalance", custom.Name)
}

func TestABIPack(t *testing.T) {
	abi, err := JSON(strings.NewReader(jsondata))
	require.NoError(t, err)

	// Overloads resolve to the first one the arguments fit.
	one, err := abi.Pack("log", "a")
	require.NoError(t, err)
	require.Equal(t, crypto.Keccak256([]byte("log(string)"))[:4], one[:4])

	two, err := abi.Pack("log", "a", "b")
	require.NoError(t, err)
	require.Equal(t, crypto.Keccak256([]byte("log(string,string)"))[:4], two[:4])

	_, err = abi.Pack("log", 1)
	require.Error(t, err)
	_, err = abi.Pack("missing")
	require.Error(t, err)

	ctor, err := abi.Pack("", testAddr)
	require.NoError(t, err)
	require.Equal(t, hexData(word(0xff)), ctor)

	values, err := abi.Unpack("balance", hexData(word(12)))
	require.NoError(t, err)
	require.Equal(t, big.NewInt(12).String(), values[0].(*big.Int).String())
}

func TestABIDuplicateConstructor(t *testing.T) {
	_, err := New([]Signature{{Kind: Constructor}, {Kind: Constructor}})
	require.ErrorIs(t, err, ErrMalformedSignature)

	abi, err := New(nil)
	require.NoError(t, err)
	packed, err := abi.Pack("")
	require.NoError(t, err)
	require.Empty(t, packed)
	_, err = abi.Pack("", 1)
	require.ErrorIs(t, err, ErrTupleArity)
}

func TestCachingHasher(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
	)
	counting := HasherFunc(func(data []byte) common.Hash {
		mu.Lock()
		calls++
		mu.Unlock()
		return Keccak256(data)
	})
	h := NewCachingHasher(counting, 16)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, crypto.Keccak256Hash([]byte("f()")), h.Hash([]byte("f()")))
			}
		}()
	}
	wg.Wait()
	require.LessOrEqual(t, calls, 8)

	// A cache that cannot be built falls back to the plain hasher.
	require.Equal(t, counting.Hash([]byte("x")), NewCachingHasher(counting, 0).Hash([]byte("x")))

	// Custom hashers drive selectors and event ids.
	zero := HasherFunc(func([]byte) common.Hash { return common.Hash{0xaa} })
	sig := NewFunction("f", nil, nil)
	require.Equal(t, [4]byte{0xaa}, sig.SelectorWith(zero))
	require.Equal(t, common.Hash{0xaa}, sig.IDWith(zero))
}
