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
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	lru "github.com/hashicorp/golang-lru"
)

// signatureCacheSize is the number of canonical signatures whose hash the
// default hasher remembers.
const signatureCacheSize = 4096

// Hasher turns canonical signature bytes into the 32 byte identifier that
// selectors and event topics are cut from.
type Hasher interface {
	Hash(data []byte) common.Hash
}

// HasherFunc adapts a plain function to the Hasher interface.
type HasherFunc func(data []byte) common.Hash

// Hash implements Hasher.
func (f HasherFunc) Hash(data []byte) common.Hash { return f(data) }

// DefaultHasher is a memoizing keccak-256 hasher, safe for concurrent use.
var DefaultHasher = NewCachingHasher(HasherFunc(func(data []byte) common.Hash {
	return Keccak256(data)
}), signatureCacheSize)

// Keccak256 calculates and returns the Keccak256 hash of the input data.
func Keccak256(data ...[]byte) common.Hash {
	return crypto.Keccak256Hash(data...)
}

// cachingHasher remembers the hashes of recently seen inputs. Signature
// hashing is a pure function, so entries never need invalidation.
type cachingHasher struct {
	inner Hasher
	cache *lru.Cache
}

// NewCachingHasher wraps inner with an LRU cache of the given size. A size
// that the cache rejects disables memoization.
func NewCachingHasher(inner Hasher, size int) Hasher {
	cache, err := lru.New(size)
	if err != nil {
		return inner
	}
	return &cachingHasher{inner: inner, cache: cache}
}

// Hash implements Hasher.
func (h *cachingHasher) Hash(data []byte) common.Hash {
	key := string(data)
	if cached, ok := h.cache.Get(key); ok {
		return cached.(common.Hash)
	}
	hash := h.inner.Hash(data)
	h.cache.Add(key, hash)
	return hash
}
