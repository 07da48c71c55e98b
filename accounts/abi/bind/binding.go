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
	"errors"
	"fmt"
	"strings"

	"github.com/ethbind/ethbind/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// BindingEntry is one resolved entry point of a contract: a function, an
// event, a custom error or the constructor.
type BindingEntry struct {
	Name       string        // Name as declared in the ABI
	Ident      string        // Disambiguated Go identifier, unique per kind within the contract
	Signature  abi.Signature // Parsed signature
	Selector   []byte        // 4 byte call or error selector, 32 byte topic 0 for events, nil for constructors
	Composites []*Composite  // Named tuples reachable from the parameters
	Inputs     []*Field      // Go fields of the input struct, indexed event fields typed as stored in topics
	Outputs    []*Field      // Go fields of the output struct, functions only
}

// inputTuple is the tuple type the input struct mirrors.
func (e *BindingEntry) inputTuple() abi.Type {
	return fieldTuple(e.Inputs)
}

// Tokenize converts v, a struct with one field per input or a slice with one
// value per input, into input tokens.
func (e *BindingEntry) Tokenize(v interface{}) ([]abi.Token, error) {
	tok, err := abi.Tokenize(e.inputTuple(), v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Signature.Sig(), err)
	}
	return tok.Elems, nil
}

// Encode packs the input tokens behind the selector.
func (e *BindingEntry) Encode(tokens []abi.Token) ([]byte, error) {
	packed, err := abi.EncodeSelected(e.Selector, e.Signature.Inputs.Types(), tokens)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Signature.Sig(), err)
	}
	return packed, nil
}

// Decode checks the selector and strictly decodes the inputs.
func (e *BindingEntry) Decode(data []byte) ([]abi.Token, error) {
	return abi.DecodeSelected(e.Selector, e.Signature.Inputs.Types(), data)
}

// Copy assigns decoded input tokens to the struct dst points to.
func (e *BindingEntry) Copy(dst interface{}, tokens []abi.Token) error {
	return abi.Copy(dst, e.inputTuple(), abi.NewTupleToken(tokens...))
}

// CopyOutputs decodes the return data of a call into dst. With a single
// output dst points to its value, otherwise to a struct with one field per
// output.
func (e *BindingEntry) CopyOutputs(dst interface{}, data []byte) error {
	tokens, err := e.Signature.DecodeOutput(data)
	if err != nil {
		return err
	}
	switch len(e.Outputs) {
	case 0:
		return nil
	case 1:
		return abi.Copy(dst, e.Outputs[0].Type, tokens[0])
	}
	return abi.Copy(dst, fieldTuple(e.Outputs), abi.NewTupleToken(tokens...))
}

// fieldTuple builds an anonymous tuple over the given fields.
func fieldTuple(fields []*Field) abi.Type {
	comps := make([]abi.Field, len(fields))
	for i, f := range fields {
		comps[i] = abi.Field{Name: f.Raw, Type: f.Type}
	}
	return abi.NewTuple("", comps...)
}

// entryIndex keeps binding entries in declaration order next to an
// identifier lookup.
type entryIndex struct {
	Entries []*BindingEntry
	byIdent map[string]*BindingEntry
}

func newEntryIndex(entries []*BindingEntry) entryIndex {
	idx := entryIndex{Entries: entries, byIdent: make(map[string]*BindingEntry, len(entries))}
	for _, entry := range entries {
		idx.byIdent[entry.Ident] = entry
	}
	return idx
}

// Entry returns the entry bound to ident, or nil.
func (idx entryIndex) Entry(ident string) *BindingEntry {
	return idx.byIdent[ident]
}

func (idx entryIndex) lookup(ident string) (*BindingEntry, error) {
	entry := idx.byIdent[ident]
	if entry == nil {
		return nil, fmt.Errorf("bind: no entry named %q", ident)
	}
	return entry, nil
}

// selectorUnion is an ordered set of selector prefixed payload decoders.
type selectorUnion struct {
	entryIndex
}

// Encode packs the tokens as a payload of the entry bound to ident.
func (u *selectorUnion) Encode(ident string, tokens []abi.Token) ([]byte, error) {
	entry, err := u.lookup(ident)
	if err != nil {
		return nil, err
	}
	return entry.Encode(tokens)
}

// Pack tokenizes v for the entry bound to ident and encodes it.
func (u *selectorUnion) Pack(ident string, v interface{}) ([]byte, error) {
	entry, err := u.lookup(ident)
	if err != nil {
		return nil, err
	}
	tokens, err := entry.Tokenize(v)
	if err != nil {
		return nil, err
	}
	return entry.Encode(tokens)
}

// Decode tries every entry in declaration order and returns the first one
// that strictly decodes data. Overloads that can decode the same bytes are
// resolved by that order.
func (u *selectorUnion) Decode(data []byte) (*BindingEntry, []abi.Token, error) {
	for _, entry := range u.Entries {
		tokens, err := entry.Decode(data)
		if err == nil {
			return entry, tokens, nil
		}
	}
	return nil, nil, fmt.Errorf("%w: %d bytes match none of %d entries", abi.ErrInvalidData, len(data), len(u.Entries))
}

// CallUnion is the umbrella over every function of a contract.
type CallUnion struct {
	selectorUnion
}

// ErrorSet is the umbrella over every custom error of a contract.
type ErrorSet struct {
	selectorUnion
}

// Reason renders revert data as text: a custom error of the contract first,
// then the standard Error(string) and Panic(uint256) payloads.
func (s *ErrorSet) Reason(data []byte) (string, error) {
	entry, tokens, err := s.Decode(data)
	if err != nil {
		return abi.UnpackRevert(data)
	}
	values := make([]string, len(tokens))
	for i, tok := range tokens {
		values[i] = tok.String()
	}
	return fmt.Sprintf("%s(%s)", entry.Name, strings.Join(values, ", ")), nil
}

// EventSet is the umbrella over every event of a contract.
type EventSet struct {
	entryIndex
	hasher abi.Hasher
}

// Encode builds the topics and data of a log emitted by the event bound to
// ident.
func (s *EventSet) Encode(ident string, tokens []abi.Token) ([]common.Hash, []byte, error) {
	entry, err := s.lookup(ident)
	if err != nil {
		return nil, nil, err
	}
	return entry.Signature.EncodeLogWith(s.hasher, tokens)
}

// Decode tries every event in declaration order and returns the first one
// the log decodes as. Tokens are returned in declaration order, indexed
// dynamic values as their topic hashes.
func (s *EventSet) Decode(topics []common.Hash, data []byte) (*BindingEntry, []abi.Token, error) {
	var errs []error
	for _, entry := range s.Entries {
		tokens, err := entry.Signature.DecodeLogWith(s.hasher, topics, data)
		if err == nil {
			return entry, tokens, nil
		}
		if !errors.Is(err, abi.ErrSignatureMismatch) {
			errs = append(errs, fmt.Errorf("%s: %w", entry.Ident, err))
		}
	}
	if len(errs) > 0 {
		return nil, nil, errors.Join(errs...)
	}
	return nil, nil, fmt.Errorf("%w: log matches none of %d events", abi.ErrSignatureMismatch, len(s.Entries))
}
