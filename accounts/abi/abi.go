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
	"errors"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
)

// The ABI holds information about a contract's context and available
// invocable methods. Unlike a name keyed map, every list keeps the order the
// entries were declared in, which is what overload resolution depends on.
type ABI struct {
	Constructor *Signature
	Fallback    *Signature
	Receive     *Signature
	Methods     []Signature
	Events      []Signature
	Errors      []Signature

	entries []Signature
}

// New groups signatures by kind. Duplicate constructors, fallbacks or receive
// functions are rejected.
func New(sigs []Signature) (*ABI, error) {
	abi := &ABI{entries: sigs}
	for i := range sigs {
		sig := sigs[i]
		switch sig.Kind {
		case Function:
			abi.Methods = append(abi.Methods, sig)
		case Event:
			abi.Events = append(abi.Events, sig)
		case Error:
			abi.Errors = append(abi.Errors, sig)
		case Constructor, Fallback, Receive:
			var slot **Signature
			switch sig.Kind {
			case Constructor:
				slot = &abi.Constructor
			case Fallback:
				slot = &abi.Fallback
			default:
				slot = &abi.Receive
			}
			if *slot != nil {
				return nil, fmt.Errorf("%w: only a single %v is allowed", ErrMalformedSignature, sig.Kind)
			}
			*slot = &sig
		default:
			return nil, fmt.Errorf("%w: unknown kind %v", ErrMalformedSignature, sig.Kind)
		}
	}
	return abi, nil
}

// JSON returns a parsed ABI interface and error if it failed.
func JSON(reader io.Reader) (*ABI, error) {
	sigs, err := ParseJSON(reader)
	if err != nil {
		return nil, err
	}
	return New(sigs)
}

// Signatures returns every entry in declaration order.
func (abi *ABI) Signatures() []Signature {
	return abi.entries
}

// MethodsByName returns the overloads of a function, in declaration order.
func (abi *ABI) MethodsByName(name string) []Signature {
	var out []Signature
	for _, m := range abi.Methods {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// Pack the given method name to conform the ABI. Method call's data will
// consist of method_id, args0, arg1, ... argN. An empty name packs the
// constructor arguments without a selector. An overloaded name resolves to
// the first overload the arguments can be converted to.
func (abi *ABI) Pack(name string, args ...interface{}) ([]byte, error) {
	if name == "" {
		if abi.Constructor == nil {
			return abi.packConstructor(args)
		}
		return abi.Constructor.Inputs.Pack(args...)
	}
	overloads := abi.MethodsByName(name)
	if len(overloads) == 0 {
		return nil, fmt.Errorf("method '%s' not found", name)
	}
	var errs []error
	for _, m := range overloads {
		tokens, err := m.Inputs.Tokenize(args...)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m.Sig(), err))
			continue
		}
		return m.EncodeCall(tokens)
	}
	return nil, errors.Join(errs...)
}

func (abi *ABI) packConstructor(args []interface{}) ([]byte, error) {
	if len(args) > 0 {
		return nil, fmt.Errorf("%w: constructor takes no arguments", ErrTupleArity)
	}
	return nil, nil
}

// Unpack decodes the return data of the first function with the given name.
func (abi *ABI) Unpack(name string, data []byte) ([]interface{}, error) {
	overloads := abi.MethodsByName(name)
	if len(overloads) == 0 {
		return nil, fmt.Errorf("method '%s' not found", name)
	}
	return overloads[0].Outputs.UnpackValues(data)
}

// MethodBySelector looks up a method by the 4-byte id,
// returns nil if none found.
func (abi *ABI) MethodBySelector(sigdata []byte) (*Signature, error) {
	if len(sigdata) < 4 {
		return nil, fmt.Errorf("%w: data too short (%d bytes) for abi method lookup", ErrTruncatedInput, len(sigdata))
	}
	for i := range abi.Methods {
		sel := abi.Methods[i].Selector()
		if bytes.Equal(sel[:], sigdata[:4]) {
			return &abi.Methods[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no method with id: %#x", ErrSignatureMismatch, sigdata[:4])
}

// EventByID looks an event up by its topic hash in the
// ABI and returns nil if none found.
func (abi *ABI) EventByID(topic common.Hash) (*Signature, error) {
	for i := range abi.Events {
		if !abi.Events[i].Anonymous && abi.Events[i].ID() == topic {
			return &abi.Events[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no event with id: %s", ErrSignatureMismatch, topic.Hex())
}

// ErrorBySelector looks up a custom error by the 4-byte id of its revert data.
func (abi *ABI) ErrorBySelector(sigdata []byte) (*Signature, error) {
	if len(sigdata) < 4 {
		return nil, fmt.Errorf("%w: data too short (%d bytes) for abi error lookup", ErrTruncatedInput, len(sigdata))
	}
	for i := range abi.Errors {
		sel := abi.Errors[i].Selector()
		if bytes.Equal(sel[:], sigdata[:4]) {
			return &abi.Errors[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no error with id: %#x", ErrSignatureMismatch, sigdata[:4])
}
