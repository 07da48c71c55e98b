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
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Kind tells the entry points of a contract apart.
type Kind int

const (
	Function Kind = iota
	Constructor
	Fallback
	Receive
	Event
	Error
)

func (k Kind) String() string {
	switch k {
	case Function:
		return "function"
	case Constructor:
		return "constructor"
	case Fallback:
		return "fallback"
	case Receive:
		return "receive"
	case Event:
		return "event"
	case Error:
		return "error"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// maxIndexed is the number of topic slots an event may use for arguments.
const maxIndexed = 3

// Signature describes one entry point of a contract: a function, a
// constructor, an event or a custom error. Signatures sharing a name but not
// an input list are overloads of each other.
type Signature struct {
	Name            string
	Kind            Kind
	Inputs          Arguments
	Outputs         Arguments
	StateMutability string // pure, view, nonpayable or payable; functions only
	Anonymous       bool   // events only
}

// NewFunction is a convenience constructor for a nonpayable function.
func NewFunction(name string, inputs, outputs Arguments) Signature {
	return Signature{Name: name, Kind: Function, Inputs: inputs, Outputs: outputs, StateMutability: "nonpayable"}
}

// NewEvent is a convenience constructor for an event.
func NewEvent(name string, anonymous bool, inputs Arguments) Signature {
	return Signature{Name: name, Kind: Event, Inputs: inputs, Anonymous: anonymous}
}

// NewError is a convenience constructor for a custom error.
func NewError(name string, inputs Arguments) Signature {
	return Signature{Name: name, Kind: Error, Inputs: inputs}
}

// Sig returns the canonical signature used to derive selectors and topics.
//
// Example
//
//	function foo(uint32 a, int b)    =    "foo(uint32,int256)"
//
// Please note that "int" is substitute for its canonical representation "int256"
func (s Signature) Sig() string {
	types := make([]string, len(s.Inputs))
	for i, input := range s.Inputs {
		types[i] = input.Type.String()
	}
	return fmt.Sprintf("%v(%v)", s.Name, strings.Join(types, ","))
}

// ID returns the hash of the canonical signature. For events this is the
// value of topic 0 unless the event is anonymous.
func (s Signature) ID() common.Hash {
	return s.IDWith(DefaultHasher)
}

// IDWith is ID computed with a chain specific hasher.
func (s Signature) IDWith(h Hasher) common.Hash {
	return h.Hash([]byte(s.Sig()))
}

// Selector returns the 4 byte call selector.
func (s Signature) Selector() [4]byte {
	return s.SelectorWith(DefaultHasher)
}

// SelectorWith is Selector computed with a chain specific hasher.
func (s Signature) SelectorWith(h Hasher) (sel [4]byte) {
	copy(sel[:], s.IDWith(h).Bytes())
	return sel
}

// IsConstant reports whether calling the function does not modify state.
func (s Signature) IsConstant() bool {
	return s.StateMutability == "view" || s.StateMutability == "pure"
}

// IsPayable reports whether the function accepts ether.
func (s Signature) IsPayable() bool {
	return s.StateMutability == "payable"
}

// Validate checks the signature for structural problems. Any error returned
// wraps ErrMalformedSignature.
func (s Signature) Validate() error {
	switch s.Kind {
	case Function, Event, Error:
		if s.Name == "" {
			return fmt.Errorf("%w: unnamed %v", ErrMalformedSignature, s.Kind)
		}
	case Constructor, Fallback, Receive:
	default:
		return fmt.Errorf("%w: unknown kind %v", ErrMalformedSignature, s.Kind)
	}
	indexed := 0
	for i, arg := range s.Inputs {
		if err := arg.Type.Validate(); err != nil {
			return fmt.Errorf("%s input %d: %w", s.Name, i, err)
		}
		if arg.Indexed {
			if s.Kind != Event {
				return fmt.Errorf("%w: %s input %d is indexed outside of an event", ErrMalformedSignature, s.Name, i)
			}
			indexed++
		}
	}
	limit := maxIndexed
	if s.Anonymous {
		limit++
	}
	if indexed > limit {
		return fmt.Errorf("%w: event %s has %d indexed arguments, at most %d allowed", ErrMalformedSignature, s.Name, indexed, limit)
	}
	for i, arg := range s.Outputs {
		if err := arg.Type.Validate(); err != nil {
			return fmt.Errorf("%s output %d: %w", s.Name, i, err)
		}
	}
	return nil
}

// String returns a human readable form of the signature, e.g.
//
//	function transfer(address to, uint256 value) returns (bool)
//	event Transfer(address indexed from, address indexed to, uint256 value)
func (s Signature) String() string {
	inputs := make([]string, len(s.Inputs))
	for i, input := range s.Inputs {
		inputs[i] = input.Type.String()
		if input.Indexed {
			inputs[i] += " indexed"
		}
		if input.Name != "" {
			inputs[i] += " " + input.Name
		}
	}
	var b strings.Builder
	b.WriteString(s.Kind.String())
	if s.Name != "" {
		b.WriteString(" " + s.Name)
	}
	fmt.Fprintf(&b, "(%s)", strings.Join(inputs, ", "))
	if s.Kind == Event && s.Anonymous {
		b.WriteString(" anonymous")
	}
	if s.StateMutability != "" && s.StateMutability != "nonpayable" {
		b.WriteString(" " + s.StateMutability)
	}
	if len(s.Outputs) > 0 {
		outputs := make([]string, len(s.Outputs))
		for i, output := range s.Outputs {
			outputs[i] = output.Type.String()
			if output.Name != "" {
				outputs[i] += " " + output.Name
			}
		}
		fmt.Fprintf(&b, " returns (%s)", strings.Join(outputs, ", "))
	}
	return b.String()
}

// EncodeCall packs the arguments and prepends the selector.
func (s Signature) EncodeCall(tokens []Token) ([]byte, error) {
	sel := s.Selector()
	packed, err := EncodeSelected(sel[:], s.Inputs.Types(), tokens)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Sig(), err)
	}
	return packed, nil
}

// DecodeCall strips and checks the selector, then strictly decodes the
// arguments.
func (s Signature) DecodeCall(data []byte) ([]Token, error) {
	sel := s.Selector()
	return DecodeSelected(sel[:], s.Inputs.Types(), data)
}

// DecodeOutput decodes the return data of a call.
func (s Signature) DecodeOutput(data []byte) ([]Token, error) {
	return Decode(s.Outputs.Types(), data)
}

// EncodeSelected packs the tokens behind the given selector.
func EncodeSelected(sel []byte, types []Type, tokens []Token) ([]byte, error) {
	packed, err := Encode(types, tokens)
	if err != nil {
		return nil, err
	}
	return append(common.CopyBytes(sel), packed...), nil
}

// DecodeSelected checks that data starts with sel and strictly decodes the
// remainder against types.
func DecodeSelected(sel []byte, types []Type, data []byte) ([]Token, error) {
	if len(data) < len(sel) {
		return nil, fmt.Errorf("%w: %d bytes cannot hold a selector", ErrTruncatedInput, len(data))
	}
	if !bytes.Equal(data[:len(sel)], sel) {
		return nil, fmt.Errorf("%w: selector %#x, want %#x", ErrSignatureMismatch, data[:len(sel)], sel)
	}
	return DecodeStrict(types, data[len(sel):])
}
