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
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
)

const structPrefix = "struct "

// jsonEntry is one record of a JSON ABI description.
type jsonEntry struct {
	Type            string
	Name            string
	Inputs          []gethabi.ArgumentMarshaling
	Outputs         []gethabi.ArgumentMarshaling
	StateMutability string
	Anonymous       bool

	// Legacy mutability markers predating stateMutability.
	Constant bool
	Payable  bool
}

// ParseJSON reads a JSON ABI description and returns its entries in
// declaration order. Every entry is validated; any structural problem is
// reported as ErrMalformedSignature.
func ParseJSON(r io.Reader) ([]Signature, error) {
	var entries []jsonEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSignature, err)
	}
	sigs := make([]Signature, 0, len(entries))
	for i, entry := range entries {
		sig, err := entry.signature()
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, entry.Name, err)
		}
		if err := sig.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, entry.Name, err)
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

func (entry jsonEntry) signature() (Signature, error) {
	sig := Signature{Name: entry.Name, Anonymous: entry.Anonymous}
	switch entry.Type {
	case "function", "":
		sig.Kind = Function
	case "constructor":
		sig.Kind = Constructor
	case "fallback":
		sig.Kind = Fallback
	case "receive":
		sig.Kind = Receive
	case "event":
		sig.Kind = Event
	case "error":
		sig.Kind = Error
	default:
		return Signature{}, fmt.Errorf("%w: unknown entry type %q", ErrMalformedSignature, entry.Type)
	}
	switch sig.Kind {
	case Function, Constructor, Fallback, Receive:
		sig.StateMutability = entry.StateMutability
		if sig.StateMutability == "" {
			switch {
			case entry.Constant:
				sig.StateMutability = "view"
			case entry.Payable:
				sig.StateMutability = "payable"
			default:
				sig.StateMutability = "nonpayable"
			}
		}
	}
	var err error
	if sig.Inputs, err = parseArguments(entry.Inputs); err != nil {
		return Signature{}, err
	}
	if sig.Outputs, err = parseArguments(entry.Outputs); err != nil {
		return Signature{}, err
	}
	return sig, nil
}

func parseArguments(marshalled []gethabi.ArgumentMarshaling) (Arguments, error) {
	args := make(Arguments, len(marshalled))
	for i, arg := range marshalled {
		t, err := parseType(arg.Type, arg.InternalType, arg.Components)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, arg.Name, err)
		}
		args[i] = Argument{Name: arg.Name, Type: t, Indexed: arg.Indexed}
	}
	return args, nil
}

// parseType resolves a JSON type string. Array suffixes and tuples are
// unwrapped here so that anonymous tuple components survive; elementary type
// names are handed to go-ethereum's parser.
func parseType(typ, internalType string, components []gethabi.ArgumentMarshaling) (Type, error) {
	if strings.HasSuffix(typ, "]") {
		i := strings.LastIndex(typ, "[")
		if i < 0 {
			return Type{}, fmt.Errorf("%w: unbalanced brackets in %q", ErrMalformedSignature, typ)
		}
		subInternal := internalType
		if j := strings.LastIndex(internalType, "["); j >= 0 {
			subInternal = internalType[:j]
		}
		elem, err := parseType(typ[:i], subInternal, components)
		if err != nil {
			return Type{}, err
		}
		dim := typ[i+1 : len(typ)-1]
		if dim == "" {
			return NewSlice(elem), nil
		}
		n, err := strconv.Atoi(dim)
		if err != nil || n < 0 {
			return Type{}, fmt.Errorf("%w: invalid array length in %q", ErrMalformedSignature, typ)
		}
		return NewArray(elem, n), nil
	}
	if typ == "tuple" {
		fields := make([]Field, len(components))
		for i, c := range components {
			t, err := parseType(c.Type, c.InternalType, c.Components)
			if err != nil {
				return Type{}, fmt.Errorf("component %d (%s): %w", i, c.Name, err)
			}
			fields[i] = Field{Name: c.Name, Type: t}
		}
		return NewTuple(structName(internalType), fields...), nil
	}
	gt, err := gethabi.NewType(typ, "", nil)
	if err != nil {
		return Type{}, fmt.Errorf("%w: %w", ErrMalformedSignature, err)
	}
	return FromGethType(gt)
}

// structName extracts the surface name of a struct from its internal type,
// e.g. "struct Exchange.Order" yields "Order".
func structName(internalType string) string {
	if !strings.HasPrefix(internalType, structPrefix) {
		return ""
	}
	name := internalType[len(structPrefix):]
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// FromGethType converts a go-ethereum type descriptor. Hash, function and
// fixed point types have no counterpart and are rejected.
func FromGethType(gt gethabi.Type) (Type, error) {
	switch gt.T {
	case gethabi.IntTy:
		return NewInt(gt.Size)
	case gethabi.UintTy:
		return NewUint(gt.Size)
	case gethabi.BoolTy:
		return NewBool(), nil
	case gethabi.StringTy:
		return NewString(), nil
	case gethabi.AddressTy:
		return NewAddress(), nil
	case gethabi.BytesTy:
		return NewBytes(), nil
	case gethabi.FixedBytesTy:
		return NewFixedBytes(gt.Size)
	case gethabi.SliceTy, gethabi.ArrayTy:
		elem, err := FromGethType(*gt.Elem)
		if err != nil {
			return Type{}, err
		}
		if gt.T == gethabi.SliceTy {
			return NewSlice(elem), nil
		}
		return NewArray(elem, gt.Size), nil
	case gethabi.TupleTy:
		fields := make([]Field, len(gt.TupleElems))
		for i, elem := range gt.TupleElems {
			t, err := FromGethType(*elem)
			if err != nil {
				return Type{}, err
			}
			fields[i] = Field{Name: gt.TupleRawNames[i], Type: t}
		}
		return NewTuple(gt.TupleRawName, fields...), nil
	}
	return Type{}, fmt.Errorf("%w: unsupported type %s", ErrMalformedSignature, gt.String())
}

type jsonArgumentOut struct {
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	InternalType string            `json:"internalType,omitempty"`
	Components   []jsonArgumentOut `json:"components,omitempty"`
	Indexed      bool              `json:"indexed,omitempty"`
}

type jsonEntryOut struct {
	Type            string             `json:"type"`
	Name            string             `json:"name,omitempty"`
	Inputs          []jsonArgumentOut  `json:"inputs"`
	Outputs         *[]jsonArgumentOut `json:"outputs,omitempty"`
	StateMutability string             `json:"stateMutability,omitempty"`
	Anonymous       *bool              `json:"anonymous,omitempty"`
}

// MarshalJSON renders signatures as a JSON ABI description that ParseJSON
// reads back into the same signatures.
func MarshalJSON(sigs []Signature) ([]byte, error) {
	out := make([]jsonEntryOut, len(sigs))
	for i, sig := range sigs {
		out[i] = sig.jsonEntry()
	}
	return json.Marshal(out)
}

// MarshalJSON implements json.Marshaler.
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.jsonEntry())
}

func (s Signature) jsonEntry() jsonEntryOut {
	entry := jsonEntryOut{
		Type:   s.Kind.String(),
		Name:   s.Name,
		Inputs: marshalArguments(s.Inputs),
	}
	switch s.Kind {
	case Function:
		outputs := marshalArguments(s.Outputs)
		entry.Outputs = &outputs
		entry.StateMutability = s.StateMutability
	case Constructor, Fallback, Receive:
		entry.StateMutability = s.StateMutability
	case Event:
		anonymous := s.Anonymous
		entry.Anonymous = &anonymous
	}
	return entry
}

func marshalArguments(args Arguments) []jsonArgumentOut {
	out := make([]jsonArgumentOut, len(args))
	for i, arg := range args {
		out[i] = marshalArgument(arg.Name, arg.Type)
		out[i].Indexed = arg.Indexed
	}
	return out
}

func marshalArgument(name string, t Type) jsonArgumentOut {
	var (
		base   = t
		suffix string
	)
	for base.T == SliceTy || base.T == ArrayTy {
		if base.T == SliceTy {
			suffix = "[]" + suffix
		} else {
			suffix = fmt.Sprintf("[%d]", base.Size) + suffix
		}
		base = *base.Elem
	}
	if base.T != TupleTy {
		return jsonArgumentOut{Name: name, Type: t.String()}
	}
	arg := jsonArgumentOut{Name: name, Type: "tuple" + suffix, Components: make([]jsonArgumentOut, len(base.TupleElems))}
	if base.TupleRawName != "" {
		arg.InternalType = structPrefix + base.TupleRawName + suffix
	}
	for i, elem := range base.TupleElems {
		arg.Components[i] = marshalArgument(base.TupleRawNames[i], *elem)
	}
	return arg
}
