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
	"fmt"
	"math"
	"strings"
)

// TypeKind enumerates the shapes an ABI type (and a Token) can take.
type TypeKind byte

// Type enumerator
const (
	IntTy TypeKind = iota
	UintTy
	BoolTy
	StringTy
	SliceTy
	ArrayTy
	TupleTy
	AddressTy
	FixedBytesTy
	BytesTy
)

func (k TypeKind) String() string {
	switch k {
	case IntTy:
		return "int"
	case UintTy:
		return "uint"
	case BoolTy:
		return "bool"
	case StringTy:
		return "string"
	case SliceTy:
		return "slice"
	case ArrayTy:
		return "array"
	case TupleTy:
		return "tuple"
	case AddressTy:
		return "address"
	case FixedBytesTy:
		return "fixedbytes"
	case BytesTy:
		return "bytes"
	}
	return fmt.Sprintf("kind(%d)", byte(k))
}

// Type is the reflection of the supported argument type.
type Type struct {
	Elem *Type // Element type of slices and fixed size arrays
	Size int   // Bit width of integers, byte count of fixed bytes, length of arrays
	T    TypeKind

	TupleRawName  string   // Raw struct name defined in the source, empty for anonymous tuples
	TupleElems    []*Type  // Type information of all tuple fields
	TupleRawNames []string // Raw field name of all tuple fields
}

// Field is a named tuple component.
type Field struct {
	Name string
	Type Type
}

// NewAddress returns the 20 byte address type.
func NewAddress() Type { return Type{T: AddressTy, Size: 20} }

// NewBool returns the boolean type.
func NewBool() Type { return Type{T: BoolTy} }

// NewString returns the dynamic UTF-8 string type.
func NewString() Type { return Type{T: StringTy} }

// NewBytes returns the dynamic byte string type.
func NewBytes() Type { return Type{T: BytesTy} }

// NewInt returns a signed integer type of the given bit width.
func NewInt(bits int) (Type, error) {
	t := Type{T: IntTy, Size: bits}
	return t, t.Validate()
}

// NewUint returns an unsigned integer type of the given bit width.
func NewUint(bits int) (Type, error) {
	t := Type{T: UintTy, Size: bits}
	return t, t.Validate()
}

// NewFixedBytes returns the bytesN type.
func NewFixedBytes(n int) (Type, error) {
	t := Type{T: FixedBytesTy, Size: n}
	return t, t.Validate()
}

// NewSlice returns the dynamically sized array type T[].
func NewSlice(elem Type) Type {
	return Type{T: SliceTy, Elem: &elem}
}

// NewArray returns the fixed size array type T[n].
func NewArray(elem Type, n int) Type {
	return Type{T: ArrayTy, Elem: &elem, Size: n}
}

// NewTuple returns a tuple of the given components. An empty name produces an
// anonymous tuple; a non-empty one marks the tuple as a named composite.
func NewTuple(name string, fields ...Field) Type {
	t := Type{
		T:             TupleTy,
		TupleRawName:  name,
		TupleElems:    make([]*Type, len(fields)),
		TupleRawNames: make([]string, len(fields)),
	}
	for i := range fields {
		elem := fields[i].Type
		t.TupleElems[i] = &elem
		t.TupleRawNames[i] = fields[i].Name
	}
	return t
}

// Fields returns the components of a tuple type.
func (t Type) Fields() []Field {
	fields := make([]Field, len(t.TupleElems))
	for i, elem := range t.TupleElems {
		fields[i] = Field{Name: t.TupleRawNames[i], Type: *elem}
	}
	return fields
}

// Validate checks the width and length invariants of the type tree.
func (t Type) Validate() error {
	switch t.T {
	case IntTy, UintTy:
		if t.Size <= 0 || t.Size > 256 || t.Size%8 != 0 {
			return fmt.Errorf("%w: invalid %s width %d", ErrMalformedSignature, t.T, t.Size)
		}
	case FixedBytesTy:
		if t.Size < 0 || t.Size > 32 {
			return fmt.Errorf("%w: invalid fixed bytes length %d", ErrMalformedSignature, t.Size)
		}
	case AddressTy, BoolTy, StringTy, BytesTy:
	case SliceTy, ArrayTy:
		if t.Elem == nil {
			return fmt.Errorf("%w: %s without element type", ErrMalformedSignature, t.T)
		}
		if t.T == ArrayTy && t.Size < 0 {
			return fmt.Errorf("%w: negative array length %d", ErrMalformedSignature, t.Size)
		}
		return t.Elem.Validate()
	case TupleTy:
		if len(t.TupleElems) != len(t.TupleRawNames) {
			return fmt.Errorf("%w: tuple has %d types for %d names", ErrMalformedSignature, len(t.TupleElems), len(t.TupleRawNames))
		}
		for i, elem := range t.TupleElems {
			if elem == nil {
				return fmt.Errorf("%w: tuple component %d without type", ErrMalformedSignature, i)
			}
			if err := elem.Validate(); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: unknown type kind %d", ErrMalformedSignature, byte(t.T))
	}
	return nil
}

// String returns the canonical representation of the type, as used in
// signatures. Tuple component names never appear in it.
func (t Type) String() string {
	switch t.T {
	case IntTy:
		return fmt.Sprintf("int%d", t.Size)
	case UintTy:
		return fmt.Sprintf("uint%d", t.Size)
	case BoolTy:
		return "bool"
	case AddressTy:
		return "address"
	case StringTy:
		return "string"
	case BytesTy:
		return "bytes"
	case FixedBytesTy:
		return fmt.Sprintf("bytes%d", t.Size)
	case SliceTy:
		return t.Elem.String() + "[]"
	case ArrayTy:
		return fmt.Sprintf("%v[%d]", t.Elem, t.Size)
	case TupleTy:
		elems := make([]string, len(t.TupleElems))
		for i, elem := range t.TupleElems {
			elems[i] = elem.String()
		}
		return "(" + strings.Join(elems, ",") + ")"
	}
	return fmt.Sprintf("<%v>", t.T)
}

// isDynamicType returns true if the type is dynamic.
// The following types are called "dynamic":
// * bytes
// * string
// * T[] for any T
// * T[k] for any dynamic T and any k >= 0
// * (T1,...,Tk) if Ti is dynamic for some 1 <= i <= k
func isDynamicType(t Type) bool {
	switch t.T {
	case StringTy, BytesTy, SliceTy:
		return true
	case ArrayTy:
		return isDynamicType(*t.Elem)
	case TupleTy:
		for _, elem := range t.TupleElems {
			if isDynamicType(*elem) {
				return true
			}
		}
	}
	return false
}

// IsDynamic reports whether the type is encoded out of line in a tail.
func (t Type) IsDynamic() bool { return isDynamicType(t) }

// isValueType reports whether the type fits a single word, which is the
// condition for an indexed event argument to be stored verbatim in a topic.
func isValueType(t Type) bool {
	switch t.T {
	case AddressTy, BoolTy, IntTy, UintTy, FixedBytesTy:
		return true
	}
	return false
}

// getTypeSize returns the size that this type needs to occupy in the head.
// Dynamic types always take a single offset word. Static arrays and tuples
// are laid out inline, so theirs is the sum of their components.
func getTypeSize(t Type) int {
	if isDynamicType(t) {
		return 32
	}
	switch t.T {
	case ArrayTy:
		elem := getTypeSize(*t.Elem)
		if elem != 0 && t.Size > maxTypeSize/elem {
			return maxTypeSize
		}
		return t.Size * elem
	case TupleTy:
		total := 0
		for _, elem := range t.TupleElems {
			total = min(total+getTypeSize(*elem), maxTypeSize)
		}
		return total
	}
	return 32
}

// maxTypeSize caps getTypeSize, so nested huge arrays saturate instead of
// overflowing.
const maxTypeSize = math.MaxInt32

// repeat returns the component list of an array of n elements.
func repeat(t Type, n int) []Type {
	types := make([]Type, n)
	for i := range types {
		types[i] = t
	}
	return types
}

func tupleTypes(t Type) []Type {
	types := make([]Type, len(t.TupleElems))
	for i, elem := range t.TupleElems {
		types[i] = *elem
	}
	return types
}
