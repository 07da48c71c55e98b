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
	"go/token"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	bigT       = reflect.TypeOf(&big.Int{})
	derefbigT  = reflect.TypeOf(big.Int{})
	u256T      = reflect.TypeOf(&uint256.Int{})
	derefu256T = reflect.TypeOf(uint256.Int{})
	tokenT     = reflect.TypeOf(Token{})
	addressT   = reflect.TypeOf(common.Address{})
	bytesT     = reflect.TypeOf([]byte{})
	uint8T     = reflect.TypeOf(uint8(0))
	uint16T    = reflect.TypeOf(uint16(0))
	uint32T    = reflect.TypeOf(uint32(0))
	uint64T    = reflect.TypeOf(uint64(0))
	int8T      = reflect.TypeOf(int8(0))
	int16T     = reflect.TypeOf(int16(0))
	int32T     = reflect.TypeOf(int32(0))
	int64T     = reflect.TypeOf(int64(0))
)

// Tokenize converts a native Go value into a token shaped after t. Integers
// accept any Go integer kind, *big.Int and *uint256.Int; tuples accept structs
// (fields matched by `abi` tag or camel cased name, falling back to field
// order) and slices of values. Tokens are passed through after a shape check.
func Tokenize(t Type, value interface{}) (Token, error) {
	return tokenize(t, reflect.ValueOf(value))
}

func tokenize(t Type, v reflect.Value) (Token, error) {
	v = indirect(v)
	if !v.IsValid() || ((v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) && v.IsNil()) {
		return Token{}, fmt.Errorf("%w: nil value for %v", ErrUnexpectedTokenShape, t)
	}
	if v.Type() == tokenT {
		tok := v.Interface().(Token)
		if tok.Kind != t.T {
			return Token{}, fmt.Errorf("%w: %v token for %v", ErrUnexpectedTokenShape, tok.Kind, t)
		}
		return tok, nil
	}
	switch t.T {
	case AddressTy:
		if isByteArray(v.Type(), 20) {
			var addr common.Address
			reflect.Copy(reflect.ValueOf(addr[:]), v)
			return NewAddressToken(addr), nil
		}
	case BoolTy:
		if v.Kind() == reflect.Bool {
			return NewBoolToken(v.Bool()), nil
		}
	case IntTy, UintTy:
		if n, ok := toBig(v); ok {
			if err := checkIntegerBounds(t, n); err != nil {
				return Token{}, err
			}
			return Token{Kind: t.T, Int: n}, nil
		}
	case FixedBytesTy:
		if isByteArray(v.Type(), t.Size) || (isByteSlice(v.Type()) && v.Len() == t.Size) {
			return NewFixedBytesToken(byteValues(v)), nil
		}
	case BytesTy:
		if isByteSlice(v.Type()) || (v.Kind() == reflect.Array && isByteArray(v.Type(), v.Len())) {
			return NewBytesToken(byteValues(v)), nil
		}
	case StringTy:
		if v.Kind() == reflect.String {
			return NewStringToken(v.String()), nil
		}
	case SliceTy, ArrayTy:
		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			break
		}
		if t.T == ArrayTy && v.Len() != t.Size {
			return Token{}, fmt.Errorf("%w: %d elements for %v", ErrTupleArity, v.Len(), t)
		}
		elems := make([]Token, v.Len())
		for i := range elems {
			elem, err := tokenize(*t.Elem, v.Index(i))
			if err != nil {
				return Token{}, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = elem
		}
		if t.T == SliceTy {
			return NewSliceToken(elems...), nil
		}
		return NewArrayToken(elems...), nil
	case TupleTy:
		return tokenizeTuple(t, v)
	}
	return Token{}, fmt.Errorf("%w: cannot use %v as %v", ErrUnexpectedTokenShape, v.Type(), t)
}

func tokenizeTuple(t Type, v reflect.Value) (Token, error) {
	elems := make([]Token, len(t.TupleElems))
	switch v.Kind() {
	case reflect.Struct:
		fields, err := mapTupleFields(v.Type(), t.TupleRawNames)
		if err != nil {
			return Token{}, err
		}
		for i, elem := range t.TupleElems {
			if elems[i], err = tokenize(*elem, v.Field(fields[i])); err != nil {
				return Token{}, fmt.Errorf("field %s: %w", t.TupleRawNames[i], err)
			}
		}
	case reflect.Slice, reflect.Array:
		if v.Len() != len(t.TupleElems) {
			return Token{}, fmt.Errorf("%w: %d values for %v", ErrTupleArity, v.Len(), t)
		}
		for i, elem := range t.TupleElems {
			var err error
			if elems[i], err = tokenize(*elem, v.Index(i)); err != nil {
				return Token{}, fmt.Errorf("component %d: %w", i, err)
			}
		}
	default:
		return Token{}, fmt.Errorf("%w: cannot use %v as %v", ErrUnexpectedTokenShape, v.Type(), t)
	}
	return NewTupleToken(elems...), nil
}

// Detokenize converts a token into the canonical Go representation of t:
// common.Address, bool, native integers for 8/16/32/64 bit widths and *big.Int
// otherwise, [N]byte, []byte, string, slices, arrays and anonymous structs.
func Detokenize(t Type, tok Token) (interface{}, error) {
	dst := reflect.New(goType(t)).Elem()
	if err := assign(dst, t, tok); err != nil {
		return nil, err
	}
	return dst.Interface(), nil
}

// Copy assigns a token to the value pointed to by dst.
func Copy(dst interface{}, t Type, tok Token) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("abi: Copy(non-pointer %T)", dst)
	}
	return assign(v.Elem(), t, tok)
}

// assign sets dst to the value of tok. dst must be settable.
func assign(dst reflect.Value, t Type, tok Token) error {
	if tok.Kind != t.T {
		return fmt.Errorf("%w: %v token for %v", ErrUnexpectedTokenShape, tok.Kind, t)
	}
	switch {
	case dst.Kind() == reflect.Interface:
		v, err := Detokenize(t, tok)
		if err != nil {
			return err
		}
		val := reflect.ValueOf(v)
		if !val.Type().AssignableTo(dst.Type()) {
			return fmt.Errorf("abi: cannot unmarshal %v in to %v", val.Type(), dst.Type())
		}
		dst.Set(val)
		return nil
	case dst.Kind() == reflect.Ptr && dst.Type() != bigT && dst.Type() != u256T:
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return assign(dst.Elem(), t, tok)
	}
	switch t.T {
	case AddressTy:
		if isByteArray(dst.Type(), 20) {
			reflect.Copy(dst, reflect.ValueOf(tok.Address.Bytes()))
			return nil
		}
	case BoolTy:
		if dst.Kind() == reflect.Bool {
			dst.SetBool(tok.Bool)
			return nil
		}
	case IntTy, UintTy:
		return setInteger(dst, tok.Int)
	case FixedBytesTy:
		if isByteArray(dst.Type(), len(tok.Bytes)) {
			reflect.Copy(dst, reflect.ValueOf(tok.Bytes))
			return nil
		}
		if isByteSlice(dst.Type()) {
			dst.SetBytes(common.CopyBytes(tok.Bytes))
			return nil
		}
	case BytesTy:
		if isByteSlice(dst.Type()) {
			dst.SetBytes(common.CopyBytes(tok.Bytes))
			return nil
		}
	case StringTy:
		if dst.Kind() == reflect.String {
			dst.SetString(string(tok.Bytes))
			return nil
		}
	case SliceTy, ArrayTy:
		if t.T == ArrayTy && len(tok.Elems) != t.Size {
			return fmt.Errorf("%w: %d elements for %v", ErrTupleArity, len(tok.Elems), t)
		}
		return assignSequence(dst, repeat(*t.Elem, len(tok.Elems)), tok.Elems)
	case TupleTy:
		if len(tok.Elems) != len(t.TupleElems) {
			return fmt.Errorf("%w: %d components for %v", ErrTupleArity, len(tok.Elems), t)
		}
		if dst.Kind() != reflect.Struct {
			return assignSequence(dst, tupleTypes(t), tok.Elems)
		}
		fields, err := mapTupleFields(dst.Type(), t.TupleRawNames)
		if err != nil {
			return err
		}
		for i, elem := range t.TupleElems {
			if err := assign(dst.Field(fields[i]), *elem, tok.Elems[i]); err != nil {
				return fmt.Errorf("field %s: %w", t.TupleRawNames[i], err)
			}
		}
		return nil
	}
	return fmt.Errorf("abi: cannot unmarshal %v in to %v", t, dst.Type())
}

// assignSequence stores a list of tokens into a slice or an array.
func assignSequence(dst reflect.Value, types []Type, elems []Token) error {
	switch dst.Kind() {
	case reflect.Slice:
		slice := reflect.MakeSlice(dst.Type(), len(elems), len(elems))
		for i := range elems {
			if err := assign(slice.Index(i), types[i], elems[i]); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		dst.Set(slice)
		return nil
	case reflect.Array:
		if dst.Len() != len(elems) {
			return fmt.Errorf("%w: %d elements for %v", ErrTupleArity, len(elems), dst.Type())
		}
		for i := range elems {
			if err := assign(dst.Index(i), types[i], elems[i]); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		return nil
	}
	return fmt.Errorf("abi: cannot unmarshal sequence in to %v", dst.Type())
}

// setInteger stores n into any Go integer kind, *big.Int, big.Int or uint256.
func setInteger(dst reflect.Value, n *big.Int) error {
	if n == nil {
		return fmt.Errorf("%w: nil integer", ErrUnexpectedTokenShape)
	}
	switch dst.Type() {
	case bigT:
		dst.Set(reflect.ValueOf(new(big.Int).Set(n)))
		return nil
	case derefbigT:
		dst.Set(reflect.ValueOf(new(big.Int).Set(n)).Elem())
		return nil
	case u256T, derefu256T:
		u, overflow := uint256.FromBig(n)
		if overflow || n.Sign() < 0 {
			return fmt.Errorf("%w: %v in to %v", ErrIntegerOverflow, n, dst.Type())
		}
		if dst.Type() == u256T {
			dst.Set(reflect.ValueOf(u))
		} else {
			dst.Set(reflect.ValueOf(u).Elem())
		}
		return nil
	}
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !n.IsInt64() || dst.OverflowInt(n.Int64()) {
			return fmt.Errorf("%w: %v in to %v", ErrIntegerOverflow, n, dst.Type())
		}
		dst.SetInt(n.Int64())
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !n.IsUint64() || dst.OverflowUint(n.Uint64()) {
			return fmt.Errorf("%w: %v in to %v", ErrIntegerOverflow, n, dst.Type())
		}
		dst.SetUint(n.Uint64())
		return nil
	}
	return fmt.Errorf("abi: cannot unmarshal integer in to %v", dst.Type())
}

// goType returns the canonical Go type Detokenize produces for t.
func goType(t Type) reflect.Type {
	switch t.T {
	case AddressTy:
		return addressT
	case BoolTy:
		return reflect.TypeOf(false)
	case IntTy, UintTy:
		return reflectIntType(t.T == UintTy, t.Size)
	case FixedBytesTy:
		return reflect.ArrayOf(t.Size, uint8T)
	case BytesTy:
		return bytesT
	case StringTy:
		return reflect.TypeOf("")
	case SliceTy:
		return reflect.SliceOf(goType(*t.Elem))
	case ArrayTy:
		return reflect.ArrayOf(t.Size, goType(*t.Elem))
	case TupleTy:
		var (
			fields = make([]reflect.StructField, len(t.TupleElems))
			used   = make(map[string]bool)
		)
		for i, elem := range t.TupleElems {
			name := fieldName(t.TupleRawNames[i], i, used)
			used[name] = true
			fields[i] = reflect.StructField{Name: name, Type: goType(*elem)}
			if raw := t.TupleRawNames[i]; raw != "" {
				fields[i].Tag = reflect.StructTag(fmt.Sprintf(`abi:"%s"`, raw))
			}
		}
		return reflect.StructOf(fields)
	}
	return reflect.TypeOf((*interface{})(nil)).Elem()
}

// reflectIntType returns the reflect using the given size and
// unsignedness.
func reflectIntType(unsigned bool, size int) reflect.Type {
	if unsigned {
		switch size {
		case 8:
			return uint8T
		case 16:
			return uint16T
		case 32:
			return uint32T
		case 64:
			return uint64T
		}
	}
	switch size {
	case 8:
		return int8T
	case 16:
		return int16T
	case 32:
		return int32T
	case 64:
		return int64T
	}
	return bigT
}

// fieldName derives an exported Go field name from a raw component name.
func fieldName(raw string, index int, used map[string]bool) string {
	name := Capitalise(ToCamelCase(raw))
	if !token.IsIdentifier(name) || !token.IsExported(name) {
		name = fmt.Sprintf("Field%d", index)
	}
	for used[name] {
		name = fmt.Sprintf("%s%d", name, index)
	}
	return name
}

// Capitalise makes the first character of a string upper case, also removing
// any prefixing underscores from the variable names.
func Capitalise(input string) string {
	input = strings.TrimLeft(input, "_")
	if len(input) == 0 {
		return ""
	}
	return strings.ToUpper(input[:1]) + input[1:]
}

// fieldByArgName looks up the struct field an argument name maps to: an `abi`
// tag wins over the camel cased name.
func fieldByArgName(typ reflect.Type, name string) (int, bool) {
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if tag := f.Tag.Get("abi"); f.IsExported() && tag != "" && tag == name {
			return i, true
		}
	}
	want := Capitalise(ToCamelCase(name))
	if want == "" {
		return 0, false
	}
	for i := 0; i < typ.NumField(); i++ {
		if f := typ.Field(i); f.IsExported() && f.Name == want {
			return i, true
		}
	}
	return 0, false
}

// mapTupleFields resolves the struct field of every tuple component. When the
// names do not resolve and the struct has exactly one exported field per
// component, fields are matched by position.
func mapTupleFields(typ reflect.Type, names []string) ([]int, error) {
	var (
		fields = make([]int, len(names))
		seen   = make(map[int]bool)
		byName = true
	)
	for i, name := range names {
		idx, ok := fieldByArgName(typ, name)
		if !ok || seen[idx] {
			byName = false
			break
		}
		seen[idx] = true
		fields[i] = idx
	}
	if byName {
		return fields, nil
	}
	var exported []int
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).IsExported() {
			exported = append(exported, i)
		}
	}
	if len(exported) != len(names) {
		return nil, fmt.Errorf("abi: cannot map %d tuple components onto %v", len(names), typ)
	}
	return exported, nil
}

// indirect recursively dereferences the value until it either gets the value
// or finds a big.Int
func indirect(v reflect.Value) reflect.Value {
	for (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) && !v.IsNil() {
		if v.Type() == bigT || v.Type() == u256T {
			return v
		}
		v = v.Elem()
	}
	return v
}

// toBig converts any integer representation into a fresh big.Int.
func toBig(v reflect.Value) (*big.Int, bool) {
	switch v.Type() {
	case bigT:
		return new(big.Int).Set(v.Interface().(*big.Int)), true
	case derefbigT:
		n := v.Interface().(big.Int)
		return new(big.Int).Set(&n), true
	case u256T:
		return v.Interface().(*uint256.Int).ToBig(), true
	case derefu256T:
		n := v.Interface().(uint256.Int)
		return n.ToBig(), true
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(v.Uint()), true
	}
	return nil, false
}

func isByteArray(t reflect.Type, n int) bool {
	return t.Kind() == reflect.Array && t.Len() == n && t.Elem().Kind() == reflect.Uint8
}

func isByteSlice(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}

// byteValues copies the content of a byte slice or byte array.
func byteValues(v reflect.Value) []byte {
	out := make([]byte, v.Len())
	reflect.Copy(reflect.ValueOf(out), v)
	return out
}
