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
	"reflect"
	"strings"
)

// Argument holds the name of the argument and the corresponding type.
// Types are used when packing and testing arguments.
type Argument struct {
	Name    string
	Type    Type
	Indexed bool // indexed is only used by events
}

type Arguments []Argument

// Types returns the type of every argument in order.
func (arguments Arguments) Types() []Type {
	types := make([]Type, len(arguments))
	for i, arg := range arguments {
		types[i] = arg.Type
	}
	return types
}

// NonIndexed returns the arguments with indexed arguments filtered out
func (arguments Arguments) NonIndexed() Arguments {
	var ret []Argument
	for _, arg := range arguments {
		if !arg.Indexed {
			ret = append(ret, arg)
		}
	}
	return ret
}

// Indexed returns the indexed arguments only.
func (arguments Arguments) Indexed() Arguments {
	var ret []Argument
	for _, arg := range arguments {
		if arg.Indexed {
			ret = append(ret, arg)
		}
	}
	return ret
}

// Tuple returns an anonymous tuple type with one component per argument.
func (arguments Arguments) Tuple() Type {
	fields := make([]Field, len(arguments))
	for i, arg := range arguments {
		fields[i] = Field{Name: arg.Name, Type: arg.Type}
	}
	return NewTuple("", fields...)
}

// Tokenize converts native Go values into tokens, one per argument.
func (arguments Arguments) Tokenize(args ...interface{}) ([]Token, error) {
	if len(args) != len(arguments) {
		return nil, fmt.Errorf("%w: argument count mismatch: %d for %d", ErrTupleArity, len(args), len(arguments))
	}
	tokens := make([]Token, len(args))
	for i, arg := range args {
		tok, err := Tokenize(arguments[i].Type, arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, arguments[i].Name, err)
		}
		tokens[i] = tok
	}
	return tokens, nil
}

// Pack performs the operation Go format -> Hexdata
func (arguments Arguments) Pack(args ...interface{}) ([]byte, error) {
	tokens, err := arguments.Tokenize(args...)
	if err != nil {
		return nil, err
	}
	return Encode(arguments.Types(), tokens)
}

// UnpackValues unpacks the data without supplying a destination, returning
// one canonical Go value per argument (see Detokenize).
func (arguments Arguments) UnpackValues(data []byte) ([]interface{}, error) {
	tokens, err := Decode(arguments.Types(), data)
	if err != nil {
		return nil, err
	}
	return arguments.Detokenize(tokens)
}

// Detokenize converts tokens back to canonical Go values.
func (arguments Arguments) Detokenize(tokens []Token) ([]interface{}, error) {
	if len(tokens) != len(arguments) {
		return nil, fmt.Errorf("%w: %d tokens for %d arguments", ErrTupleArity, len(tokens), len(arguments))
	}
	values := make([]interface{}, len(tokens))
	for i, tok := range tokens {
		v, err := Detokenize(arguments[i].Type, tok)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, arguments[i].Name, err)
		}
		values[i] = v
	}
	return values, nil
}

// Unpack decodes data into v, see Copy for the destinations supported.
func (arguments Arguments) Unpack(v interface{}, data []byte) error {
	tokens, err := Decode(arguments.Types(), data)
	if err != nil {
		return err
	}
	return arguments.Copy(v, tokens)
}

// Copy assigns decoded tokens to v, which must be a pointer. A single argument
// is assigned directly unless v points to a struct with a field named after
// it; multiple arguments are mapped onto struct fields by name or onto the
// elements of a slice or array.
func (arguments Arguments) Copy(v interface{}, tokens []Token) error {
	if len(tokens) != len(arguments) {
		return fmt.Errorf("%w: %d tokens for %d arguments", ErrTupleArity, len(tokens), len(arguments))
	}
	dst := reflect.ValueOf(v)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return fmt.Errorf("abi: Unpack(non-pointer %T)", v)
	}
	if len(arguments) == 0 {
		return nil
	}
	elem := dst.Elem()
	if len(arguments) == 1 && !arguments.mapsOnto(elem) {
		return assign(elem, arguments[0].Type, tokens[0])
	}
	return assign(elem, arguments.Tuple(), NewTupleToken(tokens...))
}

// mapsOnto reports whether a single argument should be stored into a field of
// dst rather than into dst itself.
func (arguments Arguments) mapsOnto(dst reflect.Value) bool {
	if dst.Kind() != reflect.Struct || arguments[0].Name == "" {
		return false
	}
	_, ok := fieldByArgName(dst.Type(), arguments[0].Name)
	return ok
}

// ToCamelCase converts an under-score string to a camel-case string
func ToCamelCase(input string) string {
	parts := strings.Split(input, "_")
	for i, s := range parts {
		if len(s) > 0 {
			parts[i] = strings.ToUpper(s[:1]) + s[1:]
		}
	}
	return strings.Join(parts, "")
}
