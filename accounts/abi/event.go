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

	"github.com/ethereum/go-ethereum/common"
)

// hashedTopic is the type an indexed argument decodes to when only the hash
// of its value is stored in the topic.
var hashedTopic = Type{T: FixedBytesTy, Size: 32}

// TopicType returns the type an indexed argument of type t is recovered as
// from its topic. Value types are stored verbatim; strings, bytes, arrays and
// tuples are stored as the keccak-256 hash of their preimage.
func TopicType(t Type) Type {
	if isValueType(t) {
		return t
	}
	return hashedTopic
}

// LogTypes returns the types of the tokens DecodeLog produces, in declaration
// order.
func (s Signature) LogTypes() []Type {
	types := make([]Type, len(s.Inputs))
	for i, input := range s.Inputs {
		types[i] = input.Type
		if input.Indexed {
			types[i] = TopicType(input.Type)
		}
	}
	return types
}

// DecodeLog decodes a log emitted by the event into one token per input, in
// the declaration order of the inputs. Indexed inputs with hashed topics come
// back as 32 byte tokens, see TopicType.
func (s Signature) DecodeLog(topics []common.Hash, data []byte) ([]Token, error) {
	return s.DecodeLogWith(DefaultHasher, topics, data)
}

// DecodeLogWith is DecodeLog checking topic 0 against an id computed with a
// chain specific hasher.
func (s Signature) DecodeLogWith(h Hasher, topics []common.Hash, data []byte) ([]Token, error) {
	if s.Kind != Event {
		return nil, fmt.Errorf("%w: %s is a %v, not an event", ErrMalformedSignature, s.Name, s.Kind)
	}
	indexed := s.Inputs.Indexed()
	want := len(indexed)
	if !s.Anonymous {
		want++
		if len(topics) > 0 && topics[0] != s.IDWith(h) {
			return nil, fmt.Errorf("%w: topic %x, want %x (%s)", ErrSignatureMismatch, topics[0], s.IDWith(h), s.Sig())
		}
	}
	if len(topics) != want {
		return nil, fmt.Errorf("%w: %d topics, %s wants %d", ErrTopicCountMismatch, len(topics), s.Sig(), want)
	}
	if !s.Anonymous {
		topics = topics[1:]
	}
	values, err := Decode(s.Inputs.NonIndexed().Types(), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s data: %w", ErrInvalidData, s.Name, err)
	}
	tokens := make([]Token, 0, len(s.Inputs))
	for _, input := range s.Inputs {
		if !input.Indexed {
			tokens = append(tokens, values[0])
			values = values[1:]
			continue
		}
		tok, err := newDecoder(topics[0][:]).decodeToken(TopicType(input.Type), topics[0][:])
		if err != nil {
			return nil, fmt.Errorf("%w: %s topic %s: %w", ErrInvalidData, s.Name, input.Name, err)
		}
		tokens = append(tokens, tok)
		topics = topics[1:]
	}
	return tokens, nil
}

// UnpackLog decodes a log into v, see Arguments.Copy for the destinations
// supported. Hashed indexed inputs are assigned as 32 byte values.
func (s Signature) UnpackLog(v interface{}, topics []common.Hash, data []byte) error {
	tokens, err := s.DecodeLog(topics, data)
	if err != nil {
		return err
	}
	args := make(Arguments, len(s.Inputs))
	for i, input := range s.Inputs {
		args[i] = Argument{Name: input.Name, Type: input.Type}
		if input.Indexed {
			args[i].Type = TopicType(input.Type)
		}
	}
	return args.Copy(v, tokens)
}

// EncodeLog builds the topics and data of a log emitting the event with the
// given tokens, one per input in declaration order. A hashed indexed input may
// be given either as its value or as its 32 byte topic.
func (s Signature) EncodeLog(tokens []Token) ([]common.Hash, []byte, error) {
	return s.EncodeLogWith(DefaultHasher, tokens)
}

// EncodeLogWith is EncodeLog computing topic 0 with a chain specific hasher.
func (s Signature) EncodeLogWith(h Hasher, tokens []Token) ([]common.Hash, []byte, error) {
	if s.Kind != Event {
		return nil, nil, fmt.Errorf("%w: %s is a %v, not an event", ErrMalformedSignature, s.Name, s.Kind)
	}
	if len(tokens) != len(s.Inputs) {
		return nil, nil, fmt.Errorf("%w: %d tokens for %s", ErrTupleArity, len(tokens), s.Sig())
	}
	var (
		topics []common.Hash
		types  []Type
		values []Token
	)
	if !s.Anonymous {
		topics = append(topics, s.IDWith(h))
	}
	for i, input := range s.Inputs {
		if !input.Indexed {
			types = append(types, input.Type)
			values = append(values, tokens[i])
			continue
		}
		topic, err := EncodeTopic(input.Type, tokens[i])
		if err != nil {
			return nil, nil, fmt.Errorf("%s topic %s: %w", s.Name, input.Name, err)
		}
		topics = append(topics, topic)
	}
	data, err := Encode(types, values)
	if err != nil {
		return nil, nil, fmt.Errorf("%s data: %w", s.Name, err)
	}
	return topics, data, nil
}

// EncodeTopic returns the topic an indexed argument of type t with the value
// tok is stored in. This is also what log filters match against.
func EncodeTopic(t Type, tok Token) (common.Hash, error) {
	if isValueType(t) {
		word, err := encodeToken(t, tok)
		if err != nil {
			return common.Hash{}, err
		}
		return common.BytesToHash(word), nil
	}
	if tok.Kind == FixedBytesTy && len(tok.Bytes) == 32 {
		return common.BytesToHash(tok.Bytes), nil
	}
	preimage, err := topicPreimage(t, tok, true)
	if err != nil {
		return common.Hash{}, err
	}
	return Keccak256(preimage), nil
}

// topicPreimage returns the bytes a hashed topic is computed over: the raw
// content of a top level string or bytes value, and for arrays and tuples the
// concatenation of their word padded elements without any length prefix.
func topicPreimage(t Type, tok Token, top bool) ([]byte, error) {
	if tok.Kind != t.T {
		return nil, fmt.Errorf("%w: %v token for %v", ErrUnexpectedTokenShape, tok.Kind, t)
	}
	switch t.T {
	case BytesTy, StringTy:
		if top {
			return common.CopyBytes(tok.Bytes), nil
		}
		return common.RightPadBytes(tok.Bytes, (len(tok.Bytes)+31)/32*32), nil
	case SliceTy, ArrayTy, TupleTy:
		var types []Type
		switch t.T {
		case SliceTy:
			types = repeat(*t.Elem, len(tok.Elems))
		case ArrayTy:
			types = repeat(*t.Elem, t.Size)
		default:
			types = tupleTypes(t)
		}
		if len(types) != len(tok.Elems) {
			return nil, fmt.Errorf("%w: %d elements for %v", ErrTupleArity, len(tok.Elems), t)
		}
		var out []byte
		for i, elem := range tok.Elems {
			b, err := topicPreimage(types[i], elem, false)
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
		return out, nil
	}
	return encodeToken(t, tok)
}
