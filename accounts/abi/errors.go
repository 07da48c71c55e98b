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

import "errors"

var (
	// ErrMalformedSignature is returned for type descriptors or signatures
	// that violate the ABI invariants, e.g. uint7 or an indexed method input.
	ErrMalformedSignature = errors.New("abi: malformed signature")

	// ErrTupleArity is returned when the number of values differs from the
	// number of types they are paired with.
	ErrTupleArity = errors.New("abi: tuple arity mismatch")

	// ErrUnexpectedTokenShape is returned when a token does not have the shape
	// of the type it is paired with.
	ErrUnexpectedTokenShape = errors.New("abi: unexpected token shape")

	// ErrTruncatedInput is returned when the input ends before a value does.
	ErrTruncatedInput = errors.New("abi: truncated input")

	// ErrOffsetOutOfRange is returned for tail offsets that are misaligned or
	// point outside of the input.
	ErrOffsetOutOfRange = errors.New("abi: offset out of range")

	// ErrIntegerOverflow is returned when a number does not fit the declared
	// integer width.
	ErrIntegerOverflow = errors.New("abi: integer overflow")

	// ErrSignatureMismatch is returned when the first topic of a log is not
	// the id of the event it is decoded as.
	ErrSignatureMismatch = errors.New("abi: event signature mismatch")

	// ErrTopicCountMismatch is returned when a log carries a different number
	// of topics than the event has indexed arguments.
	ErrTopicCountMismatch = errors.New("abi: topic count mismatch")

	// ErrInvalidData is returned when a payload does not decode as any of the
	// candidates it was matched against.
	ErrInvalidData = errors.New("abi: invalid data")
)
