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

import "fmt"

var (
	revertError = NewError("Error", Arguments{{Name: "message", Type: NewString()}})
	panicError  = NewError("Panic", Arguments{{Name: "code", Type: Type{T: UintTy, Size: 256}}})
)

// panicReasons map is for readable panic codes
// see this linkage for the details
// https://docs.soliditylang.org/en/v0.8.21/control-structures.html#panic-via-assert-and-error-via-require
var panicReasons = map[uint64]string{
	0x00: "generic panic",
	0x01: "assert(false)",
	0x11: "arithmetic underflow or overflow",
	0x12: "division or modulo by zero",
	0x21: "enum overflow",
	0x22: "invalid encoded storage byte array accessed",
	0x31: "out-of-bounds array access; popping on an empty array",
	0x32: "out-of-bounds access of an array or bytesN",
	0x41: "out of memory",
	0x51: "uninitialized function",
}

// UnpackRevert resolves the abi-encoded revert reason. According to the solidity
// spec https://solidity.readthedocs.io/en/latest/control-structures.html#revert,
// the provided revert reason is abi-encoded as if it were a call to function
// `Error(string)` or `Panic(uint256)`.
func UnpackRevert(data []byte) (string, error) {
	if len(data) < 4 {
		return "", fmt.Errorf("%w: %d bytes of revert data", ErrInvalidData, len(data))
	}
	if tokens, err := revertError.DecodeCall(data); err == nil {
		return string(tokens[0].Bytes), nil
	}
	tokens, err := panicError.DecodeCall(data)
	if err != nil {
		return "", fmt.Errorf("%w: not an Error(string) or Panic(uint256) revert", ErrInvalidData)
	}
	code := tokens[0].Int
	if code.IsUint64() {
		if reason, ok := panicReasons[code.Uint64()]; ok {
			return reason, nil
		}
	}
	return fmt.Sprintf("unknown panic code: %#x", code), nil
}
