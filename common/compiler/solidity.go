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

// Package compiler reads the output of the Solidity compiler.
package compiler

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Contract is one contract of a solc --combined-json output.
type Contract struct {
	Path string // Source file the contract is declared in
	Name string // Contract name
	ABI  string // JSON ABI
	Code string // Hex creation code, empty when bin was not requested
}

// QualifiedName is the <path>:<name> form solc keys contracts by.
func (c *Contract) QualifiedName() string {
	return c.Path + ":" + c.Name
}

var errNoContracts = errors.New("solc: combined json has no contracts")

// ParseCombinedJSON takes the output of solc --combined-json abi[,bin] and
// returns its contracts ordered by qualified name. Compilers before 0.8.0
// emit the ABI as a JSON encoded string, later ones as an array; both are
// accepted.
func ParseCombinedJSON(combinedJSON []byte) ([]*Contract, error) {
	if !gjson.ValidBytes(combinedJSON) {
		return nil, errors.New("solc: invalid combined json")
	}
	output := gjson.ParseBytes(combinedJSON).Get("contracts")
	if !output.IsObject() {
		return nil, errNoContracts
	}
	var (
		contracts []*Contract
		err       error
	)
	output.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		i := strings.LastIndexByte(name, ':')
		if i < 0 {
			err = fmt.Errorf("solc: contract %q is not qualified by its source", name)
			return false
		}
		abi := value.Get("abi")
		switch {
		case abi.Type == gjson.String:
			// solc < 0.8.0 nests the ABI as a string
			if inner := gjson.Parse(abi.String()); inner.IsArray() {
				abi = inner
			}
		case !abi.Exists():
			err = fmt.Errorf("solc: contract %s has no abi, compile with --combined-json abi", name)
			return false
		}
		if !abi.IsArray() {
			err = fmt.Errorf("solc: contract %s has a malformed abi", name)
			return false
		}
		contract := &Contract{Path: name[:i], Name: name[i+1:], ABI: abi.Raw}
		if bin := value.Get("bin").String(); bin != "" {
			contract.Code = "0x" + strings.TrimPrefix(bin, "0x")
		}
		contracts = append(contracts, contract)
		return true
	})
	if err != nil {
		return nil, err
	}
	if len(contracts) == 0 {
		return nil, errNoContracts
	}
	sort.Slice(contracts, func(a, b int) bool {
		return contracts[a].QualifiedName() < contracts[b].QualifiedName()
	})
	return contracts, nil
}
