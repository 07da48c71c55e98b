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

package bind

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethbind/ethbind/accounts/abi"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// CallOpts is the collection of options to fine tune a contract call request.
type CallOpts struct {
	From        common.Address  // Optional the sender address, otherwise the first account is used
	BlockNumber *big.Int        // Optional the block number on which the call should be performed
	Context     context.Context // Network context to support cancellation and timeouts (nil = no timeout)
}

// BoundContract is the base wrapper object that reflects a contract on the
// Ethereum network. It contains a collection of methods that are used by the
// higher level contract bindings to operate.
type BoundContract struct {
	address  common.Address // Deployment address of the contract on the Ethereum blockchain
	contract *Contract      // Resolved binding to encode calls and decode results with
	caller   ContractCaller // Read interface to interact with the blockchain
}

// NewBoundContract creates a low level contract interface through which calls
// may be made and logs decoded.
func NewBoundContract(address common.Address, contract *Contract, caller ContractCaller) *BoundContract {
	return &BoundContract{
		address:  address,
		contract: contract,
		caller:   caller,
	}
}

// Address returns the deployment address of the contract.
func (c *BoundContract) Address() common.Address {
	return c.address
}

// Contract returns the binding the contract was bound with.
func (c *BoundContract) Contract() *Contract {
	return c.contract
}

// Call invokes the (constant) contract method identified by ident with input
// as its arguments and sets the output to result. The result type is the single
// output for simple returns and a struct with one field per output otherwise.
func (c *BoundContract) Call(opts *CallOpts, result interface{}, ident string, input interface{}) error {
	// Don't crash on a lazy user
	if opts == nil {
		opts = new(CallOpts)
	}
	entry := c.contract.Calls.Entry(ident)
	if entry == nil {
		return fmt.Errorf("bind: %s has no call %q", c.contract.Name, ident)
	}
	tokens, err := entry.Tokenize(input)
	if err != nil {
		return err
	}
	data, err := entry.Encode(tokens)
	if err != nil {
		return err
	}
	ctx := ensureContext(opts.Context)
	msg := ethereum.CallMsg{From: opts.From, To: &c.address, Data: data}
	output, err := c.caller.CallContract(ctx, msg, opts.BlockNumber)
	if err != nil {
		return err
	}
	if len(output) == 0 && len(entry.Outputs) > 0 {
		// Make sure we have a contract to operate on, and bail out otherwise.
		if code, err := c.caller.CodeAt(ctx, c.address, opts.BlockNumber); err != nil {
			return err
		} else if len(code) == 0 {
			return ErrNoCode
		}
	}
	if err := entry.CopyOutputs(result, output); err != nil {
		return c.revertError(output, err)
	}
	return nil
}

// revertError explains output that failed to decode when it is a revert
// payload instead of return data.
func (c *BoundContract) revertError(output []byte, err error) error {
	if reason, rerr := c.contract.Errors.Reason(output); rerr == nil {
		return fmt.Errorf("execution reverted: %s", reason)
	}
	return err
}

// DecodeLog resolves which event of the contract emitted the log and decodes
// its fields in declaration order.
func (c *BoundContract) DecodeLog(log types.Log) (*BindingEntry, []abi.Token, error) {
	if log.Address != c.address {
		return nil, nil, fmt.Errorf("%w: %s", ErrLogAddress, log.Address.Hex())
	}
	return c.contract.Events.Decode(log.Topics, log.Data)
}

// UnpackLog unpacks a retrieved log into the provided output structure, which
// must be the event struct of ident.
func (c *BoundContract) UnpackLog(out interface{}, ident string, log types.Log) error {
	entry := c.contract.Events.Entry(ident)
	if entry == nil {
		return fmt.Errorf("bind: %s has no event %q", c.contract.Name, ident)
	}
	if log.Address != c.address {
		return fmt.Errorf("%w: %s", ErrLogAddress, log.Address.Hex())
	}
	tokens, err := entry.Signature.DecodeLogWith(c.contract.Events.hasher, log.Topics, log.Data)
	if err != nil {
		return err
	}
	return entry.Copy(out, tokens)
}

// ensureContext is a helper method to ensure a context is not nil, even if the
// user specified it as such.
func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
