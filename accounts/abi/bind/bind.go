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

// Package bind resolves contract ABIs into bindings: composite structs are
// deduplicated across contracts, overloads get distinct identifiers and
// every contract gets umbrella call, event and error decoders. The result can
// be used directly at runtime or rendered into Go source.
package bind

import (
	"errors"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethbind/ethbind/accounts/abi"
	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/sync/errgroup"
)

// ContractABI is the generation input of one contract.
type ContractABI struct {
	Name       string          // Contract name, used for the Go type names
	Path       string          // Optional source path, used by name filters
	ABI        string          // JSON ABI, takes precedence over Signatures
	Signatures []abi.Signature // Already parsed ABI
}

// Contract is the resolved binding of a single contract.
type Contract struct {
	Name        string // Name as given in the input
	Type        string // Go identifier of the contract
	Path        string
	InputABI    string // Canonical JSON ABI of the contract
	ABI         *abi.ABI
	Constructor *BindingEntry
	Calls       *CallUnion
	Events      *EventSet
	Errors      *ErrorSet
	Composites  []*Composite // Composites only this contract references
}

// Batch is the outcome of one generation run.
type Batch struct {
	Contracts []*Contract
	Shared    []*Composite // Composites referenced by several contracts
	Registry  *Registry
}

type config struct {
	hasher abi.Hasher
}

// Option customizes a generation run.
type Option func(*config)

// WithHasher computes selectors and event ids with h instead of keccak-256.
func WithHasher(h abi.Hasher) Option {
	return func(c *config) { c.hasher = h }
}

// Generate resolves a batch of contracts. All contracts are collected into
// the composite registry before any of them is finalized. Any malformed ABI
// aborts the whole run. The hasher must be safe for concurrent use.
func Generate(contracts []ContractABI, opts ...Option) (*Batch, error) {
	cfg := config{hasher: abi.DefaultHasher}
	for _, opt := range opts {
		opt(&cfg)
	}
	var (
		registry = NewRegistry()
		batch    = &Batch{Registry: registry}
		reserved []string
		types    = make(map[string]string)
	)
	// Contracts resolve independently, the registry pass below is the only
	// step that needs all of them.
	resolved := make([]*Contract, len(contracts))
	var g errgroup.Group
	for i, input := range contracts {
		g.Go(func() error {
			contract, err := resolveContract(input, cfg)
			if err != nil {
				return fmt.Errorf("contract %s: %w", input.Name, err)
			}
			resolved[i] = contract
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, input := range contracts {
		contract := resolved[i]
		if other, ok := types[contract.Type]; ok {
			return nil, fmt.Errorf("contracts %s and %s both bind to type %s", other, input.Name, contract.Type)
		}
		types[contract.Type] = input.Name

		registry.Collect(contract.Name, contract.ABI.Signatures())
		reserved = append(reserved, contract.reserved()...)
		batch.Contracts = append(batch.Contracts, contract)
	}
	registry.Resolve(reserved...)
	batch.Shared = registry.Shared()

	for _, contract := range batch.Contracts {
		contract.Composites = registry.Local(contract.Name)
		for _, entry := range contract.entries() {
			seen := mapset.NewThreadUnsafeSet[*Composite]()
			for _, arg := range entry.Signature.Inputs {
				entry.Composites = registry.referenced(arg.Type, seen, entry.Composites)
			}
			for _, arg := range entry.Signature.Outputs {
				entry.Composites = registry.referenced(arg.Type, seen, entry.Composites)
			}
		}
		log.Debug("Resolved contract binding", "contract", contract.Name, "calls", len(contract.Calls.Entries),
			"events", len(contract.Events.Entries), "errors", len(contract.Errors.Entries), "structs", len(contract.Composites))
	}
	log.Debug("Resolved binding batch", "contracts", len(batch.Contracts), "shared", len(batch.Shared))
	return batch, nil
}

// ParseContract resolves a single contract from its JSON ABI. Generated
// bindings call it once to build their process wide binding.
func ParseContract(name, jsonABI string, opts ...Option) (*Contract, error) {
	batch, err := Generate([]ContractABI{{Name: name, ABI: jsonABI}}, opts...)
	if err != nil {
		return nil, err
	}
	return batch.Contracts[0], nil
}

// MustParseContract is ParseContract that panics on error.
func MustParseContract(name, jsonABI string, opts ...Option) *Contract {
	contract, err := ParseContract(name, jsonABI, opts...)
	if err != nil {
		panic(err)
	}
	return contract
}

// resolveContract parses one contract and assigns identifiers to its entries.
func resolveContract(input ContractABI, cfg config) (*Contract, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.New("missing contract name")
	}
	var (
		parsed *abi.ABI
		err    error
	)
	if input.ABI != "" {
		parsed, err = abi.JSON(strings.NewReader(input.ABI))
	} else {
		parsed, err = abi.New(input.Signatures)
	}
	if err != nil {
		return nil, err
	}
	blob, err := abi.MarshalJSON(parsed.Signatures())
	if err != nil {
		return nil, err
	}
	contract := &Contract{
		Name:     input.Name,
		Type:     methodNormalizer(input.Name),
		Path:     input.Path,
		InputABI: string(blob),
		ABI:      parsed,
	}
	if parsed.Constructor != nil {
		contract.Constructor = newEntry(*parsed.Constructor, "", nil)
	}
	// Calls become methods of the generated wrapper embedding *BoundContract
	calls := resolveEntries(parsed.Methods, cfg.hasher, "BoundContract")
	events := resolveEntries(parsed.Events, cfg.hasher)
	errs := resolveEntries(parsed.Errors, cfg.hasher)

	contract.Calls = &CallUnion{selectorUnion{newEntryIndex(calls)}}
	contract.Events = &EventSet{entryIndex: newEntryIndex(events), hasher: cfg.hasher}
	contract.Errors = &ErrorSet{selectorUnion{newEntryIndex(errs)}}
	return contract, nil
}

// resolveEntries builds the binding entries of signatures of one kind.
func resolveEntries(sigs []abi.Signature, hasher abi.Hasher, reserved ...string) []*BindingEntry {
	idents := aliasSignatures(sigs, reserved...)
	entries := make([]*BindingEntry, len(sigs))
	for i, sig := range sigs {
		var selector []byte
		if sig.Kind == abi.Event {
			selector = sig.IDWith(hasher).Bytes()
		} else {
			sel := sig.SelectorWith(hasher)
			selector = sel[:]
		}
		entries[i] = newEntry(sig, idents[i], selector)
		if idents[i] != methodNormalizer(sig.Name) {
			log.Trace("Aliased overload", "signature", sig.Sig(), "ident", idents[i])
		}
	}
	return entries
}

func newEntry(sig abi.Signature, ident string, selector []byte) *BindingEntry {
	entry := &BindingEntry{
		Name:      sig.Name,
		Ident:     ident,
		Signature: sig,
		Selector:  selector,
		Inputs:    argumentFields(sig.Inputs, sig.Kind == abi.Event),
	}
	if sig.Kind == abi.Function {
		entry.Outputs = argumentFields(sig.Outputs, false)
	}
	return entry
}

// generatedMethods are the methods rendered on call, event and error structs,
// which their fields must not shadow.
var generatedMethods = []string{"Pack", "Log", "Error"}

// argumentFields derives the Go fields of an argument list. Indexed event
// fields take the type they are stored as in their topic.
func argumentFields(args abi.Arguments, topics bool) []*Field {
	raw := make([]string, len(args))
	for i, arg := range args {
		raw[i] = arg.Name
	}
	idents := fieldIdents(raw, "Arg", generatedMethods...)
	fields := make([]*Field, len(args))
	for i, arg := range args {
		typ := arg.Type
		if topics && arg.Indexed {
			typ = abi.TopicType(arg.Type)
		}
		fields[i] = &Field{Name: idents[i], Raw: arg.Name, Type: typ}
	}
	return fields
}

// entries lists every binding entry of the contract.
func (c *Contract) entries() []*BindingEntry {
	var all []*BindingEntry
	if c.Constructor != nil {
		all = append(all, c.Constructor)
	}
	all = append(all, c.Calls.Entries...)
	all = append(all, c.Events.Entries...)
	return append(all, c.Errors.Entries...)
}

// reserved lists the Go identifiers the rendered contract declares, which
// composites must not take.
func (c *Contract) reserved() []string {
	names := []string{
		c.Type, c.Type + "ABI", c.Type + "Binding", c.Type + "Call", c.Type + "Event", c.Type + "Error",
		c.Type + "Constructor", "New" + c.Type, "Decode" + c.Type + "Call",
		"Decode" + c.Type + "Event", "Decode" + c.Type + "Error",
	}
	for _, entry := range c.Calls.Entries {
		names = append(names, c.Type+entry.Ident+"Call", c.Type+entry.Ident+"Output", "Unpack"+c.Type+entry.Ident+"Output")
	}
	for _, entry := range c.Events.Entries {
		names = append(names, c.Type+entry.Ident+"Event")
	}
	for _, entry := range c.Errors.Entries {
		names = append(names, c.Type+entry.Ident+"Error")
	}
	return names
}
