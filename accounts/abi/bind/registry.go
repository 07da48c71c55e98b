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
	"fmt"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethbind/ethbind/accounts/abi"
	"github.com/ethereum/go-ethereum/log"
)

// Composite is a named tuple shape referenced by the contracts of one
// generation batch. Composites are immutable once the registry is resolved.
type Composite struct {
	Name    string   // Unique Go identifier of the emitted struct
	Aliases []string // Other surface names the same shape was declared under
	Shared  bool     // Referenced by more than one contract
	Owner   string   // Declaring contract of a local composite, empty when shared
	Type    abi.Type // First tuple type seen with this shape
	Fields  []*Field

	surface string
	owners  mapset.Set[string]
	order   []string // owners in first reference order
}

// Field is a single struct field of an emitted composite or call type.
type Field struct {
	Name string   // Exported Go field name
	Raw  string   // Component name as declared in the ABI
	Type abi.Type // Component type
}

// Owners returns the contracts referencing the composite, in the order they
// were collected.
func (c *Composite) Owners() []string {
	return append([]string(nil), c.order...)
}

// Registry collects the named tuples of all contracts in a batch, merges
// structurally identical ones and decides their scope and final names.
//
// Collect may be called any number of times; Resolve must run once after the
// last Collect and before any Lookup.
type Registry struct {
	byKey    map[string]*Composite
	order    []*Composite
	resolved bool
}

// NewRegistry creates an empty composite registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]*Composite)}
}

// Collect walks every input and output of the given signatures and records
// the named tuples they reference as owned by contract.
func (r *Registry) Collect(contract string, sigs []abi.Signature) {
	if r.resolved {
		panic("bind: collect after resolve")
	}
	for _, sig := range sigs {
		for _, arg := range sig.Inputs {
			r.visit(contract, arg.Type)
		}
		for _, arg := range sig.Outputs {
			r.visit(contract, arg.Type)
		}
	}
}

func (r *Registry) visit(contract string, t abi.Type) {
	switch t.T {
	case abi.SliceTy, abi.ArrayTy:
		r.visit(contract, *t.Elem)
	case abi.TupleTy:
		for _, elem := range t.TupleElems {
			r.visit(contract, *elem)
		}
		if t.TupleRawName == "" {
			return
		}
		key := structKey(t)
		comp, ok := r.byKey[key]
		if !ok {
			comp = &Composite{
				Type:    t,
				surface: t.TupleRawName,
				owners:  mapset.NewThreadUnsafeSet[string](),
			}
			r.byKey[key] = comp
			r.order = append(r.order, comp)
		} else if t.TupleRawName != comp.surface && !slices.Contains(comp.Aliases, t.TupleRawName) {
			comp.Aliases = append(comp.Aliases, t.TupleRawName)
		}
		if comp.owners.Add(contract) {
			comp.order = append(comp.order, contract)
		}
	}
}

// Resolve finalizes scope and naming. A composite owned by two or more
// contracts becomes shared. Composites whose names clash with each other, or
// with one of the reserved identifiers, are renamed: local ones take their
// contract as prefix, anything still clashing gets a numeric suffix.
func (r *Registry) Resolve(reserved ...string) {
	if r.resolved {
		return
	}
	r.resolved = true

	used := mapset.NewThreadUnsafeSet[string](reserved...)
	groups := make(map[string][]*Composite)
	for _, comp := range r.order {
		comp.Shared = comp.owners.Cardinality() > 1
		if !comp.Shared {
			comp.Owner = comp.order[0]
		}
		base := structIdent(comp.surface)
		groups[base] = append(groups[base], comp)
	}
	for _, comp := range r.order {
		base := structIdent(comp.surface)
		group := groups[base]

		name := base
		if (len(group) > 1 && group[0] != comp) || used.Contains(name) {
			if !comp.Shared {
				name = abi.Capitalise(abi.ToCamelCase(comp.Owner)) + base
			}
			for i := 1; used.Contains(name); i++ {
				name = fmt.Sprintf("%s%d", base, i)
			}
			log.Trace("Renamed colliding composite", "surface", comp.surface, "name", name)
		}
		used.Add(name)
		comp.Name = name
		comp.Fields = structFields(comp.Type)
	}
}

// Lookup returns the composite a named tuple type resolved to, or nil for
// anonymous tuples and unknown shapes.
func (r *Registry) Lookup(t abi.Type) *Composite {
	if t.T != abi.TupleTy || t.TupleRawName == "" {
		return nil
	}
	return r.byKey[structKey(t)]
}

// Composites returns every composite in first reference order.
func (r *Registry) Composites() []*Composite {
	return append([]*Composite(nil), r.order...)
}

// Shared returns the composites referenced by more than one contract.
func (r *Registry) Shared() []*Composite {
	var shared []*Composite
	for _, comp := range r.order {
		if comp.Shared {
			shared = append(shared, comp)
		}
	}
	return shared
}

// Local returns the composites only the given contract references.
func (r *Registry) Local(contract string) []*Composite {
	var local []*Composite
	for _, comp := range r.order {
		if !comp.Shared && comp.Owner == contract {
			local = append(local, comp)
		}
	}
	return local
}

// referenced lists the composites reachable from t, each once.
func (r *Registry) referenced(t abi.Type, seen mapset.Set[*Composite], out []*Composite) []*Composite {
	switch t.T {
	case abi.SliceTy, abi.ArrayTy:
		return r.referenced(*t.Elem, seen, out)
	case abi.TupleTy:
		if comp := r.Lookup(t); comp != nil && seen.Add(comp) {
			out = append(out, comp)
		}
		for _, elem := range t.TupleElems {
			out = r.referenced(*elem, seen, out)
		}
	}
	return out
}

// structKey is the identity of a tuple shape: ordered component names and
// types, recursively. Surface names of the tuples themselves are not part of
// it.
func structKey(t abi.Type) string {
	switch t.T {
	case abi.SliceTy:
		return structKey(*t.Elem) + "[]"
	case abi.ArrayTy:
		return fmt.Sprintf("%s[%d]", structKey(*t.Elem), t.Size)
	case abi.TupleTy:
		parts := make([]string, len(t.TupleElems))
		for i, elem := range t.TupleElems {
			parts[i] = t.TupleRawNames[i] + " " + structKey(*elem)
		}
		return "(" + strings.Join(parts, ",") + ")"
	}
	return t.String()
}

// structIdent turns a surface struct name into an exported Go identifier.
func structIdent(surface string) string {
	name := abi.Capitalise(abi.ToCamelCase(surface))
	if name == "" || !isIdent(name) {
		name = "Struct" + name
	}
	return name
}

// structFields derives the Go fields of a tuple type.
func structFields(t abi.Type) []*Field {
	idents := fieldIdents(t.TupleRawNames, "Field")
	fields := make([]*Field, len(t.TupleElems))
	for i, elem := range t.TupleElems {
		fields[i] = &Field{Name: idents[i], Raw: t.TupleRawNames[i], Type: *elem}
	}
	return fields
}
