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
	"go/token"
	"sort"
	"strings"
	"unicode"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethbind/ethbind/accounts/abi"
)

// maxNamedOverloads is the largest overload group that is still aliased by
// parameter names. Bigger groups are numbered.
const maxNamedOverloads = 3

// methodNormalizer converts a Solidity entry point name to an exported Go
// identifier.
func methodNormalizer(name string) string {
	ident := abi.Capitalise(abi.ToCamelCase(name))
	// Name shouldn't start with a digit. It will make the generated code invalid.
	if ident != "" && unicode.IsDigit(rune(ident[0])) {
		ident = "M" + ident
	}
	if !isIdent(ident) {
		ident = "M" + strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
				return r
			}
			return -1
		}, ident)
	}
	return ident
}

// aliasSignatures assigns every signature a binding identifier that is unique
// within the list. Signatures are grouped by declared name: a lone signature
// keeps its normalized name, overloads are told apart by the parameters they
// add over the overload with the fewest inputs ("LogWithExtra"), and fall back
// to declaration order numbers ("Log0", "Log1") when parameter names cannot
// tell them apart. Reserved identifiers are never handed out.
func aliasSignatures(sigs []abi.Signature, reserved ...string) []string {
	var (
		idents = make([]string, len(sigs))
		groups = make(map[string][]int)
		names  []string
	)
	for i, sig := range sigs {
		if _, ok := groups[sig.Name]; !ok {
			names = append(names, sig.Name)
		}
		groups[sig.Name] = append(groups[sig.Name], i)
	}
	for _, name := range names {
		members := groups[name]
		group := make([]abi.Signature, len(members))
		for j, idx := range members {
			group[j] = sigs[idx]
		}
		for j, ident := range overloadIdents(methodNormalizer(name), group) {
			idents[members[j]] = ident
		}
	}
	// Aliases may still clash with other names, e.g. "logWithExtra" declared
	// next to an overloaded "log". Later declarations yield.
	used := mapset.NewThreadUnsafeSet[string](reserved...)
	for i, ident := range idents {
		idents[i] = resolveNameConflict(ident, func(s string) bool { return used.Contains(s) })
		used.Add(idents[i])
	}
	return idents
}

// overloadIdents names the members of one overload group.
func overloadIdents(base string, group []abi.Signature) []string {
	idents := make([]string, len(group))
	if len(group) == 1 {
		idents[0] = base
		return idents
	}
	if len(group) <= maxNamedOverloads && namedOverloads(base, group, idents) {
		return idents
	}
	for i := range group {
		idents[i] = fmt.Sprintf("%s%d", base, i)
	}
	return idents
}

// namedOverloads fills idents from parameter names, reporting false when the
// names are missing or do not yield distinct identifiers.
func namedOverloads(base string, group []abi.Signature, idents []string) bool {
	order := make([]int, len(group))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len(group[order[a]].Inputs) < len(group[order[b]].Inputs)
	})
	known := mapset.NewThreadUnsafeSet[string]()
	for _, arg := range group[order[0]].Inputs {
		known.Add(arg.Name)
	}
	seen := mapset.NewThreadUnsafeSet[string]()
	for rank, idx := range order {
		if rank == 0 {
			idents[idx] = base
			seen.Add(base)
			continue
		}
		var diff []string
		for _, arg := range group[idx].Inputs {
			if known.Contains(arg.Name) {
				continue
			}
			part := abi.Capitalise(abi.ToCamelCase(arg.Name))
			if part == "" {
				return false
			}
			diff = append(diff, part)
		}
		if len(diff) == 0 {
			return false
		}
		ident := base + "With" + strings.Join(diff, "And")
		if !seen.Add(ident) {
			return false
		}
		idents[idx] = ident
	}
	return true
}

// resolveNameConflict returns the next available name for a given thing.
// This helper can be used for lots of purposes:
//
//   - In solidity function overloading is supported, this function can fix
//     the name conflicts of overloaded functions.
//   - In golang binding generation, the parameter(in function, event, error,
//     and struct definition) name will be converted to camelcase style which
//     may eventually lead to name conflicts.
//
// Name conflicts are mostly resolved by adding number suffix. e.g. if the abi contains
// Methods "send" and "send1", ResolveNameConflict would return "send2" for input "send".
func resolveNameConflict(rawName string, used func(string) bool) string {
	name := rawName
	ok := used(name)
	for idx := 0; ok; idx++ {
		name = fmt.Sprintf("%s%d", rawName, idx)
		ok = used(name)
	}
	return name
}

// fieldIdents converts raw argument or component names into distinct
// exported Go field names. Unnamed or unusable names become prefix plus their
// position, reserved names get a numeric suffix.
func fieldIdents(raw []string, prefix string, reserved ...string) []string {
	var (
		idents = make([]string, len(raw))
		used   = mapset.NewThreadUnsafeSet[string](reserved...)
	)
	for i, name := range raw {
		ident := abi.Capitalise(abi.ToCamelCase(name))
		if !isIdent(ident) || !token.IsExported(ident) {
			ident = fmt.Sprintf("%s%d", prefix, i)
		}
		ident = resolveNameConflict(ident, func(s string) bool { return used.Contains(s) })
		used.Add(ident)
		idents[i] = ident
	}
	return idents
}

// isIdent reports whether name is a valid Go identifier and not a keyword.
func isIdent(name string) bool {
	return token.IsIdentifier(name)
}
