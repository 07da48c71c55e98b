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
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"go/token"
	"strings"
	"text/template"

	"github.com/ethbind/ethbind/accounts/abi"
	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/tools/imports"
)

// tmplData is the data structure required to fill the binding template.
type tmplData struct {
	Package   string          // Name of the package to place the generated file in
	Shared    []*tmplStruct   // Struct definitions referenced by several contracts
	Contracts []*tmplContract // List of contracts to generate into this file
}

// tmplContract contains the data needed to generate an individual contract binding.
type tmplContract struct {
	Type        string        // Type name of the main contract binding
	Name        string        // Contract name as declared
	InputABI    string        // JSON ABI the runtime binding is rebuilt from
	Constructor *tmplMethod   // Contract constructor for deploy parametrization
	Calls       []*tmplMethod // Contract functions in declaration order
	Events      []*tmplMethod // Contract events in declaration order
	Errors      []*tmplMethod // Contract custom errors in declaration order
	Structs     []*tmplStruct // Struct definitions only this contract uses
	Fallback    bool          // Whether the contract has a fallback function
	Receive     bool          // Whether the contract has a receive function
}

// tmplMethod is a wrapper around a binding entry that contains a few
// preprocessed and cached data fields.
type tmplMethod struct {
	Ident    string       // Disambiguated identifier
	Sig      string       // Canonical signature
	Selector string       // Hex selector or topic
	Constant bool         // Whether the function can be called without a transaction
	Inputs   []*tmplField // Input struct fields
	Outputs  []*tmplField // Output fields, functions only

	Structured bool   // Whether the returns should be accumulated into a struct
	OutType    string // Go type a call returns, empty without outputs
}

// tmplField is a wrapper around a struct field with binding language
// struct type definition and relative filed name.
type tmplField struct {
	Type    string   // Go type of the field
	Name    string   // Field name converted from the raw user-defined field name
	Tag     string   // Struct tag literal, empty for unnamed components
	SolKind abi.Type // Raw abi type information
}

// tmplStruct is a wrapper around an abi.tuple and contains an auto-generated
// struct name.
type tmplStruct struct {
	Name    string       // Resolved struct name
	Sig     string       // Canonical tuple type
	Aliases []string     // Other surface names of the same shape
	Fields  []*tmplField // Struct fields definition
}

// tmplSource is the Go source template that the generated Go contract binding
// is based on.
//
//go:embed source.go.tpl
var tmplSource string

// Render generates the Go source of a resolved batch. The result is not meant
// to be edited by hand, but it enforces compile time type safety and naming
// convention opposed to having to manually maintain hard coded strings that
// break on runtime.
func Render(batch *Batch, pkg string) (string, error) {
	if !token.IsIdentifier(pkg) {
		return "", fmt.Errorf("invalid package name %q", pkg)
	}
	if len(batch.Contracts) == 0 {
		return "", errors.New("no contracts to render")
	}
	data := &tmplData{Package: pkg}
	for _, comp := range batch.Shared {
		data.Shared = append(data.Shared, newTmplStruct(batch.Registry, comp))
	}
	for _, contract := range batch.Contracts {
		data.Contracts = append(data.Contracts, newTmplContract(batch.Registry, contract))
	}
	buffer := new(bytes.Buffer)
	tmpl := template.Must(template.New("").Parse(tmplSource))
	if err := tmpl.Execute(buffer, data); err != nil {
		return "", err
	}
	// Pass the code through goimports to clean it up and double check
	code, err := imports.Process(".", buffer.Bytes(), nil)
	if err != nil {
		return "", fmt.Errorf("%v\n%s", err, buffer)
	}
	log.Debug("Rendered bindings", "package", pkg, "contracts", len(data.Contracts), "bytes", len(code))
	return string(code), nil
}

func newTmplContract(reg *Registry, contract *Contract) *tmplContract {
	tc := &tmplContract{
		Type:     contract.Type,
		Name:     contract.Name,
		InputABI: contract.InputABI,
		Fallback: contract.ABI.Fallback != nil,
		Receive:  contract.ABI.Receive != nil,
	}
	if contract.Constructor != nil {
		tc.Constructor = newTmplMethod(reg, contract.Constructor)
	}
	for _, entry := range contract.Calls.Entries {
		method := newTmplMethod(reg, entry)
		switch len(method.Outputs) {
		case 0:
		case 1:
			method.OutType = method.Outputs[0].Type
		default:
			method.Structured = true
			method.OutType = contract.Type + entry.Ident + "Output"
		}
		tc.Calls = append(tc.Calls, method)
	}
	for _, entry := range contract.Events.Entries {
		tc.Events = append(tc.Events, newTmplMethod(reg, entry))
	}
	for _, entry := range contract.Errors.Entries {
		tc.Errors = append(tc.Errors, newTmplMethod(reg, entry))
	}
	for _, comp := range contract.Composites {
		tc.Structs = append(tc.Structs, newTmplStruct(reg, comp))
	}
	return tc
}

func newTmplMethod(reg *Registry, entry *BindingEntry) *tmplMethod {
	return &tmplMethod{
		Ident:    entry.Ident,
		Sig:      entry.Signature.Sig(),
		Selector: fmt.Sprintf("%#x", entry.Selector),
		Constant: entry.Signature.IsConstant(),
		Inputs:   newTmplFields(reg, entry.Inputs),
		Outputs:  newTmplFields(reg, entry.Outputs),
	}
}

func newTmplStruct(reg *Registry, comp *Composite) *tmplStruct {
	return &tmplStruct{
		Name:    comp.Name,
		Sig:     comp.Type.String(),
		Aliases: comp.Aliases,
		Fields:  newTmplFields(reg, comp.Fields),
	}
}

func newTmplFields(reg *Registry, fields []*Field) []*tmplField {
	out := make([]*tmplField, len(fields))
	for i, f := range fields {
		out[i] = &tmplField{
			Type:    bindTypeGo(reg, f.Type),
			Name:    f.Name,
			Tag:     structTag(f.Raw),
			SolKind: f.Type,
		}
	}
	return out
}

// structTag returns the tag literal mapping a field back to its ABI name.
func structTag(raw string) string {
	if raw == "" {
		return ""
	}
	return fmt.Sprintf("`abi:%q`", raw)
}

// bindTypeGo converts a Solidity type to a Go one. Since there is no clear mapping
// from all Solidity types to Go ones (e.g. uint17), those that cannot be exactly
// mapped will use an upscaled type (e.g. *big.Int). Named tuples map to their
// resolved composite, anonymous ones to inline structs.
func bindTypeGo(reg *Registry, kind abi.Type) string {
	switch kind.T {
	case abi.AddressTy:
		return "common.Address"
	case abi.BoolTy:
		return "bool"
	case abi.StringTy:
		return "string"
	case abi.BytesTy:
		return "[]byte"
	case abi.FixedBytesTy:
		return fmt.Sprintf("[%d]byte", kind.Size)
	case abi.IntTy, abi.UintTy:
		prefix := ""
		if kind.T == abi.UintTy {
			prefix = "u"
		}
		switch kind.Size {
		case 8, 16, 32, 64:
			return fmt.Sprintf("%sint%d", prefix, kind.Size)
		}
		return "*big.Int"
	case abi.SliceTy:
		return "[]" + bindTypeGo(reg, *kind.Elem)
	case abi.ArrayTy:
		return fmt.Sprintf("[%d]%s", kind.Size, bindTypeGo(reg, *kind.Elem))
	case abi.TupleTy:
		if comp := reg.Lookup(kind); comp != nil {
			return comp.Name
		}
		var b strings.Builder
		b.WriteString("struct {")
		idents := fieldIdents(kind.TupleRawNames, "Field")
		for i, elem := range kind.TupleElems {
			if i > 0 {
				b.WriteString(";")
			}
			fmt.Fprintf(&b, " %s %s", idents[i], bindTypeGo(reg, *elem))
			if tag := structTag(kind.TupleRawNames[i]); tag != "" {
				b.WriteString(" " + tag)
			}
		}
		b.WriteString(" }")
		return b.String()
	}
	return kind.String()
}
