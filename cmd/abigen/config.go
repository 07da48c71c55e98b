// Copyright 2026 The ethbind Authors
// This file is part of ethbind.
//
// ethbind is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ethbind is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ethbind. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ethbind/ethbind/accounts/abi/bind"
	"github.com/ethbind/ethbind/common/compiler"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// genConfig is a batch description of the contracts to bind into one
// package. Relative paths are resolved against the config file.
type genConfig struct {
	Package      string           `toml:"package" yaml:"package"`
	Out          string           `toml:"out" yaml:"out"`
	Exclude      []string         `toml:"exclude" yaml:"exclude"`
	CombinedJSON string           `toml:"combined_json" yaml:"combined_json"` // solc --combined-json output, - for STDIN
	Contracts    []contractConfig `toml:"contracts" yaml:"contracts"`
}

// contractConfig is one contract of a batch. Exactly one of ABI and
// Artifact names the input.
type contractConfig struct {
	Name     string `toml:"name" yaml:"name"`
	ABI      string `toml:"abi" yaml:"abi"`
	Artifact string `toml:"artifact" yaml:"artifact"`
}

// loadConfig reads a batch config, TOML or YAML depending on the file
// extension. Unknown keys are rejected.
func loadConfig(file string) (*genConfig, error) {
	blob, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	cfg := new(genConfig)
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".toml":
		meta, err := toml.Decode(string(blob), cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%s: field '%s' is not defined", file, undecoded[0])
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(blob))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported config format %q", file, ext)
	}
	base := filepath.Dir(file)
	for i := range cfg.Contracts {
		c := &cfg.Contracts[i]
		if (c.ABI == "") == (c.Artifact == "") {
			return nil, fmt.Errorf("%s: contract %d needs exactly one of abi and artifact", file, i)
		}
		c.ABI = resolvePath(base, c.ABI)
		c.Artifact = resolvePath(base, c.Artifact)
	}
	cfg.Out = resolvePath(base, cfg.Out)
	cfg.CombinedJSON = resolvePath(base, cfg.CombinedJSON)
	return cfg, nil
}

func resolvePath(base, path string) string {
	if path == "" || path == "-" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// input loads the contract described by c.
func (c contractConfig) input() (bind.ContractABI, error) {
	if c.Artifact != "" {
		input, err := readArtifact(c.Artifact)
		if err != nil {
			return input, err
		}
		if c.Name != "" {
			input.Name = c.Name
		}
		return input, nil
	}
	blob, err := os.ReadFile(c.ABI)
	if err != nil {
		return bind.ContractABI{}, err
	}
	name := c.Name
	if name == "" {
		name = fileStem(c.ABI)
	}
	return bind.ContractABI{Name: name, Path: c.ABI, ABI: string(blob)}, nil
}

var errNoArtifactABI = errors.New("artifact has no abi array")

// readArtifact extracts the ABI of a compiler artifact. Hardhat and Foundry
// artifacts keep it under "abi", plain ABI files are accepted as they are.
// The contract name comes from "contractName" or the file name.
func readArtifact(file string) (bind.ContractABI, error) {
	blob, err := os.ReadFile(file)
	if err != nil {
		return bind.ContractABI{}, err
	}
	if !gjson.ValidBytes(blob) {
		return bind.ContractABI{}, fmt.Errorf("%s: invalid json", file)
	}
	root := gjson.ParseBytes(blob)
	abiJSON := root
	if !root.IsArray() {
		abiJSON = root.Get("abi")
	}
	if !abiJSON.IsArray() {
		return bind.ContractABI{}, fmt.Errorf("%s: %w", file, errNoArtifactABI)
	}
	name := root.Get("contractName").String()
	if name == "" {
		name = fileStem(file)
	}
	return bind.ContractABI{Name: name, Path: file, ABI: abiJSON.Raw}, nil
}

// fileStem returns the file name without directory and extensions, so
// "out/Token.sol/Token.json" and "Token.abi.json" both become "Token".
func fileStem(file string) string {
	name := filepath.Base(file)
	if i := strings.IndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return name
}

// readCombinedJSON loads the contracts of a solc --combined-json output.
func readCombinedJSON(r io.Reader, path string) ([]bind.ContractABI, error) {
	blob, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	contracts, err := compiler.ParseCombinedJSON(blob)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	inputs := make([]bind.ContractABI, len(contracts))
	for i, c := range contracts {
		inputs[i] = bind.ContractABI{Name: c.Name, Path: c.Path, ABI: c.ABI}
	}
	return inputs, nil
}

// qualifiedName is the name exclusion patterns are matched against.
func qualifiedName(input bind.ContractABI) string {
	return filepath.ToSlash(input.Path) + ":" + input.Name
}
