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

// abigen generates type safe Go bindings for Ethereum contract ABIs.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethbind/ethbind/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

var (
	abiFlag = &cli.StringFlag{
		Name:  "abi",
		Usage: "Path to the Ethereum contract ABI json to bind, - for STDIN",
	}
	artifactFlag = &cli.StringSliceFlag{
		Name:  "artifact",
		Usage: "Path to a compiler artifact (Hardhat, Foundry) to bind, may be repeated",
	}
	jsonFlag = &cli.StringFlag{
		Name:  "combined-json",
		Usage: "Path to the combined-json file generated by compiler, - for STDIN",
	}
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to a TOML or YAML file listing the contracts to bind",
	}
	typeFlag = &cli.StringFlag{
		Name:  "type",
		Usage: "Go struct name for the --abi binding (default = package name)",
	}
	excFlag = &cli.StringFlag{
		Name:  "exc",
		Usage: "Comma separated types to exclude from binding, patterns of the form path:Type with * wildcards",
	}
	pkgFlag = &cli.StringFlag{
		Name:  "pkg",
		Usage: "Go package name to generate the binding into",
	}
	outFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "Output file for the generated binding (default = stdout)",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}
)

var app = &cli.App{
	Name:  "abigen",
	Usage: "Ethereum ABI wrapper code generator",
	Flags: []cli.Flag{
		abiFlag,
		artifactFlag,
		jsonFlag,
		configFlag,
		typeFlag,
		excFlag,
		pkgFlag,
		outFlag,
		verbosityFlag,
	},
	Before: setupLogging,
	Action: generate,
}

// setupLogging installs a terminal logger on stderr, colored when stderr is
// a terminal.
func setupLogging(c *cli.Context) error {
	var (
		output   = io.Writer(os.Stderr)
		usecolor = (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	)
	if usecolor {
		output = colorable.NewColorableStderr()
	}
	level := log.FromLegacyLevel(c.Int(verbosityFlag.Name))
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(output, level, usecolor)))
	return nil
}

func generate(c *cli.Context) error {
	var sources int
	for _, flag := range []string{abiFlag.Name, artifactFlag.Name, jsonFlag.Name, configFlag.Name} {
		if c.IsSet(flag) {
			sources++
		}
	}
	if sources != 1 {
		return cli.Exit("Exactly one of --abi, --artifact, --combined-json and --config must be specified", 1)
	}
	var (
		cfg = &genConfig{Package: c.String(pkgFlag.Name), Out: c.String(outFlag.Name)}
		err error
	)
	switch {
	case c.IsSet(configFlag.Name):
		if cfg, err = loadConfig(c.String(configFlag.Name)); err != nil {
			return cli.Exit(fmt.Sprintf("Failed to load config: %v", err), 1)
		}
		// Flags take precedence over the file
		if c.IsSet(pkgFlag.Name) {
			cfg.Package = c.String(pkgFlag.Name)
		}
		if c.IsSet(outFlag.Name) {
			cfg.Out = c.String(outFlag.Name)
		}
	case c.IsSet(jsonFlag.Name):
		cfg.CombinedJSON = c.String(jsonFlag.Name)
	case c.IsSet(artifactFlag.Name):
		for _, file := range c.StringSlice(artifactFlag.Name) {
			cfg.Contracts = append(cfg.Contracts, contractConfig{Artifact: file})
		}
	default:
		name := c.String(typeFlag.Name)
		if name == "" {
			name = cfg.Package
		}
		cfg.Contracts = append(cfg.Contracts, contractConfig{Name: name, ABI: c.String(abiFlag.Name)})
	}
	if c.IsSet(excFlag.Name) {
		cfg.Exclude = append(cfg.Exclude, strings.Split(c.String(excFlag.Name), ",")...)
	}
	if cfg.Package == "" {
		return cli.Exit("No destination package specified (--pkg)", 1)
	}
	code, err := run(cfg, os.Stdin)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	// Either flush it out to a file or display on the standard output
	if cfg.Out == "" {
		fmt.Printf("%s\n", code)
		return nil
	}
	if err := os.WriteFile(cfg.Out, []byte(code), 0600); err != nil {
		return cli.Exit(fmt.Sprintf("Failed to write ABI binding: %v", err), 1)
	}
	log.Info("Wrote bindings", "package", cfg.Package, "file", cfg.Out)
	return nil
}

// run loads every contract of the config, drops the excluded ones and renders
// the rest into a single Go source.
func run(cfg *genConfig, stdin io.Reader) (string, error) {
	var exclude *nameFilter
	if len(cfg.Exclude) > 0 {
		var err error
		if exclude, err = newNameFilter(cfg.Exclude...); err != nil {
			return "", fmt.Errorf("failed to parse excludes: %w", err)
		}
	}
	inputs, err := loadInputs(cfg, stdin)
	if err != nil {
		return "", err
	}
	var selected []bind.ContractABI
	for _, input := range inputs {
		if exclude != nil && exclude.Matches(qualifiedName(input)) {
			log.Info("Excluding contract", "name", qualifiedName(input))
			continue
		}
		selected = append(selected, input)
	}
	if len(selected) == 0 {
		return "", errors.New("no contracts left to bind")
	}
	batch, err := bind.Generate(selected)
	if err != nil {
		return "", fmt.Errorf("failed to generate ABI binding: %w", err)
	}
	code, err := bind.Render(batch, cfg.Package)
	if err != nil {
		return "", fmt.Errorf("failed to render ABI binding: %w", err)
	}
	return code, nil
}

// loadInputs reads the combined json output and every listed contract, in
// that order.
func loadInputs(cfg *genConfig, stdin io.Reader) ([]bind.ContractABI, error) {
	var inputs []bind.ContractABI
	if cfg.CombinedJSON != "" {
		r := stdin
		if cfg.CombinedJSON != "-" {
			file, err := os.Open(cfg.CombinedJSON)
			if err != nil {
				return nil, fmt.Errorf("failed to read combined-json: %w", err)
			}
			defer file.Close()
			r = file
		}
		contracts, err := readCombinedJSON(r, cfg.CombinedJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to read combined-json: %w", err)
		}
		inputs = append(inputs, contracts...)
	}
	for _, contract := range cfg.Contracts {
		var (
			input bind.ContractABI
			err   error
		)
		if contract.ABI == "-" {
			var blob []byte
			if blob, err = io.ReadAll(stdin); err == nil {
				input = bind.ContractABI{Name: contract.Name, ABI: string(blob)}
			}
		} else {
			input, err = contract.input()
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read input ABI: %w", err)
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
