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

// abidump decodes call data, revert data and logs against a contract ABI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethbind/ethbind/accounts/abi"
	"github.com/ethbind/ethbind/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

var (
	abiFlag = &cli.StringFlag{
		Name:     "abi",
		Usage:    "Path to the Ethereum contract ABI json to decode against",
		Required: true,
	}
	topicFlag = &cli.StringSliceFlag{
		Name:  "topic",
		Usage: "Log topic, in order; the data is then decoded as a log",
	}
	tableFlag = &cli.BoolFlag{
		Name:  "table",
		Usage: "Print the decoded arguments as a table",
	}
)

var app = &cli.App{
	Name:      "abidump",
	Usage:     "Parses the given ABI data and interprets it with a contract ABI",
	ArgsUsage: "<hexdata>",
	Flags:     []cli.Flag{abiFlag, topicFlag, tableFlag},
	Action:    run,
}

// Example
// ./abidump --abi erc20.json a9059cbb000000000000000000000000ea0e2dc7d65a50e77fc7e84bff3fd2a9e781ff5c0000000000000000000000000000000000000000000000015af1d78b58c40000
func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("Error: one argument needed", 2)
	}
	data, err := decodeHex(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}
	blob, err := os.ReadFile(c.String(abiFlag.Name))
	if err != nil {
		return cli.Exit(err, 1)
	}
	contract, err := bind.ParseContract("Contract", string(blob))
	if err != nil {
		return cli.Exit(err, 1)
	}
	var topics []common.Hash
	for _, topic := range c.StringSlice(topicFlag.Name) {
		raw, err := decodeHex(topic)
		if err != nil || len(raw) != common.HashLength {
			return cli.Exit(fmt.Sprintf("invalid topic %q", topic), 1)
		}
		topics = append(topics, common.BytesToHash(raw))
	}
	show := printEntry
	if c.Bool(tableFlag.Name) {
		show = printTable
	}
	if err := dump(os.Stdout, contract, data, topics, show); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

// dump writes the decoded form of data. With topics the input is a log,
// otherwise call data or, failing that, revert data.
func dump(w io.Writer, contract *bind.Contract, data []byte, topics []common.Hash, show printer) error {
	if len(topics) > 0 {
		entry, tokens, err := contract.Events.Decode(topics, data)
		if err != nil {
			return err
		}
		show(w, "event", entry, tokens)
		return nil
	}
	if entry, tokens, err := contract.Calls.Decode(data); err == nil {
		show(w, "call", entry, tokens)
		return nil
	}
	if entry, tokens, err := contract.Errors.Decode(data); err == nil {
		show(w, "error", entry, tokens)
		return nil
	}
	if reason, err := abi.UnpackRevert(data); err == nil {
		fmt.Fprintf(w, "revert: %s\n", reason)
		return nil
	}
	return errors.New("data matches no call, error or revert of the contract")
}

type printer func(w io.Writer, kind string, entry *bind.BindingEntry, tokens []abi.Token)

func printEntry(w io.Writer, kind string, entry *bind.BindingEntry, tokens []abi.Token) {
	fmt.Fprintf(w, "%s %s: %s\n", kind, entry.Ident, entry.Signature.Sig())
	for i, tok := range tokens {
		fmt.Fprintf(w, "  %s: %v\n", argName(entry, i), tok)
	}
}

func printTable(w io.Writer, kind string, entry *bind.BindingEntry, tokens []abi.Token) {
	fmt.Fprintf(w, "%s %s: %s\n", kind, entry.Ident, entry.Signature.Sig())
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Type", "Value"})
	table.SetAutoWrapText(false)
	for i, tok := range tokens {
		input := entry.Signature.Inputs[i]
		typ := input.Type.String()
		if input.Indexed {
			typ += " indexed"
		}
		table.Append([]string{argName(entry, i), typ, tok.String()})
	}
	table.Render()
}

func argName(entry *bind.BindingEntry, i int) string {
	if name := entry.Signature.Inputs[i].Name; name != "" {
		return name
	}
	return fmt.Sprintf("#%d", i)
}

func decodeHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
