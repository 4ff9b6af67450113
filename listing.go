// listing.go - Table output for assembly listings and disassembly

package main

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/intuitionamiga/clps2c/assembler"
	"github.com/intuitionamiga/clps2c/compiler"
)

func writeTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
}

func listingRows(entries []assembler.ListingEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{fmt.Sprintf("%08X", e.Address), fmt.Sprintf("%08X", e.Word), e.Source})
	}
	return rows
}

// printListing prints the assembly listing of a finished compile.
func (r *runner) printListing(input string, c *compiler.Compiler) {
	entries := c.Listing()
	if len(entries) == 0 {
		r.log.Debugf("%s: no asm scopes to list", input)
		return
	}
	r.log.mu.Lock()
	defer r.log.mu.Unlock()
	fmt.Fprintf(r.stdout, "%s:\n", input)
	writeTable(r.stdout, []string{"Address", "Word", "Source"}, listingRows(entries))
}

// ---------------------------------------------------------------------
// disasm command
// ---------------------------------------------------------------------

func disasmCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "disasm",
		Usage:     "disassemble the 32-bit writes of a raw or pnach code file",
		ArgsUsage: "<codes file>",
		Description: `
Every 2AAAAAAA VVVVVVVV line (or its pnach form) is decoded as an EE
instruction at address AAAAAAA. Other code types are skipped.`,
		Action: r.disasmAction,
	}
}

func (r *runner) disasmAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("disasm needs exactly one codes file")
	}
	path := ctx.Args().First()
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	rows, skipped := disasmRows(string(data))
	r.log.Debugf("%s: %d instructions, %d other lines skipped", path, len(rows), skipped)
	writeTable(r.stdout, []string{"Address", "Word", "Instruction"}, rows)
	return nil
}

var rawLine = regexp.MustCompile(`^([0-9A-Fa-f]{8}) ([0-9A-Fa-f]{8})$`)

// codePair reads the address and value of a raw or pnach code line.
func codePair(line string) (uint32, uint32, bool) {
	addr, val, ok := compiler.PnachPair(line)
	if !ok {
		m := rawLine.FindStringSubmatch(line)
		if m == nil {
			return 0, 0, false
		}
		addr, val = m[1], m[2]
	}
	a, err := strconv.ParseUint(addr, 16, 32)
	if err != nil {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(val, 16, 32)
	if err != nil {
		return 0, 0, false
	}
	return uint32(a), uint32(v), true
}

// disasmRows decodes every 32-bit write in source.
func disasmRows(source string) (rows [][]string, skipped int) {
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		addr, word, ok := codePair(line)
		if !ok || addr>>28 != 2 {
			skipped++
			continue
		}
		pc := addr & 0x0FFFFFFF
		_, text := assembler.FormatInstruction(assembler.Decode(word, pc))
		rows = append(rows, []string{fmt.Sprintf("%08X", pc), fmt.Sprintf("%08X", word), text})
	}
	return rows, skipped
}
