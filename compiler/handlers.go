// handlers.go - Code generators for every CLPS2C command

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package compiler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/intuitionamiga/clps2c/script"
)

// abbreviations maps the short command names to their full names.
var abbreviations = map[string]string{
	"SE":   "SETENCODING",
	"SR":   "SENDRAW",
	"SRW":  "SENDRAWWEIGHT",
	"W8":   "WRITE8",
	"W16":  "WRITE16",
	"W32":  "WRITE32",
	"WF":   "WRITEFLOAT",
	"WS":   "WRITESTRING",
	"WB":   "WRITEBYTES",
	"WP8":  "WRITEPOINTER8",
	"WP16": "WRITEPOINTER16",
	"WP32": "WRITEPOINTER32",
	"WPF":  "WRITEPOINTERFLOAT",
	"CB":   "COPYBYTES",
	"F8":   "FILL8",
	"F16":  "FILL16",
	"F32":  "FILL32",
	"I8":   "INCREMENT8",
	"I16":  "INCREMENT16",
	"I32":  "INCREMENT32",
	"D8":   "DECREMENT8",
	"D16":  "DECREMENT16",
	"D32":  "DECREMENT32",
	"EI":   "ENDIF",
}

// handle renders one command outside an asm scope. Handlers set the
// command's Weight; fragments start with a newline unless noted.
func (c *Compiler) handle(cmd *script.Command) (string, error) {
	if full, ok := abbreviations[cmd.Type]; ok {
		cmd.Type = full
	}

	switch cmd.Type {
	case "SETENCODING":
		return "", c.setEncoding(cmd)
	case "SENDRAW":
		return sendRaw(cmd)
	case "SENDRAWWEIGHT":
		return sendRawWeight(cmd)
	case "WRITE8", "WRITE16", "WRITE32":
		return write(cmd)
	case "WRITEFLOAT":
		return writeFloat(cmd)
	case "WRITESTRING":
		return c.writeString(cmd)
	case "WRITEBYTES":
		return writeBytes(cmd)
	case "WRITEPOINTER8", "WRITEPOINTER16", "WRITEPOINTER32", "WRITEPOINTERFLOAT":
		return writePointer(cmd)
	case "COPYBYTES":
		return copyBytes(cmd)
	case "FILL8", "FILL16", "FILL32":
		return fill(cmd)
	case "INCREMENT8", "INCREMENT16", "INCREMENT32",
		"DECREMENT8", "DECREMENT16", "DECREMENT32":
		return step(cmd)
	case "OR8", "OR16", "AND8", "AND16", "XOR8", "XOR16":
		return boolOp(cmd)
	case "IF":
		return c.ifCode(cmd)
	case "ENDIF":
		return "", nil
	case "ASM_END":
		return "", script.NewError(script.MissAsmStart, cmd)
	}
	return "", script.NewError(script.UnknownCommand, cmd)
}

// ---------------------------------------------------------------------
// Argument helpers
// ---------------------------------------------------------------------

type reader func(*script.Command, *int) (string, error)

// more fails when the arguments ran out before position i.
func more(cmd *script.Command, i int) error {
	if i >= len(cmd.Data) {
		return script.NewError(script.WrongSyntax, cmd)
	}
	return nil
}

// done fails when arguments are left over at position i.
func done(cmd *script.Command, i int) error {
	if i < len(cmd.Data) {
		return script.NewError(script.WrongSyntax, cmd)
	}
	return nil
}

// addressAndValue reads the `ADDRESS VALUE` pair most commands take.
func addressAndValue(cmd *script.Command, value reader) (string, string, error) {
	if cmd.WordCount() < 3 {
		return "", "", script.NewError(script.WrongSyntax, cmd)
	}
	i := 0
	addr, err := script.Address(cmd, &i)
	if err != nil {
		return "", "", err
	}
	if err := more(cmd, i); err != nil {
		return "", "", err
	}
	v, err := value(cmd, &i)
	if err != nil {
		return "", "", err
	}
	if err := done(cmd, i); err != nil {
		return "", "", err
	}
	return addr, v, nil
}

// ---------------------------------------------------------------------
// Raw text and encoding
// ---------------------------------------------------------------------

func (c *Compiler) setEncoding(cmd *script.Command) error {
	if cmd.WordCount() != 2 {
		return script.NewError(script.WrongSyntax, cmd)
	}
	switch cmd.Data[0] {
	case "UTF-8":
		c.encoding = unicode.UTF8
	case "UTF-16":
		c.encoding = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	default:
		return script.NewError(script.ValueInvalid, cmd)
	}
	return nil
}

// sendRaw passes its text through untouched apart from escapes. The text
// is not put on a line of its own.
func sendRaw(cmd *script.Command) (string, error) {
	if cmd.WordCount() < 2 {
		return "", script.NewError(script.WrongSyntax, cmd)
	}
	i := 0
	v, err := script.StringValue(cmd, &i)
	if err != nil {
		return "", err
	}
	if err := done(cmd, i); err != nil {
		return "", err
	}
	cmd.Weight = 0
	return rawEscapes.Replace(v), nil
}

var rawEscapes = strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\"`, `"`)

func sendRawWeight(cmd *script.Command) (string, error) {
	v, err := sendRaw(cmd)
	if err != nil {
		return "", err
	}
	cmd.Weight = 1 + strings.Count(v, "\n")
	return "\n" + v, nil
}

// ---------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------

// write:
//
//	W8   0aaaaaaa 000000vv
//	W16  1aaaaaaa 0000vvvv
//	W32  2aaaaaaa vvvvvvvv
func write(cmd *script.Command) (string, error) {
	addr, v, err := addressAndValue(cmd, script.IntValue)
	if err != nil {
		return "", err
	}
	switch cmd.Type {
	case "WRITE8":
		addr, v = "0"+addr, "000000"+v[6:]
	case "WRITE16":
		addr, v = "1"+addr, "0000"+v[4:]
	default:
		addr = "2" + addr
	}
	cmd.Weight = 1
	return "\n" + addr + " " + v, nil
}

func writeFloat(cmd *script.Command) (string, error) {
	addr, v, err := addressAndValue(cmd, script.FloatValue)
	if err != nil {
		return "", err
	}
	cmd.Weight = 1
	return "\n2" + addr + " " + v, nil
}

var stringEscapes = strings.NewReplacer(`\0`, "\x00", `\n`, "\n", `\t`, "\t", `\"`, `"`)

func (c *Compiler) writeString(cmd *script.Command) (string, error) {
	addr, v, err := addressAndValue(cmd, script.StringValue)
	if err != nil {
		return "", err
	}
	b, err := c.encoding.NewEncoder().Bytes([]byte(stringEscapes.Replace(v)))
	if err != nil {
		return "", script.NewError(script.ValueInvalid, cmd)
	}
	out := aobPairs(b, addr)
	cmd.Weight = strings.Count(out, "\n")
	return out, nil
}

func writeBytes(cmd *script.Command) (string, error) {
	addr, v, err := addressAndValue(cmd, script.StringValue)
	if err != nil {
		return "", err
	}
	if !script.IsAOBValid(v) {
		return "", script.NewError(script.ValueInvalid, cmd)
	}
	var b []byte
	for _, f := range strings.Fields(v) {
		n, _ := strconv.ParseUint(f, 16, 8)
		b = append(b, byte(n))
	}
	out := aobPairs(b, addr)
	cmd.Weight = strings.Count(out, "\n")
	return out, nil
}

// aobPairs lays bytes out from start as 32-bit writes, then a 16-bit
// and/or 8-bit write for the 1 to 3 bytes left over.
func aobPairs(b []byte, start string) string {
	base, _ := strconv.ParseUint(start, 16, 32)
	at := func(off int) string {
		return fmt.Sprintf("%08X", uint32(base)+uint32(off))[1:]
	}

	var sb strings.Builder
	words := len(b) / 4
	for i := 0; i < words; i++ {
		w := b[i*4 : i*4+4]
		fmt.Fprintf(&sb, "\n2%s %02X%02X%02X%02X", at(i*4), w[3], w[2], w[1], w[0])
	}

	n := len(b)
	switch n % 4 {
	case 1:
		fmt.Fprintf(&sb, "\n0%s 000000%02X", at(words*4), b[n-1])
	case 2:
		fmt.Fprintf(&sb, "\n1%s 0000%02X%02X", at(words*4), b[n-1], b[n-2])
	case 3:
		fmt.Fprintf(&sb, "\n1%s 0000%02X%02X", at(words*4), b[n-2], b[n-3])
		fmt.Fprintf(&sb, "\n0%s 000000%02X", at(words*4+2), b[n-1])
	}
	return sb.String()
}

// writePointer:
//
//	6aaaaaaa vvvvvvvv
//	000wnnnn iiiiiiii
//	pppppppp pppppppp
//
// w is the write width (0, 1, 2 for 8, 16, 32 bits), nnnn the number of
// offsets, i the first offset and p the remaining ones, two per line.
func writePointer(cmd *script.Command) (string, error) {
	if cmd.WordCount() < 3 {
		return "", script.NewError(script.WrongSyntax, cmd)
	}
	i := 0
	offs, err := script.Addresses(cmd, &i)
	if err != nil {
		return "", err
	}
	if err := more(cmd, i); err != nil {
		return "", err
	}
	value := script.IntValue
	if cmd.Type == "WRITEPOINTERFLOAT" {
		value = script.FloatValue
	}
	v, err := value(cmd, &i)
	if err != nil {
		return "", err
	}
	if err := done(cmd, i); err != nil {
		return "", err
	}

	count := fmt.Sprintf("%04X", len(offs)-1)
	if count == "0000" {
		return "", script.NewError(script.WrongSyntax, cmd)
	}

	var out string
	switch cmd.Type {
	case "WRITEPOINTER8":
		out = fmt.Sprintf("6%s 000000%s\n0000%s %s", offs[0], v[6:], count, offs[1])
	case "WRITEPOINTER16":
		out = fmt.Sprintf("6%s 0000%s\n0001%s %s", offs[0], v[4:], count, offs[1])
	default:
		out = fmt.Sprintf("6%s %s\n0002%s %s", offs[0], v, count, offs[1])
	}

	rest, extra := remainingOffsets(offs)
	cmd.Weight = 2 + extra
	return "\n" + out + rest, nil
}

// remainingOffsets renders the offsets after the first, two per line, the
// last line padded with zero. It also returns the number of lines.
func remainingOffsets(offs []string) (string, int) {
	var sb strings.Builder
	lines := 0
	rest := offs[2:]
	for i, o := range rest {
		if i%2 == 0 {
			lines++
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
		sb.WriteString(o)
	}
	if len(rest)%2 == 1 {
		sb.WriteString(" 00000000")
	}
	return sb.String(), lines
}

// copyBytes:
//
//	5sssssss nnnnnnnn
//	0ddddddd 00000000
func copyBytes(cmd *script.Command) (string, error) {
	if cmd.WordCount() < 4 {
		return "", script.NewError(script.WrongSyntax, cmd)
	}
	i := 0
	src, err := script.Address(cmd, &i)
	if err != nil {
		return "", err
	}
	if err := more(cmd, i); err != nil {
		return "", err
	}
	dst, err := script.Address(cmd, &i)
	if err != nil {
		return "", err
	}
	if err := more(cmd, i); err != nil {
		return "", err
	}
	n, err := script.IntValueInt(cmd, &i)
	if err != nil {
		return "", err
	}
	if err := done(cmd, i); err != nil {
		return "", err
	}
	if n < 0 {
		return "", script.NewError(script.ValueInvalid, cmd)
	}
	cmd.Weight = 2
	return fmt.Sprintf("\n5%s %s\n0%s 00000000", src, script.Hex8(n), dst), nil
}

// fill:
//
//	F8   8aaaaaaa nnnn0001 / 000000vv 00000000
//	F16  8aaaaaaa nnnn0001 / 1000vvvv 00000000
//	F32  4aaaaaaa nnnn0001 / vvvvvvvv 00000000
//
// nnnn counts elements of the write width, not bytes.
func fill(cmd *script.Command) (string, error) {
	if cmd.WordCount() < 4 {
		return "", script.NewError(script.WrongSyntax, cmd)
	}
	i := 0
	addr, err := script.Address(cmd, &i)
	if err != nil {
		return "", err
	}
	if err := more(cmd, i); err != nil {
		return "", err
	}
	v, err := script.IntValue(cmd, &i)
	if err != nil {
		return "", err
	}
	if err := more(cmd, i); err != nil {
		return "", err
	}
	n, err := script.IntValueInt(cmd, &i)
	if err != nil {
		return "", err
	}
	if err := done(cmd, i); err != nil {
		return "", err
	}
	if n < 0 {
		return "", script.NewError(script.ValueInvalid, cmd)
	}

	var count string
	switch cmd.Type {
	case "FILL8":
		if n > 0xFFFF {
			return "", script.NewError(script.ValueInvalid, cmd)
		}
		addr, v, count = "8"+addr, "000000"+v[6:], fmt.Sprintf("%04X", n)
	case "FILL16":
		if n%2 != 0 {
			return "", script.NewError(script.LengthNotDivisibleBy2, cmd)
		}
		if n > 0x1FFFE {
			return "", script.NewError(script.ValueInvalid, cmd)
		}
		addr, v, count = "8"+addr, "1000"+v[4:], fmt.Sprintf("%04X", n/2)
	default:
		if n%4 != 0 {
			return "", script.NewError(script.LengthNotDivisibleBy4, cmd)
		}
		if n > 0x3FFFC {
			return "", script.NewError(script.ValueInvalid, cmd)
		}
		addr, count = "4"+addr, fmt.Sprintf("%04X", n/4)
	}
	cmd.Weight = 2
	return fmt.Sprintf("\n%s %s0001\n%s 00000000", addr, count, v), nil
}

// ---------------------------------------------------------------------
// Arithmetic
// ---------------------------------------------------------------------

// stepCodes holds the code prefix of each increment and decrement. The
// 32-bit forms carry their value on a second line.
var stepCodes = map[string]string{
	"INCREMENT8":  "300000",
	"INCREMENT16": "3020",
	"INCREMENT32": "30400000",
	"DECREMENT8":  "301000",
	"DECREMENT16": "3030",
	"DECREMENT32": "30500000",
}

func step(cmd *script.Command) (string, error) {
	addr, v, err := addressAndValue(cmd, script.IntValue)
	if err != nil {
		return "", err
	}
	code := stepCodes[cmd.Type]
	cmd.Weight = 1
	switch {
	case strings.HasSuffix(cmd.Type, "32"):
		cmd.Weight = 2
		return fmt.Sprintf("\n%s 0%s\n%s 00000000", code, addr, v), nil
	case strings.HasSuffix(cmd.Type, "16"):
		return fmt.Sprintf("\n%s%s 0%s", code, v[4:], addr), nil
	}
	return fmt.Sprintf("\n%s%s 0%s", code, v[6:], addr), nil
}

// boolTypes gives the t nibble of `7aaaaaaa 00t0vvvv`.
var boolTypes = map[string]string{
	"OR8": "0", "OR16": "1",
	"AND8": "2", "AND16": "3",
	"XOR8": "4", "XOR16": "5",
}

func boolOp(cmd *script.Command) (string, error) {
	addr, v, err := addressAndValue(cmd, script.IntValue)
	if err != nil {
		return "", err
	}
	if strings.HasSuffix(cmd.Type, "8") {
		v = "00" + v[6:]
	} else {
		v = v[4:]
	}
	cmd.Weight = 1
	return fmt.Sprintf("\n7%s 00%s0%s", addr, boolTypes[cmd.Type], v), nil
}

// ---------------------------------------------------------------------
// If
// ---------------------------------------------------------------------

var ifGrammar = regexp.MustCompile(`(?i)If (\w+\s*(?:\+\s*-?(0x)?[0-9A-F]{1,8})*) ([=!<>&|]|~[&|])([:.]) (\w+\s*(?:\+\s*-?(0x){1}[0-9A-F]{1,8}|\+\s*-?\d+)*)(?: (&&) (\w+\s*(?:\+\s*-?(0x)?[0-9A-F]{1,8})*) ([!=<>&|]|~[&|])([:.]) (\w+\s*(?:\+\s*-?(0x){1}[0-9A-F]{1,8}|\+\s*-?\d+)*))*$`)

var conditionCodes = map[string]string{
	"=": "0", "!": "1", "<": "2", ">": "3",
	"~&": "4", "&": "5", "~|": "6", "|": "7",
}

// ifCode renders the first condition of an If:
//
//	E-type  Etnnvvvv caaaaaaa
//	D-type  Daaaaaaa nnctvvvv
//
// t is 1 for a byte compare ('.') and 0 for a halfword (':'), c the
// condition. nn stays a placeholder until the If packer counts the lines
// of the scope. Commands split off an && chain are already rendered and
// skip the grammar check.
func (c *Compiler) ifCode(cmd *script.Command) (string, error) {
	if cmd.WordCount() < 2 || (!cmd.Rendered && !ifGrammar.MatchString(cmd.FullLine)) {
		return "", script.NewError(script.WrongSyntax, cmd)
	}
	i := 0
	addr, err := script.Address(cmd, &i)
	if err != nil {
		return "", err
	}
	if err := more(cmd, i); err != nil {
		return "", err
	}
	op := cmd.Data[i]
	if len(op) < 2 {
		return "", script.NewError(script.WrongSyntax, cmd)
	}
	cond, ok := conditionCodes[op[:len(op)-1]]
	if !ok {
		return "", script.NewError(script.WrongSyntax, cmd)
	}
	i++
	v, err := script.IntValue(cmd, &i)
	if err != nil {
		return "", err
	}

	var typ string
	switch op[len(op)-1] {
	case '.':
		typ, v = "1", "00"+v[6:]
	case ':':
		typ, v = "0", v[4:]
	default:
		return "", script.NewError(script.WrongSyntax, cmd)
	}

	cmd.Weight = 1
	if c.opts.DType {
		return fmt.Sprintf("\nD%s nn%s%s%s", addr, cond, typ, v), nil
	}
	return fmt.Sprintf("\nE%snn%s %s%s", typ, v, cond, addr), nil
}

// ---------------------------------------------------------------------
// Assembly scopes
// ---------------------------------------------------------------------

// asmStart returns the load address of an ASM_START scope.
func asmStart(cmd *script.Command) (uint32, error) {
	if cmd.WordCount() < 2 {
		return 0, script.NewError(script.WrongSyntax, cmd)
	}
	i := 0
	addr, err := script.Address(cmd, &i)
	if err != nil {
		return 0, err
	}
	if err := done(cmd, i); err != nil {
		return 0, err
	}
	base, _ := strconv.ParseUint("2"+addr, 16, 32)
	return uint32(base), nil
}

// asmEnd assembles the commands buffered since ASM_START into 32-bit
// writes, one per instruction.
func (c *Compiler) asmEnd(cmd *script.Command, scope []*script.Command, base uint32) (string, error) {
	if len(cmd.Data) != 0 {
		return "", script.NewError(script.WrongSyntax, cmd)
	}
	words, err := c.ee.Assemble(scope, base, c.sets)
	if err != nil {
		return "", err
	}
	c.listing = append(c.listing, c.ee.GetListing()...)

	var sb strings.Builder
	for i, w := range words {
		fmt.Fprintf(&sb, "\n%08X %08X", base+uint32(i*4), w)
	}
	cmd.Weight = len(words)
	return sb.String(), nil
}
