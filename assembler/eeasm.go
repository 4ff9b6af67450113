// eeasm.go - EE (R5900) assembler for CLPS2C asm scopes

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

EE Assembler: MIPS R5900 assembler for CLPS2C asm scopes
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later

Assembler syntax, one instruction per command:

  Registers:
    $zero $at $v0-$v1 $a0-$a3 $t0-$t9 $s0-$s7 $k0-$k1 $gp $sp $fp $ra
    $f0-$f31 (FPU), $vf0-$vf31 and $vi0-$vi15 (VU0 macro mode)

  Labels:
    name:                 - branch target, case-insensitive, scope-local
    name: instr ...       - label and instruction on one line

  Abbreviations:
    add $t0,$t1           -> add $t0,$t0,$t1 (also addi, sll, padd*, ...)
    dsllv $t0,$t1         -> dsllv $t0,$zero,$t1
    jalr $t1              -> jalr $ra,$t1

  Pseudo-Instructions:
    li rt,imm             -> ori / addiu, or lui + ori
    blt/bge rs,rt,label   -> slt $at,rs,rt + bne/beq $at,$zero,label
    ble/bgt rs,rt,label   -> slt $at,rt,rs + beq/bne $at,$zero,label
    lw rt,address         -> lui rt,hi + lw rt,lo(rt)
    lwc1 ft,address       -> lui $at,hi + lwc1 ft,lo($at)

  Jumps:
    j addr [+off ...]     - absolute, Set names and '+' terms allowed

  COP2 suffixes:
    vadd.xyz ...          - dest mask, letters in xyzw order
    qmfc2.i ...           - interlock

Encoding: every instruction is one 32-bit little-endian word.
*/

package assembler

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/intuitionamiga/clps2c/script"
)

// ---------------------------------------------------------------------
// Pseudo-instruction sets
// ---------------------------------------------------------------------

// abbreviated instructions accept "rd,rt" for "rd,rd,rt".
var abbreviated = mapset.NewSet[string](
	"ADDI", "ADDIU", "SLTI", "SLTIU",
	"ANDI", "ORI", "XORI", "DADDI",
	"DADDIU", "SLL", "SRL", "SRA",
	"SLLV", "SRAV", "DSRAV", "ADD",
	"ADDU", "SUB", "SUBU", "AND",
	"OR", "XOR", "NOR", "SLT",
	"SLTU", "DSLL", "DSRL", "DSRA",
	"DSLL32", "DSRL32", "DSRA32", "MADD",
	"MADDU", "MULT1", "MULTU1", "MADD1",
	"MADDU1", "PADDW", "PSUBW", "PCGTW",
	"PMAXW", "PADDH", "PSUBH", "PCGTH",
	"PMAXH", "PADDB", "PSUBB", "PCGTB",
	"PADDSW", "PSUBSW", "PEXTLW", "PPACW",
	"PADDSH", "PSUBSH", "PEXTLH", "PPACH",
	"PADDSB", "PSUBSB", "PEXTLB", "PPACB",
	"PCEQW", "PMINW", "PADSBH", "PCEQH",
	"PMINH", "PCEQB", "PADDUW", "PSUBUW",
	"PEXTUW", "PADDUH", "PSUBUH",
	"PEXTUH", "PADDUB", "PSUBUB",
	"PEXTUB", "QFSRV", "PMADDW", "PSLLVW",
	"PSRLVW", "PMSUBW", "PINTH", "PMULTW",
	"PCPYLD", "PMADDH", "PHMADH", "PAND",
	"PXOR", "PMSUBH", "PHMSBH", "PMULTH",
	"PMADDUW", "PSRAVW", "PINTEH", "PMULTUW",
	"PCPYUD", "POR", "PNOR", "ADD.S",
	"SUB.S", "MUL.S", "DIV.S", "MADD.S",
	"MSUB.S", "DADDU",
)

// loadStores take "rt,offset(base)" and also a bare 32-bit address.
var loadStores = mapset.NewSet[string](
	"LB", "LBU", "LD", "LDL", "LDR", "LH", "LHU",
	"LW", "LWL", "LWR", "LWU", "LQ", "LWC1",
	"SB", "SD", "SDL", "SDR", "SH", "SW", "SWL", "SWR", "SQ", "SWC1",
	"LQC2", "SQC2",
)

// viaAt are the load/stores whose target cannot hold the upper half of an
// address, so $at does.
var viaAt = mapset.NewSet[string]("LWC1", "SWC1", "LQC2", "SQC2")

// compareBranches are the slt-based pseudo branches.
var compareBranches = mapset.NewSet[string]("BLT", "BGE", "BLE", "BGT")

// ---------------------------------------------------------------------
// Registers
// ---------------------------------------------------------------------

var gprNames = [32]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// numbered names prefix0..prefix(n-1); the first ten also answer to a
// zero-padded form such as "f05".
func numbered(prefix string, n int) map[string]uint32 {
	m := make(map[string]uint32, n+10)
	for i := 0; i < n; i++ {
		m[prefix+strconv.Itoa(i)] = uint32(i)
		if i < 10 {
			m[fmt.Sprintf("%s%02d", prefix, i)] = uint32(i)
		}
	}
	return m
}

var (
	gprs = func() map[string]uint32 {
		m := make(map[string]uint32, len(gprNames))
		for i, name := range gprNames {
			m[name] = uint32(i)
		}
		return m
	}()
	fprs  = numbered("f", 32)
	vu0fs = numbered("vf", 32)
	vu0is = numbered("vi", 16)
)

func registerFile(op Operand) map[string]uint32 {
	switch op {
	case RS, RT, RD:
		return gprs
	case FS, FT, FD:
		return fprs
	case VFS, VFT, VFD:
		return vu0fs
	case VIS, VIT, VID:
		return vu0is
	}
	return nil
}

// parseRegister resolves a register with or without its '$'. Names are
// lower case.
func parseRegister(name string, file map[string]uint32) (uint32, bool) {
	r, ok := file[strings.TrimPrefix(name, "$")]
	return r, ok
}

// ---------------------------------------------------------------------
// EEAssembler
// ---------------------------------------------------------------------

// ListingEntry is one assembled word with the instruction that produced it.
type ListingEntry struct {
	Address uint32
	Word    uint32
	Source  string
}

func (e ListingEntry) String() string {
	return fmt.Sprintf("%08X  %08X  %s", e.Address, e.Word, e.Source)
}

// EEAssembler assembles the commands of one asm scope.
type EEAssembler struct {
	labels      map[string]uint32 // upper-cased name -> offset in the scope
	sets        *script.Sets
	listingMode bool
	listing     []ListingEntry
}

// NewEEAssembler creates a new assembler instance.
func NewEEAssembler() *EEAssembler {
	return &EEAssembler{labels: make(map[string]uint32)}
}

// SetListingMode enables or disables listing output.
func (a *EEAssembler) SetListingMode(enabled bool) {
	a.listingMode = enabled
}

// GetListing returns the listing of the last Assemble call.
func (a *EEAssembler) GetListing() []ListingEntry {
	return a.listing
}

func (a *EEAssembler) addListing(addr, word uint32, cmd *script.Command) {
	if !a.listingMode {
		return
	}
	a.listing = append(a.listing, ListingEntry{Address: addr, Word: word, Source: sourceText(cmd)})
}

// sourceText renders an expanded command as assembler text.
func sourceText(cmd *script.Command) string {
	s := strings.ToLower(cmd.Type)
	if len(cmd.Data) > 0 {
		s += " " + strings.Join(cmd.Data, "")
	}
	return s
}

// Assemble encodes cmds into one word per instruction. Labels are local to
// the call; base only places the listing. sets resolves names that appear
// inside "offset(base)" operands and may be nil.
func (a *EEAssembler) Assemble(cmds []*script.Command, base uint32, sets *script.Sets) ([]uint32, error) {
	a.labels = make(map[string]uint32)
	a.listing = nil
	a.sets = sets

	expanded, err := a.preprocess(cmds)
	if err != nil {
		return nil, err
	}

	words := make([]uint32, 0, len(expanded))
	for i, cmd := range expanded {
		pc := uint32(i * 4)
		word, err := a.encode(cmd, pc)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
		a.addListing(base+pc, word, cmd)
	}
	return words, nil
}

// Bytes lays words out little-endian, as they sit in EE memory.
func Bytes(words []uint32) []byte {
	out := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[4*i:], w)
	}
	return out
}

// ---------------------------------------------------------------------
// Preprocessing
// ---------------------------------------------------------------------

// derive returns a command standing for src's source line with a new
// mnemonic and operands.
func derive(src *script.Command, typ string, data ...string) *script.Command {
	c := src.Clone()
	c.Type = typ
	c.Data = data
	c.Output = ""
	c.Rendered = false
	return c
}

func asmError(kind script.ErrorKind, cmd *script.Command) error {
	return script.NewError(kind, cmd)
}

// preprocess records labels and rewrites abbreviations and
// pseudo-instructions into table instructions.
func (a *EEAssembler) preprocess(cmds []*script.Command) ([]*script.Command, error) {
	pending := append([]*script.Command(nil), cmds...)
	var out []*script.Command

	for i := 0; i < len(pending); i++ {
		cmd := pending[i]
		n := len(cmd.Data)

		switch {
		case strings.HasSuffix(cmd.Type, ":"):
			name := strings.TrimRight(cmd.Type, ":")
			if name == "" || strings.Contains(cmd.Type, "::") {
				return nil, asmError(script.AsmWrongSyntax, cmd)
			}
			key := strings.ToUpper(name)
			if _, dup := a.labels[key]; dup {
				return nil, asmError(script.AsmLabelAlreadyDefined, cmd)
			}
			a.labels[key] = uint32(len(out) * 4)
			if n > 0 {
				pending[i] = derive(cmd, strings.ToUpper(cmd.Data[0]), cmd.Data[1:]...)
				i--
			}

		case n != 3 && abbreviated.Contains(cmd.Type):
			if n != 2 {
				return nil, asmError(script.AsmWrongSyntax, cmd)
			}
			out = append(out, derive(cmd, cmd.Type, cmd.Data[0], ","+cmd.Data[0], cmd.Data[1]))

		case n != 3 && (cmd.Type == "DSLLV" || cmd.Type == "DSRLV"):
			if n != 2 {
				return nil, asmError(script.AsmWrongSyntax, cmd)
			}
			out = append(out, derive(cmd, cmd.Type, cmd.Data[0], ",$zero", cmd.Data[1]))

		case n >= 1 && (cmd.Type == "J" || cmd.Type == "JAL"):
			k := 0
			addr, err := script.Address(cmd, &k)
			if err != nil {
				return nil, err
			}
			if k < n {
				return nil, asmError(script.AsmWrongSyntax, cmd)
			}
			out = append(out, derive(cmd, cmd.Type, addr))

		case n == 1 && cmd.Type == "JALR":
			out = append(out, derive(cmd, "JALR", "$ra", ","+cmd.Data[0]))

		case compareBranches.Contains(cmd.Type):
			expanded, err := expandCompareBranch(cmd)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)

		case loadStores.Contains(cmd.Type):
			expanded, err := a.expandLoadStore(cmd)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)

		case cmd.Type == "LI":
			expanded, err := expandLoadImmediate(cmd)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)

		default:
			out = append(out, cmd)
		}
	}
	return out, nil
}

// expandCompareBranch turns blt/bge/ble/bgt into slt plus beq/bne on $at.
func expandCompareBranch(cmd *script.Command) ([]*script.Command, error) {
	if len(cmd.Data) != 3 {
		return nil, asmError(script.AsmWrongSyntax, cmd)
	}
	r1 := cmd.Data[0]
	r2 := strings.TrimLeft(cmd.Data[1], ",")
	label := cmd.Data[2]
	if cmd.Type == "BLE" || cmd.Type == "BGT" {
		r1, r2 = r2, r1
	}
	branch := "BNE"
	if cmd.Type == "BGE" || cmd.Type == "BLE" {
		branch = "BEQ"
	}
	return []*script.Command{
		derive(cmd, "SLT", "$at", ","+r1, ","+r2),
		derive(cmd, branch, "$at", ",$zero", label),
	}, nil
}

// expandLoadStore normalizes "rt,offset(base)" into three operands with a
// hex offset, or splits "rt,address" into lui plus a based access.
func (a *EEAssembler) expandLoadStore(cmd *script.Command) ([]*script.Command, error) {
	c := cmd.Clone()
	switch len(c.Data) {
	case 2:
	case 3:
		// "lw $t0, 0x1ea8 ($t1)" tokenizes the base apart
		c.Data = []string{c.Data[0], c.Data[1] + c.Data[2]}
	default:
		return nil, asmError(script.AsmWrongSyntax, cmd)
	}

	arg := c.Data[1]
	if open := strings.IndexByte(arg, '('); open >= 0 && strings.Contains(arg, ")") {
		if open+1 > len(arg)-1 {
			return nil, asmError(script.AsmWrongSyntax, cmd)
		}
		offset := strings.TrimRightFunc(arg[:open], unicode.IsSpace)
		if offset == "," {
			offset = ",0x0"
		}
		c.Data = []string{c.Data[0], offset, "," + arg[open+1:len(arg)-1]}
		if err := a.sets.ApplyToCommand(c); err != nil {
			return nil, err
		}
		if len(c.Data) < 2 || c.Data[1] == "" {
			return nil, asmError(script.AsmWrongSyntax, cmd)
		}
		off := strings.TrimRightFunc(c.Data[1][1:], unicode.IsSpace)
		if !strings.HasPrefix(off, "0x") && !strings.HasPrefix(off, "-0x") {
			if rest, neg := strings.CutPrefix(off, "-"); neg {
				c.Data[1] = ",-0x" + rest
			} else {
				c.Data[1] = ",0x" + off
			}
		}
		return []*script.Command{c}, nil
	}

	operand := strings.TrimSpace(strings.TrimLeft(arg, ","))
	if !script.IsAddressValid(operand) {
		return nil, asmError(script.AsmImmediateValueInvalid, cmd)
	}
	addr, err := script.ConvertAddress(operand)
	if err != nil {
		return nil, asmError(script.AsmImmediateValueInvalid, cmd)
	}
	reg := c.Data[0]

	if addr < 0x8000 {
		return []*script.Command{
			derive(cmd, c.Type, reg, fmt.Sprintf(",0x%X", uint32(addr)), ",$zero"),
		}, nil
	}

	// The offset is signed: an address whose low half is 0x8000 or more
	// takes the next upper half and reaches back.
	upper := (addr >> 16) & 0xFFFF
	lower := addr & 0xFFFF
	offset := fmt.Sprintf(",0x%X", lower)
	if lower >= 0x8000 {
		upper++
		offset = fmt.Sprintf(",-0x%X", 0x10000-lower)
	}
	base := reg
	if viaAt.Contains(c.Type) {
		base = "$at"
	}
	return []*script.Command{
		derive(cmd, "LUI", base, fmt.Sprintf(",0x%X", upper)),
		derive(cmd, c.Type, reg, offset, ","+base),
	}, nil
}

// expandLoadImmediate picks ori for zero-extended 16-bit values, addiu for
// small negatives and lui(+ori) for everything else. Values below -0x8000
// get lui/ori, where the CLPS2C reference compiler emits a single addiu
// with the immediate truncated, so the output differs for those inputs.
func expandLoadImmediate(cmd *script.Command) ([]*script.Command, error) {
	if len(cmd.Data) != 2 {
		return nil, asmError(script.AsmWrongSyntax, cmd)
	}
	operand := strings.TrimSpace(strings.TrimLeft(cmd.Data[1], ","))
	if !script.IsIntValueValid(operand) {
		return nil, asmError(script.AsmImmediateValueInvalid, cmd)
	}
	imm, err := script.ConvertIntValue(operand)
	if err != nil {
		return nil, asmError(script.AsmImmediateValueInvalid, cmd)
	}
	reg := cmd.Data[0]

	if imm >= -0x8000 && imm < 0x10000 {
		ins := "ORI"
		if imm < 0 {
			ins = "ADDIU"
		}
		return []*script.Command{
			derive(cmd, ins, reg, ",$zero", fmt.Sprintf(",0x%X", uint32(imm))),
		}, nil
	}

	upper := uint32(imm) >> 16
	lower := uint32(imm) & 0xFFFF
	out := []*script.Command{derive(cmd, "LUI", reg, fmt.Sprintf(",0x%X", upper))}
	if lower != 0 {
		out = append(out, derive(cmd, "ORI", reg, ","+reg, fmt.Sprintf(",0x%X", lower)))
	}
	return out, nil
}

// ---------------------------------------------------------------------
// Encoding
// ---------------------------------------------------------------------

// fields are the decoded operands of one instruction.
type fields struct {
	rs, rt, rd, sa uint32
	imm            int32
}

func (f *fields) slot(op Operand) *uint32 {
	switch op {
	case RS, FS, VFS, VIS:
		return &f.rs
	case RT, FT, VFT, VIT:
		return &f.rt
	}
	return &f.rd
}

// smallInt parses a 5-bit field value.
func smallInt(operand string) (uint32, bool) {
	if !script.IsIntValueValid(operand) {
		return 0, false
	}
	v, err := script.ConvertIntValue(operand)
	if err != nil || v < 0 || v > 0x1F {
		return 0, false
	}
	return uint32(v), true
}

func (a *EEAssembler) encode(cmd *script.Command, pc uint32) (uint32, error) {
	in, ok := Lookup(cmd.Type)
	if !ok {
		return 0, asmError(script.AsmUnknownMnemonic, cmd)
	}
	ops := in.Operands()
	if len(cmd.Data) != len(ops) {
		return 0, asmError(script.AsmWrongSyntax, cmd)
	}

	var f fields
	for i, op := range ops {
		tok := cmd.Data[i]
		if i > 0 && !strings.HasPrefix(tok, ",") {
			return 0, asmError(script.AsmWrongSyntax, cmd)
		}
		operand := strings.TrimSpace(strings.TrimLeft(tok, ","))

		switch op {
		case Imm5:
			v, ok := smallInt(operand)
			if !ok {
				return 0, asmError(script.AsmImmediateValueInvalid, cmd)
			}
			f.rd = v
		case Shift:
			v, ok := smallInt(operand)
			if !ok {
				return 0, asmError(script.AsmShiftAmountValueInvalid, cmd)
			}
			f.sa = v
		case Imm:
			if !script.IsIntValueValid(operand) {
				return 0, asmError(script.AsmImmediateValueInvalid, cmd)
			}
			v, err := script.ConvertIntValue(operand)
			if err != nil {
				return 0, asmError(script.AsmImmediateValueInvalid, cmd)
			}
			f.imm = v
		case Label:
			if in.Family == Jump {
				target, err := strconv.ParseUint(operand, 16, 32)
				if err != nil {
					return 0, asmError(script.AsmImmediateValueInvalid, cmd)
				}
				f.imm = int32(target / 4)
				break
			}
			target, ok := a.labels[strings.ToUpper(operand)]
			if !ok {
				return 0, asmError(script.AsmUndefinedLabel, cmd)
			}
			f.imm = (int32(target) - int32(pc+4)) / 4
		default:
			r, ok := parseRegister(operand, registerFile(op))
			if !ok {
				return 0, asmError(script.AsmUnknownRegister, cmd)
			}
			*f.slot(op) = r
		}
	}

	var dest, interlock uint32
	var err error
	switch in.Family {
	case COP2:
		interlock, err = interlockBit(cmd)
	case COP2Special1, COP2Special2:
		dest, err = destMask(cmd)
	}
	if err != nil {
		return 0, err
	}
	return pack(in, f, dest, interlock), nil
}

// pack lays out the fields of in as one instruction word.
func pack(in *Instruction, f fields, dest, interlock uint32) uint32 {
	op := in.Opcode
	imm16 := uint32(f.imm) & 0xFFFF
	switch in.Family {
	case Normal:
		return op<<26 | f.rs<<21 | f.rt<<16 | imm16
	case Jump:
		return op<<26 | uint32(f.imm)&0x03FFFFFF
	case Special:
		return f.rs<<21 | f.rt<<16 | f.rd<<11 | f.sa<<6 | op
	case RegImm:
		return 0b000001<<26 | f.rs<<21 | op<<16 | imm16
	case MMI:
		return 0b011100<<26 | f.rs<<21 | f.rt<<16 | f.rd<<11 | f.sa<<6 | op
	case MMI0, MMI1, MMI2, MMI3:
		return 0b011100<<26 | f.rs<<21 | f.rt<<16 | f.rd<<11 | op<<6 | mmiFunct[in.Family]
	case PMFHL:
		return 0b011100<<26 | f.rd<<11 | op<<6 | 0b110000
	case PMTHL:
		return 0b011100<<26 | f.rs<<21 | op<<6 | 0b110001
	case FPUS:
		return 0b010001<<26 | 0b10000<<21 | f.rt<<16 | f.rs<<11 | f.rd<<6 | op
	case FPUW:
		return 0b010001<<26 | 0b10100<<21 | f.rs<<11 | f.rd<<6 | op
	case BC1:
		return 0b010001<<26 | 0b01000<<21 | op<<16 | imm16
	case COP1:
		return 0b010001<<26 | op<<21 | f.rt<<16 | f.rs<<11
	case COP2:
		return 0b010010<<26 | op<<21 | f.rt<<16 | f.rd<<11 | interlock
	case COP2Special1:
		return 0b010010<<26 | 1<<25 | dest<<21 | f.rt<<16 | f.rs<<11 | f.rd<<6 | op
	case COP2Special2:
		return 0b010010<<26 | 1<<25 | dest<<21 | f.rt<<16 | f.rs<<11 |
			(op>>2&0x1F)<<6 | 0b1111<<2 | op&0b11
	}
	// BC0, COP0 and TLB instructions have no encodings.
	return 0
}

// mmiFunct is the function field selecting each MMI sub-table.
var mmiFunct = map[Family]uint32{
	MMI0: 0b001000,
	MMI1: 0b101000,
	MMI2: 0b001001,
	MMI3: 0b101001,
}

// suffix returns what follows the first '.' of the mnemonic.
func suffix(typ string) (string, bool) {
	_, after, found := strings.Cut(typ, ".")
	return after, found
}

// interlockBit reads the ".I" suffix of a COP2 transfer.
func interlockBit(cmd *script.Command) (uint32, error) {
	s, found := suffix(cmd.Type)
	if !found {
		return 0, nil
	}
	if s != "I" {
		return 0, asmError(script.AsmWrongInterlock, cmd)
	}
	return 1, nil
}

var destBits = map[rune]uint32{'X': 0b1000, 'Y': 0b0100, 'Z': 0b0010, 'W': 0b0001}

// destMask reads the ".XYZW" field mask of a VU0 macro instruction. Each
// letter may appear once and in xyzw order.
func destMask(cmd *script.Command) (uint32, error) {
	s, found := suffix(cmd.Type)
	if !found {
		return 0, nil
	}
	if len(s) == 0 || len(s) > 4 {
		return 0, asmError(script.AsmWrongDest, cmd)
	}
	var dest uint32
	for _, ch := range s {
		bit, ok := destBits[ch]
		if !ok {
			return 0, asmError(script.AsmWrongDest, cmd)
		}
		if dest != 0 && (dest&bit != 0 || bit > dest) {
			return 0, asmError(script.AsmWrongDest, cmd)
		}
		dest |= bit
	}
	return dest, nil
}
