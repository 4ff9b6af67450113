// eedis.go - EE (R5900) disassembler

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

EE Disassembler: turns R5900 words back into assembler text
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later

Decoding walks the instruction table. A table entry matches a word when
re-packing the fields it reads gives the same word back, so fields an
entry does not use must be zero. When several entries match, the one with
the most operands wins (or over move, beq over beqz), then table order.
*/

package assembler

import (
	"encoding/binary"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// ---------------------------------------------------------------------
// DecodedInstruction holds the decoded fields of a single word
// ---------------------------------------------------------------------

type DecodedInstruction struct {
	PC        uint32
	Raw       uint32
	Inst      *Instruction // nil when no table entry matches
	Rs        uint32
	Rt        uint32
	Rd        uint32
	Sa        uint32
	Imm       int32
	Dest      uint32
	Interlock uint32
}

// fieldsOf reads the operand fields in would use from word.
func fieldsOf(in *Instruction, word uint32) (fields, uint32, uint32) {
	var f fields
	switch in.Family {
	case FPUS, FPUW, COP1, COP2Special1, COP2Special2:
		f.rs = word >> 11 & 0x1F
	default:
		f.rs = word >> 21 & 0x1F
	}
	f.rt = word >> 16 & 0x1F
	switch in.Family {
	case FPUS, FPUW, COP2Special1:
		f.rd = word >> 6 & 0x1F
	default:
		f.rd = word >> 11 & 0x1F
	}
	f.sa = word >> 6 & 0x1F
	if in.Family == Jump {
		f.imm = int32(word & 0x03FFFFFF)
	} else {
		f.imm = int32(int16(word))
	}

	// Drop whatever the operand list does not read.
	var used fields
	for _, op := range in.Operands() {
		switch op {
		case Shift:
			used.sa = f.sa
		case Imm, Label:
			used.imm = f.imm
		case Imm5:
			used.rd = f.rd
		default:
			*used.slot(op) = *f.slot(op)
		}
	}

	var dest, interlock uint32
	switch in.Family {
	case COP2:
		interlock = word & 1
	case COP2Special1, COP2Special2:
		dest = word >> 21 & 0xF
	}
	return used, dest, interlock
}

// Decode decodes the instruction word found at pc.
func Decode(word, pc uint32) DecodedInstruction {
	d := DecodedInstruction{PC: pc, Raw: word}
	for i := range instructionTable {
		in := &instructionTable[i]
		f, dest, interlock := fieldsOf(in, word)
		if pack(in, f, dest, interlock) != word {
			continue
		}
		if d.Inst != nil && len(in.Operands()) <= len(d.Inst.Operands()) {
			continue
		}
		d.Inst = in
		d.Rs, d.Rt, d.Rd, d.Sa, d.Imm = f.rs, f.rt, f.rd, f.sa, f.imm
		d.Dest, d.Interlock = dest, interlock
	}
	return d
}

// ---------------------------------------------------------------------
// Formatting
// ---------------------------------------------------------------------

// signedImm instructions sign-extend their immediate; the rest show it raw.
var signedImm = mapset.NewSet[string]("ADDI", "ADDIU", "DADDI", "DADDIU", "SLTI", "SLTIU")

func regName(op Operand, r uint32) string {
	switch op {
	case RS, RT, RD:
		return "$" + gprNames[r]
	case FS, FT, FD:
		return fmt.Sprintf("$f%d", r)
	case VFS, VFT, VFD:
		return fmt.Sprintf("$vf%d", r)
	}
	return fmt.Sprintf("$vi%d", r)
}

func signedHex(v int32) string {
	if v < 0 {
		return fmt.Sprintf("-0x%X", -int64(v))
	}
	return fmt.Sprintf("0x%X", v)
}

func destSuffix(dest uint32) string {
	var sb strings.Builder
	for i, c := range "xyzw" {
		if dest&(8>>i) != 0 {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// FormatInstruction formats one decoded word. It returns the word as hex
// and the assembler text.
func FormatInstruction(d DecodedInstruction) (string, string) {
	hexWord := fmt.Sprintf("%08X", d.Raw)
	if d.Raw == 0 {
		return hexWord, "nop"
	}
	in := d.Inst
	if in == nil {
		return hexWord, fmt.Sprintf(".word 0x%08X  ; unknown", d.Raw)
	}

	name := strings.ToLower(in.Mnemonic)
	switch {
	case in.Family == COP2 && d.Interlock != 0:
		name += ".i"
	case in.Family.hasSuffix() && d.Dest != 0:
		name += "." + destSuffix(d.Dest)
	}

	f := fields{rs: d.Rs, rt: d.Rt, rd: d.Rd, sa: d.Sa, imm: d.Imm}
	ops := in.Operands()

	// rt,offset(base)
	if loadStores.Contains(in.Mnemonic) && len(ops) == 3 && ops[1] == Imm {
		return hexWord, fmt.Sprintf("%s %s,%s(%s)", name,
			regName(ops[0], *f.slot(ops[0])), signedHex(d.Imm), regName(ops[2], *f.slot(ops[2])))
	}

	args := make([]string, 0, len(ops))
	for _, op := range ops {
		switch op {
		case Shift:
			args = append(args, fmt.Sprintf("%d", d.Sa))
		case Imm5:
			args = append(args, fmt.Sprintf("0x%X", d.Rd))
		case Imm:
			if signedImm.Contains(in.Mnemonic) {
				args = append(args, signedHex(d.Imm))
			} else {
				args = append(args, fmt.Sprintf("0x%X", uint32(d.Imm)&0xFFFF))
			}
		case Label:
			args = append(args, fmt.Sprintf("0x%08X", branchTarget(d)))
		default:
			args = append(args, regName(op, *f.slot(op)))
		}
	}
	if len(args) == 0 {
		return hexWord, name
	}
	return hexWord, name + " " + strings.Join(args, ",")
}

// branchTarget resolves a jump or branch operand to an absolute address.
func branchTarget(d DecodedInstruction) uint32 {
	if d.Inst.Family == Jump {
		return (d.PC+4)&0xF0000000 | uint32(d.Imm)<<2
	}
	return d.PC + 4 + uint32(d.Imm*4)
}

// Disassemble formats little-endian words from data, one line per word.
func Disassemble(data []byte, baseAddr uint32) []string {
	var lines []string
	offset := 0
	for offset+4 <= len(data) {
		pc := baseAddr + uint32(offset)
		d := Decode(binary.LittleEndian.Uint32(data[offset:]), pc)
		hexWord, asm := FormatInstruction(d)
		lines = append(lines, fmt.Sprintf("%08X: %s    %s", pc, hexWord, asm))
		offset += 4
	}

	// Handle trailing bytes that don't form a complete word
	if offset < len(data) {
		pc := baseAddr + uint32(offset)
		var hexParts []string
		for _, b := range data[offset:] {
			hexParts = append(hexParts, fmt.Sprintf("%02X", b))
		}
		lines = append(lines, fmt.Sprintf("%08X: %-8s    .byte 0x%s  ; trailing bytes",
			pc, strings.Join(hexParts, ""), strings.Join(hexParts, ",0x")))
	}
	return lines
}

// DisassembleWords is Disassemble for words already in host order.
func DisassembleWords(words []uint32, baseAddr uint32) []string {
	return Disassemble(Bytes(words), baseAddr)
}
