// eetable.go - R5900 instruction table shared by the EE assembler and disassembler

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

package assembler

// ---------------------------------------------------------------------
// R5900 instruction table
// ---------------------------------------------------------------------

// Family selects the bit layout an instruction is packed with.
type Family uint8

const (
	Normal Family = iota
	Jump
	Special
	RegImm
	MMI
	MMI0
	MMI1
	MMI2
	MMI3
	PMFHL // parallel move from HI/LO, format in the sa field
	PMTHL // parallel move to HI/LO
	FPUS
	FPUW
	BC0
	BC1
	COP0
	COP1
	COP2
	COP2Special1
	COP2Special2
	TLBException
)

var familyNames = [...]string{
	"Normal", "Jump", "Special", "REGIMM", "MMI", "MMI0", "MMI1", "MMI2", "MMI3",
	"PMFHL", "PMTHL", "FPU.S", "FPU.W", "BC0", "BC1", "COP0", "COP1", "COP2",
	"COP2Special1", "COP2Special2", "TLBException",
}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return "Family?"
}

// hasSuffix reports whether mnemonics of the family may carry a dest or
// interlock suffix after a '.'.
func (f Family) hasSuffix() bool {
	return f == COP2 || f == COP2Special1 || f == COP2Special2
}

// Operand is the role of one instruction operand.
type Operand uint8

const (
	RS Operand = iota + 1
	RT
	RD
	FS
	FT
	FD
	VFS
	VFT
	VFD
	VIS
	VIT
	VID
	Shift
	Imm
	Imm5
	Label
)

// Instruction is one mnemonic of the table.
type Instruction struct {
	Mnemonic string
	Family   Family
	Opcode   uint32
	operands [3]Operand
	arity    uint8
}

// Operands returns the operand roles in source order.
func (in *Instruction) Operands() []Operand {
	return in.operands[:in.arity]
}

func def(mnemonic string, family Family, opcode uint32, ops ...Operand) Instruction {
	in := Instruction{Mnemonic: mnemonic, Family: family, Opcode: opcode, arity: uint8(len(ops))}
	copy(in.operands[:], ops)
	return in
}

// instructionTable lists every mnemonic the assembler accepts. Aliases such
// as B, BEQZ and MOVE share an encoding with the full form.
var instructionTable = []Instruction{
	def("ADD", Special, 0b100000, RD, RS, RT),
	def("ADDI", Normal, 0b001000, RT, RS, Imm),
	def("ADDIU", Normal, 0b001001, RT, RS, Imm),
	def("ADDU", Special, 0b100001, RD, RS, RT),
	def("AND", Special, 0b100100, RD, RS, RT),
	def("ANDI", Normal, 0b001100, RT, RS, Imm),
	def("BEQ", Normal, 0b000100, RS, RT, Label),
	def("B", Normal, 0b000100, Label),
	def("BEQZ", Normal, 0b000100, RS, Label),
	def("BEQL", Normal, 0b010100, RS, RT, Label),
	def("BEQZL", Normal, 0b010100, RS, Label),
	def("BGEZ", RegImm, 0b00001, RS, Label),
	def("BGEZAL", RegImm, 0b10001, RS, Label),
	def("BGEZALL", RegImm, 0b10011, RS, Label),
	def("BGEZL", RegImm, 0b00011, RS, Label),
	def("BGTZ", Normal, 0b000111, RS, Label),
	def("BGTZL", Normal, 0b010111, RS, Label),
	def("BLEZ", Normal, 0b000110, RS, Label),
	def("BLEZL", Normal, 0b010110, RS, Label),
	def("BLTZ", RegImm, 0b00000, RS, Label),
	def("BLTZAL", RegImm, 0b10000, RS, Label),
	def("BLTZALL", RegImm, 0b10010, RS, Label),
	def("BLTZL", RegImm, 0b00010, RS, Label),
	def("BNE", Normal, 0b000101, RS, RT, Label),
	def("BNEZ", Normal, 0b000101, RS, Label),
	def("BNEL", Normal, 0b010101, RS, RT, Label),
	def("BNEZL", Normal, 0b010101, RS, Label),
	def("BREAK", Special, 0b001101),
	def("DADD", Special, 0b101100, RD, RS, RT),
	def("DADDI", Normal, 0b011000, RT, RS, Imm),
	def("DADDIU", Normal, 0b011001, RT, RS, Imm),
	def("DADDU", Special, 0b101101, RD, RS, RT),
	def("DIV", Special, 0b011010, RS, RT),
	def("DIVU", Special, 0b011011, RS, RT),
	def("DSLL", Special, 0b111000, RD, RT, Shift),
	def("DSLL32", Special, 0b111100, RD, RT, Shift),
	def("DSLLV", Special, 0b010100, RD, RT, RS),
	def("DSRA", Special, 0b111011, RD, RT, Shift),
	def("DSRA32", Special, 0b111111, RD, RT, Shift),
	def("DSRAV", Special, 0b010111, RD, RT, RS),
	def("DSRL", Special, 0b111010, RD, RT, Shift),
	def("DSRL32", Special, 0b111110, RD, RT, Shift),
	def("DSRLV", Special, 0b010110, RD, RT, RS),
	def("DSUB", Special, 0b101110, RD, RS, RT),
	def("DSUBU", Special, 0b101111, RD, RS, RT),
	def("J", Jump, 0b000010, Label),
	def("JAL", Jump, 0b000011, Label),
	def("JALR", Special, 0b001001, RD, RS),
	def("JR", Special, 0b001000, RS),
	def("LB", Normal, 0b100000, RT, Imm, RS),
	def("LBU", Normal, 0b100100, RT, Imm, RS),
	def("LD", Normal, 0b110111, RT, Imm, RS),
	def("LDL", Normal, 0b011010, RT, Imm, RS),
	def("LDR", Normal, 0b011011, RT, Imm, RS),
	def("LH", Normal, 0b100001, RT, Imm, RS),
	def("LHU", Normal, 0b100101, RT, Imm, RS),
	def("LUI", Normal, 0b001111, RT, Imm),
	def("LW", Normal, 0b100011, RT, Imm, RS),
	def("LWL", Normal, 0b100010, RT, Imm, RS),
	def("LWR", Normal, 0b100110, RT, Imm, RS),
	def("LWU", Normal, 0b100111, RT, Imm, RS),
	def("MFHI", Special, 0b010000, RD),
	def("MFLO", Special, 0b010010, RD),
	def("MOVN", Special, 0b001011, RD, RS, RT),
	def("MOVZ", Special, 0b001010, RD, RS, RT),
	def("MTHI", Special, 0b010001, RS),
	def("MTLO", Special, 0b010011, RS),
	def("MULT", Special, 0b011000, RS, RT),
	def("MULTU", Special, 0b011001, RS, RT),
	def("NOR", Special, 0b100111, RD, RS, RT),
	def("OR", Special, 0b100101, RD, RS, RT),
	def("MOVE", Special, 0b100101, RD, RS),
	def("DMOVE", Special, 0b100101, RD, RS),
	def("ORI", Normal, 0b001101, RT, RS, Imm),
	def("SB", Normal, 0b101000, RT, Imm, RS),
	def("SD", Normal, 0b111111, RT, Imm, RS),
	def("SDL", Normal, 0b101100, RT, Imm, RS),
	def("SDR", Normal, 0b101101, RT, Imm, RS),
	def("SH", Normal, 0b101001, RT, Imm, RS),
	def("SLL", Special, 0b000000, RD, RT, Shift),
	def("NOP", Special, 0b000000),
	def("SLLV", Special, 0b000100, RD, RT, RS),
	def("SLT", Special, 0b101010, RD, RS, RT),
	def("SLTI", Normal, 0b001010, RT, RS, Imm),
	def("SLTIU", Normal, 0b001011, RT, RS, Imm),
	def("SLTU", Special, 0b101011, RD, RS, RT),
	def("SRA", Special, 0b000011, RD, RT, Shift),
	def("SRAV", Special, 0b000111, RD, RT, RS),
	def("SRL", Special, 0b000010, RD, RT, Shift),
	def("SRLV", Special, 0b000110, RD, RT, RS),
	def("SUB", Special, 0b100010, RD, RS, RT),
	def("NEG", Special, 0b100010, RD, RT),
	def("SUBU", Special, 0b100011, RD, RS, RT),
	def("NEGU", Special, 0b100011, RD, RT),
	def("SW", Normal, 0b101011, RT, Imm, RS),
	def("SWL", Normal, 0b101010, RT, Imm, RS),
	def("SWR", Normal, 0b101110, RT, Imm, RS),
	def("SYNC", Special, 0b001111),
	def("SYSCALL", Special, 0b001100),
	def("TEQ", Special, 0b110100, RS, RT),
	def("TEQI", RegImm, 0b01100, RS, Imm),
	def("TGE", Special, 0b110000, RS, RT),
	def("TGEI", RegImm, 0b01000, RS, Imm),
	def("TGEIU", RegImm, 0b01001, RS, Imm),
	def("TGEU", Special, 0b110001, RS, RT),
	def("TLT", Special, 0b110010, RS, RT),
	def("TLTI", RegImm, 0b01010, RS, Imm),
	def("TLTIU", RegImm, 0b01011, RS, Imm),
	def("TLTU", Special, 0b110011, RS, RT),
	def("TNE", Special, 0b110110, RS, RT),
	def("TNEI", RegImm, 0b01110, RS, Imm),
	def("XOR", Special, 0b100110, RD, RS, RT),
	def("XORI", Normal, 0b001110, RT, RS, Imm),
	def("DIV1", MMI, 0b011010, RS, RT),
	def("DIVU1", MMI, 0b011011, RS, RT),
	def("LQ", Normal, 0b011110, RT, Imm, RS),
	def("MADD", MMI, 0b000000, RD, RS, RT),
	def("MADD1", MMI, 0b100000, RD, RS, RT),
	def("MADDU", MMI, 0b000001, RD, RS, RT),
	def("MADDU1", MMI, 0b100001, RD, RS, RT),
	def("MFHI1", MMI, 0b010000, RD),
	def("MFLO1", MMI, 0b010010, RD),
	def("MFSA", Special, 0b101000, RD),
	def("MTHI1", MMI, 0b010001, RS),
	def("MTLO1", MMI, 0b010011, RS),
	def("MTSA", Special, 0b101001, RS),
	def("MTSAB", RegImm, 0b11000, RS, Imm),
	def("MTSAH", RegImm, 0b11001, RS, Imm),
	def("MULT1", MMI, 0b011000, RD, RS, RT),
	def("MULTU1", MMI, 0b011001, RD, RS, RT),
	def("PABSH", MMI1, 0b00101, RD, RT),
	def("PABSW", MMI1, 0b00001, RD, RT),
	def("PADDB", MMI0, 0b01000, RD, RS, RT),
	def("PADDH", MMI0, 0b00100, RD, RS, RT),
	def("PADDSB", MMI0, 0b11000, RD, RS, RT),
	def("PADDSH", MMI0, 0b10100, RD, RS, RT),
	def("PADDSW", MMI0, 0b10000, RD, RS, RT),
	def("PADDUB", MMI1, 0b11000, RD, RS, RT),
	def("PADDUH", MMI1, 0b10100, RD, RS, RT),
	def("PADDUW", MMI1, 0b10000, RD, RS, RT),
	def("PADDW", MMI0, 0b00000, RD, RS, RT),
	def("PADSBH", MMI1, 0b00100, RD, RS, RT),
	def("PAND", MMI2, 0b10010, RD, RS, RT),
	def("PCEQB", MMI1, 0b01010, RD, RS, RT),
	def("PCEQH", MMI1, 0b00110, RD, RS, RT),
	def("PCEQW", MMI1, 0b00010, RD, RS, RT),
	def("PCGTB", MMI0, 0b01010, RD, RS, RT),
	def("PCGTH", MMI0, 0b00110, RD, RS, RT),
	def("PCGTW", MMI0, 0b00010, RD, RS, RT),
	def("PCPYH", MMI3, 0b11011, RD, RT),
	def("PCPYLD", MMI2, 0b01110, RD, RS, RT),
	def("PCPYUD", MMI3, 0b01110, RD, RS, RT),
	def("PDIVBW", MMI2, 0b11101, RS, RT),
	def("PDIVUW", MMI3, 0b01101, RS, RT),
	def("PDIVW", MMI2, 0b01101, RS, RT),
	def("PEXCH", MMI3, 0b11010, RD, RT),
	def("PEXCW", MMI3, 0b11110, RD, RT),
	def("PEXEH", MMI2, 0b11010, RD, RT),
	def("PEXEW", MMI2, 0b11110, RD, RT),
	def("PEXT5", MMI0, 0b11110, RD, RT),
	def("PEXTLB", MMI0, 0b11010, RD, RS, RT),
	def("PEXTLH", MMI0, 0b10110, RD, RS, RT),
	def("PEXTLW", MMI0, 0b10010, RD, RS, RT),
	def("PEXTUB", MMI1, 0b11010, RD, RS, RT),
	def("PEXTUH", MMI1, 0b10110, RD, RS, RT),
	def("PEXTUW", MMI1, 0b10010, RD, RS, RT),
	def("PHMADH", MMI2, 0b10001, RD, RS, RT),
	def("PHMSBH", MMI2, 0b10101, RD, RS, RT),
	def("PINTEH", MMI3, 0b01010, RD, RS, RT),
	def("PINTH", MMI2, 0b01010, RD, RS, RT),
	def("PLZCW", MMI, 0b000100, RD, RS),
	def("PMADDH", MMI2, 0b10000, RD, RS, RT),
	def("PMADDUW", MMI3, 0b00000, RD, RS, RT),
	def("PMADDW", MMI2, 0b00000, RD, RS, RT),
	def("PMAXH", MMI0, 0b00111, RD, RS, RT),
	def("PMAXW", MMI0, 0b00011, RD, RS, RT),
	def("PMFHI", MMI2, 0b01000, RD),
	def("PMFHL.LH", PMFHL, 0b00011, RD),
	def("PMFHL.LW", PMFHL, 0b00000, RD),
	def("PMFHL.SH", PMFHL, 0b00100, RD),
	def("PMFHL.SLW", PMFHL, 0b00010, RD),
	def("PMFHL.UW", PMFHL, 0b00001, RD),
	def("PMFLO", MMI2, 0b01001, RD),
	def("PMINH", MMI1, 0b00111, RD, RS, RT),
	def("PMINW", MMI1, 0b00011, RD, RS, RT),
	def("PMSUBH", MMI2, 0b10100, RD, RS, RT),
	def("PMSUBW", MMI2, 0b00100, RD, RS, RT),
	def("PMTHI", MMI3, 0b01000, RS),
	def("PMTHL.LW", PMTHL, 0b00000, RS),
	def("PMTLO", MMI3, 0b01001, RS),
	def("PMULTH", MMI2, 0b11100, RD, RS, RT),
	def("PMULTUW", MMI3, 0b01100, RD, RS, RT),
	def("PMULTW", MMI2, 0b01100, RD, RS, RT),
	def("PNOR", MMI3, 0b10011, RD, RS, RT),
	def("POR", MMI3, 0b10010, RD, RS, RT),
	def("PPAC5", MMI0, 0b11111, RD, RT),
	def("PPACB", MMI0, 0b11011, RD, RS, RT),
	def("PPACH", MMI0, 0b10111, RD, RS, RT),
	def("PPACW", MMI0, 0b10011, RD, RS, RT),
	def("PREVH", MMI2, 0b11011, RD, RT),
	def("PROT3W", MMI2, 0b11111, RD, RT),
	def("PSLLH", MMI, 0b110100, RD, RT, Shift),
	def("PSLLVW", MMI2, 0b00010, RD, RT, RS),
	def("PSLLW", MMI, 0b111100, RD, RT, Shift),
	def("PSRAH", MMI, 0b110111, RD, RT, Shift),
	def("PSRAVW", MMI3, 0b00011, RD, RT, RS),
	def("PSRAW", MMI, 0b111111, RD, RT, Shift),
	def("PSRLH", MMI, 0b110110, RD, RT, Shift),
	def("PSRLVW", MMI2, 0b00011, RD, RS, RT),
	def("PSRLW", MMI, 0b111110, RD, RT, Shift),
	def("PSUBB", MMI0, 0b01001, RD, RS, RT),
	def("PSUBH", MMI0, 0b00101, RD, RS, RT),
	def("PSUBSB", MMI0, 0b11001, RD, RS, RT),
	def("PSUBSH", MMI0, 0b10101, RD, RS, RT),
	def("PSUBSW", MMI0, 0b10001, RD, RS, RT),
	def("PSUBUB", MMI1, 0b11001, RD, RS, RT),
	def("PSUBUH", MMI1, 0b10101, RD, RS, RT),
	def("PSUBUW", MMI1, 0b10001, RD, RS, RT),
	def("PSUBW", MMI0, 0b00001, RD, RS, RT),
	def("PXOR", MMI2, 0b10011, RD, RS, RT),
	def("QFSRV", MMI1, 0b11011, RD, RS, RT),
	def("SQ", Normal, 0b011111, RT, Imm, RS),
	def("ABS.S", FPUS, 0b000101, FD, FS),
	def("ADD.S", FPUS, 0b000000, FD, FS, FT),
	def("ADDA.S", FPUS, 0b011000, FS, FT),
	def("BC1F", BC1, 0b00000, Label),
	def("BC1FL", BC1, 0b00010, Label),
	def("BC1T", BC1, 0b00001, Label),
	def("BC1TL", BC1, 0b00011, Label),
	def("C.EQ.S", FPUS, 0b110010, FS, FT),
	def("C.F.S", FPUS, 0b110000, FS, FT),
	def("C.LE.S", FPUS, 0b110110, FS, FT),
	def("C.LT.S", FPUS, 0b110100, FS, FT),
	def("CFC1", COP1, 0b00010, RT, FS),
	def("CTC1", COP1, 0b00110, RT, FS),
	def("CVT.S.W", FPUW, 0b100000, FD, FS),
	def("CVT.W.S", FPUS, 0b100100, FD, FS),
	def("DIV.S", FPUS, 0b000011, FD, FS, FT),
	def("LWC1", Normal, 0b110001, FT, Imm, RS),
	def("MADD.S", FPUS, 0b011100, FD, FS, FT),
	def("MADDA.S", FPUS, 0b011110, FS, FT),
	def("MAX.S", FPUS, 0b101000, FD, FS, FT),
	def("MFC1", COP1, 0b00000, RT, FS),
	def("MIN.S", FPUS, 0b101001, FD, FS, FT),
	def("MOV.S", FPUS, 0b000110, FD, FS),
	def("MSUB.S", FPUS, 0b011101, FD, FS, FT),
	def("MSUBA.S", FPUS, 0b011111, FS, FT),
	def("MTC1", COP1, 0b00100, RT, FS),
	def("MUL.S", FPUS, 0b000010, FD, FS, FT),
	def("MULA.S", FPUS, 0b011010, FS, FT),
	def("NEG.S", FPUS, 0b000111, FD, FS),
	def("RSQRT.S", FPUS, 0b010110, FD, FS, FT),
	def("SQRT.S", FPUS, 0b000100, FD, FT),
	def("SUB.S", FPUS, 0b000001, FD, FS, FT),
	def("SUBA.S", FPUS, 0b011001, FS, FT),
	def("SWC1", Normal, 0b111001, FT, Imm, RS),
	def("CFC2", COP2, 0b00010, RT, VID),
	def("CTC2", COP2, 0b00110, RT, VID),
	def("LQC2", Normal, 0b110110, VFT, Imm, RS),
	def("QMFC2", COP2, 0b00001, RT, VFD),
	def("QMTC2", COP2, 0b00101, RT, VFD),
	def("SQC2", Normal, 0b111110, VFT, Imm, RS),
	def("VABS", COP2Special2, 0b0011101, VFT, VFS),
	def("VADD", COP2Special1, 0b101000, VFD, VFS, VFT),
	def("VADDI", COP2Special1, 0b100010, VFD, VFS),
	def("VADDQ", COP2Special1, 0b100000, VFD, VFS),
	def("VADDX", COP2Special1, 0b000000, VFD, VFS, VFT),
	def("VADDY", COP2Special1, 0b000001, VFD, VFS, VFT),
	def("VADDZ", COP2Special1, 0b000010, VFD, VFS, VFT),
	def("VADDW", COP2Special1, 0b000011, VFD, VFS, VFT),
	def("VADDA", COP2Special2, 0b0101000, VFS, VFT),
	def("VADDAI", COP2Special2, 0b0100010, VFS),
	def("VADDAQ", COP2Special2, 0b0100000, VFS),
	def("VADDAX", COP2Special2, 0b0000000, VFS, VFT),
	def("VADDAY", COP2Special2, 0b0000001, VFS, VFT),
	def("VADDAZ", COP2Special2, 0b0000010, VFS, VFT),
	def("VADDAW", COP2Special2, 0b0000011, VFS, VFT),
	def("VCLIPW.XYZ", COP2Special2, 0b0011111, VFS, VFT),
	def("VFTOI0", COP2Special2, 0b0010100, VFT, VFS),
	def("VFTOI4", COP2Special2, 0b0010101, VFT, VFS),
	def("VFTOI12", COP2Special2, 0b0010110, VFT, VFS),
	def("VFTOI15", COP2Special2, 0b0010111, VFT, VFS),
	def("VIADD", COP2Special1, 0b110000, VID, VIS, VIT),
	def("VIADDI", COP2Special1, 0b110010, VIT, VIS, Imm5),
	def("VIAND", COP2Special1, 0b110100, VID, VIS, VIT),
	def("VIOR", COP2Special1, 0b110101, VID, VIS, VIT),
	def("VISUB", COP2Special1, 0b110001, VID, VIS, VIT),
	def("VITOF0", COP2Special2, 0b0010000, VFT, VFS),
	def("VITOF4", COP2Special2, 0b0010001, VFT, VFS),
	def("VITOF12", COP2Special2, 0b0010010, VFT, VFS),
	def("VITOF15", COP2Special2, 0b0010011, VFT, VFS),
	def("VMADD", COP2Special1, 0b101001, VFD, VFS, VFT),
	def("VMADDI", COP2Special1, 0b100011, VFD, VFS),
	def("VMADDQ", COP2Special1, 0b100001, VFD, VFS),
	def("VMADDX", COP2Special1, 0b001000, VFD, VFS, VFT),
	def("VMADDY", COP2Special1, 0b001001, VFD, VFS, VFT),
	def("VMADDZ", COP2Special1, 0b001010, VFD, VFS, VFT),
	def("VMADDW", COP2Special1, 0b001011, VFD, VFS, VFT),
	def("VMADDA", COP2Special2, 0b0101001, VFS, VFT),
	def("VMADDAI", COP2Special2, 0b0100011, VFS),
	def("VMADDAQ", COP2Special2, 0b0100001, VFS),
	def("VMADDAX", COP2Special2, 0b0001000, VFS, VFT),
	def("VMADDAY", COP2Special2, 0b0001001, VFS, VFT),
	def("VMADDAZ", COP2Special2, 0b0001010, VFS, VFT),
	def("VMADDAW", COP2Special2, 0b0001011, VFS, VFT),
	def("VMAX", COP2Special1, 0b101011, VFD, VFS, VFT),
	def("VMAXI", COP2Special1, 0b011101, VFD, VFS),
	def("VMAXX", COP2Special1, 0b010000, VFD, VFS, VFT),
	def("VMAXY", COP2Special1, 0b010001, VFD, VFS, VFT),
	def("VMAXZ", COP2Special1, 0b010010, VFD, VFS, VFT),
	def("VMAXW", COP2Special1, 0b010011, VFD, VFS, VFT),
	def("VMFIR", COP2Special2, 0b0111101, VFT, VIS),
	def("VMINI", COP2Special1, 0b101111, VFD, VFS, VFT),
	def("VMINII", COP2Special1, 0b011111, VFD, VFS),
	def("VMINIX", COP2Special1, 0b010100, VFD, VFS, VFT),
	def("VMINIY", COP2Special1, 0b010101, VFD, VFS, VFT),
	def("VMINIZ", COP2Special1, 0b010110, VFD, VFS, VFT),
	def("VMINIW", COP2Special1, 0b010111, VFD, VFS, VFT),
	def("VMOVE", COP2Special2, 0b0110000, VFT, VFS),
	def("VMR32", COP2Special2, 0b0110001, VFT, VFS),
	def("VMSUB", COP2Special1, 0b101101, VFD, VFS, VFT),
	def("VMSUBI", COP2Special1, 0b100111, VFD, VFS),
	def("VMSUBQ", COP2Special1, 0b100101, VFD, VFS),
	def("VMSUBX", COP2Special1, 0b001100, VFD, VFS, VFT),
	def("VMSUBY", COP2Special1, 0b001101, VFD, VFS, VFT),
	def("VMSUBZ", COP2Special1, 0b001110, VFD, VFS, VFT),
	def("VMSUBW", COP2Special1, 0b001111, VFD, VFS, VFT),
	def("VMSUBA", COP2Special2, 0b0101101, VFS, VFT),
	def("VMSUBAI", COP2Special2, 0b0100111, VFS),
	def("VMSUBAQ", COP2Special2, 0b0100101, VFS),
	def("VMSUBAX", COP2Special2, 0b0001100, VFS, VFT),
	def("VMSUBAY", COP2Special2, 0b0001101, VFS, VFT),
	def("VMSUBAZ", COP2Special2, 0b0001110, VFS, VFT),
	def("VMSUBAW", COP2Special2, 0b0001111, VFS, VFT),
	def("VMUL", COP2Special1, 0b101010, VFD, VFS, VFT),
	def("VMULI", COP2Special1, 0b011110, VFD, VFS),
	def("VMULQ", COP2Special1, 0b011100, VFD, VFS),
	def("VMULX", COP2Special1, 0b011000, VFD, VFS, VFT),
	def("VMULY", COP2Special1, 0b011001, VFD, VFS, VFT),
	def("VMULZ", COP2Special1, 0b011010, VFD, VFS, VFT),
	def("VMULW", COP2Special1, 0b011011, VFD, VFS, VFT),
	def("VMULA", COP2Special2, 0b0101010, VFS, VFT),
	def("VMULAI", COP2Special2, 0b0011110, VFS),
	def("VMULAQ", COP2Special2, 0b0011100, VFS),
	def("VMULAX", COP2Special2, 0b0011000, VFS, VFT),
	def("VMULAY", COP2Special2, 0b0011001, VFS, VFT),
	def("VMULAZ", COP2Special2, 0b0011010, VFS, VFT),
	def("VMULAW", COP2Special2, 0b0011011, VFS, VFT),
	def("VNOP", COP2Special2, 0b0101111),
	def("VOPMULA.XYZ", COP2Special2, 0b0101110, VFS, VFT),
	def("VOPMSUB.XYZ", COP2Special1, 0b101110, VFD, VFS, VFT),
	def("VRGET", COP2Special2, 0b1000001, VFT),
	def("VRNEXT", COP2Special2, 0b1000000, VFT),
	def("VSUB", COP2Special1, 0b101100, VFD, VFS, VFT),
	def("VSUBI", COP2Special1, 0b100110, VFD, VFS),
	def("VSUBQ", COP2Special1, 0b100100, VFD, VFS),
	def("VSUBX", COP2Special1, 0b000100, VFD, VFS, VFT),
	def("VSUBY", COP2Special1, 0b000101, VFD, VFS, VFT),
	def("VSUBZ", COP2Special1, 0b000110, VFD, VFS, VFT),
	def("VSUBW", COP2Special1, 0b000111, VFD, VFS, VFT),
	def("VSUBA", COP2Special2, 0b0101100, VFS, VFT),
	def("VSUBAI", COP2Special2, 0b0100110, VFS),
	def("VSUBAQ", COP2Special2, 0b0100100, VFS),
	def("VSUBAX", COP2Special2, 0b0000100, VFS, VFT),
	def("VSUBAY", COP2Special2, 0b0000101, VFS, VFT),
	def("VSUBAZ", COP2Special2, 0b0000110, VFS, VFT),
	def("VSUBAW", COP2Special2, 0b0000111, VFS, VFT),
	def("VWAITQ", COP2Special2, 0b0111011),
}

// instructions indexes instructionTable by mnemonic.
var instructions = func() map[string]*Instruction {
	m := make(map[string]*Instruction, len(instructionTable))
	for i := range instructionTable {
		m[instructionTable[i].Mnemonic] = &instructionTable[i]
	}
	return m
}()

// Lookup finds the table entry for an upper-cased mnemonic. A '.' suffix
// is only stripped for the COP2 families, where it carries dest or
// interlock bits.
func Lookup(mnemonic string) (*Instruction, bool) {
	if in, ok := instructions[mnemonic]; ok {
		return in, true
	}
	for i := 0; i < len(mnemonic); i++ {
		if mnemonic[i] == '.' {
			if in, ok := instructions[mnemonic[:i]]; ok && in.Family.hasSuffix() {
				return in, true
			}
			break
		}
	}
	return nil, false
}
