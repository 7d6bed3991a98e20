package asm

import "strings"

// noOp marks an addressing mode as unsupported by a given Instruction.
const noOp = -1

// Mode holds, for each of the six addressing modes, the opcode the
// instruction uses in that mode (noOp if the instruction does not support
// it). An opcode greater than 0xFF is a two-byte opcode (6809 page-2 `$10`
// or page-3 `$11` prefixed instruction); OpcodeSize reports which.
//
// RegWidth is 1 for 8-bit-accumulator instructions (A/B) and 2 for
// 16-bit-register instructions (D/X/Y/U/S); it drives the width of the
// immediate operand. Direct operands are always 1 byte and extended
// operands always 2.
type Mode struct {
	Inherent  int
	Immediate int
	Direct    int
	Indexed   int
	Extended  int
	Relative  int
	RegWidth  int
}

// OpcodeSize returns 1 or 2: the number of bytes the given mode's opcode
// occupies.
func OpcodeSize(opcode int) int {
	if opcode > 0xFF {
		return 2
	}
	return 1
}

// Instruction is an immutable catalog entry: a mnemonic plus the flags and
// addressing-mode table that drive translate/operand classification.
type Instruction struct {
	Mnemonic      string
	Mode          Mode
	IsPseudo      bool
	IsPseudoDef   bool // EQU only: bind label to Value immediately
	IsStringDef   bool // FCC: operand is a delimited string literal
	IsShortBranch bool
	IsLongBranch  bool
	IsSpecial     bool // PSHS/PULS/PSHU/PULU/EXG/TFR
	IsOrigin      bool // ORG
	IsEnd         bool // END
	IsName        bool // NAM
	IsInclude     bool // INCLUDE
	IsStartMacro  bool // MACRO
	IsEndMacro    bool // ENDM
}

func (i *Instruction) IsStringDefine() bool  { return i.IsStringDef }
func (i *Instruction) IsPseudoDefine() bool  { return i.IsPseudoDef }

// SupportsMode reports whether the instruction has an opcode for the named
// addressing mode.
func (i *Instruction) SupportsMode(m *int) bool { return m != nil && *m != noOp }

const inh = noOp // alias of noOp; the table below spells out noOp itself

// instructions is the static catalog, looked up by case-folded mnemonic.
// Mode fields not meaningful for a row (e.g. Relative on a data-move
// instruction) are left at noOp.
var instructions = []Instruction{
	// --- inherent-only single-byte instructions ---
	{Mnemonic: "NOP", Mode: Mode{Inherent: 0x12, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "SYNC", Mode: Mode{Inherent: 0x13, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "DAA", Mode: Mode{Inherent: 0x19, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "SEX", Mode: Mode{Inherent: 0x1D, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "ABX", Mode: Mode{Inherent: 0x3A, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "RTI", Mode: Mode{Inherent: 0x3B, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "MUL", Mode: Mode{Inherent: 0x3D, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "SWI", Mode: Mode{Inherent: 0x3F, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "SWI2", Mode: Mode{Inherent: 0x103F, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "SWI3", Mode: Mode{Inherent: 0x113F, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "RTS", Mode: Mode{Inherent: 0x39, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "CWAI", Mode: Mode{Inherent: noOp, Immediate: 0x3C, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "ANDCC", Mode: Mode{Inherent: noOp, Immediate: 0x1C, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "ORCC", Mode: Mode{Inherent: noOp, Immediate: 0x1A, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp, RegWidth: 1}},

	// --- register-list / register-pair special instructions ---
	{Mnemonic: "PSHS", IsSpecial: true, Mode: Mode{Inherent: 0x34, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "PULS", IsSpecial: true, Mode: Mode{Inherent: 0x35, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "PSHU", IsSpecial: true, Mode: Mode{Inherent: 0x36, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "PULU", IsSpecial: true, Mode: Mode{Inherent: 0x37, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "EXG", IsSpecial: true, Mode: Mode{Inherent: 0x1E, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "TFR", IsSpecial: true, Mode: Mode{Inherent: 0x1F, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},

	// --- indexed-only load-effective-address ---
	{Mnemonic: "LEAX", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: 0x30, Extended: noOp, Relative: noOp}},
	{Mnemonic: "LEAY", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: 0x31, Extended: noOp, Relative: noOp}},
	{Mnemonic: "LEAS", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: 0x32, Extended: noOp, Relative: noOp}},
	{Mnemonic: "LEAU", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: 0x33, Extended: noOp, Relative: noOp}},

	// --- jumps / subroutine calls ---
	{Mnemonic: "JMP", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0x0E, Indexed: 0x6E, Extended: 0x7E, Relative: noOp}},
	{Mnemonic: "JSR", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0x9D, Indexed: 0xAD, Extended: 0xBD, Relative: noOp}},

	// --- read-modify-write, direct/indexed/extended, no accumulator form ---
	{Mnemonic: "NEG", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0x00, Indexed: 0x60, Extended: 0x70, Relative: noOp}},
	{Mnemonic: "COM", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0x03, Indexed: 0x63, Extended: 0x73, Relative: noOp}},
	{Mnemonic: "LSR", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0x04, Indexed: 0x64, Extended: 0x74, Relative: noOp}},
	{Mnemonic: "ROR", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0x06, Indexed: 0x66, Extended: 0x76, Relative: noOp}},
	{Mnemonic: "ASR", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0x07, Indexed: 0x67, Extended: 0x77, Relative: noOp}},
	{Mnemonic: "ASL", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0x08, Indexed: 0x68, Extended: 0x78, Relative: noOp}},
	{Mnemonic: "LSL", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0x08, Indexed: 0x68, Extended: 0x78, Relative: noOp}},
	{Mnemonic: "ROL", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0x09, Indexed: 0x69, Extended: 0x79, Relative: noOp}},
	{Mnemonic: "DEC", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0x0A, Indexed: 0x6A, Extended: 0x7A, Relative: noOp}},
	{Mnemonic: "INC", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0x0C, Indexed: 0x6C, Extended: 0x7C, Relative: noOp}},
	{Mnemonic: "TST", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0x0D, Indexed: 0x6D, Extended: 0x7D, Relative: noOp}},
	{Mnemonic: "CLR", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0x0F, Indexed: 0x6F, Extended: 0x7F, Relative: noOp}},

	// --- same, inherent-only accumulator forms ---
	{Mnemonic: "NEGA", Mode: Mode{Inherent: 0x40, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "COMA", Mode: Mode{Inherent: 0x43, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "LSRA", Mode: Mode{Inherent: 0x44, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "RORA", Mode: Mode{Inherent: 0x46, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "ASRA", Mode: Mode{Inherent: 0x47, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "ASLA", Mode: Mode{Inherent: 0x48, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "LSLA", Mode: Mode{Inherent: 0x48, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "ROLA", Mode: Mode{Inherent: 0x49, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "DECA", Mode: Mode{Inherent: 0x4A, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "INCA", Mode: Mode{Inherent: 0x4C, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "TSTA", Mode: Mode{Inherent: 0x4D, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "CLRA", Mode: Mode{Inherent: 0x4F, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},

	{Mnemonic: "NEGB", Mode: Mode{Inherent: 0x50, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "COMB", Mode: Mode{Inherent: 0x53, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "LSRB", Mode: Mode{Inherent: 0x54, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "RORB", Mode: Mode{Inherent: 0x56, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "ASRB", Mode: Mode{Inherent: 0x57, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "ASLB", Mode: Mode{Inherent: 0x58, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "LSLB", Mode: Mode{Inherent: 0x58, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "ROLB", Mode: Mode{Inherent: 0x59, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "DECB", Mode: Mode{Inherent: 0x5A, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "INCB", Mode: Mode{Inherent: 0x5C, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "TSTB", Mode: Mode{Inherent: 0x5D, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},
	{Mnemonic: "CLRB", Mode: Mode{Inherent: 0x5F, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp, Relative: noOp}},

	// --- A-accumulator instructions: immediate/direct/indexed/extended ---
	{Mnemonic: "SUBA", Mode: Mode{Inherent: noOp, Immediate: 0x80, Direct: 0x90, Indexed: 0xA0, Extended: 0xB0, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "CMPA", Mode: Mode{Inherent: noOp, Immediate: 0x81, Direct: 0x91, Indexed: 0xA1, Extended: 0xB1, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "SBCA", Mode: Mode{Inherent: noOp, Immediate: 0x82, Direct: 0x92, Indexed: 0xA2, Extended: 0xB2, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "ANDA", Mode: Mode{Inherent: noOp, Immediate: 0x84, Direct: 0x94, Indexed: 0xA4, Extended: 0xB4, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "BITA", Mode: Mode{Inherent: noOp, Immediate: 0x85, Direct: 0x95, Indexed: 0xA5, Extended: 0xB5, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "LDA", Mode: Mode{Inherent: noOp, Immediate: 0x86, Direct: 0x96, Indexed: 0xA6, Extended: 0xB6, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "STA", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0x97, Indexed: 0xA7, Extended: 0xB7, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "EORA", Mode: Mode{Inherent: noOp, Immediate: 0x88, Direct: 0x98, Indexed: 0xA8, Extended: 0xB8, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "ADCA", Mode: Mode{Inherent: noOp, Immediate: 0x89, Direct: 0x99, Indexed: 0xA9, Extended: 0xB9, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "ORA", Mode: Mode{Inherent: noOp, Immediate: 0x8A, Direct: 0x9A, Indexed: 0xAA, Extended: 0xBA, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "ADDA", Mode: Mode{Inherent: noOp, Immediate: 0x8B, Direct: 0x9B, Indexed: 0xAB, Extended: 0xBB, Relative: noOp, RegWidth: 1}},

	// --- B-accumulator instructions ---
	{Mnemonic: "SUBB", Mode: Mode{Inherent: noOp, Immediate: 0xC0, Direct: 0xD0, Indexed: 0xE0, Extended: 0xF0, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "CMPB", Mode: Mode{Inherent: noOp, Immediate: 0xC1, Direct: 0xD1, Indexed: 0xE1, Extended: 0xF1, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "SBCB", Mode: Mode{Inherent: noOp, Immediate: 0xC2, Direct: 0xD2, Indexed: 0xE2, Extended: 0xF2, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "ANDB", Mode: Mode{Inherent: noOp, Immediate: 0xC4, Direct: 0xD4, Indexed: 0xE4, Extended: 0xF4, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "BITB", Mode: Mode{Inherent: noOp, Immediate: 0xC5, Direct: 0xD5, Indexed: 0xE5, Extended: 0xF5, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "LDB", Mode: Mode{Inherent: noOp, Immediate: 0xC6, Direct: 0xD6, Indexed: 0xE6, Extended: 0xF6, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "STB", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0xD7, Indexed: 0xE7, Extended: 0xF7, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "EORB", Mode: Mode{Inherent: noOp, Immediate: 0xC8, Direct: 0xD8, Indexed: 0xE8, Extended: 0xF8, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "ADCB", Mode: Mode{Inherent: noOp, Immediate: 0xC9, Direct: 0xD9, Indexed: 0xE9, Extended: 0xF9, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "ORB", Mode: Mode{Inherent: noOp, Immediate: 0xCA, Direct: 0xDA, Indexed: 0xEA, Extended: 0xFA, Relative: noOp, RegWidth: 1}},
	{Mnemonic: "ADDB", Mode: Mode{Inherent: noOp, Immediate: 0xCB, Direct: 0xDB, Indexed: 0xEB, Extended: 0xFB, Relative: noOp, RegWidth: 1}},

	// --- 16-bit register instructions, page 1 ---
	{Mnemonic: "CMPX", Mode: Mode{Inherent: noOp, Immediate: 0x8C, Direct: 0x9C, Indexed: 0xAC, Extended: 0xBC, Relative: noOp, RegWidth: 2}},
	{Mnemonic: "LDX", Mode: Mode{Inherent: noOp, Immediate: 0x8E, Direct: 0x9E, Indexed: 0xAE, Extended: 0xBE, Relative: noOp, RegWidth: 2}},
	{Mnemonic: "STX", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0x9F, Indexed: 0xAF, Extended: 0xBF, Relative: noOp, RegWidth: 2}},
	{Mnemonic: "ADDD", Mode: Mode{Inherent: noOp, Immediate: 0xC3, Direct: 0xD3, Indexed: 0xE3, Extended: 0xF3, Relative: noOp, RegWidth: 2}},
	{Mnemonic: "LDD", Mode: Mode{Inherent: noOp, Immediate: 0xCC, Direct: 0xDC, Indexed: 0xEC, Extended: 0xFC, Relative: noOp, RegWidth: 2}},
	{Mnemonic: "STD", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0xDD, Indexed: 0xED, Extended: 0xFD, Relative: noOp, RegWidth: 2}},
	{Mnemonic: "LDU", Mode: Mode{Inherent: noOp, Immediate: 0xCE, Direct: 0xDE, Indexed: 0xEE, Extended: 0xFE, Relative: noOp, RegWidth: 2}},
	{Mnemonic: "STU", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0xDF, Indexed: 0xEF, Extended: 0xFF, Relative: noOp, RegWidth: 2}},
	{Mnemonic: "SUBD", Mode: Mode{Inherent: noOp, Immediate: 0x83, Direct: 0x93, Indexed: 0xA3, Extended: 0xB3, Relative: noOp, RegWidth: 2}},

	// --- page-2 (`$10` prefix) instructions ---
	{Mnemonic: "LDS", Mode: Mode{Inherent: noOp, Immediate: 0x10CE, Direct: 0x10DE, Indexed: 0x10EE, Extended: 0x10FE, Relative: noOp, RegWidth: 2}},
	{Mnemonic: "STS", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0x10DF, Indexed: 0x10EF, Extended: 0x10FF, Relative: noOp, RegWidth: 2}},
	{Mnemonic: "LDY", Mode: Mode{Inherent: noOp, Immediate: 0x108E, Direct: 0x109E, Indexed: 0x10AE, Extended: 0x10BE, Relative: noOp, RegWidth: 2}},
	{Mnemonic: "STY", Mode: Mode{Inherent: noOp, Immediate: noOp, Direct: 0x109F, Indexed: 0x10AF, Extended: 0x10BF, Relative: noOp, RegWidth: 2}},
	{Mnemonic: "CMPD", Mode: Mode{Inherent: noOp, Immediate: 0x1083, Direct: 0x1093, Indexed: 0x10A3, Extended: 0x10B3, Relative: noOp, RegWidth: 2}},
	{Mnemonic: "CMPY", Mode: Mode{Inherent: noOp, Immediate: 0x108C, Direct: 0x109C, Indexed: 0x10AC, Extended: 0x10BC, Relative: noOp, RegWidth: 2}},

	// --- page-3 (`$11` prefix) instructions ---
	{Mnemonic: "CMPU", Mode: Mode{Inherent: noOp, Immediate: 0x1183, Direct: 0x1193, Indexed: 0x11A3, Extended: 0x11B3, Relative: noOp, RegWidth: 2}},
	{Mnemonic: "CMPS", Mode: Mode{Inherent: noOp, Immediate: 0x118C, Direct: 0x119C, Indexed: 0x11AC, Extended: 0x11BC, Relative: noOp, RegWidth: 2}},

	// --- short branches: $20-$2F, plus BSR at $8D ---
	{Mnemonic: "BRA", IsShortBranch: true, Mode: Mode{Relative: 0x20, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "BRN", IsShortBranch: true, Mode: Mode{Relative: 0x21, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "BHI", IsShortBranch: true, Mode: Mode{Relative: 0x22, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "BLS", IsShortBranch: true, Mode: Mode{Relative: 0x23, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "BCC", IsShortBranch: true, Mode: Mode{Relative: 0x24, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "BHS", IsShortBranch: true, Mode: Mode{Relative: 0x24, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "BCS", IsShortBranch: true, Mode: Mode{Relative: 0x25, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "BLO", IsShortBranch: true, Mode: Mode{Relative: 0x25, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "BNE", IsShortBranch: true, Mode: Mode{Relative: 0x26, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "BEQ", IsShortBranch: true, Mode: Mode{Relative: 0x27, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "BVC", IsShortBranch: true, Mode: Mode{Relative: 0x28, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "BVS", IsShortBranch: true, Mode: Mode{Relative: 0x29, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "BPL", IsShortBranch: true, Mode: Mode{Relative: 0x2A, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "BMI", IsShortBranch: true, Mode: Mode{Relative: 0x2B, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "BGE", IsShortBranch: true, Mode: Mode{Relative: 0x2C, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "BLT", IsShortBranch: true, Mode: Mode{Relative: 0x2D, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "BGT", IsShortBranch: true, Mode: Mode{Relative: 0x2E, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "BLE", IsShortBranch: true, Mode: Mode{Relative: 0x2F, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "BSR", IsShortBranch: true, Mode: Mode{Relative: 0x8D, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},

	// --- long branches: `$10` prefix + 2-byte relative, LBRA/LBSR unprefixed ---
	{Mnemonic: "LBRA", IsLongBranch: true, Mode: Mode{Relative: 0x16, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "LBSR", IsLongBranch: true, Mode: Mode{Relative: 0x17, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "LBRN", IsLongBranch: true, Mode: Mode{Relative: 0x1021, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "LBHI", IsLongBranch: true, Mode: Mode{Relative: 0x1022, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "LBLS", IsLongBranch: true, Mode: Mode{Relative: 0x1023, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "LBCC", IsLongBranch: true, Mode: Mode{Relative: 0x1024, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "LBCS", IsLongBranch: true, Mode: Mode{Relative: 0x1025, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "LBNE", IsLongBranch: true, Mode: Mode{Relative: 0x1026, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "LBEQ", IsLongBranch: true, Mode: Mode{Relative: 0x1027, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "LBVC", IsLongBranch: true, Mode: Mode{Relative: 0x1028, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "LBVS", IsLongBranch: true, Mode: Mode{Relative: 0x1029, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "LBPL", IsLongBranch: true, Mode: Mode{Relative: 0x102A, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "LBMI", IsLongBranch: true, Mode: Mode{Relative: 0x102B, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "LBGE", IsLongBranch: true, Mode: Mode{Relative: 0x102C, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "LBLT", IsLongBranch: true, Mode: Mode{Relative: 0x102D, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "LBGT", IsLongBranch: true, Mode: Mode{Relative: 0x102E, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},
	{Mnemonic: "LBLE", IsLongBranch: true, Mode: Mode{Relative: 0x102F, Inherent: noOp, Immediate: noOp, Direct: noOp, Indexed: noOp, Extended: noOp}},

	// --- pseudo-ops ---
	{Mnemonic: "END", IsPseudo: true, IsEnd: true},
	{Mnemonic: "ORG", IsPseudo: true, IsOrigin: true},
	{Mnemonic: "EQU", IsPseudo: true, IsPseudoDef: true},
	{Mnemonic: "SET", IsPseudo: true},
	{Mnemonic: "RMB", IsPseudo: true},
	{Mnemonic: "FCB", IsPseudo: true},
	{Mnemonic: "FDB", IsPseudo: true},
	{Mnemonic: "FCC", IsPseudo: true, IsStringDef: true},
	{Mnemonic: "SETDP", IsPseudo: true},
	{Mnemonic: "INCLUDE", IsPseudo: true, IsInclude: true},
	{Mnemonic: "NAM", IsPseudo: true, IsName: true},
	{Mnemonic: "MACRO", IsPseudo: true, IsStartMacro: true},
	{Mnemonic: "ENDM", IsPseudo: true, IsEndMacro: true},
}

// instructionTable maps a case-folded mnemonic to its catalog entry; built
// once from instructions.
var instructionTable = buildInstructionTable()

func buildInstructionTable() map[string]*Instruction {
	m := make(map[string]*Instruction, len(instructions))
	for i := range instructions {
		m[strings.ToUpper(instructions[i].Mnemonic)] = &instructions[i]
	}
	return m
}

// LookupInstruction returns the catalog entry for mnemonic (case-folded),
// or nil if the mnemonic is unknown.
func LookupInstruction(mnemonic string) *Instruction {
	return instructionTable[strings.ToUpper(mnemonic)]
}

// specialRegisters maps PSHS/PULS/PSHU/PULU register names to their
// post-byte bit.
var specialRegisters = map[string]byte{
	"CC": 0x01, "A": 0x02, "B": 0x04, "D": 0x06,
	"DP": 0x08, "X": 0x10, "Y": 0x20, "U": 0x40, "S": 0x40, "PC": 0x80,
}

// transferRegisters maps EXG/TFR register names to their post-byte
// nibble: 16-bit registers use nibbles 0-5 and 8-bit registers 8-B.
// isWideTransferRegister tells the two groups apart.
var transferRegisters = map[string]byte{
	"D": 0x0, "X": 0x1, "Y": 0x2, "U": 0x3, "S": 0x4, "PC": 0x5,
	"A": 0x8, "B": 0x9, "CC": 0xA, "DP": 0xB,
}

func isWideTransferRegister(name string) bool {
	switch strings.ToUpper(name) {
	case "D", "X", "Y", "U", "S", "PC":
		return true
	}
	return false
}
