package asm

import (
	"fmt"
	"strings"
)

// OperandKind tags the variant an Operand parses to.
type OperandKind int

const (
	OpInherent OperandKind = iota
	OpImmediate
	OpDirect
	OpExtended
	OpIndexed
	OpExtendedIndirect
	OpRelative
	OpPseudo
	OpSpecial
	OpUnknown
)

// Operand is a tagged variant over the operand field of an assembly
// statement. Every concrete type reports its Kind and carries only the
// fields relevant to it; resolution against the symbol table happens via
// Resolve.
type Operand interface {
	Kind() OperandKind
	Resolve(tbl SymbolTable) error
}

// InherentOperand carries no data: CLRA, RTS, NOP, ...
type InherentOperand struct{}

func (InherentOperand) Kind() OperandKind        { return OpInherent }
func (InherentOperand) Resolve(SymbolTable) error { return nil }

// ImmediateOperand is `#value`.
type ImmediateOperand struct{ Value Value }

func (o *ImmediateOperand) Kind() OperandKind { return OpImmediate }
func (o *ImmediateOperand) Resolve(tbl SymbolTable) error {
	v, err := o.Value.Resolve(tbl)
	if err != nil {
		return err
	}
	o.Value = v
	return nil
}

// DirectOperand is an 8-bit direct-page address, either forced with `<`
// or settled there after Unknown resolution finds a 1-byte value.
type DirectOperand struct {
	Value  Value
	Forced bool
}

func (o *DirectOperand) Kind() OperandKind { return OpDirect }
func (o *DirectOperand) Resolve(tbl SymbolTable) error {
	v, err := o.Value.Resolve(tbl)
	if err != nil {
		return err
	}
	o.Value = v
	return nil
}

// ExtendedOperand is a full 16-bit address, either forced with `>` or
// settled there after Unknown resolution finds a 2-byte value.
type ExtendedOperand struct {
	Value  Value
	Forced bool
}

func (o *ExtendedOperand) Kind() OperandKind { return OpExtended }
func (o *ExtendedOperand) Resolve(tbl SymbolTable) error {
	v, err := o.Value.Resolve(tbl)
	if err != nil {
		return err
	}
	o.Value = v
	return nil
}

// IndexedOperand models every 6809 indexed sub-mode: no-offset, constant
// offset (5/8/16-bit), accumulator offset, auto increment/decrement, and
// PC-relative, any of which may additionally be indirect (the operand was
// written inside `[...]`).
type IndexedOperand struct {
	Raw      string
	Register string // X, Y, U, S
	Offset   Value  // constant-offset value; nil if not constant-offset
	AccReg   string // "A", "B", or "D" for accumulator offset; "" otherwise
	AutoInc  int    // +2, +1, 0, -1, -2
	PCR      bool
	Indirect bool
}

func (o *IndexedOperand) Kind() OperandKind { return OpIndexed }
func (o *IndexedOperand) Resolve(tbl SymbolTable) error {
	if o.Offset == nil {
		return nil
	}
	v, err := o.Offset.Resolve(tbl)
	if err != nil {
		return err
	}
	o.Offset = v
	return nil
}

func registerBits(reg string) (byte, error) {
	switch strings.ToUpper(reg) {
	case "X":
		return 0x00, nil
	case "Y":
		return 0x20, nil
	case "U":
		return 0x40, nil
	case "S":
		return 0x60, nil
	}
	return 0, fmt.Errorf("[%s] is not a valid indexed base register", reg)
}

// EncodePostByte renders the post-byte and any additional offset bytes for
// a non-PCR indexed operand. offsetSize, when the operand carries a
// constant offset, is the caller's choice of 0 (use 5-bit embedded form
// when it fits), 1, or 2 bytes.
func (o *IndexedOperand) EncodePostByte(offsetSize int) (post byte, extra []byte, err error) {
	rb, err := registerBits(o.Register)
	if err != nil {
		return 0, nil, err
	}

	switch {
	case o.AccReg != "":
		var accBits byte
		switch strings.ToUpper(o.AccReg) {
		case "B":
			accBits = 0x05
		case "A":
			accBits = 0x06
		case "D":
			accBits = 0x0B
		default:
			return 0, nil, fmt.Errorf("[%s] is not a valid accumulator offset register", o.AccReg)
		}
		post = 0x80 | rb | accBits
		if o.Indirect {
			post |= 0x10
		}
		return post, nil, nil

	case o.AutoInc != 0:
		if o.Indirect && (o.AutoInc == 1 || o.AutoInc == -1) {
			return 0, nil, fmt.Errorf("single increment/decrement is not legal in indirect mode")
		}
		var bits byte
		switch o.AutoInc {
		case 1:
			bits = 0x00
		case 2:
			bits = 0x01
		case -1:
			bits = 0x02
		case -2:
			bits = 0x03
		}
		post = 0x80 | rb | bits
		if o.Indirect {
			post |= 0x10
		}
		return post, nil, nil

	case o.PCR:
		if offsetSize == 2 {
			post = 0x80 | rb | 0x0D
		} else {
			post = 0x80 | rb | 0x0C
		}
		if o.Indirect {
			post |= 0x10
		}
		return post, nil, nil

	case o.Offset == nil:
		post = 0x80 | rb | 0x04
		if o.Indirect {
			post |= 0x10
		}
		return post, nil, nil

	default:
		n := o.Offset.(NumericValue).Int
		signed := n
		if signed > 32767 {
			signed -= 65536
		}
		if offsetSize == 0 && !o.Indirect && signed >= -16 && signed <= 15 {
			post = rb | byte(signed&0x1F)
			return post, nil, nil
		}
		if offsetSize == 1 || (offsetSize == 0 && signed >= -128 && signed <= 127) {
			post = 0x80 | rb | 0x08
			if o.Indirect {
				post |= 0x10
			}
			return post, []byte{byte(signed & 0xFF)}, nil
		}
		post = 0x80 | rb | 0x09
		if o.Indirect {
			post |= 0x10
		}
		return post, []byte{byte((signed >> 8) & 0xFF), byte(signed & 0xFF)}, nil
	}
}

// ExtendedIndirectOperand is `[...]`: a bare 16-bit address or an indexed
// expression, both dereferenced.
type ExtendedIndirectOperand struct {
	Raw   string
	Inner Operand // *IndexedOperand, or nil when Value holds a bare value
	Value Value   // bare 16-bit address form
}

func (o *ExtendedIndirectOperand) Kind() OperandKind { return OpExtendedIndirect }
func (o *ExtendedIndirectOperand) Resolve(tbl SymbolTable) error {
	if o.Inner != nil {
		return o.Inner.Resolve(tbl)
	}
	v, err := o.Value.Resolve(tbl)
	if err != nil {
		return err
	}
	o.Value = v
	return nil
}

// RelativeOperand is the target of a short or long branch.
type RelativeOperand struct{ Value Value }

func (o *RelativeOperand) Kind() OperandKind { return OpRelative }
func (o *RelativeOperand) Resolve(tbl SymbolTable) error {
	v, err := o.Value.Resolve(tbl)
	if err != nil {
		return err
	}
	o.Value = v
	return nil
}

// PseudoOperand carries the operand of a pseudo-op (FCB/FDB/EQU/ORG/RMB/
// FCC/...); for string-define mnemonics Value is a StringValue taken
// verbatim from the delimited literal.
type PseudoOperand struct{ Value Value }

func (o *PseudoOperand) Kind() OperandKind { return OpPseudo }
func (o *PseudoOperand) Resolve(tbl SymbolTable) error {
	if o.Value == nil {
		return nil
	}
	v, err := o.Value.Resolve(tbl)
	if err != nil {
		return err
	}
	o.Value = v
	return nil
}

// SpecialOperand is a register list (PSHS/PULS/PSHU/PULU) or register pair
// (EXG/TFR).
type SpecialOperand struct {
	Registers []string
}

func (o *SpecialOperand) Kind() OperandKind        { return OpSpecial }
func (o *SpecialOperand) Resolve(SymbolTable) error { return nil }

// PushPullPostByte ORs together the bit for each named register.
func (o *SpecialOperand) PushPullPostByte() (byte, error) {
	var post byte
	for _, r := range o.Registers {
		bit, ok := specialRegisters[strings.ToUpper(r)]
		if !ok {
			return 0, fmt.Errorf("[%s] is not a valid register", r)
		}
		post |= bit
	}
	return post, nil
}

// TransferPostByte encodes an EXG/TFR register pair as (src<<4)|dst,
// failing if either name is unknown or the pair mixes 8-bit and 16-bit
// registers.
func (o *SpecialOperand) TransferPostByte() (byte, error) {
	if len(o.Registers) != 2 {
		return 0, fmt.Errorf("EXG/TFR requires exactly two registers")
	}
	src, dst := strings.ToUpper(o.Registers[0]), strings.ToUpper(o.Registers[1])
	srcNibble, ok := transferRegisters[src]
	if !ok {
		return 0, fmt.Errorf("[%s] is not a valid register", src)
	}
	dstNibble, ok := transferRegisters[dst]
	if !ok {
		return 0, fmt.Errorf("[%s] is not a valid register", dst)
	}
	if isWideTransferRegister(src) != isWideTransferRegister(dst) {
		return 0, fmt.Errorf("EXG of %s to %s not allowed", src, dst)
	}
	return (srcNibble << 4) | dstNibble, nil
}

// UnknownOperand is a bare value whose 1-byte vs 2-byte width (and hence
// Direct vs Extended classification) is not known until symbol
// resolution.
type UnknownOperand struct{ Value Value }

func (o *UnknownOperand) Kind() OperandKind { return OpUnknown }
func (o *UnknownOperand) Resolve(tbl SymbolTable) error {
	v, err := o.Value.Resolve(tbl)
	if err != nil {
		return err
	}
	o.Value = v
	return nil
}

// Reclassify turns a resolved Unknown operand into Direct or Extended
// based on its resolved value's byte width, per spec classification rule
// 10.
func (o *UnknownOperand) Reclassify() Operand {
	if n, ok := o.Value.(NumericValue); ok && n.Int <= 0xFF {
		return &DirectOperand{Value: o.Value}
	}
	return &ExtendedOperand{Value: o.Value}
}

// ParseOperand classifies and parses text into an Operand, per the
// ordered rules: blank->Inherent, branch mnemonic->Relative, pseudo
// mnemonic->Pseudo, special mnemonic->Special, `[...]`->ExtendedIndirect,
// `#...`->Immediate, top-level comma->Indexed, `<`->Direct (forced),
// `>`->Extended (forced), else->Unknown.
func ParseOperand(text string, inst *Instruction) (Operand, error) {
	text = strings.TrimSpace(text)

	if text == "" {
		return InherentOperand{}, nil
	}

	if inst.IsShortBranch || inst.IsLongBranch {
		v, err := ParseValue(text, inst)
		if err != nil {
			return nil, err
		}
		return &RelativeOperand{Value: v}, nil
	}

	if inst.IsPseudo {
		if inst.IsStringDefine() {
			v, err := ParseString(text)
			if err != nil {
				return nil, err
			}
			return &PseudoOperand{Value: v}, nil
		}
		if text == "" {
			return &PseudoOperand{Value: nil}, nil
		}
		v, err := ParseValue(text, inst)
		if err != nil {
			return nil, err
		}
		return &PseudoOperand{Value: v}, nil
	}

	if inst.IsSpecial {
		regs := strings.Split(text, ",")
		for i := range regs {
			regs[i] = strings.TrimSpace(regs[i])
		}
		return &SpecialOperand{Registers: regs}, nil
	}

	if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
		inner := text[1 : len(text)-1]
		if strings.Contains(inner, ",") {
			idx, err := parseIndexed(inner)
			if err != nil {
				return nil, err
			}
			idx.Indirect = true
			return &ExtendedIndirectOperand{Raw: text, Inner: idx}, nil
		}
		v, err := ParseValue(inner, inst)
		if err != nil {
			return nil, err
		}
		return &ExtendedIndirectOperand{Raw: text, Value: v}, nil
	}

	if strings.HasPrefix(text, "#") {
		v, err := ParseValue(text[1:], inst)
		if err != nil {
			return nil, err
		}
		return &ImmediateOperand{Value: v}, nil
	}

	if strings.Contains(text, ",") {
		return parseIndexed(text)
	}

	if strings.HasPrefix(text, "<") {
		v, err := ParseValue(text[1:], inst)
		if err != nil {
			return nil, err
		}
		return &DirectOperand{Value: v, Forced: true}, nil
	}

	if strings.HasPrefix(text, ">") {
		v, err := ParseValue(text[1:], inst)
		if err != nil {
			return nil, err
		}
		return &ExtendedOperand{Value: v, Forced: true}, nil
	}

	v, err := ParseValue(text, inst)
	if err != nil {
		return nil, err
	}
	return &UnknownOperand{Value: v}, nil
}

// parseIndexed parses the body of an indexed operand: `OFFSET,REG`,
// `,REG+`, `,REG++`, `,-REG`, `,--REG`, `A,REG`-style accumulator
// offsets, and `OFFSET,PCR`.
func parseIndexed(text string) (*IndexedOperand, error) {
	parts := strings.SplitN(text, ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("[%s] is not a valid indexed operand", text)
	}
	left := strings.TrimSpace(parts[0])
	right := strings.TrimSpace(parts[1])

	if strings.EqualFold(right, "PCR") {
		v, err := ParseValue(left, nil)
		if err != nil {
			return nil, err
		}
		return &IndexedOperand{Raw: text, Register: "X", Offset: v, PCR: true}, nil
	}

	autoInc := 0
	reg := right
	switch {
	case strings.HasSuffix(reg, "++"):
		autoInc = 2
		reg = strings.TrimSuffix(reg, "++")
	case strings.HasSuffix(reg, "+"):
		autoInc = 1
		reg = strings.TrimSuffix(reg, "+")
	}
	if strings.HasPrefix(reg, "--") {
		autoInc = -2
		reg = strings.TrimPrefix(reg, "--")
	} else if strings.HasPrefix(reg, "-") {
		autoInc = -1
		reg = strings.TrimPrefix(reg, "-")
	}
	reg = strings.TrimSpace(reg)

	if left == "" {
		return &IndexedOperand{Raw: text, Register: reg, AutoInc: autoInc}, nil
	}

	switch strings.ToUpper(left) {
	case "A", "B", "D":
		return &IndexedOperand{Raw: text, Register: reg, AccReg: strings.ToUpper(left)}, nil
	}

	v, err := ParseValue(left, nil)
	if err != nil {
		return nil, err
	}
	return &IndexedOperand{Raw: text, Register: reg, Offset: v}, nil
}
