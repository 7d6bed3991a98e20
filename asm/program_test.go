package asm

import (
	"bytes"
	"strings"
	"testing"
)

func assemble(t *testing.T, src string) *Program {
	t.Helper()
	p := NewProgram(nil)
	lines := strings.Split(src, "\n")
	if err := p.Assemble(lines); err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	return p
}

func assembleErr(t *testing.T, src string) error {
	t.Helper()
	p := NewProgram(nil)
	lines := strings.Split(src, "\n")
	return p.Assemble(lines)
}

// Scenario 1: expression with forward address on the left of `+`. R is
// defined two statements after the reference, so STX R+1 cannot be
// resolved until address assignment gives R a concrete address.
func TestScenarioExpressionForwardAddress(t *testing.T) {
	src := "" +
		"     ORG $0E00\n" +
		"V    STX R+1\n" +
		"R    FCB 0\n" +
		"     FCB 0\n"
	p := assemble(t, src)
	want := []byte{0xBF, 0x0E, 0x04, 0x00, 0x00}
	if got := p.GetBinaryArray(); !bytes.Equal(got, want) {
		t.Errorf("binary = % X, want % X", got, want)
	}
}

// Scenario 2: short PCR, backward, fits the 8-bit displacement window.
func TestScenarioPCRBackwardShort(t *testing.T) {
	src := "" +
		"     ORG $0600\n" +
		"V    FCB 0\n" +
		"B    LDA $FF\n" +
		"     STY V,PCR\n" +
		"     END B\n"
	p := assemble(t, src)
	want := []byte{0x00, 0x96, 0xFF, 0x10, 0xAF, 0x8C, 0xF9}
	if got := p.GetBinaryArray(); !bytes.Equal(got, want) {
		t.Errorf("binary = % X, want % X", got, want)
	}
	if p.ExecAddress != p.Statements[2].Address {
		t.Errorf("ExecAddress = %#x, want address of B (%#x)", p.ExecAddress, p.Statements[2].Address)
	}
}

// Scenario 3: a displacement of 255 forces the PCR operand to commit to
// the 16-bit form, even though the value still fits in a byte.
func TestScenarioPCRForcesExtended(t *testing.T) {
	var b strings.Builder
	b.WriteString("     ORG $0600\n")
	b.WriteString("B    LDX Z,PCR\n")
	for i := 0; i < 255; i++ {
		b.WriteString("     NOP\n")
	}
	b.WriteString("Z    RTS\n")
	b.WriteString("     END B\n")

	p := assemble(t, b.String())
	got := p.GetBinaryArray()

	wantPrefix := []byte{0xAE, 0x8D, 0x00, 0xFF, 0x12}
	if len(got) < len(wantPrefix) || !bytes.Equal(got[:len(wantPrefix)], wantPrefix) {
		t.Errorf("prefix = % X, want % X", got[:min(len(got), len(wantPrefix))], wantPrefix)
	}
	if got[len(got)-1] != 0x39 {
		t.Errorf("last byte = %#X, want 0x39 (RTS)", got[len(got)-1])
	}
}

// Scenario 4: PSHS CC,D,X,Y produces post-byte $37 at the program level.
func TestScenarioPushPostByte(t *testing.T) {
	src := "     PSHS CC,D,X,Y\n"
	p := assemble(t, src)
	want := []byte{0x34, 0x37}
	if got := p.GetBinaryArray(); !bytes.Equal(got, want) {
		t.Errorf("binary = % X, want % X", got, want)
	}
}

// Scenario 5: EXG A,D mixes an 8-bit and a 16-bit register and fails.
func TestScenarioExgMismatchFails(t *testing.T) {
	src := "     EXG A,D\n"
	err := assembleErr(t, src)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "EXG of A to D not allowed") {
		t.Errorf("error = %q, want to mention EXG of A to D not allowed", err.Error())
	}
}

// Scenario 6: macro expansion substitutes positional arguments and
// generates a unique local label for \.B.
func TestScenarioMacroExpansion(t *testing.T) {
	src := "" +
		"LOADER MACRO\n" +
		"       LDA \\0\n" +
		"       LDB \\1\n" +
		"       CMPA #$02\n" +
		"       BEQ \\.B\n" +
		"       LDX \\2\n" +
		"\\.B    LDY \\3\n" +
		"       ENDM\n" +
		"       LOADER #$00,#$03,#$0000,#$FFFF\n"
	p := assemble(t, src)
	want := []byte{
		0x86, 0x00,
		0xC6, 0x03,
		0x81, 0x02,
		0x27, 0x03,
		0x8E, 0x00, 0x00,
		0x10, 0x8E, 0xFF, 0xFF,
	}
	if got := p.GetBinaryArray(); !bytes.Equal(got, want) {
		t.Errorf("binary = % X, want % X", got, want)
	}
}

func TestDuplicateLabelFails(t *testing.T) {
	src := "" +
		"A    NOP\n" +
		"A    NOP\n"
	if err := assembleErr(t, src); err == nil {
		t.Error("expected duplicate label error")
	}
}

func TestUndefinedMacroCallFails(t *testing.T) {
	src := "     FROBNICATE #$01\n"
	if err := assembleErr(t, src); err == nil {
		t.Error("expected undefined macro error")
	}
}

// A labeled SET (or SETDP) line binds its label to the statement's own
// Address, exactly like an ordinary label — only EQU early-binds to the
// operand's Value. After assembly the symbol table holds that address as
// a concrete number.
func TestSetLabelBindsToAddressNotValue(t *testing.T) {
	src := "" +
		"     ORG $0600\n" +
		"A    SET $10\n" +
		"     NOP\n"
	p := assemble(t, src)
	n, ok := p.Symbols["A"].(NumericValue)
	if !ok {
		t.Fatalf("Symbols[A] = %#v (%T), want NumericValue holding A's address", p.Symbols["A"], p.Symbols["A"])
	}
	if n.Int != 0x0600 {
		t.Errorf("A resolves to %#x, want address 0x0600 (not the operand $10)", n.Int)
	}
}

// Regression for a backward PCR sizing bug: the sizing fixpoint's
// backward-sum must include this statement's own candidate size (spec
// calls for summing "all intervening statements, including this one's
// own 2-byte prefix" in both directions). Here the target and the
// statements between it and the PCR instruction sum to 127 bytes, which
// alone fits the 8-bit window, but adding the PCR instruction's own
// 4/5-byte candidate size pushes the true displacement to -132 — this
// must force the 16-bit PCR form, not silently wrap a 1-byte offset.
func TestScenarioPCRBackwardForcesExtended(t *testing.T) {
	var b strings.Builder
	b.WriteString("     ORG $0600\n")
	b.WriteString("V    FCB 0\n")
	for i := 0; i < 126; i++ {
		b.WriteString("     NOP\n")
	}
	b.WriteString("     STY V,PCR\n")
	p := assemble(t, b.String())

	last := p.Statements[len(p.Statements)-2]
	if last.Code.PCRSizeHint != 4 {
		t.Fatalf("PCRSizeHint = %d, want 4 (16-bit PCR form)", last.Code.PCRSizeHint)
	}
	got := last.EmittedBytes()
	want := []byte{0x10, 0xAF, 0x8D, 0xFF, 0x7C}
	if !bytes.Equal(got, want) {
		t.Errorf("emitted bytes = % X, want % X", got, want)
	}
}

func TestOrgResetsAddressCounter(t *testing.T) {
	src := "" +
		"     ORG $2000\n" +
		"     NOP\n" +
		"     NOP\n"
	p := assemble(t, src)
	if p.Statements[1].Address != 0x2000 {
		t.Errorf("first NOP address = %#x, want 0x2000", p.Statements[1].Address)
	}
	if p.Statements[2].Address != 0x2001 {
		t.Errorf("second NOP address = %#x, want 0x2001", p.Statements[2].Address)
	}
}
