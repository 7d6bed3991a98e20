package asm

import "testing"

func TestLookupInstructionCaseFold(t *testing.T) {
	for _, m := range []string{"lda", "LDA", "Lda"} {
		if inst := LookupInstruction(m); inst == nil || inst.Mnemonic != "LDA" {
			t.Errorf("LookupInstruction(%q) = %v, want LDA", m, inst)
		}
	}
	if inst := LookupInstruction("NOTREAL"); inst != nil {
		t.Errorf("LookupInstruction(NOTREAL) = %v, want nil", inst)
	}
}

func TestTwoByteOpcodeSize(t *testing.T) {
	sty := LookupInstruction("STY")
	if OpcodeSize(sty.Mode.Indexed) != 2 {
		t.Errorf("STY indexed opcode size = %d, want 2", OpcodeSize(sty.Mode.Indexed))
	}
	lda := LookupInstruction("LDA")
	if OpcodeSize(lda.Mode.Direct) != 1 {
		t.Errorf("LDA direct opcode size = %d, want 1", OpcodeSize(lda.Mode.Direct))
	}
}

func TestShortBranchOpcodes(t *testing.T) {
	beq := LookupInstruction("BEQ")
	if !beq.IsShortBranch {
		t.Fatal("BEQ should be a short branch")
	}
	if beq.Mode.Relative != 0x27 {
		t.Errorf("BEQ opcode = %#x, want 0x27", beq.Mode.Relative)
	}
}

func TestLongBranchExceptions(t *testing.T) {
	lbra := LookupInstruction("LBRA")
	if lbra.Mode.Relative != 0x16 {
		t.Errorf("LBRA opcode = %#x, want 0x16 (unprefixed exception)", lbra.Mode.Relative)
	}
	lbeq := LookupInstruction("LBEQ")
	if lbeq.Mode.Relative != 0x1027 {
		t.Errorf("LBEQ opcode = %#x, want 0x1027", lbeq.Mode.Relative)
	}
}

func TestPseudoOpFlags(t *testing.T) {
	equ := LookupInstruction("EQU")
	if !equ.IsPseudoDefine() {
		t.Error("EQU should be a pseudo-define")
	}
	fcc := LookupInstruction("FCC")
	if !fcc.IsStringDefine() {
		t.Error("FCC should be a string-define")
	}
}
