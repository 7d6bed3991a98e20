package asm

import (
	"strings"
	"testing"
)

func TestParseStatementBlankAndComment(t *testing.T) {
	s, err := ParseStatement("   \n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsBlank {
		t.Error("expected IsBlank")
	}

	s, err = ParseStatement("; a full-line comment")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsCommentOnly || s.Comment != " a full-line comment" {
		t.Errorf("got IsCommentOnly=%v Comment=%q", s.IsCommentOnly, s.Comment)
	}
}

func TestParseStatementMacroMarkers(t *testing.T) {
	s, err := ParseStatement("FOO MACRO")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsMacroStart || s.Label != "FOO" {
		t.Errorf("got IsMacroStart=%v Label=%q", s.IsMacroStart, s.Label)
	}

	s, err = ParseStatement("    ENDM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsMacroEnd {
		t.Error("expected IsMacroEnd")
	}
}

func TestParseStatementFCCDelimited(t *testing.T) {
	s, err := ParseStatement(`     FCC "hi, there" ; trailing remark`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	po := s.Operand.(*PseudoOperand)
	sv := po.Value.(StringValue)
	if string(sv.Bytes) != "hi, there" {
		t.Errorf("Bytes = %q, want %q", sv.Bytes, "hi, there")
	}
	if strings.TrimSpace(s.Comment) != "trailing remark" {
		t.Errorf("Comment = %q", s.Comment)
	}
}

func TestParseStatementUnknownMnemonicBecomesMacroCall(t *testing.T) {
	s, err := ParseStatement("     FROB #$01,#$02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsMacroCall || s.MnemonicStr != "FROB" {
		t.Errorf("got IsMacroCall=%v MnemonicStr=%q", s.IsMacroCall, s.MnemonicStr)
	}
	if len(s.MacroArgs) != 2 || s.MacroArgs[0] != "#$01" || s.MacroArgs[1] != "#$02" {
		t.Errorf("MacroArgs = %v", s.MacroArgs)
	}
}

func TestStatementStringListingColumns(t *testing.T) {
	s, err := ParseStatement("LBL  LDA #$10 ; load it")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Address = 0x1000
	s.AddressValid = true
	if err := s.Translate(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line := s.String()
	if !strings.HasPrefix(line, "$1000 ") {
		t.Errorf("line = %q, want $1000 prefix", line)
	}
	if !strings.Contains(line, "8610") {
		t.Errorf("line = %q, want emitted hex 8610", line)
	}
	if !strings.Contains(line, "load it") {
		t.Errorf("line = %q, want comment", line)
	}
}

func TestEmittedBytesTwoByteOpcode(t *testing.T) {
	s, err := ParseStatement("     STY $1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Translate(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := s.EmittedBytes()
	want := []byte{0x10, 0xBF, 0x12, 0x34}
	if len(got) != len(want) {
		t.Fatalf("EmittedBytes = % X, want % X", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EmittedBytes[%d] = %#X, want %#X", i, got[i], want[i])
		}
	}
}

func TestRMBReservesZeroedSpace(t *testing.T) {
	s, err := ParseStatement("     RMB 4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Translate(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Code.Size != 4 || len(s.Code.Additional) != 4 {
		t.Errorf("Size=%d Additional=%v, want 4 zero bytes", s.Code.Size, s.Code.Additional)
	}
}
