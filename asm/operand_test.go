package asm

import "testing"

func TestParseOperandInherent(t *testing.T) {
	op, err := ParseOperand("", LookupInstruction("NOP"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Kind() != OpInherent {
		t.Errorf("Kind() = %v, want OpInherent", op.Kind())
	}
}

func TestParseOperandImmediate(t *testing.T) {
	op, err := ParseOperand("#$10", LookupInstruction("LDA"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	imm, ok := op.(*ImmediateOperand)
	if !ok {
		t.Fatalf("got %T, want *ImmediateOperand", op)
	}
	if n, ok := imm.Value.(NumericValue); !ok || n.Int != 0x10 {
		t.Errorf("Value = %#v, want Numeric(0x10)", imm.Value)
	}
}

func TestParseOperandIndexedNoOffset(t *testing.T) {
	op, err := ParseOperand(",X", LookupInstruction("LDA"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	idx := op.(*IndexedOperand)
	post, extra, err := idx.EncodePostByte(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post != 0x84 || len(extra) != 0 {
		t.Errorf("post=%#x extra=%v, want post=0x84 no extra", post, extra)
	}
}

func TestParseOperandIndexedAutoInc(t *testing.T) {
	op, err := ParseOperand(",X++", LookupInstruction("LDA"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	idx := op.(*IndexedOperand)
	if idx.AutoInc != 2 {
		t.Errorf("AutoInc = %d, want 2", idx.AutoInc)
	}
	post, _, err := idx.EncodePostByte(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post != 0x81 {
		t.Errorf("post = %#x, want 0x81", post)
	}
}

func TestIndexedSingleIncrementIndirectIllegal(t *testing.T) {
	idx := &IndexedOperand{Register: "X", AutoInc: 1, Indirect: true}
	if _, _, err := idx.EncodePostByte(0); err == nil {
		t.Error("expected error: single increment illegal in indirect mode")
	}
}

func TestPushPullPostByte(t *testing.T) {
	op, err := ParseOperand("CC,D,X,Y", LookupInstruction("PSHS"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sp := op.(*SpecialOperand)
	post, err := sp.PushPullPostByte()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post != 0x37 {
		t.Errorf("PSHS CC,D,X,Y post-byte = %#x, want 0x37", post)
	}
}

func TestTransferPostByteMismatchFails(t *testing.T) {
	op, err := ParseOperand("A,D", LookupInstruction("EXG"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sp := op.(*SpecialOperand)
	if _, err := sp.TransferPostByte(); err == nil {
		t.Error("expected error: EXG A,D mixes 8-bit and 16-bit registers")
	}
}

func TestTransferPostByteValidPair(t *testing.T) {
	op, err := ParseOperand("A,B", LookupInstruction("EXG"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sp := op.(*SpecialOperand)
	post, err := sp.TransferPostByte()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post != 0x89 {
		t.Errorf("EXG A,B post-byte = %#x, want 0x89", post)
	}
}

func TestReclassifyUnknownOperand(t *testing.T) {
	u := &UnknownOperand{Value: NewNumeric(0x10)}
	if _, ok := u.Reclassify().(*DirectOperand); !ok {
		t.Error("1-byte value should reclassify to Direct")
	}
	u2 := &UnknownOperand{Value: NewNumeric(0x1000)}
	if _, ok := u2.Reclassify().(*ExtendedOperand); !ok {
		t.Error("2-byte value should reclassify to Extended")
	}
}
