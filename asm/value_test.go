package asm

import "testing"

func TestParseNumeric(t *testing.T) {
	cases := []struct {
		text    string
		want    int
		wantErr bool
	}{
		{"42", 42, false},
		{"$FF", 0xFF, false},
		{"$ff", 0xFF, false},
		{"%1010", 10, false},
		{"'A", int('A'), false},
		{"$FFFFF", 0, true},
		{"70000", 0, true},
		{"notanumber", 0, true},
	}
	for _, c := range cases {
		got, err := ParseNumeric(c.text)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseNumeric(%q): expected error, got %v", c.text, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseNumeric(%q): unexpected error %v", c.text, err)
			continue
		}
		if got.Int != c.want {
			t.Errorf("ParseNumeric(%q) = %d, want %d", c.text, got.Int, c.want)
		}
	}
}

func TestNumericHex(t *testing.T) {
	v := NewNumeric(0xAB)
	if got := v.Hex(0); got != "AB" {
		t.Errorf("Hex(0) = %q, want AB", got)
	}
	if got := v.Hex(4); got != "00AB" {
		t.Errorf("Hex(4) = %q, want 00AB", got)
	}
}

func TestHighLowByte(t *testing.T) {
	v := NewNumericSized(0x0E04, 4)
	if hb := HighByte(v); hb != 0x0E {
		t.Errorf("HighByte = %02X, want 0E", hb)
	}
	if lb := LowByte(v); lb != 0x04 {
		t.Errorf("LowByte = %02X, want 04", lb)
	}
}

func TestParseString(t *testing.T) {
	v, err := ParseString(`"hello"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(v.Bytes) != "hello" {
		t.Errorf("Bytes = %q, want hello", v.Bytes)
	}

	if _, err := ParseString(`"mismatched'`); err == nil {
		t.Error("expected error for mismatched delimiters")
	}
}

func TestExpressionResolveNumeric(t *testing.T) {
	e, err := ParseExpression("2+3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := e.Resolve(SymbolTable{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := v.(NumericValue)
	if !ok || n.Int != 5 {
		t.Errorf("resolved value = %#v, want Numeric(5)", v)
	}
}

func TestExpressionResolveAddressPlusNumeric(t *testing.T) {
	e := ExpressionValue{Left: SymbolValue{Name: "R"}, Op: '+', Right: NewNumeric(1)}
	tbl := SymbolTable{"R": NewAddress(2)}
	v, err := e.Resolve(tbl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	addr, ok := v.(AddressValue)
	if !ok || addr.Index != 3 {
		t.Errorf("resolved value = %#v, want Address(3)", v)
	}
}

func TestExpressionResolveAddressPlusAddressFails(t *testing.T) {
	e := ExpressionValue{Left: SymbolValue{Name: "A"}, Op: '+', Right: SymbolValue{Name: "B"}}
	tbl := SymbolTable{"A": NewAddress(1), "B": NewAddress(2)}
	if _, err := e.Resolve(tbl); err == nil {
		t.Error("expected error resolving Address+Address")
	}
}

func TestSymbolResolveUndefined(t *testing.T) {
	s := SymbolValue{Name: "UNDEFINED"}
	if _, err := s.Resolve(SymbolTable{}); err == nil {
		t.Error("expected error resolving undefined symbol")
	}
}
