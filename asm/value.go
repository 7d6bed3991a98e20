package asm

import (
	"fmt"
	"regexp"
	"strconv"
)

// Patterns used to recognize the textual form of a Value. Mirrors the
// recognizer regexes used throughout the assembler's literal parsing.
var (
	charRegex   = regexp.MustCompile(`^'(?P<value>[a-zA-Z0-9><'";:,.#?$%^&*()=!+-/])$`)
	hexRegex    = regexp.MustCompile(`^\$(?P<value>[0-9a-fA-F]+)$`)
	binRegex    = regexp.MustCompile(`^%(?P<value>[01]+)$`)
	intRegex    = regexp.MustCompile(`^(?P<value>[0-9]+)$`)
	symbolRegex = regexp.MustCompile(`^(?P<value>[a-zA-Z0-9@_.\\]+)$`)
	exprRegex   = regexp.MustCompile(`^(?P<left>[$%]?[0-9a-zA-Z_@]+)(?P<op>[+\-*/])(?P<right>[$%]?[0-9a-zA-Z_@]+)$`)
)

// SymbolTable maps a label name to its resolved Value. Address-typed
// entries are late-bound to a statement index until the symbol rewrite
// step at the end of assembly; EQU-typed entries are bound immediately.
type SymbolTable map[string]Value

// Value is a tagged variant over the kinds of data the assembler manipulates:
// plain numbers, raw strings, unresolved symbol references, statement
// addresses, and binary expressions over any of the above.
type Value interface {
	// Hex renders the value as upper-case hex digits. size, if non-zero,
	// forces the minimum digit width (left zero-padded); 0 means "use the
	// value's natural width, rounded up to an even digit count".
	Hex(size int) string
	// HexLen returns the number of hex digits Hex(0) would produce.
	HexLen() int
	// Resolve substitutes symbol references using tbl, returning a new
	// Value with no remaining unresolved Symbol or Expression operands.
	Resolve(tbl SymbolTable) (Value, error)
	// Kind identifies which concrete variant this Value holds.
	Kind() ValueKind
	// Ascii returns the original source text the value was parsed from.
	Ascii() string
}

// ValueKind enumerates the tagged variants of Value.
type ValueKind int

const (
	KindNone ValueKind = iota
	KindNumeric
	KindString
	KindSymbol
	KindAddress
	KindExpression
)

// ByteLen returns how many whole bytes Hex(0) would occupy.
func ByteLen(v Value) int {
	return (v.HexLen() + 1) / 2
}

// HighByte returns the most significant byte of v's hex rendering, or 0x00
// if the rendering is one byte or fewer.
func HighByte(v Value) byte {
	h := v.Hex(0)
	if len(h) <= 2 {
		return 0x00
	}
	b, _ := strconv.ParseUint(h[0:2], 16, 8)
	return byte(b)
}

// LowByte returns the least significant byte of v's hex rendering.
func LowByte(v Value) byte {
	h := v.Hex(0)
	if len(h) == 0 {
		return 0x00
	}
	if len(h) <= 2 {
		b, _ := strconv.ParseUint(h, 16, 8)
		return byte(b)
	}
	b, _ := strconv.ParseUint(h[len(h)-2:], 16, 8)
	return byte(b)
}

func padHex(n int, size int) string {
	if size == 0 {
		size = 2
		d := len(strconv.FormatUint(uint64(n), 16))
		if d%2 == 1 {
			d++
		}
		if d > size {
			size = d
		}
	}
	format := fmt.Sprintf("%%0%dX", size)
	return fmt.Sprintf(format, n)
}

// NoneValue is the sentinel "no value" variant.
type NoneValue struct{}

func (NoneValue) Hex(int) string                            { return "" }
func (NoneValue) HexLen() int                                { return 0 }
func (NoneValue) Kind() ValueKind                            { return KindNone }
func (NoneValue) Ascii() string                              { return "" }
func (v NoneValue) Resolve(SymbolTable) (Value, error)       { return v, nil }

// NumericValue is a 16-bit unsigned integer, parsed from decimal, $hex,
// %binary, or 'c character-literal text.
type NumericValue struct {
	Int      int
	SizeHint int // 0 = no hint; otherwise forces Hex() width in digits
	original string
}

// NewNumeric builds a NumericValue directly from an already-known integer,
// bypassing text parsing. Used when the assembler computes a value
// internally (expression results, addresses, post-bytes).
func NewNumeric(n int) NumericValue {
	return NumericValue{Int: n}
}

// NewNumericSized is NewNumeric with an explicit hex rendering width.
func NewNumericSized(n int, sizeHint int) NumericValue {
	return NumericValue{Int: n, SizeHint: sizeHint}
}

// ParseNumeric parses text as a decimal, hex ($), binary (%), or character
// ('c) literal. It does not attempt symbol or expression parsing; callers
// needing the full dispatch should use ParseValue.
func ParseNumeric(text string) (NumericValue, error) {
	if m := charRegex.FindStringSubmatch(text); m != nil {
		return NumericValue{Int: int(m[1][0]), original: text}, nil
	}
	if m := hexRegex.FindStringSubmatch(text); m != nil {
		if len(m[1]) > 4 {
			return NumericValue{}, fmt.Errorf("hex value length cannot exceed 4 characters")
		}
		n, err := strconv.ParseInt(m[1], 16, 32)
		if err != nil {
			return NumericValue{}, fmt.Errorf("[%s] is not a valid hex value", text)
		}
		return NumericValue{Int: int(n), original: text}, nil
	}
	if m := binRegex.FindStringSubmatch(text); m != nil {
		n, err := strconv.ParseInt(m[1], 2, 32)
		if err != nil {
			return NumericValue{}, fmt.Errorf("[%s] is not a valid binary value", text)
		}
		return NumericValue{Int: int(n), original: text}, nil
	}
	if m := intRegex.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return NumericValue{}, fmt.Errorf("[%s] is not a valid integer", text)
		}
		if n > 65535 {
			return NumericValue{}, fmt.Errorf("integer value cannot exceed 65535")
		}
		return NumericValue{Int: n, original: text}, nil
	}
	return NumericValue{}, fmt.Errorf("[%s] is not valid integer, character literal, or hex value", text)
}

func (v NumericValue) Hex(size int) string {
	if v.SizeHint != 0 {
		size = v.SizeHint
	}
	return padHex(v.Int&0xFFFF, size)
}

func (v NumericValue) HexLen() int {
	if v.SizeHint != 0 {
		return v.SizeHint
	}
	d := len(strconv.FormatUint(uint64(v.Int&0xFFFF), 16))
	if d%2 == 1 {
		d++
	}
	return d
}

func (v NumericValue) Kind() ValueKind { return KindNumeric }
func (v NumericValue) Ascii() string   { return v.original }

func (v NumericValue) Resolve(SymbolTable) (Value, error) { return v, nil }

// StringValue holds the decoded bytes of a '…' or "…" delimited literal.
type StringValue struct {
	Bytes    []byte
	original string
}

// ParseString parses a delimited string literal; the first and last
// characters of text must match and become the delimiter.
func ParseString(text string) (StringValue, error) {
	if len(text) < 2 {
		return StringValue{}, fmt.Errorf("string literal too short")
	}
	delim := text[0]
	if text[len(text)-1] != delim {
		return StringValue{}, fmt.Errorf("string must begin and end with same delimiter")
	}
	return StringValue{Bytes: []byte(text[1 : len(text)-1]), original: text}, nil
}

func (v StringValue) Hex(int) string {
	out := make([]byte, 0, len(v.Bytes)*2)
	for _, b := range v.Bytes {
		out = append(out, []byte(fmt.Sprintf("%02X", b))...)
	}
	return string(out)
}

func (v StringValue) HexLen() int                          { return len(v.Bytes) * 2 }
func (v StringValue) Kind() ValueKind                       { return KindString }
func (v StringValue) Ascii() string                         { return string(v.Bytes) }
func (v StringValue) Resolve(SymbolTable) (Value, error)    { return v, nil }

// SymbolValue is an unresolved reference to a label; it is replaced by a
// Numeric or Address Value once the symbol table is available.
type SymbolValue struct {
	Name string
}

// ParseSymbol validates text as a bare symbol name.
func ParseSymbol(text string) (SymbolValue, error) {
	if !symbolRegex.MatchString(text) {
		return SymbolValue{}, fmt.Errorf("[%s] is not a valid symbol", text)
	}
	return SymbolValue{Name: text}, nil
}

func (v SymbolValue) Hex(int) string { return "" }
func (v SymbolValue) HexLen() int    { return 0 }
func (v SymbolValue) Kind() ValueKind { return KindSymbol }
func (v SymbolValue) Ascii() string   { return v.Name }

func (v SymbolValue) Resolve(tbl SymbolTable) (Value, error) {
	resolved, ok := tbl[v.Name]
	if !ok {
		return nil, fmt.Errorf("[%s] not in symbol table", v.Name)
	}
	switch resolved.Kind() {
	case KindAddress:
		return resolved, nil
	case KindNumeric:
		return resolved, nil
	default:
		return resolved, nil
	}
}

// AddressValue is an index into the Program's statement list. After
// address assignment it is rewritten in place to the statement's concrete
// absolute address by the symbol-table rewrite step.
type AddressValue struct {
	Index int
}

func NewAddress(index int) AddressValue { return AddressValue{Index: index} }

func (v AddressValue) Hex(size int) string { return padHex(v.Index&0xFFFF, size) }
func (v AddressValue) HexLen() int {
	d := len(strconv.FormatUint(uint64(v.Index&0xFFFF), 16))
	if d%2 == 1 {
		d++
	}
	return d
}
func (v AddressValue) Kind() ValueKind { return KindAddress }
func (v AddressValue) Ascii() string   { return strconv.Itoa(v.Index) }

func (v AddressValue) Resolve(SymbolTable) (Value, error) { return v, nil }

// ExpressionValue represents `left OP right` where left/right are each
// resolved before the arithmetic is applied.
type ExpressionValue struct {
	Left     Value
	Op       byte
	Right    Value
	original string
}

// ParseExpression matches `<term><op><term>` where each term is a hex,
// decimal, binary literal, or bare symbol name.
func ParseExpression(text string) (ExpressionValue, error) {
	m := exprRegex.FindStringSubmatch(text)
	if m == nil {
		return ExpressionValue{}, fmt.Errorf("[%s] is not a valid expression", text)
	}
	left, err := ParseValue(m[1], nil)
	if err != nil {
		return ExpressionValue{}, err
	}
	right, err := ParseValue(m[3], nil)
	if err != nil {
		return ExpressionValue{}, err
	}
	return ExpressionValue{Left: left, Op: m[2][0], Right: right, original: text}, nil
}

func (v ExpressionValue) Hex(int) string { return "00" }
func (v ExpressionValue) HexLen() int    { return 2 }
func (v ExpressionValue) Kind() ValueKind { return KindExpression }
func (v ExpressionValue) Ascii() string   { return v.original }

// Resolve recursively resolves both operands, then applies the arithmetic
// operator. Numeric⊕Numeric yields Numeric; Address⊕Numeric yields Address
// (index arithmetic); Address⊕Address is an error.
func (v ExpressionValue) Resolve(tbl SymbolTable) (Value, error) {
	left, err := resolveOperand(v.Left, tbl)
	if err != nil {
		return nil, err
	}
	right, err := resolveOperand(v.Right, tbl)
	if err != nil {
		return nil, err
	}

	if left.Kind() == KindNumeric && right.Kind() == KindNumeric {
		l := left.(NumericValue).Int
		r := right.(NumericValue).Int
		return NewNumeric(applyOp(l, r, v.Op)), nil
	}

	if left.Kind() == KindAddress && right.Kind() == KindNumeric {
		l := left.(AddressValue).Index
		r := right.(NumericValue).Int
		return NewAddress(applyOp(l, r, v.Op)), nil
	}

	if left.Kind() == KindAddress && right.Kind() == KindAddress {
		return nil, fmt.Errorf("[%s] expression cannot operate on two addresses", v.original)
	}

	return nil, fmt.Errorf("[%s] unresolved expression", v.original)
}

func resolveOperand(v Value, tbl SymbolTable) (Value, error) {
	if v.Kind() == KindSymbol {
		return v.Resolve(tbl)
	}
	return v, nil
}

func applyOp(l, r int, op byte) int {
	switch op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		if r == 0 {
			return 0
		}
		return l / r
	}
	return 0
}

// ParseValue dispatches on the first character of text to build the
// appropriate Value variant: $ -> hex, % -> binary, ' -> char, digit ->
// decimal, otherwise attempted as a symbol then an expression.
// instruction, when non-nil and a string-define mnemonic, allows the
// caller to fall back to StringValue for delimited literals.
func ParseValue(text string, instruction *Instruction) (Value, error) {
	if n, err := ParseNumeric(text); err == nil {
		return n, nil
	}

	if instruction != nil && instruction.IsStringDefine() {
		if s, err := ParseString(text); err == nil {
			return s, nil
		}
	}

	if s, err := ParseSymbol(text); err == nil {
		return s, nil
	}

	if e, err := ParseExpression(text); err == nil {
		return e, nil
	}

	return nil, fmt.Errorf("[%s] is an invalid value", text)
}
