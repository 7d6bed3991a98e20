package asm

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	blankLineRegex   = regexp.MustCompile(`^\s*$`)
	commentLineRegex = regexp.MustCompile(`^\s*;(?P<comment>.*)$`)
	macroDefRegex    = regexp.MustCompile(`^(?P<label>[\w@\\.]+)\s+[Mm][Aa][Cc][Rr][Oo]\s*;*(?P<comment>.*)$`)
	macroEndRegex    = regexp.MustCompile(`^\s*[Ee][Nn][Dd][Mm]\s*;*(?P<comment>.*)$`)
	asmLineRegex     = regexp.MustCompile(`^(?P<label>[\w@\\.]*)\s+(?P<mnemonic>[\w\\.]*)\s*(?P<operands>[^;]*)\s*;*(?P<comment>.*)$`)
)

// CodePackage is the translated form of one Statement: the opcode, the
// post-byte, and any additional bytes, along with the sizing state the
// PCR fixpoint needs while a displacement width is still undecided.
type CodePackage struct {
	Opcode     int // -1 if the statement has no opcode (pseudo-op)
	OpcodeSize int // 1 or 2

	HasPostByte bool
	PostByte    byte

	Additional                []byte
	AdditionalNeedsResolution bool
	Width                     int // byte width of Additional, when it holds a deferred address

	Address int

	Size    int
	MinSize int
	MaxSize int

	FixedSize bool

	IsPCR           bool
	PCRSizeHint     int // 0 undecided, 2 or 4 once committed
	PostByteChoices [2]byte
}

// TotalSize returns the package's current best-known size in bytes.
func (c *CodePackage) TotalSize() int {
	if c.FixedSize {
		return c.Size
	}
	return c.MaxSize
}

// Statement is one parsed source line, from blank lines through fully
// translated instructions.
type Statement struct {
	Raw         string
	Label       string
	MnemonicStr string
	Instruction *Instruction
	Operand     Operand
	Comment     string

	IsBlank       bool
	IsCommentOnly bool
	IsMacroStart  bool
	IsMacroEnd    bool
	IsMacroCall   bool
	MacroArgs     []string

	Code CodePackage

	Address      int
	AddressValid bool
}

// ParseStatement recognizes one source line, trying blank, comment-only,
// macro-definition, macro-end, full-instruction, and finally macro-call
// forms in that order.
func ParseStatement(line string) (*Statement, error) {
	raw := strings.TrimRight(line, "\r\n")
	s := &Statement{Raw: raw}

	if blankLineRegex.MatchString(raw) {
		s.IsBlank = true
		return s, nil
	}

	if m := commentLineRegex.FindStringSubmatch(raw); m != nil {
		s.IsCommentOnly = true
		s.Comment = m[1]
		return s, nil
	}

	if m := macroDefRegex.FindStringSubmatch(raw); m != nil {
		s.Label = m[1]
		s.MnemonicStr = "MACRO"
		s.Instruction = LookupInstruction("MACRO")
		s.IsMacroStart = true
		s.Comment = m[2]
		return s, nil
	}

	if m := macroEndRegex.FindStringSubmatch(raw); m != nil {
		s.MnemonicStr = "ENDM"
		s.Instruction = LookupInstruction("ENDM")
		s.IsMacroEnd = true
		s.Comment = m[1]
		return s, nil
	}

	if m := asmLineRegex.FindStringSubmatch(raw); m != nil {
		label := m[1]
		mnemonic := m[2]
		operands := strings.TrimSpace(m[3])
		comment := m[4]

		if mnemonic == "" {
			return nil, &ParseError{Msg: fmt.Sprintf("[%s] could not be parsed", raw)}
		}

		inst := LookupInstruction(mnemonic)
		if inst == nil {
			return parseMacroCall(raw, label, mnemonic, operands, comment)
		}

		s.Label = label
		s.MnemonicStr = mnemonic
		s.Instruction = inst
		s.Comment = comment

		if inst.Mnemonic == "FCC" {
			op, err := parseFCCOperand(raw)
			if err != nil {
				return nil, &ParseError{Msg: err.Error(), Statement: s}
			}
			s.Operand = op
			return s, nil
		}

		op, err := ParseOperand(operands, inst)
		if err != nil {
			return nil, &ParseError{Msg: err.Error(), Statement: s}
		}
		s.Operand = op
		return s, nil
	}

	return nil, &ParseError{Msg: fmt.Sprintf("[%s] could not be parsed", raw)}
}

// parseFCCOperand re-extracts the raw line's delimited string, since FCC's
// payload may contain characters the general operand splitter treats as
// field separators.
func parseFCCOperand(raw string) (Operand, error) {
	trimmed := strings.TrimSpace(raw)
	fields := strings.Fields(trimmed)
	idx := strings.Index(trimmed, "FCC")
	if idx < 0 {
		idx = strings.Index(strings.ToUpper(trimmed), "FCC")
	}
	if idx < 0 || len(fields) < 2 {
		return nil, fmt.Errorf("FCC requires a delimited string operand")
	}
	rest := strings.TrimSpace(trimmed[idx+3:])
	if rest == "" {
		return nil, fmt.Errorf("FCC requires a delimited string operand")
	}
	delim := rest[0]
	end := strings.IndexByte(rest[1:], delim)
	if end < 0 {
		return nil, fmt.Errorf("FCC string is missing its closing delimiter")
	}
	v, err := ParseString(rest[:end+2])
	if err != nil {
		return nil, err
	}
	return &PseudoOperand{Value: v}, nil
}

func parseMacroCall(raw, label, name, operandsText, comment string) (*Statement, error) {
	s := &Statement{Raw: raw, Label: label, MnemonicStr: name, IsMacroCall: true, Comment: comment}
	if operandsText == "" {
		s.MacroArgs = nil
		return s, nil
	}
	args := strings.Split(operandsText, ",")
	if len(args) > 36 {
		return nil, &ParseError{Msg: fmt.Sprintf("[%s] macro call has more than 36 operands", raw)}
	}
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	s.MacroArgs = args
	return s, nil
}

// String renders the statement in the fixed-column listing format:
// address, up to 10 hex chars of emitted bytes, 10-char label, 5-char
// mnemonic, 30-char operand, 40-char comment. The operand column holds the
// raw text of indexed and extended-indirect operands and the arguments of
// a macro call; it is blank for every other operand kind.
func (s *Statement) String() string {
	addr := "    "
	if s.AddressValid {
		addr = fmt.Sprintf("%04X", s.Address)
	}

	opBytes := s.emittedHex()
	if len(opBytes) > 10 {
		opBytes = opBytes[:10]
	}

	label := rjust(s.Label, 10)
	mnemonic := rjust(s.MnemonicStr, 5)
	operand := ljust(s.operandText(), 30)
	comment := ljust(s.Comment, 40)

	return fmt.Sprintf("$%s %s %s %s %s ; %s", addr, ljust(opBytes, 10), label, mnemonic, operand, comment)
}

// EmittedBytes returns this statement's contribution to the final binary
// image: opcode bytes, post-byte, then additional bytes, in order.
func (s *Statement) EmittedBytes() []byte {
	var out []byte
	if s.Code.Opcode >= 0 {
		if s.Code.OpcodeSize == 2 {
			out = append(out, byte((s.Code.Opcode>>8)&0xFF), byte(s.Code.Opcode&0xFF))
		} else {
			out = append(out, byte(s.Code.Opcode&0xFF))
		}
	}
	if s.Code.HasPostByte {
		out = append(out, s.Code.PostByte)
	}
	out = append(out, s.Code.Additional...)
	return out
}

func (s *Statement) emittedHex() string {
	if s.Code.Opcode < 0 && !s.Code.HasPostByte && len(s.Code.Additional) == 0 {
		return ""
	}
	var b strings.Builder
	if s.Code.Opcode >= 0 {
		fmt.Fprintf(&b, "%0*X", s.Code.OpcodeSize*2, s.Code.Opcode)
	}
	if s.Code.HasPostByte {
		fmt.Fprintf(&b, "%02X", s.Code.PostByte)
	}
	for _, by := range s.Code.Additional {
		fmt.Fprintf(&b, "%02X", by)
	}
	return b.String()
}

func (s *Statement) operandText() string {
	switch {
	case s.IsMacroCall:
		return strings.Join(s.MacroArgs, ",")
	case s.Operand == nil:
		return ""
	}
	if o, ok := s.Operand.(*IndexedOperand); ok {
		return o.Raw
	}
	if o, ok := s.Operand.(*ExtendedIndirectOperand); ok {
		return o.Raw
	}
	return ""
}

func rjust(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return strings.Repeat(" ", n-len(s)) + s
}

func ljust(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat(" ", n-len(s))
}

// Translate produces the statement's CodePackage from its Instruction and
// Operand. Pseudo-ops produce no opcode; FCB, FDB, FCC and RMB contribute
// data bytes only.
func (s *Statement) Translate(selfIndex int) error {
	s.Code = CodePackage{Opcode: -1, OpcodeSize: 1}

	if s.Instruction == nil || s.IsBlank || s.IsCommentOnly {
		s.Code.FixedSize = true
		return nil
	}

	inst := s.Instruction

	if inst.IsPseudo {
		return s.translatePseudo(selfIndex)
	}

	if inst.IsSpecial {
		return s.translateSpecial()
	}

	if inst.IsShortBranch || inst.IsLongBranch {
		return s.translateBranch()
	}

	op := s.Operand
	if op == nil {
		return &TranslationError{Msg: fmt.Sprintf("[%s] has no operand", s.MnemonicStr), Statement: s}
	}

	switch o := op.(type) {
	case InherentOperand:
		if inst.Mode.Inherent == noOp {
			return &TranslationError{Msg: fmt.Sprintf("[%s] does not support inherent mode", inst.Mnemonic), Statement: s}
		}
		s.Code.Opcode = inst.Mode.Inherent
		s.Code.OpcodeSize = OpcodeSize(inst.Mode.Inherent)
		s.Code.FixedSize = true
		s.Code.Size = s.Code.OpcodeSize
		return nil

	case *ImmediateOperand:
		if inst.Mode.Immediate == noOp {
			return &TranslationError{Msg: fmt.Sprintf("[%s] does not support immediate mode", inst.Mnemonic), Statement: s}
		}
		s.Code.Opcode = inst.Mode.Immediate
		s.Code.OpcodeSize = OpcodeSize(inst.Mode.Immediate)
		width := inst.Mode.RegWidth
		if width == 0 {
			width = 1
		}
		s.setAdditionalFromValue(o.Value, width)
		s.Code.FixedSize = true
		s.Code.Size = s.Code.OpcodeSize + len(s.Code.Additional)
		return nil

	case *DirectOperand:
		if inst.Mode.Direct == noOp {
			return &TranslationError{Msg: fmt.Sprintf("[%s] does not support direct mode", inst.Mnemonic), Statement: s}
		}
		s.Code.Opcode = inst.Mode.Direct
		s.Code.OpcodeSize = OpcodeSize(inst.Mode.Direct)
		s.setAdditionalFromValue(o.Value, 1)
		s.Code.FixedSize = true
		s.Code.Size = s.Code.OpcodeSize + len(s.Code.Additional)
		return nil

	case *ExtendedOperand:
		if inst.Mode.Extended == noOp {
			return &TranslationError{Msg: fmt.Sprintf("[%s] does not support extended mode", inst.Mnemonic), Statement: s}
		}
		s.Code.Opcode = inst.Mode.Extended
		s.Code.OpcodeSize = OpcodeSize(inst.Mode.Extended)
		s.setAdditionalFromValue(o.Value, 2)
		s.Code.FixedSize = true
		s.Code.Size = s.Code.OpcodeSize + len(s.Code.Additional)
		return nil

	case *UnknownOperand:
		reclass := o.Reclassify()
		s.Operand = reclass
		return s.Translate(selfIndex)

	case *IndexedOperand:
		if inst.Mode.Indexed == noOp {
			return &TranslationError{Msg: fmt.Sprintf("[%s] does not support indexed mode", inst.Mnemonic), Statement: s}
		}
		s.Code.Opcode = inst.Mode.Indexed
		s.Code.OpcodeSize = OpcodeSize(inst.Mode.Indexed)
		s.Code.HasPostByte = true
		if o.PCR {
			return s.translatePCRIndexed(o)
		}
		post, extra, err := o.EncodePostByte(0)
		if err != nil {
			return &TranslationError{Msg: err.Error(), Statement: s}
		}
		s.Code.PostByte = post
		s.Code.Additional = extra
		s.Code.FixedSize = true
		s.Code.Size = s.Code.OpcodeSize + 1 + len(extra)
		return nil

	case *ExtendedIndirectOperand:
		if inst.Mode.Indexed == noOp {
			return &TranslationError{Msg: fmt.Sprintf("[%s] does not support indexed mode", inst.Mnemonic), Statement: s}
		}
		s.Code.Opcode = inst.Mode.Indexed
		s.Code.OpcodeSize = OpcodeSize(inst.Mode.Indexed)
		s.Code.HasPostByte = true
		if o.Inner != nil {
			idx := o.Inner.(*IndexedOperand)
			if idx.PCR {
				return s.translatePCRIndexed(idx)
			}
			post, extra, err := idx.EncodePostByte(0)
			if err != nil {
				return &TranslationError{Msg: err.Error(), Statement: s}
			}
			s.Code.PostByte = post
			s.Code.Additional = extra
			s.Code.FixedSize = true
			s.Code.Size = s.Code.OpcodeSize + 1 + len(extra)
			return nil
		}
		s.Code.PostByte = 0x80 | 0x1F
		s.Code.Additional = valueBytes(o.Value, 2)
		s.Code.FixedSize = true
		s.Code.Size = s.Code.OpcodeSize + 1 + len(s.Code.Additional)
		return nil
	}

	return &TranslationError{Msg: fmt.Sprintf("[%s] has an unsupported operand", s.MnemonicStr), Statement: s}
}

// translatePCRIndexed leaves the statement undecided: it records both
// candidate post-bytes and a [min,max] size range for the Program's
// sizing fixpoint to narrow.
func (s *Statement) translatePCRIndexed(o *IndexedOperand) error {
	post8, _, err := o.EncodePostByte(1)
	if err != nil {
		return &TranslationError{Msg: err.Error(), Statement: s}
	}
	post16, _, err := o.EncodePostByte(2)
	if err != nil {
		return &TranslationError{Msg: err.Error(), Statement: s}
	}
	s.Code.IsPCR = true
	s.Code.PostByteChoices = [2]byte{post8, post16}
	s.Code.AdditionalNeedsResolution = true
	s.Code.MinSize = s.Code.OpcodeSize + 1 + 1
	s.Code.MaxSize = s.Code.OpcodeSize + 1 + 2
	s.Code.FixedSize = false
	return nil
}

func (s *Statement) translateBranch() error {
	inst := s.Instruction
	opcode := inst.Mode.Relative
	s.Code.Opcode = opcode
	s.Code.OpcodeSize = OpcodeSize(opcode)
	if inst.IsShortBranch {
		s.Code.Additional = make([]byte, 1)
		s.Code.Size = s.Code.OpcodeSize + 1
	} else {
		s.Code.Additional = make([]byte, 2)
		s.Code.Size = s.Code.OpcodeSize + 2
	}
	s.Code.AdditionalNeedsResolution = true
	s.Code.FixedSize = true
	return nil
}

func (s *Statement) translateSpecial() error {
	inst := s.Instruction
	sp, ok := s.Operand.(*SpecialOperand)
	if !ok {
		return &TranslationError{Msg: fmt.Sprintf("[%s] requires a register operand", inst.Mnemonic), Statement: s}
	}
	s.Code.Opcode = inst.Mode.Inherent
	s.Code.OpcodeSize = OpcodeSize(inst.Mode.Inherent)
	s.Code.HasPostByte = true

	var post byte
	var err error
	switch strings.ToUpper(inst.Mnemonic) {
	case "PSHS", "PULS", "PSHU", "PULU":
		post, err = sp.PushPullPostByte()
	case "EXG", "TFR":
		post, err = sp.TransferPostByte()
	}
	if err != nil {
		return &TranslationError{Msg: err.Error(), Statement: s}
	}
	s.Code.PostByte = post
	s.Code.FixedSize = true
	s.Code.Size = s.Code.OpcodeSize + 1
	return nil
}

func (s *Statement) translatePseudo(selfIndex int) error {
	inst := s.Instruction
	s.Code.FixedSize = true

	switch {
	case inst.IsOrigin, inst.IsName, inst.IsInclude, inst.IsStartMacro, inst.IsEndMacro:
		s.Code.Size = 0
		return nil
	case inst.IsPseudoDef:
		s.Code.Size = 0
		return nil
	case inst.IsEnd:
		s.Code.Size = 0
		return nil
	}

	switch strings.ToUpper(inst.Mnemonic) {
	case "RMB":
		po, ok := s.Operand.(*PseudoOperand)
		if !ok || po.Value == nil {
			return &TranslationError{Msg: "RMB requires a numeric operand", Statement: s}
		}
		n, ok := po.Value.(NumericValue)
		if !ok {
			return &TranslationError{Msg: "RMB requires a numeric operand", Statement: s}
		}
		s.Code.Size = n.Int
		s.Code.Additional = make([]byte, n.Int)
		return nil

	case "FCB":
		po := s.Operand.(*PseudoOperand)
		s.setAdditionalFromValue(po.Value, 1)
		s.Code.Size = len(s.Code.Additional)
		return nil

	case "FDB":
		po := s.Operand.(*PseudoOperand)
		s.setAdditionalFromValue(po.Value, 2)
		s.Code.Size = len(s.Code.Additional)
		return nil

	case "FCC":
		po := s.Operand.(*PseudoOperand)
		sv := po.Value.(StringValue)
		s.Code.Additional = append([]byte(nil), sv.Bytes...)
		s.Code.Size = len(s.Code.Additional)
		return nil
	}

	s.Code.Size = 0
	return nil
}

// DeterminePCRRelativeSize attempts to narrow statement index's undecided
// PCR displacement width by summing the min/max sizes of every statement
// between it and its target. Returns true if this call committed the
// statement to a fixed size.
//
// Grounded on the PCR fixpoint algorithm: it sums over the intervening
// range in both directions (the target may lie before or after this
// statement) and commits to a 2-byte displacement only when both the min
// and max sums fit the signed 8-bit window; it commits to 4-byte only when
// both sums exceed that window; otherwise it stays deferred for the next
// iteration.
func DeterminePCRRelativeSize(statements []*Statement, index int) bool {
	s := statements[index]
	if s.Code.FixedSize || !s.Code.IsPCR {
		return false
	}

	idx := pcrOperand(s)
	if idx == nil {
		return false
	}

	targetIdx, ok := pcrTargetIndex(idx)
	if !ok {
		return false
	}

	lo, hi := index, targetIdx
	backward := targetIdx <= index
	if backward {
		lo, hi = targetIdx, index
	}

	minSum, maxSum := 0, 0
	for i := lo; i < hi; i++ {
		t := statements[i]
		if t.Code.FixedSize {
			minSum += t.Code.Size
			maxSum += t.Code.Size
		} else {
			minSum += t.Code.MinSize
			maxSum += t.Code.MaxSize
		}
	}
	if backward {
		// The forward loop above starts at index and so already folds in
		// this statement's own candidate sizes; the backward loop stops
		// short of index and must add them in separately.
		minSum += s.Code.MinSize
		maxSum += s.Code.MaxSize
	}

	lowBound, highBound := -128, 127
	if backward {
		highBound = 128
	}

	fitsMin := minSum >= lowBound && minSum <= highBound
	fitsMax := maxSum >= lowBound && maxSum <= highBound

	switch {
	case fitsMin && fitsMax:
		s.Code.PostByte = s.Code.PostByteChoices[0]
		s.Code.Size = s.Code.OpcodeSize + 1 + 1
		s.Code.PCRSizeHint = 2
		s.Code.FixedSize = true
		return true
	case !fitsMin && !fitsMax:
		s.Code.PostByte = s.Code.PostByteChoices[1]
		s.Code.Size = s.Code.OpcodeSize + 1 + 2
		s.Code.PCRSizeHint = 4
		s.Code.FixedSize = true
		return true
	default:
		return false
	}
}

func pcrOperand(s *Statement) *IndexedOperand {
	switch o := s.Operand.(type) {
	case *IndexedOperand:
		return o
	case *ExtendedIndirectOperand:
		if o.Inner != nil {
			return o.Inner.(*IndexedOperand)
		}
	}
	return nil
}

func pcrTargetIndex(o *IndexedOperand) (int, bool) {
	addr, ok := o.Offset.(AddressValue)
	if !ok {
		return 0, false
	}
	return addr.Index, true
}

// FixAddress applies address-fixup rules to statement index now that
// every statement carries a final address: relative-branch deltas,
// PCR-relative deltas, and address-valued operand substitution.
func (s *Statement) FixAddress(statements []*Statement, index int) error {
	inst := s.Instruction
	if inst == nil {
		return nil
	}

	if inst.IsShortBranch || inst.IsLongBranch {
		return s.fixBranchDelta(statements)
	}

	if idx := pcrOperand(s); idx != nil && s.Code.IsPCR {
		return s.fixPCRDelta(statements, index, idx)
	}

	if s.Code.AdditionalNeedsResolution {
		if addr, ok := deferredAddress(s.Operand); ok {
			target := statements[addr.Index]
			s.Code.Additional = valueBytes(NewNumericSized(target.Address, s.Code.Width*2), s.Code.Width)
		}
	}

	return nil
}

func (s *Statement) fixBranchDelta(statements []*Statement) error {
	rel, ok := s.Operand.(*RelativeOperand)
	if !ok {
		return nil
	}
	addr, ok := rel.Value.(AddressValue)
	if !ok {
		return nil
	}
	target := statements[addr.Index]
	delta := target.Address - s.Address - s.Code.Size

	if s.Instruction.IsShortBranch {
		if delta < -128 || delta > 127 {
			return &TranslationError{Msg: fmt.Sprintf("short branch displacement %d out of range", delta), Statement: s}
		}
		s.Code.Additional = []byte{byte(delta & 0xFF)}
		return nil
	}
	s.Code.Additional = []byte{byte((delta >> 8) & 0xFF), byte(delta & 0xFF)}
	return nil
}

func (s *Statement) fixPCRDelta(statements []*Statement, index int, idx *IndexedOperand) error {
	addr, ok := idx.Offset.(AddressValue)
	if !ok {
		return nil
	}
	target := statements[addr.Index]
	delta := target.Address - s.Address - s.Code.Size

	s.Code.PostByte = s.Code.PostByteChoices[0]
	width := 1
	if s.Code.PCRSizeHint == 4 {
		s.Code.PostByte = s.Code.PostByteChoices[1]
		width = 2
	}
	_ = index

	if width == 1 {
		if delta < -128 || delta > 127 {
			return &TranslationError{Msg: fmt.Sprintf("PCR displacement %d out of range for 8-bit width", delta), Statement: s}
		}
		s.Code.Additional = []byte{byte(delta & 0xFF)}
	} else {
		if delta < -32768 || delta > 32767 {
			return &TranslationError{Msg: fmt.Sprintf("PCR displacement %d out of range for 16-bit width", delta), Statement: s}
		}
		s.Code.Additional = []byte{byte((delta >> 8) & 0xFF), byte(delta & 0xFF)}
	}
	return nil
}

// setAdditionalFromValue renders v into s.Code.Additional at the given
// byte width. Address-kind values cannot be rendered yet (the statement
// they reference has no assigned address until address assignment runs),
// so a zero-filled placeholder is recorded instead and flagged for the
// address-fixup pass to fill in later.
func (s *Statement) setAdditionalFromValue(v Value, width int) {
	if v != nil && v.Kind() == KindAddress {
		s.Code.Additional = make([]byte, width)
		s.Code.AdditionalNeedsResolution = true
		s.Code.Width = width
		return
	}
	s.Code.Additional = valueBytes(v, width)
}

// deferredAddress returns the AddressValue carried by s's operand, for
// operand kinds whose Additional bytes may have been deferred by
// setAdditionalFromValue.
func deferredAddress(op Operand) (AddressValue, bool) {
	switch o := op.(type) {
	case *ImmediateOperand:
		a, ok := o.Value.(AddressValue)
		return a, ok
	case *DirectOperand:
		a, ok := o.Value.(AddressValue)
		return a, ok
	case *ExtendedOperand:
		a, ok := o.Value.(AddressValue)
		return a, ok
	case *PseudoOperand:
		if o.Value == nil {
			return AddressValue{}, false
		}
		a, ok := o.Value.(AddressValue)
		return a, ok
	}
	return AddressValue{}, false
}

// valueBytes renders v's hex digits as exactly width bytes, truncating or
// zero-extending on the left as needed.
func valueBytes(v Value, width int) []byte {
	if v == nil {
		return make([]byte, width)
	}
	hex := v.Hex(width * 2)
	out := make([]byte, width)
	for i := 0; i < width; i++ {
		start := len(hex) - (width-i)*2
		if start < 0 {
			out[i] = 0
			continue
		}
		var b int
		fmt.Sscanf(hex[start:start+2], "%02X", &b)
		out[i] = byte(b)
	}
	return out
}
