package asm

import (
	"fmt"
	"sort"
	"strings"
)

// SourceReader is the single collaborator the core needs from outside:
// something that can turn a filename into its lines of text. The CLI
// front-end supplies the concrete implementation (see package source);
// the core only ever sees this interface.
type SourceReader interface {
	ReadLines(filename string) ([]string, error)
}

// Program is the top-level driver: it owns the statement list, the
// symbol table, and the macro table, and runs the eleven-stage pipeline
// described by the assembler's design (include splicing through
// emission).
type Program struct {
	Statements []*Statement
	Symbols    SymbolTable
	Macros     MacroTable

	Origin      int
	ExecAddress int
	Name        string

	reader   SourceReader
	counters localLabelCounters
}

// NewProgram builds a Program that reads INCLUDE files through reader.
func NewProgram(reader SourceReader) *Program {
	return &Program{reader: reader, Symbols: SymbolTable{}}
}

// Assemble runs the full pipeline over lines (the top-level source file's
// lines) and leaves the Program ready for GetBinaryArray/GetSymbolTable.
func (p *Program) Assemble(lines []string) error {
	spliced, err := p.spliceIncludes(lines)
	if err != nil {
		return err
	}

	ordinary, macros, err := ExtractMacros(spliced)
	if err != nil {
		return err
	}
	p.Macros = macros

	statements, err := p.buildStatements(ordinary)
	if err != nil {
		return err
	}
	p.Statements = statements

	if err := p.buildSymbolTable(); err != nil {
		return err
	}

	if err := p.resolveOperands(); err != nil {
		return err
	}

	if err := p.translateAll(); err != nil {
		return err
	}

	if err := p.runSizingFixpoint(); err != nil {
		return err
	}

	p.assignAddresses()

	if err := p.fixBranches(); err != nil {
		return err
	}

	p.rewriteSymbolTable()
	p.findOriginExecName()

	return nil
}

// spliceIncludes recursively replaces every INCLUDE statement with the
// lines of the named file, depth-first. Include cycles are not detected
// (undefined behaviour, per design).
func (p *Program) spliceIncludes(lines []string) ([]string, error) {
	var out []string
	for _, line := range lines {
		stmt, err := ParseStatement(line)
		if err != nil {
			return nil, err
		}
		if stmt.Instruction != nil && stmt.Instruction.IsInclude {
			po, ok := stmt.Operand.(*PseudoOperand)
			if !ok || po.Value == nil {
				return nil, &ParseError{Msg: "INCLUDE requires a filename operand", Statement: stmt}
			}
			filename := po.Value.Ascii()
			if p.reader == nil {
				return nil, &ParseError{Msg: fmt.Sprintf("cannot INCLUDE [%s]: no source reader configured", filename), Statement: stmt}
			}
			included, err := p.reader.ReadLines(filename)
			if err != nil {
				return nil, err
			}
			spliced, err := p.spliceIncludes(included)
			if err != nil {
				return nil, err
			}
			out = append(out, spliced...)
			continue
		}
		out = append(out, line)
	}
	return out, nil
}

// buildStatements parses every ordinary (non-macro-body) line, expanding
// macro calls in place as they are encountered.
func (p *Program) buildStatements(lines []string) ([]*Statement, error) {
	var out []*Statement
	for _, line := range lines {
		s, err := ParseStatement(line)
		if err != nil {
			return nil, err
		}

		if s.IsMacroCall {
			m, ok := p.Macros[s.MnemonicStr]
			if !ok {
				return nil, &TranslationError{Msg: fmt.Sprintf("[%s] is not a defined macro", s.MnemonicStr), Statement: s}
			}
			expanded := ExpandMacroCall(m, s.MacroArgs, &p.counters)
			if s.Label != "" && len(expanded) > 0 {
				expanded[0] = s.Label + " " + strings.TrimLeft(expanded[0], " \t")
			}
			for _, eline := range expanded {
				es, err := ParseStatement(eline)
				if err != nil {
					return nil, err
				}
				out = append(out, es)
			}
			continue
		}

		out = append(out, s)
	}
	return out, nil
}

// buildSymbolTable walks the statement list once: EQU labels bind
// immediately to their operand's Value, everything else (including SET
// and SETDP) binds to Address(index). Duplicate labels fail.
func (p *Program) buildSymbolTable() error {
	for i, s := range p.Statements {
		if s.Label == "" {
			continue
		}
		if _, exists := p.Symbols[s.Label]; exists {
			return &TranslationError{Msg: fmt.Sprintf("[%s] is already defined", s.Label), Statement: s}
		}
		if s.Instruction != nil && s.Instruction.IsPseudoDefine() {
			po, ok := s.Operand.(*PseudoOperand)
			if !ok || po.Value == nil {
				return &TranslationError{Msg: fmt.Sprintf("[%s] has no value to bind", s.Label), Statement: s}
			}
			p.Symbols[s.Label] = po.Value
			continue
		}
		p.Symbols[s.Label] = NewAddress(i)
	}
	return nil
}

// resolveOperands resolves every statement's operand against the symbol
// table, reclassifying Unknown operands to Direct or Extended once their
// value's width is known.
func (p *Program) resolveOperands() error {
	for _, s := range p.Statements {
		if s.Operand == nil {
			continue
		}
		if err := s.Operand.Resolve(p.Symbols); err != nil {
			return &TranslationError{Msg: err.Error(), Statement: s}
		}
		if u, ok := s.Operand.(*UnknownOperand); ok {
			s.Operand = u.Reclassify()
		}
	}
	return nil
}

func (p *Program) translateAll() error {
	for i, s := range p.Statements {
		if err := s.Translate(i); err != nil {
			return err
		}
	}
	return nil
}

// runSizingFixpoint repeatedly narrows undecided PCR statements until
// every statement has a fixed size, or a full pass makes no progress (a
// contradiction the assembler cannot resolve).
func (p *Program) runSizingFixpoint() error {
	for {
		progressed := false
		allFixed := true
		for i, s := range p.Statements {
			if s.Code.FixedSize {
				continue
			}
			if DeterminePCRRelativeSize(p.Statements, i) {
				progressed = true
			} else {
				allFixed = false
			}
		}
		if allFixed {
			return nil
		}
		if !progressed {
			return &TranslationError{Msg: "unable to resolve PCR sizes"}
		}
	}
}

// assignAddresses walks the list once, advancing a running counter by
// each statement's size; ORG resets the counter (and the statement
// carrying it gets the new address, as does everything after it).
func (p *Program) assignAddresses() {
	addr := 0
	originSeen := false
	for _, s := range p.Statements {
		if s.Instruction != nil && s.Instruction.IsOrigin {
			if po, ok := s.Operand.(*PseudoOperand); ok && po.Value != nil {
				if n, ok := po.Value.(NumericValue); ok {
					addr = n.Int
				}
			}
			if !originSeen {
				p.Origin = addr
				originSeen = true
			}
		}
		s.Address = addr
		s.AddressValid = true
		addr += s.Code.TotalSize()
	}
}

func (p *Program) fixBranches() error {
	for i, s := range p.Statements {
		if err := s.FixAddress(p.Statements, i); err != nil {
			return err
		}
	}
	return nil
}

// rewriteSymbolTable replaces every Address-valued symbol table entry
// with the concrete address its statement was assigned.
func (p *Program) rewriteSymbolTable() {
	for name, v := range p.Symbols {
		if addr, ok := v.(AddressValue); ok {
			p.Symbols[name] = NewNumericSized(p.Statements[addr.Index].Address, 4)
		}
	}
}

// findOriginExecName scans for NAM (program name) and END (exec address,
// defaulting to Origin when END carries no operand).
func (p *Program) findOriginExecName() {
	p.ExecAddress = p.Origin
	for _, s := range p.Statements {
		if s.Instruction == nil {
			continue
		}
		if s.Instruction.IsName {
			if po, ok := s.Operand.(*PseudoOperand); ok && po.Value != nil {
				p.Name = po.Value.Ascii()
			}
		}
		if s.Instruction.IsEnd {
			if po, ok := s.Operand.(*PseudoOperand); ok && po.Value != nil {
				switch v := po.Value.(type) {
				case NumericValue:
					p.ExecAddress = v.Int
				case AddressValue:
					p.ExecAddress = p.Statements[v.Index].Address
				}
			}
		}
	}
}

// GetBinaryArray concatenates every statement's emitted bytes in order.
func (p *Program) GetBinaryArray() []byte {
	var out []byte
	for _, s := range p.Statements {
		out = append(out, s.EmittedBytes()...)
	}
	return out
}

// GetSymbolTable renders the symbol table as sorted `$hex name` lines.
func (p *Program) GetSymbolTable() string {
	names := make([]string, 0, len(p.Symbols))
	for name := range p.Symbols {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		v := p.Symbols[name]
		fmt.Fprintf(&b, "$%-4s %s\n", v.Hex(4), name)
	}
	return b.String()
}

// GetStatements returns the assembled statement list for listing output.
func (p *Program) GetStatements() []*Statement {
	return p.Statements
}
