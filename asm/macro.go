package asm

import (
	"fmt"
	"strings"
)

// macroValuePlaceholders are the positional argument markers a macro body
// may reference: \0-\9 and \A-\Z.
var macroValuePlaceholders = func() []string {
	var out []string
	for c := '0'; c <= '9'; c++ {
		out = append(out, fmt.Sprintf("\\%c", c))
	}
	for c := 'A'; c <= 'Z'; c++ {
		out = append(out, fmt.Sprintf("\\%c", c))
	}
	return out
}()

// macroLabelPlaceholders are the hygienic local-label markers: \.A-\.Z.
var macroLabelPlaceholders = func() []string {
	var out []string
	for c := 'A'; c <= 'Z'; c++ {
		out = append(out, fmt.Sprintf("\\.%c", c))
	}
	return out
}()

// Macro is a stored template: the raw source lines between MACRO and
// ENDM, re-parsed and expanded once per call site.
type Macro struct {
	Name  string
	Lines []string
}

// MacroTable maps macro name (case-preserved, as defined) to its template.
type MacroTable map[string]*Macro

// localLabelCounters tracks, per letter A-Z, how many macro calls have
// referenced that local-label letter so far; each such call gets a fresh
// generated name, shared by every reference within that call.
type localLabelCounters struct {
	counts [26]int
}

func (c *localLabelCounters) next(letter byte) string {
	i := letter - 'A'
	name := fmt.Sprintf("%c%05d", letter, c.counts[i])
	c.counts[i]++
	return name
}

// ExtractMacros walks lines (already include-spliced) and separates macro
// bodies from ordinary statements, returning the ordinary lines and the
// populated macro table. Mirrors the two-pass separation of
// include-splicing and macro extraction: this is pass two.
func ExtractMacros(lines []string) ([]string, MacroTable, error) {
	macros := MacroTable{}
	var out []string

	var current *Macro
	var currentLabel string

	for _, line := range lines {
		stmt, err := ParseStatement(line)
		if err != nil {
			return nil, nil, err
		}

		if stmt.IsMacroStart {
			if current != nil {
				return nil, nil, &MacroError{Msg: fmt.Sprintf("[%s] nested MACRO definition is not allowed", stmt.Label)}
			}
			if stmt.Label == "" {
				return nil, nil, &MacroError{Msg: "MACRO statement must have a label"}
			}
			if _, exists := macros[stmt.Label]; exists {
				return nil, nil, &MacroError{Msg: fmt.Sprintf("[%s] macro redefinition is not allowed", stmt.Label)}
			}
			currentLabel = stmt.Label
			current = &Macro{Name: stmt.Label}
			continue
		}

		if stmt.IsMacroEnd {
			if current == nil {
				return nil, nil, &MacroError{Msg: "ENDM without matching MACRO"}
			}
			macros[currentLabel] = current
			current = nil
			continue
		}

		if current != nil {
			current.Lines = append(current.Lines, line)
			continue
		}

		out = append(out, line)
	}

	if current != nil {
		return nil, nil, &MacroError{Msg: fmt.Sprintf("[%s] macro definition is missing ENDM", currentLabel)}
	}

	return out, macros, nil
}

// ExpandMacroCall rewrites a macro's template lines for one invocation:
// positional placeholders \0-\9,\A-\Z become the call's operands (missing
// positions become empty strings), then local-label placeholders \.A-\.Z
// become per-letter generated names. Every occurrence of \.B within the
// same call shares one generated name, so a local label's definition and
// its references stay consistent; the per-letter counter advances once
// per call, not once per occurrence.
func ExpandMacroCall(m *Macro, args []string, counters *localLabelCounters) []string {
	names := map[byte]string{}
	for _, line := range m.Lines {
		for _, placeholder := range macroLabelPlaceholders {
			if !strings.Contains(line, placeholder) {
				continue
			}
			letter := placeholder[len(placeholder)-1]
			if _, ok := names[letter]; !ok {
				names[letter] = counters.next(letter)
			}
		}
	}

	out := make([]string, 0, len(m.Lines))
	for _, line := range m.Lines {
		rewritten := replaceMacroArguments(line, args)
		rewritten = replaceLocalLabels(rewritten, names)
		out = append(out, rewritten)
	}
	return out
}

func replaceMacroArguments(line string, args []string) string {
	for i, placeholder := range macroValuePlaceholders {
		value := ""
		if i < len(args) {
			value = args[i]
		}
		line = strings.ReplaceAll(line, placeholder, value)
	}
	return line
}

func replaceLocalLabels(line string, names map[byte]string) string {
	for _, placeholder := range macroLabelPlaceholders {
		letter := placeholder[len(placeholder)-1]
		name, ok := names[letter]
		if !ok {
			continue
		}
		line = strings.ReplaceAll(line, placeholder, name)
	}
	return line
}
