package z80

import (
	"strings"
	"unicode"
)

// Instruction is a mnemonic with its raw operand text.
type Instruction struct {
	Mnemonic string // Lower-cased mnemonic or directive.
	Operands string // Operand text, trimmed.
}

// Line is a single parsed line of source.
type Line struct {
	Label string // Label defined on the line, or empty.
	Instruction
}

// romCallPrefix lists the spellings of the ROM call invocation syntax.
var romCallPrefix = []string{"bcall(", "b_call("}

// skipLiteral returns the length of a quoted literal starting at text[0],
// or 0 if text does not start one. Strings run to the next '"'; an
// apostrophe only opens a literal in the three character form 'c'.
func skipLiteral(text string) int {
	switch {
	case text[0] == '"':
		end := strings.IndexByte(text[1:], '"')
		if end < 0 {
			return len(text)
		}
		return end + 2
	case text[0] == '\'' && len(text) >= 3 && text[2] == '\'':
		return 3
	}
	return 0
}

// indexOutside finds the first ch in text that is not inside a literal.
func indexOutside(text string, ch byte) int {
	for n := 0; n < len(text); n++ {
		if skip := skipLiteral(text[n:]); skip > 0 {
			n += skip - 1
			continue
		}
		if text[n] == ch {
			return n
		}
	}
	return -1
}

// ParseLine splits a line of source into label, mnemonic and operands.
// It returns false for lines that are empty once the comment is removed.
func ParseLine(text string) (line Line, ok bool) {
	if n := indexOutside(text, ';'); n >= 0 {
		text = text[:n]
	}
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return
	}

	ok = true

	if n := indexOutside(text, ':'); n >= 0 {
		line.Label = strings.TrimSpace(text[:n])
		text = strings.TrimSpace(text[n+1:])
	}

	if len(text) == 0 {
		return
	}

	lower := strings.ToLower(text)
	for _, prefix := range romCallPrefix {
		if !strings.HasPrefix(lower, prefix) {
			continue
		}
		line.Mnemonic = "bcall"
		start := strings.IndexByte(text, '(')
		end := strings.LastIndexByte(text, ')')
		if end > start {
			line.Operands = strings.TrimSpace(text[start+1 : end])
		}
		return
	}

	n := strings.IndexFunc(text, unicode.IsSpace)
	if n < 0 {
		line.Mnemonic = lower
		return
	}

	line.Mnemonic = lower[:n]
	line.Operands = strings.TrimSpace(text[n:])

	return
}

// SplitOperands splits operand text at commas outside of parentheses and
// quoted literals.
func SplitOperands(text string) (parts []string) {
	if len(strings.TrimSpace(text)) == 0 {
		return
	}

	depth := 0
	start := 0
	for n := 0; n < len(text); n++ {
		if skip := skipLiteral(text[n:]); skip > 0 {
			n += skip - 1
			continue
		}
		switch text[n] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(text[start:n]))
				start = n + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(text[start:]))

	return
}

// splitData splits .db operands at commas outside of string literals.
func splitData(text string) (values []string) {
	start := 0
	for n := 0; n < len(text); n++ {
		if skip := skipLiteral(text[n:]); skip > 0 {
			n += skip - 1
			continue
		}
		if text[n] == ',' {
			values = append(values, strings.TrimSpace(text[start:n]))
			start = n + 1
		}
	}
	if last := strings.TrimSpace(text[start:]); len(last) > 0 {
		values = append(values, last)
	}

	return
}
