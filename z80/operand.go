package z80

import (
	"strings"
)

// canon lower-cases an operand and drops all blanks, so "( HL )" and
// "(hl)" compare equal.
func canon(operand string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t':
			return -1
		}
		return r
	}, strings.ToLower(operand))
}

// registers is every register spelling, including the indirect forms that
// take no address.
var registers = map[string]bool{
	"a": true, "b": true, "c": true, "d": true, "e": true, "h": true, "l": true,
	"i": true, "r": true,
	"af": true, "af'": true, "bc": true, "de": true, "hl": true, "sp": true,
	"ix": true, "iy": true, "ixh": true, "ixl": true, "iyh": true, "iyl": true,
	"(bc)": true, "(de)": true, "(hl)": true, "(sp)": true, "(c)": true,
	"(ix)": true, "(iy)": true,
}

// isRegister returns true if the operand names a register.
func isRegister(operand string) bool {
	return registers[canon(operand)]
}

// reg8Map maps the 8-bit register operands to their 3-bit field encoding.
var reg8Map = map[string]byte{
	"b":    0,
	"c":    1,
	"d":    2,
	"e":    3,
	"h":    4,
	"l":    5,
	"(hl)": 6,
	"a":    7,
}

// reg8 returns the 3-bit code of an 8-bit register operand.
func reg8(operand string) (code byte, ok bool) {
	code, ok = reg8Map[canon(operand)]
	return
}

// isReg8 returns true for a, b, c, d, e, h and l. (hl) is not a register here.
func isReg8(operand string) bool {
	code, ok := reg8(operand)
	return ok && code != 6
}

// isIndirect returns true if the operand is a parenthesised expression.
func isIndirect(operand string) bool {
	return len(operand) >= 2 && operand[0] == '(' && operand[len(operand)-1] == ')'
}

// indirect returns the text inside the parentheses of an indirect operand.
func indirect(operand string) string {
	return strings.TrimSpace(operand[1 : len(operand)-1])
}

// isAddress returns true for an indirect memory operand (nn) that is not a
// register indirection or an indexed form.
func isAddress(operand string) bool {
	if !isIndirect(operand) {
		return false
	}
	if isRegister(operand) || isRegister(indirect(operand)) {
		return false
	}
	_, _, ok := indexed(operand)
	return !ok
}

// Index register prefixes.
const (
	prefixIX = byte(0xdd)
	prefixIY = byte(0xfd)
)

// indexMap maps index register names to their opcode prefix.
var indexMap = map[string]byte{
	"ix": prefixIX,
	"iy": prefixIY,
}

// indexReg returns the prefix byte of an index register operand.
func indexReg(operand string) (prefix byte, ok bool) {
	prefix, ok = indexMap[canon(operand)]
	return
}

// indexed decodes an (ix+d), (ix-d) or (ix) operand (and the iy forms).
// The displacement is returned as text, with a leading '-' when negative.
func indexed(operand string) (prefix byte, disp string, ok bool) {
	if !isIndirect(operand) {
		return
	}
	inner := indirect(operand)
	if len(inner) < 2 {
		return
	}
	prefix, ok = indexReg(inner[:2])
	if !ok {
		return
	}

	rest := strings.TrimSpace(inner[2:])
	switch {
	case len(rest) == 0:
		disp = "0"
	case rest[0] == '+':
		disp = strings.TrimSpace(rest[1:])
	case rest[0] == '-':
		disp = "-" + strings.TrimSpace(rest[1:])
	default:
		ok = false
	}

	return
}

// Condition codes of the absolute jump, call and return families, in
// opcode order.
var conditionMap = map[string]byte{
	"nz": 0,
	"z":  1,
	"nc": 2,
	"c":  3,
	"po": 4,
	"pe": 5,
	"p":  6,
	"m":  7,
}

// condition returns the 3-bit code of a condition operand.
func condition(operand string) (code byte, ok bool) {
	code, ok = conditionMap[canon(operand)]
	return
}

// shortCondition returns the 2-bit code of a relative-branch condition.
func shortCondition(operand string) (code byte, ok bool) {
	code, ok = condition(operand)
	if code > 3 {
		ok = false
	}
	return
}

// isIdentifier returns true if text could name a label or constant.
func isIdentifier(text string) bool {
	if len(text) == 0 {
		return false
	}
	for n, r := range text {
		switch {
		case r == '_' || r == '.':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case n > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
