package z80

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Context is the per-run state visible to the instruction encoders.
type Context struct {
	*Tables

	Labels    map[string]int // Label table; partial during the first pass.
	Constants map[string]int // Constants defined so far.
	Origin    int            // Current origin address.
	Address   int            // Program counter of the current instruction.
}

// parseInt parses digits in base, rejecting empty text and sign prefixes.
func parseInt(text string, base int) (value int, err error) {
	if len(text) == 0 || text[0] == '+' || text[0] == '-' {
		err = strconv.ErrSyntax
		return
	}
	v64, err := strconv.ParseInt(text, base, 64)
	value = int(v64)
	return
}

// Immediate resolves operand text to an integer. Constants are tried
// first, then 'c' character literals, $FF and 0xFF hexadecimal, %1010
// binary, and finally decimal.
func (ctx *Context) Immediate(text string) (value int, err error) {
	text = strings.TrimSpace(text)

	value, ok := ctx.Constants[text]
	if ok {
		return
	}

	switch {
	case len(text) >= 3 && text[0] == '\'' && text[len(text)-1] == '\'' &&
		utf8.RuneCountInString(text) == 3:
		r, _ := utf8.DecodeRuneInString(text[1:])
		value = int(r)
	case strings.HasPrefix(text, "$"):
		value, err = parseInt(text[1:], 16)
	case strings.HasPrefix(text, "0x"), strings.HasPrefix(text, "0X"):
		value, err = parseInt(text[2:], 16)
	case strings.HasPrefix(text, "%"):
		value, err = parseInt(text[1:], 2)
	default:
		var v64 int64
		v64, err = strconv.ParseInt(text, 10, 64)
		value = int(v64)
	}

	if err != nil {
		value = 0
		err = ErrParseNumber(text)
	}

	return
}

// Resolve returns the value of a label, a system variable, or an immediate.
func (ctx *Context) Resolve(text string) (value int, err error) {
	text = strings.TrimSpace(text)

	value, ok := ctx.Labels[text]
	if ok {
		return
	}

	if ctx.Tables != nil {
		addr, ok := ctx.SysVars[text]
		if ok {
			value = int(addr)
			return
		}
	}

	value, err = ctx.Immediate(text)
	if err != nil && isIdentifier(text) {
		err = ErrLabelMissing(text)
	}

	return
}

// Byte resolves text and truncates it to 8 bits.
func (ctx *Context) Byte(text string) (value byte, err error) {
	v, err := ctx.Resolve(text)
	value = byte(v)
	return
}

// Word resolves text and returns it as a little-endian 16-bit pair.
func (ctx *Context) Word(text string) (word []byte, err error) {
	v, err := ctx.Resolve(text)
	if err != nil {
		return
	}
	word = le16(v)
	return
}

// le16 encodes the low 16 bits of value, least significant byte first.
func le16(value int) []byte {
	return []byte{byte(value), byte(value >> 8)}
}

// evaluate computes a $(...) expression with the constants predeclared.
func (ctx *Context) evaluate(expr string) (value int, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, v := range ctx.Constants {
		if !isIdentifier(key) || strings.Contains(key, ".") {
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// Expand replaces every $(...) expression in text by its decimal value.
// Quoted literals are copied unchanged.
func (ctx *Context) Expand(text string) (out string, err error) {
	var sb strings.Builder

	for n := 0; n < len(text); n++ {
		if skip := skipLiteral(text[n:]); skip > 0 {
			sb.WriteString(text[n : n+skip])
			n += skip - 1
			continue
		}

		if !strings.HasPrefix(text[n:], "$(") {
			sb.WriteByte(text[n])
			continue
		}

		depth := 0
		end := -1
		for m := n + 1; m < len(text) && end < 0; m++ {
			switch text[m] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					end = m
				}
			}
		}
		if end < 0 {
			err = ErrParseExpression(text[n+2:])
			return
		}

		var value int
		value, err = ctx.evaluate(text[n+2 : end])
		if err != nil {
			return
		}
		sb.WriteString(strconv.Itoa(value))
		n = end
	}

	out = sb.String()
	return
}
