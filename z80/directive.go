package z80

import (
	"strings"
	"unicode/utf8"
)

// dataEscape expands the escapes recognised inside .db strings.
var dataEscape = strings.NewReplacer(`\n`, "\n", `\r`, "\r", `\t`, "\t")

// isString returns true for a double-quoted .db value.
func isString(value string) bool {
	return len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"'
}

// dataString returns the text of a .db string value with escapes expanded.
func dataString(value string) string {
	return dataEscape.Replace(value[1 : len(value)-1])
}

// dataBytes returns the .db values and the number of bytes they occupy:
// one per string character, one per other value.
func dataBytes(operands string) (values []string, size int) {
	values = splitData(operands)
	for _, value := range values {
		if isString(value) {
			size += utf8.RuneCountInString(dataString(value))
		} else {
			size++
		}
	}
	return
}

// dataWords returns the .dw values.
func dataWords(operands string) (values []string) {
	if len(strings.TrimSpace(operands)) == 0 {
		return
	}
	for _, value := range strings.Split(operands, ",") {
		values = append(values, strings.TrimSpace(value))
	}
	return
}

// equate splits a .equ operand into name and value.
func equate(operands string) (name, value string, err error) {
	parts := strings.Split(operands, ",")
	if len(parts) != 2 {
		err = ErrEquateSyntax
		return
	}
	name = strings.TrimSpace(parts[0])
	value = strings.TrimSpace(parts[1])
	if len(name) == 0 || len(value) == 0 {
		err = ErrEquateSyntax
	}
	return
}

// directiveFamily handles .org, .equ, .end, .db and .dw.
func directiveFamily(t *Tables, ins Instruction) (fm form, ok bool) {
	ok = true

	switch ins.Mnemonic {
	case ".org":
		fm = form{emit: func(ctx *Context) (code []byte, err error) {
			if len(ins.Operands) == 0 {
				err = ErrOriginMissing
				return
			}
			origin, err := ctx.Immediate(ins.Operands)
			if err != nil {
				return
			}
			ctx.Origin = origin
			ctx.Address = origin
			return
		}}
	case ".equ":
		fm = form{emit: func(ctx *Context) (code []byte, err error) {
			name, text, err := equate(ins.Operands)
			if err != nil {
				return
			}
			value, err := ctx.Immediate(text)
			if err != nil {
				return
			}
			if ctx.Constants == nil {
				ctx.Constants = make(map[string]int)
			}
			ctx.Constants[name] = value
			return
		}}
	case ".end":
		fm = fixed()
	case ".db":
		values, size := dataBytes(ins.Operands)
		fm = form{size: size, emit: func(ctx *Context) (code []byte, err error) {
			code = make([]byte, 0, size)
			for _, value := range values {
				if isString(value) {
					for _, r := range dataString(value) {
						code = append(code, byte(r))
					}
					continue
				}
				var b byte
				b, err = ctx.Byte(value)
				if err != nil {
					return
				}
				code = append(code, b)
			}
			return
		}}
	case ".dw":
		values := dataWords(ins.Operands)
		fm = form{size: 2 * len(values), emit: func(ctx *Context) (code []byte, err error) {
			for _, value := range values {
				var word []byte
				word, err = ctx.Word(value)
				if err != nil {
					return
				}
				code = append(code, word...)
			}
			return
		}}
	default:
		ok = false
	}

	return
}
