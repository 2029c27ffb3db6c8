package z80

import (
	"strings"
)

// Tables is the read-only configuration an assembler consults.
type Tables struct {
	Opcodes  map[string]uint32 // Fixed encodings; the built-in table if nil.
	RomCalls map[string]uint16 // ROM call name to address.
	SysVars  map[string]uint16 // System variable name to address.
}

// opcode looks up a fixed encoding.
func (t *Tables) opcode(key string) (value uint32, ok bool) {
	table := defaultOpcodes
	if t != nil && t.Opcodes != nil {
		table = t.Opcodes
	}
	value, ok = table[key]
	return
}

// form is a recognised instruction shape: its exact size, and how to
// produce the bytes once the label table is complete.
type form struct {
	size int
	emit func(ctx *Context) ([]byte, error)
}

// fixed returns a form that always emits code.
func fixed(code ...byte) form {
	return form{
		size: len(code),
		emit: func(ctx *Context) ([]byte, error) { return code, nil },
	}
}

// fails returns a form that reports err when encoded.
func fails(size int, err error) form {
	return form{
		size: size,
		emit: func(ctx *Context) ([]byte, error) { return nil, err },
	}
}

// family recognises the instructions of one encoder family. It returns
// false when the instruction is not one of its forms.
type family func(t *Tables, ins Instruction) (form, bool)

// families lists the encoder families in dispatch order.
var families = []family{
	directiveFamily,
	romCallFamily,
	indexFamily,
	loadFamily,
	jumpFamily,
	callFamily,
	arithmeticFamily,
	bitFamily,
	portFamily,
	tableFamily,
	unknownDirectiveFamily,
}

// match finds the form of an instruction.
func match(t *Tables, ins Instruction) (fm form, ok bool) {
	for _, fam := range families {
		fm, ok = fam(t, ins)
		if ok {
			return
		}
	}
	return
}

// RST 28h, the ROM call trampoline.
const rst28 = byte(0xef)

// romCallFamily encodes bcall(name).
func romCallFamily(t *Tables, ins Instruction) (fm form, ok bool) {
	if ins.Mnemonic != "bcall" {
		return
	}

	name := ins.Operands
	if isIndirect(name) {
		name = indirect(name)
	}

	fm = form{
		size: 3,
		emit: func(ctx *Context) (code []byte, err error) {
			addr, ok := ctx.RomCalls[name]
			if !ok {
				err = ErrRomCall(name)
				return
			}
			code = append([]byte{rst28}, le16(int(addr))...)
			return
		},
	}
	ok = true
	return
}

// tableKey canonicalises an instruction for the opcode table.
func tableKey(ins Instruction) string {
	ops := canon(ins.Operands)
	if len(ops) == 0 {
		return ins.Mnemonic
	}
	return ins.Mnemonic + " " + ops
}

// opcodeBytes splits a table value into 1, 2 or 3 bytes, prefix first.
func opcodeBytes(value uint32) []byte {
	switch {
	case value > 0xffff:
		return []byte{byte(value >> 16), byte(value >> 8), byte(value)}
	case value > 0xff:
		return []byte{byte(value >> 8), byte(value)}
	}
	return []byte{byte(value)}
}

// tableFamily encodes the fixed encodings of the opcode table, first by
// the full instruction, then by the bare mnemonic.
func tableFamily(t *Tables, ins Instruction) (fm form, ok bool) {
	value, ok := t.opcode(tableKey(ins))
	if !ok {
		value, ok = t.opcode(ins.Mnemonic)
	}
	if !ok {
		return
	}

	fm = fixed(opcodeBytes(value)...)
	return
}

// unknownDirectiveFamily ignores unrecognised directives.
func unknownDirectiveFamily(t *Tables, ins Instruction) (fm form, ok bool) {
	if !strings.HasPrefix(ins.Mnemonic, ".") {
		return
	}

	fm = fixed()
	ok = true
	return
}
