package z80

// aluMap maps the 8-bit ALU operations to their 3-bit operation field.
var aluMap = map[string]byte{
	"add": 0,
	"adc": 1,
	"sub": 2,
	"sbc": 3,
	"and": 4,
	"xor": 5,
	"or":  6,
	"cp":  7,
}

const opALUn = byte(0xc6) // add a,n; the other operations follow in steps of 8.

// aluOperand returns the source operand of an accumulator operation,
// written either as "op a,src" or "op src".
func aluOperand(parts []string) (src string, ok bool) {
	switch {
	case len(parts) == 1:
		return parts[0], true
	case len(parts) == 2 && canon(parts[0]) == "a":
		return parts[1], true
	}
	return
}

// arithmeticFamily encodes the eight ALU operations with an 8-bit
// immediate. Register and memory sources fall through to the opcode table.
func arithmeticFamily(t *Tables, ins Instruction) (fm form, ok bool) {
	op, found := aluMap[ins.Mnemonic]
	if !found {
		return
	}

	src, found := aluOperand(SplitOperands(ins.Operands))
	if !found || isRegister(src) || isIndirect(src) {
		return
	}

	fm, ok = emitByte(src, opALUn|op<<3), true
	return
}
