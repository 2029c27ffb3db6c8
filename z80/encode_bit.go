package z80

const prefixCB = byte(0xcb)

// CB-prefixed bit test and modify operations, bits 7-6 of the opcode.
var bitOpMap = map[string]byte{
	"bit": 0x40,
	"res": 0x80,
	"set": 0xc0,
}

// CB-prefixed rotate and shift operations, bits 5-3 of the opcode.
var shiftOpMap = map[string]byte{
	"rlc": 0x00,
	"rrc": 0x08,
	"rl":  0x10,
	"rr":  0x18,
	"sla": 0x20,
	"sra": 0x28,
	"sll": 0x30,
	"srl": 0x38,
}

// cbOperand encodes the register or (ix+d) operand of a CB instruction.
// Encoding of the bit number, if any, is deferred to emit.
func cbOperand(opcode byte, bitText string, operand string) form {
	withBit := func(ctx *Context) (op byte, err error) {
		op = opcode
		if len(bitText) == 0 {
			return
		}
		bit, err := ctx.Immediate(bitText)
		if err != nil {
			return
		}
		if bit < 0 || bit > 7 {
			err = ErrRange{What: f("bit"), Value: bit, Min: 0, Max: 7}
			return
		}
		op |= byte(bit) << 3
		return
	}

	if prefix, disp, found := indexed(operand); found {
		return form{
			size: 4,
			emit: func(ctx *Context) (code []byte, err error) {
				op, err := withBit(ctx)
				if err != nil {
					return
				}
				d, err := ctx.displacement(disp)
				if err != nil {
					return
				}
				code = []byte{prefix, prefixCB, d, op | 6}
				return
			},
		}
	}

	r, found := reg8(operand)
	if !found {
		return fails(2, ErrRegisterInvalid)
	}

	return form{
		size: 2,
		emit: func(ctx *Context) (code []byte, err error) {
			op, err := withBit(ctx)
			if err != nil {
				return
			}
			code = []byte{prefixCB, op | r}
			return
		},
	}
}

// bitFamily encodes the CB-prefixed bit, rotate and shift instructions.
func bitFamily(t *Tables, ins Instruction) (fm form, ok bool) {
	parts := SplitOperands(ins.Operands)

	if opcode, found := bitOpMap[ins.Mnemonic]; found {
		if len(parts) != 2 {
			return fails(2, ErrOperandInvalid), true
		}
		return cbOperand(opcode, parts[0], parts[1]), true
	}

	if opcode, found := shiftOpMap[ins.Mnemonic]; found {
		if len(parts) != 1 {
			return fails(2, ErrOperandInvalid), true
		}
		return cbOperand(opcode, "", parts[0]), true
	}

	return
}
