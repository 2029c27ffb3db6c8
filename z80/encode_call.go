package z80

const (
	opCALL   = byte(0xcd)
	opCALLcc = byte(0xc4) // call nz; the other conditions follow in steps of 8.
	opRETcc  = byte(0xc0) // ret nz
	opRST    = byte(0xc7)
)

// rst encodes a restart to one of the eight page zero vectors.
func rst(target string) form {
	return form{
		size: 1,
		emit: func(ctx *Context) (code []byte, err error) {
			vector, err := ctx.Immediate(target)
			if err != nil {
				return
			}
			if vector < 0 || vector > 0x38 || vector%8 != 0 {
				err = ErrOperandInvalid
				return
			}
			code = []byte{opRST | byte(vector)}
			return
		},
	}
}

// callFamily encodes call, conditional ret and rst.
func callFamily(t *Tables, ins Instruction) (fm form, ok bool) {
	parts := SplitOperands(ins.Operands)

	switch ins.Mnemonic {
	case "call":
		switch len(parts) {
		case 1:
			fm, ok = absolute(opCALL, parts[0]), true
		case 2:
			cond, found := condition(parts[0])
			if !found {
				return
			}
			fm, ok = absolute(opCALLcc|cond<<3, parts[1]), true
		}
	case "ret":
		// Unconditional ret is in the opcode table.
		if len(parts) != 1 {
			return
		}
		cond, found := condition(parts[0])
		if !found {
			return
		}
		fm, ok = fixed(opRETcc|cond<<3), true
	case "rst":
		if len(parts) != 1 {
			return
		}
		fm, ok = rst(parts[0]), true
	}

	return
}
