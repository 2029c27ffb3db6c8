package z80

import (
	"strings"
)

// Relative branch opcodes.
const (
	opJR   = byte(0x18)
	opJRcc = byte(0x20) // jr nz; z, nc and c follow in steps of 8.
	opDJNZ = byte(0x10)
	opJP   = byte(0xc3)
	opJPcc = byte(0xc2) // jp nz; the other conditions follow in steps of 8.
)

// Displacement limits of a relative branch.
const (
	MinDisplacement = -128
	MaxDisplacement = 127
)

// absolute emits opcode followed by a 16-bit target address.
func absolute(opcode byte, target string) form {
	return emitWord(target, opcode)
}

// relative emits a relative branch to target, measured from the end of the
// two byte instruction. A target that is not a label is a literal offset.
func relative(opcode byte, target string) form {
	return form{
		size: 2,
		emit: func(ctx *Context) (code []byte, err error) {
			target := strings.TrimSpace(target)
			var offset int
			addr, ok := ctx.Labels[target]
			if ok {
				offset = addr - (ctx.Address + 2)
			} else {
				offset, err = ctx.Immediate(target)
				if err != nil {
					if isIdentifier(target) {
						err = ErrLabelMissing(target)
					}
					return
				}
			}
			if offset < MinDisplacement || offset > MaxDisplacement {
				err = ErrRange{What: f("displacement"), Value: offset, Min: MinDisplacement, Max: MaxDisplacement}
				return
			}
			code = []byte{opcode, byte(offset)}
			return
		},
	}
}

// jumpFamily encodes jp, jr and djnz.
func jumpFamily(t *Tables, ins Instruction) (fm form, ok bool) {
	switch ins.Mnemonic {
	case "jp", "jr", "djnz":
	default:
		return
	}

	parts := SplitOperands(ins.Operands)

	switch ins.Mnemonic {
	case "jp":
		switch len(parts) {
		case 1:
			// jp (hl) and friends are fixed encodings.
			if isIndirect(parts[0]) {
				return
			}
			fm, ok = absolute(opJP, parts[0]), true
		case 2:
			cond, found := condition(parts[0])
			if !found {
				return
			}
			fm, ok = absolute(opJPcc|cond<<3, parts[1]), true
		}
	case "jr":
		switch len(parts) {
		case 0:
			fm, ok = fails(2, ErrOperandMissing), true
		case 1:
			fm, ok = relative(opJR, parts[0]), true
		default:
			cond, found := shortCondition(parts[0])
			if !found || len(parts) != 2 {
				fm, ok = fails(2, ErrConditionInvalid), true
				return
			}
			fm, ok = relative(opJRcc|cond<<3, parts[1]), true
		}
	case "djnz":
		if len(parts) != 1 {
			fm, ok = fails(2, ErrOperandInvalid), true
			return
		}
		fm, ok = relative(opDJNZ, parts[0]), true
	}

	return
}
