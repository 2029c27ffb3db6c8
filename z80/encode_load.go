package z80

// Register pair opcodes of LD rr,nn.
var loadPairMap = map[string]byte{
	"bc": 0x01,
	"de": 0x11,
	"hl": 0x21,
	"sp": 0x31,
}

// ED-prefixed LD rr,(nn); LD (nn),rr is the opcode minus 8.
var loadPairIndirectMap = map[string]byte{
	"bc": 0x4b,
	"de": 0x5b,
	"sp": 0x7b,
}

const prefixED = byte(0xed)

// emitWord emits an opcode sequence followed by a resolved 16-bit operand.
func emitWord(operand string, opcode ...byte) form {
	return form{
		size: len(opcode) + 2,
		emit: func(ctx *Context) (code []byte, err error) {
			word, err := ctx.Word(operand)
			if err != nil {
				return
			}
			code = append(append([]byte{}, opcode...), word...)
			return
		},
	}
}

// emitByte emits an opcode sequence followed by a resolved 8-bit operand.
func emitByte(operand string, opcode ...byte) form {
	return form{
		size: len(opcode) + 1,
		emit: func(ctx *Context) (code []byte, err error) {
			b, err := ctx.Byte(operand)
			if err != nil {
				return
			}
			code = append(append([]byte{}, opcode...), b)
			return
		},
	}
}

// loadFamily encodes the LD forms that carry an immediate or an address.
// Register-to-register loads fall through to the opcode table.
func loadFamily(t *Tables, ins Instruction) (fm form, ok bool) {
	if ins.Mnemonic != "ld" {
		return
	}

	parts := SplitOperands(ins.Operands)
	if len(parts) != 2 {
		return
	}

	dst, src := parts[0], parts[1]
	cdst, csrc := canon(dst), canon(src)

	ok = true

	switch {
	// LD r,n
	case isReg8(dst) && !isIndirect(src) && !isRegister(src):
		code, _ := reg8(dst)
		fm = emitByte(src, 0x06|code<<3)
	// LD (HL),n
	case cdst == "(hl)" && !isIndirect(src) && !isRegister(src):
		fm = emitByte(src, 0x36)
	// LD HL,(nn)
	case cdst == "hl" && isAddress(src):
		fm = emitWord(indirect(src), 0x2a)
	// LD rr,(nn)
	case loadPairIndirectMap[cdst] != 0 && isAddress(src):
		fm = emitWord(indirect(src), prefixED, loadPairIndirectMap[cdst])
	// LD rr,nn
	case loadPairMap[cdst] != 0 && !isIndirect(src) && !isRegister(src):
		fm = emitWord(src, loadPairMap[cdst])
	// LD (nn),HL
	case isAddress(dst) && csrc == "hl":
		fm = emitWord(indirect(dst), 0x22)
	// LD (nn),rr
	case isAddress(dst) && loadPairIndirectMap[csrc] != 0:
		fm = emitWord(indirect(dst), prefixED, loadPairIndirectMap[csrc]-8)
	// LD A,(nn)
	case cdst == "a" && isAddress(src):
		fm = emitWord(indirect(src), 0x3a)
	// LD (nn),A
	case isAddress(dst) && csrc == "a":
		fm = emitWord(indirect(dst), 0x32)
	default:
		ok = false
	}

	return
}
