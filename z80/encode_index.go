package z80

// Displacement limits of an (ix+d) operand.
const (
	MinIndex = -128
	MaxIndex = 127
)

// displacement resolves the d of (ix+d).
func (ctx *Context) displacement(disp string) (d byte, err error) {
	value, err := ctx.Immediate(disp)
	if err != nil {
		return
	}
	if value < MinIndex || value > MaxIndex {
		err = ErrRange{What: f("index displacement"), Value: value, Min: MinIndex, Max: MaxIndex}
		return
	}
	d = byte(value)
	return
}

// emitIndexed emits prefix, opcode, d, and then the resolved 8-bit
// operand when imm is not empty.
func emitIndexed(prefix, opcode byte, disp string, imm string) form {
	size := 3
	if len(imm) > 0 {
		size++
	}
	return form{
		size: size,
		emit: func(ctx *Context) (code []byte, err error) {
			d, err := ctx.displacement(disp)
			if err != nil {
				return
			}
			code = []byte{prefix, opcode, d}
			if len(imm) > 0 {
				var n byte
				n, err = ctx.Byte(imm)
				if err != nil {
					return
				}
				code = append(code, n)
			}
			return
		},
	}
}

// Index register pair operations; the HL opcode behind the prefix.
var indexPairMap = map[string]byte{
	"push": 0xe5,
	"pop":  0xe1,
	"inc":  0x23,
	"dec":  0x2b,
}

// add ix,rr source opcodes; "self" stands for the index register itself.
var indexAddMap = map[string]byte{
	"bc":   0x09,
	"de":   0x19,
	"self": 0x29,
	"sp":   0x39,
}

// indexFamily encodes the IX and IY forms.
func indexFamily(t *Tables, ins Instruction) (fm form, ok bool) {
	parts := SplitOperands(ins.Operands)

	switch len(parts) {
	case 1:
		return indexUnary(ins.Mnemonic, parts[0])
	case 2:
		return indexBinary(ins.Mnemonic, parts[0], parts[1])
	}

	return
}

// indexUnary handles the single operand forms.
func indexUnary(mnemonic, operand string) (fm form, ok bool) {
	if prefix, found := indexReg(operand); found {
		opcode, found := indexPairMap[mnemonic]
		if !found {
			return
		}
		return fixed(prefix, opcode), true
	}

	prefix, disp, found := indexed(operand)
	if !found {
		return
	}

	switch mnemonic {
	case "jp":
		if disp != "0" {
			return
		}
		return fixed(prefix, 0xe9), true
	case "inc":
		return emitIndexed(prefix, 0x34, disp, ""), true
	case "dec":
		return emitIndexed(prefix, 0x35, disp, ""), true
	}

	if op, found := aluMap[mnemonic]; found {
		return emitIndexed(prefix, 0x86|op<<3, disp, ""), true
	}

	return
}

// indexBinary handles the two operand forms.
func indexBinary(mnemonic, dst, src string) (fm form, ok bool) {
	cdst, csrc := canon(dst), canon(src)

	switch mnemonic {
	case "ld":
		return indexLoad(dst, src)
	case "add":
		if prefix, found := indexReg(dst); found {
			if csrc == cdst {
				csrc = "self"
			}
			opcode, found := indexAddMap[csrc]
			if !found {
				return
			}
			return fixed(prefix, opcode), true
		}
	case "ex":
		if prefix, found := indexReg(src); found && cdst == "(sp)" {
			return fixed(prefix, 0xe3), true
		}
		return
	}

	if op, found := aluMap[mnemonic]; found && cdst == "a" {
		if prefix, disp, found := indexed(src); found {
			return emitIndexed(prefix, 0x86|op<<3, disp, ""), true
		}
	}

	return
}

// indexLoad handles the ld forms involving ix or iy.
func indexLoad(dst, src string) (fm form, ok bool) {
	// LD IX,nn and LD IX,(nn)
	if prefix, found := indexReg(dst); found {
		switch {
		case isAddress(src):
			return emitWord(indirect(src), prefix, 0x2a), true
		case !isIndirect(src) && !isRegister(src):
			return emitWord(src, prefix, 0x21), true
		}
		return
	}

	// LD (nn),IX
	if prefix, found := indexReg(src); found {
		switch {
		case isAddress(dst):
			return emitWord(indirect(dst), prefix, 0x22), true
		case canon(dst) == "sp":
			return fixed(prefix, 0xf9), true
		}
		return
	}

	// LD r,(IX+d)
	if prefix, disp, found := indexed(src); found {
		if !isReg8(dst) {
			return
		}
		r, _ := reg8(dst)
		return emitIndexed(prefix, 0x46|r<<3, disp, ""), true
	}

	// LD (IX+d),r and LD (IX+d),n
	if prefix, disp, found := indexed(dst); found {
		switch {
		case isReg8(src):
			r, _ := reg8(src)
			return emitIndexed(prefix, 0x70|r, disp, ""), true
		case !isIndirect(src) && !isRegister(src):
			return emitIndexed(prefix, 0x36, disp, src), true
		}
	}

	return
}
