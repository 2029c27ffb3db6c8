package z80

const (
	opINn  = byte(0xdb)
	opOUTn = byte(0xd3)
	opINc  = byte(0x40) // ed 40+r<<3: in r,(c)
	opOUTc = byte(0x41) // ed 41+r<<3: out (c),r
)

// portFamily encodes in and out. The block I/O forms are in the opcode
// table.
func portFamily(t *Tables, ins Instruction) (fm form, ok bool) {
	parts := SplitOperands(ins.Operands)
	if len(parts) != 2 {
		return
	}

	var reg, port string
	switch ins.Mnemonic {
	case "in":
		reg, port = parts[0], parts[1]
	case "out":
		port, reg = parts[0], parts[1]
	default:
		return
	}

	if !isIndirect(port) {
		return
	}

	// in r,(c) / out (c),r
	if canon(port) == "(c)" {
		if !isReg8(reg) {
			return fails(2, ErrRegisterInvalid), true
		}
		r, _ := reg8(reg)
		opcode := opINc
		if ins.Mnemonic == "out" {
			opcode = opOUTc
		}
		return fixed(prefixED, opcode|r<<3), true
	}

	// in a,(n) / out (n),a
	if canon(reg) != "a" {
		return fails(2, ErrRegisterInvalid), true
	}
	opcode := opINn
	if ins.Mnemonic == "out" {
		opcode = opOUTn
	}
	return emitByte(indirect(port), opcode), true
}
