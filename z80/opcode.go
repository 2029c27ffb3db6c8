package z80

import (
	"maps"
)

// reg8Names lists the 8-bit register operands in encoding order.
var reg8Names = []string{"b", "c", "d", "e", "h", "l", "(hl)", "a"}

// pairNames lists the register pairs in encoding order, for push/pop the
// last entry is af instead of sp.
var pairNames = []string{"bc", "de", "hl", "sp"}

// fixedOpcodes are the instructions with no operand field to encode.
var fixedOpcodes = map[string]uint32{
	"nop":        0x00,
	"ld (bc),a":  0x02,
	"rlca":       0x07,
	"ex af,af'":  0x08,
	"ld a,(bc)":  0x0a,
	"rrca":       0x0f,
	"ld (de),a":  0x12,
	"rla":        0x17,
	"ld a,(de)":  0x1a,
	"rra":        0x1f,
	"daa":        0x27,
	"cpl":        0x2f,
	"scf":        0x37,
	"ccf":        0x3f,
	"halt":       0x76,
	"ret":        0xc9,
	"exx":        0xd9,
	"ex (sp),hl": 0xe3,
	"jp (hl)":    0xe9,
	"ex de,hl":   0xeb,
	"di":         0xf3,
	"ld sp,hl":   0xf9,
	"ei":         0xfb,

	"neg":     0xed44,
	"retn":    0xed45,
	"im 0":    0xed46,
	"ld i,a":  0xed47,
	"reti":    0xed4d,
	"ld r,a":  0xed4f,
	"im 1":    0xed56,
	"ld a,i":  0xed57,
	"im 2":    0xed5e,
	"ld a,r":  0xed5f,
	"rrd":     0xed67,
	"rld":     0xed6f,
	"ldi":     0xeda0,
	"cpi":     0xeda1,
	"ini":     0xeda2,
	"outi":    0xeda3,
	"ldd":     0xeda8,
	"cpd":     0xeda9,
	"ind":     0xedaa,
	"outd":    0xedab,
	"ldir":    0xedb0,
	"cpir":    0xedb1,
	"inir":    0xedb2,
	"otir":    0xedb3,
	"lddr":    0xedb8,
	"cpdr":    0xedb9,
	"indr":    0xedba,
	"otdr":    0xedbb,

	"ld ixh,a": 0xdd67,
	"ld ixl,a": 0xdd6f,
	"ld a,ixh": 0xdd7c,
	"ld a,ixl": 0xdd7d,
	"ld iyh,a": 0xfd67,
	"ld iyl,a": 0xfd6f,
	"ld a,iyh": 0xfd7c,
	"ld a,iyl": 0xfd7d,
}

// buildOpcodes generates the table of fixed encodings.
func buildOpcodes() (table map[string]uint32) {
	table = maps.Clone(fixedOpcodes)

	// ld r,r' (ld (hl),(hl) is halt)
	for d, dst := range reg8Names {
		for s, src := range reg8Names {
			if d == 6 && s == 6 {
				continue
			}
			table["ld "+dst+","+src] = uint32(0x40 | d<<3 | s)
		}
	}

	// inc r, dec r, and the eight ALU operations on registers. Both the
	// "op a,r" and "op r" spellings are accepted.
	for r, reg := range reg8Names {
		table["inc "+reg] = uint32(0x04 | r<<3)
		table["dec "+reg] = uint32(0x05 | r<<3)
		for name, op := range aluMap {
			opcode := uint32(0x80 | int(op)<<3 | r)
			table[name+" "+reg] = opcode
			table[name+" a,"+reg] = opcode
		}
	}

	// Register pair arithmetic.
	for p, pair := range pairNames {
		table["inc "+pair] = uint32(0x03 | p<<4)
		table["dec "+pair] = uint32(0x0b | p<<4)
		table["add hl,"+pair] = uint32(0x09 | p<<4)
		table["sbc hl,"+pair] = uint32(0xed42 | p<<4)
		table["adc hl,"+pair] = uint32(0xed4a | p<<4)
	}

	// push and pop use af in place of sp.
	for p, pair := range []string{"bc", "de", "hl", "af"} {
		table["pop "+pair] = uint32(0xc1 | p<<4)
		table["push "+pair] = uint32(0xc5 | p<<4)
	}

	return
}

// defaultOpcodes is the read-only table used when none is configured.
var defaultOpcodes = buildOpcodes()

// Opcodes returns a copy of the built-in table of fixed encodings, keyed by
// mnemonic and canonical operands ("ld a,b").
func Opcodes() map[string]uint32 {
	return maps.Clone(defaultOpcodes)
}
