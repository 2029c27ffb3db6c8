package ti83

import (
	"iter"
	"maps"

	"github.com/ezrec/z80asm/internal"
	"github.com/ezrec/z80asm/z80"
)

// Origin is the load address of an assembly program.
const Origin = 0x9D93

// Preamble is the two byte token pair that marks a program as assembly.
var Preamble = []byte{0xBB, 0x6D}

// RomCalls maps the bcall names to their entry point in the OS jump table.
var RomCalls = map[string]uint16{
	"_CpHLDE":      0x400C,
	"_DivHLBy10":   0x400F,
	"_DivHLByA":    0x4012,
	"_KbdScan":     0x4015,
	"_GetCSC":      0x4018,
	"_FPAdd":       0x4072,
	"_OP1ToOP2":    0x412F,
	"_Mov9ToOP1":   0x417A,
	"_ChkFindSym":  0x42F1,
	"_CreateProg":  0x4339,
	"_PutMap":      0x4501,
	"_PutC":        0x4504,
	"_DispHL":      0x4507,
	"_PutS":        0x450A,
	"_NewLine":     0x452E,
	"_ClrLCDFull":  0x4540,
	"_ClrLCD":      0x4543,
	"_ClrScrnFull": 0x4546,
	"_EraseEOL":    0x4552,
	"_HomeUp":      0x4558,
	"_VPutMap":     0x455E,
	"_VPutS":       0x4561,
	"_RunIndicOn":  0x456D,
	"_RunIndicOff": 0x4570,
	"_ILine":       0x4798,
	"_GrBufCpy":    0x486A,
	"_GetKey":      0x4972,
	"_Random":      0x4B79,
	"_GrBufClr":    0x4BD0,
	"_DispOP1A":    0x4BF7,
}

// SysVars maps the system RAM variable names to their address. Both the
// include file spelling (curRow) and the capitalised one (CurRow) are known.
var SysVars = map[string]uint16{
	"curRow":          0x844B,
	"CurRow":          0x844B,
	"curCol":          0x844C,
	"CurCol":          0x844C,
	"penCol":          0x86D7,
	"PenCol":          0x86D7,
	"penRow":          0x86D8,
	"PenRow":          0x86D8,
	"OP1":             0x8478,
	"OP2":             0x8483,
	"OP3":             0x848E,
	"OP4":             0x8499,
	"OP5":             0x84A4,
	"OP6":             0x84AF,
	"saveSScreen":     0x86EC,
	"flags":           0x89F0,
	"plotSScreen":     0x9340,
	"appBackUpScreen": 0x9872,
}

// Tables returns assembler tables populated for the TI-83 Plus. The maps
// are copies; the caller may modify them.
func Tables() z80.Tables {
	return z80.Tables{
		Opcodes:  z80.Opcodes(),
		RomCalls: maps.Clone(RomCalls),
		SysVars:  maps.Clone(SysVars),
	}
}

// Symbols iterates over every platform symbol, ROM calls first.
func Symbols() iter.Seq2[string, uint16] {
	return internal.IterSeq2Concat(maps.All(RomCalls), maps.All(SysVars))
}

// NewAssembler returns an assembler configured for TI-83 Plus programs.
func NewAssembler() *z80.Assembler {
	return &z80.Assembler{
		Origin: Origin,
		Tables: Tables(),
	}
}
