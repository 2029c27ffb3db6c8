// Package z80 implements a two-pass assembler for the Zilog Z80.
//
// Source lines are split into an optional label, a mnemonic and operand
// text. The first pass binds every label to an address using a size
// estimate of each instruction; the second pass encodes the instructions
// with the completed label table. Both passes derive instruction lengths
// from the same operand classification, so forward references resolve to
// the same addresses the second pass emits.
//
// Only a subset of the Z80 instruction set is supported: the common loads,
// jumps, calls, 8-bit arithmetic, IX/IY indexed forms, CB-prefixed bit
// operations, port I/O and the fixed encodings of the opcode table.
package z80
