package z80

// Size predicts the number of bytes an instruction assembles to, from its
// text alone. Unknown instructions are assumed to take one byte; pass two
// rejects them.
func (asm *Assembler) Size(ins Instruction) int {
	fm, ok := match(&asm.Tables, ins)
	if !ok {
		return 1
	}
	return fm.size
}
