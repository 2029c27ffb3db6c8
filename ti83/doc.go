// Package ti83 carries the TI-83 Plus platform knowledge used by the
// assembler: the ROM call and system variable tables, the load address and
// preamble of assembly programs, and the .8xp program file container.
package ti83
