// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package z80

import (
	"bufio"
	"io"
	"log"
	"maps"
	"strings"
)

// Assembler is a two pass assembler for the Z80. The zero value assembles
// at origin 0 with the built-in opcode table and no ROM calls or system
// variables.
//
// An Assembler holds only configuration. Every call to Parse or Assemble
// works on its own label table, constant table and program counter, so an
// Assembler may be shared between goroutines.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Origin  int    // Origin address until the first .org.
	Tables  Tables // Opcode, ROM call and system variable tables.

	predefine []predefine // Predefines, in definition order.
}

// predefine is a constant set before assembly.
type predefine struct {
	Name  string
	Value string
}

// Predefine defines a constant visible to every assembly run. A value may
// name an earlier predefine. Redefining a name replaces its value in place.
func (asm *Assembler) Predefine(equ string, value string) {
	for n, pre := range asm.predefine {
		if pre.Name == equ {
			asm.predefine[n].Value = value
			return
		}
	}
	asm.predefine = append(asm.predefine, predefine{Name: equ, Value: value})
}

// sourceLine is a parsed line with its position in the source.
type sourceLine struct {
	LineNo int
	Text   string
	Line
}

// constants evaluates the predefines in definition order.
func (asm *Assembler) constants() (constants map[string]int, err error) {
	constants = make(map[string]int, len(asm.predefine))
	ctx := &Context{Tables: &asm.Tables, Constants: constants}

	for _, pre := range asm.predefine {
		var value int
		value, err = ctx.Immediate(pre.Value)
		if err != nil {
			err = ErrPredefine{Name: pre.Name, Err: err}
			constants = nil
			return
		}
		constants[pre.Name] = value
	}

	return
}

// newContext creates the state for one pass, starting from the predefined
// constants.
func (asm *Assembler) newContext(labels map[string]int, constants map[string]int) *Context {
	return &Context{
		Tables:    &asm.Tables,
		Labels:    labels,
		Constants: maps.Clone(constants),
		Origin:    asm.Origin,
		Address:   asm.Origin,
	}
}

// expand evaluates the $(...) expressions of an instruction's operands.
func (ctx *Context) expand(ins Instruction) (out Instruction, err error) {
	out = ins
	if !strings.Contains(ins.Operands, "$(") {
		return
	}
	out.Operands, err = ctx.Expand(ins.Operands)
	return
}

// sets returns true for the directives that change assembler state during
// the first pass.
func sets(mnemonic string) bool {
	return mnemonic == ".org" || mnemonic == ".equ"
}

// Encode assembles a single instruction in ctx. ctx.Address is left
// unchanged unless the instruction is .org.
func (asm *Assembler) Encode(ctx *Context, ins Instruction) (code []byte, err error) {
	defer func() {
		if err != nil {
			err = ErrInstruction{Mnemonic: ins.Mnemonic, Operands: ins.Operands, Err: err}
		}
	}()

	ins, err = ctx.expand(ins)
	if err != nil {
		return
	}

	fm, ok := match(&asm.Tables, ins)
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	code, err = fm.emit(ctx)
	if err != nil {
		code = nil
		return
	}

	if len(code) != fm.size && !sets(ins.Mnemonic) {
		code = nil
		err = ErrSizeMismatch
		return
	}

	return
}

// scan splits the input into parsed lines.
func scan(input io.Reader) (lines []sourceLine, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		line, ok := ParseLine(text)
		if !ok {
			continue
		}
		lines = append(lines, sourceLine{LineNo: lineno, Text: text, Line: line})
	}

	err = scanner.Err()
	return
}

// pass1 builds the label table.
func (asm *Assembler) pass1(lines []sourceLine, constants map[string]int) (labels map[string]int, err error) {
	var current sourceLine

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: current.LineNo, Line: current.Text, Err: err}
		}
	}()

	labels = make(map[string]int, 16)
	ctx := asm.newContext(labels, constants)

	for _, current = range lines {
		if len(current.Label) != 0 {
			labels[current.Label] = ctx.Address
		}

		if len(current.Mnemonic) == 0 {
			continue
		}

		var ins Instruction
		ins, err = ctx.expand(current.Instruction)
		if err != nil {
			err = ErrInstruction{Mnemonic: current.Mnemonic, Operands: current.Operands, Err: err}
			return
		}

		if sets(ins.Mnemonic) {
			_, err = asm.Encode(ctx, ins)
			if err != nil {
				return
			}
			continue
		}

		ctx.Address += asm.Size(ins)
	}

	return
}

// pass2 encodes every line with the completed label table.
func (asm *Assembler) pass2(lines []sourceLine, labels map[string]int, constants map[string]int) (prog *Program, err error) {
	var current sourceLine

	defer func() {
		if err != nil {
			prog = nil
			err = ErrSyntax{LineNo: current.LineNo, Line: current.Text, Err: err}
		}
	}()

	ctx := asm.newContext(labels, constants)

	prog = &Program{
		Origin: ctx.Origin,
		Labels: labels,
	}

	started := false
	for _, current = range lines {
		if len(current.Mnemonic) == 0 {
			continue
		}

		var code []byte
		code, err = asm.Encode(ctx, current.Instruction)
		if err != nil {
			return
		}

		if asm.Verbose {
			log.Printf("%v: %04X %-12X %v\n", current.LineNo, ctx.Address, code, current.Text)
		}

		if !started && len(code) > 0 {
			prog.Origin = ctx.Address
			started = true
		}

		prog.Lines = append(prog.Lines, Listing{
			LineNo:      current.LineNo,
			Address:     ctx.Address,
			Text:        current.Text,
			Instruction: current.Instruction,
			Bytes:       code,
		})

		ctx.Address += len(code)
	}

	if !started {
		prog.Origin = ctx.Origin
	}

	return
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	constants, err := asm.constants()
	if err != nil {
		return
	}

	lines, err := scan(input)
	if err != nil {
		return
	}

	labels, err := asm.pass1(lines, constants)
	if err != nil {
		return
	}

	prog, err = asm.pass2(lines, labels, constants)
	return
}

// Assemble assembles source text into machine code.
func (asm *Assembler) Assemble(source string) (code []byte, err error) {
	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		return
	}

	code = prog.Binary()
	return
}
