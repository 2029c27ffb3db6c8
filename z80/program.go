package z80

import (
	"cmp"
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"
)

// Listing is one assembled source line.
type Listing struct {
	LineNo  int    // Source line number, from 1.
	Address int    // Address of the first byte.
	Text    string // Source text.
	Instruction
	Bytes []byte // Emitted machine code.
}

// Program is the result of an assembly run.
type Program struct {
	Origin int            // Address of the first emitted byte.
	Labels map[string]int // Final label table.
	Lines  []Listing      // Every line with an instruction, in source order.
}

type Debug struct {
	*Listing
	Index int
}

// Debug finds the line that emitted the byte at addr.
func (prog *Program) Debug(addr int) (dbg Debug) {
	for n, line := range prog.Lines {
		if addr >= line.Address && addr < line.Address+len(line.Bytes) {
			dbg = Debug{
				Listing: &prog.Lines[n],
				Index:   addr - line.Address,
			}
			break
		}
	}

	return
}

// Binary returns the emitted bytes concatenated in source order. .org does
// not pad the output.
func (prog *Program) Binary() (code []byte) {
	code = []byte{}
	for _, line := range prog.Lines {
		code = append(code, line.Bytes...)
	}

	return
}

// Codes iterates over every emitted byte and its address.
func (prog *Program) Codes() iter.Seq2[int, byte] {
	return func(yield func(addr int, code byte) bool) {
		for _, line := range prog.Lines {
			for n, code := range line.Bytes {
				if !yield(line.Address+n, code) {
					return
				}
			}
		}
	}
}

// Symbols iterates over the labels in address order.
func (prog *Program) Symbols() iter.Seq2[string, int] {
	return func(yield func(name string, addr int) bool) {
		names := slices.SortedFunc(maps.Keys(prog.Labels), func(a, b string) int {
			return cmp.Or(cmp.Compare(prog.Labels[a], prog.Labels[b]), cmp.Compare(a, b))
		})
		for _, name := range names {
			if !yield(name, prog.Labels[name]) {
				return
			}
		}
	}
}

// WriteListing writes an address, bytes and source listing of the program.
func (prog *Program) WriteListing(w io.Writer) (err error) {
	for _, line := range prog.Lines {
		_, err = fmt.Fprintf(w, "%5d  %04X  %-12X  %v\n", line.LineNo, line.Address&0xffff, line.Bytes, line.Text)
		if err != nil {
			return
		}
	}

	return
}
