// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/ezrec/z80asm/ti83"
)

// header is prepended to sources that do not set their own origin.
var header = fmt.Sprintf(".org $%04X\n.db $%02X,$%02X\n", ti83.Origin, ti83.Preamble[0], ti83.Preamble[1])

func main() {
	var output string
	var name string
	var listing string
	var raw bool
	var verbose bool

	asm := ti83.NewAssembler()

	flag.StringVar(&output, "o", "", "Output file (default: input with .8xp extension, - for stdout)")
	flag.StringVar(&name, "n", "", "Program name (default: from the input file name)")
	flag.StringVar(&listing, "l", "", "Listing file")
	flag.BoolVar(&raw, "raw", false, "Write the bare machine code, not a .8xp file")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine a constant, as name=value", func(text string) error {
		equ, value, ok := strings.Cut(text, "=")
		if !ok || len(equ) == 0 {
			return fmt.Errorf("%v: expected name=value", text)
		}
		asm.Predefine(equ, value)
		return nil
	})

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: %v [options] file.asm", os.Args[0])
	}

	input := flag.Arg(0)
	asm.Verbose = verbose

	if len(output) == 0 {
		ext := ".8xp"
		if raw {
			ext = ".bin"
		}
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ext
	}

	if len(name) == 0 {
		name = ti83.ProgramName(input)
	}

	text, err := os.ReadFile(input)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	source := string(text)
	if !strings.Contains(strings.ToLower(source), ".org") {
		source = header + source
	}

	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	code := prog.Binary()

	if verbose {
		symbols := map[string]string{}
		for label, addr := range prog.Symbols() {
			symbols[label] = fmt.Sprintf("$%04X", addr)
		}
		pp.Fprintln(os.Stderr, symbols)
		log.Printf("%v: assembled %d bytes, program %v", input, len(code), name)
	}

	if len(listing) != 0 {
		err = writeFile(listing, prog.WriteListing)
		if err != nil {
			log.Fatalf("%v: %v", listing, err)
		}
	}

	emit := func(w io.Writer) error {
		if raw {
			_, err := w.Write(code)
			return err
		}
		return ti83.Write(w, name, code)
	}

	if output == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			log.Fatalf("%v: refusing to write binary output to a terminal", os.Args[0])
		}
		err = emit(os.Stdout)
	} else {
		err = writeFile(output, emit)
	}
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}
}

// writeFile creates path and fills it with write.
func writeFile(path string, write func(w io.Writer) error) (err error) {
	ouf, err := os.Create(path)
	if err != nil {
		return
	}
	defer func() {
		cerr := ouf.Close()
		if err == nil {
			err = cerr
		}
	}()

	err = write(ouf)
	return
}
