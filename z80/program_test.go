package z80

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Origin: 0x100,
		Labels: map[string]int{"start": 0x100, "loop": 0x102, "alpha": 0x102},
		Lines: []Listing{
			{LineNo: 1, Address: 0x100, Text: "start: ld b,3",
				Instruction: Instruction{"ld", "b,3"}, Bytes: []byte{0x06, 0x03}},
			{LineNo: 2, Address: 0x102, Text: "loop: djnz loop",
				Instruction: Instruction{"djnz", "loop"}, Bytes: []byte{0x10, 0xfe}},
			{LineNo: 3, Address: 0x104, Text: ".end",
				Instruction: Instruction{".end", ""}},
			{LineNo: 4, Address: 0x104, Text: "ret",
				Instruction: Instruction{"ret", ""}, Bytes: []byte{0xc9}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0x100)
	assert.NotNil(dbg.Listing)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(0x103)
	assert.NotNil(dbg.Listing)
	assert.Equal(2, dbg.LineNo)
	assert.Equal(1, dbg.Index)

	// .end emits nothing, so 0x104 belongs to ret.
	dbg = prog.Debug(0x104)
	assert.NotNil(dbg.Listing)
	assert.Equal(4, dbg.LineNo)

	dbg = prog.Debug(0x105)
	assert.Nil(dbg.Listing)
	assert.Equal(0, dbg.Index)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()
	assert.Equal([]byte{0x06, 0x03, 0x10, 0xfe, 0xc9}, prog.Binary())

	prog = &Program{}
	assert.Equal([]byte{}, prog.Binary())
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	addrs := []int{}
	codes := []byte{}
	for addr, code := range prog.Codes() {
		addrs = append(addrs, addr)
		codes = append(codes, code)
	}

	assert.Equal([]int{0x100, 0x101, 0x102, 0x103, 0x104}, addrs)
	assert.Equal(prog.Binary(), codes)

	count := 0
	for range prog.Codes() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)
}

func TestProgram_Symbols(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	names := []string{}
	for name, addr := range prog.Symbols() {
		names = append(names, name)
		assert.Equal(prog.Labels[name], addr)
	}

	assert.Equal([]string{"start", "alpha", "loop"}, names)
}

func TestProgram_WriteListing(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	var buf bytes.Buffer
	err := prog.WriteListing(&buf)
	assert.NoError(err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(4, len(lines))
	assert.True(strings.HasPrefix(strings.TrimSpace(lines[0]), "1  0100  0603"))
	assert.True(strings.HasSuffix(lines[1], "loop: djnz loop"))
	assert.Contains(lines[3], "0104  C9")
}

func TestProgram_Integration(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{Origin: 0x9d93}
	program := strings.Join([]string{
		"      ld b,3",
		"loop: djnz loop",
		"      ret",
	}, "\n")

	prog, err := asm.Parse(strings.NewReader(program))
	assert.NoError(err)

	dbg := prog.Debug(0x9d95)
	assert.NotNil(dbg.Listing)
	assert.Equal(2, dbg.LineNo)
	assert.Equal("djnz", dbg.Mnemonic)

	dbg = prog.Debug(0x9d97)
	assert.NotNil(dbg.Listing)
	assert.Equal(3, dbg.LineNo)
}
