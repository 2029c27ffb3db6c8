package z80

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// sizeCorpus covers every encoder family.
var sizeCorpus = []string{
	"nop",
	"ld a,b",
	"ld a,$05",
	"ld (hl),1",
	"ld hl,label",
	"ld hl,(label)",
	"ld (label),hl",
	"ld a,(label)",
	"ld (label),a",
	"ld de,(label)",
	"ld (label),sp",
	"ld a,(ix+1)",
	"ld (iy-1),5",
	"ld ix,(label)",
	"push iy",
	"add ix,de",
	"bit 3,(ix+2)",
	"set 0,b",
	"rl c",
	"jp label",
	"jp nz,label",
	"jr label",
	"jr z,label",
	"djnz label",
	"call label",
	"call c,label",
	"ret nc",
	"rst $38",
	"add a,7",
	"cp 'x'",
	"in a,($fe)",
	"out (c),a",
	"ldir",
	"im 2",
	"bcall(_PutS)",
	".db 1,\"abc\",label",
	".dw label,1,2",
	".end",
	".nolist",
	"unknown",
}

func TestSize(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{Tables: testTables()}

	table := [](struct {
		text string
		size int
	}){
		{"nop", 1},
		{"ld a,b", 1},
		{"ld a,$05", 2},
		{"ld hl,label", 3},
		{"ld de,(label)", 4},
		{"ld a,(ix+1)", 3},
		{"ld (iy-1),5", 4},
		{"bit 3,(ix+2)", 4},
		{"jr label", 2},
		{"call label", 3},
		{"ldir", 2},
		{"bcall(_PutS)", 3},
		{`.db 1,"abc",label`, 5},
		{".dw label,1,2", 6},
		{".org $100", 0},
		{".equ N,1", 0},
		{".end", 0},
		{".nolist", 0},
		{"unknown", 1},
	}

	for _, entry := range table {
		line, ok := ParseLine(entry.text)
		assert.True(ok)
		assert.Equal(entry.size, asm.Size(line.Instruction), entry.text)
	}
}

func FuzzSize(f *testing.F) {
	for _, text := range sizeCorpus {
		f.Add(text)
	}

	f.Fuzz(func(t *testing.T, text string) {
		if strings.Contains(text, "$(") {
			t.Skip()
		}

		line, ok := ParseLine(text)
		if !ok || len(line.Mnemonic) == 0 || sets(line.Mnemonic) {
			return
		}

		asm := &Assembler{Tables: testTables()}
		ctx := asm.newContext(map[string]int{"label": 0x40}, nil)

		code, err := asm.Encode(ctx, line.Instruction)
		if errors.Is(err, ErrSizeMismatch) {
			t.Fatalf("%q: estimated %d bytes", text, asm.Size(line.Instruction))
		}
		if err == nil {
			assert.Equal(t, asm.Size(line.Instruction), len(code), text)
		}
	})
}
