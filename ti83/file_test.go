package ti83

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreate8xp(t *testing.T) {
	assert := assert.New(t)

	code := []byte{0xbb, 0x6d, 0xc9}
	file, err := Create8xp("hello", code)
	assert.NoError(err)

	// header + comment + variable header + length + size + code + checksum
	assert.Equal(11+42+17+2+2+len(code)+2, len(file))

	assert.Equal([]byte("**TI83F*\x1a\x0a\x00"), file[:11])
	assert.Equal([]byte("Created by Z80 Assembler"), file[11:11+24])
	assert.Equal(make([]byte, 42-24), file[11+24:53])

	vh := file[53:70]
	le := binary.LittleEndian
	assert.Equal(uint16(len(code)+2+13), le.Uint16(vh[0:]))
	assert.Equal([]byte{0x0d, 0x00}, vh[2:4])
	assert.Equal(uint16(len(code)+2), le.Uint16(vh[4:]))
	assert.Equal(byte(ProgramType), vh[6])
	assert.Equal([]byte("HELLO\x00\x00\x00"), vh[7:15])
	assert.Equal([]byte{0x00, 0x00}, vh[15:17])

	assert.Equal(uint16(len(code)+2), le.Uint16(file[70:]))
	assert.Equal(uint16(len(code)), le.Uint16(file[72:]))
	assert.Equal(code, file[74:74+len(code)])

	sum := Checksum(vh[2:]) + Checksum(file[70:74+len(code)])
	assert.Equal(sum, le.Uint16(file[len(file)-2:]))
}

func TestCreate8xpChecksum(t *testing.T) {
	assert := assert.New(t)

	file, err := Create8xp("A", nil)
	assert.NoError(err)

	// 0d + 02 + 05 + 'A' + 02 (data length) + 00 (code length)
	expected := uint16(0x0d + 0x02 + 0x05 + 'A' + 0x02)
	assert.Equal(expected, binary.LittleEndian.Uint16(file[len(file)-2:]))
}

func TestCreate8xpName(t *testing.T) {
	assert := assert.New(t)

	file, err := Create8xp("longprogramname", []byte{0})
	assert.NoError(err)
	assert.Equal([]byte("LONGPROG"), file[60:68])
}

func TestCreate8xpTooLarge(t *testing.T) {
	assert := assert.New(t)

	_, err := Create8xp("BIG", make([]byte, MaxCodeSize+1))
	var serr ErrCodeSize
	assert.True(errors.As(err, &serr))

	_, err = Create8xp("BIG", make([]byte, MaxCodeSize))
	assert.NoError(err)
}

func TestWrite(t *testing.T) {
	assert := assert.New(t)

	code := []byte{0xbb, 0x6d, 0xc9}

	var buf bytes.Buffer
	err := Write(&buf, "TEST", code)
	assert.NoError(err)

	file, err := Create8xp("TEST", code)
	assert.NoError(err)
	assert.Equal(file, buf.Bytes())
}

func TestProgramName(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		path string
		name string
	}){
		{"hello.asm", "HELLO"},
		{"/tmp/src/my_game-2.z80", "MYGAME2"},
		{"averyveryverylongname.asm", "AVERYVER"},
		{"noext", "NOEXT"},
		{"___.asm", "PROGRAM"},
	}

	for _, entry := range table {
		assert.Equal(entry.name, ProgramName(entry.path), entry.path)
	}
}
