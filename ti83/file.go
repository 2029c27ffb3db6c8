package ti83

import (
	"bytes"
	"encoding/binary"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// .8xp container layout.
const (
	Signature   = "**TI83F*\x1a\x0a\x00"
	Comment     = "Created by Z80 Assembler"
	CommentSize = 42
	NameSize    = 8
	ProgramType = 0x05 // Program variable.

	varHeaderSize = 17   // Entry length word plus the variable header.
	varEntrySize  = 0x0d // Variable header length, after the entry length word.
	MaxCodeSize   = 0xffff - varEntrySize - 2
)

// upper upper-cases a name. A Caser is stateful, so one is made per call.
func upper(name string) string {
	return cases.Upper(language.Und).String(name)
}

// varName returns the variable name field: upper-cased, truncated and
// padded with NULs.
func varName(name string) (field [NameSize]byte) {
	copy(field[:], upper(name))
	return
}

// Create8xp returns code wrapped as a .8xp program variable called name.
func Create8xp(name string, code []byte) (file []byte, err error) {
	if len(code) > MaxCodeSize {
		err = ErrCodeSize(len(code))
		return
	}

	le := binary.LittleEndian
	dataLength := uint16(len(code) + 2)

	var varHeader [varHeaderSize]byte
	le.PutUint16(varHeader[0:], dataLength+varEntrySize)
	le.PutUint16(varHeader[2:], varEntrySize)
	le.PutUint16(varHeader[4:], dataLength)
	varHeader[6] = ProgramType
	field := varName(name)
	copy(varHeader[7:], field[:])
	// varHeader[15:17] are the version and flag bytes, both zero.

	var comment [CommentSize]byte
	copy(comment[:], Comment)

	var buf bytes.Buffer
	buf.WriteString(Signature)
	buf.Write(comment[:])
	buf.Write(varHeader[:])

	// Checksummed from here on, with the variable header after its length.
	start := buf.Len()
	buf.Write(le.AppendUint16(nil, dataLength))
	buf.Write(le.AppendUint16(nil, uint16(len(code))))
	buf.Write(code)

	checksum := Checksum(varHeader[2:]) + Checksum(buf.Bytes()[start:])
	buf.Write(le.AppendUint16(nil, checksum))

	file = buf.Bytes()
	return
}

// Write writes code to w as a .8xp program variable called name.
func Write(w io.Writer, name string, code []byte) (err error) {
	file, err := Create8xp(name, code)
	if err != nil {
		return
	}
	_, err = w.Write(file)
	return
}

// Checksum is the 16-bit additive checksum of the .8xp format.
func Checksum(data []byte) (sum uint16) {
	for _, b := range data {
		sum += uint16(b)
	}
	return
}

// ProgramName derives a calculator program name from a file path: the base
// name without extension, upper-cased, letters and digits only, at most
// eight characters. An empty result becomes "PROGRAM".
func ProgramName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	name := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return -1
	}, upper(base))

	if len(name) > NameSize {
		name = name[:NameSize]
	}
	if len(name) == 0 {
		name = "PROGRAM"
	}

	return name
}
