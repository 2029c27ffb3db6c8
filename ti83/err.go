package ti83

import (
	"github.com/ezrec/z80asm/translate"
)

var f = translate.From

type ErrCodeSize int

func (err ErrCodeSize) Error() string {
	return f("program of %d bytes does not fit in a .8xp file", int(err))
}
