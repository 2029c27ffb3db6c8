package z80

import (
	"errors"

	"github.com/ezrec/z80asm/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ requires name and value"))
	ErrOriginMissing      = errors.New(f(".org requires an address"))
	ErrInstructionInvalid = errors.New(f("unknown instruction"))
	ErrConditionInvalid   = errors.New(f("invalid condition"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrOperandMissing     = errors.New(f("operand missing"))
	ErrOperandInvalid     = errors.New(f("operand invalid"))
	ErrSizeMismatch       = errors.New(f("encoded size differs from estimate"))
)

// ErrSyntax locates an error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrInstruction carries the mnemonic and operand text of a failed instruction.
type ErrInstruction struct {
	Mnemonic string
	Operands string
	Err      error
}

func (err ErrInstruction) Error() string {
	if len(err.Operands) == 0 {
		return f("%v: %v", err.Mnemonic, err.Err)
	}
	return f("%v %v: %v", err.Mnemonic, err.Operands, err.Err)
}

func (err ErrInstruction) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrRomCall string

func (err ErrRomCall) Error() string {
	return f("unknown ROM call: %v", string(err))
}

// ErrRange reports a value that does not fit its encoding.
type ErrRange struct {
	What  string
	Value int
	Min   int
	Max   int
}

func (err ErrRange) Error() string {
	return f("%v %d out of range [%d, %d]", err.What, err.Value, err.Min, err.Max)
}

// ErrPredefine reports a predefined constant whose value does not parse.
type ErrPredefine struct {
	Name string
	Err  error
}

func (err ErrPredefine) Error() string {
	return f("predefine %v: %v", err.Name, err.Err)
}

func (err ErrPredefine) Unwrap() error {
	return err.Err
}
