package cpu

import (
	"errors"

	"github.com/eric-rolph/an-fsq7-sage-simulator-sub001/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted      = errors.New(f("machine halted"))
	ErrBankInvalid = errors.New(f("bank invalid"))
	ErrNoBus       = errors.New(f("no i/o bus attached"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrOrgSyntax       = errors.New(f(".org syntax"))
	ErrWordSyntax      = errors.New(f(".word syntax"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOperandMissing  = errors.New(f("operand missing"))
	ErrOperandExtra    = errors.New(f("excessive operands"))
	ErrIndexInvalid    = errors.New(f("index register invalid"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
)

// ErrAddressing reports a memory access beyond a bank's capacity.
type ErrAddressing struct {
	Bank    Bank
	Address uint16
}

func (err ErrAddressing) Error() string {
	return f("bank %d address %04x out of range", int(err.Bank), err.Address)
}

func (err ErrAddressing) Is(target error) (ok bool) {
	_, ok = target.(ErrAddressing)
	return
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value or label", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax wraps an assembler error with its source location.
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
