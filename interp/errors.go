package interp

import (
	"errors"
	"fmt"

	"nivm/codec"
)

var (
	// ErrEndOfProgram is returned when the program counter has left the
	// current function's bounds, or Ret is attempted with an empty call
	// stack.
	ErrEndOfProgram = errors.New("end of program")
	// ErrUnknownFunction is returned when App names a function index
	// outside the function table.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrOperationOverflow is returned by Hand-mode arithmetic when the
	// checked operator would have overflowed.
	ErrOperationOverflow = errors.New("operation overflow")
	// ErrDivisionByZero is returned by Div/Mod on an integer divisor of
	// zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// IncorrectOperationError is returned when an instruction is well-formed
// but not legal in context: writing through a read-only operand kind,
// reading/writing Emp, a float operand on an integer-only opcode, or a
// bitwise conditional on a float type. It carries the offending Op so a
// driver may log, step over, or abort.
type IncorrectOperationError struct {
	Op codec.Op
}

func (e *IncorrectOperationError) Error() string {
	return fmt.Sprintf("incorrect operation: %s", e.Op.Code)
}

// MemoryError wraps any error surfaced by the memory package so the
// interpreter presents a single error category to its caller.
type MemoryError struct {
	Err error
}

func (e *MemoryError) Error() string { return fmt.Sprintf("memory error: %v", e.Err) }
func (e *MemoryError) Unwrap() error { return e.Err }
