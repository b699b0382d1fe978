package codec

import (
	"errors"
	"fmt"
)

// ErrUnknownOpCode is returned when the leading byte doesn't name any Code.
var ErrUnknownOpCode = errors.New("unknown op code")

// ErrUnexpectedEnd is returned when the input runs out mid-instruction.
var ErrUnexpectedEnd = errors.New("unexpected end of input")

// ErrIncorrectVariant is returned when a UnOp's variant byte names
// VariantSecond or VariantBoth — only None/First are legal on a UnOp.
var ErrIncorrectVariant = errors.New("incorrect variant")

// ErrShortWrite is returned when an underlying writer accepts fewer bytes
// than requested without itself returning an error.
var ErrShortWrite = errors.New("short write")

// IOError wraps an underlying read/write failure from the byte stream.
type IOError struct{ Err error }

func (e *IOError) Error() string { return fmt.Sprintf("io error: %v", e.Err) }
func (e *IOError) Unwrap() error { return e.Err }
