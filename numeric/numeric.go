// Package numeric implements the Primary numeric-type abstraction: a
// uniform little-endian byte representation, zero/one constants, and typed
// wrapping/saturating/wide/checked arithmetic over the twelve numeric types
// the instruction set operates on.
package numeric

import (
	"fmt"
	"unsafe"

	"nivm/word"
)

// Type is the closed, single-byte-tagged enumeration of numeric types a
// value or operand can carry. Tags 10 and 12 are reserved and never valid.
type Type uint8

const (
	U8  Type = 0
	I8  Type = 1
	U16 Type = 2
	I16 Type = 3
	U32 Type = 4
	I32 Type = 5
	U64 Type = 6
	I64 Type = 7
	Uw  Type = 8
	Iw  Type = 9
	// 10 reserved
	F32 Type = 11
	// 12 reserved
	F64 Type = 13
)

var typeNames = map[Type]string{
	U8: "u8", I8: "i8", U16: "u16", I16: "i16",
	U32: "u32", I32: "i32", U64: "u64", I64: "i64",
	Uw: "uw", Iw: "iw", F32: "f32", F64: "f64",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// ParseType validates a raw 4-bit tag read off the wire, rejecting the two
// reserved values and anything outside the enumeration.
func ParseType(tag byte) (Type, error) {
	t := Type(tag)
	if _, ok := typeNames[t]; !ok {
		return 0, &UndefinedError{Kind: "OpType", Tag: tag}
	}
	return t, nil
}

// Size reports the type's width in bytes. Uw/Iw follow the build's word
// width (word.Bits).
func (t Type) Size() int {
	switch t {
	case U8, I8:
		return 1
	case U16, I16:
		return 2
	case U32, I32, F32:
		return 4
	case U64, I64, F64:
		return 8
	case Uw, Iw:
		return word.Bits / 8
	case u128Type, i128Type:
		return 16
	default:
		return 0
	}
}

// IsFloat reports whether t is F32 or F64.
func (t Type) IsFloat() bool {
	return t == F32 || t == F64
}

// IsSigned reports whether t's underlying representation is a signed
// integer (word-sized Iw included; floats are not considered signed here,
// they're handled on their own arithmetic path).
func (t Type) IsSigned() bool {
	switch t {
	case I8, I16, I32, I64, Iw:
		return true
	default:
		return false
	}
}

// UndefinedError reports a reserved or out-of-range tag for one of the
// enumerations decoded off the wire (OpType, Kind, Variant, ArithmeticMode,
// ParameterMode), per spec §4.3.5/§7.
type UndefinedError struct {
	Kind string
	Tag  byte
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("undefined %s tag %#x", e.Kind, e.Tag)
}

// ArithmeticMode selects how Add/Sub/Mul/Neg/Inc/Dec treat overflow.
type ArithmeticMode uint8

const (
	Wrap ArithmeticMode = 0
	Sat  ArithmeticMode = 1
	Wide ArithmeticMode = 2
	Hand ArithmeticMode = 3
)

func (m ArithmeticMode) String() string {
	switch m {
	case Wrap:
		return "wrap"
	case Sat:
		return "sat"
	case Wide:
		return "wide"
	case Hand:
		return "hand"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseArithmeticMode validates a 2-bit arithmetic-mode tag.
func ParseArithmeticMode(tag byte) (ArithmeticMode, error) {
	if tag > 3 {
		return 0, &UndefinedError{Kind: "ArithmeticMode", Tag: tag}
	}
	return ArithmeticMode(tag), nil
}

// Primary is the set of ten concrete Go types this package operates on:
// the fixed-width integers backing U8..I64, plus F32/F64. Uw/Iw are not
// separate Go types — they alias whichever fixed-width integer matches the
// build's word size, so any generic function instantiated over the eight
// integer types already covers them.
type Primary interface {
	~uint8 | ~int8 | ~uint16 | ~int16 | ~uint32 | ~int32 | ~uint64 | ~int64 | ~float32 | ~float64
}

// bitSize returns the bit width of T by way of its zero value's size. Valid
// for every Primary instantiation.
func bitSize[T Primary]() int {
	var z T
	return int(unsafe.Sizeof(z)) * 8
}

// SizeOf returns sizeof(T) in bytes.
func SizeOf[T Primary]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

// Zero returns the zero value of T.
func Zero[T Primary]() T {
	var z T
	return z
}

// One returns the value 1 of T. For floats this is 1.0.
func One[T Primary]() T {
	return T(1)
}
