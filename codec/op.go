package codec

import "nivm/numeric"

// Op is every instruction's decoded shape in one flat struct. Which fields
// are meaningful depends on Code; unused fields are left zero. This trades
// the twelve-ish narrow per-opcode types a sum type would give for a single
// type the decoder, encoder, and interpreter all share without a type
// switch at every boundary — see the field comments below for the
// opcodes-to-fields mapping.
type Op struct {
	Code Code

	// A, B, C hold the bare (offset-less) Operand forms used by opcodes
	// that don't go through UnOp/BinOp: End/Slp/Go/App/Clf/Sfd/Gfd/Opn/Cls
	// (A only), Cnv/Shl/Shr (A, B), Zer (A, B), Cmp/Cpy (A, B, C).
	A, B, C Operand

	// Un and Bin hold the UnOp/BinOp forms used by the typed arithmetic,
	// comparison, Not/Neg/Inc/Dec, Ift/Iff, Ret, In/Out, and Par opcodes.
	Un  UnOp
	Bin BinOp

	// Type is the opcode's primary numeric type tag; Type2 is Cnv's
	// destination type (Type itself holds Cnv's source type).
	Type, Type2 numeric.Type

	// AMode is the arithmetic mode for Add/Sub/Mul/Neg/Inc/Dec.
	AMode numeric.ArithmeticMode

	// PMode is the parameter mode for Par.
	PMode ParameterMode
}

// ParameterMode selects how Par places a value into the prepared frame.
type ParameterMode byte

const (
	ParamSet ParameterMode = 0
	ParamEmp ParameterMode = 1
	ParamZer ParameterMode = 2
)

// ParseParameterMode validates a 2-bit parameter-mode tag.
func ParseParameterMode(tag byte) (ParameterMode, error) {
	if tag > 2 {
		return 0, &numeric.UndefinedError{Kind: "ParameterMode", Tag: tag}
	}
	return ParameterMode(tag), nil
}
