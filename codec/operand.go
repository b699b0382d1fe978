package codec

import (
	"nivm/numeric"
	"nivm/word"
)

// Kind discriminates the seven operand forms an instruction's value or
// address can take.
type Kind byte

const (
	Loc Kind = 0
	Ind Kind = 1
	Ret Kind = 2
	Val Kind = 3
	Ref Kind = 4
	Glb Kind = 5
	Emp Kind = 6
)

// ParseKind validates a 3-bit kind tag read off the wire.
func ParseKind(tag byte) (Kind, error) {
	if tag > 6 {
		return 0, &numeric.UndefinedError{Kind: "Kind", Tag: tag}
	}
	return Kind(tag), nil
}

// Operand is a small tagged value: a Kind plus, for every kind but Emp, a
// word-sized payload (an offset, an immediate, or an address depending on
// Kind). Emp carries no payload and is never readable or writable.
type Operand struct {
	Kind  Kind
	Value word.UWord
}

func NewLoc(n word.UWord) Operand { return Operand{Kind: Loc, Value: n} }
func NewInd(n word.UWord) Operand { return Operand{Kind: Ind, Value: n} }
func NewRet(n word.UWord) Operand { return Operand{Kind: Ret, Value: n} }
func NewVal(n word.UWord) Operand { return Operand{Kind: Val, Value: n} }
func NewRef(n word.UWord) Operand { return Operand{Kind: Ref, Value: n} }
func NewGlb(n word.UWord) Operand { return Operand{Kind: Glb, Value: n} }

var EmpOperand = Operand{Kind: Emp}

// Variant names which offset operands of a UnOp/BinOp are present on the
// wire.
type Variant byte

const (
	VariantNone   Variant = 0
	VariantFirst  Variant = 1
	VariantSecond Variant = 2
	VariantBoth   Variant = 3
)

// ParseVariant validates a 2-bit variant tag.
func ParseVariant(tag byte) (Variant, error) {
	if tag > 3 {
		return 0, &numeric.UndefinedError{Kind: "Variant", Tag: tag}
	}
	return Variant(tag), nil
}

// UnOp is a single operand plus an optional offset operand read alongside
// it. Only VariantNone and VariantFirst are legal here — a UnOp with
// VariantSecond or VariantBoth is an incorrect-variant codec error.
type UnOp struct {
	X         Operand
	HasOffset bool
	Offset    Operand
}

func NewUnOp(x Operand) UnOp { return UnOp{X: x} }

func (u UnOp) WithOffset(off Operand) UnOp {
	u.HasOffset = true
	u.Offset = off
	return u
}

func (u UnOp) Variant() Variant {
	if u.HasOffset {
		return VariantFirst
	}
	return VariantNone
}

// BinOp is a pair of operands, each with its own optional offset operand.
type BinOp struct {
	X, Y             Operand
	HasXOff, HasYOff bool
	XOff, YOff       Operand
}

func NewBinOp(x, y Operand) BinOp { return BinOp{X: x, Y: y} }

func (b BinOp) WithXOffset(off Operand) BinOp {
	b.HasXOff = true
	b.XOff = off
	return b
}

func (b BinOp) WithYOffset(off Operand) BinOp {
	b.HasYOff = true
	b.YOff = off
	return b
}

func (b BinOp) Variant() Variant {
	switch {
	case b.HasXOff && b.HasYOff:
		return VariantBoth
	case b.HasYOff:
		return VariantSecond
	case b.HasXOff:
		return VariantFirst
	default:
		return VariantNone
	}
}
