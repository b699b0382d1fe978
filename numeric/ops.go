package numeric

import (
	"math"

	"nivm/word"
)

// Result carries the outcome of a typed arithmetic dispatch: the raw
// little-endian bytes of the result (in ResultType, which differs from the
// input type only under Wide mode) and whether Hand mode trapped. A trapped
// result carries no bytes — callers must leave the destination untouched.
type Result struct {
	Bytes      []byte
	ResultType Type
	Trapped    bool
}

// intKind collapses Uw/Iw to the concrete fixed-width integer type matching
// the build's word size, so every dispatch below only has to switch on the
// eight fixed-width integer types plus the two floats.
func intKind(t Type) Type {
	switch t {
	case Uw:
		if word.Bits == 64 {
			return U64
		}
		return U32
	case Iw:
		if word.Bits == 64 {
			return I64
		}
		return I32
	default:
		return t
	}
}

func ok(b []byte, t Type) Result { return Result{Bytes: b, ResultType: t} }
func trap() Result               { return Result{Trapped: true} }

// binUnsigned widens xb/yb to uint64, applies f, and narrows the result
// back to t's own width — used by the bitwise ops, which have no mode or
// Wide form of their own.
func binUnsigned(t Type, xb, yb []byte, f func(x, y uint64) uint64) Result {
	switch intKind(t) {
	case U8, I8:
		x, y := FromLEBytes[uint8](xb), FromLEBytes[uint8](yb)
		return ok(ToLEBytes(uint8(f(uint64(x), uint64(y)))), t)
	case U16, I16:
		x, y := FromLEBytes[uint16](xb), FromLEBytes[uint16](yb)
		return ok(ToLEBytes(uint16(f(uint64(x), uint64(y)))), t)
	case U32, I32:
		x, y := FromLEBytes[uint32](xb), FromLEBytes[uint32](yb)
		return ok(ToLEBytes(uint32(f(uint64(x), uint64(y)))), t)
	case U64, I64:
		x, y := FromLEBytes[uint64](xb), FromLEBytes[uint64](yb)
		return ok(ToLEBytes(f(x, y)), t)
	default:
		return trap()
	}
}

// Add performs typed addition under the given arithmetic mode. Under Wide
// mode the result's ResultType is the widened type (see WideType); under
// Hand mode a trapped Result signals operation-overflow and must not be
// written to the destination.
func Add(mode ArithmeticMode, t Type, xb, yb []byte) Result {
	return dispatchArith(mode, t, xb, yb,
		wrapAddU[uint8], satAddU[uint8], checkedAddU[uint8],
		wrapAddU[uint16], satAddU[uint16], checkedAddU[uint16],
		wrapAddU[uint32], satAddU[uint32], checkedAddU[uint32],
		wrapAddU[uint64], satAddU[uint64], checkedAddU[uint64],
		wrapAddS[int8], satAddS[int8], checkedAddS[int8],
		wrapAddS[int16], satAddS[int16], checkedAddS[int16],
		wrapAddS[int32], satAddS[int32], checkedAddS[int32],
		wrapAddS[int64], satAddS[int64], checkedAddS[int64],
		addF[float32], addF[float64],
		wideAdd,
	)
}

// Sub performs typed subtraction under the given arithmetic mode.
func Sub(mode ArithmeticMode, t Type, xb, yb []byte) Result {
	return dispatchArith(mode, t, xb, yb,
		wrapSubU[uint8], satSubU[uint8], checkedSubU[uint8],
		wrapSubU[uint16], satSubU[uint16], checkedSubU[uint16],
		wrapSubU[uint32], satSubU[uint32], checkedSubU[uint32],
		wrapSubU[uint64], satSubU[uint64], checkedSubU[uint64],
		wrapSubS[int8], satSubS[int8], checkedSubS[int8],
		wrapSubS[int16], satSubS[int16], checkedSubS[int16],
		wrapSubS[int32], satSubS[int32], checkedSubS[int32],
		wrapSubS[int64], satSubS[int64], checkedSubS[int64],
		subF[float32], subF[float64],
		wideSub,
	)
}

// Mul performs typed multiplication under the given arithmetic mode.
func Mul(mode ArithmeticMode, t Type, xb, yb []byte) Result {
	return dispatchArith(mode, t, xb, yb,
		wrapMulU[uint8], satMulU[uint8], checkedMulU[uint8],
		wrapMulU[uint16], satMulU[uint16], checkedMulU[uint16],
		wrapMulU[uint32], satMulU[uint32], checkedMulU[uint32],
		wrapMulU[uint64], satMulU[uint64], checkedMulU[uint64],
		wrapMulS[int8], satMulS[int8], checkedMulS[int8],
		wrapMulS[int16], satMulS[int16], checkedMulS[int16],
		wrapMulS[int32], satMulS[int32], checkedMulS[int32],
		wrapMulS[int64], satMulS[int64], checkedMulS[int64],
		mulF[float32], mulF[float64],
		wideMul,
	)
}

// dispatchArith is the common shape shared by Add/Sub/Mul: eight
// type-specialized (wrap, sat, checked) triples for the eight integer
// types, two float binary ops (which ignore mode beyond Wrap/Sat/Hand, all
// identical to plain IEEE arithmetic — Wide is a no-op on floats), and a
// wide-mode callback used only for the eight integer types that actually
// widen (U8/I8/U16/I16/U32/I32/U64/I64; Uw/Iw fall back to wrap).
func dispatchArith(
	mode ArithmeticMode, t Type, xb, yb []byte,
	wu8 func(a, b uint8) uint8, su8 func(a, b uint8) uint8, cu8 func(a, b uint8) (uint8, bool),
	wu16 func(a, b uint16) uint16, su16 func(a, b uint16) uint16, cu16 func(a, b uint16) (uint16, bool),
	wu32 func(a, b uint32) uint32, su32 func(a, b uint32) uint32, cu32 func(a, b uint32) (uint32, bool),
	wu64 func(a, b uint64) uint64, su64 func(a, b uint64) uint64, cu64 func(a, b uint64) (uint64, bool),
	ws8 func(a, b int8) int8, ss8 func(a, b int8) int8, cs8 func(a, b int8) (int8, bool),
	ws16 func(a, b int16) int16, ss16 func(a, b int16) int16, cs16 func(a, b int16) (int16, bool),
	ws32 func(a, b int32) int32, ss32 func(a, b int32) int32, cs32 func(a, b int32) (int32, bool),
	ws64 func(a, b int64) int64, ss64 func(a, b int64) int64, cs64 func(a, b int64) (int64, bool),
	f32 func(a, b float32) float32, f64 func(a, b float64) float64,
	wide func(t Type, xb, yb []byte) Result,
) Result {
	kind := intKind(t)

	if kind.IsFloat() {
		if kind == F32 {
			x, y := FromLEBytes[float32](xb), FromLEBytes[float32](yb)
			return ok(ToLEBytes(f32(x, y)), t)
		}
		x, y := FromLEBytes[float64](xb), FromLEBytes[float64](yb)
		return ok(ToLEBytes(f64(x, y)), t)
	}

	if mode == Wide {
		return wide(t, xb, yb)
	}

	switch kind {
	case U8:
		return dispatchIntMode(mode, t, xb, yb, wu8, su8, cu8)
	case U16:
		return dispatchIntMode(mode, t, xb, yb, wu16, su16, cu16)
	case U32:
		return dispatchIntMode(mode, t, xb, yb, wu32, su32, cu32)
	case U64:
		return dispatchIntMode(mode, t, xb, yb, wu64, su64, cu64)
	case I8:
		return dispatchIntMode(mode, t, xb, yb, ws8, ss8, cs8)
	case I16:
		return dispatchIntMode(mode, t, xb, yb, ws16, ss16, cs16)
	case I32:
		return dispatchIntMode(mode, t, xb, yb, ws32, ss32, cs32)
	case I64:
		return dispatchIntMode(mode, t, xb, yb, ws64, ss64, cs64)
	default:
		return trap()
	}
}

func dispatchIntMode[T Primary](
	mode ArithmeticMode, t Type, xb, yb []byte,
	wrap func(a, b T) T, sat func(a, b T) T, checked func(a, b T) (T, bool),
) Result {
	x, y := FromLEBytes[T](xb), FromLEBytes[T](yb)
	switch mode {
	case Sat:
		return ok(ToLEBytes(sat(x, y)), t)
	case Hand:
		r, good := checked(x, y)
		if !good {
			return trap()
		}
		return ok(ToLEBytes(r), t)
	default: // Wrap (Wide is intercepted by the caller before reaching here)
		return ok(ToLEBytes(wrap(x, y)), t)
	}
}

// wideAdd/wideSub/wideMul perform the Wide-mode widen-then-operate for the
// eight fixed-width integer types, producing a result in WideType(t). U64
// and I64 widen into the Uint128/Int128 helper types since Go has no native
// 128-bit integer; every narrower type widens into a native Go type one
// size up.
func wideAdd(t Type, xb, yb []byte) Result { return wideOp(t, xb, yb, 0) }
func wideSub(t Type, xb, yb []byte) Result { return wideOp(t, xb, yb, 1) }
func wideMul(t Type, xb, yb []byte) Result { return wideOp(t, xb, yb, 2) }

func wideOp(t Type, xb, yb []byte, op int) Result {
	wt := WideType(t)
	switch t {
	case U8:
		x, y := uint16(FromLEBytes[uint8](xb)), uint16(FromLEBytes[uint8](yb))
		return ok(ToLEBytes(applyU16(op, x, y)), wt)
	case I8:
		x, y := int16(FromLEBytes[int8](xb)), int16(FromLEBytes[int8](yb))
		return ok(ToLEBytes(applyI16(op, x, y)), wt)
	case U16:
		x, y := uint64(FromLEBytes[uint16](xb)), uint64(FromLEBytes[uint16](yb))
		return ok(ToLEBytes(uint32(applyU32(op, x, y))), wt)
	case I16:
		x, y := int64(FromLEBytes[int16](xb)), int64(FromLEBytes[int16](yb))
		return ok(ToLEBytes(int32(applyI32(op, x, y))), wt)
	case U32:
		x, y := uint64(FromLEBytes[uint32](xb)), uint64(FromLEBytes[uint32](yb))
		return ok(ToLEBytes(applyU64(op, x, y)), wt)
	case I32:
		x, y := int64(FromLEBytes[int32](xb)), int64(FromLEBytes[int32](yb))
		return ok(ToLEBytes(applyI64(op, x, y)), wt)
	case U64:
		x, y := Uint128FromUint64(FromLEBytes[uint64](xb)), Uint128FromUint64(FromLEBytes[uint64](yb))
		return ok(applyU128(op, x, y).LEBytes(), wt)
	case I64:
		x, y := Int128FromInt64(FromLEBytes[int64](xb)), Int128FromInt64(FromLEBytes[int64](yb))
		return ok(applyI128(op, x, y).LEBytes(), wt)
	default:
		// Uw/Iw: WideType is identity, so widen-then-operate degenerates to
		// a plain wrapping operation in the type's own width.
		return wideOpSelf(intKind(t), t, xb, yb, op)
	}
}

// wideOpSelf dispatches op (0=add,1=sub,2=mul) on Uw/Iw's own concrete
// width, used when Wide mode degenerates to identity-width arithmetic.
func wideOpSelf(kind, t Type, xb, yb []byte, op int) Result {
	switch kind {
	case U32:
		x, y := uint64(FromLEBytes[uint32](xb)), uint64(FromLEBytes[uint32](yb))
		return ok(ToLEBytes(uint32(applyU32(op, x, y))), t)
	case I32:
		x, y := int64(FromLEBytes[int32](xb)), int64(FromLEBytes[int32](yb))
		return ok(ToLEBytes(int32(applyI32(op, x, y))), t)
	case U64:
		x, y := FromLEBytes[uint64](xb), FromLEBytes[uint64](yb)
		return ok(ToLEBytes(applyU64(op, x, y)), t)
	case I64:
		x, y := FromLEBytes[int64](xb), FromLEBytes[int64](yb)
		return ok(ToLEBytes(applyI64(op, x, y)), t)
	default:
		return trap()
	}
}

func applyU16(op int, x, y uint16) uint16 {
	switch op {
	case 0:
		return x + y
	case 1:
		return x - y
	default:
		return x * y
	}
}
func applyI16(op int, x, y int16) int16 {
	switch op {
	case 0:
		return x + y
	case 1:
		return x - y
	default:
		return x * y
	}
}
func applyU32(op int, x, y uint64) uint64 {
	switch op {
	case 0:
		return x + y
	case 1:
		return x - y
	default:
		return x * y
	}
}
func applyI32(op int, x, y int64) int64 {
	switch op {
	case 0:
		return x + y
	case 1:
		return x - y
	default:
		return x * y
	}
}
func applyU64(op int, x, y uint64) uint64 {
	switch op {
	case 0:
		return x + y
	case 1:
		return x - y
	default:
		return x * y
	}
}
func applyI64(op int, x, y int64) int64 {
	switch op {
	case 0:
		return x + y
	case 1:
		return x - y
	default:
		return x * y
	}
}
func applyU128(op int, x, y Uint128) Uint128 {
	switch op {
	case 0:
		return x.Add(y)
	case 1:
		return x.Sub(y)
	default:
		return x.Mul(y)
	}
}
func applyI128(op int, x, y Int128) Int128 {
	switch op {
	case 0:
		return x.Add(y)
	case 1:
		return x.Sub(y)
	default:
		return x.Mul(y)
	}
}

// Neg negates x under the given arithmetic mode; floats and Wide both
// degenerate to plain negation (there is no wider representation to
// negate into).
func Neg(mode ArithmeticMode, t Type, xb []byte) Result {
	kind := intKind(t)
	if kind.IsFloat() {
		if kind == F32 {
			return ok(ToLEBytes(negF(FromLEBytes[float32](xb))), t)
		}
		return ok(ToLEBytes(negF(FromLEBytes[float64](xb))), t)
	}
	switch kind {
	case U8:
		return negDispatch(mode, t, FromLEBytes[uint8](xb), wrapNegU[uint8], satNegU[uint8], checkedNegU[uint8])
	case U16:
		return negDispatch(mode, t, FromLEBytes[uint16](xb), wrapNegU[uint16], satNegU[uint16], checkedNegU[uint16])
	case U32:
		return negDispatch(mode, t, FromLEBytes[uint32](xb), wrapNegU[uint32], satNegU[uint32], checkedNegU[uint32])
	case U64:
		return negDispatch(mode, t, FromLEBytes[uint64](xb), wrapNegU[uint64], satNegU[uint64], checkedNegU[uint64])
	case I8:
		return negDispatch(mode, t, FromLEBytes[int8](xb), wrapNegS[int8], satNegS[int8], checkedNegS[int8])
	case I16:
		return negDispatch(mode, t, FromLEBytes[int16](xb), wrapNegS[int16], satNegS[int16], checkedNegS[int16])
	case I32:
		return negDispatch(mode, t, FromLEBytes[int32](xb), wrapNegS[int32], satNegS[int32], checkedNegS[int32])
	case I64:
		return negDispatch(mode, t, FromLEBytes[int64](xb), wrapNegS[int64], satNegS[int64], checkedNegS[int64])
	default:
		return trap()
	}
}

func negDispatch[T Primary](mode ArithmeticMode, t Type, x T, wrap func(T) T, sat func(T) T, checked func(T) (T, bool)) Result {
	switch mode {
	case Sat:
		return ok(ToLEBytes(sat(x)), t)
	case Hand:
		r, good := checked(x)
		if !good {
			return trap()
		}
		return ok(ToLEBytes(r), t)
	default:
		return ok(ToLEBytes(wrap(x)), t)
	}
}

// Inc and Dec are Add/Sub by the type's One() value, sharing the same
// four arithmetic modes (including Wide, which widens exactly as Add/Sub
// would).
func Inc(mode ArithmeticMode, t Type, xb []byte) Result { return Add(mode, t, xb, oneBytes(t)) }
func Dec(mode ArithmeticMode, t Type, xb []byte) Result { return Sub(mode, t, xb, oneBytes(t)) }

func oneBytes(t Type) []byte {
	switch intKind(t) {
	case U8:
		return ToLEBytes(One[uint8]())
	case I8:
		return ToLEBytes(One[int8]())
	case U16:
		return ToLEBytes(One[uint16]())
	case I16:
		return ToLEBytes(One[int16]())
	case U32:
		return ToLEBytes(One[uint32]())
	case I32:
		return ToLEBytes(One[int32]())
	case U64:
		return ToLEBytes(One[uint64]())
	case I64:
		return ToLEBytes(One[int64]())
	case F32:
		return ToLEBytes(One[float32]())
	case F64:
		return ToLEBytes(One[float64]())
	default:
		return nil
	}
}

// Div performs wrapping integer division, or IEEE division for floats.
// Division by zero on an integer type is reported by a false second return.
func Div(t Type, xb, yb []byte) (Result, bool) {
	return divMod(t, xb, yb, true)
}

// Mod performs wrapping integer remainder, or math.Mod (truncated remainder,
// sign of x) for floats.
func Mod(t Type, xb, yb []byte) (Result, bool) {
	return divMod(t, xb, yb, false)
}

func divMod(t Type, xb, yb []byte, isDiv bool) (Result, bool) {
	kind := intKind(t)
	if kind.IsFloat() {
		if kind == F32 {
			x, y := FromLEBytes[float32](xb), FromLEBytes[float32](yb)
			if isDiv {
				return ok(ToLEBytes(divF(x, y)), t), true
			}
			return ok(ToLEBytes(float32(math.Mod(float64(x), float64(y)))), t), true
		}
		x, y := FromLEBytes[float64](xb), FromLEBytes[float64](yb)
		if isDiv {
			return ok(ToLEBytes(divF(x, y)), t), true
		}
		return ok(ToLEBytes(math.Mod(x, y)), t), true
	}

	switch kind {
	case U8:
		return intDivMod(t, FromLEBytes[uint8](xb), FromLEBytes[uint8](yb), isDiv, wrapDivU[uint8], wrapRemU[uint8])
	case U16:
		return intDivMod(t, FromLEBytes[uint16](xb), FromLEBytes[uint16](yb), isDiv, wrapDivU[uint16], wrapRemU[uint16])
	case U32:
		return intDivMod(t, FromLEBytes[uint32](xb), FromLEBytes[uint32](yb), isDiv, wrapDivU[uint32], wrapRemU[uint32])
	case U64:
		return intDivMod(t, FromLEBytes[uint64](xb), FromLEBytes[uint64](yb), isDiv, wrapDivU[uint64], wrapRemU[uint64])
	case I8:
		return intDivModS(t, FromLEBytes[int8](xb), FromLEBytes[int8](yb), isDiv, wrapDivS[int8], wrapRemS[int8])
	case I16:
		return intDivModS(t, FromLEBytes[int16](xb), FromLEBytes[int16](yb), isDiv, wrapDivS[int16], wrapRemS[int16])
	case I32:
		return intDivModS(t, FromLEBytes[int32](xb), FromLEBytes[int32](yb), isDiv, wrapDivS[int32], wrapRemS[int32])
	case I64:
		return intDivModS(t, FromLEBytes[int64](xb), FromLEBytes[int64](yb), isDiv, wrapDivS[int64], wrapRemS[int64])
	default:
		return trap(), true
	}
}

func intDivMod[T unsignedInt](t Type, x, y T, isDiv bool, div func(a, b T) T, rem func(a, b T) T) (Result, bool) {
	if y == 0 {
		return Result{}, false
	}
	if isDiv {
		return ok(ToLEBytes(div(x, y)), t), true
	}
	return ok(ToLEBytes(rem(x, y)), t), true
}

func intDivModS[T signedInt](t Type, x, y T, isDiv bool, div func(a, b T) T, rem func(a, b T) T) (Result, bool) {
	if y == 0 {
		return Result{}, false
	}
	if isDiv {
		return ok(ToLEBytes(div(x, y)), t), true
	}
	return ok(ToLEBytes(rem(x, y)), t), true
}

// Shl and Shr shift by a u8 amount, masked to the type's bit width; both
// are rejected on floats.
func Shl(t Type, xb []byte, amount uint8) Result { return shift(t, xb, amount, true) }
func Shr(t Type, xb []byte, amount uint8) Result { return shift(t, xb, amount, false) }

func shift(t Type, xb []byte, amount uint8, left bool) Result {
	kind := intKind(t)
	switch kind {
	case U8:
		return shiftDispatch(t, FromLEBytes[uint8](xb), amount, left, wrapShl[uint8], wrapShr[uint8])
	case U16:
		return shiftDispatch(t, FromLEBytes[uint16](xb), amount, left, wrapShl[uint16], wrapShr[uint16])
	case U32:
		return shiftDispatch(t, FromLEBytes[uint32](xb), amount, left, wrapShl[uint32], wrapShr[uint32])
	case U64:
		return shiftDispatch(t, FromLEBytes[uint64](xb), amount, left, wrapShl[uint64], wrapShr[uint64])
	case I8:
		return shiftDispatch(t, FromLEBytes[int8](xb), amount, left, wrapShl[int8], wrapShr[int8])
	case I16:
		return shiftDispatch(t, FromLEBytes[int16](xb), amount, left, wrapShl[int16], wrapShr[int16])
	case I32:
		return shiftDispatch(t, FromLEBytes[int32](xb), amount, left, wrapShl[int32], wrapShr[int32])
	case I64:
		return shiftDispatch(t, FromLEBytes[int64](xb), amount, left, wrapShl[int64], wrapShr[int64])
	default:
		return trap()
	}
}

func shiftDispatch[T integer](t Type, x T, amount uint8, left bool, shl func(T, uint8) T, shr func(T, uint8) T) Result {
	if left {
		return ok(ToLEBytes(shl(x, amount)), t)
	}
	return ok(ToLEBytes(shr(x, amount)), t)
}

// And, Or, Xor, Not are bitwise-only; both IsFloat operands are rejected by
// the caller (numeric.Type.IsFloat) before these are reached.
func And(t Type, xb, yb []byte) Result { return bitwiseBin(t, xb, yb, bitAnd[uint64]) }
func Or(t Type, xb, yb []byte) Result  { return bitwiseBin(t, xb, yb, bitOr[uint64]) }
func Xor(t Type, xb, yb []byte) Result { return bitwiseBin(t, xb, yb, bitXor[uint64]) }

func bitwiseBin(t Type, xb, yb []byte, f func(a, b uint64) uint64) Result {
	return binUnsigned(t, xb, yb, f)
}

// Not complements all bits of x in t's width.
func Not(t Type, xb []byte) Result {
	switch intKind(t) {
	case U8:
		return ok(ToLEBytes(bitNot(FromLEBytes[uint8](xb))), t)
	case U16:
		return ok(ToLEBytes(bitNot(FromLEBytes[uint16](xb))), t)
	case U32:
		return ok(ToLEBytes(bitNot(FromLEBytes[uint32](xb))), t)
	case U64:
		return ok(ToLEBytes(bitNot(FromLEBytes[uint64](xb))), t)
	case I8:
		return ok(ToLEBytes(bitNot(FromLEBytes[int8](xb))), t)
	case I16:
		return ok(ToLEBytes(bitNot(FromLEBytes[int16](xb))), t)
	case I32:
		return ok(ToLEBytes(bitNot(FromLEBytes[int32](xb))), t)
	case I64:
		return ok(ToLEBytes(bitNot(FromLEBytes[int64](xb))), t)
	default:
		return trap()
	}
}

// IsZero reports whether the bytes of a t-typed value are all-bits-zero,
// used by Ift/Iff and the bitwise conditionals.
func IsZero(t Type, xb []byte) bool {
	for _, b := range xb[:t.Size()] {
		if b != 0 {
			return false
		}
	}
	return true
}

// Compare reports the signed ordering of x against y (-1, 0, 1) for t's
// numeric domain, used by Ife/Ifl/Ifg/Ine/Inl/Ing.
func Compare(t Type, xb, yb []byte) int {
	kind := intKind(t)
	switch kind {
	case U8:
		return cmpOrdered(FromLEBytes[uint8](xb), FromLEBytes[uint8](yb))
	case U16:
		return cmpOrdered(FromLEBytes[uint16](xb), FromLEBytes[uint16](yb))
	case U32:
		return cmpOrdered(FromLEBytes[uint32](xb), FromLEBytes[uint32](yb))
	case U64:
		return cmpOrdered(FromLEBytes[uint64](xb), FromLEBytes[uint64](yb))
	case I8:
		return cmpOrdered(FromLEBytes[int8](xb), FromLEBytes[int8](yb))
	case I16:
		return cmpOrdered(FromLEBytes[int16](xb), FromLEBytes[int16](yb))
	case I32:
		return cmpOrdered(FromLEBytes[int32](xb), FromLEBytes[int32](yb))
	case I64:
		return cmpOrdered(FromLEBytes[int64](xb), FromLEBytes[int64](yb))
	case F32:
		return cmpOrdered(FromLEBytes[float32](xb), FromLEBytes[float32](yb))
	default:
		return cmpOrdered(FromLEBytes[float64](xb), FromLEBytes[float64](yb))
	}
}

func cmpOrdered[T interface {
	integer | float
}](x, y T) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// BitwiseZero evaluates x⊗y == 0 for Ifa/Ifo/Ifx/Ina/Ino/Inx; the caller
// has already rejected float operands as incorrect-operation.
func BitwiseZero(t Type, xb, yb []byte, op byte) bool {
	var r Result
	switch op {
	case 'a':
		r = And(t, xb, yb)
	case 'o':
		r = Or(t, xb, yb)
	default:
		r = Xor(t, xb, yb)
	}
	return IsZero(r.ResultType, r.Bytes)
}

// Convert numerically casts a from-typed value to a to-typed one, mapping
// NaN/Inf to zero on float→int narrowing.
func Convert(from, to Type, xb []byte) []byte {
	fv := toFloat64(from, xb)
	return fromFloat64(to, fv, from, xb)
}

func toFloat64(t Type, xb []byte) float64 {
	switch intKind(t) {
	case U8:
		return float64(FromLEBytes[uint8](xb))
	case I8:
		return float64(FromLEBytes[int8](xb))
	case U16:
		return float64(FromLEBytes[uint16](xb))
	case I16:
		return float64(FromLEBytes[int16](xb))
	case U32:
		return float64(FromLEBytes[uint32](xb))
	case I32:
		return float64(FromLEBytes[int32](xb))
	case U64:
		return float64(FromLEBytes[uint64](xb))
	case I64:
		return float64(FromLEBytes[int64](xb))
	case F32:
		return float64(FromLEBytes[float32](xb))
	default:
		return FromLEBytes[float64](xb)
	}
}

func fromFloat64(to Type, v float64, from Type, xb []byte) []byte {
	isIntSrc := !intKind(from).IsFloat()
	isIntDst := !intKind(to).IsFloat()
	if isIntSrc && isIntDst {
		// integer-to-integer: convert via the native integer domain to
		// preserve exact bit truncation semantics rather than routing
		// through float64, which would lose precision above 2^53.
		return intToInt(from, to, xb)
	}
	if isIntDst && (isNaNOrInf(v)) {
		v = 0
	}
	switch intKind(to) {
	case U8:
		return ToLEBytes(uint8(int64(v)))
	case I8:
		return ToLEBytes(int8(int64(v)))
	case U16:
		return ToLEBytes(uint16(int64(v)))
	case I16:
		return ToLEBytes(int16(int64(v)))
	case U32:
		return ToLEBytes(uint32(int64(v)))
	case I32:
		return ToLEBytes(int32(int64(v)))
	case U64:
		return ToLEBytes(uint64(v))
	case I64:
		return ToLEBytes(int64(v))
	case F32:
		return ToLEBytes(float32(v))
	default:
		return ToLEBytes(v)
	}
}

func isNaNOrInf(v float64) bool { return v != v || v > 1.7e308 || v < -1.7e308 }

func intToInt(from, to Type, xb []byte) []byte {
	// widen to int64/uint64 according to from's signedness, then narrow.
	if from.IsSigned() {
		var v int64
		switch intKind(from) {
		case I8:
			v = int64(FromLEBytes[int8](xb))
		case I16:
			v = int64(FromLEBytes[int16](xb))
		case I32:
			v = int64(FromLEBytes[int32](xb))
		default:
			v = FromLEBytes[int64](xb)
		}
		return narrowSigned(to, v)
	}
	var v uint64
	switch intKind(from) {
	case U8:
		v = uint64(FromLEBytes[uint8](xb))
	case U16:
		v = uint64(FromLEBytes[uint16](xb))
	case U32:
		v = uint64(FromLEBytes[uint32](xb))
	default:
		v = FromLEBytes[uint64](xb)
	}
	return narrowUnsigned(to, v)
}

func narrowSigned(to Type, v int64) []byte {
	if to.IsSigned() {
		switch intKind(to) {
		case I8:
			return ToLEBytes(int8(v))
		case I16:
			return ToLEBytes(int16(v))
		case I32:
			return ToLEBytes(int32(v))
		default:
			return ToLEBytes(v)
		}
	}
	return narrowUnsigned(to, uint64(v))
}

func narrowUnsigned(to Type, v uint64) []byte {
	switch intKind(to) {
	case U8:
		return ToLEBytes(uint8(v))
	case I8:
		return ToLEBytes(int8(v))
	case U16:
		return ToLEBytes(uint16(v))
	case I16:
		return ToLEBytes(int16(v))
	case U32:
		return ToLEBytes(uint32(v))
	case I32:
		return ToLEBytes(int32(v))
	case U64:
		return ToLEBytes(v)
	default:
		return ToLEBytes(int64(v))
	}
}
