package numeric

import (
	"encoding/binary"
	"math/bits"
)

// Uint128 and Int128 exist solely to hold the result of a Wide-mode
// add/sub/mul on U64 or I64 (Uw/Iw never widen) — Go has no native
// 128-bit integer, unlike the u128/i128 the original widening target uses.
// They support exactly the operations Wide mode needs and nothing more.
type Uint128 struct {
	Hi, Lo uint64
}

type Int128 struct {
	Hi, Lo uint64
}

func Uint128FromUint64(v uint64) Uint128 { return Uint128{Lo: v} }

func Int128FromInt64(v int64) Int128 {
	hi := uint64(0)
	if v < 0 {
		hi = ^uint64(0)
	}
	return Int128{Hi: hi, Lo: uint64(v)}
}

func (a Uint128) Add(b Uint128) Uint128 {
	lo, carry := bits.Add64(a.Lo, b.Lo, 0)
	hi, _ := bits.Add64(a.Hi, b.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}
}

func (a Uint128) Sub(b Uint128) Uint128 {
	lo, borrow := bits.Sub64(a.Lo, b.Lo, 0)
	hi, _ := bits.Sub64(a.Hi, b.Hi, borrow)
	return Uint128{Hi: hi, Lo: lo}
}

func (a Uint128) Mul(b Uint128) Uint128 {
	hi1, lo1 := bits.Mul64(a.Lo, b.Lo)
	hi := hi1 + a.Hi*b.Lo + a.Lo*b.Hi
	return Uint128{Hi: hi, Lo: lo1}
}

func (a Uint128) LEBytes() []byte {
	b := make([]byte, 16)
	binary.LittleEndian.PutUint64(b[:8], a.Lo)
	binary.LittleEndian.PutUint64(b[8:], a.Hi)
	return b
}

func Uint128FromLEBytes(b []byte) Uint128 {
	return Uint128{Lo: binary.LittleEndian.Uint64(b[:8]), Hi: binary.LittleEndian.Uint64(b[8:16])}
}

// Int128 arithmetic reuses Uint128's truncated bit pattern: two's-complement
// add/sub/mul produce identical low bits whether the operands are signed or
// unsigned, only the interpretation of the high bit differs.
func (a Int128) Add(b Int128) Int128 {
	r := Uint128(a).add(Uint128(b))
	return Int128(r)
}

func (a Int128) Sub(b Int128) Int128 {
	r := Uint128(a).sub(Uint128(b))
	return Int128(r)
}

func (a Int128) Mul(b Int128) Int128 {
	r := Uint128(a).mul(Uint128(b))
	return Int128(r)
}

func (a Uint128) add(b Uint128) Uint128 { return a.Add(b) }
func (a Uint128) sub(b Uint128) Uint128 { return a.Sub(b) }
func (a Uint128) mul(b Uint128) Uint128 { return a.Mul(b) }

func (a Int128) LEBytes() []byte { return Uint128(a).LEBytes() }

func Int128FromLEBytes(b []byte) Int128 { return Int128(Uint128FromLEBytes(b)) }
