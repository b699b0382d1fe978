package numeric

import (
	"encoding/binary"
	"math"

	"nivm/word"
)

// ToLEBytes returns the little-endian encoding of v, exactly sizeof(T)
// bytes long.
func ToLEBytes[T Primary](v T) []byte {
	switch x := any(v).(type) {
	case uint8:
		return []byte{x}
	case int8:
		return []byte{byte(x)}
	case uint16:
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, x)
		return b
	case int16:
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, uint16(x))
		return b
	case uint32:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, x)
		return b
	case int32:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, uint32(x))
		return b
	case uint64:
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, x)
		return b
	case int64:
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, uint64(x))
		return b
	case float32:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, math.Float32bits(x))
		return b
	case float64:
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, math.Float64bits(x))
		return b
	default:
		panic("numeric: unsupported primary type")
	}
}

// FromLEBytes decodes exactly sizeof(T) little-endian bytes from the front
// of b. b must be at least that long.
func FromLEBytes[T Primary](b []byte) T {
	var z T
	switch any(z).(type) {
	case uint8:
		return T(b[0])
	case int8:
		return any(int8(b[0])).(T)
	case uint16:
		return any(binary.LittleEndian.Uint16(b)).(T)
	case int16:
		return any(int16(binary.LittleEndian.Uint16(b))).(T)
	case uint32:
		return any(binary.LittleEndian.Uint32(b)).(T)
	case int32:
		return any(int32(binary.LittleEndian.Uint32(b))).(T)
	case uint64:
		return any(binary.LittleEndian.Uint64(b)).(T)
	case int64:
		return any(int64(binary.LittleEndian.Uint64(b))).(T)
	case float32:
		return any(math.Float32frombits(binary.LittleEndian.Uint32(b))).(T)
	case float64:
		return any(math.Float64frombits(binary.LittleEndian.Uint64(b))).(T)
	default:
		panic("numeric: unsupported primary type")
	}
}

// FromSlice decodes T from a prefix of b, zero-padding on the right if b is
// shorter than sizeof(T).
func FromSlice[T Primary](b []byte) T {
	n := SizeOf[T]()
	if len(b) >= n {
		return FromLEBytes[T](b[:n])
	}
	buf := make([]byte, n)
	copy(buf, b)
	return FromLEBytes[T](buf)
}

// FromWord reinterprets an unsigned machine word as T: its little-endian
// bytes are zero-padded (or truncated) to sizeof(T), then decoded. For
// floats this is a bit-pattern reinterpretation, not a numeric cast — it is
// how an immediate Val(_) operand carries a float bit pattern.
func FromWord[T Primary](w word.UWord) T {
	wb := ToLEBytes(w)
	return FromSlice[T](wb)
}

// ToWord reinterprets v's little-endian bytes as an unsigned machine word,
// the inverse of FromWord.
func ToWord[T Primary](v T) word.UWord {
	return FromSlice[word.UWord](ToLEBytes(v))
}

// ResizeLE truncates or zero-pads a little-endian byte slice to exactly n
// bytes, used to reinterpret a machine word's bit pattern as an arbitrary
// numeric.Type's width without knowing its concrete Go type (Val/Ref
// operand evaluation operates on raw bytes, not a generic T).
func ResizeLE(b []byte, n int) []byte {
	if len(b) == n {
		return b
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// WordToBytes reinterprets a machine word's little-endian bytes as an
// n-byte value, used by Val/Ref operand evaluation.
func WordToBytes(w word.UWord, n int) []byte {
	return ResizeLE(ToLEBytes(w), n)
}

// BytesToWord reinterprets an arbitrary-width little-endian byte slice as a
// machine word, used by Ind's inner address read.
func BytesToWord(b []byte) word.UWord {
	return FromSlice[word.UWord](b)
}
