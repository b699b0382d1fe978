package codec

import (
	"io"

	"nivm/numeric"
	"nivm/word"
)

type reader struct{ r io.Reader }

func (d reader) readByte() (byte, error) {
	var buf [1]byte
	n, err := d.r.Read(buf[:])
	if err != nil {
		if err == io.EOF {
			return 0, ErrUnexpectedEnd
		}
		return 0, &IOError{Err: err}
	}
	if n != 1 {
		return 0, ErrUnexpectedEnd
	}
	return buf[0], nil
}

func (d reader) readN(n int) ([]byte, error) {
	buf := make([]byte, n)
	read := 0
	for read < n {
		m, err := d.r.Read(buf[read:])
		read += m
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, &IOError{Err: err}
		}
		if m == 0 {
			break
		}
	}
	if read != n {
		return nil, ErrUnexpectedEnd
	}
	return buf, nil
}

// Decode reads exactly one Op from r. A clean end of stream before any
// byte of the next Op is read returns io.EOF verbatim, so a caller reading
// a file as a back-to-back stream of Ops can loop until io.EOF; an end of
// stream partway through an Op's payload is a genuine ErrUnexpectedEnd.
func Decode(r io.Reader) (Op, error) {
	d := reader{r: r}
	var buf [1]byte
	n, err := r.Read(buf[:])
	if n == 0 {
		if err == io.EOF {
			return Op{}, io.EOF
		}
		if err != nil {
			return Op{}, &IOError{Err: err}
		}
		return Op{}, ErrUnexpectedEnd
	}
	return decodeBody(d, Code(buf[0]))
}

func decodeBody(d reader, code Code) (Op, error) {
	switch code {
	case Nop:
		return Op{Code: code}, nil
	case End, Slp, Go, App, Clf, Sfd, Gfd, Opn, Cls:
		a, err := decodeOperand(d)
		if err != nil {
			return Op{}, err
		}
		return Op{Code: code, A: a}, nil
	case Fls:
		return Op{Code: code}, nil
	case Set:
		bin, t, err := decodeBinMeta(d)
		if err != nil {
			return Op{}, err
		}
		return Op{Code: code, Bin: bin, Type: t}, nil
	case Cnv:
		tFrom, tTo, err := decodeTypePair(d)
		if err != nil {
			return Op{}, err
		}
		a, err := decodeOperand(d)
		if err != nil {
			return Op{}, err
		}
		b, err := decodeOperand(d)
		if err != nil {
			return Op{}, err
		}
		return Op{Code: code, A: a, B: b, Type: tFrom, Type2: tTo}, nil
	case Add, Sub, Mul:
		bin, t, mode, err := decodeBinMetaMode(d)
		if err != nil {
			return Op{}, err
		}
		amode, err := numeric.ParseArithmeticMode(mode)
		if err != nil {
			return Op{}, err
		}
		return Op{Code: code, Bin: bin, Type: t, AMode: amode}, nil
	case Div, Mod, And, Or, Xor, Ife, Ifl, Ifg, Ine, Inl, Ing, Ifa, Ifo, Ifx, Ina, Ino, Inx:
		bin, t, err := decodeBinMeta(d)
		if err != nil {
			return Op{}, err
		}
		return Op{Code: code, Bin: bin, Type: t}, nil
	case Shl, Shr:
		t, err := decodeType(d)
		if err != nil {
			return Op{}, err
		}
		a, err := decodeOperand(d)
		if err != nil {
			return Op{}, err
		}
		b, err := decodeOperand(d)
		if err != nil {
			return Op{}, err
		}
		return Op{Code: code, A: a, B: b, Type: t}, nil
	case Not, Ift, Iff, Ret:
		un, t, err := decodeUnMeta(d)
		if err != nil {
			return Op{}, err
		}
		return Op{Code: code, Un: un, Type: t}, nil
	case Neg, Inc, Dec:
		un, t, mode, err := decodeUnMetaMode(d)
		if err != nil {
			return Op{}, err
		}
		amode, err := numeric.ParseArithmeticMode(mode)
		if err != nil {
			return Op{}, err
		}
		return Op{Code: code, Un: un, Type: t, AMode: amode}, nil
	case Par:
		un, t, mode, err := decodeUnMetaMode(d)
		if err != nil {
			return Op{}, err
		}
		pmode, err := ParseParameterMode(mode)
		if err != nil {
			return Op{}, err
		}
		return Op{Code: code, Un: un, Type: t, PMode: pmode}, nil
	case In, Out:
		un, _, _, err := decodeUnMetaMode(d)
		if err != nil {
			return Op{}, err
		}
		return Op{Code: code, Un: un, Type: numeric.U8}, nil
	case Zer:
		a, err := decodeOperand(d)
		if err != nil {
			return Op{}, err
		}
		b, err := decodeOperand(d)
		if err != nil {
			return Op{}, err
		}
		return Op{Code: code, A: a, B: b}, nil
	case Cmp, Cpy:
		a, err := decodeOperand(d)
		if err != nil {
			return Op{}, err
		}
		b, err := decodeOperand(d)
		if err != nil {
			return Op{}, err
		}
		c, err := decodeOperand(d)
		if err != nil {
			return Op{}, err
		}
		return Op{Code: code, A: a, B: b, C: c}, nil
	default:
		return Op{}, ErrUnknownOpCode
	}
}

const (
	typeBits    byte = 0b0000_1111
	modeBits    byte = 0b0011_0000
	variantBits byte = 0b1100_0000
)

// decodeMeta reads the shared (type, mode, variant) meta byte every
// typed opcode but Shl/Shr/Cnv/Zer/Cmp/Cpy begins with.
func decodeMeta(d reader) (numeric.Type, byte, Variant, error) {
	meta, err := d.readByte()
	if err != nil {
		return 0, 0, 0, err
	}
	t, err := numeric.ParseType(meta & typeBits)
	if err != nil {
		return 0, 0, 0, err
	}
	variant, err := ParseVariant((meta & variantBits) >> 6)
	if err != nil {
		return 0, 0, 0, err
	}
	return t, (meta & modeBits) >> 4, variant, nil
}

func decodeType(d reader) (numeric.Type, error) {
	meta, err := d.readByte()
	if err != nil {
		return 0, err
	}
	return numeric.ParseType(meta & typeBits)
}

func decodeTypePair(d reader) (numeric.Type, numeric.Type, error) {
	meta, err := d.readByte()
	if err != nil {
		return 0, 0, err
	}
	t, err := numeric.ParseType(meta & typeBits)
	if err != nil {
		return 0, 0, err
	}
	u, err := numeric.ParseType((meta & 0b1111_0000) >> 4)
	if err != nil {
		return 0, 0, err
	}
	return t, u, nil
}

func decodeBinMeta(d reader) (BinOp, numeric.Type, error) {
	t, _, variant, err := decodeMeta(d)
	if err != nil {
		return BinOp{}, 0, err
	}
	bin, err := decodeBinWithVariant(d, variant)
	return bin, t, err
}

func decodeBinMetaMode(d reader) (BinOp, numeric.Type, byte, error) {
	t, mode, variant, err := decodeMeta(d)
	if err != nil {
		return BinOp{}, 0, 0, err
	}
	bin, err := decodeBinWithVariant(d, variant)
	return bin, t, mode, err
}

func decodeUnMeta(d reader) (UnOp, numeric.Type, error) {
	t, _, variant, err := decodeMeta(d)
	if err != nil {
		return UnOp{}, 0, err
	}
	un, err := decodeUnWithVariant(d, variant)
	return un, t, err
}

func decodeUnMetaMode(d reader) (UnOp, numeric.Type, byte, error) {
	t, mode, variant, err := decodeMeta(d)
	if err != nil {
		return UnOp{}, 0, 0, err
	}
	un, err := decodeUnWithVariant(d, variant)
	return un, t, mode, err
}

func decodeBinWithVariant(d reader, variant Variant) (BinOp, error) {
	x, err := decodeOperand(d)
	if err != nil {
		return BinOp{}, err
	}
	y, err := decodeOperand(d)
	if err != nil {
		return BinOp{}, err
	}
	bin := NewBinOp(x, y)
	switch variant {
	case VariantNone:
		return bin, nil
	case VariantFirst:
		off, err := decodeOperand(d)
		if err != nil {
			return BinOp{}, err
		}
		return bin.WithXOffset(off), nil
	case VariantSecond:
		off, err := decodeOperand(d)
		if err != nil {
			return BinOp{}, err
		}
		return bin.WithYOffset(off), nil
	default: // VariantBoth
		xoff, err := decodeOperand(d)
		if err != nil {
			return BinOp{}, err
		}
		yoff, err := decodeOperand(d)
		if err != nil {
			return BinOp{}, err
		}
		return bin.WithXOffset(xoff).WithYOffset(yoff), nil
	}
}

func decodeUnWithVariant(d reader, variant Variant) (UnOp, error) {
	x, err := decodeOperand(d)
	if err != nil {
		return UnOp{}, err
	}
	un := NewUnOp(x)
	switch variant {
	case VariantNone:
		return un, nil
	case VariantFirst:
		off, err := decodeOperand(d)
		if err != nil {
			return UnOp{}, err
		}
		return un.WithOffset(off), nil
	default:
		return UnOp{}, ErrIncorrectVariant
	}
}

const (
	sizeBits       byte = 0b0000_1111
	kindBits       byte = 0b0111_0000
	longOperandBit byte = 0b1000_0000
)

// decodeOperand reads one Operand: a short-form single byte (a Loc value
// 0..0x7F), Emp (the long-form meta byte alone, no payload), or a long form
// naming its kind and a little-endian value of 1..sizeof(UWord) bytes.
func decodeOperand(d reader) (Operand, error) {
	meta, err := d.readByte()
	if err != nil {
		return Operand{}, err
	}
	if meta&longOperandBit == 0 {
		return Operand{Kind: Loc, Value: word.UWord(meta &^ longOperandBit)}, nil
	}

	kind, err := ParseKind((meta & kindBits) >> 4)
	if err != nil {
		return Operand{}, err
	}
	if kind == Emp {
		return Operand{Kind: Emp}, nil
	}

	n := int(meta&sizeBits) + 1
	raw, err := d.readN(n)
	if err != nil {
		return Operand{}, err
	}
	buf := make([]byte, word.Bits/8)
	copy(buf, raw)
	value := numeric.FromLEBytes[word.UWord](buf)
	return Operand{Kind: kind, Value: value}, nil
}
