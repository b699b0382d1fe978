package codec

import (
	"io"

	"nivm/numeric"
	"nivm/word"
)

type writer struct{ w io.Writer }

func (e writer) writeByte(b byte) error {
	n, err := e.w.Write([]byte{b})
	if err != nil {
		return &IOError{Err: err}
	}
	if n != 1 {
		return ErrShortWrite
	}
	return nil
}

func (e writer) write(b []byte) error {
	n, err := e.w.Write(b)
	if err != nil {
		return &IOError{Err: err}
	}
	if n != len(b) {
		return ErrShortWrite
	}
	return nil
}

// Encode writes op's length-minimal wire form to w.
func Encode(op Op, w io.Writer) error {
	e := writer{w: w}
	if err := e.writeByte(byte(op.Code)); err != nil {
		return err
	}
	return encodeBody(e, op)
}

func encodeBody(e writer, op Op) error {
	switch op.Code {
	case Nop, Fls:
		return nil
	case End, Slp, Go, App, Clf, Sfd, Gfd, Opn, Cls:
		return encodeOperand(e, op.A)
	case Set:
		return encodeBinMeta(e, op.Bin, op.Type, 0)
	case Cnv:
		if err := encodeTypePair(e, op.Type, op.Type2); err != nil {
			return err
		}
		if err := encodeOperand(e, op.A); err != nil {
			return err
		}
		return encodeOperand(e, op.B)
	case Add, Sub, Mul:
		return encodeBinMeta(e, op.Bin, op.Type, byte(op.AMode))
	case Div, Mod, And, Or, Xor, Ife, Ifl, Ifg, Ine, Inl, Ing, Ifa, Ifo, Ifx, Ina, Ino, Inx:
		return encodeBinMeta(e, op.Bin, op.Type, 0)
	case Shl, Shr:
		if err := e.writeByte(byte(op.Type)); err != nil {
			return err
		}
		if err := encodeOperand(e, op.A); err != nil {
			return err
		}
		return encodeOperand(e, op.B)
	case Not, Ift, Iff, Ret:
		return encodeUnMeta(e, op.Un, op.Type, 0)
	case Neg, Inc, Dec:
		return encodeUnMeta(e, op.Un, op.Type, byte(op.AMode))
	case Par:
		return encodeUnMeta(e, op.Un, op.Type, byte(op.PMode))
	case In, Out:
		return encodeUnMeta(e, op.Un, numeric.U8, 0)
	case Zer:
		if err := encodeOperand(e, op.A); err != nil {
			return err
		}
		return encodeOperand(e, op.B)
	case Cmp, Cpy:
		if err := encodeOperand(e, op.A); err != nil {
			return err
		}
		if err := encodeOperand(e, op.B); err != nil {
			return err
		}
		return encodeOperand(e, op.C)
	default:
		return ErrUnknownOpCode
	}
}

func encodeMeta(e writer, t numeric.Type, mode byte, variant Variant) error {
	meta := byte(variant)<<6 | mode<<4 | byte(t)
	return e.writeByte(meta)
}

func encodeTypePair(e writer, t, u numeric.Type) error {
	meta := byte(t) | byte(u)<<4
	return e.writeByte(meta)
}

func encodeBinMeta(e writer, bin BinOp, t numeric.Type, mode byte) error {
	if err := encodeMeta(e, t, mode, bin.Variant()); err != nil {
		return err
	}
	return encodeBin(e, bin)
}

func encodeUnMeta(e writer, un UnOp, t numeric.Type, mode byte) error {
	if err := encodeMeta(e, t, mode, un.Variant()); err != nil {
		return err
	}
	return encodeUn(e, un)
}

func encodeBin(e writer, bin BinOp) error {
	if err := encodeOperand(e, bin.X); err != nil {
		return err
	}
	if err := encodeOperand(e, bin.Y); err != nil {
		return err
	}
	if bin.HasXOff {
		if err := encodeOperand(e, bin.XOff); err != nil {
			return err
		}
	}
	if bin.HasYOff {
		if err := encodeOperand(e, bin.YOff); err != nil {
			return err
		}
	}
	return nil
}

func encodeUn(e writer, un UnOp) error {
	if err := encodeOperand(e, un.X); err != nil {
		return err
	}
	if un.HasOffset {
		return encodeOperand(e, un.Offset)
	}
	return nil
}

// encodeOperand writes the length-minimal form: a single byte for a Loc
// value that fits in 7 bits, otherwise the long form (kind + value, trimmed
// to the fewest bytes the value needs). Emp is the long form's meta byte
// alone, size bits zero, with no trailing payload — the source this is
// grounded on instead packs Emp's kind into an otherwise-short-form byte,
// which collides with a legitimate small Loc value and breaks
// decode(encode(Emp)) == Emp; this codec sets the long-form bit so Emp
// round-trips unambiguously.
func encodeOperand(e writer, op Operand) error {
	if op.Kind == Emp {
		return e.writeByte(longOperandBit | byte(Emp)<<4)
	}

	if op.Kind == Loc && op.Value <= word.UWord(^longOperandBit) {
		return e.writeByte(byte(op.Value))
	}

	full := numeric.ToLEBytes(op.Value)
	n := len(full)
	for n > 1 && full[n-1] == 0 {
		n--
	}

	meta := longOperandBit | byte(op.Kind)<<4 | byte(n-1)
	if err := e.writeByte(meta); err != nil {
		return err
	}
	return e.write(full[:n])
}
