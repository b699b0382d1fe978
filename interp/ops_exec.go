package interp

import (
	"nivm/codec"
	"nivm/files"
	"nivm/numeric"
	"nivm/word"
)

func (vm *VM) execSet(op codec.Op, base, retAddr word.UWord) error {
	bin := op.Bin
	var yb []byte
	var err error
	if bin.HasYOff {
		off, e := vm.evalOffset(bin.YOff, base, retAddr)
		if e != nil {
			return e
		}
		yb, err = vm.readOperand(bin.Y, op.Type, base, retAddr, off, true)
	} else {
		yb, err = vm.readOperand(bin.Y, op.Type, base, retAddr, 0, false)
	}
	if err != nil {
		return err
	}
	return vm.writeBinX(bin, op.Type, base, retAddr, yb)
}

func (vm *VM) execCnv(op codec.Op, base, retAddr word.UWord) error {
	xb, err := vm.readOperand(op.A, op.Type, base, retAddr, 0, false)
	if err != nil {
		return err
	}
	yb := numeric.Convert(op.Type, op.Type2, xb)
	return vm.writeOperand(op.B, op.Type2, base, retAddr, 0, false, yb)
}

func (vm *VM) execArith(op codec.Op, base, retAddr word.UWord, fn func(numeric.ArithmeticMode, numeric.Type, []byte, []byte) numeric.Result) error {
	xb, yb, err := vm.readBin(op.Bin, op.Type, base, retAddr)
	if err != nil {
		return err
	}
	res := fn(op.AMode, op.Type, xb, yb)
	if res.Trapped {
		return ErrOperationOverflow
	}
	return vm.writeBinX(op.Bin, res.ResultType, base, retAddr, res.Bytes)
}

func (vm *VM) execUnaryArith(op codec.Op, base, retAddr word.UWord, fn func(numeric.ArithmeticMode, numeric.Type, []byte) numeric.Result) error {
	xb, err := vm.readUn(op.Un, op.Type, base, retAddr)
	if err != nil {
		return err
	}
	res := fn(op.AMode, op.Type, xb)
	if res.Trapped {
		return ErrOperationOverflow
	}
	return vm.writeUn(op.Un, res.ResultType, base, retAddr, res.Bytes)
}

func (vm *VM) execDivMod(op codec.Op, base, retAddr word.UWord, isDiv bool) error {
	xb, yb, err := vm.readBin(op.Bin, op.Type, base, retAddr)
	if err != nil {
		return err
	}
	var res numeric.Result
	var valid bool
	if isDiv {
		res, valid = numeric.Div(op.Type, xb, yb)
	} else {
		res, valid = numeric.Mod(op.Type, xb, yb)
	}
	if !valid {
		return ErrDivisionByZero
	}
	return vm.writeBinX(op.Bin, res.ResultType, base, retAddr, res.Bytes)
}

// execShift implements Shl/Shr. Unlike the other typed opcodes, the shift
// amount is always read as a bare U8, independent of op.Type.
func (vm *VM) execShift(op codec.Op, base, retAddr word.UWord, left bool) error {
	if op.Type.IsFloat() {
		return &IncorrectOperationError{Op: op}
	}
	xb, err := vm.readOperand(op.A, op.Type, base, retAddr, 0, false)
	if err != nil {
		return err
	}
	ab, err := vm.readOperand(op.B, numeric.U8, base, retAddr, 0, false)
	if err != nil {
		return err
	}
	var res numeric.Result
	if left {
		res = numeric.Shl(op.Type, xb, ab[0])
	} else {
		res = numeric.Shr(op.Type, xb, ab[0])
	}
	return vm.writeOperand(op.A, res.ResultType, base, retAddr, 0, false, res.Bytes)
}

func (vm *VM) execBitwiseBin(op codec.Op, base, retAddr word.UWord, fn func(numeric.Type, []byte, []byte) numeric.Result) error {
	if op.Type.IsFloat() {
		return &IncorrectOperationError{Op: op}
	}
	xb, yb, err := vm.readBin(op.Bin, op.Type, base, retAddr)
	if err != nil {
		return err
	}
	res := fn(op.Type, xb, yb)
	return vm.writeBinX(op.Bin, res.ResultType, base, retAddr, res.Bytes)
}

func (vm *VM) execNot(op codec.Op, base, retAddr word.UWord) error {
	if op.Type.IsFloat() {
		return &IncorrectOperationError{Op: op}
	}
	xb, err := vm.readUn(op.Un, op.Type, base, retAddr)
	if err != nil {
		return err
	}
	res := numeric.Not(op.Type, xb)
	return vm.writeUn(op.Un, res.ResultType, base, retAddr, res.Bytes)
}

// execConditional evaluates one of the fourteen predicate opcodes and
// either falls through (predicate true) or walks past the conditional
// chain via passCondition (predicate false).
func (vm *VM) execConditional(op codec.Op, base, retAddr word.UWord) (StepResult, error) {
	var proceed bool

	switch op.Code {
	case codec.Ift, codec.Iff:
		xb, err := vm.readUn(op.Un, op.Type, base, retAddr)
		if err != nil {
			return StepResult{}, err
		}
		zero := numeric.IsZero(op.Type, xb)
		proceed = zero == (op.Code == codec.Iff)

	case codec.Ifa, codec.Ifo, codec.Ifx, codec.Ina, codec.Ino, codec.Inx:
		if op.Type.IsFloat() {
			return StepResult{}, &IncorrectOperationError{Op: op}
		}
		xb, yb, err := vm.readBin(op.Bin, op.Type, base, retAddr)
		if err != nil {
			return StepResult{}, err
		}
		var bitOp byte
		switch op.Code {
		case codec.Ifa, codec.Ina:
			bitOp = 'a'
		case codec.Ifo, codec.Ino:
			bitOp = 'o'
		default:
			bitOp = 'x'
		}
		zero := numeric.BitwiseZero(op.Type, xb, yb, bitOp)
		negated := op.Code == codec.Ina || op.Code == codec.Ino || op.Code == codec.Inx
		proceed = zero == negated

	default:
		xb, yb, err := vm.readBin(op.Bin, op.Type, base, retAddr)
		if err != nil {
			return StepResult{}, err
		}
		cmp := numeric.Compare(op.Type, xb, yb)
		switch op.Code {
		case codec.Ife:
			proceed = cmp == 0
		case codec.Ine:
			proceed = cmp != 0
		case codec.Ifl:
			proceed = cmp < 0
		case codec.Inl:
			proceed = cmp >= 0
		case codec.Ifg:
			proceed = cmp > 0
		case codec.Ing:
			proceed = cmp <= 0
		}
	}

	if proceed {
		return StepResult{Status: StatusOK}, nil
	}
	if err := vm.passCondition(); err != nil {
		return StepResult{}, err
	}
	return StepResult{}, errEarlyReturn
}

func (vm *VM) execIn(op codec.Op, base, retAddr word.UWord) error {
	val, gotByte, err := vm.Files.Read()
	if err != nil {
		return err
	}
	if !gotByte {
		return nil
	}
	return vm.writeUn(op.Un, numeric.U8, base, retAddr, []byte{val})
}

func (vm *VM) execOut(op codec.Op, base, retAddr word.UWord) error {
	xb, err := vm.readUn(op.Un, numeric.U8, base, retAddr)
	if err != nil {
		return err
	}
	return vm.Files.Write(xb[0])
}

// execOpn opens a new in-memory, read-write file and writes its table index
// into A.
func (vm *VM) execOpn(op codec.Op, base, retAddr word.UWord) error {
	idx, err := vm.Files.Open(files.NewBuffer(files.ModeReadWrite))
	if err != nil {
		return err
	}
	return vm.writeOperand(op.A, numeric.Uw, base, retAddr, 0, false, numeric.WordToBytes(idx, word.Bits/8))
}

func (vm *VM) execCls(op codec.Op, base, retAddr word.UWord) error {
	idx, err := vm.readWord(op.A, base, retAddr)
	if err != nil {
		return err
	}
	_, err = vm.Files.Close(idx)
	return err
}

func (vm *VM) execSfd(op codec.Op, base, retAddr word.UWord) error {
	idx, err := vm.readWord(op.A, base, retAddr)
	if err != nil {
		return err
	}
	return vm.Files.SetCurrent(idx)
}

func (vm *VM) execGfd(op codec.Op, base, retAddr word.UWord) error {
	idx, err := vm.Files.Current()
	if err != nil {
		return err
	}
	return vm.writeOperand(op.A, numeric.Uw, base, retAddr, 0, false, numeric.WordToBytes(idx, word.Bits/8))
}

func (vm *VM) execZer(op codec.Op, base, retAddr word.UWord) error {
	addr, err := vm.addressOperand(op.A, base, retAddr)
	if err != nil {
		return err
	}
	size, err := vm.readWord(op.B, base, retAddr)
	if err != nil {
		return err
	}
	if err := vm.Memory.SetZeros(addr, int(size)); err != nil {
		return &MemoryError{Err: err}
	}
	return nil
}

// execCmp treats byte-range equality as a fifteenth conditional predicate.
func (vm *VM) execCmp(op codec.Op, base, retAddr word.UWord) (StepResult, error) {
	addrA, err := vm.addressOperand(op.A, base, retAddr)
	if err != nil {
		return StepResult{}, err
	}
	addrB, err := vm.addressOperand(op.B, base, retAddr)
	if err != nil {
		return StepResult{}, err
	}
	size, err := vm.readWord(op.C, base, retAddr)
	if err != nil {
		return StepResult{}, err
	}
	equal, err := vm.Memory.Compare(addrA, addrB, int(size))
	if err != nil {
		return StepResult{}, &MemoryError{Err: err}
	}
	if equal {
		return StepResult{Status: StatusOK}, nil
	}
	if err := vm.passCondition(); err != nil {
		return StepResult{}, err
	}
	return StepResult{}, errEarlyReturn
}

func (vm *VM) execCpy(op codec.Op, base, retAddr word.UWord) error {
	dest, err := vm.addressOperand(op.A, base, retAddr)
	if err != nil {
		return err
	}
	src, err := vm.addressOperand(op.B, base, retAddr)
	if err != nil {
		return err
	}
	size, err := vm.readWord(op.C, base, retAddr)
	if err != nil {
		return err
	}
	if err := vm.Memory.Copy(dest, src, size); err != nil {
		return &MemoryError{Err: err}
	}
	return nil
}
