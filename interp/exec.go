package interp

import (
	"errors"

	"nivm/codec"
	"nivm/numeric"
	"nivm/word"
)

// Status reports what kind of non-error outcome a Step produced.
type Status int

const (
	StatusOK Status = iota
	StatusEnd
	StatusSleep
)

// StepResult is the non-error outcome of one Step call.
type StepResult struct {
	Status Status
	Code   word.UWord
}

// Step executes exactly one instruction and returns. No error advances the
// program counter; the caller may inspect ProgramCounter/CallStack and
// decide whether to retry, skip, or abort.
func (vm *VM) Step() (StepResult, error) {
	op, err := vm.currentOp()
	if err != nil {
		return StepResult{}, err
	}

	call, err := vm.currentCall()
	if err != nil {
		return StepResult{}, err
	}
	base, retAddr := call.Base, call.RetAddress

	res, err := vm.dispatch(op, base, retAddr)
	if err == nil {
		vm.ProgramCounter++
		return res, nil
	}
	if err == errEarlyReturn {
		return res, nil
	}
	var incorrect *IncorrectOperationError
	if errors.As(err, &incorrect) {
		incorrect.Op = op
	}
	return res, err
}

func (vm *VM) addressOperand(op codec.Operand, base, retAddr word.UWord) (word.UWord, error) {
	switch op.Kind {
	case codec.Loc, codec.Ind, codec.Ret, codec.Glb:
		return vm.resolveAddress(op, base, retAddr)
	default:
		return 0, &IncorrectOperationError{}
	}
}

func (vm *VM) readWord(op codec.Operand, base, retAddr word.UWord) (word.UWord, error) {
	b, err := vm.readOperand(op, numeric.Uw, base, retAddr, 0, false)
	if err != nil {
		return 0, err
	}
	return numeric.BytesToWord(numeric.ResizeLE(b, word.Bits/8)), nil
}

// dispatch performs op's effect. Opcodes that set the program counter
// themselves (Go, the false branch of a conditional via passCondition,
// Clf, Ret) return early with a sentinel so Step knows not to add 1; every
// other opcode falls through to Step's pc++ on success.
func (vm *VM) dispatch(op codec.Op, base, retAddr word.UWord) (StepResult, error) {
	ok := StepResult{Status: StatusOK}

	switch op.Code {
	case codec.Nop:
		return ok, nil

	case codec.End:
		code, err := vm.readWord(op.A, base, retAddr)
		if err != nil {
			return StepResult{}, err
		}
		return StepResult{Status: StatusEnd, Code: code}, nil

	case codec.Slp:
		code, err := vm.readWord(op.A, base, retAddr)
		if err != nil {
			return StepResult{}, err
		}
		return StepResult{Status: StatusSleep, Code: code}, nil

	case codec.Set:
		return ok, vm.execSet(op, base, retAddr)

	case codec.Cnv:
		return ok, vm.execCnv(op, base, retAddr)

	case codec.Add:
		return ok, vm.execArith(op, base, retAddr, numeric.Add)
	case codec.Sub:
		return ok, vm.execArith(op, base, retAddr, numeric.Sub)
	case codec.Mul:
		return ok, vm.execArith(op, base, retAddr, numeric.Mul)

	case codec.Div:
		return ok, vm.execDivMod(op, base, retAddr, true)
	case codec.Mod:
		return ok, vm.execDivMod(op, base, retAddr, false)

	case codec.Shl:
		return ok, vm.execShift(op, base, retAddr, true)
	case codec.Shr:
		return ok, vm.execShift(op, base, retAddr, false)

	case codec.And:
		return ok, vm.execBitwiseBin(op, base, retAddr, numeric.And)
	case codec.Or:
		return ok, vm.execBitwiseBin(op, base, retAddr, numeric.Or)
	case codec.Xor:
		return ok, vm.execBitwiseBin(op, base, retAddr, numeric.Xor)
	case codec.Not:
		return ok, vm.execNot(op, base, retAddr)

	case codec.Neg:
		return ok, vm.execUnaryArith(op, base, retAddr, numeric.Neg)
	case codec.Inc:
		return ok, vm.execUnaryArith(op, base, retAddr, numeric.Inc)
	case codec.Dec:
		return ok, vm.execUnaryArith(op, base, retAddr, numeric.Dec)

	case codec.Go:
		target, err := vm.readWord(op.A, base, retAddr)
		if err != nil {
			return StepResult{}, err
		}
		vm.ProgramCounter = target
		return StepResult{}, errEarlyReturn

	case codec.Ift, codec.Iff, codec.Ife, codec.Ifl, codec.Ifg,
		codec.Ine, codec.Inl, codec.Ing,
		codec.Ifa, codec.Ifo, codec.Ifx, codec.Ina, codec.Ino, codec.Inx:
		return vm.execConditional(op, base, retAddr)

	case codec.App:
		fid, err := vm.readWord(op.A, base, retAddr)
		if err != nil {
			return StepResult{}, err
		}
		return ok, vm.app(fid)

	case codec.Par:
		return ok, vm.par(op.Un, op.Type, op.PMode)

	case codec.Clf:
		retAddrVal, err := vm.readWord(op.A, base, retAddr)
		if err != nil {
			return StepResult{}, err
		}
		if err := vm.clf(retAddrVal); err != nil {
			return StepResult{}, err
		}
		return StepResult{}, errEarlyReturn

	case codec.Ret:
		if err := vm.ret(); err != nil {
			return StepResult{}, err
		}
		return StepResult{}, errEarlyReturn

	case codec.In:
		return ok, vm.execIn(op, base, retAddr)
	case codec.Out:
		return ok, vm.execOut(op, base, retAddr)
	case codec.Fls:
		if err := vm.Files.Flush(); err != nil {
			return StepResult{}, err
		}
		return ok, nil

	case codec.Opn:
		return ok, vm.execOpn(op, base, retAddr)
	case codec.Cls:
		return ok, vm.execCls(op, base, retAddr)
	case codec.Sfd:
		return ok, vm.execSfd(op, base, retAddr)
	case codec.Gfd:
		return ok, vm.execGfd(op, base, retAddr)

	case codec.Zer:
		return ok, vm.execZer(op, base, retAddr)
	case codec.Cmp:
		return vm.execCmp(op, base, retAddr)
	case codec.Cpy:
		return ok, vm.execCpy(op, base, retAddr)

	default:
		return StepResult{}, ErrUnknownFunction
	}
}

// errEarlyReturn is a private sentinel Step recognizes to mean "this
// instruction already advanced the program counter itself" — it is never
// surfaced to Step's caller.
var errEarlyReturn = &earlyReturn{}

type earlyReturn struct{}

func (*earlyReturn) Error() string { return "" }
