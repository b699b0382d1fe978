package interp

import (
	"nivm/codec"
	"nivm/files"
	"nivm/memory"
	"nivm/numeric"
	"nivm/word"
)

// VM is the interpreter's full mutable state: the function table it
// borrows immutably, its memory, program counter, call stack, and the
// single current-file handle.
type VM struct {
	Functions []Function
	Memory    *memory.Memory
	Files     *files.Files

	ProgramCounter word.UWord
	CallStack      []FunctionCall
	PreparedCall   bool
	ParameterPtr   word.UWord
}

// New constructs a VM over a fixed, immutable function table.
func New(functions []Function) *VM {
	return &VM{
		Functions: functions,
		Memory:    memory.New(),
		Files:     files.New(),
	}
}

// currentCallIndex resolves the index into CallStack of the executing
// frame, honoring the rule that while a call is prepared the executing
// frame is the one below the top (the caller), not the prepared frame
// itself.
func (vm *VM) currentCallIndex() (int, error) {
	n := len(vm.CallStack)
	if vm.PreparedCall {
		if n < 2 {
			return 0, ErrEndOfProgram
		}
		return n - 2, nil
	}
	if n < 1 {
		return 0, ErrEndOfProgram
	}
	return n - 1, nil
}

func (vm *VM) currentCall() (*FunctionCall, error) {
	i, err := vm.currentCallIndex()
	if err != nil {
		return nil, err
	}
	return &vm.CallStack[i], nil
}

func (vm *VM) currentFunction() (*Function, error) {
	call, err := vm.currentCall()
	if err != nil {
		return nil, err
	}
	if call.FuncIndex < 0 || call.FuncIndex >= len(vm.Functions) {
		return nil, ErrUnknownFunction
	}
	return &vm.Functions[call.FuncIndex], nil
}

// currentOp fetches the instruction at the program counter of the
// executing frame's function, failing with ErrEndOfProgram if the counter
// has left the function's bounds.
func (vm *VM) currentOp() (codec.Op, error) {
	fn, err := vm.currentFunction()
	if err != nil {
		return codec.Op{}, err
	}
	if int(vm.ProgramCounter) >= len(fn.Code) {
		return codec.Op{}, ErrEndOfProgram
	}
	return fn.Code[vm.ProgramCounter], nil
}

func wrap(addr, offset word.UWord) word.UWord { return addr + offset }

// resolveAddress turns an Operand's kind and word payload into a memory
// address, for the kinds that name one (Loc, Ind, Ret, Glb). Val and Ref
// do not name a memory address; Emp names nothing.
func (vm *VM) resolveAddress(op codec.Operand, base, retAddr word.UWord) (word.UWord, error) {
	switch op.Kind {
	case codec.Loc:
		return wrap(base, op.Value), nil
	case codec.Ind:
		inner := wrap(base, op.Value)
		raw, err := vm.Memory.GetBytes(inner, word.Bits/8)
		if err != nil {
			return 0, &MemoryError{Err: err}
		}
		return numeric.BytesToWord(raw), nil
	case codec.Ret:
		return wrap(retAddr, op.Value), nil
	case codec.Glb:
		return wrap(vm.Memory.GlobalBase(), op.Value), nil
	default:
		return 0, nil
	}
}

// readOperand evaluates an Operand's t-typed value as raw little-endian
// bytes, applying an optional address offset (itself evaluated as an
// operand, per the UnOp/BinOp offset mechanism).
func (vm *VM) readOperand(op codec.Operand, t numeric.Type, base, retAddr word.UWord, offsetVal word.UWord, hasOffset bool) ([]byte, error) {
	switch op.Kind {
	case codec.Val:
		return numeric.WordToBytes(op.Value, t.Size()), nil
	case codec.Ref:
		addr := wrap(base, op.Value)
		return numeric.WordToBytes(addr, t.Size()), nil
	case codec.Emp:
		return nil, &IncorrectOperationError{}
	default:
		addr, err := vm.resolveAddress(op, base, retAddr)
		if err != nil {
			return nil, err
		}
		if hasOffset {
			addr = wrap(addr, offsetVal)
		}
		raw, err := vm.Memory.GetBytes(addr, t.Size())
		if err != nil {
			return nil, &MemoryError{Err: err}
		}
		return raw, nil
	}
}

// writeOperand stores val (t.Size() little-endian bytes) through an
// Operand. Val, Ref, and Emp are not writable.
func (vm *VM) writeOperand(op codec.Operand, t numeric.Type, base, retAddr word.UWord, offsetVal word.UWord, hasOffset bool, val []byte) error {
	switch op.Kind {
	case codec.Val, codec.Ref, codec.Emp:
		return &IncorrectOperationError{}
	default:
		addr, err := vm.resolveAddress(op, base, retAddr)
		if err != nil {
			return err
		}
		if hasOffset {
			addr = wrap(addr, offsetVal)
		}
		if err := vm.Memory.SetBytes(addr, val); err != nil {
			return &MemoryError{Err: err}
		}
		return nil
	}
}

// evalOffset reads an offset Operand as a plain UWord value (offsets are
// always read with the Uw type — they name an address delta, not a typed
// numeric).
func (vm *VM) evalOffset(op codec.Operand, base, retAddr word.UWord) (word.UWord, error) {
	b, err := vm.readOperand(op, uwordType, base, retAddr, 0, false)
	if err != nil {
		return 0, err
	}
	return numeric.BytesToWord(numeric.ResizeLE(b, word.Bits/8)), nil
}

var uwordType = numeric.Uw

// readUn evaluates a UnOp's primary value, resolving its optional offset
// first.
func (vm *VM) readUn(un codec.UnOp, t numeric.Type, base, retAddr word.UWord) ([]byte, error) {
	if !un.HasOffset {
		return vm.readOperand(un.X, t, base, retAddr, 0, false)
	}
	off, err := vm.evalOffset(un.Offset, base, retAddr)
	if err != nil {
		return nil, err
	}
	return vm.readOperand(un.X, t, base, retAddr, off, true)
}

func (vm *VM) writeUn(un codec.UnOp, t numeric.Type, base, retAddr word.UWord, val []byte) error {
	if !un.HasOffset {
		return vm.writeOperand(un.X, t, base, retAddr, 0, false, val)
	}
	off, err := vm.evalOffset(un.Offset, base, retAddr)
	if err != nil {
		return err
	}
	return vm.writeOperand(un.X, t, base, retAddr, off, true, val)
}

// readBin evaluates a BinOp's x and y values, each resolving its own
// optional offset.
func (vm *VM) readBin(bin codec.BinOp, t numeric.Type, base, retAddr word.UWord) (x, y []byte, err error) {
	if bin.HasXOff {
		off, e := vm.evalOffset(bin.XOff, base, retAddr)
		if e != nil {
			return nil, nil, e
		}
		x, err = vm.readOperand(bin.X, t, base, retAddr, off, true)
	} else {
		x, err = vm.readOperand(bin.X, t, base, retAddr, 0, false)
	}
	if err != nil {
		return nil, nil, err
	}

	if bin.HasYOff {
		off, e := vm.evalOffset(bin.YOff, base, retAddr)
		if e != nil {
			return nil, nil, e
		}
		y, err = vm.readOperand(bin.Y, t, base, retAddr, off, true)
	} else {
		y, err = vm.readOperand(bin.Y, t, base, retAddr, 0, false)
	}
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

func (vm *VM) writeBinX(bin codec.BinOp, t numeric.Type, base, retAddr word.UWord, val []byte) error {
	if bin.HasXOff {
		off, err := vm.evalOffset(bin.XOff, base, retAddr)
		if err != nil {
			return err
		}
		return vm.writeOperand(bin.X, t, base, retAddr, off, true, val)
	}
	return vm.writeOperand(bin.X, t, base, retAddr, 0, false, val)
}

// passCondition implements the conditional-skip walk: advance pc past the
// chain of conditionals immediately following the current one, then past
// the first non-conditional instruction after the chain.
func (vm *VM) passCondition() error {
	start := vm.ProgramCounter
	for {
		vm.ProgramCounter++
		op, err := vm.currentOp()
		if err != nil {
			vm.ProgramCounter = start
			return err
		}
		if !op.Code.IsConditional() {
			vm.ProgramCounter++
			return nil
		}
	}
}
