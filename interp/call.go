package interp

import (
	"nivm/codec"
	"nivm/numeric"
	"nivm/word"
)

// PushFrame activates the named function as the bottommost call-stack
// entry, with no caller of its own. Used once, by the embedding driver, to
// start a program — App/Clf only ever prepare a frame on top of an
// already-active one, so the very first frame needs a separate entry
// point.
func (vm *VM) PushFrame(idx int) error {
	if idx < 0 || idx >= len(vm.Functions) {
		return ErrUnknownFunction
	}
	fn := &vm.Functions[idx]

	base := vm.Memory.StackLen()
	if err := vm.Memory.ExpandStack(fn.FrameSize); err != nil {
		return &MemoryError{Err: err}
	}

	vm.CallStack = append(vm.CallStack, FunctionCall{
		FuncIndex: idx,
		Base:      base,
		FrameSize: fn.FrameSize,
	})
	vm.ProgramCounter = 0
	return nil
}

// app implements App(fid): look up the named function, push a zero-filled
// frame sized to it, and mark a call as prepared. Not an early-return
// opcode — the caller still advances pc afterward.
func (vm *VM) app(fid word.UWord) error {
	idx := int(fid)
	if idx < 0 || idx >= len(vm.Functions) {
		return ErrUnknownFunction
	}
	fn := &vm.Functions[idx]

	base := vm.Memory.StackLen()
	if err := vm.Memory.ExpandStack(fn.FrameSize); err != nil {
		return &MemoryError{Err: err}
	}

	vm.CallStack = append(vm.CallStack, FunctionCall{
		FuncIndex: idx,
		Base:      base,
		FrameSize: fn.FrameSize,
	})
	vm.PreparedCall = true
	return nil
}

// par implements Par(un, type, mode): append one parameter past the end of
// the prepared frame, growing it by type.size() bytes, then advance
// parameter_ptr by that size. The destination is Loc(parameter_ptr +
// frame_size_of_prepared_frame), where the frame size is the function's
// declared FrameSize — parameters extend the frame App allocated rather
// than reusing space within it.
func (vm *VM) par(un codec.UnOp, t numeric.Type, mode codec.ParameterMode) error {
	if len(vm.CallStack) == 0 || !vm.PreparedCall {
		return ErrEndOfProgram
	}
	prepared := &vm.CallStack[len(vm.CallStack)-1]

	var srcBytes []byte
	if mode == codec.ParamSet {
		call, err := vm.currentCall()
		if err != nil {
			return err
		}
		b, err := vm.readUn(un, t, call.Base, call.RetAddress)
		if err != nil {
			return err
		}
		srcBytes = b
	}

	size := word.UWord(t.Size())
	dest := codec.Operand{Kind: codec.Loc, Value: vm.ParameterPtr + vm.Functions[prepared.FuncIndex].FrameSize}

	if err := vm.Memory.ExpandStack(size); err != nil {
		return &MemoryError{Err: err}
	}
	prepared.FrameSize += size

	switch mode {
	case codec.ParamSet:
		if err := vm.writeOperand(dest, t, prepared.Base, prepared.RetAddress, 0, false, srcBytes); err != nil {
			return err
		}
	case codec.ParamZer:
		if err := vm.writeOperand(dest, t, prepared.Base, prepared.RetAddress, 0, false, make([]byte, size)); err != nil {
			return err
		}
	case codec.ParamEmp:
		// the freshly expanded bytes are already zero; nothing more to write.
	}

	vm.ParameterPtr += size
	return nil
}

// clf implements Clf(retAddr): activate the prepared frame. Early return —
// the caller does not additionally advance pc.
func (vm *VM) clf(retAddr word.UWord) error {
	if len(vm.CallStack) == 0 || !vm.PreparedCall {
		return ErrEndOfProgram
	}
	top := &vm.CallStack[len(vm.CallStack)-1]
	top.RetAddress = retAddr
	top.RetPC = vm.ProgramCounter + 1
	vm.PreparedCall = false
	vm.ProgramCounter = 0
	vm.ParameterPtr = 0
	return nil
}

// ret implements Ret: pop the top frame, restore pc, and narrow the stack
// by the popped frame's size. Early return.
func (vm *VM) ret() error {
	if len(vm.CallStack) == 0 {
		return ErrEndOfProgram
	}
	top := vm.CallStack[len(vm.CallStack)-1]
	vm.CallStack = vm.CallStack[:len(vm.CallStack)-1]

	if err := vm.Memory.NarrowStack(top.FrameSize); err != nil {
		return &MemoryError{Err: err}
	}
	vm.ProgramCounter = top.RetPC
	return nil
}
