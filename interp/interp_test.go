package interp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nivm/codec"
	"nivm/files"
	"nivm/numeric"
	"nivm/word"
)

func runToEnd(t *testing.T, vm *VM) StepResult {
	t.Helper()
	for i := 0; i < 1000; i++ {
		res, err := vm.Step()
		require.NoError(t, err)
		if res.Status == StatusEnd {
			return res
		}
	}
	t.Fatal("runToEnd: exceeded step budget without hitting End")
	return StepResult{}
}

func TestSetThenEnd(t *testing.T) {
	fn := Function{
		FrameSize: 4,
		Code: []codec.Op{
			{Code: codec.Set, Bin: codec.NewBinOp(codec.NewLoc(0), codec.NewVal(42)), Type: numeric.U32},
			{Code: codec.End, A: codec.NewLoc(0)},
		},
	}
	vm := New([]Function{fn})
	require.NoError(t, vm.PushFrame(0))

	res := runToEnd(t, vm)
	require.Equal(t, word.UWord(42), res.Code)
}

func TestConditionalSkipsBothItselfAndFollowingInstruction(t *testing.T) {
	fn := Function{
		FrameSize: 4,
		Code: []codec.Op{
			// Ift proceeds only when the operand is nonzero; Val(0) is
			// zero, so this conditional fails and skips index 1.
			{Code: codec.Ift, Un: codec.NewUnOp(codec.NewVal(0)), Type: numeric.U32},
			{Code: codec.Set, Bin: codec.NewBinOp(codec.NewLoc(0), codec.NewVal(111)), Type: numeric.U32},
			{Code: codec.Set, Bin: codec.NewBinOp(codec.NewLoc(0), codec.NewVal(222)), Type: numeric.U32},
			{Code: codec.End, A: codec.NewLoc(0)},
		},
	}
	vm := New([]Function{fn})
	require.NoError(t, vm.PushFrame(0))

	res := runToEnd(t, vm)
	require.Equal(t, word.UWord(222), res.Code)
}

func TestConditionalTruePassesThrough(t *testing.T) {
	fn := Function{
		FrameSize: 4,
		Code: []codec.Op{
			{Code: codec.Ift, Un: codec.NewUnOp(codec.NewVal(1)), Type: numeric.U32},
			{Code: codec.Set, Bin: codec.NewBinOp(codec.NewLoc(0), codec.NewVal(111)), Type: numeric.U32},
			{Code: codec.End, A: codec.NewLoc(0)},
		},
	}
	vm := New([]Function{fn})
	require.NoError(t, vm.PushFrame(0))

	res := runToEnd(t, vm)
	require.Equal(t, word.UWord(111), res.Code)
}

// TestCallProtocol exercises App/Par/Clf/Ret end to end: a caller pushes a
// value into a locally-declared slot, calls a callee with no declared
// locals of its own (FrameSize 0), and the callee copies its one appended
// parameter into global memory before returning. The caller then reads
// that global directly, proving the effect survived the callee's frame
// being popped and that Par's appended-parameter addressing (destination
// Loc(parameter_ptr + frame_size_of_prepared_frame)) lines up with what
// the callee sees at Loc(0).
func TestCallProtocol(t *testing.T) {
	callee := Function{
		FrameSize: 0,
		Code: []codec.Op{
			{Code: codec.Set, Bin: codec.NewBinOp(codec.NewGlb(0), codec.NewLoc(0)), Type: numeric.U32},
			{Code: codec.Ret},
		},
	}
	caller := Function{
		FrameSize: 4,
		Code: []codec.Op{
			{Code: codec.Set, Bin: codec.NewBinOp(codec.NewLoc(0), codec.NewVal(99)), Type: numeric.U32},
			{Code: codec.App, A: codec.NewVal(0)},
			{Code: codec.Par, Un: codec.NewUnOp(codec.NewLoc(0)), Type: numeric.U32, PMode: codec.ParamSet},
			{Code: codec.Clf, A: codec.NewVal(0)},
			{Code: codec.End, A: codec.NewGlb(0)},
		},
	}

	vm := New([]Function{callee, caller})
	require.NoError(t, vm.Memory.ReserveGlobal(4))
	require.NoError(t, vm.PushFrame(1))

	res := runToEnd(t, vm)
	require.Equal(t, word.UWord(99), res.Code)
}

// TestCallProtocolWithCalleeLocals checks that a callee with its own
// declared locals still finds its appended parameter past those locals,
// not colliding with them.
func TestCallProtocolWithCalleeLocals(t *testing.T) {
	callee := Function{
		// One U32 local at Loc(0); the appended parameter lands at Loc(4).
		FrameSize: 4,
		Code: []codec.Op{
			{Code: codec.Set, Bin: codec.NewBinOp(codec.NewLoc(0), codec.NewLoc(4)), Type: numeric.U32},
			{Code: codec.Set, Bin: codec.NewBinOp(codec.NewGlb(0), codec.NewLoc(0)), Type: numeric.U32},
			{Code: codec.Ret},
		},
	}
	caller := Function{
		FrameSize: 4,
		Code: []codec.Op{
			{Code: codec.Set, Bin: codec.NewBinOp(codec.NewLoc(0), codec.NewVal(7)), Type: numeric.U32},
			{Code: codec.App, A: codec.NewVal(0)},
			{Code: codec.Par, Un: codec.NewUnOp(codec.NewLoc(0)), Type: numeric.U32, PMode: codec.ParamSet},
			{Code: codec.Clf, A: codec.NewVal(0)},
			{Code: codec.End, A: codec.NewGlb(0)},
		},
	}

	vm := New([]Function{callee, caller})
	require.NoError(t, vm.Memory.ReserveGlobal(4))
	require.NoError(t, vm.PushFrame(1))

	res := runToEnd(t, vm)
	require.Equal(t, word.UWord(7), res.Code)
}

func TestHandModeOverflowLeavesDestinationUntouched(t *testing.T) {
	fn := Function{
		FrameSize: 1,
		Code: []codec.Op{
			{Code: codec.Set, Bin: codec.NewBinOp(codec.NewLoc(0), codec.NewVal(250)), Type: numeric.U8},
			{Code: codec.Add, Bin: codec.NewBinOp(codec.NewLoc(0), codec.NewVal(250)), Type: numeric.U8, AMode: numeric.Hand},
		},
	}
	vm := New([]Function{fn})
	require.NoError(t, vm.PushFrame(0))

	_, err := vm.Step() // Set
	require.NoError(t, err)

	_, err = vm.Step() // Add, traps
	require.ErrorIs(t, err, ErrOperationOverflow)

	raw, err := vm.Memory.GetBytes(0, 1)
	require.NoError(t, err)
	require.Equal(t, byte(250), raw[0])
}

func TestDivisionByZeroLeavesDestinationUntouched(t *testing.T) {
	fn := Function{
		FrameSize: 4,
		Code: []codec.Op{
			{Code: codec.Set, Bin: codec.NewBinOp(codec.NewLoc(0), codec.NewVal(123)), Type: numeric.U32},
			{Code: codec.Div, Bin: codec.NewBinOp(codec.NewLoc(0), codec.NewVal(0)), Type: numeric.U32},
		},
	}
	vm := New([]Function{fn})
	require.NoError(t, vm.PushFrame(0))

	_, err := vm.Step()
	require.NoError(t, err)

	_, err = vm.Step()
	require.ErrorIs(t, err, ErrDivisionByZero)

	raw, err := vm.Memory.GetBytes(0, 4)
	require.NoError(t, err)
	require.Equal(t, word.UWord(123), numeric.BytesToWord(numeric.ResizeLE(raw, word.Bits/8)))
}

func TestFilesInOutOpnCls(t *testing.T) {
	fn := Function{
		// Loc(0..3) holds the opened file's index; Loc(4..7) holds the
		// byte read back — kept apart so one write can't clobber the other.
		FrameSize: 8,
		Code: []codec.Op{
			{Code: codec.Opn, A: codec.NewLoc(0)},
			{Code: codec.Sfd, A: codec.NewLoc(0)},
			{Code: codec.Out, Un: codec.NewUnOp(codec.NewVal('h'))},
			{Code: codec.Out, Un: codec.NewUnOp(codec.NewVal('i'))},
			{Code: codec.In, Un: codec.NewUnOp(codec.NewLoc(4))},
			{Code: codec.Cls, A: codec.NewLoc(0)},
			{Code: codec.End, A: codec.NewLoc(4)},
		},
	}
	vm := New([]Function{fn})
	require.NoError(t, vm.PushFrame(0))

	res := runToEnd(t, vm)
	require.Equal(t, word.UWord('h'), res.Code)
}

func TestGfdReportsCurrent(t *testing.T) {
	vm := New(nil)
	idx, err := vm.Files.Open(files.NewBuffer(files.ModeReadWrite))
	require.NoError(t, err)
	require.NoError(t, vm.Files.SetCurrent(idx))

	fn := Function{FrameSize: 4, Code: []codec.Op{
		{Code: codec.Gfd, A: codec.NewLoc(0)},
		{Code: codec.End, A: codec.NewLoc(0)},
	}}
	vm.Functions = []Function{fn}
	require.NoError(t, vm.PushFrame(0))

	res := runToEnd(t, vm)
	require.Equal(t, idx, res.Code)
}

func TestZerCmpCpy(t *testing.T) {
	fn := Function{
		FrameSize: 12,
		Code: []codec.Op{
			{Code: codec.Set, Bin: codec.NewBinOp(codec.NewLoc(0), codec.NewVal(0xDEADBEEF)), Type: numeric.U32},
			{Code: codec.Cpy, A: codec.NewLoc(4), B: codec.NewLoc(0), C: codec.NewVal(4)},
			// equal ranges: fall through without skipping.
			{Code: codec.Cmp, A: codec.NewLoc(0), B: codec.NewLoc(4), C: codec.NewVal(4)},
			{Code: codec.Zer, A: codec.NewLoc(8), B: codec.NewVal(4)},
			{Code: codec.End, A: codec.NewLoc(8)},
		},
	}
	vm := New([]Function{fn})
	require.NoError(t, vm.PushFrame(0))

	res := runToEnd(t, vm)
	require.Equal(t, word.UWord(0), res.Code)
}

func TestCmpMismatchSkips(t *testing.T) {
	fn := Function{
		FrameSize: 12,
		Code: []codec.Op{
			{Code: codec.Set, Bin: codec.NewBinOp(codec.NewLoc(0), codec.NewVal(1)), Type: numeric.U32},
			{Code: codec.Set, Bin: codec.NewBinOp(codec.NewLoc(4), codec.NewVal(2)), Type: numeric.U32},
			{Code: codec.Cmp, A: codec.NewLoc(0), B: codec.NewLoc(4), C: codec.NewVal(4)},
			{Code: codec.Set, Bin: codec.NewBinOp(codec.NewLoc(8), codec.NewVal(111)), Type: numeric.U32},
			{Code: codec.Set, Bin: codec.NewBinOp(codec.NewLoc(8), codec.NewVal(222)), Type: numeric.U32},
			{Code: codec.End, A: codec.NewLoc(8)},
		},
	}
	vm := New([]Function{fn})
	require.NoError(t, vm.PushFrame(0))

	res := runToEnd(t, vm)
	require.Equal(t, word.UWord(222), res.Code)
}

// TestGCDViaGlobalAccumulator computes gcd(48, 18) via repeated recursive
// calls, exercising the full call stack (App/Par/Clf/Ret) across several
// nested activations. The result is delivered through a global rather than
// a return value: Ret restores the caller's frame and program counter
// only, carrying no result slot of its own, so a real program communicates
// a result through a global or an out-parameter the way this one does.
func TestGCDViaGlobalAccumulator(t *testing.T) {
	// gcd(a, b): a at Loc(0), b at Loc(4).
	//   if b == 0: global = a; return
	//   else: a, b = b, a mod b; call gcd(a, b); return
	gcdFn := Function{
		// No declared locals: both appended parameters land at Loc(0)/Loc(4).
		FrameSize: 0,
		Code: []codec.Op{
			{Code: codec.Ife, Bin: codec.NewBinOp(codec.NewLoc(4), codec.NewVal(0)), Type: numeric.U32}, // 0: b == 0?
			{Code: codec.Go, A: codec.NewVal(8)},                                                        // 1: yes -> base case
			{Code: codec.Mod, Bin: codec.NewBinOp(codec.NewLoc(0), codec.NewLoc(4)), Type: numeric.U32},  // 2: a = a mod b
			{Code: codec.App, A: codec.NewVal(0)},                                                        // 3
			{Code: codec.Par, Un: codec.NewUnOp(codec.NewLoc(4)), Type: numeric.U32, PMode: codec.ParamSet}, // 4: new a = old b
			{Code: codec.Par, Un: codec.NewUnOp(codec.NewLoc(0)), Type: numeric.U32, PMode: codec.ParamSet}, // 5: new b = a mod b
			{Code: codec.Clf, A: codec.NewVal(0)}, // 6
			{Code: codec.Ret},                     // 7: this frame's own return, once the recursive call unwinds
			{Code: codec.Set, Bin: codec.NewBinOp(codec.NewGlb(0), codec.NewLoc(0)), Type: numeric.U32}, // 8: base case
			{Code: codec.Ret}, // 9
		},
	}

	main := Function{
		FrameSize: 8,
		Code: []codec.Op{
			{Code: codec.Set, Bin: codec.NewBinOp(codec.NewLoc(0), codec.NewVal(48)), Type: numeric.U32},
			{Code: codec.Set, Bin: codec.NewBinOp(codec.NewLoc(4), codec.NewVal(18)), Type: numeric.U32},
			{Code: codec.App, A: codec.NewVal(0)},
			{Code: codec.Par, Un: codec.NewUnOp(codec.NewLoc(0)), Type: numeric.U32, PMode: codec.ParamSet},
			{Code: codec.Par, Un: codec.NewUnOp(codec.NewLoc(4)), Type: numeric.U32, PMode: codec.ParamSet},
			{Code: codec.Clf, A: codec.NewVal(0)},
			{Code: codec.End, A: codec.NewGlb(0)},
		},
	}

	vm := New([]Function{gcdFn, main})
	require.NoError(t, vm.Memory.ReserveGlobal(4))
	require.NoError(t, vm.PushFrame(1))

	res := runToEnd(t, vm)
	require.Equal(t, word.UWord(6), res.Code) // gcd(48, 18) == 6
}
