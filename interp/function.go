package interp

import (
	"nivm/codec"
	"nivm/word"
)

// Function is one immutable, pre-decoded instruction sequence plus the
// fixed frame size every activation of it reserves on the stack.
type Function struct {
	Code      []codec.Op
	FrameSize word.UWord
}

// FunctionCall is one activation record on the call stack.
type FunctionCall struct {
	FuncIndex  int
	Base       word.UWord
	RetAddress word.UWord
	RetPC      word.UWord
	FrameSize  word.UWord
}
