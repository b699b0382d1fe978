// Command nivm loads one or more pre-assembled bytecode files and runs them
// on the interpreter. There is no assembler here — each input file is
// already a stream of encoded instructions (see codec.Decode); the first
// file named is function 0, the program's entry point.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"nivm/codec"
	"nivm/files"
	"nivm/interp"
	"nivm/word"
)

var (
	debugVM    = flag.Bool("debug", false, "single-step and print state before every instruction")
	frameSizes = flag.String("frame-sizes", "", "comma-separated stack frame size per input file, in bytes")
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: nivm [-debug] [-frame-sizes n,n,...] file [file...]")
		os.Exit(1)
	}

	functions, err := loadFunctions(flag.Args(), *frameSizes)
	if err != nil {
		fmt.Fprintln(os.Stderr, "nivm:", err)
		os.Exit(1)
	}

	vm := interp.New(functions)

	stdio := &stdioFile{in: bufio.NewReader(os.Stdin), out: bufio.NewWriter(os.Stdout)}
	idx, err := vm.Files.Open(stdio)
	if err != nil {
		fmt.Fprintln(os.Stderr, "nivm:", err)
		os.Exit(1)
	}
	if err := vm.Files.SetCurrent(idx); err != nil {
		fmt.Fprintln(os.Stderr, "nivm:", err)
		os.Exit(1)
	}

	if err := vm.PushFrame(0); err != nil {
		fmt.Fprintln(os.Stderr, "nivm:", err)
		os.Exit(1)
	}

	for {
		if *debugVM {
			printState(vm)
		}
		res, err := vm.Step()
		if err != nil {
			stdio.out.Flush()
			fmt.Fprintln(os.Stderr, "nivm:", err)
			os.Exit(1)
		}
		switch res.Status {
		case interp.StatusEnd:
			stdio.out.Flush()
			os.Exit(int(res.Code))
		case interp.StatusSleep:
			// no real scheduler to yield to; treat as a no-op pause
		}
	}
}

func printState(vm *interp.VM) {
	fmt.Fprintf(os.Stderr, "pc=%d calls=%d\n", vm.ProgramCounter, len(vm.CallStack))
}

// loadFunctions reads each named file as a back-to-back stream of encoded
// instructions, one Function per file, in argument order.
func loadFunctions(paths []string, sizesFlag string) ([]interp.Function, error) {
	sizes, err := parseFrameSizes(sizesFlag, len(paths))
	if err != nil {
		return nil, err
	}

	fns := make([]interp.Function, len(paths))
	for i, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		ops, err := decodeAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		fns[i] = interp.Function{Code: ops, FrameSize: sizes[i]}
	}
	return fns, nil
}

func decodeAll(r io.Reader) ([]codec.Op, error) {
	var ops []codec.Op
	for {
		op, err := codec.Decode(r)
		if err == io.EOF {
			return ops, nil
		}
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
}

func parseFrameSizes(flagVal string, n int) ([]word.UWord, error) {
	sizes := make([]word.UWord, n)
	if flagVal == "" {
		return sizes, nil
	}
	var idx int
	var cur word.UWord
	for _, r := range flagVal + "," {
		switch {
		case r >= '0' && r <= '9':
			cur = cur*10 + word.UWord(r-'0')
		case r == ',':
			if idx >= n {
				return nil, fmt.Errorf("too many -frame-sizes entries")
			}
			sizes[idx] = cur
			cur = 0
			idx++
		default:
			return nil, fmt.Errorf("invalid -frame-sizes value %q", flagVal)
		}
	}
	return sizes, nil
}

// stdioFile adapts process stdin/stdout to the files.File interface, wired
// in as the program's default current file the way the teacher VM wired
// stdin/stdout directly into its reader/writer pair.
type stdioFile struct {
	in  *bufio.Reader
	out *bufio.Writer
}

func (s *stdioFile) Read() (byte, bool, error) {
	b, err := s.in.ReadByte()
	if err == io.EOF {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return b, true, nil
}

func (s *stdioFile) Write(val byte) error {
	return s.out.WriteByte(val)
}

func (s *stdioFile) Flush() error {
	return s.out.Flush()
}

var _ files.File = (*stdioFile)(nil)
