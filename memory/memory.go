// Package memory implements the paged memory subsystem: a stack page and a
// heap page behind one flat address space, with typed load/store,
// inter-page copy, zero-fill, compare, and intra-page overlapping memmove.
package memory

import (
	"errors"
	"fmt"

	"nivm/numeric"
	"nivm/word"
)

var (
	// ErrWrongRange is returned by Copy when the source range would wrap
	// past the end of the address space.
	ErrWrongRange = errors.New("wrong range")
	// ErrHeapAlreadyUsed is returned by ReserveGlobal once the heap is
	// non-empty.
	ErrHeapAlreadyUsed = errors.New("heap already used")
)

// PageOverflowError is returned when expanding a page would exceed its
// configured limit.
type PageOverflowError struct{ Page string }

func (e *PageOverflowError) Error() string { return fmt.Sprintf("%s page overflow", e.Page) }

// RangeUnderflowError is returned when narrowing a page by more bytes than
// it currently holds.
type RangeUnderflowError struct{ Page string }

func (e *RangeUnderflowError) Error() string { return fmt.Sprintf("%s range underflow", e.Page) }

// SegmentationFaultError is returned when a typed access falls outside the
// selected page.
type SegmentationFaultError struct {
	Addr word.UWord
	Size int
}

func (e *SegmentationFaultError) Error() string {
	return fmt.Sprintf("segmentation fault at %#x (size %d)", e.Addr, e.Size)
}

// page is a byte vector with a soft upper size limit, backing either the
// stack or the heap.
type page struct {
	name  string
	limit word.UWord
	bytes []byte
}

func newPage(name string, limit word.UWord) *page {
	return &page{name: name, limit: limit}
}

func (p *page) len() word.UWord { return word.UWord(len(p.bytes)) }

func (p *page) expand(size word.UWord) error {
	if p.len()+size > p.limit {
		return &PageOverflowError{Page: p.name}
	}
	p.bytes = append(p.bytes, make([]byte, size)...)
	return nil
}

func (p *page) narrow(size word.UWord) error {
	if size > p.len() {
		return &RangeUnderflowError{Page: p.name}
	}
	p.bytes = p.bytes[:p.len()-size]
	return nil
}

func (p *page) slice(addr word.UWord, size int) ([]byte, error) {
	end := addr + word.UWord(size)
	if end < addr || end > p.len() {
		return nil, &SegmentationFaultError{Addr: addr, Size: size}
	}
	return p.bytes[addr:end], nil
}

// Memory is the two-page address space: the stack page holds addresses
// below word.HeapBase, the heap page holds addresses at or above it.
type Memory struct {
	stack      *page
	heap       *page
	globalBase word.UWord
	globalSet  bool
}

// New constructs an empty Memory using the default stack/heap limits (see
// word.DefaultStackLimit / word.DefaultHeapLimit).
func New() *Memory {
	return NewWithLimits(word.DefaultStackLimit, word.DefaultHeapLimit)
}

// NewWithLimits constructs an empty Memory with explicit page limits.
func NewWithLimits(stackLimit, heapLimit word.UWord) *Memory {
	return &Memory{
		stack: newPage("stack", stackLimit),
		heap:  newPage("heap", heapLimit),
	}
}

// pageFor resolves an address to its page and page-relative offset.
func (m *Memory) pageFor(addr word.UWord) (*page, word.UWord) {
	if addr < word.HeapBase {
		return m.stack, addr
	}
	return m.heap, addr - word.HeapBase
}

// ExpandStack grows the stack page by size zero bytes, used when a
// FunctionCall frame is pushed.
func (m *Memory) ExpandStack(size word.UWord) error { return m.stack.expand(size) }

// NarrowStack shrinks the stack page by size bytes, used when a
// FunctionCall frame is popped.
func (m *Memory) NarrowStack(size word.UWord) error { return m.stack.narrow(size) }

// StackLen reports the current stack page length — a freshly pushed
// frame's base address.
func (m *Memory) StackLen() word.UWord { return m.stack.len() }

// Get performs a typed, size-exact load at addr.
func Get[T numeric.Primary](m *Memory, addr word.UWord) (T, error) {
	p, off := m.pageFor(addr)
	b, err := p.slice(off, numeric.SizeOf[T]())
	if err != nil {
		return numeric.Zero[T](), err
	}
	return numeric.FromLEBytes[T](b), nil
}

// Set performs a typed, size-exact store at addr.
func Set[T numeric.Primary](m *Memory, addr word.UWord, v T) error {
	p, off := m.pageFor(addr)
	b, err := p.slice(off, numeric.SizeOf[T]())
	if err != nil {
		return err
	}
	copy(b, numeric.ToLEBytes(v))
	return nil
}

// Update is Set(addr, f(Get(addr))) with a single range check per side.
func Update[T numeric.Primary](m *Memory, addr word.UWord, f func(T) T) error {
	v, err := Get[T](m, addr)
	if err != nil {
		return err
	}
	return Set(m, addr, f(v))
}

// GetBytes loads size raw bytes at addr — used by the interpreter's typed
// dispatch, which resolves the numeric.Type itself and only needs the raw
// little-endian payload.
func (m *Memory) GetBytes(addr word.UWord, size int) ([]byte, error) {
	p, off := m.pageFor(addr)
	b, err := p.slice(off, size)
	if err != nil {
		return nil, err
	}
	out := make([]byte, size)
	copy(out, b)
	return out, nil
}

// SetBytes stores the little-endian payload v at addr, exactly len(v)
// bytes.
func (m *Memory) SetBytes(addr word.UWord, v []byte) error {
	p, off := m.pageFor(addr)
	b, err := p.slice(off, len(v))
	if err != nil {
		return err
	}
	copy(b, v)
	return nil
}

// SetZeros fills size bytes at addr with zero.
func (m *Memory) SetZeros(addr word.UWord, size int) error {
	p, off := m.pageFor(addr)
	b, err := p.slice(off, size)
	if err != nil {
		return err
	}
	for i := range b {
		b[i] = 0
	}
	return nil
}

// Compare reports whether the size-byte ranges at a and b are equal.
func (m *Memory) Compare(a, b word.UWord, size int) (bool, error) {
	pa, oa := m.pageFor(a)
	ba, err := pa.slice(oa, size)
	if err != nil {
		return false, err
	}
	pb, ob := m.pageFor(b)
	bb, err := pb.slice(ob, size)
	if err != nil {
		return false, err
	}
	for i := range ba {
		if ba[i] != bb[i] {
			return false, nil
		}
	}
	return true, nil
}

// Copy moves size bytes from src to dest. Same-page copies use an
// overlapping-safe memmove; cross-page copies fetch disjoint slices first.
func (m *Memory) Copy(dest, src word.UWord, size word.UWord) error {
	end := src + size
	if end < src {
		return ErrWrongRange
	}

	srcPage, srcOff := m.pageFor(src)
	destPage, destOff := m.pageFor(dest)

	if srcPage == destPage {
		s, err := srcPage.slice(srcOff, int(size))
		if err != nil {
			return err
		}
		d, err := destPage.slice(destOff, int(size))
		if err != nil {
			return err
		}
		copy(d, s)
		return nil
	}

	s, err := srcPage.slice(srcOff, int(size))
	if err != nil {
		return err
	}
	tmp := make([]byte, size)
	copy(tmp, s)

	d, err := destPage.slice(destOff, int(size))
	if err != nil {
		return err
	}
	copy(d, tmp)
	return nil
}

// ReserveGlobal extends the heap by size zero bytes, reserving that whole
// prefix for Glb-addressed globals. The heap must be empty.
func (m *Memory) ReserveGlobal(size word.UWord) error {
	if m.heap.len() != 0 {
		return ErrHeapAlreadyUsed
	}
	if err := m.heap.expand(size); err != nil {
		return err
	}
	m.globalBase = size
	m.globalSet = true
	return nil
}

// GlobalBase reports the address a Glb(0) operand resolves to: the start
// of the reserved heap prefix, i.e. word.HeapBase itself.
func (m *Memory) GlobalBase() word.UWord { return word.HeapBase }
