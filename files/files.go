// Package files implements the fixed-size file table the interpreter's
// In/Out/Fls/Opn/Cls/Sfd/Gfd opcodes operate on: at most one "current" file
// receives every I/O instruction, selected by index.
package files

import (
	"errors"

	"nivm/word"
)

// Limit is the fixed number of file slots.
const Limit = 64

var (
	ErrReadingNotAvailable = errors.New("reading not available")
	ErrWritingNotAvailable = errors.New("writing not available")
	ErrCurrentIsNotSet     = errors.New("current is not set")
	ErrLimitExceeded       = errors.New("limit exceeded")
	ErrNotFound            = errors.New("not found")
)

// File is anything the table can hold: a byte sink, source, or both.
// Read's second return reports whether a byte was available (an empty
// source reports ok=false without error, mirroring an EOF-like read).
type File interface {
	Read() (val byte, ok bool, err error)
	Write(val byte) error
	Flush() error
}

// Mode restricts which of Read/Write a Buffer accepts, matching the
// source's split between a write-only sink (Vec<u8>) and a read/write
// queue (VecDeque<u8>).
type Mode byte

const (
	// ModeWriteOnly accepts Write only; Read always fails.
	ModeWriteOnly Mode = 0
	// ModeReadWrite accepts both Read and Write, FIFO ordered.
	ModeReadWrite Mode = 1
)

// Buffer is an in-memory File: a byte sink (ModeWriteOnly) or a FIFO byte
// queue (ModeReadWrite).
type Buffer struct {
	mode Mode
	buf  []byte
}

// NewBuffer constructs an empty Buffer in the given mode.
func NewBuffer(mode Mode) *Buffer { return &Buffer{mode: mode} }

func (b *Buffer) Read() (byte, bool, error) {
	if b.mode != ModeReadWrite {
		return 0, false, ErrReadingNotAvailable
	}
	if len(b.buf) == 0 {
		return 0, false, nil
	}
	val := b.buf[0]
	b.buf = b.buf[1:]
	return val, true, nil
}

func (b *Buffer) Write(val byte) error {
	b.buf = append(b.buf, val)
	return nil
}

func (b *Buffer) Flush() error { return nil }

// Files is the fixed 64-slot file table with at most one current entry.
type Files struct {
	slots   []File
	count   int
	current int // -1 when unset
}

// New constructs an empty Files table.
func New() *Files {
	return &Files{current: -1}
}

// Open installs f in the first free slot (skipping the current slot, which
// is logically occupied even though Go doesn't need to evict it from slots
// the way an ownership-checked implementation would), returning its index.
func (f *Files) Open(file File) (word.UWord, error) {
	if f.count == Limit {
		return 0, ErrLimitExceeded
	}

	for i, s := range f.slots {
		if s == nil && i != f.current {
			f.slots[i] = file
			f.count++
			return word.UWord(i), nil
		}
	}

	f.slots = append(f.slots, file)
	f.count++
	return word.UWord(len(f.slots) - 1), nil
}

// Close removes and returns the file at idx, clearing it as current if it
// was current.
func (f *Files) Close(idx word.UWord) (File, error) {
	i := int(idx)
	if i == f.current {
		file := f.slots[i]
		f.slots[i] = nil
		f.current = -1
		f.count--
		return file, nil
	}
	if i < 0 || i >= len(f.slots) || f.slots[i] == nil {
		return nil, ErrNotFound
	}
	file := f.slots[i]
	f.slots[i] = nil
	f.count--
	return file, nil
}

// SetCurrent selects the file at idx as current.
func (f *Files) SetCurrent(idx word.UWord) error {
	i := int(idx)
	if i < 0 || i >= len(f.slots) || f.slots[i] == nil {
		return ErrNotFound
	}
	f.current = i
	return nil
}

// Current reports the index of the current file.
func (f *Files) Current() (word.UWord, error) {
	if f.current < 0 {
		return 0, ErrCurrentIsNotSet
	}
	return word.UWord(f.current), nil
}

func (f *Files) currentFile() (File, error) {
	if f.current < 0 {
		return nil, ErrCurrentIsNotSet
	}
	return f.slots[f.current], nil
}

// Read reads one byte from the current file. ok is false when the file is
// empty (not an error).
func (f *Files) Read() (val byte, ok bool, err error) {
	file, err := f.currentFile()
	if err != nil {
		return 0, false, err
	}
	return file.Read()
}

// Write writes one byte to the current file.
func (f *Files) Write(val byte) error {
	file, err := f.currentFile()
	if err != nil {
		return err
	}
	return file.Write(val)
}

// Flush flushes the current file.
func (f *Files) Flush() error {
	file, err := f.currentFile()
	if err != nil {
		return err
	}
	return file.Flush()
}
