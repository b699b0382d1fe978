//go:build !word64

// Package word fixes the VM's machine-word width at build time.
//
// The default build uses 32-bit words; compiling with -tags word64 switches
// every address, Uw/Iw numeric type, and the derived memory limits below to
// 64 bits. Exactly one of word32.go / word64.go is compiled into any given
// binary.
package word

// UWord is the VM's unsigned machine word: the type of every address.
type UWord = uint32

// IWord is the VM's signed machine word, backing the Iw numeric type.
type IWord = int32

// Bits is the machine word width in bits.
const Bits = 32

// HeapBase is the first heap address; addresses below it are stack.
const HeapBase UWord = 1 << (Bits / 2)

// DefaultStackLimit is the stack page's soft upper size, per spec §4.2.
const DefaultStackLimit UWord = 1 << (Bits / 3)

// DefaultHeapLimit is the heap page's soft upper size, per spec §4.2.
const DefaultHeapLimit UWord = 1 << (Bits / 2)
