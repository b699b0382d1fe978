//go:build word64

package word

// UWord is the VM's unsigned machine word: the type of every address.
type UWord = uint64

// IWord is the VM's signed machine word, backing the Iw numeric type.
type IWord = int64

// Bits is the machine word width in bits.
const Bits = 64

// HeapBase is the first heap address; addresses below it are stack.
const HeapBase UWord = 1 << (Bits / 2)

// DefaultStackLimit is the stack page's soft upper size, per spec §4.2.
const DefaultStackLimit UWord = 1 << (Bits / 3)

// DefaultHeapLimit is the heap page's soft upper size, per spec §4.2.
const DefaultHeapLimit UWord = 1 << (Bits / 2)
