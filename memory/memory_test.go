package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nivm/word"
)

func TestStackExpandNarrowAndGetSet(t *testing.T) {
	m := New()
	require.NoError(t, m.ExpandStack(8))
	require.Equal(t, word.UWord(8), m.StackLen())

	require.NoError(t, Set[uint32](m, 0, 0xCAFEBABE))
	v, err := Get[uint32](m, 0)
	require.NoError(t, err)
	require.Equal(t, uint32(0xCAFEBABE), v)

	require.NoError(t, m.NarrowStack(4))
	require.Equal(t, word.UWord(4), m.StackLen())
}

func TestNarrowPastZeroUnderflows(t *testing.T) {
	m := New()
	require.NoError(t, m.ExpandStack(4))
	require.Error(t, m.NarrowStack(8))
}

func TestHeapAddressingAndGlobalBase(t *testing.T) {
	m := New()
	require.NoError(t, m.ReserveGlobal(8))
	require.Equal(t, word.HeapBase, m.GlobalBase())

	require.NoError(t, Set[uint8](m, m.GlobalBase()+4, 0x7F))
	v, err := Get[uint8](m, m.GlobalBase()+4)
	require.NoError(t, err)
	require.Equal(t, uint8(0x7F), v)
}

func TestReserveGlobalTwiceFails(t *testing.T) {
	m := New()
	require.NoError(t, m.ReserveGlobal(4))
	require.ErrorIs(t, m.ReserveGlobal(4), ErrHeapAlreadyUsed)
}

func TestOutOfRangeIsSegfault(t *testing.T) {
	m := New()
	require.NoError(t, m.ExpandStack(4))
	_, err := Get[uint32](m, 100)
	require.Error(t, err)
}

func TestCopySamePageOverlap(t *testing.T) {
	m := New()
	require.NoError(t, m.ExpandStack(8))
	require.NoError(t, m.SetBytes(0, []byte{1, 2, 3, 4, 5, 6}))
	require.NoError(t, m.Copy(2, 0, 4)) // overlapping forward copy

	got, err := m.GetBytes(0, 8)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 1, 2, 3, 4, 0, 0}, got)
}

func TestCopyCrossPage(t *testing.T) {
	m := New()
	require.NoError(t, m.ExpandStack(4))
	require.NoError(t, m.ReserveGlobal(4))
	require.NoError(t, m.SetBytes(0, []byte{9, 9, 9, 9}))
	require.NoError(t, m.Copy(m.GlobalBase(), 0, 4))

	got, err := m.GetBytes(m.GlobalBase(), 4)
	require.NoError(t, err)
	require.Equal(t, []byte{9, 9, 9, 9}, got)
}

func TestCompare(t *testing.T) {
	m := New()
	require.NoError(t, m.ExpandStack(8))
	require.NoError(t, m.SetBytes(0, []byte{1, 2, 3, 4}))
	require.NoError(t, m.SetBytes(4, []byte{1, 2, 3, 4}))

	eq, err := m.Compare(0, 4, 4)
	require.NoError(t, err)
	require.True(t, eq)

	require.NoError(t, m.SetBytes(4, []byte{1, 2, 3, 5}))
	eq, err = m.Compare(0, 4, 4)
	require.NoError(t, err)
	require.False(t, eq)
}

func TestSetZeros(t *testing.T) {
	m := New()
	require.NoError(t, m.ExpandStack(4))
	require.NoError(t, m.SetBytes(0, []byte{1, 2, 3, 4}))
	require.NoError(t, m.SetZeros(0, 4))

	got, err := m.GetBytes(0, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0}, got)
}
