package files

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenAssignsSequentialSlotsAndSkipsCurrent(t *testing.T) {
	f := New()

	idx0, err := f.Open(NewBuffer(ModeReadWrite))
	require.NoError(t, err)
	require.Equal(t, uint32(0), uint32(idx0))

	require.NoError(t, f.SetCurrent(idx0))

	idx1, err := f.Open(NewBuffer(ModeWriteOnly))
	require.NoError(t, err)
	require.Equal(t, uint32(1), uint32(idx1))

	_, err = f.Close(idx0)
	require.NoError(t, err)

	// idx0's slot is free again, and it is no longer current.
	idx2, err := f.Open(NewBuffer(ModeReadWrite))
	require.NoError(t, err)
	require.Equal(t, uint32(0), uint32(idx2))
}

func TestCloseCurrentClearsCurrent(t *testing.T) {
	f := New()
	idx, err := f.Open(NewBuffer(ModeReadWrite))
	require.NoError(t, err)
	require.NoError(t, f.SetCurrent(idx))

	_, err = f.Close(idx)
	require.NoError(t, err)

	_, err = f.Current()
	require.ErrorIs(t, err, ErrCurrentIsNotSet)
}

func TestReadWriteThroughCurrent(t *testing.T) {
	f := New()
	idx, err := f.Open(NewBuffer(ModeReadWrite))
	require.NoError(t, err)
	require.NoError(t, f.SetCurrent(idx))

	require.NoError(t, f.Write('h'))
	require.NoError(t, f.Write('i'))

	b, ok, err := f.Read()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, byte('h'), b)

	b, ok, err = f.Read()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, byte('i'), b)

	_, ok, err = f.Read()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestWriteOnlyRejectsRead(t *testing.T) {
	f := New()
	idx, err := f.Open(NewBuffer(ModeWriteOnly))
	require.NoError(t, err)
	require.NoError(t, f.SetCurrent(idx))

	_, _, err = f.Read()
	require.ErrorIs(t, err, ErrReadingNotAvailable)
}

func TestNoCurrentRejectsIO(t *testing.T) {
	f := New()
	require.ErrorIs(t, f.Write('x'), ErrCurrentIsNotSet)
	_, _, err := f.Read()
	require.ErrorIs(t, err, ErrCurrentIsNotSet)
}

func TestCloseUnknownIndexIsNotFound(t *testing.T) {
	f := New()
	_, err := f.Close(5)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSetCurrentUnknownIndexIsNotFound(t *testing.T) {
	f := New()
	require.ErrorIs(t, f.SetCurrent(5), ErrNotFound)
}

func TestLimitExceeded(t *testing.T) {
	f := New()
	for i := 0; i < Limit; i++ {
		_, err := f.Open(NewBuffer(ModeWriteOnly))
		require.NoError(t, err)
	}
	_, err := f.Open(NewBuffer(ModeWriteOnly))
	require.ErrorIs(t, err, ErrLimitExceeded)
}
