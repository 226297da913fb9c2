package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaStoreLoad(t *testing.T) {
	var a Arena
	require.NoError(t, a.Store(0, 42))
	require.NoError(t, a.Store(8, -7))

	v, err := a.Load(0)
	require.NoError(t, err)
	assert.EqualValues(t, 42, v)

	v, err = a.Load(8)
	require.NoError(t, err)
	assert.EqualValues(t, -7, v)
}

func TestArenaByteAccess(t *testing.T) {
	var a Arena
	require.NoError(t, a.StoreByte(3, 'x'))
	b, err := a.LoadByte(3)
	require.NoError(t, err)
	assert.Equal(t, byte('x'), b)
}

func TestArenaOutOfRange(t *testing.T) {
	var a Arena
	_, err := a.Load(0)
	assert.Error(t, err)
}

func TestArenaLimit(t *testing.T) {
	var a Arena
	a.SetLimit(16)
	require.NoError(t, a.Grow(16))
	err := a.Grow(17)
	require.Error(t, err)
	var limErr *LimitError
	assert.ErrorAs(t, err, &limErr)
}

func TestArenaMoveOverlap(t *testing.T) {
	var a Arena
	require.NoError(t, a.WriteAt(0, []byte("abcdef")))
	require.NoError(t, a.Move(2, 0, 4))
	b, err := a.Bytes(0, 6)
	require.NoError(t, err)
	assert.Equal(t, "ababcd", string(b))
}

func TestArenaFill(t *testing.T) {
	var a Arena
	require.NoError(t, a.Fill(0, 4, '*'))
	b, err := a.Bytes(0, 4)
	require.NoError(t, err)
	assert.Equal(t, "****", string(b))
}

func TestArenaClone(t *testing.T) {
	var a Arena
	require.NoError(t, a.WriteAt(0, []byte("hello world")))
	clone := a.Clone(5)
	b, err := clone.Bytes(0, 5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	// mutating the original past the clone point must not affect the clone
	require.NoError(t, a.StoreByte(0, 'X'))
	b, _ = clone.Bytes(0, 1)
	assert.Equal(t, byte('h'), b[0])
}
