package alloc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuangTung97/sharedptr/alloc"
)

func TestBuffer_Create(t *testing.T) {
	ba, err := alloc.NewBuffer(make([]byte, 1024*1024))
	require.NoError(t, err)
	require.NotNil(t, ba)

	_, err = alloc.NewBuffer(make([]byte, 1024*1024+1))
	assert.Equal(t, alloc.ErrInvalidSize, err)

	_, err = alloc.NewBuffer(nil)
	assert.Equal(t, alloc.ErrInvalidSize, err)
}

func TestBuffer_Allocate(t *testing.T) {
	totalSpace := 1024 * 1024
	ba, err := alloc.NewBuffer(make([]byte, totalSpace))
	require.NoError(t, err)

	b, err := ba.Malloc(1024)
	require.NoError(t, err)
	assert.Equal(t, 1024, len(b))
	assert.Equal(t, 1024, cap(b))

	_, err = ba.Malloc(totalSpace - 100)
	assert.Equal(t, alloc.ErrOutOfMemory, err)

	_, err = ba.Malloc(totalSpace - 2048)
	assert.NoError(t, err)
}

func TestBuffer_Allocate_Invalid_Size(t *testing.T) {
	ba, err := alloc.NewBuffer(make([]byte, 64))
	require.NoError(t, err)

	_, err = ba.Malloc(0)
	assert.Equal(t, alloc.ErrInvalidSize, err)

	_, err = ba.Calloc(-1)
	assert.Equal(t, alloc.ErrInvalidSize, err)
}

func TestBuffer_Alignment(t *testing.T) {
	ba, err := alloc.NewBuffer(make([]byte, 64))
	require.NoError(t, err)

	_, err = ba.Malloc(3)
	require.NoError(t, err)
	assert.Equal(t, 8, ba.Used())

	_, err = ba.Malloc(8)
	require.NoError(t, err)
	assert.Equal(t, 16, ba.Used())
}

func TestBuffer_Calloc_Zeroes(t *testing.T) {
	raw := make([]byte, 64)
	for i := range raw {
		raw[i] = 0xff
	}
	ba, err := alloc.NewBuffer(raw)
	require.NoError(t, err)

	b, err := ba.Calloc(16)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 16), b)
}

func TestBuffer_Allocate_Deallocate(t *testing.T) {
	ba, err := alloc.NewBuffer(make([]byte, 4096))
	require.NoError(t, err)

	var ps [][]byte
	for i := 0; i < 10; i++ {
		p, err := ba.Malloc(128)
		require.NoError(t, err)
		ps = append(ps, p)
	}
	assert.Equal(t, 10, ba.Live())

	assert.NoError(t, ba.Free(ps[1]))
	assert.NoError(t, ba.Free(ps[0]))
	assert.Equal(t, 8, ba.Live())

	assert.Equal(t, alloc.ErrInvalidPointer, ba.Free(ps[0]))
	assert.Equal(t, alloc.ErrInvalidPointer, ba.Free(make([]byte, 8)))
	assert.NoError(t, ba.Free(nil))
}
