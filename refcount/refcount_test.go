package refcount

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newCounts() *Counts {
	c := &Counts{}
	c.Init()
	return c
}

func TestCounts_Init(t *testing.T) {
	c := newCounts()
	assert.Equal(t, int64(1), c.Strong())
	assert.Equal(t, int64(0), c.Weak())
	assert.Equal(t, int64(1), c.Holds())
}

func TestCounts_Acquire_And_Release(t *testing.T) {
	c := newCounts()

	assert.Equal(t, true, c.TryAcquireStrong())
	assert.Equal(t, int64(2), c.Strong())

	assert.Equal(t, false, c.ReleaseStrong())
	assert.Equal(t, int64(1), c.Strong())

	assert.Equal(t, true, c.ReleaseStrong())
	assert.Equal(t, int64(0), c.Strong())
}

func TestCounts_TryAcquire_After_Zero(t *testing.T) {
	c := newCounts()
	c.ReleaseStrong()

	assert.Equal(t, false, c.TryAcquireStrong())
	assert.Equal(t, int64(0), c.Strong())
}

func TestCounts_Weak_Does_Not_Touch_Strong(t *testing.T) {
	c := newCounts()

	c.AcquireWeak()
	assert.Equal(t, int64(1), c.Strong())
	assert.Equal(t, int64(1), c.Weak())
	assert.Equal(t, int64(2), c.Holds())

	assert.Equal(t, false, c.ReleaseWeak())
	assert.Equal(t, int64(1), c.Strong())
	assert.Equal(t, int64(0), c.Weak())
	assert.Equal(t, int64(1), c.Holds())
}

func TestCounts_Strong_Released_Before_Weak(t *testing.T) {
	c := newCounts()
	c.AcquireWeak()

	assert.Equal(t, true, c.ReleaseStrong())
	assert.Equal(t, false, c.DropStrongHold())
	assert.Equal(t, int64(1), c.Holds())

	assert.Equal(t, true, c.ReleaseWeak())
	assert.Equal(t, int64(0), c.Holds())
}

func TestCounts_Weak_Released_Before_Strong(t *testing.T) {
	c := newCounts()
	c.AcquireWeak()

	assert.Equal(t, false, c.ReleaseWeak())

	assert.Equal(t, true, c.ReleaseStrong())
	assert.Equal(t, true, c.DropStrongHold())
}

func TestCounts_Release_Below_Zero_Panics(t *testing.T) {
	c := newCounts()
	c.ReleaseStrong()

	assert.Panics(t, func() {
		c.ReleaseStrong()
	})
	assert.Panics(t, func() {
		c.ReleaseWeak()
	})
}
