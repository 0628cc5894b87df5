// Package refcount implements the counting protocol shared by strong and weak handles.
//
// A Counts value tracks three numbers: live strong references, live weak references
// and holders of the control block. Every weak reference holds the block, and all
// strong references together hold it once, so the block outlives the resource for as
// long as a weak reference can still look at it.
package refcount

import (
	"fmt"

	"go.uber.org/atomic"
)

// Counts ...
type Counts struct {
	strong atomic.Int64
	weak   atomic.Int64
	holds  atomic.Int64
}

// Init sets the counts for a freshly created controller: one strong reference and no weak ones.
func (c *Counts) Init() {
	c.strong.Store(1)
	c.weak.Store(0)
	c.holds.Store(1)
}

// Strong ...
func (c *Counts) Strong() int64 {
	return c.strong.Load()
}

// Weak ...
func (c *Counts) Weak() int64 {
	return c.weak.Load()
}

// Holds ...
func (c *Counts) Holds() int64 {
	return c.holds.Load()
}

// TryAcquireStrong adds a strong reference unless the strong count already reached zero.
func (c *Counts) TryAcquireStrong() bool {
	for {
		last := c.strong.Load()
		if last == 0 {
			return false
		}
		if c.strong.CompareAndSwap(last, last+1) {
			return true
		}
	}
}

// ReleaseStrong returns true when the released reference was the last strong one.
func (c *Counts) ReleaseStrong() bool {
	n := c.strong.Dec()
	if n < 0 {
		panic(fmt.Sprintf("refcount: strong count below zero: %d", n))
	}
	return n == 0
}

// AcquireWeak ...
func (c *Counts) AcquireWeak() {
	c.holds.Inc()
	c.weak.Inc()
}

// ReleaseWeak returns true when the control block has no holders left.
func (c *Counts) ReleaseWeak() bool {
	n := c.weak.Dec()
	if n < 0 {
		panic(fmt.Sprintf("refcount: weak count below zero: %d", n))
	}
	return c.dropHold()
}

// DropStrongHold gives up the hold owned by the strong references as a group.
// Must be called once, after ReleaseStrong returned true.
func (c *Counts) DropStrongHold() bool {
	return c.dropHold()
}

func (c *Counts) dropHold() bool {
	n := c.holds.Dec()
	if n < 0 {
		panic(fmt.Sprintf("refcount: hold count below zero: %d", n))
	}
	return n == 0
}
