// Package sharedptr provides manually managed, reference counted ownership of byte regions.
//
// A Strong handle shares ownership of a resource: the resource destructor runs when the
// last Strong handle is released. A Weak handle observes a resource without keeping it
// alive and cannot be promoted to a Strong handle.
//
// Resources live in memory obtained from an alloc.Allocator, either in the same block as
// the controller (Combined, see New) or in a block of their own (Separate, see NewSeparate).
// The control block is returned to the allocator once no Strong and no Weak handle refer
// to it, so a Weak handle may outlive the resource but never the counters it reads.
package sharedptr

import (
	"errors"

	"go.uber.org/multierr"
)

var (
	// ErrOutOfMemory is returned when the controller block or the resource cannot be allocated.
	ErrOutOfMemory = errors.New("sharedptr: out of memory")
	// ErrInvalidState is returned by operations on a nil, released or moved-from handle.
	ErrInvalidState = errors.New("sharedptr: invalid handle state")
	// ErrInvalidSize ...
	ErrInvalidSize = errors.New("sharedptr: resource size must be positive")
	// ErrExpired is returned when reading through a Weak handle after the resource was destroyed.
	ErrExpired = errors.New("sharedptr: resource expired")
	// ErrCorruptedBlock is returned when a control block header no longer matches its controller.
	ErrCorruptedBlock = errors.New("sharedptr: corrupted control block")
)

// Destructor is called exactly once with the resource bytes, when the last Strong handle is released.
type Destructor func(resource []byte)

// AllocationMode ...
type AllocationMode uint32

const (
	// Combined places the resource at the tail of the controller block.
	Combined AllocationMode = 1
	// Separate allocates the resource independently of the controller block.
	Separate AllocationMode = 2
)

// String ...
func (m AllocationMode) String() string {
	switch m {
	case Combined:
		return "combined"
	case Separate:
		return "separate"
	default:
		return "unknown"
	}
}

// Releaser is implemented by Strong and Weak.
type Releaser interface {
	Release() error
}

// ReleaseAll releases every handle, continuing past failures.
func ReleaseAll(handles ...Releaser) error {
	var err error
	for _, h := range handles {
		err = multierr.Append(err, h.Release())
	}
	return err
}
