// Package alloc provides the allocators that back controller blocks and resources.
//
// Memory handed out by an Allocator must not hold Go pointers: the mmap allocator
// returns regions the garbage collector never scans.
package alloc

import "errors"

var (
	// ErrOutOfMemory ...
	ErrOutOfMemory = errors.New("alloc: out of memory")
	// ErrInvalidSize ...
	ErrInvalidSize = errors.New("alloc: invalid size")
	// ErrInvalidPointer ...
	ErrInvalidPointer = errors.New("alloc: pointer was not allocated by this allocator")
)

//go:generate moq -out ../alloc_mocks_test.go -pkg sharedptr . Allocator

// Allocator hands out fixed size byte regions. Implementations must be safe for concurrent use.
type Allocator interface {
	// Malloc returns size bytes of uninitialized memory.
	Malloc(size int) ([]byte, error)

	// Calloc returns size bytes of zeroed memory.
	Calloc(size int) ([]byte, error)

	// Free returns a region obtained from Malloc or Calloc. Freeing an empty slice is a no-op.
	Free(b []byte) error
}
