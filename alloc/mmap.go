package alloc

import (
	"fmt"
	"sync"

	"modernc.org/memory"
)

// Mmap allocates outside of the Go heap, backed by modernc.org/memory.
type Mmap struct {
	mu        sync.Mutex
	allocator memory.Allocator
	closed    bool
}

var _ Allocator = &Mmap{}

var (
	defaultAllocator     *Mmap
	defaultAllocatorOnce sync.Once
)

// Default returns the process wide mmap allocator.
func Default() Allocator {
	defaultAllocatorOnce.Do(func() {
		defaultAllocator = NewMmap()
	})
	return defaultAllocator
}

// NewMmap ...
func NewMmap() *Mmap {
	return &Mmap{}
}

// Malloc ...
func (m *Mmap) Malloc(size int) ([]byte, error) {
	return m.alloc(size, m.allocator.Malloc)
}

// Calloc ...
func (m *Mmap) Calloc(size int) ([]byte, error) {
	return m.alloc(size, m.allocator.Calloc)
}

func (m *Mmap) alloc(size int, fn func(size int) ([]byte, error)) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, fmt.Errorf("%w: allocator closed", ErrOutOfMemory)
	}

	b, err := fn(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	}
	return b[:size:size], nil
}

// Free ...
func (m *Mmap) Free(b []byte) error {
	if cap(b) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrInvalidPointer
	}
	return m.allocator.Free(b)
}

// Close unmaps every page the allocator still holds. Regions handed out before are invalid afterwards.
func (m *Mmap) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	return m.allocator.Close()
}
