package alloc

import (
	"sync"
	"unsafe"
)

const alignmentBytes = 8
const alignmentBytesMinusOne = alignmentBytes - 1

// Buffer allocates memory in a preallocated buffer. Freed regions are not reused,
// which makes the point of exhaustion predictable.
type Buffer struct {
	mu sync.Mutex

	buffer        []byte
	firstFreeByte int
	live          map[int]int
}

var _ Allocator = &Buffer{}

// NewBuffer creates a new buffer allocator over buf, whose length must be a multiple of 8.
func NewBuffer(buf []byte) (*Buffer, error) {
	if len(buf) == 0 || len(buf)&alignmentBytesMinusOne != 0 {
		return nil, ErrInvalidSize
	}
	return &Buffer{
		buffer: buf,
		live:   map[int]int{},
	}, nil
}

// Malloc ...
func (b *Buffer) Malloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.firstFreeByte+size > len(b.buffer) {
		return nil, ErrOutOfMemory
	}

	p := b.firstFreeByte
	b.firstFreeByte += size

	// Ensure alignment
	if b.firstFreeByte&alignmentBytesMinusOne != 0 {
		b.firstFreeByte += alignmentBytes
		b.firstFreeByte &= ^alignmentBytesMinusOne
	}

	b.live[p] = size
	return b.buffer[p : p+size : p+size], nil
}

// Calloc ...
func (b *Buffer) Calloc(size int) ([]byte, error) {
	mem, err := b.Malloc(size)
	if err != nil {
		return nil, err
	}
	for i := range mem {
		mem[i] = 0
	}
	return mem, nil
}

// Free ...
func (b *Buffer) Free(mem []byte) error {
	if cap(mem) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	pos, ok := b.offsetOf(mem)
	if !ok {
		return ErrInvalidPointer
	}
	if _, existed := b.live[pos]; !existed {
		return ErrInvalidPointer
	}
	delete(b.live, pos)
	return nil
}

// Used returns the number of bytes consumed so far, including alignment padding.
func (b *Buffer) Used() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.firstFreeByte
}

// Live returns the number of regions allocated and not yet freed.
func (b *Buffer) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.live)
}

func (b *Buffer) offsetOf(mem []byte) (int, bool) {
	base := uintptr(unsafe.Pointer(&b.buffer[0]))
	p := uintptr(unsafe.Pointer(&mem[:1][0]))
	if p < base || p >= base+uintptr(len(b.buffer)) {
		return 0, false
	}
	return int(p - base), true
}
