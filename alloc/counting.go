package alloc

import "go.uber.org/atomic"

// Stats ...
type Stats struct {
	Allocs     int64 `json:"allocs"`
	Frees      int64 `json:"frees"`
	LiveBlocks int64 `json:"liveBlocks"`
	LiveBytes  int64 `json:"liveBytes"`
	Failures   int64 `json:"failures"`
}

// Counting wraps an Allocator and keeps statistics about the regions passing through it.
type Counting struct {
	next Allocator

	allocs    atomic.Int64
	frees     atomic.Int64
	liveBytes atomic.Int64
	failures  atomic.Int64
}

var _ Allocator = &Counting{}

// NewCounting ...
func NewCounting(next Allocator) *Counting {
	return &Counting{next: next}
}

// Malloc ...
func (c *Counting) Malloc(size int) ([]byte, error) {
	return c.record(c.next.Malloc(size))
}

// Calloc ...
func (c *Counting) Calloc(size int) ([]byte, error) {
	return c.record(c.next.Calloc(size))
}

func (c *Counting) record(b []byte, err error) ([]byte, error) {
	if err != nil {
		c.failures.Inc()
		return nil, err
	}
	c.allocs.Inc()
	c.liveBytes.Add(int64(len(b)))
	return b, nil
}

// Free ...
func (c *Counting) Free(b []byte) error {
	if cap(b) == 0 {
		return nil
	}
	if err := c.next.Free(b); err != nil {
		return err
	}
	c.frees.Inc()
	c.liveBytes.Sub(int64(len(b)))
	return nil
}

// Stats returns a point in time view of the counters.
func (c *Counting) Stats() Stats {
	allocs := c.allocs.Load()
	frees := c.frees.Load()
	return Stats{
		Allocs:     allocs,
		Frees:      frees,
		LiveBlocks: allocs - frees,
		LiveBytes:  c.liveBytes.Load(),
		Failures:   c.failures.Load(),
	}
}
