package sharedptr

import (
	"encoding/binary"
	"fmt"

	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/QuangTung97/sharedptr/refcount"
)

// HeaderSize is the size of the control block header. A Combined resource starts right after it.
const HeaderSize = 32

// "SPTR" in little endian
const blockMagic uint32 = 0x52545053

var lastControllerID atomic.Uint64

// Controller is the control block shared by every handle of one resource.
type Controller struct {
	id         uint64
	mode       AllocationMode
	size       int
	destructor Destructor
	options    ptrOptions

	block    []byte
	resource []byte

	counts  refcount.Counts
	wrapped atomic.Bool
}

// NewController allocates the control block and, independently, size bytes of resource.
// The controller starts with one strong reference, which Wrap hands to a Strong handle.
func NewController(size int, destructor Destructor, options ...Option) (*Controller, error) {
	c, err := newController(size, destructor, Separate, options)
	if err != nil {
		return nil, err
	}

	block, err := c.allocate(HeaderSize)
	if err != nil {
		return nil, c.allocFailed(err)
	}

	resource, err := c.allocate(size)
	if err != nil {
		if freeErr := c.options.allocator.Free(block); freeErr != nil {
			c.options.logger.Error("Fail to free control block", zap.Error(freeErr))
		}
		return nil, c.allocFailed(err)
	}

	c.block = block
	c.resource = resource
	c.init()
	return c, nil
}

// NewCombinedController allocates one block holding both the header and size bytes of resource.
func NewCombinedController(size int, destructor Destructor, options ...Option) (*Controller, error) {
	c, err := newController(size, destructor, Combined, options)
	if err != nil {
		return nil, err
	}

	block, err := c.allocate(HeaderSize + size)
	if err != nil {
		return nil, c.allocFailed(err)
	}

	c.block = block
	c.resource = block[HeaderSize : HeaderSize+size : HeaderSize+size]
	c.init()
	return c, nil
}

func newController(size int, destructor Destructor, mode AllocationMode, options []Option) (*Controller, error) {
	opts := computeOptions(options...)
	if size <= 0 {
		opts.logger.Error("Invalid resource size", zap.Int("size", size))
		return nil, ErrInvalidSize
	}

	return &Controller{
		id:         lastControllerID.Inc(),
		mode:       mode,
		size:       size,
		destructor: destructor,
		options:    opts,
	}, nil
}

func (c *Controller) allocate(size int) ([]byte, error) {
	if c.options.zeroed {
		return c.options.allocator.Calloc(size)
	}
	return c.options.allocator.Malloc(size)
}

func (c *Controller) allocFailed(err error) error {
	fields := []zap.Field{
		zap.Uint64("controller", c.id),
		zap.Stringer("mode", c.mode),
		zap.Int("size", c.size),
		zap.Error(err),
	}
	if c.options.fatalOnNoMem {
		c.options.logger.Fatal("Out of memory", fields...)
	} else {
		c.options.logger.Error("Out of memory", fields...)
	}
	return fmt.Errorf("%w: %w", ErrOutOfMemory, err)
}

func (c *Controller) init() {
	binary.LittleEndian.PutUint32(c.block[0:4], blockMagic)
	binary.LittleEndian.PutUint32(c.block[4:8], uint32(c.mode))
	binary.LittleEndian.PutUint64(c.block[8:16], uint64(c.size))
	binary.LittleEndian.PutUint64(c.block[16:24], c.id)
	binary.LittleEndian.PutUint64(c.block[24:32], 0)

	c.counts.Init()
	c.emit(EventCreated)
}

func (c *Controller) verifyHeader() error {
	h := c.block
	switch {
	case binary.LittleEndian.Uint32(h[0:4]) != blockMagic:
		return fmt.Errorf("%w: bad magic", ErrCorruptedBlock)
	case AllocationMode(binary.LittleEndian.Uint32(h[4:8])) != c.mode:
		return fmt.Errorf("%w: mode mismatch", ErrCorruptedBlock)
	case binary.LittleEndian.Uint64(h[8:16]) != uint64(c.size):
		return fmt.Errorf("%w: size mismatch", ErrCorruptedBlock)
	case binary.LittleEndian.Uint64(h[16:24]) != c.id:
		return fmt.Errorf("%w: id mismatch", ErrCorruptedBlock)
	}
	return nil
}

// ID is unique within the process.
func (c *Controller) ID() uint64 {
	return c.id
}

// Size ...
func (c *Controller) Size() int {
	return c.size
}

// Mode ...
func (c *Controller) Mode() AllocationMode {
	return c.mode
}

// StrongCount ...
func (c *Controller) StrongCount() int64 {
	return c.counts.Strong()
}

// WeakCount ...
func (c *Controller) WeakCount() int64 {
	return c.counts.Weak()
}

// Expired reports whether the resource has been destroyed.
func (c *Controller) Expired() bool {
	return c.counts.Strong() == 0
}

func (c *Controller) releaseStrong() error {
	if !c.counts.ReleaseStrong() {
		c.emit(EventReleased)
		return nil
	}

	err := c.destroy()
	if c.counts.DropStrongHold() {
		err = multierr.Append(err, c.freeBlock())
	}
	return err
}

func (c *Controller) releaseWeak() error {
	last := c.counts.ReleaseWeak()
	c.emit(EventWeakReleased)
	if !last {
		return nil
	}
	return c.freeBlock()
}

func (c *Controller) destroy() error {
	if c.destructor != nil {
		c.destructor(c.resource)
	}

	var err error
	if c.mode == Separate {
		err = c.options.allocator.Free(c.resource)
		if err != nil {
			c.options.logger.Error("Fail to free resource",
				zap.Uint64("controller", c.id), zap.Error(err))
		}
	}

	c.options.logger.Debug("Resource destroyed",
		zap.Uint64("controller", c.id), zap.Stringer("mode", c.mode), zap.Int("size", c.size))
	c.emit(EventDestroyed)
	return err
}

func (c *Controller) freeBlock() error {
	logger := c.options.logger

	if err := c.verifyHeader(); err != nil {
		logger.Error("Control block not freed", zap.Uint64("controller", c.id), zap.Error(err))
		return err
	}

	if err := c.options.allocator.Free(c.block); err != nil {
		logger.Error("Fail to free control block", zap.Uint64("controller", c.id), zap.Error(err))
		return err
	}

	logger.Debug("Control block freed", zap.Uint64("controller", c.id))
	c.emit(EventBlockFreed)
	return nil
}

func (c *Controller) emit(t EventType) {
	c.options.observer.OnEvent(Event{
		Type:       t,
		Controller: c.id,
		Mode:       c.mode,
		Size:       c.size,
		Strong:     c.counts.Strong(),
		Weak:       c.counts.Weak(),
	})
}
