package sharedptr

import (
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Strong is an owning handle. Every live Strong adds one to its controller's strong count.
// A Strong handle is meant to be used by one goroutine at a time; distinct handles of the
// same controller may be used concurrently.
type Strong struct {
	ctrl   atomic.Pointer[Controller]
	logger *zap.Logger
}

func newStrong(c *Controller) *Strong {
	s := &Strong{logger: c.options.logger}
	s.ctrl.Store(c)
	return s
}

// New creates a resource of size bytes sharing one allocation with its controller.
func New(size int, destructor Destructor, options ...Option) (*Strong, error) {
	c, err := NewCombinedController(size, destructor, options...)
	if err != nil {
		return nil, err
	}
	c.wrapped.Store(true)
	return newStrong(c), nil
}

// NewSeparate creates a resource of size bytes allocated independently of its controller.
func NewSeparate(size int, destructor Destructor, options ...Option) (*Strong, error) {
	c, err := NewController(size, destructor, options...)
	if err != nil {
		return nil, err
	}
	c.wrapped.Store(true)
	return newStrong(c), nil
}

// Wrap takes over the initial strong reference of a controller created with
// NewController or NewCombinedController. A controller can be wrapped only once.
func Wrap(c *Controller) (*Strong, error) {
	if c == nil {
		logInvalidState(zap.L(), "wrap", "nil controller")
		return nil, ErrInvalidState
	}
	if !c.wrapped.CompareAndSwap(false, true) {
		logInvalidState(c.options.logger, "wrap", "controller already wrapped")
		return nil, ErrInvalidState
	}
	return newStrong(c), nil
}

func (s *Strong) controller(op string) (*Controller, error) {
	if s == nil {
		logInvalidState(zap.L(), op, "nil strong handle")
		return nil, ErrInvalidState
	}
	c := s.ctrl.Load()
	if c == nil {
		logInvalidState(s.logger, op, "strong handle already released")
		return nil, ErrInvalidState
	}
	if c.resource == nil {
		logInvalidState(s.logger, op, "controller without resource")
		return nil, ErrInvalidState
	}
	return c, nil
}

// Clone returns a new handle sharing ownership of the same resource.
func (s *Strong) Clone() (*Strong, error) {
	c, err := s.controller("clone")
	if err != nil {
		return nil, err
	}
	if !c.counts.TryAcquireStrong() {
		logInvalidState(s.logger, "clone", "resource already destroyed")
		return nil, ErrInvalidState
	}
	c.emit(EventCloned)
	return newStrong(c), nil
}

// Transfer moves ownership into a new handle. The receiver is released and must not be used again.
func (s *Strong) Transfer() (*Strong, error) {
	c, err := s.controller("transfer")
	if err != nil {
		return nil, err
	}
	if !c.counts.TryAcquireStrong() {
		logInvalidState(s.logger, "transfer", "resource already destroyed")
		return nil, ErrInvalidState
	}

	dst := newStrong(c)
	if err := s.Release(); err != nil {
		return dst, err
	}
	c.emit(EventTransferred)
	return dst, nil
}

// Release drops this handle's reference. Releasing the last strong reference runs the
// destructor and frees the resource memory.
func (s *Strong) Release() error {
	c, err := s.controller("release")
	if err != nil {
		return err
	}
	if !s.ctrl.CompareAndSwap(c, nil) {
		logInvalidState(s.logger, "release", "strong handle released concurrently")
		return ErrInvalidState
	}
	return c.releaseStrong()
}

// Get returns the resource bytes. Concurrent writers need their own synchronization.
func (s *Strong) Get() ([]byte, error) {
	c, err := s.controller("get")
	if err != nil {
		return nil, err
	}
	return c.resource, nil
}

// Controller returns nil once the handle was released.
func (s *Strong) Controller() *Controller {
	if s == nil {
		return nil
	}
	return s.ctrl.Load()
}

// Observe creates a weak handle to the same controller.
func (s *Strong) Observe() (*Weak, error) {
	c, err := s.controller("observe")
	if err != nil {
		return nil, err
	}
	c.counts.AcquireWeak()
	c.emit(EventObserved)
	return newWeak(c), nil
}

func logInvalidState(logger *zap.Logger, op string, reason string) {
	logger.Error("Invalid handle state", zap.String("op", op), zap.String("reason", reason))
}
