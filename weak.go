package sharedptr

import (
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Weak observes a controller without keeping its resource alive. It keeps the
// control block, and so the counters, readable until it is released.
type Weak struct {
	ctrl   atomic.Pointer[Controller]
	logger *zap.Logger
}

func newWeak(c *Controller) *Weak {
	w := &Weak{logger: c.options.logger}
	w.ctrl.Store(c)
	return w
}

func (w *Weak) controller(op string) (*Controller, error) {
	if w == nil {
		logInvalidState(zap.L(), op, "nil weak handle")
		return nil, ErrInvalidState
	}
	c := w.ctrl.Load()
	if c == nil {
		logInvalidState(w.logger, op, "weak handle already released")
		return nil, ErrInvalidState
	}
	return c, nil
}

// Release drops the weak reference. It never runs the destructor.
func (w *Weak) Release() error {
	c, err := w.controller("weak-release")
	if err != nil {
		return err
	}
	if !w.ctrl.CompareAndSwap(c, nil) {
		logInvalidState(w.logger, "weak-release", "weak handle released concurrently")
		return ErrInvalidState
	}
	return c.releaseWeak()
}

// Get returns the resource bytes, or ErrExpired once the resource was destroyed.
// The check does not pin the resource: the caller must keep a Strong handle alive
// for as long as the returned bytes are used.
func (w *Weak) Get() ([]byte, error) {
	c, err := w.controller("weak-get")
	if err != nil {
		return nil, err
	}
	if c.Expired() {
		return nil, ErrExpired
	}
	return c.resource, nil
}

// Expired reports true for a released handle or a destroyed resource.
func (w *Weak) Expired() bool {
	if w == nil {
		return true
	}
	c := w.ctrl.Load()
	return c == nil || c.Expired()
}

// Controller returns nil once the handle was released.
func (w *Weak) Controller() *Controller {
	if w == nil {
		return nil
	}
	return w.ctrl.Load()
}
