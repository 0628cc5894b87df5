package sharedptr

import (
	"go.uber.org/zap"

	"github.com/QuangTung97/sharedptr/alloc"
)

type ptrOptions struct {
	logger       *zap.Logger
	allocator    alloc.Allocator
	observer     Observer
	zeroed       bool
	fatalOnNoMem bool
}

// Option ...
type Option func(opts *ptrOptions)

func computeOptions(options ...Option) ptrOptions {
	result := ptrOptions{
		logger:    zap.L(),
		allocator: alloc.Default(),
		observer:  nopObserver{},
		zeroed:    true,
	}
	for _, o := range options {
		o(&result)
	}
	return result
}

// WithLogger ...
func WithLogger(logger *zap.Logger) Option {
	return func(opts *ptrOptions) {
		opts.logger = logger
	}
}

// WithAllocator sets the allocator for both the controller block and the resource.
func WithAllocator(a alloc.Allocator) Option {
	return func(opts *ptrOptions) {
		opts.allocator = a
	}
}

// WithObserver ...
func WithObserver(o Observer) Option {
	return func(opts *ptrOptions) {
		opts.observer = o
	}
}

// WithUninitialized skips zeroing the resource.
func WithUninitialized() Option {
	return func(opts *ptrOptions) {
		opts.zeroed = false
	}
}

// WithFatalOnAllocFailure makes allocation failures during construction fatal,
// through the logger's Fatal level.
func WithFatalOnAllocFailure() Option {
	return func(opts *ptrOptions) {
		opts.fatalOnNoMem = true
	}
}
