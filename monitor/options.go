package monitor

import (
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type trackerOptions struct {
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// Option ...
type Option func(opts *trackerOptions)

func computeTrackerOptions(options ...Option) trackerOptions {
	result := trackerOptions{
		logger: zap.NewNop(),
	}
	for _, o := range options {
		o(&result)
	}
	return result
}

// WithLogger ...
func WithLogger(logger *zap.Logger) Option {
	return func(opts *trackerOptions) {
		opts.logger = logger
	}
}

// WithUpgrader ...
func WithUpgrader(upgrader websocket.Upgrader) Option {
	return func(opts *trackerOptions) {
		opts.upgrader = upgrader
	}
}
