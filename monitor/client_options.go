package monitor

import (
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ClientSnapshotListener ...
type ClientSnapshotListener func(data Snapshot)

type clientOptions struct {
	dialer           *websocket.Dialer
	snapshotListener ClientSnapshotListener
	logger           *zap.Logger
	retryDuration    time.Duration
}

// ClientOption ...
type ClientOption func(opts *clientOptions)

func computeClientOptions(options ...ClientOption) clientOptions {
	opts := clientOptions{
		dialer:           websocket.DefaultDialer,
		snapshotListener: func(data Snapshot) {},
		logger:           zap.NewNop(),
		retryDuration:    30 * time.Second,
	}
	for _, o := range options {
		o(&opts)
	}
	return opts
}

// WithClientSnapshotListener ...
func WithClientSnapshotListener(listener ClientSnapshotListener) ClientOption {
	return func(opts *clientOptions) {
		opts.snapshotListener = listener
	}
}

// WithClientDialer ...
func WithClientDialer(dialer *websocket.Dialer) ClientOption {
	return func(opts *clientOptions) {
		opts.dialer = dialer
	}
}

// WithClientLogger ...
func WithClientLogger(logger *zap.Logger) ClientOption {
	return func(opts *clientOptions) {
		opts.logger = logger
	}
}

// WithClientRetryDuration ...
func WithClientRetryDuration(d time.Duration) ClientOption {
	return func(opts *clientOptions) {
		opts.retryDuration = d
	}
}
