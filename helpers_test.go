package sharedptr

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/QuangTung97/sharedptr/alloc"
)

func newCountingAllocator(t *testing.T) *alloc.Counting {
	m := alloc.NewMmap()
	t.Cleanup(func() {
		_ = m.Close()
	})
	return alloc.NewCounting(m)
}

func newHeapAllocatorMock() *AllocatorMock {
	return &AllocatorMock{
		CallocFunc: func(size int) ([]byte, error) {
			return make([]byte, size), nil
		},
		MallocFunc: func(size int) ([]byte, error) {
			return make([]byte, size), nil
		},
		FreeFunc: func(b []byte) error {
			return nil
		},
	}
}

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core, zap.WithFatalHook(zapcore.WriteThenPanic)), logs
}

type destructorRecorder struct {
	calls     int
	resources [][]byte
}

func (r *destructorRecorder) destroy(resource []byte) {
	r.calls++
	r.resources = append(r.resources, resource)
}

func samePointer(a []byte, b []byte) bool {
	return &a[0] == &b[0]
}
