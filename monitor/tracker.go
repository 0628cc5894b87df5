// Package monitor tracks controller lifecycles and streams them to websocket clients.
package monitor

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/QuangTung97/sharedptr"
)

// Version ...
type Version uint64

// ControllerInfo is the last known state of one controller.
// Counts come from the most recent event, so they may lag behind concurrent operations.
type ControllerInfo struct {
	ID         uint64  `json:"id"`
	Mode       string  `json:"mode"`
	Size       int     `json:"size"`
	Strong     int64   `json:"strong"`
	Weak       int64   `json:"weak"`
	Destroyed  bool    `json:"destroyed"`
	ModVersion Version `json:"modVersion"`
}

// Totals ...
type Totals struct {
	Created     int64 `json:"created"`
	Destroyed   int64 `json:"destroyed"`
	BlocksFreed int64 `json:"blocksFreed"`
}

// Snapshot ...
type Snapshot struct {
	Version     Version          `json:"version"`
	Controllers []ControllerInfo `json:"controllers"`
	Totals      Totals           `json:"totals"`
}

// WatchRequest asks for the first snapshot whose version is at least FromVersion.
// ResponseChan must be buffered.
type WatchRequest struct {
	FromVersion  Version
	ResponseChan chan<- Snapshot
}

// Tracker implements sharedptr.Observer. Controllers stay listed until their control block is freed.
type Tracker struct {
	options trackerOptions

	mu          sync.Mutex
	version     Version
	controllers map[uint64]ControllerInfo
	totals      Totals
	watches     []WatchRequest
}

var _ sharedptr.Observer = &Tracker{}

// NewTracker ...
func NewTracker(options ...Option) *Tracker {
	return &Tracker{
		options:     computeTrackerOptions(options...),
		controllers: map[uint64]ControllerInfo{},
	}
}

// OnEvent ...
func (t *Tracker) OnEvent(e sharedptr.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.apply(e) {
		return
	}
	t.version++
	t.notifyWatches()
}

func (t *Tracker) apply(e sharedptr.Event) bool {
	if e.Type == sharedptr.EventCreated {
		t.controllers[e.Controller] = ControllerInfo{
			ID:         e.Controller,
			Mode:       e.Mode.String(),
			Size:       e.Size,
			Strong:     e.Strong,
			Weak:       e.Weak,
			ModVersion: t.version + 1,
		}
		t.totals.Created++
		return true
	}

	prev, existed := t.controllers[e.Controller]
	if !existed {
		return false
	}

	switch e.Type {
	case sharedptr.EventBlockFreed:
		delete(t.controllers, e.Controller)
		t.totals.BlocksFreed++
		return true

	case sharedptr.EventDestroyed:
		prev.Destroyed = true
		prev.Strong = 0
		prev.Weak = e.Weak
		t.totals.Destroyed++

	default:
		if !prev.Destroyed {
			prev.Strong = e.Strong
		}
		prev.Weak = e.Weak
	}

	prev.ModVersion = t.version + 1
	t.controllers[e.Controller] = prev
	return true
}

func (t *Tracker) snapshot() Snapshot {
	controllers := make([]ControllerInfo, 0, len(t.controllers))
	for _, info := range t.controllers {
		controllers = append(controllers, info)
	}
	sort.Slice(controllers, func(i, j int) bool {
		return controllers[i].ID < controllers[j].ID
	})

	return Snapshot{
		Version:     t.version,
		Controllers: controllers,
		Totals:      t.totals,
	}
}

// Snapshot ...
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

// Watch responds right away if the current version is recent enough, otherwise on the next change.
func (t *Tracker) Watch(req WatchRequest) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.version >= req.FromVersion {
		t.respond(req, t.snapshot())
		return
	}
	t.watches = append(t.watches, req)
}

// RemoveWatch drops a pending watch request.
func (t *Tracker) RemoveWatch(ch chan<- Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	watches := t.watches[:0]
	for _, w := range t.watches {
		if w.ResponseChan != ch {
			watches = append(watches, w)
		}
	}
	t.watches = watches
}

func (t *Tracker) notifyWatches() {
	if len(t.watches) == 0 {
		return
	}

	data := t.snapshot()
	remaining := t.watches[:0]
	for _, w := range t.watches {
		if t.version >= w.FromVersion {
			t.respond(w, data)
			continue
		}
		remaining = append(remaining, w)
	}
	t.watches = remaining
}

func (t *Tracker) respond(req WatchRequest, data Snapshot) {
	select {
	case req.ResponseChan <- data:
	default:
		t.options.logger.Warn("Watch response dropped, channel full",
			zap.Uint64("version", uint64(data.Version)))
	}
}
