package sharedptr

//go:generate moq -out observer_mocks_test.go . Observer

// EventType ...
type EventType uint8

const (
	// EventCreated ...
	EventCreated EventType = iota + 1
	// EventCloned ...
	EventCloned
	// EventTransferred ...
	EventTransferred
	// EventReleased is emitted for a strong release that left other strong handles alive.
	EventReleased
	// EventDestroyed is emitted after the destructor ran.
	EventDestroyed
	// EventObserved ...
	EventObserved
	// EventWeakReleased ...
	EventWeakReleased
	// EventBlockFreed is emitted when the control block went back to the allocator.
	EventBlockFreed
)

var eventTypeNames = map[EventType]string{
	EventCreated:      "created",
	EventCloned:       "cloned",
	EventTransferred:  "transferred",
	EventReleased:     "released",
	EventDestroyed:    "destroyed",
	EventObserved:     "observed",
	EventWeakReleased: "weak-released",
	EventBlockFreed:   "block-freed",
}

// String ...
func (t EventType) String() string {
	name, ok := eventTypeNames[t]
	if !ok {
		return "unknown"
	}
	return name
}

// Event describes one lifecycle transition of a controller. Counts are read right after the transition.
type Event struct {
	Type       EventType
	Controller uint64
	Mode       AllocationMode
	Size       int
	Strong     int64
	Weak       int64
}

// Observer receives lifecycle events synchronously, from the goroutine performing the operation.
type Observer interface {
	OnEvent(e Event)
}

type nopObserver struct{}

func (nopObserver) OnEvent(Event) {}
