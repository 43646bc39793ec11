package sim

// TimeTeller reports the current simulated time.
type TimeTeller interface {
	CurrentTime() VTimeInSec
}

// EventScheduler accepts events to handle in the future.
type EventScheduler interface {
	Schedule(e Event)
}

// An Engine handles scheduled events in time order. Its hooks see every event
// at HookPosBeforeEvent and HookPosAfterEvent.
type Engine interface {
	Hookable
	TimeTeller
	EventScheduler

	// Run handles events until none are left or a handler fails.
	Run() error

	// Pause holds the engine before its next event.
	Pause()

	// Continue releases a paused engine.
	Continue()
}
