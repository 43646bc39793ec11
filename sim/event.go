// Package sim is the discrete-event kernel that drives host simulations:
// simulated time, events and their handlers, a serial engine, step ticking
// and hooks.
package sim

// VTimeInSec is a point on the simulated time axis, in seconds.
type VTimeInSec float64

// An Event is something that happens to a Handler at a point in simulated
// time.
type Event interface {
	Time() VTimeInSec
	Handler() Handler
}

// A Handler owns the state that its events change. An event is scheduled by
// its handler and only modifies that handler.
type Handler interface {
	Handle(e Event) error
}

// HookPosBeforeEvent triggers right before an engine passes an event to its
// handler. The item is the event.
var HookPosBeforeEvent = &HookPos{Name: "BeforeEvent"}

// HookPosAfterEvent triggers after the handler returned. The item is the
// event.
var HookPosAfterEvent = &HookPos{Name: "AfterEvent"}

// EventBase stores the time and the handler of an event.
type EventBase struct {
	time    VTimeInSec
	handler Handler
}

// MakeEventBase creates an EventBase.
func MakeEventBase(t VTimeInSec, handler Handler) EventBase {
	return EventBase{time: t, handler: handler}
}

// Time returns when the event happens.
func (e EventBase) Time() VTimeInSec {
	return e.time
}

// Handler returns the handler of the event.
func (e EventBase) Handler() Handler {
	return e.handler
}
