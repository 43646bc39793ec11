package sim

import (
	"sync"
)

// TickEvent asks a handler to advance by one step.
type TickEvent struct {
	EventBase
}

// MakeTickEvent creates a TickEvent.
func MakeTickEvent(handler Handler, t VTimeInSec) TickEvent {
	return TickEvent{EventBase: MakeEventBase(t, handler)}
}

// TickScheduler keeps at most one future tick of a handler in the engine,
// aligned to the ticks of Freq.
type TickScheduler struct {
	Freq   Freq
	Engine Engine

	lock    sync.Mutex
	handler Handler
	pending VTimeInSec
}

// NewTickScheduler creates a scheduler for the ticks of handler.
func NewTickScheduler(
	handler Handler,
	engine Engine,
	freq Freq,
) *TickScheduler {
	return &TickScheduler{
		Freq:    freq,
		Engine:  engine,
		handler: handler,
		pending: -1,
	}
}

// TickNow schedules a tick at the current tick time.
func (t *TickScheduler) TickNow() {
	t.scheduleAt(t.Freq.ThisTick(t.CurrentTime()))
}

// TickLater schedules a tick one period after the current tick.
func (t *TickScheduler) TickLater() {
	t.scheduleAt(t.Freq.NextTick(t.CurrentTime()))
}

func (t *TickScheduler) scheduleAt(time VTimeInSec) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.pending >= time {
		return
	}

	t.pending = time
	t.Engine.Schedule(MakeTickEvent(t.handler, time))
}

// CurrentTime returns the current time of the engine.
func (t *TickScheduler) CurrentTime() VTimeInSec {
	return t.Engine.CurrentTime()
}
