package sim

import (
	"log"
	"reflect"
	"sync"
)

// A SerialEngine handles one event at a time, in time order.
type SerialEngine struct {
	HookableBase

	timeLock sync.RWMutex
	now      VTimeInSec
	queue    eventQueue

	runLock sync.Mutex

	// holding gateLock blocks Run between events.
	gateLock  sync.Mutex
	pauseLock sync.Mutex
	paused    bool
}

// NewSerialEngine creates a SerialEngine at time 0.
func NewSerialEngine() *SerialEngine {
	return new(SerialEngine)
}

// Schedule queues an event. It panics if the event is earlier than the
// current time.
func (e *SerialEngine) Schedule(evt Event) {
	if now := e.CurrentTime(); evt.Time() < now {
		log.Panicf("cannot schedule %s at %.10f, now is %.10f",
			reflect.TypeOf(evt), evt.Time(), now)
	}

	e.queue.push(evt)
}

// CurrentTime returns the time of the event being handled, or of the last
// event handled.
func (e *SerialEngine) CurrentTime() VTimeInSec {
	e.timeLock.RLock()
	defer e.timeLock.RUnlock()

	return e.now
}

func (e *SerialEngine) advanceTo(t VTimeInSec) {
	e.timeLock.Lock()
	e.now = t
	e.timeLock.Unlock()
}

// Run handles events until the queue is empty or a handler returns an error.
// The time stays at the failed event.
func (e *SerialEngine) Run() error {
	e.runLock.Lock()
	defer e.runLock.Unlock()

	for {
		e.gateLock.Lock()

		evt := e.queue.pop()
		if evt == nil {
			e.gateLock.Unlock()
			return nil
		}

		err := e.handle(evt)

		e.gateLock.Unlock()

		if err != nil {
			return err
		}
	}
}

func (e *SerialEngine) handle(evt Event) error {
	e.advanceTo(evt.Time())

	ctx := HookCtx{Domain: e, Pos: HookPosBeforeEvent, Item: evt}
	e.InvokeHook(ctx)

	err := evt.Handler().Handle(evt)

	ctx.Pos = HookPosAfterEvent
	e.InvokeHook(ctx)

	return err
}

// Pause stops Run before the next event. It returns once the event being
// handled is done.
func (e *SerialEngine) Pause() {
	e.pauseLock.Lock()
	defer e.pauseLock.Unlock()

	if e.paused {
		return
	}

	e.gateLock.Lock()
	e.paused = true
}

// Continue lets a paused Run go on.
func (e *SerialEngine) Continue() {
	e.pauseLock.Lock()
	defer e.pauseLock.Unlock()

	if !e.paused {
		return
	}

	e.paused = false
	e.gateLock.Unlock()
}
