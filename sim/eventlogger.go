package sim

import (
	"log"
	"reflect"
)

// Named is an object that has a name.
type Named interface {
	Name() string
}

// LogHookBase gives a hook a logger to write to.
type LogHookBase struct {
	*log.Logger
}

// EventLogger is a hook that logs every event an engine is about to handle.
type EventLogger struct {
	LogHookBase
}

// NewEventLogger creates an EventLogger writing to logger.
func NewEventLogger(logger *log.Logger) *EventLogger {
	h := new(EventLogger)
	h.Logger = logger

	return h
}

// Func logs the time, the type and the handler of the event.
func (h *EventLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	handler := "-"
	if named, ok := evt.Handler().(Named); ok {
		handler = named.Name()
	}

	h.Printf("%.10f, %s -> %s", evt.Time(), reflect.TypeOf(evt), handler)
}
