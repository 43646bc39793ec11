package turnover

import (
	"log"

	"github.com/chemosim/turnover/cell"
	"github.com/chemosim/turnover/sim"
)

// LifecycleLogger is a hook that logs when cells enter and leave a model.
type LifecycleLogger struct {
	sim.LogHookBase

	LogTicks bool
}

// NewLifecycleLogger creates a LifecycleLogger writing to logger.
func NewLifecycleLogger(logger *log.Logger) *LifecycleLogger {
	h := new(LifecycleLogger)
	h.Logger = logger

	return h
}

// Func writes the lifecycle information into the logger.
func (h *LifecycleLogger) Func(ctx sim.HookCtx) {
	name := ""
	if named, ok := ctx.Domain.(sim.Named); ok {
		name = named.Name()
	}

	switch ctx.Pos {
	case HookPosCellRegistered:
		h.Printf("%s: cell %s registered at %.4f",
			name, ctx.Item.(cell.CellID), ctx.Detail.(float64))
	case HookPosCellRemoved:
		h.Printf("%s: cell %s removed", name, ctx.Item.(cell.CellID))
	case HookPosAfterTick:
		if !h.LogTicks {
			return
		}

		rec := ctx.Item.(TickRecord)
		h.Printf("%s: cell %s bound %.4f, expression %.4f -> %.4f",
			name, rec.Cell, rec.BoundFraction, rec.Before, rec.After)
	}
}
