package tracing

import (
	"github.com/chemosim/turnover/cell"
	"github.com/chemosim/turnover/sim"
	"github.com/chemosim/turnover/turnover"
)

// CollectTrace lets the tracer collect the expression history of a domain.
func CollectTrace(domain NamedHookable, tracer Tracer) {
	h := &traceHook{domain: domain.Name(), t: tracer}
	domain.AcceptHook(h)
}

// A traceHook is a hook that forwards turnover events to a tracer.
type traceHook struct {
	domain string
	t      Tracer
}

// Func calls the tracer interfaces when the hook is triggered
func (h *traceHook) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case turnover.HookPosCellRegistered:
		h.t.CellEvent(CellEvent{
			Domain:     h.domain,
			Kind:       CellRegistered,
			Cell:       ctx.Item.(cell.CellID),
			Expression: ctx.Detail.(float64),
		})
	case turnover.HookPosCellRemoved:
		h.t.CellEvent(CellEvent{
			Domain: h.domain,
			Kind:   CellRemoved,
			Cell:   ctx.Item.(cell.CellID),
		})
	case turnover.HookPosAfterTick:
		h.t.Tick(Tick{
			Domain:     h.domain,
			TickRecord: ctx.Item.(turnover.TickRecord),
		})
	}
}
