package sim

// HookPos names a place in the code of a hookable domain where hooks run.
type HookPos struct {
	Name string
}

// HookCtx describes the site at which a hook runs.
type HookCtx struct {
	// Domain raised the hook.
	Domain Hookable

	// Pos is where in the domain the hook runs.
	Pos *HookPos

	// Item is what the hook is about, such as an event or a tick record.
	Item any

	// Detail is optional extra data. Many positions leave it nil.
	Detail any
}

// Hookable is a domain that runs hooks.
type Hookable interface {
	// AcceptHook registers a hook. Hooks are registered while the simulation
	// is being set up, from a single goroutine.
	AcceptHook(hook Hook)

	// NumHooks returns the number of registered hooks.
	NumHooks() int

	// InvokeHook runs every registered hook with ctx.
	InvokeHook(ctx HookCtx)
}

// Hook is a piece of code that a hookable domain runs at its hook positions.
// Hooks check ctx.Pos and ignore the positions they do not care about.
type Hook interface {
	Func(ctx HookCtx)
}

// HookableBase implements Hookable. The zero value has no hooks.
type HookableBase struct {
	hooks []Hook
}

// NumHooks returns the number of registered hooks.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// AcceptHook registers a hook. A hook can only be registered once.
func (h *HookableBase) AcceptHook(hook Hook) {
	for _, existing := range h.hooks {
		if existing == hook {
			panic("duplicated hook")
		}
	}

	h.hooks = append(h.hooks, hook)
}

// InvokeHook runs the hooks in registration order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}

var _ Hookable = (*HookableBase)(nil)
