package monitoring

import (
	"sync"
	"time"

	"github.com/chemosim/turnover/sim"
)

// A ProgressBar follows how many of a known number of steps have run.
type ProgressBar struct {
	lock  sync.Mutex
	id    string
	name  string
	start time.Time
	total uint64
	done  uint64
}

type progressBarRsp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Done      uint64    `json:"done"`
	ETASec    float64   `json:"eta_sec,omitempty"`
}

// Advance moves the bar n steps forward.
func (b *ProgressBar) Advance(n uint64) {
	b.lock.Lock()
	b.done += n
	b.lock.Unlock()
}

// SetDone sets the number of steps that have run.
func (b *ProgressBar) SetDone(n uint64) {
	b.lock.Lock()
	b.done = n
	b.lock.Unlock()
}

// Done returns the number of steps that have run.
func (b *ProgressBar) Done() uint64 {
	b.lock.Lock()
	defer b.lock.Unlock()

	return b.done
}

func (b *ProgressBar) snapshot(now time.Time) progressBarRsp {
	b.lock.Lock()
	defer b.lock.Unlock()

	rsp := progressBarRsp{
		ID:        b.id,
		Name:      b.name,
		StartTime: b.start,
		Total:     b.total,
		Done:      b.done,
	}

	if b.done > 0 && b.done < b.total {
		perStep := now.Sub(b.start).Seconds() / float64(b.done)
		rsp.ETASec = perStep * float64(b.total-b.done)
	}

	return rsp
}

// StepProgressHook keeps a bar in line with the step count that a host
// reports at Pos. Items that are not step counts advance the bar by one.
type StepProgressHook struct {
	Bar *ProgressBar
	Pos *sim.HookPos
}

// Func updates the bar.
func (h *StepProgressHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != h.Pos {
		return
	}

	if steps, ok := ctx.Item.(uint64); ok {
		h.Bar.SetDone(steps)
		return
	}

	h.Bar.Advance(1)
}
