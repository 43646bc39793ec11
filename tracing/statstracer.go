package tracing

import (
	"math"
	"sync"

	"github.com/chemosim/turnover/cell"
)

// Stats summarises the expression updates seen by a StatsTracer. MeanBound
// averages over all ticks. The expression figures cover the latest expression
// of the cells that are still registered.
type Stats struct {
	Ticks          uint64
	AutoRegistered uint64
	Registered     uint64
	Removed        uint64
	Cells          int
	MeanBound      float64
	MeanExpression float64
	MinExpression  float64
	MaxExpression  float64
}

// StatsTracer keeps running statistics of expression updates and the latest
// expression of every cell.
type StatsTracer struct {
	lock sync.Mutex

	stats    Stats
	sumBound float64
	latest   map[cell.CellID]float64
}

// NewStatsTracer creates a new StatsTracer.
func NewStatsTracer() *StatsTracer {
	return &StatsTracer{
		latest: make(map[cell.CellID]float64),
	}
}

// CellEvent counts registrations and removals.
func (t *StatsTracer) CellEvent(e CellEvent) {
	t.lock.Lock()
	defer t.lock.Unlock()

	switch e.Kind {
	case CellRegistered:
		t.stats.Registered++
		t.latest[e.Cell] = e.Expression
	case CellRemoved:
		t.stats.Removed++
		delete(t.latest, e.Cell)
	}
}

// Tick accumulates an expression update.
func (t *StatsTracer) Tick(tick Tick) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.stats.Ticks++
	if tick.AutoRegistered {
		t.stats.AutoRegistered++
	}

	t.sumBound += tick.BoundFraction
	t.latest[tick.Cell] = tick.After
}

// Stats returns the statistics collected so far.
func (t *StatsTracer) Stats() Stats {
	t.lock.Lock()
	defer t.lock.Unlock()

	s := t.stats
	if s.Ticks > 0 {
		s.MeanBound = t.sumBound / float64(s.Ticks)
	}

	s.Cells = len(t.latest)
	if s.Cells == 0 {
		return s
	}

	sum := 0.0
	s.MinExpression = math.Inf(1)
	s.MaxExpression = math.Inf(-1)

	for _, e := range t.latest {
		sum += e
		s.MinExpression = math.Min(s.MinExpression, e)
		s.MaxExpression = math.Max(s.MaxExpression, e)
	}

	s.MeanExpression = sum / float64(s.Cells)

	return s
}

// Latest returns the last known expression of the cell.
func (t *StatsTracer) Latest(id cell.CellID) (float64, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()

	e, ok := t.latest[id]

	return e, ok
}
