package tracing

import (
	"sync"

	"github.com/tebeka/atexit"

	"github.com/chemosim/turnover/datarecording"
	"github.com/chemosim/turnover/sim"
)

// Tables written by DBTracer.
const (
	ExpressionTable = "expression"
	CellEventTable  = "cell_event"
)

// ExpressionEntry is a row of the expression table.
type ExpressionEntry struct {
	RunID          string
	Domain         string
	Time           float64
	Cell           uint64
	Bound          float64
	Dt             float64
	Before         float64
	After          float64
	AutoRegistered bool
}

// CellEventEntry is a row of the cell event table.
type CellEventEntry struct {
	RunID      string
	Domain     string
	Time       float64
	Cell       uint64
	Kind       string
	Expression float64
}

// MapTables prepares a reader for the tables that DBTracer writes.
func MapTables(r datarecording.DataReader) {
	r.MapTable(ExpressionTable, ExpressionEntry{})
	r.MapTable(CellEventTable, CellEventEntry{})
}

// DBTracer is a tracer that stores expression updates and cell events into a
// data recorder.
type DBTracer struct {
	mu         sync.Mutex
	runID      string
	timeTeller sim.TimeTeller
	backend    datarecording.DataRecorder

	startTime, endTime sim.VTimeInSec
	terminated         bool
}

// NewDBTracer creates a new DBTracer and its tables.
func NewDBTracer(
	runID string,
	timeTeller sim.TimeTeller,
	dataRecorder datarecording.DataRecorder,
) *DBTracer {
	dataRecorder.CreateTable(ExpressionTable, ExpressionEntry{})
	dataRecorder.CreateTable(CellEventTable, CellEventEntry{})

	t := &DBTracer{
		runID:      runID,
		timeTeller: timeTeller,
		backend:    dataRecorder,
		startTime:  -1,
		endTime:    -1,
	}

	atexit.Register(func() {
		t.Terminate()
	})

	return t
}

// SetTimeRange limits tracing to [startTime, endTime]. A negative bound is
// open.
func (t *DBTracer) SetTimeRange(startTime, endTime sim.VTimeInSec) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.startTime = startTime
	t.endTime = endTime
}

func (t *DBTracer) inRange(now sim.VTimeInSec) bool {
	if t.terminated {
		return false
	}

	if t.startTime >= 0 && now < t.startTime {
		return false
	}

	if t.endTime >= 0 && now > t.endTime {
		return false
	}

	return true
}

// CellEvent records a cell entering or leaving a model.
func (t *DBTracer) CellEvent(e CellEvent) {
	now := t.timeTeller.CurrentTime()

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.inRange(now) {
		return
	}

	t.backend.InsertData(CellEventTable, CellEventEntry{
		RunID:      t.runID,
		Domain:     e.Domain,
		Time:       float64(now),
		Cell:       uint64(e.Cell),
		Kind:       string(e.Kind),
		Expression: e.Expression,
	})
}

// Tick records an expression update.
func (t *DBTracer) Tick(tick Tick) {
	now := t.timeTeller.CurrentTime()

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.inRange(now) {
		return
	}

	t.backend.InsertData(ExpressionTable, ExpressionEntry{
		RunID:          t.runID,
		Domain:         tick.Domain,
		Time:           float64(now),
		Cell:           uint64(tick.Cell),
		Bound:          tick.BoundFraction,
		Dt:             tick.Dt,
		Before:         tick.Before,
		After:          tick.After,
		AutoRegistered: tick.AutoRegistered,
	})
}

// Terminate flushes the recorder and stops tracing.
func (t *DBTracer) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.terminated {
		return
	}

	t.terminated = true
	t.backend.Flush()
}
