// Package tracing collects receptor expression trajectories from turnover
// models.
package tracing

import (
	"github.com/chemosim/turnover/cell"
	"github.com/chemosim/turnover/sim"
	"github.com/chemosim/turnover/turnover"
)

// CellEventKind tells if a cell entered or left a model.
type CellEventKind string

// Cell event kinds.
const (
	CellRegistered CellEventKind = "registered"
	CellRemoved    CellEventKind = "removed"
)

// CellEvent is a cell entering or leaving a model.
type CellEvent struct {
	Domain     string
	Kind       CellEventKind
	Cell       cell.CellID
	Expression float64
}

// Tick is one expression update of one cell.
type Tick struct {
	Domain string
	turnover.TickRecord
}

// A Tracer receives the expression history of cells.
type Tracer interface {
	CellEvent(e CellEvent)
	Tick(t Tick)
}

// NamedHookable is a hookable object with a name.
type NamedHookable interface {
	sim.Named
	sim.Hookable
}
