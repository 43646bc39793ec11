// Package cell defines how cell components see the host simulation: cell
// identities, the receptor, environment and flow collaborators, and cell
// lifecycle notifications.
package cell

import (
	"strconv"

	"github.com/chemosim/turnover/sim"
)

// CellID is an opaque handle that identifies a cell for its whole life. IDs
// are never reused within a population.
type CellID uint64

func (id CellID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Position is the location of a cell in the simulated space.
type Position struct {
	X, Y, Z float64
}

// A Cell is an agent tracked by the host simulation.
type Cell interface {
	ID() CellID
	Position() Position
}

// Environment is the spatial environment that surrounds the cells.
type Environment interface {
	// LigandConcentration returns the ligand concentration at the position.
	LigandConcentration(pos Position) float64
}

// Flow is the local fluid state around the cells.
type Flow interface {
	// ShearAt returns the dimensionless shear acting at the position.
	ShearAt(pos Position) float64
}

// A Receptor is a species of cell-surface receptor. Binding is owned by the
// receptor; components only read the bound fraction.
type Receptor interface {
	sim.Named

	// BoundFraction returns the fraction of this receptor on the cell that is
	// currently ligand-bound, in [0, 1].
	BoundFraction(c Cell, env Environment, flow Flow) float64
}

// Simulation is what a cell component can ask of its host.
type Simulation interface {
	sim.TimeTeller

	// StepSize returns the simulated time between two updates of a cell.
	StepSize() float64

	// Cells returns the cells that are currently alive.
	Cells() []Cell

	// Subscribe registers a listener for cell lifecycle events.
	Subscribe(l LifecycleListener)

	// Unsubscribe removes a listener. Unknown listeners are ignored.
	Unsubscribe(l LifecycleListener)
}

// A Component is a per-cell model that the host updates once per cell per
// simulation step.
type Component interface {
	sim.Named

	// Initialise is called once when the component joins the simulation.
	Initialise(s Simulation) error

	// Update advances the component state of one cell by one step.
	Update(c Cell, s Simulation, env Environment, flow Flow) error
}

// LifecycleListener receives cell lifecycle events. Events are delivered
// synchronously on the goroutine that adds or removes the cell.
type LifecycleListener interface {
	NotifyCellAdded(c Cell)
	NotifyCellRemoved(id CellID)
}
