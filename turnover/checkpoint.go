package turnover

import (
	"fmt"
	"math"

	"github.com/chemosim/turnover/cell"
)

// Checkpoint is a copy of the model state that can be restored later.
type Checkpoint struct {
	Receptor string
	Params   Params
	Values   map[cell.CellID]float64
}

// Snapshot copies the current state of the model.
func (m *Model) Snapshot() *Checkpoint {
	cp := &Checkpoint{
		Params: m.Params(),
		Values: m.store.snapshot(),
	}

	if r := m.Receptor(); r != nil {
		cp.Receptor = r.Name()
	}

	return cp
}

// Restore replaces every expression entry with the ones in the checkpoint.
// The checkpoint must come from a model with the same receptor and
// parameters.
func (m *Model) Restore(cp *Checkpoint) error {
	if cp == nil {
		return fmt.Errorf("%s: nil checkpoint", m.name)
	}

	receptorName := ""
	if r := m.Receptor(); r != nil {
		receptorName = r.Name()
	}

	if cp.Receptor != receptorName {
		return fmt.Errorf("%s: checkpoint is for receptor %q, model uses %q",
			m.name, cp.Receptor, receptorName)
	}

	if cp.Params != m.Params() {
		return fmt.Errorf("%s: checkpoint parameters %+v differ from %+v",
			m.name, cp.Params, m.Params())
	}

	for id, v := range cp.Values {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%s: cell %s: %w", m.name, id,
				&ConfigError{Param: "expression", Value: v, Min: 0, Max: 1})
		}
	}

	m.store.replace(cp.Values)

	return nil
}

// State returns the checkpoint of the model as a value, so that a state
// manager can copy and store it.
func (m *Model) State() any {
	return *m.Snapshot()
}

// SetState restores a value returned by State.
func (m *Model) SetState(v any) error {
	switch cp := v.(type) {
	case Checkpoint:
		return m.Restore(&cp)
	case *Checkpoint:
		return m.Restore(cp)
	default:
		return fmt.Errorf("%s: cannot restore state of type %T", m.name, v)
	}
}
