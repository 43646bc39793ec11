// Package ligand provides a chemokine field and a receptor that binds it by
// single-site occupancy. The host uses them to supply bound fractions to
// receptor-driven cell components.
package ligand

import (
	"fmt"
	"math"

	"github.com/chemosim/turnover/cell"
)

// Field is a linear ligand gradient along the X axis.
type Field struct {
	Background float64
	Gradient   float64
}

// LigandConcentration returns the concentration at the position. It is never
// negative.
func (f Field) LigandConcentration(pos cell.Position) float64 {
	c := f.Background + f.Gradient*pos.X
	if c < 0 {
		return 0
	}

	return c
}

// UniformFlow is a flow with the same shear everywhere.
type UniformFlow float64

// ShearAt returns the shear at the position.
func (f UniformFlow) ShearAt(cell.Position) float64 {
	return float64(f)
}

// Receptor binds the ligand with dissociation constant Kd.
type Receptor struct {
	name string
	kd   float64
}

// NewReceptor creates a receptor. Kd must be positive.
func NewReceptor(name string, kd float64) (*Receptor, error) {
	if name == "" {
		return nil, fmt.Errorf("receptor name is empty")
	}

	if !(kd > 0) || math.IsInf(kd, 0) {
		return nil, fmt.Errorf("receptor %s: kd must be positive, got %v",
			name, kd)
	}

	return &Receptor{name: name, kd: kd}, nil
}

// Name returns the name of the receptor.
func (r *Receptor) Name() string {
	return r.name
}

// Kd returns the dissociation constant.
func (r *Receptor) Kd() float64 {
	return r.kd
}

// BoundFraction returns c/(c+Kd) for the effective concentration c at the
// cell. Shear lowers the effective concentration by 1/(1+shear). Without an
// environment nothing is bound.
func (r *Receptor) BoundFraction(
	c cell.Cell,
	env cell.Environment,
	flow cell.Flow,
) float64 {
	if env == nil {
		return 0
	}

	pos := c.Position()
	conc := env.LigandConcentration(pos)

	if flow != nil {
		if shear := flow.ShearAt(pos); shear > 0 {
			conc /= 1 + shear
		}
	}

	switch {
	case math.IsNaN(conc) || conc <= 0:
		return 0
	case math.IsInf(conc, 1):
		return 1
	}

	return conc / (conc + r.kd)
}

// Registry maps receptor names to receptors. It resolves the receptor names
// found in scenario files.
type Registry struct {
	receptors map[string]cell.Receptor
}

// NewRegistry creates a registry holding the given receptors.
func NewRegistry(receptors ...cell.Receptor) *Registry {
	r := &Registry{receptors: make(map[string]cell.Receptor)}
	for _, rec := range receptors {
		r.Add(rec)
	}

	return r
}

// Add registers a receptor, replacing any receptor with the same name.
func (r *Registry) Add(rec cell.Receptor) {
	r.receptors[rec.Name()] = rec
}

// Resolve finds the receptor with the name.
func (r *Registry) Resolve(name string) (cell.Receptor, error) {
	rec, found := r.receptors[name]
	if !found {
		return nil, fmt.Errorf("receptor %q is not defined", name)
	}

	return rec, nil
}

var _ cell.Environment = Field{}
var _ cell.Flow = UniformFlow(0)
var _ cell.Receptor = (*Receptor)(nil)
