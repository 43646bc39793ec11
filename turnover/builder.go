package turnover

import (
	"io"
	"log"

	"github.com/chemosim/turnover/cell"
)

// Builder can build turnover models.
type Builder struct {
	receptor  cell.Receptor
	params    Params
	numShards int
	policy    UnregisteredPolicy
	logger    *log.Logger
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		params:    DefaultParams(),
		numShards: DefaultNumShards,
		policy:    PolicyStrict,
	}
}

// WithReceptor sets the receptor that the model applies to.
func (b Builder) WithReceptor(r cell.Receptor) Builder {
	b.receptor = r
	return b
}

// WithBasalRate sets the basal expression rate.
func (b Builder) WithBasalRate(rate float64) Builder {
	b.params.BasalRate = rate
	return b
}

// WithInternalisationRate sets the internalisation rate.
func (b Builder) WithInternalisationRate(rate float64) Builder {
	b.params.InternalisationRate = rate
	return b
}

// WithInitialExpression sets the expression given to newly registered cells.
func (b Builder) WithInitialExpression(e float64) Builder {
	b.params.InitialExpression = e
	return b
}

// WithParams replaces all the kinetic parameters.
func (b Builder) WithParams(p Params) Builder {
	b.params = p
	return b
}

// WithShards sets how many partitions the expression store uses.
func (b Builder) WithShards(n int) Builder {
	b.numShards = n
	return b
}

// WithUnregisteredPolicy sets how ticks of unknown cells are handled.
func (b Builder) WithUnregisteredPolicy(p UnregisteredPolicy) Builder {
	b.policy = p
	return b
}

// WithLogger sets the logger that receives model warnings.
func (b Builder) WithLogger(l *log.Logger) Builder {
	b.logger = l
	return b
}

// Build creates a configured model. It fails if the receptor is missing or a
// parameter is out of range.
func (b Builder) Build(name string) (*Model, error) {
	m := &Model{
		name:   name,
		logger: b.logger,
		policy: b.policy,
		store:  newStore(b.numShards),
	}

	if m.logger == nil {
		m.logger = log.New(io.Discard, "", 0)
	}

	if err := m.configure(b.receptor, b.params); err != nil {
		return nil, err
	}

	return m, nil
}
