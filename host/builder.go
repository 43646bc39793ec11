package host

import (
	"log"

	"github.com/chemosim/turnover/cell"
	"github.com/chemosim/turnover/sim"
	"github.com/chemosim/turnover/sim/state"
)

// Builder can build host simulations.
type Builder struct {
	engine   sim.Engine
	stepSize float64
	freq     sim.Freq
	workers  int
	env      cell.Environment
	flow     cell.Flow
}

// MakeBuilder creates a builder with a unit step size and a single worker.
func MakeBuilder() Builder {
	return Builder{
		stepSize: 1,
		workers:  1,
	}
}

// WithEngine sets the engine that the simulation schedules ticks on.
func (b Builder) WithEngine(e sim.Engine) Builder {
	b.engine = e
	return b
}

// WithStepSize sets the simulated time covered by one step.
func (b Builder) WithStepSize(dt float64) Builder {
	b.stepSize = dt
	return b
}

// WithFreq sets the tick frequency on the engine. By default, one tick lasts
// one step size of virtual time.
func (b Builder) WithFreq(f sim.Freq) Builder {
	b.freq = f
	return b
}

// WithWorkers sets how many goroutines update cells in a step.
func (b Builder) WithWorkers(n int) Builder {
	b.workers = n
	return b
}

// WithEnvironment sets the environment passed to the components.
func (b Builder) WithEnvironment(env cell.Environment) Builder {
	b.env = env
	return b
}

// WithFlow sets the flow passed to the components.
func (b Builder) WithFlow(flow cell.Flow) Builder {
	b.flow = flow
	return b
}

// Build creates a new simulation.
func (b Builder) Build(name string) *Simulation {
	if b.stepSize <= 0 {
		log.Panicf("step size must be positive, got %v", b.stepSize)
	}

	s := &Simulation{
		name:       name,
		engine:     b.engine,
		stepSize:   b.stepSize,
		workers:    b.workers,
		env:        b.env,
		flow:       b.flow,
		population: cell.NewPopulation(),
		states:     state.NewStore(),
	}

	if s.engine == nil {
		s.engine = sim.NewSerialEngine()
	}

	if s.workers < 1 {
		s.workers = 1
	}

	freq := b.freq
	if freq == 0 {
		freq = sim.Freq(1 / b.stepSize)
	}

	s.TickScheduler = sim.NewTickScheduler(s, s.engine, freq)

	return s
}
