// Package host provides a reference simulation that owns a cell population
// and updates cell components once per cell per step.
package host

import (
	"fmt"
	"sync"

	"github.com/chemosim/turnover/cell"
	"github.com/chemosim/turnover/sim"
	"github.com/chemosim/turnover/sim/state"
)

// HookPosStepDone triggers after all the cells were updated in a step. The
// item is the number of steps completed so far.
var HookPosStepDone = &sim.HookPos{Name: "StepDone"}

// Stateful is a component whose state can be saved into checkpoints.
type Stateful interface {
	sim.Named
	State() any
	SetState(v any) error
}

// Simulation is a host that advances its cell components with tick events.
type Simulation struct {
	*sim.TickScheduler
	sim.HookableBase

	name     string
	engine   sim.Engine
	stepSize float64
	workers  int
	env      cell.Environment
	flow     cell.Flow

	population *cell.Population
	states     *state.Store

	componentsLock sync.RWMutex
	components     []cell.Component

	stepLock    sync.Mutex
	stepsDone   uint64
	stepsTarget uint64
}

// Name returns the name of the simulation.
func (s *Simulation) Name() string {
	return s.name
}

// Engine returns the engine that drives the simulation.
func (s *Simulation) Engine() sim.Engine {
	return s.engine
}

// StepSize returns the simulated time that a step covers.
func (s *Simulation) StepSize() float64 {
	return s.stepSize
}

// Workers returns the number of goroutines that update cells in a step.
func (s *Simulation) Workers() int {
	return s.workers
}

// Environment returns the environment passed to components.
func (s *Simulation) Environment() cell.Environment {
	return s.env
}

// Flow returns the flow passed to components.
func (s *Simulation) Flow() cell.Flow {
	return s.flow
}

// Cells returns the alive cells ordered by ID.
func (s *Simulation) Cells() []cell.Cell {
	return s.population.Cells()
}

// Cell returns the alive cell with the ID.
func (s *Simulation) Cell(id cell.CellID) (cell.Cell, bool) {
	return s.population.Get(id)
}

// NumCells returns the number of alive cells.
func (s *Simulation) NumCells() int {
	return s.population.Len()
}

// Subscribe registers a listener for cell lifecycle events.
func (s *Simulation) Subscribe(l cell.LifecycleListener) {
	s.population.Subscribe(l)
}

// Unsubscribe removes a lifecycle listener.
func (s *Simulation) Unsubscribe(l cell.LifecycleListener) {
	s.population.Unsubscribe(l)
}

// AddCell creates a cell at the position. Listeners learn about it before
// AddCell returns.
func (s *Simulation) AddCell(pos cell.Position) cell.CellID {
	return s.population.Add(pos).ID()
}

// RemoveCell kills a cell. It returns false if the cell is not alive.
func (s *Simulation) RemoveCell(id cell.CellID) bool {
	return s.population.Remove(id)
}

// RegisterComponent initialises the component and adds it to the list of
// components updated every step.
func (s *Simulation) RegisterComponent(c cell.Component) error {
	if _, found := s.Component(c.Name()); found {
		return fmt.Errorf("%s: component %s already registered",
			s.name, c.Name())
	}

	if err := c.Initialise(s); err != nil {
		return fmt.Errorf("%s: initialise %s: %w", s.name, c.Name(), err)
	}

	s.componentsLock.Lock()
	s.components = append(s.components, c)
	s.componentsLock.Unlock()

	return nil
}

// Components returns the registered components in registration order.
func (s *Simulation) Components() []cell.Component {
	s.componentsLock.RLock()
	defer s.componentsLock.RUnlock()

	return append([]cell.Component(nil), s.components...)
}

// Component finds a registered component by name.
func (s *Simulation) Component(name string) (cell.Component, bool) {
	s.componentsLock.RLock()
	defer s.componentsLock.RUnlock()

	for _, c := range s.components {
		if c.Name() == name {
			return c, true
		}
	}

	return nil, false
}

// StepsDone returns how many steps have completed.
func (s *Simulation) StepsDone() uint64 {
	s.stepLock.Lock()
	defer s.stepLock.Unlock()

	return s.stepsDone
}

// RunSteps runs n more steps and returns when they are done or a component
// failed.
func (s *Simulation) RunSteps(n int) error {
	if n <= 0 {
		return nil
	}

	s.stepLock.Lock()
	first := s.stepsDone == 0 && s.stepsTarget == 0
	s.stepsTarget += uint64(n)
	s.stepLock.Unlock()

	if first {
		s.TickNow()
	} else {
		s.TickLater()
	}

	return s.engine.Run()
}

// Handle processes tick events.
func (s *Simulation) Handle(e sim.Event) error {
	switch e.(type) {
	case sim.TickEvent:
		return s.tick()
	default:
		return fmt.Errorf("%s: cannot handle event of type %T", s.name, e)
	}
}

func (s *Simulation) tick() error {
	if err := s.step(); err != nil {
		return err
	}

	s.stepLock.Lock()
	s.stepsDone++
	done := s.stepsDone
	more := s.stepsDone < s.stepsTarget
	s.stepLock.Unlock()

	s.InvokeHook(sim.HookCtx{
		Domain: s,
		Pos:    HookPosStepDone,
		Item:   done,
	})

	if more {
		s.TickLater()
	}

	return nil
}

// step updates every component of every alive cell once. Each cell is
// handled by exactly one worker.
func (s *Simulation) step() error {
	cells := s.population.Cells()
	components := s.Components()

	if s.workers <= 1 || len(cells) < 2 {
		return s.updateCells(cells, components)
	}

	numWorkers := min(s.workers, len(cells))
	errs := make([]error, numWorkers)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		lo := len(cells) * w / numWorkers
		hi := len(cells) * (w + 1) / numWorkers

		wg.Add(1)
		go func(w int, part []cell.Cell) {
			defer wg.Done()
			errs[w] = s.updateCells(part, components)
		}(w, cells[lo:hi])
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *Simulation) updateCells(
	cells []cell.Cell,
	components []cell.Component,
) error {
	for _, c := range cells {
		for _, comp := range components {
			err := comp.Update(c, s, s.env, s.flow)
			if err != nil {
				return fmt.Errorf("%s: update cell %s in %s: %w",
					s.name, c.ID(), comp.Name(), err)
			}
		}
	}

	return nil
}

// SaveState copies the state of every stateful component into the state
// store.
func (s *Simulation) SaveState() error {
	for _, c := range s.Components() {
		st, ok := c.(Stateful)
		if !ok {
			continue
		}

		if err := s.states.Save(st.Name(), st.State()); err != nil {
			return err
		}
	}

	return nil
}

// LoadState puts every stateful component back to the state saved last.
func (s *Simulation) LoadState() error {
	for _, c := range s.Components() {
		st, ok := c.(Stateful)
		if !ok {
			continue
		}

		v, err := s.states.Load(st.Name())
		if err != nil {
			return err
		}

		if err := st.SetState(v); err != nil {
			return err
		}
	}

	return nil
}

// SavedStates returns the names of the components that have saved state.
func (s *Simulation) SavedStates() []string {
	return s.states.Keys()
}

var _ cell.Simulation = (*Simulation)(nil)
var _ sim.Handler = (*Simulation)(nil)
