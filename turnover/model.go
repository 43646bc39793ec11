// Package turnover models the synthesis and internalisation of a membrane
// receptor. For every cell it tracks an expression multiplier in [0, 1] and
// advances it once per simulation step from the fraction of the receptor that
// is ligand-bound on that cell.
package turnover

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"sync"
	"sync/atomic"

	"github.com/chemosim/turnover/cell"
	"github.com/chemosim/turnover/sim"
)

// UnregisteredPolicy decides what a tick does for a cell that the model has
// not been told about.
type UnregisteredPolicy int

const (
	// PolicyStrict rejects the tick with ErrNotRegistered. Update treats this
	// as a broken host contract and panics.
	PolicyStrict UnregisteredPolicy = iota

	// PolicyAutoRegister registers the cell at the initial expression, logs a
	// warning and carries on with the tick.
	PolicyAutoRegister
)

func (p UnregisteredPolicy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicyAutoRegister:
		return "auto-register"
	default:
		return fmt.Sprintf("UnregisteredPolicy(%d)", int(p))
	}
}

// ParsePolicy converts the textual form of a policy.
func ParsePolicy(s string) (UnregisteredPolicy, error) {
	switch s {
	case "", "strict":
		return PolicyStrict, nil
	case "auto-register", "auto":
		return PolicyAutoRegister, nil
	default:
		return PolicyStrict, fmt.Errorf("unknown unregistered-cell policy %q", s)
	}
}

// HookPosCellRegistered triggers after a cell got its expression entry. The
// item is the cell.CellID and the detail is the initial expression.
var HookPosCellRegistered = &sim.HookPos{Name: "CellRegistered"}

// HookPosCellRemoved triggers after a cell lost its expression entry. The
// item is the cell.CellID.
var HookPosCellRemoved = &sim.HookPos{Name: "CellRemoved"}

// HookPosAfterTick triggers after the expression of a cell advanced. The item
// is a TickRecord.
var HookPosAfterTick = &sim.HookPos{Name: "AfterTick"}

// TickRecord describes one advance of one cell.
type TickRecord struct {
	Cell           cell.CellID
	BoundFraction  float64
	Dt             float64
	Before         float64
	After          float64
	AutoRegistered bool
}

// Model is the receptor turnover cell component.
//
// Ticks of different cells may run concurrently. The host must not tick the
// same cell from two goroutines at once.
type Model struct {
	sim.HookableBase

	name   string
	logger *log.Logger
	policy UnregisteredPolicy

	configLock sync.Mutex
	receptor   cell.Receptor
	params     atomic.Pointer[Params]
	running    atomic.Bool

	store *store

	simLock sync.Mutex
	host    cell.Simulation
}

// NewModel creates an unconfigured model with the default store layout and
// the strict policy. Configure must be called before it is used.
func NewModel(name string) *Model {
	m := &Model{
		name:   name,
		logger: log.New(io.Discard, "", 0),
		policy: PolicyStrict,
		store:  newStore(DefaultNumShards),
	}

	params := DefaultParams()
	m.params.Store(&params)

	return m
}

// Name returns the name of the model.
func (m *Model) Name() string {
	return m.name
}

// Receptor returns the receptor the model applies to, or nil before
// configuration.
func (m *Model) Receptor() cell.Receptor {
	m.configLock.Lock()
	defer m.configLock.Unlock()

	return m.receptor
}

// Params returns the current parameters.
func (m *Model) Params() Params {
	return *m.params.Load()
}

// Policy returns how unregistered cells are handled.
func (m *Model) Policy() UnregisteredPolicy {
	return m.policy
}

// Configure selects the receptor and the two turnover rates. Nothing changes
// if any argument is invalid.
func (m *Model) Configure(
	receptor cell.Receptor,
	basalRate, internalisationRate float64,
) error {
	params := m.Params()
	params.BasalRate = basalRate
	params.InternalisationRate = internalisationRate

	return m.configure(receptor, params)
}

func (m *Model) configure(receptor cell.Receptor, params Params) error {
	if receptor == nil {
		return ErrNilReceptor
	}

	if err := params.Validate(); err != nil {
		return err
	}

	m.configLock.Lock()
	defer m.configLock.Unlock()

	if m.running.Load() {
		return ErrAlreadyRunning
	}

	m.receptor = receptor
	m.params.Store(&params)

	return nil
}

// OnCellCreated gives the cell an entry at the initial expression. It does
// nothing if the cell already has one.
func (m *Model) OnCellCreated(id cell.CellID) {
	initial := m.Params().InitialExpression
	if !m.store.insertIfAbsent(id, initial) {
		return
	}

	m.InvokeHook(sim.HookCtx{
		Domain: m,
		Pos:    HookPosCellRegistered,
		Item:   id,
		Detail: initial,
	})
}

// OnCellRemoved drops the entry of the cell, if any.
func (m *Model) OnCellRemoved(id cell.CellID) {
	if !m.store.remove(id) {
		return
	}

	m.InvokeHook(sim.HookCtx{
		Domain: m,
		Pos:    HookPosCellRemoved,
		Item:   id,
	})
}

// NotifyCellAdded lets the model listen to the host population.
func (m *Model) NotifyCellAdded(c cell.Cell) {
	m.OnCellCreated(c.ID())
}

// NotifyCellRemoved lets the model listen to the host population.
func (m *Model) NotifyCellRemoved(id cell.CellID) {
	m.OnCellRemoved(id)
}

// Tick advances the expression of one cell by dt while boundFraction of its
// receptor is bound, stores the result and returns it.
//
// boundFraction is clamped to [0, 1]. A zero dt leaves the value unchanged.
func (m *Model) Tick(
	id cell.CellID,
	boundFraction, dt float64,
) (float64, error) {
	if math.IsNaN(boundFraction) ||
		math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return 0, fmt.Errorf("%w: cell %s, bound fraction %v, dt %v",
			ErrInvalidStep, id, boundFraction, dt)
	}

	params := m.params.Load()
	bound := clamp01(boundFraction)
	create := m.policy == PolicyAutoRegister

	before, after, found := m.store.update(id, create, params.InitialExpression,
		func(e float64) float64 {
			return params.Step(e, bound, dt)
		})

	if !found && !create {
		return 0, fmt.Errorf("cell %s: %w", id, ErrNotRegistered)
	}

	m.running.Store(true)

	if !found {
		m.logger.Printf("%s: cell %s ticked before registration, "+
			"registered at %.4f", m.name, id, params.InitialExpression)
		m.InvokeHook(sim.HookCtx{
			Domain: m,
			Pos:    HookPosCellRegistered,
			Item:   id,
			Detail: params.InitialExpression,
		})
	}

	m.InvokeHook(sim.HookCtx{
		Domain: m,
		Pos:    HookPosAfterTick,
		Item: TickRecord{
			Cell:           id,
			BoundFraction:  bound,
			Dt:             dt,
			Before:         before,
			After:          after,
			AutoRegistered: !found,
		},
	})

	return after, nil
}

// ExpressionOf returns the expression multiplier of the cell. ok is false for
// a cell that is not registered.
func (m *Model) ExpressionOf(id cell.CellID) (expression float64, ok bool) {
	return m.store.get(id)
}

// NumCells returns the number of registered cells.
func (m *Model) NumCells() int {
	return m.store.len()
}

// Cells returns the registered cells in increasing ID order.
func (m *Model) Cells() []cell.CellID {
	return m.store.ids()
}

// Running tells if at least one tick happened, after which the parameters
// are frozen.
func (m *Model) Running() bool {
	return m.running.Load()
}

// Initialise subscribes the model to the lifecycle events of the host and
// registers the cells that are already alive.
func (m *Model) Initialise(s cell.Simulation) error {
	if m.Receptor() == nil {
		return fmt.Errorf("%s: %w", m.name, ErrNilReceptor)
	}

	m.simLock.Lock()
	if m.host != nil {
		m.simLock.Unlock()
		return fmt.Errorf("%s: already initialised", m.name)
	}
	m.host = s
	m.simLock.Unlock()

	s.Subscribe(m)

	for _, c := range s.Cells() {
		m.OnCellCreated(c.ID())
	}

	return nil
}

// Detach unsubscribes the model from the host it was initialised with.
func (m *Model) Detach() {
	m.simLock.Lock()
	host := m.host
	m.host = nil
	m.simLock.Unlock()

	if host != nil {
		host.Unsubscribe(m)
	}
}

// Update reads the bound fraction of the receptor on the cell and ticks the
// cell by the step size of the simulation.
func (m *Model) Update(
	c cell.Cell,
	s cell.Simulation,
	env cell.Environment,
	flow cell.Flow,
) error {
	receptor := m.Receptor()
	if receptor == nil {
		return fmt.Errorf("%s: %w", m.name, ErrNilReceptor)
	}

	bound := receptor.BoundFraction(c, env, flow)

	_, err := m.Tick(c.ID(), bound, s.StepSize())
	if m.policy == PolicyStrict && errors.Is(err, ErrNotRegistered) {
		log.Panicf("%s: %v", m.name, err)
	}

	return err
}

var _ cell.Component = (*Model)(nil)
var _ cell.LifecycleListener = (*Model)(nil)
