package cell

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Agent is the plain Cell implementation used by Population.
type Agent struct {
	id  CellID
	pos Position
}

// ID returns the identity of the cell.
func (a *Agent) ID() CellID {
	return a.id
}

// Position returns where the cell is.
func (a *Agent) Position() Position {
	return a.pos
}

// Population keeps the alive cells of a simulation and fans lifecycle events
// out to its listeners, in subscription order.
type Population struct {
	nextID atomic.Uint64

	lock      sync.RWMutex
	cells     map[CellID]*Agent
	listeners []LifecycleListener
}

// NewPopulation creates an empty population. The first cell gets ID 1.
func NewPopulation() *Population {
	return &Population{
		cells: make(map[CellID]*Agent),
	}
}

// Add creates a cell at the position and notifies the listeners.
func (p *Population) Add(pos Position) Cell {
	a := &Agent{
		id:  CellID(p.nextID.Add(1)),
		pos: pos,
	}

	p.lock.Lock()
	p.cells[a.id] = a
	listeners := p.snapshotListeners()
	p.lock.Unlock()

	for _, l := range listeners {
		l.NotifyCellAdded(a)
	}

	return a
}

// Remove deletes the cell and notifies the listeners. It returns false if the
// cell is not alive.
func (p *Population) Remove(id CellID) bool {
	p.lock.Lock()
	_, found := p.cells[id]
	if !found {
		p.lock.Unlock()
		return false
	}

	delete(p.cells, id)
	listeners := p.snapshotListeners()
	p.lock.Unlock()

	for _, l := range listeners {
		l.NotifyCellRemoved(id)
	}

	return true
}

// Get returns the cell with the given ID.
func (p *Population) Get(id CellID) (Cell, bool) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	a, found := p.cells[id]
	if !found {
		return nil, false
	}

	return a, true
}

// Cells returns the alive cells ordered by ID.
func (p *Population) Cells() []Cell {
	p.lock.RLock()
	cells := make([]Cell, 0, len(p.cells))
	for _, a := range p.cells {
		cells = append(cells, a)
	}
	p.lock.RUnlock()

	sort.Slice(cells, func(i, j int) bool {
		return cells[i].ID() < cells[j].ID()
	})

	return cells
}

// Len returns the number of alive cells.
func (p *Population) Len() int {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return len(p.cells)
}

// Subscribe registers a listener. Subscribing the same listener twice has no
// effect.
func (p *Population) Subscribe(l LifecycleListener) {
	p.lock.Lock()
	defer p.lock.Unlock()

	for _, existing := range p.listeners {
		if existing == l {
			return
		}
	}

	p.listeners = append(p.listeners, l)
}

// Unsubscribe removes a listener.
func (p *Population) Unsubscribe(l LifecycleListener) {
	p.lock.Lock()
	defer p.lock.Unlock()

	for i, existing := range p.listeners {
		if existing == l {
			p.listeners = append(p.listeners[:i:i], p.listeners[i+1:]...)
			return
		}
	}
}

func (p *Population) snapshotListeners() []LifecycleListener {
	listeners := make([]LifecycleListener, len(p.listeners))
	copy(listeners, p.listeners)

	return listeners
}
