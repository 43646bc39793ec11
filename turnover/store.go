package turnover

import (
	"sort"
	"sync"

	"github.com/chemosim/turnover/cell"
)

// DefaultNumShards is the number of independently locked partitions of the
// expression store.
const DefaultNumShards = 32

type shard struct {
	lock   sync.RWMutex
	values map[cell.CellID]float64
}

// store maps cells to their expression multiplier. Cells are partitioned by
// ID so that updates of different cells rarely contend.
type store struct {
	shards []*shard
}

func newStore(numShards int) *store {
	if numShards <= 0 {
		numShards = DefaultNumShards
	}

	s := &store{shards: make([]*shard, numShards)}
	for i := range s.shards {
		s.shards[i] = &shard{values: make(map[cell.CellID]float64)}
	}

	return s
}

func (s *store) shardOf(id cell.CellID) *shard {
	return s.shards[uint64(id)%uint64(len(s.shards))]
}

func (s *store) get(id cell.CellID) (float64, bool) {
	sh := s.shardOf(id)
	sh.lock.RLock()
	defer sh.lock.RUnlock()

	v, found := sh.values[id]

	return v, found
}

// insertIfAbsent stores v for id unless id already has a value. It returns
// true if v was stored.
func (s *store) insertIfAbsent(id cell.CellID, v float64) bool {
	sh := s.shardOf(id)
	sh.lock.Lock()
	defer sh.lock.Unlock()

	if _, found := sh.values[id]; found {
		return false
	}

	sh.values[id] = v

	return true
}

func (s *store) remove(id cell.CellID) bool {
	sh := s.shardOf(id)
	sh.lock.Lock()
	defer sh.lock.Unlock()

	if _, found := sh.values[id]; !found {
		return false
	}

	delete(sh.values, id)

	return true
}

// update replaces the value of id with f(old). If id is absent and create is
// false, nothing changes and found is false. If create is true, an absent id
// starts from initial.
func (s *store) update(
	id cell.CellID,
	create bool,
	initial float64,
	f func(old float64) float64,
) (before, after float64, found bool) {
	sh := s.shardOf(id)
	sh.lock.Lock()
	defer sh.lock.Unlock()

	before, found = sh.values[id]
	if !found {
		if !create {
			return 0, 0, false
		}

		before = initial
	}

	after = f(before)
	sh.values[id] = after

	return before, after, found
}

func (s *store) len() int {
	n := 0

	for _, sh := range s.shards {
		sh.lock.RLock()
		n += len(sh.values)
		sh.lock.RUnlock()
	}

	return n
}

// ids returns every stored cell in increasing order.
func (s *store) ids() []cell.CellID {
	ids := make([]cell.CellID, 0)

	for _, sh := range s.shards {
		sh.lock.RLock()
		for id := range sh.values {
			ids = append(ids, id)
		}
		sh.lock.RUnlock()
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

func (s *store) snapshot() map[cell.CellID]float64 {
	values := make(map[cell.CellID]float64)

	for _, sh := range s.shards {
		sh.lock.RLock()
		for id, v := range sh.values {
			values[id] = v
		}
		sh.lock.RUnlock()
	}

	return values
}

func (s *store) replace(values map[cell.CellID]float64) {
	for _, sh := range s.shards {
		sh.lock.Lock()
		clear(sh.values)
		sh.lock.Unlock()
	}

	for id, v := range values {
		sh := s.shardOf(id)
		sh.lock.Lock()
		sh.values[id] = v
		sh.lock.Unlock()
	}
}
