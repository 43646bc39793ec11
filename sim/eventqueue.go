package sim

import (
	"container/heap"
	"sync"
)

// eventQueue orders events by time. Events at the same time leave in the
// order they were pushed, so a run is reproducible.
type eventQueue struct {
	lock   sync.Mutex
	events eventHeap
	pushed uint64
}

type queuedEvent struct {
	evt Event
	seq uint64
}

func (q *eventQueue) push(evt Event) {
	q.lock.Lock()
	defer q.lock.Unlock()

	q.pushed++
	heap.Push(&q.events, queuedEvent{evt: evt, seq: q.pushed})
}

// pop removes the earliest event. It returns nil if the queue is empty.
func (q *eventQueue) pop() Event {
	q.lock.Lock()
	defer q.lock.Unlock()

	if len(q.events) == 0 {
		return nil
	}

	return heap.Pop(&q.events).(queuedEvent).evt
}

func (q *eventQueue) len() int {
	q.lock.Lock()
	defer q.lock.Unlock()

	return len(q.events)
}

type eventHeap []queuedEvent

func (h eventHeap) Len() int {
	return len(h)
}

func (h eventHeap) Less(i, j int) bool {
	ti, tj := h[i].evt.Time(), h[j].evt.Time()
	if ti != tj {
		return ti < tj
	}

	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(queuedEvent))
}

func (h *eventHeap) Pop() any {
	old := *h
	last := old[len(old)-1]
	old[len(old)-1] = queuedEvent{}
	*h = old[:len(old)-1]

	return last
}
