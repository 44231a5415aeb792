package match

// stepKind identifies a deferred simulation event.
type stepKind int

const (
	stepSpawnHazard stepKind = iota
)

// step is an event scheduled onto the simulation goroutine.
type step struct {
	kind stepKind
}

// stepQueue is a FIFO of events produced during a tick and drained within it.
type stepQueue struct {
	items []step
}

// Push appends an event.
func (q *stepQueue) Push(s step) {
	q.items = append(q.items, s)
}

// Drain calls fn for every queued event in order, including events pushed by fn,
// and leaves the queue empty.
func (q *stepQueue) Drain(fn func(step)) {
	for i := 0; i < len(q.items); i++ {
		fn(q.items[i])
	}
	q.items = q.items[:0]
}

// Len returns the number of queued events.
func (q *stepQueue) Len() int {
	return len(q.items)
}
