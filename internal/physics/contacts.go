package physics

// Pair identifies two bodies in contact. A is always the smaller id.
type Pair struct {
	A, B uint64
}

// NewPair returns the normalized pair for two body ids.
func NewPair(a, b uint64) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// ContactTracker turns per-step overlap sets into begin-contact events.
// A pair is reported once when it starts overlapping and again only after
// it has separated for at least one step.
type ContactTracker struct {
	active map[Pair]struct{}
	next   map[Pair]struct{} // Reused between steps
}

// NewContactTracker creates an empty tracker.
func NewContactTracker() *ContactTracker {
	return &ContactTracker{
		active: make(map[Pair]struct{}),
		next:   make(map[Pair]struct{}),
	}
}

// Step records the pairs overlapping this step and returns those that were not
// overlapping in the previous step, in the order they were given.
func (t *ContactTracker) Step(overlapping []Pair) []Pair {
	clear(t.next)
	var began []Pair
	for _, p := range overlapping {
		if _, seen := t.next[p]; seen {
			continue // Same pair reported twice this step
		}
		t.next[p] = struct{}{}
		if _, was := t.active[p]; !was {
			began = append(began, p)
		}
	}
	t.active, t.next = t.next, t.active
	return began
}

// Forget drops every active pair that involves the given id.
// Call this when a body is destroyed so a reused slot cannot inherit its contacts.
func (t *ContactTracker) Forget(id uint64) {
	for p := range t.active {
		if p.A == id || p.B == id {
			delete(t.active, p)
		}
	}
}

// Active returns the number of pairs currently in contact.
func (t *ContactTracker) Active() int {
	return len(t.active)
}
