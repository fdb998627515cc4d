package scheduler

import "container/heap"

// ReadyFrontier holds the identifiers whose dependencies are all
// completed, ordered so that the smallest identifier is always popped
// first. The fixed ascending tie-break is what makes execution orders
// and simulations reproducible across runs.
type ReadyFrontier struct {
	ids idHeap
}

// NewReadyFrontier returns an empty frontier.
func NewReadyFrontier() *ReadyFrontier {
	return &ReadyFrontier{}
}

// Push inserts an identifier that just became ready.
//
// Precondition: id is neither pending in the frontier nor already
// completed. A task becomes ready exactly once in a well-formed run, so
// a violation indicates a graph-construction bug in the caller, not a
// condition the frontier defends against.
func (f *ReadyFrontier) Push(id string) {
	heap.Push(&f.ids, id)
}

// Pop removes and returns the smallest pending identifier. The second
// return value is false when no ready work remains.
func (f *ReadyFrontier) Pop() (string, bool) {
	if f.ids.Len() == 0 {
		return "", false
	}
	return heap.Pop(&f.ids).(string), true
}

// Len returns the number of pending identifiers.
func (f *ReadyFrontier) Len() int {
	return f.ids.Len()
}

// idHeap is a min-heap of identifiers in natural ascending order.
type idHeap []string

func (h idHeap) Len() int           { return len(h) }
func (h idHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h idHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *idHeap) Push(x any) {
	*h = append(*h, x.(string))
}

func (h *idHeap) Pop() any {
	old := *h
	n := len(old)
	id := old[n-1]
	*h = old[:n-1]
	return id
}
