package scheduler

import "strings"

// runState is the per-run scheduling state shared by both schedulers:
// the completion set and the ready frontier. Each run owns a fresh
// runState so the underlying graph can be reused across runs.
type runState struct {
	graph     *TaskGraph
	completed map[string]struct{}
	frontier  *ReadyFrontier
}

// newRunState seeds the frontier with every zero-dependency task.
func newRunState(g *TaskGraph) *runState {
	rs := &runState{
		graph:     g,
		completed: make(map[string]struct{}),
		frontier:  NewReadyFrontier(),
	}
	for _, id := range g.Roots() {
		rs.frontier.Push(id)
	}
	return rs
}

// complete marks id done and pushes every unlocked task whose
// dependencies are now all completed. This is the single definition of
// the readiness rule; the sequential and worker-pool schedulers both go
// through it.
func (rs *runState) complete(id string) {
	rs.completed[id] = struct{}{}

	task := rs.graph.tasks[id]
	for unlockedID := range task.unlocks {
		unlocked := rs.graph.tasks[unlockedID]
		ready := true
		for depID := range unlocked.dependencies {
			if _, done := rs.completed[depID]; !done {
				ready = false
				break
			}
		}
		if ready {
			rs.frontier.Push(unlockedID)
		}
	}
}

// ExecutionOrder drains the graph one task at a time and returns the
// concatenated identifiers: a topological order of the DAG with the
// ascending-identifier tie-break. The graph is not mutated; calling
// ExecutionOrder repeatedly yields identical output.
func (g *TaskGraph) ExecutionOrder() string {
	rs := newRunState(g)

	var order strings.Builder
	order.Grow(g.Len())
	for {
		id, ok := rs.frontier.Pop()
		if !ok {
			break
		}
		rs.complete(id)
		order.WriteString(id)
	}
	return order.String()
}

// ExecutionOrder builds a graph from edges and returns its
// deterministic single-stream execution order.
func ExecutionOrder(edges []Edge) string {
	return BuildGraph(edges).ExecutionOrder()
}
