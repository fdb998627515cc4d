package scheduler

// TraceKind discriminates the transitions recorded during a simulation.
type TraceKind int

const (
	TraceAssign   TraceKind = iota // a worker claimed a ready task
	TraceComplete                  // a worker finished its task
)

// TraceEvent is one scheduling transition observed by SimulateTrace.
type TraceEvent struct {
	Tick   int
	Kind   TraceKind
	TaskID string
	Worker int // worker index
	DoneAt int // for TraceAssign, the tick the task finishes
}

// Simulate runs the discrete-event worker-pool simulation and returns
// the total elapsed time until every task has completed.
func (g *TaskGraph) Simulate(workerCount, baseCost int) (int, error) {
	elapsed, _, err := g.simulate(workerCount, baseCost, false)
	return elapsed, err
}

// SimulateTrace is Simulate with a full record of every assignment and
// completion, for observers that replay or display the schedule.
func (g *TaskGraph) SimulateTrace(workerCount, baseCost int) (int, []TraceEvent, error) {
	return g.simulate(workerCount, baseCost, true)
}

// simulate advances an integer clock one tick at a time. Each tick:
// idle workers claim ready tasks in worker-index order (lowest ready
// identifier first); if every worker is then idle the simulation is
// over; otherwise workers whose completion tick has arrived complete
// their tasks, feeding the frontier. The assignment policy is fixed so
// that results are reproducible; it is not a makespan optimizer.
func (g *TaskGraph) simulate(workerCount, baseCost int, trace bool) (int, []TraceEvent, error) {
	if workerCount < 1 {
		return 0, nil, ErrNoWorkers
	}

	rs := newRunState(g)
	workers := make([]workerStatus, workerCount)
	var events []TraceEvent

	t := 0
	for {
		for i := range workers {
			if !workers[i].idle() {
				continue
			}
			id, ok := rs.frontier.Pop()
			if !ok {
				break
			}
			doneAt := t + g.tasks[id].Cost(baseCost)
			workers[i] = workerStatus{taskID: id, doneAt: doneAt}
			if trace {
				events = append(events, TraceEvent{Tick: t, Kind: TraceAssign, TaskID: id, Worker: i, DoneAt: doneAt})
			}
		}

		// All workers idle after assignment means no work remains.
		allIdle := true
		for i := range workers {
			if !workers[i].idle() {
				allIdle = false
				break
			}
		}
		if allIdle {
			return t, events, nil
		}

		for i := range workers {
			if workers[i].idle() || t < workers[i].doneAt {
				continue
			}
			rs.complete(workers[i].taskID)
			if trace {
				events = append(events, TraceEvent{Tick: t, Kind: TraceComplete, TaskID: workers[i].taskID, Worker: i})
			}
			workers[i] = workerStatus{}
		}

		t++
	}
}

// Simulate builds a graph from edges and returns the elapsed time for a
// worker-pool run with the given worker count and base cost.
func Simulate(edges []Edge, workerCount, baseCost int) (int, error) {
	return BuildGraph(edges).Simulate(workerCount, baseCost)
}
