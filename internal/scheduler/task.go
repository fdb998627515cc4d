package scheduler

// Edge is a single precedence constraint: Source must finish before
// Target may begin.
type Edge struct {
	Source string
	Target string
}

// Task is a unit of work in the graph. Edges are stored as two mirrored
// sets: every id in dependencies lists this task in its unlocks, and
// vice versa. Tasks are immutable once the graph is built.
type Task struct {
	ID           string
	dependencies map[string]struct{} // must complete before this task starts
	unlocks      map[string]struct{} // may become ready when this task completes
}

func newTask(id string) *Task {
	return &Task{
		ID:           id,
		dependencies: make(map[string]struct{}),
		unlocks:      make(map[string]struct{}),
	}
}

// Cost returns the work duration for this task: the task's ordinal
// distance from "A" plus the configured base cost. Identifiers are the
// single uppercase step letters produced by the input grammar, so cost
// strictly increases with the identifier. An empty identifier, which
// the parser cannot produce but BuildGraph accepts, costs the base
// alone.
func (t *Task) Cost(baseCost int) int {
	if t.ID == "" {
		return baseCost
	}
	return int(t.ID[0]-'A') + baseCost
}

// workerStatus models one simulated worker: idle, or working on a task
// until a known completion tick. Workers are pure simulation state owned
// by the single simulation loop; they never correspond to goroutines.
type workerStatus struct {
	taskID string // "" when idle
	doneAt int    // tick at which taskID completes
}

func (w workerStatus) idle() bool {
	return w.taskID == ""
}
