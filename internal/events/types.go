package events

import "time"

// Event is the base interface for all simulation events.
type Event interface {
	EventType() string
	Scenario() string
}

// Topic constants
const (
	TopicRun = "run" // run lifecycle: started, finished, failed
	TopicSim = "sim" // per-tick scheduling transitions
)

// Event type constants
const (
	EventTypeRunStarted    = "run.started"
	EventTypeRunFinished   = "run.finished"
	EventTypeRunFailed     = "run.failed"
	EventTypeTaskAssigned  = "sim.task_assigned"
	EventTypeTaskCompleted = "sim.task_completed"
)

// RunStartedEvent is published when a scenario simulation begins.
type RunStartedEvent struct {
	Name      string
	Workers   int
	BaseCost  int
	TaskCount int
	Timestamp time.Time
}

func (e RunStartedEvent) EventType() string { return EventTypeRunStarted }
func (e RunStartedEvent) Scenario() string  { return e.Name }

// TaskAssignedEvent is published when a simulated worker claims a
// ready task.
type TaskAssignedEvent struct {
	Name   string
	TaskID string
	Worker int
	Tick   int
	DoneAt int
}

func (e TaskAssignedEvent) EventType() string { return EventTypeTaskAssigned }
func (e TaskAssignedEvent) Scenario() string  { return e.Name }

// TaskCompletedEvent is published when a simulated worker finishes
// its task.
type TaskCompletedEvent struct {
	Name   string
	TaskID string
	Worker int
	Tick   int
}

func (e TaskCompletedEvent) EventType() string { return EventTypeTaskCompleted }
func (e TaskCompletedEvent) Scenario() string  { return e.Name }

// RunFinishedEvent is published when a scenario simulation completes.
type RunFinishedEvent struct {
	Name      string
	Order     string
	Elapsed   int
	TaskCount int
	Duration  time.Duration
	Timestamp time.Time
}

func (e RunFinishedEvent) EventType() string { return EventTypeRunFinished }
func (e RunFinishedEvent) Scenario() string  { return e.Name }

// RunFailedEvent is published when a scenario cannot be simulated
// (unreadable input, malformed edges, cyclic graph).
type RunFailedEvent struct {
	Name      string
	Err       error
	Timestamp time.Time
}

func (e RunFailedEvent) EventType() string { return EventTypeRunFailed }
func (e RunFailedEvent) Scenario() string  { return e.Name }
