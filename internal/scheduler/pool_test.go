package scheduler

import (
	"errors"
	"testing"
)

// TestSimulateReference verifies the reference scenario: two workers,
// zero base cost, makespan 15.
func TestSimulateReference(t *testing.T) {
	elapsed, err := Simulate(exampleEdges(), 2, 0)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if elapsed != 15 {
		t.Errorf("elapsed = %d, want 15", elapsed)
	}
}

// TestSimulateSingleWorkerChain verifies the serial makespan: with one
// worker each task occupies its cost plus the completion tick, since
// the freed worker is not reassigned until the following tick.
func TestSimulateSingleWorkerChain(t *testing.T) {
	edges := []Edge{{"A", "B"}, {"B", "C"}, {"C", "D"}}
	g := BuildGraph(edges)

	baseCost := 3
	wantTotal := 0
	for _, id := range []string{"A", "B", "C", "D"} {
		task, err := g.Task(id)
		if err != nil {
			t.Fatalf("Task(%s): %v", id, err)
		}
		wantTotal += task.Cost(baseCost) + 1
	}

	elapsed, err := g.Simulate(1, baseCost)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if elapsed != wantTotal {
		t.Errorf("elapsed = %d, want %d", elapsed, wantTotal)
	}
}

// TestSimulateMoreWorkersNeverSlower verifies makespan is monotonically
// non-increasing in the worker count.
func TestSimulateMoreWorkersNeverSlower(t *testing.T) {
	g := BuildGraph(exampleEdges())

	prev := -1
	for workers := 1; workers <= 5; workers++ {
		elapsed, err := g.Simulate(workers, 10)
		if err != nil {
			t.Fatalf("Simulate(%d workers): %v", workers, err)
		}
		if prev >= 0 && elapsed > prev {
			t.Errorf("makespan increased from %d to %d going to %d workers", prev, elapsed, workers)
		}
		prev = elapsed
	}
}

// TestSimulateEdgeCases covers degenerate inputs.
func TestSimulateEdgeCases(t *testing.T) {
	t.Run("zero tasks", func(t *testing.T) {
		elapsed, err := Simulate(nil, 3, 60)
		if err != nil {
			t.Fatalf("Simulate: %v", err)
		}
		if elapsed != 0 {
			t.Errorf("elapsed = %d, want 0", elapsed)
		}
	})

	t.Run("zero workers rejected", func(t *testing.T) {
		if _, err := Simulate(exampleEdges(), 0, 0); !errors.Is(err, ErrNoWorkers) {
			t.Errorf("expected ErrNoWorkers, got %v", err)
		}
	})

	t.Run("negative workers rejected", func(t *testing.T) {
		if _, err := Simulate(exampleEdges(), -1, 0); !errors.Is(err, ErrNoWorkers) {
			t.Errorf("expected ErrNoWorkers, got %v", err)
		}
	})

	t.Run("more workers than tasks", func(t *testing.T) {
		elapsed, err := Simulate(exampleEdges(), 50, 0)
		if err != nil {
			t.Fatalf("Simulate: %v", err)
		}
		// C(2) then A(0),F(5) then B(1),D(3) then E(4): 2+5+3+4 = 14.
		if elapsed != 14 {
			t.Errorf("elapsed = %d, want 14", elapsed)
		}
	})
}

// TestSimulateTrace verifies the recorded trace is a complete,
// single-assignment schedule agreeing with Simulate.
func TestSimulateTrace(t *testing.T) {
	g := BuildGraph(exampleEdges())

	elapsed, trace, err := g.SimulateTrace(2, 0)
	if err != nil {
		t.Fatalf("SimulateTrace: %v", err)
	}

	plain, err := g.Simulate(2, 0)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if elapsed != plain {
		t.Errorf("traced makespan %d != plain makespan %d", elapsed, plain)
	}

	assigned := make(map[string]TraceEvent)
	completed := make(map[string]TraceEvent)
	for _, ev := range trace {
		switch ev.Kind {
		case TraceAssign:
			if _, dup := assigned[ev.TaskID]; dup {
				t.Errorf("task %s assigned twice", ev.TaskID)
			}
			assigned[ev.TaskID] = ev
		case TraceComplete:
			if _, dup := completed[ev.TaskID]; dup {
				t.Errorf("task %s completed twice", ev.TaskID)
			}
			completed[ev.TaskID] = ev
		}
	}

	if len(assigned) != g.Len() {
		t.Errorf("assigned %d tasks, want %d", len(assigned), g.Len())
	}
	if len(completed) != g.Len() {
		t.Errorf("completed %d tasks, want %d", len(completed), g.Len())
	}

	for id, a := range assigned {
		c, ok := completed[id]
		if !ok {
			t.Errorf("task %s assigned but never completed", id)
			continue
		}
		if c.Tick != a.DoneAt {
			t.Errorf("task %s completed at t=%d, expected t=%d", id, c.Tick, a.DoneAt)
		}
		if c.Worker != a.Worker {
			t.Errorf("task %s completed on worker %d, assigned to %d", id, c.Worker, a.Worker)
		}
	}
}
