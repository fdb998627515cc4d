package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tannerv/schedsim/internal/config"
	"github.com/tannerv/schedsim/internal/events"
	"github.com/tannerv/schedsim/internal/persistence"
)

const exampleInput = `Step C must be finished before step A can begin.
Step C must be finished before step F can begin.
Step A must be finished before step B can begin.
Step A must be finished before step D can begin.
Step B must be finished before step E can begin.
Step D must be finished before step E can begin.
Step F must be finished before step E can begin.`

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func testConfig(scenarios map[string]config.ScenarioConfig) *config.SchedsimConfig {
	cfg := config.DefaultConfig()
	cfg.DatabasePath = ""
	cfg.Scenarios = scenarios
	return cfg
}

// TestRunScenarios runs two scenarios concurrently and verifies
// results, stored history, and published events.
func TestRunScenarios(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "example.txt", exampleInput)

	one, two, zero := 1, 2, 0
	cfg := testConfig(map[string]config.ScenarioConfig{
		"parallel":   {Input: input, Workers: &two, BaseCost: &zero},
		"sequential": {Input: input, Workers: &one, BaseCost: &zero},
	})

	store, err := persistence.NewMemoryStore(context.Background())
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}
	defer store.Close()

	bus := events.NewEventBus()
	defer bus.Close()
	runCh := bus.Subscribe(events.TopicRun, 64)

	results, err := New(cfg, store, bus).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// Results come back sorted by scenario name.
	if results[0].Scenario != "parallel" || results[1].Scenario != "sequential" {
		t.Fatalf("unexpected result order: %s, %s", results[0].Scenario, results[1].Scenario)
	}

	for _, res := range results {
		if res.Err != nil {
			t.Fatalf("%s: unexpected error: %v", res.Scenario, res.Err)
		}
		if res.Order != "CABDFE" {
			t.Errorf("%s: order = %q, want CABDFE", res.Scenario, res.Order)
		}
		if res.TaskCount != 6 {
			t.Errorf("%s: task count = %d, want 6", res.Scenario, res.TaskCount)
		}
	}
	if results[0].Elapsed != 15 {
		t.Errorf("parallel elapsed = %d, want 15", results[0].Elapsed)
	}
	// One worker serializes the whole graph: costs 0..5 plus one
	// completion tick per task.
	if results[1].Elapsed != 21 {
		t.Errorf("sequential elapsed = %d, want 21", results[1].Elapsed)
	}

	runs, err := store.ListRuns(context.Background())
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 stored runs, got %d", len(runs))
	}

	last, err := store.LastRun(context.Background(), "parallel")
	if err != nil {
		t.Fatalf("LastRun: %v", err)
	}
	if len(last.Assignments) != 6 {
		t.Errorf("expected 6 stored assignments, got %d", len(last.Assignments))
	}

	// Each scenario publishes a started and a finished event.
	started, finished := 0, 0
	for i := 0; i < 4; i++ {
		ev := <-runCh
		switch ev.EventType() {
		case events.EventTypeRunStarted:
			started++
		case events.EventTypeRunFinished:
			finished++
		default:
			t.Errorf("unexpected run event %q", ev.EventType())
		}
	}
	if started != 2 || finished != 2 {
		t.Errorf("started/finished = %d/%d, want 2/2", started, finished)
	}
}

// TestRunScenarioFailures verifies per-scenario failure reporting.
func TestRunScenarioFailures(t *testing.T) {
	dir := t.TempDir()

	cyclic := writeInput(t, dir, "cyclic.txt",
		"Step A must be finished before step B can begin.\n"+
			"Step B must be finished before step A can begin.\n")
	malformed := writeInput(t, dir, "malformed.txt", "not an instruction line\n")

	tests := []struct {
		name  string
		input string
	}{
		{"cyclic graph", cyclic},
		{"malformed input", malformed},
		{"missing file", filepath.Join(dir, "missing.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(map[string]config.ScenarioConfig{
				"bad": {Input: tt.input},
			})

			results, err := New(cfg, nil, nil).Run(context.Background())
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if len(results) != 1 {
				t.Fatalf("expected 1 result, got %d", len(results))
			}
			if results[0].Err == nil {
				t.Error("expected scenario error, got nil")
			}
		})
	}
}

// TestRunNoScenarios verifies an empty scenario set is a no-op.
func TestRunNoScenarios(t *testing.T) {
	cfg := testConfig(nil)

	results, err := New(cfg, nil, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}
