// Package runner executes configured simulation scenarios. Each
// scenario owns its graph, frontier, and completion state, so scenarios
// can be simulated concurrently without shared mutable state.
package runner

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tannerv/schedsim/internal/config"
	"github.com/tannerv/schedsim/internal/events"
	"github.com/tannerv/schedsim/internal/parse"
	"github.com/tannerv/schedsim/internal/persistence"
	"github.com/tannerv/schedsim/internal/scheduler"
)

// Result is the outcome of one scenario.
type Result struct {
	Scenario  string
	Workers   int
	BaseCost  int
	Order     string
	Elapsed   int
	TaskCount int
	Err       error
}

// Runner simulates the configured scenarios with bounded concurrency,
// publishing progress to an event bus and recording results in a store.
// Both collaborators are optional.
type Runner struct {
	cfg   *config.SchedsimConfig
	store persistence.Store
	bus   *events.EventBus

	mu      sync.Mutex
	results []Result
}

// New creates a Runner. store and bus may be nil.
func New(cfg *config.SchedsimConfig, store persistence.Store, bus *events.EventBus) *Runner {
	return &Runner{
		cfg:   cfg,
		store: store,
		bus:   bus,
	}
}

// Run simulates every configured scenario and returns the results
// sorted by scenario name. Scenario failures (unreadable input,
// malformed edges, cyclic graphs) are reported per result; only context
// cancellation aborts the whole run.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	limit := r.cfg.Concurrency
	if limit <= 0 {
		limit = 4
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	names := make([]string, 0, len(r.cfg.Scenarios))
	for name := range r.cfg.Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		scenario := r.cfg.Scenarios[name]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := r.RunScenario(ctx, name, scenario)
			r.mu.Lock()
			r.results = append(r.results, res)
			r.mu.Unlock()
			return nil
		})
	}

	err := g.Wait()

	r.mu.Lock()
	results := make([]Result, len(r.results))
	copy(results, r.results)
	r.mu.Unlock()
	sort.Slice(results, func(i, j int) bool { return results[i].Scenario < results[j].Scenario })

	return results, err
}

// RunScenario parses, validates, and simulates a single scenario.
func (r *Runner) RunScenario(ctx context.Context, name string, sc config.ScenarioConfig) Result {
	workers, baseCost := r.cfg.ScenarioParams(sc)
	res := Result{Scenario: name, Workers: workers, BaseCost: baseCost}

	f, err := os.Open(sc.Input)
	if err != nil {
		return r.fail(res, fmt.Errorf("opening input %s: %w", sc.Input, err))
	}
	edges, err := parse.Edges(f)
	f.Close()
	if err != nil {
		return r.fail(res, fmt.Errorf("parsing %s: %w", sc.Input, err))
	}

	graph := scheduler.BuildGraph(edges)

	// The schedulers never detect cycles themselves; this pre-flight
	// check is the external guard that keeps bad input from silently
	// producing an incomplete schedule.
	if _, err := graph.Validate(); err != nil {
		return r.fail(res, err)
	}

	res.TaskCount = graph.Len()
	started := time.Now()
	r.publish(events.TopicRun, events.RunStartedEvent{
		Name:      name,
		Workers:   workers,
		BaseCost:  baseCost,
		TaskCount: res.TaskCount,
		Timestamp: started,
	})

	res.Order = graph.ExecutionOrder()

	elapsed, trace, err := graph.SimulateTrace(workers, baseCost)
	if err != nil {
		return r.fail(res, err)
	}
	res.Elapsed = elapsed

	for _, ev := range trace {
		switch ev.Kind {
		case scheduler.TraceAssign:
			r.publish(events.TopicSim, events.TaskAssignedEvent{
				Name: name, TaskID: ev.TaskID, Worker: ev.Worker, Tick: ev.Tick, DoneAt: ev.DoneAt,
			})
		case scheduler.TraceComplete:
			r.publish(events.TopicSim, events.TaskCompletedEvent{
				Name: name, TaskID: ev.TaskID, Worker: ev.Worker, Tick: ev.Tick,
			})
		}
	}

	r.publish(events.TopicRun, events.RunFinishedEvent{
		Name:      name,
		Order:     res.Order,
		Elapsed:   elapsed,
		TaskCount: res.TaskCount,
		Duration:  time.Since(started),
		Timestamp: time.Now(),
	})

	if r.store != nil {
		record := &persistence.RunRecord{
			Scenario:    name,
			Workers:     workers,
			BaseCost:    baseCost,
			Order:       res.Order,
			Elapsed:     elapsed,
			TaskCount:   res.TaskCount,
			Assignments: assignments(trace),
		}
		if err := r.store.SaveRun(ctx, record); err != nil {
			return r.fail(res, fmt.Errorf("saving run for %q: %w", name, err))
		}
	}

	return res
}

// assignments flattens a simulation trace into per-task schedule slots.
// Every task is assigned exactly once, so assign events map one-to-one.
func assignments(trace []scheduler.TraceEvent) []persistence.Assignment {
	var out []persistence.Assignment
	for _, ev := range trace {
		if ev.Kind != scheduler.TraceAssign {
			continue
		}
		out = append(out, persistence.Assignment{
			TaskID:    ev.TaskID,
			Worker:    ev.Worker,
			StartTick: ev.Tick,
			EndTick:   ev.DoneAt,
		})
	}
	return out
}

func (r *Runner) fail(res Result, err error) Result {
	res.Err = err
	r.publish(events.TopicRun, events.RunFailedEvent{
		Name:      res.Scenario,
		Err:       err,
		Timestamp: time.Now(),
	})
	return res
}

func (r *Runner) publish(topic string, ev events.Event) {
	if r.bus != nil {
		r.bus.Publish(topic, ev)
	}
}
