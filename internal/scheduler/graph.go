package scheduler

import (
	"fmt"
	"sort"

	"github.com/gammazero/toposort"
)

// TaskGraph owns all tasks and their precedence edges. It is built once
// from a list of edges and is read-only afterwards, so a single graph can
// back any number of independent scheduling runs.
//
// Construction performs no acyclicity check: tasks on a cycle never
// become ready, so the schedulers silently never schedule them rather
// than failing. Callers that cannot trust their input to be a DAG
// should call Validate first.
type TaskGraph struct {
	tasks map[string]*Task
}

// BuildGraph constructs a TaskGraph from precedence edges. Task entities
// are created on first sight of their identifier; every edge adds the
// target to the source's unlock set and the source to the target's
// dependency set.
func BuildGraph(edges []Edge) *TaskGraph {
	g := &TaskGraph{tasks: make(map[string]*Task)}

	for _, e := range edges {
		src := g.upsert(e.Source)
		dst := g.upsert(e.Target)
		src.unlocks[dst.ID] = struct{}{}
		dst.dependencies[src.ID] = struct{}{}
	}

	return g
}

// upsert returns the task for id, creating it on first reference.
func (g *TaskGraph) upsert(id string) *Task {
	if t, exists := g.tasks[id]; exists {
		return t
	}
	t := newTask(id)
	g.tasks[id] = t
	return t
}

// Len returns the number of tasks in the graph.
func (g *TaskGraph) Len() int {
	return len(g.tasks)
}

// Task returns the task with the given id.
func (g *TaskGraph) Task(id string) (*Task, error) {
	t, exists := g.tasks[id]
	if !exists {
		return nil, fmt.Errorf("task %q: %w", id, ErrTaskNotFound)
	}
	return t, nil
}

// Roots returns the identifiers of all tasks with no dependencies.
// Order is unspecified; callers needing determinism must sort.
func (g *TaskGraph) Roots() []string {
	roots := make([]string, 0)
	for id, t := range g.tasks {
		if len(t.dependencies) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// DependenciesOf returns the sorted identifiers that must complete
// before id may start.
func (g *TaskGraph) DependenciesOf(id string) ([]string, error) {
	t, err := g.Task(id)
	if err != nil {
		return nil, err
	}
	return sortedKeys(t.dependencies), nil
}

// UnlocksOf returns the sorted identifiers that id's completion may
// make ready.
func (g *TaskGraph) UnlocksOf(id string) ([]string, error) {
	t, err := g.Task(id)
	if err != nil {
		return nil, err
	}
	return sortedKeys(t.unlocks), nil
}

// Validate runs a topological sort over the whole graph and returns the
// sorted identifiers, or an error if the edge set contains a cycle.
//
// The schedulers themselves never call this: on a cyclic graph they
// terminate with the cycle tasks left unscheduled. Validate exists so
// callers that want a hard failure can reject such input up front.
func (g *TaskGraph) Validate() ([]string, error) {
	var edges []toposort.Edge
	for id, t := range g.tasks {
		if len(t.dependencies) == 0 {
			// Keep dependency-free tasks in the sort output.
			edges = append(edges, toposort.Edge{nil, id})
			continue
		}
		for depID := range t.dependencies {
			edges = append(edges, toposort.Edge{depID, id})
		}
	}

	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return nil, fmt.Errorf("task graph contains cycle: %w", err)
	}

	order := make([]string, 0, len(g.tasks))
	for _, id := range sorted {
		if id != nil {
			order = append(order, id.(string))
		}
	}
	return order, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
