package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/tannerv/schedsim/internal/scheduler"
)

const exampleInput = `Step C must be finished before step A can begin.
Step C must be finished before step F can begin.
Step A must be finished before step B can begin.
Step A must be finished before step D can begin.
Step B must be finished before step E can begin.
Step D must be finished before step E can begin.
Step F must be finished before step E can begin.`

// TestEdges verifies extraction of well-formed instruction lines.
func TestEdges(t *testing.T) {
	edges, err := EdgesFromString(exampleInput)
	if err != nil {
		t.Fatalf("EdgesFromString: %v", err)
	}

	if len(edges) != 7 {
		t.Fatalf("expected 7 edges, got %d", len(edges))
	}
	if edges[0] != (scheduler.Edge{Source: "C", Target: "A"}) {
		t.Errorf("first edge = %+v, want C->A", edges[0])
	}
	if edges[6] != (scheduler.Edge{Source: "F", Target: "E"}) {
		t.Errorf("last edge = %+v, want F->E", edges[6])
	}
}

// TestEdgesMalformed verifies the first bad line aborts parsing.
func TestEdgesMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"arbitrary text", "this is not an instruction"},
		{"lowercase step", "Step c must be finished before step A can begin."},
		{"multi-letter step", "Step AB must be finished before step C can begin."},
		{"missing period", "Step A must be finished before step B can begin"},
		{"bad line after good line", exampleInput + "\nStep ? broken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EdgesFromString(tt.input)
			if !errors.Is(err, ErrMalformedEdge) {
				t.Errorf("expected ErrMalformedEdge, got %v", err)
			}
		})
	}
}

// TestEdgesBlankAndEmpty verifies blank lines are skipped and empty
// input yields no edges.
func TestEdgesBlankAndEmpty(t *testing.T) {
	edges, err := EdgesFromString("\n\nStep A must be finished before step B can begin.\n\n")
	if err != nil {
		t.Fatalf("EdgesFromString: %v", err)
	}
	if len(edges) != 1 {
		t.Errorf("expected 1 edge, got %d", len(edges))
	}

	edges, err = EdgesFromString("")
	if err != nil {
		t.Fatalf("EdgesFromString(empty): %v", err)
	}
	if len(edges) != 0 {
		t.Errorf("expected no edges from empty input, got %d", len(edges))
	}
}

// TestParseThenSchedule runs the parsed example through both
// schedulers end to end.
func TestParseThenSchedule(t *testing.T) {
	edges, err := Edges(strings.NewReader(exampleInput))
	if err != nil {
		t.Fatalf("Edges: %v", err)
	}

	if order := scheduler.ExecutionOrder(edges); order != "CABDFE" {
		t.Errorf("ExecutionOrder = %q, want CABDFE", order)
	}

	elapsed, err := scheduler.Simulate(edges, 2, 0)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if elapsed != 15 {
		t.Errorf("elapsed = %d, want 15", elapsed)
	}
}
