package scheduler

import "testing"

// TestExecutionOrder covers the reference graph and a handful of
// shapes exercising the ascending-id tie-break.
func TestExecutionOrder(t *testing.T) {
	tests := []struct {
		name  string
		edges []Edge
		want  string
	}{
		{
			name:  "reference graph",
			edges: exampleEdges(),
			want:  "CABDFE",
		},
		{
			name:  "plain chain",
			edges: []Edge{{"A", "B"}, {"B", "C"}, {"C", "D"}},
			want:  "ABCD",
		},
		{
			name: "all ready at once picks ascending",
			// Z unlocks three siblings that become ready together.
			edges: []Edge{{"Z", "C"}, {"Z", "A"}, {"Z", "B"}},
			want:  "ZABC",
		},
		{
			name:  "two independent chains interleave by id",
			edges: []Edge{{"A", "C"}, {"B", "D"}},
			want:  "ABCD",
		},
		{
			name:  "empty graph",
			edges: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExecutionOrder(tt.edges); got != tt.want {
				t.Errorf("ExecutionOrder() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestExecutionOrderTopological verifies the result is a permutation of
// all tasks respecting every edge.
func TestExecutionOrderTopological(t *testing.T) {
	edges := exampleEdges()
	g := BuildGraph(edges)
	order := g.ExecutionOrder()

	if len(order) != g.Len() {
		t.Fatalf("order %q does not cover all %d tasks", order, g.Len())
	}

	pos := make(map[string]int, len(order))
	for i, id := range order {
		if _, dup := pos[string(id)]; dup {
			t.Fatalf("duplicate id %c in order %q", id, order)
		}
		pos[string(id)] = i
	}
	for _, e := range edges {
		if pos[e.Source] >= pos[e.Target] {
			t.Errorf("edge %s->%s violated in %q", e.Source, e.Target, order)
		}
	}
}

// TestExecutionOrderReusesGraph verifies a graph is not consumed by a
// run: repeated calls yield identical results.
func TestExecutionOrderReusesGraph(t *testing.T) {
	g := BuildGraph(exampleEdges())

	first := g.ExecutionOrder()
	second := g.ExecutionOrder()
	if first != second {
		t.Errorf("repeated ExecutionOrder diverged: %q then %q", first, second)
	}
}
