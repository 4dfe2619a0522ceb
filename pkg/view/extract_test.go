package view

import (
	"sort"
	"testing"

	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/graph"
)

// chainGraph builds a -> b -> c -> d -> e.
func chainGraph(t *testing.T) *graph.DiGraph {
	t.Helper()
	g := graph.New()
	ids := []string{"a", "b", "c", "d", "e"}
	for _, id := range ids {
		if err := g.AddNode(graph.Node{ID: id}); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
	}
	for i := 0; i+1 < len(ids); i++ {
		if err := g.AddEdge(graph.Edge{From: ids[i], To: ids[i+1], Weight: float64(i + 1)}); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	return g
}

func subgraphIDs(ex *Extraction) []string {
	return ex.Subgraph.NodeIDs()
}

func TestExtractRadiusOne(t *testing.T) {
	g := chainGraph(t)

	ex, err := Extract(g, "c", 1, 1)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := []string{"b", "c", "d"}
	if got := subgraphIDs(ex); !equalStrings(got, want) {
		t.Fatalf("subgraph nodes = %v, want %v", got, want)
	}
	if !ex.Forward["d"] || len(ex.Forward) != 1 {
		t.Errorf("forward set = %v, want {d}", ex.Forward)
	}
	if !ex.Backward["b"] || len(ex.Backward) != 1 {
		t.Errorf("backward set = %v, want {b}", ex.Backward)
	}
	if _, ok := ex.Subgraph.Edge("b", "c"); !ok {
		t.Error("edge b->c missing from subgraph")
	}
	if _, ok := ex.Subgraph.Edge("c", "d"); !ok {
		t.Error("edge c->d missing from subgraph")
	}
	if ex.Subgraph.EdgeCount() != 2 {
		t.Errorf("subgraph has %d edges, want 2", ex.Subgraph.EdgeCount())
	}
}

func TestExtractZeroRadii(t *testing.T) {
	g := chainGraph(t)

	ex, err := Extract(g, "c", 0, 0)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := subgraphIDs(ex); !equalStrings(got, []string{"c"}) {
		t.Errorf("subgraph nodes = %v, want isolated focus", got)
	}
	if ex.Subgraph.EdgeCount() != 0 {
		t.Errorf("singleton view should carry no edges, got %d", ex.Subgraph.EdgeCount())
	}
	if len(ex.Forward) != 0 || len(ex.Backward) != 0 {
		t.Errorf("reachability sets should be empty: fwd=%v bwd=%v", ex.Forward, ex.Backward)
	}
}

func TestExtractUnknownFocus(t *testing.T) {
	g := chainGraph(t)

	ex, err := Extract(g, "ghost", 1, 1)
	if !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Fatalf("error = %v, want UNKNOWN_NODE", err)
	}
	if ex == nil || ex.Subgraph.NodeCount() != 0 {
		t.Error("unknown focus should yield an empty extraction")
	}
}

func TestExtractNegativeRadius(t *testing.T) {
	g := chainGraph(t)

	if _, err := Extract(g, "c", -1, 0); !errors.Is(err, errors.ErrCodeInvalidParameter) {
		t.Errorf("negative out radius error = %v, want INVALID_PARAMETER", err)
	}
	if _, err := Extract(g, "c", 0, -3); !errors.Is(err, errors.ErrCodeInvalidParameter) {
		t.Errorf("negative in radius error = %v, want INVALID_PARAMETER", err)
	}
	if _, err := Extract(g, "c", MaxRadius+1, 0); !errors.Is(err, errors.ErrCodeInvalidParameter) {
		t.Errorf("over-cap radius error = %v, want INVALID_PARAMETER", err)
	}
}

func TestExtractWithinRadius(t *testing.T) {
	g := chainGraph(t)

	ex, err := Extract(g, "c", 2, 2)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := subgraphIDs(ex); !equalStrings(got, []string{"a", "b", "c", "d", "e"}) {
		t.Fatalf("subgraph nodes = %v, want all five", got)
	}
	for id, want := range map[string]Role{
		"a": RoleBackward, "b": RoleBackward,
		"c": RoleFocus,
		"d": RoleForward, "e": RoleForward,
	} {
		if got := ex.Role(id); got != want {
			t.Errorf("role(%s) = %s, want %s", id, got, want)
		}
	}
}

func TestExtractShortestPathEdgesOnly(t *testing.T) {
	g := graph.New()
	for _, id := range []string{"a", "b", "c"} {
		g.AddNode(graph.Node{ID: id})
	}
	// Diamond shortcut: a->b->c and a->c. b->c is not on a shortest path
	// from a, since c sits at distance 1.
	g.AddEdge(graph.Edge{From: "a", To: "b", Weight: 1})
	g.AddEdge(graph.Edge{From: "b", To: "c", Weight: 1})
	g.AddEdge(graph.Edge{From: "a", To: "c", Weight: 1})

	ex, err := Extract(g, "a", 2, 0)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := subgraphIDs(ex); !equalStrings(got, []string{"a", "b", "c"}) {
		t.Fatalf("subgraph nodes = %v", got)
	}
	if _, ok := ex.Subgraph.Edge("b", "c"); ok {
		t.Error("edge b->c is off the shortest-path tree and should be dropped")
	}
	if ex.Subgraph.EdgeCount() != 2 {
		t.Errorf("subgraph has %d edges, want 2", ex.Subgraph.EdgeCount())
	}
}

func TestExtractBothRole(t *testing.T) {
	g := graph.New()
	for _, id := range []string{"a", "b"} {
		g.AddNode(graph.Node{ID: id})
	}
	g.AddEdge(graph.Edge{From: "a", To: "b", Weight: 1})
	g.AddEdge(graph.Edge{From: "b", To: "a", Weight: 1})

	ex, err := Extract(g, "a", 1, 1)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := ex.Role("b"); got != RoleBoth {
		t.Errorf("role(b) = %s, want both", got)
	}
}

func equalStrings(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	sort.Strings(got)
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
