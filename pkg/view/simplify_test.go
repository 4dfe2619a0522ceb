package view

import (
	"testing"

	"github.com/egoview/egoview/pkg/graph"
)

func TestCollapseChains(t *testing.T) {
	g := chainGraph(t)

	// Forward-only view from c: {c, d, e} with c->d->e. d is a pure
	// pass-through and collapses into a direct c->e edge.
	ex, err := Extract(g, "c", 2, 0)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	removed := CollapseChains(ex.Subgraph, "c")
	if removed != 1 {
		t.Fatalf("removed %d nodes, want 1", removed)
	}
	if got := subgraphIDs(ex); !equalStrings(got, []string{"c", "e"}) {
		t.Fatalf("nodes after collapse = %v, want {c, e}", got)
	}
	e, ok := ex.Subgraph.Edge("c", "e")
	if !ok {
		t.Fatal("collapse should rewire c->d->e into c->e")
	}
	if e.Weight != 3 {
		t.Errorf("rewired edge weight = %g, want the incoming edge's 3", e.Weight)
	}
}

func TestCollapseChainsProtectsFocus(t *testing.T) {
	g := chainGraph(t)

	// b -> c -> d with focus c: the focus is itself degree-(1,1) but must
	// survive.
	ex, err := Extract(g, "c", 1, 1)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	CollapseChains(ex.Subgraph, "c")
	if !ex.Subgraph.HasNode("c") {
		t.Fatal("focus node collapsed away")
	}
	if got := subgraphIDs(ex); !equalStrings(got, []string{"b", "c", "d"}) {
		t.Errorf("nodes after collapse = %v, want {b, c, d} unchanged", got)
	}
}

func TestCollapseChainsNoSelfLoop(t *testing.T) {
	g := graph.New()
	for _, id := range []string{"p", "n"} {
		g.AddNode(graph.Node{ID: id})
	}
	// p -> n -> p: collapsing n would create a self-loop on p.
	g.AddEdge(graph.Edge{From: "p", To: "n", Weight: 1})
	g.AddEdge(graph.Edge{From: "n", To: "p", Weight: 1})

	if removed := CollapseChains(g, "p"); removed != 0 {
		t.Fatalf("removed %d nodes, want 0", removed)
	}
	if _, ok := g.Edge("p", "p"); ok {
		t.Error("collapse introduced a self-loop")
	}
}

func TestCollapseChainsLongChain(t *testing.T) {
	// f -> x1 -> x2 -> x3 -> t collapses to f -> t over several passes.
	g := graph.New()
	ids := []string{"f", "x1", "x2", "x3", "t"}
	for _, id := range ids {
		g.AddNode(graph.Node{ID: id})
	}
	for i := 0; i+1 < len(ids); i++ {
		g.AddEdge(graph.Edge{From: ids[i], To: ids[i+1], Weight: 1})
	}

	if removed := CollapseChains(g, "f"); removed != 3 {
		t.Fatalf("removed %d nodes, want 3", removed)
	}
	if g.NodeCount() != 2 {
		t.Fatalf("node count = %d, want 2", g.NodeCount())
	}
	if _, ok := g.Edge("f", "t"); !ok {
		t.Error("chain should collapse into a single f->t edge")
	}
}

func TestCollapseChainsPreservesReachability(t *testing.T) {
	// Branching graph: survivors are exactly the nodes with fan-in or
	// fan-out other than 1 plus the focus, and every surviving pair keeps
	// its connectivity.
	g := graph.New()
	for _, id := range []string{"f", "a", "b", "c", "d"} {
		g.AddNode(graph.Node{ID: id})
	}
	g.AddEdge(graph.Edge{From: "f", To: "a", Weight: 1}) // f -> a -> d
	g.AddEdge(graph.Edge{From: "a", To: "d", Weight: 1})
	g.AddEdge(graph.Edge{From: "f", To: "b", Weight: 1}) // f -> b -> c -> d
	g.AddEdge(graph.Edge{From: "b", To: "c", Weight: 1})
	g.AddEdge(graph.Edge{From: "c", To: "d", Weight: 1})

	CollapseChains(g, "f")

	if !g.HasNode("f") || !g.HasNode("d") {
		t.Fatal("branch endpoints must survive")
	}
	// Both branches reduce to direct (or merged) f->d connectivity.
	if _, ok := g.Edge("f", "d"); !ok {
		t.Error("reachability f->d lost after collapse")
	}
}

func TestCollapseChainsKeepsExistingEdge(t *testing.T) {
	// p -> n -> s alongside an existing p -> s: the collapse must not
	// produce a duplicate edge and keeps the original p -> s weight.
	g := graph.New()
	for _, id := range []string{"p", "n", "s", "w"} {
		g.AddNode(graph.Node{ID: id})
	}
	g.AddEdge(graph.Edge{From: "p", To: "n", Weight: 7})
	g.AddEdge(graph.Edge{From: "n", To: "s", Weight: 8})
	g.AddEdge(graph.Edge{From: "p", To: "s", Weight: 2})
	// Extra fan-out so p itself is not a chain candidate.
	g.AddEdge(graph.Edge{From: "p", To: "w", Weight: 1})

	if removed := CollapseChains(g, "w"); removed != 1 {
		t.Fatalf("removed %d nodes, want 1", removed)
	}
	e, ok := g.Edge("p", "s")
	if !ok {
		t.Fatal("edge p->s missing")
	}
	if e.Weight != 2 {
		t.Errorf("existing edge weight overwritten: got %g, want 2", e.Weight)
	}
}
