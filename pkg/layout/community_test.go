package layout

import (
	"testing"

	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/graph"
)

// twoClusterGraph builds two triangles joined by a single bridge edge.
func twoClusterGraph(t *testing.T) *graph.DiGraph {
	t.Helper()
	g := graph.New()
	for _, id := range []string{"a1", "a2", "a3", "b1", "b2", "b3"} {
		if err := g.AddNode(graph.Node{ID: id}); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
	}
	edges := [][2]string{
		{"a1", "a2"}, {"a2", "a3"}, {"a3", "a1"},
		{"b1", "b2"}, {"b2", "b3"}, {"b3", "b1"},
		{"a1", "b1"},
	}
	for _, e := range edges {
		if err := g.AddEdge(graph.Edge{From: e[0], To: e[1], Weight: 1}); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	return g
}

func TestGreedyCommunitiesPartition(t *testing.T) {
	g := twoClusterGraph(t)

	comm, err := GreedyCommunities(g)
	if err != nil {
		t.Fatalf("GreedyCommunities: %v", err)
	}

	// Every node in exactly one community, ids dense in [0, k)
	if len(comm) != g.NodeCount() {
		t.Fatalf("partition covers %d nodes, want %d", len(comm), g.NodeCount())
	}
	maxID := 0
	seen := map[int]bool{}
	for _, cid := range comm {
		if cid < 0 {
			t.Fatalf("negative community id %d", cid)
		}
		seen[cid] = true
		if cid > maxID {
			maxID = cid
		}
	}
	for i := 0; i <= maxID; i++ {
		if !seen[i] {
			t.Errorf("community ids not dense: %d missing", i)
		}
	}
}

func TestGreedyCommunitiesSeparatesClusters(t *testing.T) {
	g := twoClusterGraph(t)

	comm, err := GreedyCommunities(g)
	if err != nil {
		t.Fatalf("GreedyCommunities: %v", err)
	}

	if comm["a1"] != comm["a2"] || comm["a2"] != comm["a3"] {
		t.Errorf("a-triangle split across communities: %v", comm)
	}
	if comm["b1"] != comm["b2"] || comm["b2"] != comm["b3"] {
		t.Errorf("b-triangle split across communities: %v", comm)
	}
	if comm["a1"] == comm["b1"] {
		t.Errorf("triangles should land in different communities: %v", comm)
	}
}

func TestGreedyCommunitiesDeterministic(t *testing.T) {
	g := twoClusterGraph(t)

	first, err := GreedyCommunities(g)
	if err != nil {
		t.Fatalf("GreedyCommunities: %v", err)
	}
	second, err := GreedyCommunities(g)
	if err != nil {
		t.Fatalf("GreedyCommunities: %v", err)
	}
	for id, cid := range first {
		if second[id] != cid {
			t.Errorf("node %s: community %d then %d", id, cid, second[id])
		}
	}
}

func TestGreedyCommunitiesDegenerate(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.Node{ID: "only"})

	if _, err := GreedyCommunities(g); !errors.Is(err, errors.ErrCodeAlgorithmFailure) {
		t.Errorf("single-node graph error = %v, want ALGORITHM_FAILURE", err)
	}

	// Two nodes, no edges
	g2 := graph.New()
	g2.AddNode(graph.Node{ID: "a"})
	g2.AddNode(graph.Node{ID: "b"})
	if _, err := GreedyCommunities(g2); !errors.Is(err, errors.ErrCodeAlgorithmFailure) {
		t.Errorf("edgeless graph error = %v, want ALGORITHM_FAILURE", err)
	}
}

func TestGreedyCommunitiesIgnoresSelfLoops(t *testing.T) {
	g := twoClusterGraph(t)
	if err := g.AddEdge(graph.Edge{From: "a1", To: "a1", Weight: 1}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	if _, err := GreedyCommunities(g); err != nil {
		t.Errorf("self-loop should not break community detection: %v", err)
	}
}
