package view

import (
	"testing"

	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/graph"
)

func TestNeighbors(t *testing.T) {
	g := chainGraph(t)
	// Add a reciprocal edge so d is both successor and predecessor of c.
	g.AddEdge(graph.Edge{From: "d", To: "c", Weight: 1})

	succs, preds, err := Neighbors(g, "c")
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}

	if len(succs) != 1 || succs[0].ID != "d" || succs[0].Color != ColorBoth {
		t.Errorf("successors = %+v, want d colored both", succs)
	}
	if len(preds) != 2 {
		t.Fatalf("predecessors = %+v, want b and d", preds)
	}
	if preds[0].ID != "b" || preds[0].Color != ColorBackward {
		t.Errorf("preds[0] = %+v, want b colored backward", preds[0])
	}
	if preds[1].ID != "d" || preds[1].Color != ColorBoth {
		t.Errorf("preds[1] = %+v, want d colored both", preds[1])
	}
}

func TestNeighborsUnknownFocus(t *testing.T) {
	g := chainGraph(t)
	if _, _, err := Neighbors(g, "ghost"); !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("error = %v, want UNKNOWN_NODE", err)
	}
}

func TestNeighborsUsesLabels(t *testing.T) {
	g := chainGraph(t)
	n, _ := g.Node("d")
	n.Label = "module d"

	succs, _, err := Neighbors(g, "c")
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	if succs[0].Label != "module d" {
		t.Errorf("label = %q, want display label", succs[0].Label)
	}
}
