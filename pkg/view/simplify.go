package view

import "github.com/egoview/egoview/pkg/graph"

// CollapseChains removes pass-through nodes from sub: any node other than
// protected with exactly one incoming and one outgoing edge is replaced by
// a direct edge from its predecessor to its successor, carrying the
// incoming edge's weight. Nodes whose predecessor equals their successor
// are left alone so no self-loop is ever introduced.
//
// Scans repeat until a full pass collapses nothing. Each collapse removes
// a node, so the loop terminates. Returns the number of nodes removed.
func CollapseChains(sub *graph.DiGraph, protected string) int {
	total := 0
	for {
		collapsed := 0
		for _, id := range sub.NodeIDs() {
			if id == protected || sub.InDegree(id) != 1 || sub.OutDegree(id) != 1 {
				continue
			}
			p := sub.Predecessors(id)[0]
			s := sub.Successors(id)[0]
			if p == s {
				continue
			}
			in, _ := sub.Edge(p, id)
			weight := in.Weight
			sub.RemoveNode(id)
			if _, exists := sub.Edge(p, s); !exists {
				_ = sub.AddEdge(graph.Edge{From: p, To: s, Weight: weight})
			}
			collapsed++
		}
		if collapsed == 0 {
			return total
		}
		total += collapsed
	}
}
