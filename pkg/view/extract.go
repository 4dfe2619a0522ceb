package view

import (
	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/graph"
)

// Extraction carries the bounded neighborhood of a focus node together with
// the reachability sets that produced it. Forward and Backward never contain
// the focus itself.
type Extraction struct {
	Focus    string
	Forward  map[string]bool
	Backward map[string]bool
	Subgraph *graph.DiGraph
}

// Role classifies a node against the extraction's reachability sets.
func (ex *Extraction) Role(id string) Role {
	switch {
	case id == ex.Focus:
		return RoleFocus
	case ex.Forward[id] && ex.Backward[id]:
		return RoleBoth
	case ex.Forward[id]:
		return RoleForward
	case ex.Backward[id]:
		return RoleBackward
	default:
		return RoleNone
	}
}

// Extract computes the bounded bidirectional neighborhood of focus: nodes
// reachable within outRadius forward hops or inRadius backward hops, with
// the edges lying on shortest forward paths from the focus or shortest
// backward paths to it. Radius 0 means no exploration in that direction,
// so both radii 0 yields the isolated focus.
//
// A focus absent from the graph returns an empty extraction together with
// an UNKNOWN_NODE error; callers render it as an empty view rather than
// failing.
func Extract(g *graph.DiGraph, focus string, outRadius, inRadius int) (*Extraction, error) {
	if err := errors.ValidateRadius("out_radius", outRadius, MaxRadius); err != nil {
		return nil, err
	}
	if err := errors.ValidateRadius("in_radius", inRadius, MaxRadius); err != nil {
		return nil, err
	}

	ex := &Extraction{
		Focus:    focus,
		Forward:  map[string]bool{},
		Backward: map[string]bool{},
		Subgraph: graph.New(),
	}
	if !g.HasNode(focus) {
		return ex, errors.New(errors.ErrCodeUnknownNode, "focus node %q not in graph", focus)
	}

	distF := hopDistances(g.Successors, focus, outRadius)
	distB := hopDistances(g.Predecessors, focus, inRadius)

	for id := range distF {
		if id != focus {
			ex.Forward[id] = true
		}
	}
	for id := range distB {
		if id != focus {
			ex.Backward[id] = true
		}
	}

	for id := range distF {
		copyNode(ex.Subgraph, g, id)
	}
	for id := range distB {
		copyNode(ex.Subgraph, g, id)
	}

	// Keep only edges on shortest paths relative to the focus.
	for _, e := range g.Edges() {
		if !ex.Subgraph.HasNode(e.From) || !ex.Subgraph.HasNode(e.To) {
			continue
		}
		df, okFrom := distF[e.From]
		dt, okTo := distF[e.To]
		onForward := okFrom && okTo && dt == df+1

		bf, okFrom := distB[e.From]
		bt, okTo := distB[e.To]
		onBackward := okFrom && okTo && bf == bt+1

		if onForward || onBackward {
			_ = ex.Subgraph.AddEdge(e)
		}
	}
	return ex, nil
}

// hopDistances runs a bounded BFS from start along the given adjacency
// function. The start node is always included at distance 0; radius 0
// explores nothing.
func hopDistances(next func(string) []string, start string, radius int) map[string]int {
	dist := map[string]int{start: 0}
	if radius <= 0 {
		return dist
	}
	queue := []string{start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if dist[u] == radius {
			continue
		}
		for _, v := range next(u) {
			if _, seen := dist[v]; !seen {
				dist[v] = dist[u] + 1
				queue = append(queue, v)
			}
		}
	}
	return dist
}

func copyNode(sub, g *graph.DiGraph, id string) {
	if sub.HasNode(id) {
		return
	}
	if n, ok := g.Node(id); ok {
		_ = sub.AddNode(*n)
	}
}
