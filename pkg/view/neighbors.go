package view

import (
	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/graph"
)

// Neighbor is one entry in a navigation panel listing.
type Neighbor struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Neighbors lists the focus node's direct successors and predecessors,
// sorted by id and colored the way a radius-1 view would color them.
// Nodes that are both successor and predecessor take the "both" color in
// either list.
func Neighbors(g *graph.DiGraph, focus string) (successors, predecessors []Neighbor, err error) {
	if !g.HasNode(focus) {
		return nil, nil, errors.New(errors.ErrCodeUnknownNode, "focus node %q not in graph", focus)
	}

	succSet := map[string]bool{}
	for _, id := range g.Successors(focus) {
		succSet[id] = true
	}
	predSet := map[string]bool{}
	for _, id := range g.Predecessors(focus) {
		predSet[id] = true
	}

	for _, id := range g.Successors(focus) {
		color := ColorForward
		if predSet[id] {
			color = ColorBoth
		}
		successors = append(successors, makeNeighbor(g, id, color))
	}
	for _, id := range g.Predecessors(focus) {
		color := ColorBackward
		if succSet[id] {
			color = ColorBoth
		}
		predecessors = append(predecessors, makeNeighbor(g, id, color))
	}
	return successors, predecessors, nil
}

func makeNeighbor(g *graph.DiGraph, id, color string) Neighbor {
	label := id
	if n, ok := g.Node(id); ok {
		label = n.DisplayLabel()
	}
	return Neighbor{ID: id, Label: label, Color: color}
}
