package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/egoview/egoview/pkg/graph"
	"github.com/egoview/egoview/pkg/layout"
)

// HideSources removes from sub every node without incoming edges in the
// full graph, keeping the focus. Edges touching removed nodes go with them.
// Returns the number of nodes removed.
func HideSources(sub, full *graph.DiGraph, focus string) int {
	removed := 0
	for _, id := range sub.NodeIDs() {
		if id == focus {
			continue
		}
		if full.InDegree(id) == 0 {
			sub.RemoveNode(id)
			removed++
		}
	}
	return removed
}

// Annotate turns an extraction into a render-ready view graph: role
// classification, colors, positions, sizes, edge styles, and tooltips.
// Layout and community results are read through layouts, keyed by the
// subgraph's content fingerprint.
//
// Layout algorithm failures (degenerate subgraphs and the like) degrade to
// default coloring and physics-driven placement; they never fail the view.
func Annotate(ctx context.Context, full *graph.DiGraph, ex *Extraction, layouts *layout.Cache, p Params) (*Graph, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if layouts == nil {
		layouts = layout.NewCache(nil, nil)
	}

	sub := ex.Subgraph
	out := &Graph{Focus: ex.Focus}
	if sub.NodeCount() == 0 {
		return out, nil
	}

	rendererPhysics := p.LayoutMode == LayoutPhysics || p.LayoutMode == LayoutCommunity

	var positions map[string]layout.Point
	var communityColors map[string]string
	switch p.LayoutMode {
	case LayoutStress, LayoutSpring:
		pos, err := layouts.Positions(ctx, sub, p.LayoutMode)
		if err != nil {
			rendererPhysics = true
		} else {
			positions = pos
		}
	case LayoutCommunity:
		if comm, err := layouts.Communities(ctx, sub); err == nil {
			k := 0
			for _, id := range comm {
				if id+1 > k {
					k = id + 1
				}
			}
			palette := CommunityPalette(k)
			communityColors = make(map[string]string, len(comm))
			for node, id := range comm {
				communityColors[node] = palette[id]
			}
		}
	}

	for _, n := range sub.Nodes() {
		role := ex.Role(n.ID)
		color := RoleColor(role)
		if c, ok := communityColors[n.ID]; ok && role != RoleFocus {
			color = c
		}

		var x, y *float64
		physics := rendererPhysics
		switch {
		case p.LayoutMode == LayoutPrecomputed:
			physics = true
			if fn, ok := full.Node(n.ID); ok && fn.X != nil {
				x = clonePos(fn.X)
				y = clonePos(fn.Y)
				physics = false
			}
		case positions != nil:
			if pt, ok := positions[n.ID]; ok {
				sx, sy := pt.X*positionScale, pt.Y*positionScale
				x, y = &sx, &sy
				physics = false
			}
		case p.LayoutMode == LayoutHierarchical:
			physics = true
		}

		size := SizeDefault
		if role == RoleFocus {
			size = SizeFocus
		}

		out.Nodes = append(out.Nodes, Node{
			ID:      n.ID,
			Label:   n.DisplayLabel(),
			Role:    role,
			Color:   color,
			X:       x,
			Y:       y,
			Size:    size,
			Physics: physics,
			Tooltip: tooltip(full, n, p.ShowAttributes),
		})
	}

	for _, e := range sub.Edges() {
		style := StyleDefault
		switch {
		case e.From == ex.Focus && ex.Forward[e.To]:
			style = StyleHighlightForward
		case e.To == ex.Focus && ex.Backward[e.From]:
			style = StyleHighlightBackward
		}
		out.Edges = append(out.Edges, Edge{
			From:    e.From,
			To:      e.To,
			Weight:  e.Weight,
			Style:   style,
			Tooltip: fmt.Sprintf("Weight: %g", e.Weight),
		})
	}
	return out, nil
}

// tooltip builds the plain-text hover title: the label, then one line per
// selected attribute read from the full graph. Missing values render "N/A".
func tooltip(full *graph.DiGraph, n *graph.Node, attrs []string) string {
	title := n.DisplayLabel()
	if len(attrs) == 0 {
		return title
	}
	lines := make([]string, 0, len(attrs))
	for _, key := range attrs {
		val := "N/A"
		if fn, ok := full.Node(n.ID); ok {
			if v, ok := fn.Attrs[key]; ok {
				val = fmt.Sprint(v)
			}
		}
		lines = append(lines, humanizeKey(key)+": "+val)
	}
	return title + "\n---\n" + strings.Join(lines, "\n")
}

// humanizeKey turns "lines_of_code" into "Lines Of Code".
func humanizeKey(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func clonePos(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
