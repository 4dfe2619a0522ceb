package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// =============================================================================
// Node-Link Serialization Format
// =============================================================================

// nodeLink is the wire format for directed graphs:
//
//	{
//	  "directed": true,
//	  "multigraph": false,
//	  "nodes": [{"id": "a", "label": "a", "x": 1.0, ...attrs}],
//	  "links": [{"source": "a", "target": "b", "weight": 2.5, ...attrs}]
//	}
//
// Node and link objects are open: any keys beyond the fixed schema are carried
// as attributes. Maps marshal with sorted keys, so output is deterministic.
type nodeLink struct {
	Directed   bool             `json:"directed"`
	Multigraph bool             `json:"multigraph"`
	Graph      map[string]any   `json:"graph"`
	Nodes      []map[string]any `json:"nodes"`
	Links      []map[string]any `json:"links"`
}

// fromDiGraph converts a DiGraph to its wire format.
// Nodes are sorted by ID and links by (source, target) for deterministic
// output; this also makes the serialization usable as a content fingerprint.
func fromDiGraph(g *DiGraph) nodeLink {
	out := nodeLink{
		Directed:   true,
		Multigraph: false,
		Graph:      map[string]any{},
		Nodes:      make([]map[string]any, 0, g.NodeCount()),
		Links:      make([]map[string]any, 0, g.EdgeCount()),
	}

	for _, n := range g.Nodes() {
		obj := map[string]any{"id": n.ID}
		if n.Label != "" {
			obj["label"] = n.Label
		}
		if n.X != nil {
			obj["x"] = *n.X
		}
		if n.Y != nil {
			obj["y"] = *n.Y
		}
		for k, v := range n.Attrs {
			obj[k] = v
		}
		out.Nodes = append(out.Nodes, obj)
	}

	for _, e := range g.Edges() {
		obj := map[string]any{
			"source": e.From,
			"target": e.To,
			"weight": e.Weight,
		}
		for k, v := range e.Attrs {
			obj[k] = v
		}
		out.Links = append(out.Links, obj)
	}

	return out
}

// toDiGraph converts wire data to a DiGraph.
// Returns an error for multigraph input, non-string node identifiers,
// duplicate nodes or edges, and links referencing unknown nodes.
func toDiGraph(data nodeLink) (*DiGraph, error) {
	if data.Multigraph {
		return nil, fmt.Errorf("multigraph input is not supported")
	}

	g := New()

	for i, obj := range data.Nodes {
		n, err := nodeFromObject(obj)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("add node %q: %w", n.ID, err)
		}
	}

	for i, obj := range data.Links {
		e, err := edgeFromObject(obj)
		if err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
		if err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("add edge %s→%s: %w", e.From, e.To, err)
		}
	}

	return g, nil
}

func nodeFromObject(obj map[string]any) (Node, error) {
	id, ok := obj["id"].(string)
	if !ok || id == "" {
		return Node{}, fmt.Errorf("node id must be a non-empty string, got %v", obj["id"])
	}

	n := Node{ID: id, Attrs: Metadata{}}
	for k, v := range obj {
		switch k {
		case AttrID:
			// already handled
		case AttrLabel:
			if s, ok := v.(string); ok {
				n.Label = s
			}
		case AttrX:
			if f, ok := toFloat(v); ok {
				n.X = &f
			}
		case AttrY:
			if f, ok := toFloat(v); ok {
				n.Y = &f
			}
		default:
			n.Attrs[k] = v
		}
	}
	return n, nil
}

func edgeFromObject(obj map[string]any) (Edge, error) {
	src, ok := obj["source"].(string)
	if !ok || src == "" {
		return Edge{}, fmt.Errorf("link source must be a non-empty string, got %v", obj["source"])
	}
	dst, ok := obj["target"].(string)
	if !ok || dst == "" {
		return Edge{}, fmt.Errorf("link target must be a non-empty string, got %v", obj["target"])
	}

	e := Edge{From: src, To: dst, Weight: 1, Attrs: Metadata{}}
	for k, v := range obj {
		switch k {
		case "source", "target":
			// already handled
		case "weight":
			if f, ok := toFloat(v); ok {
				e.Weight = f
			}
		default:
			e.Attrs[k] = v
		}
	}
	return e, nil
}

// toFloat accepts the numeric types encoding/json may produce.
func toFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case int:
		return float64(f), true
	case json.Number:
		parsed, err := f.Float64()
		return parsed, err == nil
	}
	return 0, false
}

// fingerprint computes the stable content hash over the canonical
// serialization of the graph.
func fingerprint(g *DiGraph) string {
	data, err := json.Marshal(fromDiGraph(g))
	if err != nil {
		// Attribute values originate from JSON decoding, so marshaling
		// cannot fail on real graphs; keep the signature hash-only.
		data = []byte(fmt.Sprintf("nodes=%d edges=%d", g.NodeCount(), g.EdgeCount()))
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
