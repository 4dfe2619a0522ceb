package graph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DiGraph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DiGraph.AddNode] when a node with
	// the same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DiGraph.AddEdge] when the From
	// node does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DiGraph.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrDuplicateEdge is returned by [DiGraph.AddEdge] when an edge between
	// the same ordered pair already exists. The graph is multigraph-free.
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// Metadata stores arbitrary key-value pairs attached to nodes or edges.
// Values are scalars decoded from JSON (string, float64, bool, nil).
// Metadata maps are never nil - they are automatically initialized to empty
// maps when needed.
type Metadata map[string]any

// Reserved attribute keys used for layout and rendering. They are excluded
// from user-facing attribute pickers and tooltip selections.
const (
	AttrID      = "id"
	AttrLabel   = "label"
	AttrX       = "x"
	AttrY       = "y"
	AttrSize    = "size"
	AttrColor   = "color"
	AttrPhysics = "physics"
	AttrTitle   = "title"
)

// reservedAttrs is the set of keys excluded from attribute selection.
var reservedAttrs = map[string]bool{
	AttrID:      true,
	AttrLabel:   true,
	AttrX:       true,
	AttrY:       true,
	AttrSize:    true,
	AttrColor:   true,
	AttrPhysics: true,
	AttrTitle:   true,
}

// IsReservedAttr reports whether key is reserved for layout/rendering use.
func IsReservedAttr(key string) bool { return reservedAttrs[key] }

// Node represents a vertex with its fixed schema (id, label, optional
// precomputed position) plus an open attribute mapping for domain data.
//
// The zero value is not usable - ID must be set before adding to a DiGraph.
type Node struct {
	ID    string   // Unique identifier
	Label string   // Display label (defaults to ID when empty)
	X, Y  *float64 // Precomputed layout position, nil when absent
	Attrs Metadata // Domain attributes (never nil after AddNode)
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge represents a directed weighted connection between two nodes.
type Edge struct {
	From   string   // Source node ID
	To     string   // Target node ID
	Weight float64  // Edge weight (1 when the input omits it)
	Attrs  Metadata // Arbitrary key-value metadata (never nil after AddEdge)
}

// DiGraph is a directed multigraph-free graph with adjacency indices for
// forward and backward traversal.
//
// The zero value is not usable - use New to create a valid instance.
// DiGraph is not safe for concurrent mutation; the full graph is only
// mutated during load, and view subgraphs are confined to one request.
type DiGraph struct {
	nodes    map[string]*Node
	edges    map[[2]string]*Edge
	outgoing map[string][]string // nodeID -> successor IDs
	incoming map[string][]string // nodeID -> predecessor IDs
}

// New creates an empty DiGraph.
func New() *DiGraph {
	return &DiGraph{
		nodes:    make(map[string]*Node),
		edges:    make(map[[2]string]*Edge),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists. The node's Attrs field is
// automatically initialized to an empty map if nil.
func (g *DiGraph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Attrs == nil {
		n.Attrs = Metadata{}
	}
	g.nodes[n.ID] = &n
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode if an endpoint is
// missing, and ErrDuplicateEdge if the ordered pair already has an edge.
// Self-loops are permitted. The edge's Attrs field is automatically
// initialized to an empty map if nil.
func (g *DiGraph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	key := [2]string{e.From, e.To}
	if _, exists := g.edges[key]; exists {
		return ErrDuplicateEdge
	}
	if e.Attrs == nil {
		e.Attrs = Metadata{}
	}
	g.edges[key] = &e
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// RemoveEdge removes the edge from→to if it exists.
// No error is returned if the edge does not exist.
func (g *DiGraph) RemoveEdge(from, to string) {
	key := [2]string{from, to}
	if _, ok := g.edges[key]; !ok {
		return
	}
	delete(g.edges, key)
	g.outgoing[from] = slices.DeleteFunc(g.outgoing[from], func(s string) bool { return s == to })
	g.incoming[to] = slices.DeleteFunc(g.incoming[to], func(s string) bool { return s == from })
}

// RemoveNode removes a node and all edges touching it.
// No error is returned if the node does not exist.
func (g *DiGraph) RemoveNode(id string) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	for _, to := range slices.Clone(g.outgoing[id]) {
		g.RemoveEdge(id, to)
	}
	for _, from := range slices.Clone(g.incoming[id]) {
		g.RemoveEdge(from, id)
	}
	delete(g.outgoing, id)
	delete(g.incoming, id)
	delete(g.nodes, id)
}

// Node returns the node with the given ID and true, or nil and false if not
// found. The returned pointer refers to the actual node in the graph.
func (g *DiGraph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasNode reports whether a node with the given ID exists.
func (g *DiGraph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Edge returns the edge from→to and true, or nil and false if not found.
func (g *DiGraph) Edge(from, to string) (*Edge, bool) {
	e, ok := g.edges[[2]string{from, to}]
	return e, ok
}

// Nodes returns all nodes sorted by ID for deterministic iteration.
func (g *DiGraph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, func(a, b *Node) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return nodes
}

// NodeIDs returns all node IDs in sorted order.
func (g *DiGraph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Edges returns all edges sorted by (From, To) for deterministic iteration.
// The returned slice holds copies; modifications do not affect the graph.
func (g *DiGraph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		edges = append(edges, *e)
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		if a.From != b.From {
			if a.From < b.From {
				return -1
			}
			return 1
		}
		if a.To < b.To {
			return -1
		}
		if a.To > b.To {
			return 1
		}
		return 0
	})
	return edges
}

// NodeCount returns the number of nodes in the graph.
func (g *DiGraph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *DiGraph) EdgeCount() int { return len(g.edges) }

// Successors returns the IDs of nodes this node has edges to, sorted.
func (g *DiGraph) Successors(id string) []string {
	out := slices.Clone(g.outgoing[id])
	slices.Sort(out)
	return out
}

// Predecessors returns the IDs of nodes that have edges to this node, sorted.
func (g *DiGraph) Predecessors(id string) []string {
	in := slices.Clone(g.incoming[id])
	slices.Sort(in)
	return in
}

// OutDegree returns the number of outgoing edges from the node.
// Returns 0 if the node doesn't exist.
func (g *DiGraph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
// Returns 0 if the node doesn't exist.
func (g *DiGraph) InDegree(id string) int { return len(g.incoming[id]) }

// Sources returns the IDs of nodes with no incoming edges, sorted.
func (g *DiGraph) Sources() []string {
	var sources []string
	for id := range g.nodes {
		if len(g.incoming[id]) == 0 {
			sources = append(sources, id)
		}
	}
	slices.Sort(sources)
	return sources
}

// AvailableAttributes returns the sorted union of non-reserved attribute keys
// across all nodes. This feeds the UI's attribute picker.
func (g *DiGraph) AvailableAttributes() []string {
	seen := map[string]bool{}
	for _, n := range g.nodes {
		for k := range n.Attrs {
			if !IsReservedAttr(k) {
				seen[k] = true
			}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Fingerprint returns a stable content hash of the graph, used as the graph
// identity for layout caching. Two graphs with identical nodes, attributes,
// and edges share a fingerprint regardless of insertion order.
func (g *DiGraph) Fingerprint() string {
	return fingerprint(g)
}
