package view

// Role classifies a node's relation to the focus.
type Role string

const (
	RoleFocus    Role = "focus"
	RoleForward  Role = "forward"
	RoleBackward Role = "backward"
	RoleBoth     Role = "both"
	RoleNone     Role = "none"
)

// Style classifies an edge for rendering.
type Style string

const (
	StyleDefault           Style = "default"
	StyleHighlightForward  Style = "highlighted-forward"
	StyleHighlightBackward Style = "highlighted-backward"
)

// Node sizes in renderer units.
const (
	SizeFocus   = 25
	SizeDefault = 15
)

// positionScale maps normalized layout coordinates to renderer units.
const positionScale = 1500

// Node is a fully annotated view node. X and Y are nil when the renderer
// drives placement.
type Node struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Role    Role     `json:"role"`
	Color   string   `json:"color"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	Size    int      `json:"size"`
	Physics bool     `json:"physics"`
	Tooltip string   `json:"title"`
}

// Edge is an annotated view edge.
type Edge struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Weight  float64 `json:"weight"`
	Style   Style   `json:"style"`
	Tooltip string  `json:"title"`
}

// Graph is the render-ready view of one neighborhood. Created fresh per
// request and never written back to the full graph. Nodes and Edges are
// sorted by id and by (from, to) respectively.
type Graph struct {
	Focus string `json:"focus"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node returns the annotated node with the given id, if present.
func (g *Graph) Node(id string) (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// Edge returns the annotated edge between the given endpoints, if present.
func (g *Graph) Edge(from, to string) (*Edge, bool) {
	for i := range g.Edges {
		if g.Edges[i].From == from && g.Edges[i].To == to {
			return &g.Edges[i], true
		}
	}
	return nil, false
}
