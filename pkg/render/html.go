package render

import (
	"bytes"
	"encoding/json"
	"html/template"

	"github.com/google/uuid"

	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/view"
)

// HTMLOptions configures the interactive HTML artifact.
type HTMLOptions struct {
	// Title is the page title. Defaults to the focus node id.
	Title string

	// Hierarchical switches the renderer to layered repulsion physics.
	Hierarchical bool
}

// visNode and visEdge mirror the wire shape the vis-network library expects.
type visNode struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Title   string   `json:"title"`
	Color   string   `json:"color"`
	Size    int      `json:"size"`
	Physics bool     `json:"physics"`
	Shape   string   `json:"shape"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
}

type visEdge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Title  string  `json:"title"`
	Width  float64 `json:"width"`
	Color  string  `json:"color,omitempty"`
	Arrows string  `json:"arrows"`
}

// HTML produces a standalone interactive page for the view graph, backed by
// the vis-network library with a forceAtlas2Based solver on a dark canvas.
func HTML(v *view.Graph, opts HTMLOptions) ([]byte, error) {
	if opts.Title == "" {
		opts.Title = v.Focus
	}

	nodes := make([]visNode, 0, len(v.Nodes))
	physicsEnabled := false
	for _, n := range v.Nodes {
		if n.Physics {
			physicsEnabled = true
		}
		nodes = append(nodes, visNode{
			ID:      n.ID,
			Label:   n.Label,
			Title:   n.Tooltip,
			Color:   n.Color,
			Size:    n.Size,
			Physics: n.Physics,
			Shape:   "dot",
			X:       n.X,
			Y:       n.Y,
		})
	}

	edges := make([]visEdge, 0, len(v.Edges))
	for _, e := range v.Edges {
		ve := visEdge{From: e.From, To: e.To, Title: e.Tooltip, Width: 1, Arrows: "to"}
		switch e.Style {
		case view.StyleHighlightForward:
			ve.Width = 2
			ve.Color = view.ColorForward
		case view.StyleHighlightBackward:
			ve.Width = 2
			ve.Color = view.ColorBackward
		}
		edges = append(edges, ve)
	}

	nodeJSON, err := json.Marshal(nodes)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize nodes")
	}
	edgeJSON, err := json.Marshal(edges)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize edges")
	}

	data := struct {
		Title       string
		ContainerID string
		Nodes       template.JS
		Edges       template.JS
		Options     template.JS
	}{
		Title:       opts.Title,
		ContainerID: "network-" + uuid.NewString(),
		Nodes:       template.JS(nodeJSON),
		Edges:       template.JS(edgeJSON),
		Options:     template.JS(visOptions(physicsEnabled, opts.Hierarchical)),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render HTML")
	}
	return buf.Bytes(), nil
}

func visOptions(physics, hierarchical bool) string {
	opts := map[string]any{
		"physics": map[string]any{
			"enabled": physics,
			"solver":  "forceAtlas2Based",
		},
	}
	if hierarchical {
		opts["physics"] = map[string]any{
			"enabled":             true,
			"solver":              "hierarchicalRepulsion",
			"hierarchicalRepulsion": map[string]any{"nodeDistance": 250},
		}
		opts["layout"] = map[string]any{"hierarchical": map[string]any{"enabled": true}}
	}
	data, _ := json.Marshal(opts)
	return string(data)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <script src="https://unpkg.com/vis-network/standalone/umd/vis-network.min.js"></script>
  <style>
    body { margin: 0; background-color: #222222; color: white; font-family: sans-serif; }
    #{{.ContainerID}} { width: 100%; height: 750px; border: none; }
  </style>
</head>
<body>
  <div id="{{.ContainerID}}"></div>
  <script>
    var nodes = new vis.DataSet({{.Nodes}});
    var edges = new vis.DataSet({{.Edges}});
    var container = document.getElementById("{{.ContainerID}}");
    var network = new vis.Network(container, { nodes: nodes, edges: edges }, {{.Options}});
  </script>
</body>
</html>
`))
