package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/view"
)

// ToDOT converts a view graph to Graphviz DOT format. The resulting DOT
// string can be rendered with [RenderSVG] or [RenderPNG].
//
// Highlighted edges are drawn thicker and take the color of the matching
// role so the focus node's direct reach stands out in static output.
func ToDOT(v *view.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph ego {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"#222222\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fontcolor=white, color=\"#222222\"];\n")
	buf.WriteString("  edge [color=\"#aaaaaa\", fontcolor=white, fontsize=10];\n")
	buf.WriteString("\n")

	for _, n := range v.Nodes {
		attrs := []string{
			fmt.Sprintf("label=%q", n.Label),
			fmt.Sprintf("fillcolor=%q", dotColor(n.Color)),
			fmt.Sprintf("tooltip=%q", n.Tooltip),
		}
		if n.Role == view.RoleFocus {
			attrs = append(attrs, "penwidth=2", "color=white")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range v.Edges {
		attrs := []string{fmt.Sprintf("label=\"%g\"", e.Weight)}
		switch e.Style {
		case view.StyleHighlightForward:
			attrs = append(attrs, fmt.Sprintf("color=%q", view.ColorForward), "penwidth=2")
		case view.StyleHighlightBackward:
			attrs = append(attrs, fmt.Sprintf("color=%q", view.ColorBackward), "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG, true)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG, false)
}

func renderFormat(dot string, format graphviz.Format, fixViewBox bool) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	if fixViewBox {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element to a zero-origin viewBox
// with explicit pixel dimensions, which embeds more predictably in HTML.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

var hslRe = regexp.MustCompile(`^hsl\((\d+),\s*(\d+)%,\s*(\d+)%\)$`)

// dotColor converts CSS hsl() community colors to hex; Graphviz does not
// understand the CSS syntax. Hex and named colors pass through unchanged.
func dotColor(c string) string {
	m := hslRe.FindStringSubmatch(c)
	if m == nil {
		return c
	}
	h, _ := strconv.Atoi(m[1])
	s, _ := strconv.Atoi(m[2])
	l, _ := strconv.Atoi(m[3])
	r, g, b := hslToRGB(float64(h), float64(s)/100, float64(l)/100)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	c := (1 - abs(2*l-1)) * s
	hp := h / 60
	x := c * (1 - abs(mod2(hp)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := l - c/2
	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func mod2(v float64) float64 {
	for v >= 2 {
		v -= 2
	}
	return v
}
