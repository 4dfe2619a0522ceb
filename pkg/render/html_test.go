package render

import (
	"strings"
	"testing"
)

func TestHTML(t *testing.T) {
	page, err := HTML(sampleView(), HTMLOptions{Title: "demo"})
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	out := string(page)

	for _, want := range []string{
		"<title>demo</title>",
		"vis-network",
		`"id":"c"`,
		`"label":"module d"`,
		`"arrows":"to"`,
		"forceAtlas2Based",
		"#222222",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML output missing %q", want)
		}
	}
}

func TestHTMLDefaultsTitleToFocus(t *testing.T) {
	page, err := HTML(sampleView(), HTMLOptions{})
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(string(page), "<title>c</title>") {
		t.Error("page title should default to the focus node")
	}
}

func TestHTMLHierarchical(t *testing.T) {
	page, err := HTML(sampleView(), HTMLOptions{Hierarchical: true})
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	out := string(page)
	if !strings.Contains(out, "hierarchicalRepulsion") {
		t.Error("hierarchical option should switch the physics solver")
	}
	if !strings.Contains(out, `"nodeDistance":250`) {
		t.Error("hierarchical repulsion distance missing")
	}
}

func TestHTMLPhysicsDisabledWithFixedPositions(t *testing.T) {
	v := sampleView()
	for i := range v.Nodes {
		v.Nodes[i].Physics = false
	}
	page, err := HTML(v, HTMLOptions{})
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(string(page), `"enabled":false`) {
		t.Error("physics should be disabled when every node has fixed placement")
	}
}

func TestJSON(t *testing.T) {
	first, err := JSON(sampleView())
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	second, err := JSON(sampleView())
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if string(first) != string(second) {
		t.Error("JSON output should be deterministic")
	}
	for _, want := range []string{`"focus": "c"`, `"role": "focus"`, `"style": "highlighted-forward"`} {
		if !strings.Contains(string(first), want) {
			t.Errorf("JSON output missing %q", want)
		}
	}
}
