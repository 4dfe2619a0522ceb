package pipeline

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/egoview/egoview/pkg/cache"
	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/graph"
	"github.com/egoview/egoview/pkg/view"
)

func testRunner() *Runner {
	return NewRunner(cache.NewMemoryCache(), nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func chainGraph(t *testing.T) *graph.DiGraph {
	t.Helper()
	g := graph.New()
	ids := []string{"a", "b", "c", "d", "e"}
	for _, id := range ids {
		if err := g.AddNode(graph.Node{ID: id}); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
	}
	for i := 0; i+1 < len(ids); i++ {
		if err := g.AddEdge(graph.Edge{From: ids[i], To: ids[i+1], Weight: 1}); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	return g
}

func TestOptionsValidate(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidParameter) {
		t.Errorf("missing focus error = %v, want INVALID_PARAMETER", err)
	}

	opts = Options{Focus: "a"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.LayoutMode != DefaultLayoutMode {
		t.Errorf("layout mode = %q, want default %q", opts.LayoutMode, DefaultLayoutMode)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("formats = %v, want [json]", opts.Formats)
	}

	opts = Options{Focus: "a", Formats: []string{"gif"}}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format error = %v, want INVALID_FORMAT", err)
	}

	opts = Options{Focus: "a", OutRadius: -1}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidParameter) {
		t.Errorf("negative radius error = %v, want INVALID_PARAMETER", err)
	}
}

func TestExecute(t *testing.T) {
	r := testRunner()
	defer r.Close()
	g := chainGraph(t)

	result, err := r.Execute(context.Background(), g, Options{
		Focus:     "c",
		OutRadius: 1,
		InRadius:  1,
		Formats:   []string{FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.NodeCount != 3 || result.Stats.EdgeCount != 2 {
		t.Errorf("stats = %d nodes, %d edges, want 3 and 2", result.Stats.NodeCount, result.Stats.EdgeCount)
	}
	if len(result.View.Nodes) != 3 {
		t.Errorf("view has %d nodes, want 3", len(result.View.Nodes))
	}
	if result.ViewHash == "" {
		t.Error("view hash should be set")
	}
	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("json artifact missing")
	}
	dot, ok := result.Artifacts[FormatDOT]
	if !ok || !strings.Contains(string(dot), "digraph ego") {
		t.Error("dot artifact missing or malformed")
	}
}

func TestExecuteUnknownFocus(t *testing.T) {
	r := testRunner()
	defer r.Close()

	result, err := r.Execute(context.Background(), chainGraph(t), Options{Focus: "ghost"})
	if err != nil {
		t.Fatalf("unknown focus should not fail the pipeline: %v", err)
	}
	if len(result.View.Nodes) != 0 {
		t.Errorf("view has %d nodes, want empty", len(result.View.Nodes))
	}
}

func TestExecuteSimplify(t *testing.T) {
	r := testRunner()
	defer r.Close()

	result, err := r.Execute(context.Background(), chainGraph(t), Options{
		Focus:          "c",
		OutRadius:      2,
		SimplifyChains: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.CollapsedNodes != 1 {
		t.Errorf("collapsed %d nodes, want 1", result.Stats.CollapsedNodes)
	}
	if result.Stats.NodeCount != 2 {
		t.Errorf("node count = %d, want 2 after collapse", result.Stats.NodeCount)
	}
}

func TestExecuteHideSources(t *testing.T) {
	r := testRunner()
	defer r.Close()

	result, err := r.Execute(context.Background(), chainGraph(t), Options{
		Focus:       "c",
		InRadius:    2,
		HideSources: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.HiddenSources != 1 {
		t.Errorf("hid %d sources, want 1 (node a)", result.Stats.HiddenSources)
	}
	if _, ok := result.View.Node("a"); ok {
		t.Error("source node a should not appear in the view")
	}
}

func TestExecuteArtifactCache(t *testing.T) {
	r := testRunner()
	defer r.Close()
	g := chainGraph(t)
	opts := Options{Focus: "c", OutRadius: 1, InRadius: 1, Formats: []string{FormatJSON}}

	first, err := r.Execute(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should not hit the artifact cache")
	}

	second, err := r.Execute(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if string(first.Artifacts[FormatJSON]) != string(second.Artifacts[FormatJSON]) {
		t.Error("cached artifact differs from rendered artifact")
	}
}

func TestExecuteLayoutCache(t *testing.T) {
	r := testRunner()
	defer r.Close()
	g := chainGraph(t)
	opts := Options{Focus: "c", OutRadius: 2, InRadius: 2, LayoutMode: view.LayoutStress}

	first, err := r.Execute(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit {
		t.Error("first run should compute the layout")
	}

	second, err := r.Execute(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should find the layout cached")
	}
}

func TestBuildView(t *testing.T) {
	r := testRunner()
	defer r.Close()

	v, err := r.BuildView(context.Background(), chainGraph(t), Options{Focus: "c", OutRadius: 1, InRadius: 1})
	if err != nil {
		t.Fatalf("BuildView: %v", err)
	}
	n, ok := v.Node("c")
	if !ok || n.Role != view.RoleFocus {
		t.Errorf("focus node missing or misclassified: %+v", n)
	}
}
