package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/egoview/egoview/pkg/cache"
	"github.com/egoview/egoview/pkg/graph"
	"github.com/egoview/egoview/pkg/pipeline"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	g := graph.New()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		if err := g.AddNode(graph.Node{ID: id}); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
	}
	for _, e := range [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "e"}} {
		if err := g.AddEdge(graph.Edge{From: e[0], To: e[1], Weight: 1}); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	n, _ := g.Node("c")
	n.Attrs = graph.Metadata{"lines_of_code": 10}

	dir := t.TempDir()
	if err := graph.WriteGraphFile(g, filepath.Join(dir, "demo.json")); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}

	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
	srv := New(runner, &DirSource{Dir: dir}, logger)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, body
}

func TestHandleView(t *testing.T) {
	ts := testServer(t)

	status, body := get(t, ts.URL+"/api/view?graph=demo&focus=c&out_radius=1&in_radius=1")
	if status != http.StatusOK {
		t.Fatalf("status = %d, body = %s", status, body)
	}

	var v struct {
		Focus string `json:"focus"`
		Nodes []struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"nodes"`
	}
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if v.Focus != "c" || len(v.Nodes) != 3 {
		t.Errorf("view = focus %q with %d nodes, want c with 3", v.Focus, len(v.Nodes))
	}
}

func TestHandleViewUnknownFocus(t *testing.T) {
	ts := testServer(t)

	status, body := get(t, ts.URL+"/api/view?graph=demo&focus=ghost")
	if status != http.StatusOK {
		t.Fatalf("unknown focus should yield an empty view, got %d: %s", status, body)
	}
	if !strings.Contains(string(body), `"nodes": []`) && !strings.Contains(string(body), `"nodes":[]`) && !strings.Contains(string(body), `"nodes": null`) {
		t.Errorf("expected empty node list, got %s", body)
	}
}

func TestHandleViewValidation(t *testing.T) {
	ts := testServer(t)

	status, _ := get(t, ts.URL+"/api/view?focus=c")
	if status != http.StatusBadRequest {
		t.Errorf("missing graph: status = %d, want 400", status)
	}

	status, _ = get(t, ts.URL+"/api/view?graph=demo&focus=c&out_radius=-1")
	if status != http.StatusBadRequest {
		t.Errorf("negative radius: status = %d, want 400", status)
	}

	status, _ = get(t, ts.URL+"/api/view?graph=demo&focus=c&out_radius=nope")
	if status != http.StatusBadRequest {
		t.Errorf("non-integer radius: status = %d, want 400", status)
	}

	status, _ = get(t, ts.URL+"/api/view?graph=missing&focus=c")
	if status != http.StatusNotFound {
		t.Errorf("missing graph file: status = %d, want 404", status)
	}
}

func TestHandleViewHTML(t *testing.T) {
	ts := testServer(t)

	status, body := get(t, ts.URL+"/view.html?graph=demo&focus=c")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(string(body), "vis-network") {
		t.Error("HTML view should embed the renderer")
	}
}

func TestHandleListGraphs(t *testing.T) {
	ts := testServer(t)

	status, body := get(t, ts.URL+"/api/graphs")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	var resp struct {
		Graphs []string `json:"graphs"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Graphs) != 1 || resp.Graphs[0] != "demo" {
		t.Errorf("graphs = %v, want [demo]", resp.Graphs)
	}
}

func TestHandleAttributes(t *testing.T) {
	ts := testServer(t)

	status, body := get(t, ts.URL+"/api/graphs/demo/attributes")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	var resp struct {
		Attributes []string `json:"attributes"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Attributes) != 1 || resp.Attributes[0] != "lines_of_code" {
		t.Errorf("attributes = %v, want [lines_of_code]", resp.Attributes)
	}
}

func TestHandleNeighbors(t *testing.T) {
	ts := testServer(t)

	status, body := get(t, ts.URL+"/api/graphs/demo/neighbors?focus=c")
	if status != http.StatusOK {
		t.Fatalf("status = %d: %s", status, body)
	}
	var resp struct {
		Successors   []struct{ ID string } `json:"successors"`
		Predecessors []struct{ ID string } `json:"predecessors"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Successors) != 1 || resp.Successors[0].ID != "d" {
		t.Errorf("successors = %+v, want [d]", resp.Successors)
	}
	if len(resp.Predecessors) != 1 || resp.Predecessors[0].ID != "b" {
		t.Errorf("predecessors = %+v, want [b]", resp.Predecessors)
	}

	status, _ = get(t, ts.URL+"/api/graphs/demo/neighbors?focus=ghost")
	if status != http.StatusNotFound {
		t.Errorf("unknown focus: status = %d, want 404", status)
	}

	status, _ = get(t, ts.URL+"/api/graphs/demo/neighbors")
	if status != http.StatusBadRequest {
		t.Errorf("missing focus: status = %d, want 400", status)
	}
}
