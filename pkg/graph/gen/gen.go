// Package gen creates demo graphs for first-run experience and testing.
// The default output mimics a medium-sized Python codebase: module nodes
// with size metrics, random dependencies, and precomputed coordinates.
package gen

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/egoview/egoview/pkg/graph"
	"github.com/egoview/egoview/pkg/layout"
)

// Demo graph defaults.
const (
	DefaultNodes    = 300
	DefaultEdgeProb = 0.015
	DefaultSeed     = 42
)

// Options configures demo graph generation.
type Options struct {
	// Nodes is the node count. Defaults to DefaultNodes.
	Nodes int

	// EdgeProb is the probability of each directed edge in the G(n,p)
	// model. Defaults to DefaultEdgeProb.
	EdgeProb float64

	// Seed fixes the random source. Defaults to DefaultSeed.
	Seed int64
}

// Demo generates a seeded random directed graph with module-style node ids
// (module_0.py, module_1.py, ...), demonstration attributes, and spring
// layout coordinates stored on the nodes for the precomputed layout mode.
func Demo(opts Options) (*graph.DiGraph, error) {
	if opts.Nodes <= 0 {
		opts.Nodes = DefaultNodes
	}
	if opts.EdgeProb <= 0 {
		opts.EdgeProb = DefaultEdgeProb
	}
	if opts.Seed == 0 {
		opts.Seed = DefaultSeed
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	g := graph.New()

	ids := make([]string, opts.Nodes)
	for i := range ids {
		ids[i] = fmt.Sprintf("module_%d.py", i)
		if err := g.AddNode(graph.Node{ID: ids[i], Label: ids[i]}); err != nil {
			return nil, err
		}
	}

	// Directed G(n,p): each ordered pair draws independently.
	for i := range ids {
		for j := range ids {
			if i == j {
				continue
			}
			if rng.Float64() < opts.EdgeProb {
				if err := g.AddEdge(graph.Edge{From: ids[i], To: ids[j], Weight: 1}); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, id := range ids {
		n, _ := g.Node(id)
		n.Attrs = graph.Metadata{
			"lines_of_code":         20 + rng.Intn(581),
			"cyclomatic_complexity": math.Round(uniform(rng, 1, 20)*100) / 100,
			"function_count":        1 + rng.Intn(15),
			"class_count":           rng.Intn(6),
			"docstring":             docstring(rng, id),
		}
	}

	// Precomputed coordinates for the default layout mode.
	if pos, err := layout.SpringPositions(g); err == nil {
		for _, id := range ids {
			n, _ := g.Node(id)
			x := pos[id].X * 1500
			y := pos[id].Y * 1500
			n.X, n.Y = &x, &y
		}
	}

	return g, nil
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func docstring(rng *rand.Rand, id string) string {
	if rng.Float64() > 0.3 {
		return fmt.Sprintf("This is the auto-generated docstring for %s. "+
			"It might contain some useful information about the module's purpose.", id)
	}
	return "N/A"
}
