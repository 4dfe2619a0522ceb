package layout

import (
	"math"
	"math/rand"

	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/graph"
)

const (
	// springSeed fixes the random initialization for reproducible layouts.
	springSeed = 42

	// springIterations bounds the force simulation.
	springIterations = 50
)

// SpringPositions computes a force-directed (Fruchterman-Reingold) embedding:
// edges pull their endpoints together, all node pairs push apart, and a
// cooling temperature limits displacement per iteration.
//
// Initial positions come from a fixed-seed generator, so the result is
// deterministic for a given graph. Coordinates are normalized to [-1, 1].
func SpringPositions(g *graph.DiGraph) (map[string]Point, error) {
	ids := g.NodeIDs()
	n := len(ids)
	if n < 2 {
		return nil, errors.New(errors.ErrCodeAlgorithmFailure, "spring layout needs at least 2 nodes, got %d", n)
	}

	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}

	// Undirected edge list by index, duplicates merged.
	type edge struct{ u, v int }
	seen := map[edge]bool{}
	var edges []edge
	for _, e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		u, v := index[e.From], index[e.To]
		if u > v {
			u, v = v, u
		}
		if !seen[edge{u, v}] {
			seen[edge{u, v}] = true
			edges = append(edges, edge{u, v})
		}
	}

	rng := rand.New(rand.NewSource(springSeed))
	px := make([]float64, n)
	py := make([]float64, n)
	for i := range px {
		px[i] = rng.Float64()
		py[i] = rng.Float64()
	}

	k := math.Sqrt(1 / float64(n)) // optimal pairwise distance for unit area
	temp := 0.1
	cool := temp / float64(springIterations+1)
	const eps = 1e-9

	dx := make([]float64, n)
	dy := make([]float64, n)
	for iter := 0; iter < springIterations; iter++ {
		for i := range dx {
			dx[i], dy[i] = 0, 0
		}

		// Repulsion between all pairs: k²/d.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				ddx := px[i] - px[j]
				ddy := py[i] - py[j]
				d := math.Hypot(ddx, ddy)
				if d < eps {
					d = eps
				}
				f := k * k / d
				dx[i] += ddx / d * f
				dy[i] += ddy / d * f
				dx[j] -= ddx / d * f
				dy[j] -= ddy / d * f
			}
		}

		// Attraction along edges: d²/k.
		for _, e := range edges {
			ddx := px[e.u] - px[e.v]
			ddy := py[e.u] - py[e.v]
			d := math.Hypot(ddx, ddy)
			if d < eps {
				d = eps
			}
			f := d * d / k
			dx[e.u] -= ddx / d * f
			dy[e.u] -= ddy / d * f
			dx[e.v] += ddx / d * f
			dy[e.v] += ddy / d * f
		}

		// Displace, limited by temperature.
		for i := 0; i < n; i++ {
			d := math.Hypot(dx[i], dy[i])
			if d < eps {
				continue
			}
			limited := math.Min(d, temp)
			px[i] += dx[i] / d * limited
			py[i] += dy[i] / d * limited
		}
		temp -= cool
	}

	return normalizePositions(ids, px, py), nil
}
