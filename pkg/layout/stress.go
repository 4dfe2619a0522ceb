package layout

import (
	"math"

	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/graph"
)

// Point is a 2D position in normalized layout coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

const (
	// stressIterations bounds the majorization loop.
	stressIterations = 300

	// stressTolerance stops iteration once positions settle.
	stressTolerance = 1e-4
)

// StressPositions computes a stress-minimization embedding: pairwise
// graph-theoretic distances are approximated by Euclidean distances via
// iterative majorization with weights 1/d².
//
// Nodes start on a circle in sorted-id order, so the result is fully
// deterministic. Unreachable pairs are assigned the graph diameter plus one.
// Coordinates are normalized to [-1, 1].
func StressPositions(g *graph.DiGraph) (map[string]Point, error) {
	ids := g.NodeIDs()
	n := len(ids)
	if n < 2 {
		return nil, errors.New(errors.ErrCodeAlgorithmFailure, "stress layout needs at least 2 nodes, got %d", n)
	}

	dist := allPairsDistances(g, ids)

	// Deterministic circle initialization.
	px := make([]float64, n)
	py := make([]float64, n)
	for i := range ids {
		angle := 2 * math.Pi * float64(i) / float64(n)
		px[i] = math.Cos(angle)
		py[i] = math.Sin(angle)
	}

	const eps = 1e-9
	for iter := 0; iter < stressIterations; iter++ {
		moved := 0.0
		for i := 0; i < n; i++ {
			var sumW, sumX, sumY float64
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				d := float64(dist[i][j])
				w := 1 / (d * d)
				dx := px[i] - px[j]
				dy := py[i] - py[j]
				norm := math.Hypot(dx, dy)
				if norm < eps {
					norm = eps
				}
				sumW += w
				sumX += w * (px[j] + d*dx/norm)
				sumY += w * (py[j] + d*dy/norm)
			}
			nx := sumX / sumW
			ny := sumY / sumW
			moved += math.Hypot(nx-px[i], ny-py[i])
			px[i], py[i] = nx, ny
		}
		if moved/float64(n) < stressTolerance {
			break
		}
	}

	return normalizePositions(ids, px, py), nil
}

// allPairsDistances runs a BFS from every node over the undirected projection
// and returns hop counts. Unreachable pairs get the largest finite distance
// plus one so disconnected components stay apart without dominating.
func allPairsDistances(g *graph.DiGraph, ids []string) [][]int {
	n := len(ids)
	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}

	// Undirected adjacency by index.
	adj := make([][]int, n)
	for _, e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		u, v := index[e.From], index[e.To]
		adj[u] = append(adj[u], v)
		adj[v] = append(adj[v], u)
	}

	dist := make([][]int, n)
	maxFinite := 1
	for s := 0; s < n; s++ {
		row := make([]int, n)
		for i := range row {
			row[i] = -1
		}
		row[s] = 0
		queue := []int{s}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for _, v := range adj[u] {
				if row[v] == -1 {
					row[v] = row[u] + 1
					if row[v] > maxFinite {
						maxFinite = row[v]
					}
					queue = append(queue, v)
				}
			}
		}
		dist[s] = row
	}

	for s := range dist {
		for t := range dist[s] {
			if dist[s][t] == -1 {
				dist[s][t] = maxFinite + 1
			}
		}
	}
	return dist
}

// normalizePositions centers coordinates on their centroid and scales the
// largest absolute coordinate to 1.
func normalizePositions(ids []string, px, py []float64) map[string]Point {
	n := len(ids)
	var cx, cy float64
	for i := 0; i < n; i++ {
		cx += px[i]
		cy += py[i]
	}
	cx /= float64(n)
	cy /= float64(n)

	maxAbs := 0.0
	for i := 0; i < n; i++ {
		px[i] -= cx
		py[i] -= cy
		if a := math.Abs(px[i]); a > maxAbs {
			maxAbs = a
		}
		if a := math.Abs(py[i]); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs == 0 {
		maxAbs = 1
	}

	out := make(map[string]Point, n)
	for i, id := range ids {
		out[id] = Point{X: px[i] / maxAbs, Y: py[i] / maxAbs}
	}
	return out
}
