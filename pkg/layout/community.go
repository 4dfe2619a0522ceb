package layout

import (
	"slices"

	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/graph"
)

// commPair is a canonical (a < b) pair of community indices.
type commPair struct{ a, b int }

func makePair(a, b int) commPair {
	if a > b {
		a, b = b, a
	}
	return commPair{a, b}
}

// GreedyCommunities partitions the graph into communities by greedy
// modularity maximization (Clauset-Newman-Moore).
//
// The graph is projected to an undirected simple graph first: edge direction
// is discarded, mutual edges merge into one, and self-loops are ignored.
// Starting from singleton communities, the pair of connected communities with
// the greatest modularity gain is merged until no merge improves modularity.
//
// Community ids are dense in [0, k) and deterministic: largest community
// first, ties broken by the smallest member id.
func GreedyCommunities(g *graph.DiGraph) (map[string]int, error) {
	ids := g.NodeIDs()
	n := len(ids)
	if n < 2 {
		return nil, errors.New(errors.ErrCodeAlgorithmFailure, "community detection needs at least 2 nodes, got %d", n)
	}

	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}

	// Undirected projection with merged duplicates.
	undirected := map[commPair]bool{}
	degree := make([]float64, n)
	for _, e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		p := makePair(index[e.From], index[e.To])
		if undirected[p] {
			continue
		}
		undirected[p] = true
		degree[p.a]++
		degree[p.b]++
	}

	m := float64(len(undirected))
	if m == 0 {
		return nil, errors.New(errors.ErrCodeAlgorithmFailure, "community detection needs at least one edge")
	}

	// Community state: each node starts in its own community.
	comm := make([]int, n) // node -> community index
	degSum := make([]float64, n)
	for i := range ids {
		comm[i] = i
		degSum[i] = degree[i] / (2 * m) // fraction of total degree
	}
	between := map[commPair]float64{} // edge fraction between communities
	for p := range undirected {
		between[p] += 1 / m
	}

	// Merge the best pair while modularity improves.
	// ΔQ for merging connected communities i, j is e_ij − 2·a_i·a_j.
	for len(between) > 0 {
		bestGain := 0.0
		best := commPair{-1, -1}
		for p, eij := range between {
			gain := eij - 2*degSum[p.a]*degSum[p.b]
			switch {
			case gain > bestGain:
				bestGain, best = gain, p
			case gain == bestGain && best.a != -1 && (p.a < best.a || (p.a == best.a && p.b < best.b)):
				best = p
			}
		}
		if best.a == -1 || bestGain <= 0 {
			break
		}

		// Merge community j into community i and rebuild the pair index.
		i, j := best.a, best.b
		degSum[i] += degSum[j]
		for k := range comm {
			if comm[k] == j {
				comm[k] = i
			}
		}
		rebuilt := map[commPair]float64{}
		for p, eij := range between {
			if p == best {
				continue // now internal
			}
			a, b := p.a, p.b
			if a == j {
				a = i
			}
			if b == j {
				b = i
			}
			if a == b {
				continue
			}
			rebuilt[makePair(a, b)] += eij
		}
		between = rebuilt
	}

	// Collect members per surviving community.
	members := map[int][]string{}
	for k, id := range ids {
		members[comm[k]] = append(members[comm[k]], id)
	}
	groups := make([][]string, 0, len(members))
	for _, group := range members {
		slices.Sort(group)
		groups = append(groups, group)
	}
	// Largest first, ties by smallest member id.
	slices.SortFunc(groups, func(a, b []string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		if a[0] < b[0] {
			return -1
		}
		if a[0] > b[0] {
			return 1
		}
		return 0
	})

	result := make(map[string]int, n)
	for cid, group := range groups {
		for _, id := range group {
			result[id] = cid
		}
	}
	return result, nil
}
