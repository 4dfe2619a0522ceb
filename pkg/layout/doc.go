// Package layout computes and caches global graph computations: community
// partitions and 2D position embeddings.
//
// All results are pure functions of (graph fingerprint, algorithm). The
// [Cache] memoizes them through a pluggable byte cache and guarantees that at
// most one computation per key runs at a time, so concurrent requests for the
// same expensive layout coordinate instead of duplicating work.
//
// Two position algorithms are provided: a stress-minimization embedding
// ([StressPositions]) that approximates pairwise graph distances by Euclidean
// distances, and a spring embedding ([SpringPositions]) with attractive
// forces along edges and repulsive forces between all pairs. Both produce
// coordinates normalized to [-1, 1]; the view annotator scales them for
// display.
//
// Community detection ([GreedyCommunities]) runs greedy modularity
// maximization on the undirected projection of the graph.
//
// Degenerate inputs (fewer than two nodes, no edges) fail with
// ALGORITHM_FAILURE; callers recover by falling back to default coloring and
// renderer-driven placement.
package layout
