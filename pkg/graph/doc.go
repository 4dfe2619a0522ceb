// Package graph holds the full directed graph under exploration.
//
// The central type is [DiGraph], an in-memory directed graph with string node
// identifiers, per-node attribute bags, and weighted edges. A DiGraph is
// constructed once at load time from a node-link JSON document and is treated
// as read-only for the lifetime of a view session; switching data sources
// replaces it wholesale.
//
// The package also provides the node-link JSON codec ([ReadGraph],
// [WriteGraph], [MarshalGraph], [UnmarshalGraph]) and a content fingerprint
// ([DiGraph.Fingerprint]) used as the stable graph identity for layout
// caching.
//
// Derived view subgraphs are DiGraphs too: the extraction and simplification
// stages build and mutate small per-request instances without ever touching
// the full graph.
package graph
