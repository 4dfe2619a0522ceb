// Package view derives renderable ego-graph views from a full directed
// graph. It combines bounded bidirectional neighborhood extraction, chain
// simplification, and role-based annotation (colors, positions, sizes,
// tooltips) into a ViewGraph ready for a render adapter.
//
// The package is stateless: every render request passes the full graph and
// a Params value in and gets a fresh Graph out. Layout and community
// results are consulted through a layout.Cache.
package view
