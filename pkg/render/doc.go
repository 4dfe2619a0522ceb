// Package render turns annotated view graphs into visual artifacts:
// Graphviz DOT, SVG, and PNG for static output, a standalone vis-network
// HTML page for interactive exploration, and plain JSON for API consumers.
package render
