package view

import (
	"sort"

	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/graph"
)

// MaxRadius caps traversal depth per direction to bound work on large graphs.
const MaxRadius = 5

// Layout modes. Physics and community delegate continuous placement to the
// renderer; precomputed reads stored coordinates; stress and spring compute
// an embedding through the layout cache; hierarchical asks the renderer for
// layered placement.
const (
	LayoutPhysics      = "physics"
	LayoutPrecomputed  = "precomputed"
	LayoutCommunity    = "community"
	LayoutHierarchical = "hierarchical"
	LayoutStress       = "stress"
	LayoutSpring       = "spring"
)

var layoutModes = map[string]bool{
	LayoutPhysics:      true,
	LayoutPrecomputed:  true,
	LayoutCommunity:    true,
	LayoutHierarchical: true,
	LayoutStress:       true,
	LayoutSpring:       true,
}

// LayoutModes returns the supported layout mode names, sorted.
func LayoutModes() []string {
	modes := make([]string, 0, len(layoutModes))
	for m := range layoutModes {
		modes = append(modes, m)
	}
	sort.Strings(modes)
	return modes
}

// Params bundles everything one render request needs. Transient, one value
// per request; the caller (CLI, server, TUI) owns any state between requests.
type Params struct {
	Focus          string
	OutRadius      int
	InRadius       int
	HideSources    bool
	SimplifyChains bool
	LayoutMode     string
	ShowAttributes []string
}

// Validate rejects out-of-range radii, unknown layout modes, and reserved
// attribute keys before any traversal runs. An empty layout mode defaults
// to physics.
func (p *Params) Validate() error {
	if err := errors.ValidateRadius("out_radius", p.OutRadius, MaxRadius); err != nil {
		return err
	}
	if err := errors.ValidateRadius("in_radius", p.InRadius, MaxRadius); err != nil {
		return err
	}
	if p.LayoutMode == "" {
		p.LayoutMode = LayoutPhysics
	}
	if !layoutModes[p.LayoutMode] {
		return errors.New(errors.ErrCodeInvalidLayout, "unknown layout mode %q", p.LayoutMode)
	}
	for _, key := range p.ShowAttributes {
		if graph.IsReservedAttr(key) {
			return errors.New(errors.ErrCodeInvalidParameter, "attribute %q is reserved for rendering", key)
		}
	}
	return nil
}
