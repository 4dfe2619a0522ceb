// Package pipeline provides the core view pipeline for egoview.
//
// This package implements the complete extract → simplify → annotate →
// render pipeline shared by the CLI, the HTTP server, and the TUI explorer.
// Centralizing it keeps behavior consistent across all entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Extract: compute the bounded bidirectional neighborhood of the focus
//     node, optionally collapsing chains and hiding source nodes
//  2. Annotate: classify roles and assign colors, positions, and tooltips,
//     consulting the layout cache for embeddings and community partitions
//  3. Render: generate output artifacts (JSON, HTML, DOT, SVG, PNG)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Focus:     "module_17.py",
//	    OutRadius: 2,
//	    InRadius:  1,
//	    Formats:   []string{"html"},
//	}
//	result, err := runner.Execute(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page := result.Artifacts["html"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/egoview/egoview/pkg/cache"
	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/view"
)

// Default view parameters shared by CLI, server, and TUI.
const (
	DefaultOutRadius  = 1
	DefaultInRadius   = 1
	DefaultLayoutMode = view.LayoutPhysics
)

// Format constants for output artifacts.
const (
	FormatJSON = "json"
	FormatHTML = "html"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatHTML: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// Options contains all configuration for one view pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// View options
	Focus          string   `json:"focus"`
	OutRadius      int      `json:"out_radius"`
	InRadius       int      `json:"in_radius"`
	HideSources    bool     `json:"hide_sources,omitempty"`
	SimplifyChains bool     `json:"simplify_chains,omitempty"`
	LayoutMode     string   `json:"layout_mode,omitempty"`
	ShowAttributes []string `json:"show_attributes,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// View is the annotated view graph.
	View *view.Graph

	// ViewHash is the content hash of the serialized view.
	ViewHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount      int
	EdgeCount      int
	CollapsedNodes int
	HiddenSources  int
	ExtractTime    time.Duration
	AnnotateTime   time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits per pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, html, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Focus == "" {
		return errors.New(errors.ErrCodeInvalidParameter, "focus node is required")
	}
	if o.LayoutMode == "" {
		o.LayoutMode = DefaultLayoutMode
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	params := o.Params()
	if err := params.Validate(); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Params converts the options into view parameters.
func (o *Options) Params() view.Params {
	return view.Params{
		Focus:          o.Focus,
		OutRadius:      o.OutRadius,
		InRadius:       o.InRadius,
		HideSources:    o.HideSources,
		SimplifyChains: o.SimplifyChains,
		LayoutMode:     o.LayoutMode,
		ShowAttributes: o.ShowAttributes,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}
