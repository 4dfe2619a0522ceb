package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/egoview/egoview/pkg/cache"
	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/graph"
	"github.com/egoview/egoview/pkg/layout"
	"github.com/egoview/egoview/pkg/render"
	"github.com/egoview/egoview/pkg/view"
)

// Runner encapsulates pipeline execution with caching.
// CLI, server, and TUI all use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the caches and logger; it stores no
// pipeline results. Multiple goroutines can safely share one Runner.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Layouts *layout.Cache
	Logger  *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Layouts: layout.NewCache(c, keyer),
		Logger:  logger,
	}
}

// Execute runs the complete extract → annotate → render pipeline.
//
// An unknown focus node degrades to an empty view rather than failing, so
// a stale selection never breaks an interactive session.
func (r *Runner) Execute(ctx context.Context, g *graph.DiGraph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Extract
	extractStart := time.Now()
	ex, err := view.Extract(g, opts.Focus, opts.OutRadius, opts.InRadius)
	if err != nil {
		if !errors.Is(err, errors.ErrCodeUnknownNode) {
			return nil, err
		}
		opts.Logger.Warn("focus node not in graph", "focus", opts.Focus)
	}
	if opts.SimplifyChains {
		result.Stats.CollapsedNodes = view.CollapseChains(ex.Subgraph, ex.Focus)
	}
	if opts.HideSources {
		result.Stats.HiddenSources = view.HideSources(ex.Subgraph, g, ex.Focus)
	}
	result.Stats.ExtractTime = time.Since(extractStart)
	result.Stats.NodeCount = ex.Subgraph.NodeCount()
	result.Stats.EdgeCount = ex.Subgraph.EdgeCount()

	opts.Logger.Info("extracted neighborhood",
		"focus", opts.Focus,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"collapsed", result.Stats.CollapsedNodes,
		"hidden", result.Stats.HiddenSources,
		"duration", result.Stats.ExtractTime)

	// Stage 2: Annotate
	annotateStart := time.Now()
	result.CacheInfo.LayoutHit = r.layoutCached(ctx, ex.Subgraph, opts.LayoutMode)
	v, err := view.Annotate(ctx, g, ex, r.Layouts, opts.Params())
	if err != nil {
		return nil, err
	}
	result.View = v
	result.Stats.AnnotateTime = time.Since(annotateStart)

	if viewData, err := json.Marshal(v); err == nil {
		result.ViewHash = cache.Hash(viewData)
	}

	opts.Logger.Info("annotated view",
		"layout", opts.LayoutMode,
		"duration", result.Stats.AnnotateTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, v, result.ViewHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildView runs extraction and annotation without rendering.
func (r *Runner) BuildView(ctx context.Context, g *graph.DiGraph, opts Options) (*view.Graph, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	ex, err := view.Extract(g, opts.Focus, opts.OutRadius, opts.InRadius)
	if err != nil && !errors.Is(err, errors.ErrCodeUnknownNode) {
		return nil, err
	}
	if opts.SimplifyChains {
		view.CollapseChains(ex.Subgraph, ex.Focus)
	}
	if opts.HideSources {
		view.HideSources(ex.Subgraph, g, ex.Focus)
	}
	return view.Annotate(ctx, g, ex, r.Layouts, opts.Params())
}

// RenderWithCacheInfo renders all requested formats for the view, using the
// artifact cache keyed by the view hash, and reports whether every artifact
// came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, v *view.Graph, viewHash string, opts Options) (map[string][]byte, bool, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := viewHash != ""
	if allCached {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(viewHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	for _, format := range opts.Formats {
		data, err := r.renderFormat(v, format, opts)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data
		if viewHash != "" {
			key := r.Keyer.ArtifactKey(viewHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
		}
	}
	return artifacts, false, nil
}

// Render is a convenience wrapper that discards cache hit info.
func (r *Runner) Render(ctx context.Context, v *view.Graph, viewHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, v, viewHash, opts)
	return artifacts, err
}

func (r *Runner) renderFormat(v *view.Graph, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return render.JSON(v)
	case FormatDOT:
		return []byte(render.ToDOT(v)), nil
	case FormatSVG:
		return render.RenderSVG(render.ToDOT(v))
	case FormatPNG:
		return render.RenderPNG(render.ToDOT(v))
	case FormatHTML:
		return render.HTML(v, render.HTMLOptions{
			Title:        opts.Focus,
			Hierarchical: opts.LayoutMode == view.LayoutHierarchical,
		})
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}

// layoutCached reports whether the layout computation for the given mode is
// already stored, without computing anything.
func (r *Runner) layoutCached(ctx context.Context, sub *graph.DiGraph, mode string) bool {
	var algo string
	switch mode {
	case view.LayoutStress:
		algo = layout.AlgoStress
	case view.LayoutSpring:
		algo = layout.AlgoSpring
	case view.LayoutCommunity:
		algo = layout.AlgoCommunity
	default:
		return false
	}
	key := r.Keyer.LayoutKey(sub.Fingerprint(), cache.LayoutKeyOpts{Algorithm: algo})
	_, hit, err := r.Cache.Get(ctx, key)
	return err == nil && hit
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
