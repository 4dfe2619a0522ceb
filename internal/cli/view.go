package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/egoview/egoview/pkg/graph"
	"github.com/egoview/egoview/pkg/pipeline"
)

// viewOpts holds the command-line flags for the view command.
type viewOpts struct {
	focus          string   // focus node id
	outRadius      int      // forward exploration depth
	inRadius       int      // backward exploration depth
	hideSources    bool     // drop nodes with no incoming edges in the full graph
	simplifyChains bool     // collapse linear pass-through chains
	layout         string   // layout mode: physics, precomputed, community, hierarchical, stress, spring
	attributes     string   // comma-separated attribute keys for tooltips
	formats        []string // output formats: json, dot, svg, png, html
	output         string   // output file (single format) or base path (multiple)
	noCache        bool     // bypass the layout/artifact cache
}

// viewCommand creates the view command for rendering an ego view of a graph
// file to one or more output formats.
func (c *CLI) viewCommand() *cobra.Command {
	var opts viewOpts
	var formatsStr string

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Render an ego view of a graph to JSON, DOT, SVG, PNG, or HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runView(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.focus, "focus", "n", "", "focus node id (required)")
	cmd.Flags().IntVar(&opts.outRadius, "out-radius", c.Config.View.OutRadius, "forward exploration depth (0-5)")
	cmd.Flags().IntVar(&opts.inRadius, "in-radius", c.Config.View.InRadius, "backward exploration depth (0-5)")
	cmd.Flags().BoolVar(&opts.hideSources, "hide-sources", false, "hide nodes with no incoming edges")
	cmd.Flags().BoolVar(&opts.simplifyChains, "simplify", false, "collapse linear pass-through chains")
	cmd.Flags().StringVar(&opts.layout, "layout", c.Config.View.Layout, "layout mode: physics, precomputed, community, hierarchical, stress, spring")
	cmd.Flags().StringVar(&opts.attributes, "attributes", "", "comma-separated attribute keys to show in tooltips")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): html (default), json, dot, svg, png (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the layout and artifact cache")
	_ = cmd.MarkFlagRequired("focus")

	return cmd
}

// runView loads the graph, executes the pipeline, and writes one file per
// requested format.
func (c *CLI) runView(cmd *cobra.Command, input string, opts *viewOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return err
	}
	logger.Info("loaded graph", "file", input, "nodes", g.NodeCount(), "edges", g.EdgeCount())

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Focus:          opts.focus,
		OutRadius:      opts.outRadius,
		InRadius:       opts.inRadius,
		HideSources:    opts.hideSources,
		SimplifyChains: opts.simplifyChains,
		LayoutMode:     opts.layout,
		Formats:        opts.formats,
		Logger:         logger,
	}
	if opts.attributes != "" {
		popts.ShowAttributes = strings.Split(opts.attributes, ",")
	}

	result, err := runner.Execute(ctx, g, popts)
	if err != nil {
		return err
	}
	if len(result.View.Nodes) == 0 {
		printWarning("Focus %q produced an empty view", opts.focus)
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + "." + format
		if opts.output != "" && len(opts.formats) == 1 {
			path = opts.output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	printStats(len(result.View.Nodes), len(result.View.Edges), result.CacheInfo.RenderHit)
	if result.Stats.CollapsedNodes > 0 {
		printDetail("collapsed %d chain nodes", result.Stats.CollapsedNodes)
	}
	if result.Stats.HiddenSources > 0 {
		printDetail("hid %d source nodes", result.Stats.HiddenSources)
	}
	prog.done(fmt.Sprintf("Rendered %d artifact(s) for focus %q", len(opts.formats), opts.focus))
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, the input file name without extension is used. A known
// format extension on the output path is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
