package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/egoview/egoview/pkg/graph"
	"github.com/egoview/egoview/pkg/pipeline"
	"github.com/egoview/egoview/pkg/view"
)

// exploreCommand creates the explore command, an interactive terminal
// explorer for walking a graph focus-by-focus.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		focus   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Explore a graph interactively in the terminal",
		Long: `Explore opens a terminal UI on a graph file. Move the focus along incoming
and outgoing edges, adjust the exploration radii, toggle chain simplification,
and write HTML snapshots of the current view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			g, err := graph.ReadGraphFile(args[0])
			if err != nil {
				return err
			}
			if g.NodeCount() == 0 {
				return fmt.Errorf("graph %s has no nodes", args[0])
			}
			if focus == "" {
				ids := g.NodeIDs()
				sort.Strings(ids)
				focus = ids[0]
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			model, err := newExploreModel(ctx, g, runner, focus, c.Config.View)
			if err != nil {
				return err
			}

			p := tea.NewProgram(model, tea.WithContext(ctx))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(exploreModel); ok && m.written != "" {
				printFile(m.written)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&focus, "focus", "n", "", "initial focus node id (default: first node)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the layout and artifact cache")

	return cmd
}

// =============================================================================
// ExploreModel - Interactive graph navigation
// =============================================================================

// neighborEntry is one selectable row in the neighbor list.
type neighborEntry struct {
	neighbor view.Neighbor
	incoming bool // true for predecessors
}

// exploreModel is the bubbletea model for the explore command.
type exploreModel struct {
	ctx    context.Context
	graph  *graph.DiGraph
	runner *pipeline.Runner

	focus   string
	history []string // previously visited focus nodes, for backspace

	outRadius      int
	inRadius       int
	simplifyChains bool
	hideSources    bool

	entries []neighborEntry
	cursor  int

	nodeCount int
	edgeCount int

	written string // path of the last HTML snapshot
	status  string
	height  int
	offset  int
}

// newExploreModel builds the model and computes the first view.
func newExploreModel(ctx context.Context, g *graph.DiGraph, runner *pipeline.Runner, focus string, defaults ViewConfig) (exploreModel, error) {
	m := exploreModel{
		ctx:       ctx,
		graph:     g,
		runner:    runner,
		focus:     focus,
		outRadius: defaults.OutRadius,
		inRadius:  defaults.InRadius,
		height:    15,
	}
	if err := m.refresh(); err != nil {
		return m, err
	}
	return m, nil
}

// refresh recomputes the neighbor list and the current view stats.
func (m *exploreModel) refresh() error {
	succs, preds, err := view.Neighbors(m.graph, m.focus)
	if err != nil {
		return err
	}
	m.entries = m.entries[:0]
	for _, n := range succs {
		m.entries = append(m.entries, neighborEntry{neighbor: n})
	}
	for _, n := range preds {
		m.entries = append(m.entries, neighborEntry{neighbor: n, incoming: true})
	}
	if m.cursor >= len(m.entries) {
		m.cursor = 0
	}
	m.offset = 0

	v, err := m.runner.BuildView(m.ctx, m.graph, m.options())
	if err != nil {
		return err
	}
	m.nodeCount = len(v.Nodes)
	m.edgeCount = len(v.Edges)
	return nil
}

// options assembles pipeline options from the current UI state.
func (m *exploreModel) options() pipeline.Options {
	return pipeline.Options{
		Focus:          m.focus,
		OutRadius:      m.outRadius,
		InRadius:       m.inRadius,
		HideSources:    m.hideSources,
		SimplifyChains: m.simplifyChains,
	}
}

// snapshot writes the current view as a standalone HTML file.
func (m *exploreModel) snapshot() (string, error) {
	opts := m.options()
	opts.Formats = []string{pipeline.FormatHTML}

	result, err := m.runner.Execute(m.ctx, m.graph, opts)
	if err != nil {
		return "", err
	}
	path := snapshotName(m.focus)
	if err := os.WriteFile(path, result.Artifacts[pipeline.FormatHTML], 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// snapshotName turns a focus id into a safe file name.
func snapshotName(focus string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, focus)
	return "egoview_" + safe + ".html"
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}

		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}

		case "enter":
			if len(m.entries) == 0 {
				return m, nil
			}
			m.history = append(m.history, m.focus)
			m.focus = m.entries[m.cursor].neighbor.ID
			m.cursor = 0
			m.applyRefresh()

		case "backspace":
			if len(m.history) == 0 {
				return m, nil
			}
			m.focus = m.history[len(m.history)-1]
			m.history = m.history[:len(m.history)-1]
			m.cursor = 0
			m.applyRefresh()

		case "+", "=":
			if m.outRadius < view.MaxRadius {
				m.outRadius++
				m.applyRefresh()
			}

		case "-":
			if m.outRadius > 0 {
				m.outRadius--
				m.applyRefresh()
			}

		case "]":
			if m.inRadius < view.MaxRadius {
				m.inRadius++
				m.applyRefresh()
			}

		case "[":
			if m.inRadius > 0 {
				m.inRadius--
				m.applyRefresh()
			}

		case "s":
			m.simplifyChains = !m.simplifyChains
			m.applyRefresh()

		case "h":
			m.hideSources = !m.hideSources
			m.applyRefresh()

		case "w":
			path, err := m.snapshot()
			if err != nil {
				m.status = "snapshot failed: " + err.Error()
			} else {
				m.written = path
				m.status = "wrote " + path
			}
		}

	case tea.WindowSizeMsg:
		m.height = msg.Height - 10
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

// applyRefresh refreshes and surfaces any error in the status line.
func (m *exploreModel) applyRefresh() {
	m.status = ""
	if err := m.refresh(); err != nil {
		m.status = err.Error()
	}
}

func (m exploreModel) View() string {
	var b strings.Builder

	node, _ := m.graph.Node(m.focus)
	label := m.focus
	if node != nil {
		label = node.DisplayLabel()
	}

	b.WriteString(StyleTitle.Render("Exploring ") + styleRoleFocus.Render(label))
	b.WriteString("\n")
	b.WriteString(roleLegend())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf(
		"out %d  in %d  simplify %s  hide-sources %s  ·  %d nodes, %d edges in view",
		m.outRadius, m.inRadius, onOff(m.simplifyChains), onOff(m.hideSources),
		m.nodeCount, m.edgeCount)))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(StyleDim.Render("  no neighbors"))
		b.WriteString("\n")
	}

	end := m.offset + m.height
	if end > len(m.entries) {
		end = len(m.entries)
	}
	for i := m.offset; i < end; i++ {
		e := m.entries[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		arrow := iconArrow
		if e.incoming {
			arrow = "←"
		}
		line := fmt.Sprintf("%s%s %s", cursor, arrow, e.neighbor.Label)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(e.neighbor.Color))
		if i == m.cursor {
			style = style.Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ move  ⏎ focus  ⌫ back  +/- out radius  ]/[ in radius  s simplify  h hide sources  w snapshot  q quit"))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(m.status))
	}
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
