package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/moneyflow/pkg/pipeline"
)

// renderCommand creates the render command: graph file straight to artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		labels     bool
	)
	opts := c.defaultOptions()

	cmd := &cobra.Command{
		Use:   "render [graph.json|graph.yaml]",
		Short: "Render a flow graph to SVG, PNG, PDF or JSON",
		Long: `Render a flow graph to SVG, PNG, PDF or JSON.

Runs layout and visualize in one step. Sankey output (-t sankey, the default)
colors nodes and ribbons by zone: sources in the first column, the pivot in the
second, sinks in the last. Nodelink output (-t nodelink) draws the same graph
with Graphviz.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.mergeConfig(cmd, &opts)
			opts.Formats = parseFormats(formatsStr)
			opts.HideLabels = !labels
			opts.InputPath = args[0]
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even when cached")

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", opts.VizType, "visualization type: sankey (default), nodelink")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "nodelink: show column, zone and value in node labels")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: simple (default), gradient")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height")
	cmd.Flags().Float64Var(&opts.Curvature, "curvature", opts.Curvature, "ribbon curvature in [0, 1]")
	cmd.Flags().StringVar(&opts.Currency, "currency", opts.Currency, "currency code shown with values (default: from graph)")
	cmd.Flags().BoolVar(&labels, "labels", true, "draw node labels")
	cmd.Flags().BoolVar(&opts.Tooltips, "tooltips", false, "add hover tooltips with values")

	return cmd
}

// runRender runs the full pipeline and writes every requested format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.InputPath))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %s", opts.InputPath))

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.InputPath,
		output:    output,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
		nodes:     result.Stats.NodeCount,
		links:     result.Stats.LinkCount,
	})
}
