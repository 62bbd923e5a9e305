package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/moneyflow/pkg/graph"
	"github.com/matzehuels/moneyflow/pkg/pipeline"
)

// layoutCommand creates the layout command for computing visualization layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := c.defaultOptions()

	cmd := &cobra.Command{
		Use:   "layout [graph.json|graph.yaml]",
		Short: "Compute a sankey layout from a flow graph",
		Long: `Compute a sankey layout from a flow graph.

The input holds parallel labels, sources, targets and values arrays. The output
is a layout.json file (same format as 'render -f json') with node columns,
positions, zones and ribbon paths. Render it with 'visualize'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.mergeConfig(cmd, &opts)
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	cmd.Flags().StringVarP(&opts.VizType, "type", "t", opts.VizType, "visualization type: sankey (default), nodelink")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "nodelink: show column, zone and value in node labels")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style recorded in the layout: simple (default), gradient")
	cmd.Flags().Float64Var(&opts.Curvature, "curvature", opts.Curvature, "ribbon curvature in [0, 1]")
	cmd.Flags().StringVar(&opts.Currency, "currency", opts.Currency, "currency code shown with values")

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.InputPath = input
	wire, g, err := runner.Parse(ctx, opts)
	if err != nil {
		return err
	}
	if opts.Currency == "" {
		opts.Currency = wire.Currency
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.VizType))
	spinner.Start()

	layout, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	if spinner.Cancelled() {
		spinner.Stop()
		return ctx.Err()
	}
	spinner.StopWithSuccess(fmt.Sprintf("Computed %s layout", opts.VizType))

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}

	if err := graph.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printFile(outputPath)
	printStats(g.NodeCount(), g.LinkCount(), cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
