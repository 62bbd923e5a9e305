package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/moneyflow/pkg/graph"
	"github.com/matzehuels/moneyflow/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		labels     bool
	)
	// Style, curvature and currency default to what the layout recorded.
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout",
		Long: `Render a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, PNG, PDF or JSON. The layout holds all positions, so this
step is purely about drawing. PNG and PDF need rsvg-convert on PATH.

Use 'render' as a shortcut to go directly from a graph to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			opts.HideLabels = !labels
			opts.Logger = c.Logger
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style: simple, gradient (default: from layout)")
	cmd.Flags().Float64Var(&opts.Curvature, "curvature", 0, "ribbon curvature in [0, 1] (default: from layout)")
	cmd.Flags().StringVar(&opts.Currency, "currency", "", "currency code (default: from layout)")
	cmd.Flags().BoolVar(&labels, "labels", true, "draw node labels")
	cmd.Flags().BoolVar(&opts.Tooltips, "tooltips", false, "add hover tooltips with values")

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	layout, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	vizType := layout.VizType
	if vizType == "" {
		vizType = graph.VizTypeSankey
	}
	opts.VizType = vizType

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", vizType))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, layout, nil, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  cacheHit,
		nodes:     len(layout.Nodes),
		links:     len(layout.Links),
	})
}
