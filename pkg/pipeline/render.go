package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/moneyflow/pkg/errors"
	"github.com/matzehuels/moneyflow/pkg/flow"
	"github.com/matzehuels/moneyflow/pkg/graph"
	"github.com/matzehuels/moneyflow/pkg/render/nodelink"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/layout"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/sink"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/styles"
)

// RenderFromLayoutData renders output from serialized layout data.
func RenderFromLayoutData(ctx context.Context, layoutData []byte, g *flow.Graph, opts Options) (map[string][]byte, error) {
	parsed, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse layout")
	}
	return RenderFromLayout(ctx, parsed, g, opts)
}

// RenderFromLayout renders artifacts from a wire layout.
//
// Settings recorded in the layout (style, curvature, currency) are used
// where opts leaves them empty. When opts asks for a nodelink view of a
// sankey layout, g must be supplied to build the DOT source.
func RenderFromLayout(ctx context.Context, gl graph.Layout, g *flow.Graph, opts Options) (map[string][]byte, error) {
	opts = applyLayoutMetadata(opts, gl)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	switch {
	case gl.IsNodelink():
		return RenderNodelink(ctx, gl, opts)
	case opts.IsNodelink():
		if g == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "nodelink rendering of a sankey layout needs the source graph")
		}
		return RenderNodelink(ctx, generateNodelinkLayout(*g, opts), opts)
	}

	l, err := sink.Parse(gl)
	if err != nil {
		return nil, fmt.Errorf("convert layout: %w", err)
	}
	return renderSankey(ctx, l, opts)
}

// RenderNodelink generates nodelink outputs from a layout carrying DOT.
func RenderNodelink(ctx context.Context, gl graph.Layout, opts Options) (map[string][]byte, error) {
	if gl.DOT == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nodelink layout missing DOT string")
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, gl.DOT)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, gl.DOT, DefaultScale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, gl.DOT)
		case FormatJSON:
			data, err = graph.MarshalLayout(gl)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderSankey(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, l, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(DefaultScale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(l,
				sink.WithJSONStyle(opts.Style),
				sink.WithJSONCurvature(opts.Curvature),
				sink.WithJSONCurrency(opts.Currency))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported sankey format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// applyLayoutMetadata fills options the caller left empty from the
// settings recorded in the layout, so a saved layout re-renders the same.
func applyLayoutMetadata(opts Options, gl graph.Layout) Options {
	if opts.Style == "" && gl.Style != "" {
		opts.Style = gl.Style
	}
	if opts.Curvature == 0 && gl.Curvature != 0 {
		opts.Curvature = gl.Curvature
	}
	if opts.Currency == "" {
		opts.Currency = gl.Currency
	}
	if opts.Width == 0 {
		opts.Width = gl.Width
	}
	if opts.Height == 0 {
		opts.Height = gl.Height
	}
	return opts
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	style, _ := styles.ByName(opts.Style)
	svgOpts := []sink.SVGOption{
		sink.WithStyle(style),
		sink.WithCurvature(opts.Curvature),
		sink.WithLabels(!opts.HideLabels),
		sink.WithCurrency(opts.Currency),
	}
	if opts.Tooltips {
		svgOpts = append(svgOpts, sink.WithTooltips())
	}
	return svgOpts
}
