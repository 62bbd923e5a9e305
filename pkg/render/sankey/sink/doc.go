// Package sink provides output format renderers for sankey layouts.
//
// # Overview
//
// A "sink" transforms a computed [layout.Layout] into a final output format:
//
//   - SVG: ribbons, node bars and fitted labels with hover highlighting
//   - JSON: the wire layout from [graph.Layout], for caching and re-rendering
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] draws links first, then nodes, then labels, so labels are never
// covered by a ribbon. Colors come from the node and link [zone]s:
//
//	svg := sink.RenderSVG(l,
//	    sink.WithStyle(styles.Gradient{}),
//	    sink.WithTooltips(),
//	)
//
// Labels are truncated to the budget of the canvas width (see
// [styles.FitLabel]) and placed right of their node, or left of it in the
// last column.
//
// # JSON Output
//
// [Export] converts a layout to its wire form with zones and ribbon paths
// filled in; [Parse] converts it back, restoring link references by node ID.
// [RenderJSON] is Export followed by indentation.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render SVG first, then convert via
// [render.ToPDF] and [render.ToPNG]:
//
//	pdf, err := sink.RenderPDF(ctx, l, opts...)
//	png, err := sink.RenderPNG(ctx, l, sink.WithScale(2))
//
// These require librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [layout.Layout]: github.com/matzehuels/moneyflow/pkg/render/sankey/layout.Layout
// [graph.Layout]: github.com/matzehuels/moneyflow/pkg/graph.Layout
// [zone]: github.com/matzehuels/moneyflow/pkg/render/sankey/zone
// [styles.FitLabel]: github.com/matzehuels/moneyflow/pkg/render/sankey/styles.FitLabel
// [render.ToPDF]: github.com/matzehuels/moneyflow/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/moneyflow/pkg/render.ToPNG
package sink
