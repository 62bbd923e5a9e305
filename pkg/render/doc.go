// Package render provides visualization rendering for money-flow graphs.
//
// # Overview
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Sankey diagrams (in [sankey] subpackages)
//   - Node-link diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg). Both sankey and node-link renderers use
// them.
//
//	svg := sink.RenderSVG(l)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Sankey Diagrams
//
//   - [sankey/layout]: column assignment and node geometry
//   - [sankey/route]: ribbon paths between nodes
//   - [sankey/zone]: source/pivot/sink color zones
//   - [sankey/styles]: visual styles and label fitting
//   - [sankey/sink]: output formats (SVG, JSON, PNG, PDF)
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the raw flow graph with Graphviz, one
// rank per column, edges labelled with their values.
//
// [sankey]: github.com/matzehuels/moneyflow/pkg/render/sankey
// [sankey/layout]: github.com/matzehuels/moneyflow/pkg/render/sankey/layout
// [sankey/route]: github.com/matzehuels/moneyflow/pkg/render/sankey/route
// [sankey/zone]: github.com/matzehuels/moneyflow/pkg/render/sankey/zone
// [sankey/styles]: github.com/matzehuels/moneyflow/pkg/render/sankey/styles
// [sankey/sink]: github.com/matzehuels/moneyflow/pkg/render/sankey/sink
// [nodelink]: github.com/matzehuels/moneyflow/pkg/render/nodelink
package render
