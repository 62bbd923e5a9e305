// Package nodelink renders flow graphs as traditional node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// accounts appear as boxes connected by arrows labelled with the amount that
// moves along them. It is an alternative to the sankey view when exact
// amounts matter more than proportions.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Currency: "EUR"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # DOT Format
//
// The generated DOT uses left-to-right layout (rankdir=LR). Nodes are
// grouped into ranks by the same column assignment the sankey layout uses
// and filled with their zone color.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
