// Package layout computes node positions for sankey flow diagrams.
//
// # Overview
//
// [Compute] turns a [flow.Graph] and a canvas size into a [Layout]: every
// node gets a column, an aggregate value and a bounding box, and every
// well-formed link gets pointers to its two nodes. The layout is a pure
// function of its inputs; identical calls produce identical layouts.
//
// # Columns
//
// Columns come from [transform.AssignColumns]. Column bands share the canvas
// width equally after subtracting the padding between them, and each node is
// centered horizontally in its band:
//
//	columnWidth = (width - (columns-1)*ColumnPadding) / columns
//	x           = column*(columnWidth+ColumnPadding) + (columnWidth-NodeWidth)/2
//
// # Heights
//
// Each column is scaled on its own so that every column fills the canvas
// height regardless of how lopsided the flow is across columns. Thickness is
// therefore comparable within a column, not between columns.
//
// A node's value is the sum of every link touching it, incoming plus
// outgoing. Within a column nodes are sorted by value, largest first, with
// the node index breaking ties, and stacked from y = NodePadding with
// NodePadding gaps. No node is shorter than MinNodeHeight.
//
// # Options
//
//   - [WithNodeWidth]: rectangle width (default 20)
//   - [WithNodePadding]: vertical gap between nodes (default 10)
//   - [WithColumnPadding]: horizontal gap between column bands (default 50)
//   - [WithMinNodeHeight]: height floor (default 5)
//
// # Integration
//
//	flow.Graph → layout.Compute → route.Links / zone.ClassifyNode → sink.RenderSVG
package layout
