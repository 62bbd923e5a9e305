// Package graph provides serialization types for flow graphs and layouts.
//
// This package defines the wire format for moneyflow data, used for JSON and
// YAML files, API requests and responses, and cached layouts.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Graph], [Layout]: serialization types (this package)
//   - pkg/flow.Graph: in-memory input graph
//   - pkg/render/sankey/layout.Layout: computed positions with node pointers
//
// Use [ToFlow]/[FromFlow] for graphs and sink.Export/sink.Parse for layouts.
//
// # Constants
//
// This package is the single source of truth for visualization constants:
//
//	graph.VizTypeSankey     // "sankey"
//	graph.VizTypeNodelink   // "nodelink"
//	graph.StyleSimple       // "simple"
//	graph.StyleGradient     // "gradient"
//
// # Graph Serialization
//
// Graphs keep the parallel-array shape upstream producers emit:
//
//	{
//	  "labels":  ["Salary", "Budget", "Rent"],
//	  "sources": [0, 1],
//	  "targets": [1, 2],
//	  "values":  [3000, "1200.50"],
//	  "currency": "EUR"
//	}
//
// Values are [Amount]s: JSON numbers, quoted decimal strings and null are
// all accepted, and null reads as zero. A values array shorter than the link
// arrays is padded with zeros; a longer one is rejected by [Graph.Validate].
//
// The same document may be written in YAML. [ReadGraphFile] picks the
// decoder from the file extension.
//
// # Layout Serialization
//
// [Layout] is a discriminated union keyed by VizType. Sankey layouts carry
// positioned [Node]s and routed [Link]s; nodelink layouts carry a Graphviz
// DOT string.
//
//	l, err := graph.ReadLayoutFile("budget.layout.json")
//	if l.IsSankey() { ... }
package graph
