// Package flow holds the input side of a flow diagram: a weighted directed
// graph described by parallel arrays.
//
// # Overview
//
// A money-flow graph is supplied the way upstream producers emit it: one
// label per node index and three parallel link arrays.
//
//	g := flow.Graph{
//	    Labels:  []string{"Salary", "Budget", "Rent", "Food"},
//	    Sources: []int{0, 1, 1},
//	    Targets: []int{1, 2, 3},
//	    Values:  []float64{3000, 1200, 600},
//	}
//
// Node identity is the index into Labels. The package has no opinion on what
// a node means (account, category, payee); it only exposes the structure the
// layout needs.
//
// # Ingestion Rules
//
// The graph is read leniently so that any structurally parseable input yields
// a layout:
//
//   - A link whose source or target is outside [0, NodeCount) is malformed.
//     [Graph.Links] skips it; it never reaches the layout.
//   - A value that is missing (Values shorter than Sources) or NaN reads as 0.
//     See [Graph.Value].
//   - Negative values pass through unchanged.
//
// [Graph.Validate] is the strict counterpart used at the wire boundary to
// reject inputs that are not parallel arrays at all.
//
// # Concurrency
//
// Graph is a plain value. Its methods never mutate it, so a Graph may be
// shared across goroutines as long as callers do not modify the slices.
package flow
