// Package styles defines visual styles and label fitting for sankey rendering.
//
// # Overview
//
//   - [Style]: the interface all styles implement
//   - [Simple]: flat zone-colored ribbons and nodes
//   - [Gradient]: ribbons shaded from the source zone color to the target's
//
// Styles receive fully positioned [Node] and [Ribbon] values; they decide
// only how those shapes look.
//
// # Label Fitting
//
// Labels are cut to a character budget that depends on the canvas width:
//
//	width < 600   → 12 characters
//	width < 1000  → 18 characters
//	otherwise     → 25 characters
//
// [Truncate] keeps the first budget-3 characters and appends "...", so a
// truncated label is exactly budget characters long. Labels within budget
// pass through unchanged. Characters are counted as runes.
//
// # Zone Palette
//
// [ZoneColor] maps each [zone.Zone] to a fill: green for income sources,
// blue for the pivot column, red for spending sinks, grey otherwise.
package styles
