// Package zone maps sankey columns to semantic color zones.
//
// The midpoint column splits a diagram into an inflow half (sources) and an
// outflow half (sinks). Renderers pick a palette per [Zone]; the layout has
// no notion of color.
//
//	columns:  0       1       2       3       4
//	nodes:    source  other   pivot   sink    sink
package zone

// Zone is the semantic position of a node or link in the flow.
type Zone int

const (
	Other Zone = iota
	Source
	Pivot
	Sink
)

var names = [...]string{
	Other:  "other",
	Source: "source",
	Pivot:  "pivot",
	Sink:   "sink",
}

// String returns the lowercase zone name used in SVG classes and JSON.
func (z Zone) String() string {
	if z < 0 || int(z) >= len(names) {
		return "other"
	}
	return names[z]
}

// Parse returns the zone named s, or Other when s is unknown.
func Parse(s string) Zone {
	for z, name := range names {
		if name == s {
			return Zone(z)
		}
	}
	return Other
}

// ClassifyNode returns the zone of a node in column of a layout whose last
// column is maxColumn. Column 0 is Source; floor(maxColumn/2) is Pivot;
// anything past the real midpoint is Sink.
//
// Column 0 wins over Pivot, so a one- or two-column diagram has no pivot.
func ClassifyNode(column, maxColumn int) Zone {
	switch {
	case column == 0:
		return Source
	case column == maxColumn/2:
		return Pivot
	case float64(column) > float64(maxColumn)/2:
		return Sink
	default:
		return Other
	}
}

// ClassifyLink returns the zone of a link between two columns. Links whose
// endpoints both lie left of the midpoint are Source; links touching the
// right half are Sink; the rest are Other.
func ClassifyLink(sourceColumn, targetColumn, maxColumn int) Zone {
	mid := float64(maxColumn) / 2
	s, t := float64(sourceColumn), float64(targetColumn)
	switch {
	case s < mid && t < mid:
		return Source
	case s > mid || t > mid:
		return Sink
	default:
		return Other
	}
}
