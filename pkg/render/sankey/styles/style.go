package styles

import (
	"bytes"

	"github.com/matzehuels/moneyflow/pkg/render/sankey/zone"
)

// Style defines the visual appearance for sankey rendering.
type Style interface {
	// RenderDefs writes SVG <defs> content (gradients, filters).
	RenderDefs(buf *bytes.Buffer, ribbons []Ribbon)
	// RenderRibbon writes the SVG for one link ribbon.
	RenderRibbon(buf *bytes.Buffer, r Ribbon)
	// RenderNode writes the SVG for one node rectangle.
	RenderNode(buf *bytes.Buffer, n Node)
	// RenderLabel writes the SVG for one node label.
	RenderLabel(buf *bytes.Buffer, n Node)
}

// Node contains all data needed to render a single sankey node.
type Node struct {
	ID         int
	Label      string // already fitted to the label budget
	Zone       zone.Zone
	X, Y, W, H float64
	LabelX     float64
	LabelY     float64
	Anchor     string // text-anchor: "start" or "end"
	Tooltip    string // empty when tooltips are disabled
}

// Ribbon contains all data needed to render a single link ribbon.
type Ribbon struct {
	Index      int
	SourceID   int
	TargetID   int
	Path       string
	Zone       zone.Zone
	SourceZone zone.Zone
	TargetZone zone.Zone
	X0, X1     float64 // horizontal extent, for gradients
	Tooltip    string

	// ValueLabel is drawn at (MidX, MidY), hidden until the ribbon is
	// hovered. Empty when tooltips are disabled.
	ValueLabel string
	MidX, MidY float64
}

// ZoneColor returns the fill color for z.
func ZoneColor(z zone.Zone) string {
	switch z {
	case zone.Source:
		return "#2e7d32"
	case zone.Pivot:
		return "#1565c0"
	case zone.Sink:
		return "#c62828"
	default:
		return "#757575"
	}
}

// ByName returns the style registered under name ("simple" or "gradient").
func ByName(name string) (Style, bool) {
	switch name {
	case "simple", "":
		return Simple{}, true
	case "gradient":
		return Gradient{}, true
	default:
		return nil, false
	}
}
