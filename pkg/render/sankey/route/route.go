// Package route turns sankey links into filled ribbon shapes.
//
// A [Ribbon] is a cubic S-curve from the source node's right edge to the
// target node's left edge, thickened into a closed outline: a top curve, the
// target's edge, a bottom curve back, and the source's edge. Each side spans
// the full height of its node rather than a slice proportional to the link's
// share of the node's flow, so ribbons leaving the same node overlap.
package route

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/moneyflow/pkg/render/sankey/layout"
)

// DefaultCurvature places control points 40% of the horizontal distance
// away from each anchor.
const DefaultCurvature = 0.4

// Point is a 2D coordinate in layout units.
type Point struct{ X, Y float64 }

// Ribbon describes one routed link.
//
// Start and End are the top anchors, C1 and C2 the control points of the top
// curve. The bottom curve is the top curve shifted down by the node heights
// at each end.
type Ribbon struct {
	Start, C1, C2, End Point

	SourceHeight float64
	TargetHeight float64
	Value        float64

	// Index is the input position of the routed link.
	Index int
}

// Route computes the ribbon for a link of the given value from src to dst.
// Curvature is the control-point offset as a fraction of the horizontal
// distance between anchors.
func Route(src, dst *layout.Node, value, curvature float64) Ribbon {
	x0, y0 := src.X+src.Width, src.Y
	x1, y1 := dst.X, dst.Y
	dx := x1 - x0

	return Ribbon{
		Start:        Point{x0, y0},
		C1:           Point{x0 + curvature*dx, y0},
		C2:           Point{x1 - curvature*dx, y1},
		End:          Point{x1, y1},
		SourceHeight: src.Height,
		TargetHeight: dst.Height,
		Value:        value,
	}
}

// Links routes every link of l, in layout order.
func Links(l layout.Layout, curvature float64) []Ribbon {
	ribbons := make([]Ribbon, len(l.Links))
	for i, lk := range l.Links {
		ribbons[i] = Route(lk.Source, lk.Target, lk.Value, curvature)
		ribbons[i].Index = lk.Index
	}
	return ribbons
}

// Path returns the closed SVG path outlining the ribbon:
//
//	M start C c1 c2 end L end' C c2' c1' start' Z
//
// where primed points are shifted down by the node height at their end.
func (r Ribbon) Path() string {
	sh, th := r.SourceHeight, r.TargetHeight
	var b strings.Builder
	fmt.Fprintf(&b, "M%s,%s", num(r.Start.X), num(r.Start.Y))
	fmt.Fprintf(&b, "C%s,%s %s,%s %s,%s",
		num(r.C1.X), num(r.C1.Y), num(r.C2.X), num(r.C2.Y), num(r.End.X), num(r.End.Y))
	fmt.Fprintf(&b, "L%s,%s", num(r.End.X), num(r.End.Y+th))
	fmt.Fprintf(&b, "C%s,%s %s,%s %s,%s",
		num(r.C2.X), num(r.C2.Y+th), num(r.C1.X), num(r.C1.Y+sh), num(r.Start.X), num(r.Start.Y+sh))
	b.WriteString("Z")
	return b.String()
}

// Midpoint returns the point halfway along the ribbon's center line. The SVG
// sink anchors hover value labels there.
func (r Ribbon) Midpoint() Point {
	top := bezier(r.Start, r.C1, r.C2, r.End, 0.5)
	mid := (r.SourceHeight + r.TargetHeight) / 4
	return Point{top.X, top.Y + mid}
}

func bezier(p0, p1, p2, p3 Point, t float64) Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// num formats a coordinate with at most two decimals.
func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
