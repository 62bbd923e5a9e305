package sink

import (
	"github.com/matzehuels/moneyflow/pkg/errors"
	"github.com/matzehuels/moneyflow/pkg/graph"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/layout"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/route"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/zone"
)

// JSONOption configures [Export] and [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style     string
	curvature float64
	currency  string
}

// WithJSONStyle records the style name (e.g. "simple", "gradient") so a
// re-render from the JSON uses the same style.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONCurvature sets the curvature used for the exported ribbon paths.
func WithJSONCurvature(c float64) JSONOption { return func(r *jsonRenderer) { r.curvature = c } }

// WithJSONCurrency records the currency code of the node and link values.
func WithJSONCurrency(code string) JSONOption { return func(r *jsonRenderer) { r.currency = code } }

// Export converts l to its wire form. Zones and ribbon paths are computed
// here so consumers of the JSON need no geometry code.
func Export(l layout.Layout, opts ...JSONOption) graph.Layout {
	r := jsonRenderer{curvature: route.DefaultCurvature}
	for _, opt := range opts {
		opt(&r)
	}

	out := graph.Layout{
		VizType:   graph.VizTypeSankey,
		Width:     l.Width,
		Height:    l.Height,
		Style:     r.style,
		Currency:  r.currency,
		MaxColumn: l.MaxColumn,
		Curvature: r.curvature,
		Nodes:     make([]graph.Node, 0, len(l.Nodes)),
		Links:     make([]graph.Link, 0, len(l.Links)),
	}
	for _, n := range l.Nodes {
		out.Nodes = append(out.Nodes, graph.Node{
			ID:     n.ID,
			Label:  n.Label,
			Value:  n.Value,
			Column: n.Column,
			Zone:   zone.ClassifyNode(n.Column, l.MaxColumn).String(),
			X:      n.X,
			Y:      n.Y,
			Width:  n.Width,
			Height: n.Height,
		})
	}
	for i, rb := range route.Links(l, r.curvature) {
		lk := l.Links[i]
		out.Links = append(out.Links, graph.Link{
			Index:  lk.Index,
			Source: lk.Source.ID,
			Target: lk.Target.ID,
			Value:  lk.Value,
			Zone:   zone.ClassifyLink(lk.Source.Column, lk.Target.Column, l.MaxColumn).String(),
			Path:   rb.Path(),
		})
	}
	return out
}

// Parse converts a wire layout back into a [layout.Layout]. Link endpoints
// are resolved by node ID; a link naming an unknown node is an error.
// Zones and paths in the wire form are ignored and recomputed on render.
func Parse(gl graph.Layout) (layout.Layout, error) {
	if gl.VizType != "" && gl.VizType != graph.VizTypeSankey {
		return layout.Layout{}, errors.New(errors.ErrCodeInvalidVizType,
			"cannot parse %q layout as sankey", gl.VizType)
	}

	l := layout.Layout{
		Width:         gl.Width,
		Height:        gl.Height,
		MaxColumn:     gl.MaxColumn,
		NodeWidth:     layout.DefaultNodeWidth,
		MinNodeHeight: layout.DefaultMinNodeHeight,
		Nodes:         make([]layout.Node, len(gl.Nodes)),
		Links:         make([]layout.Link, 0, len(gl.Links)),
	}
	if len(gl.Nodes) > 0 {
		l.NodeWidth = gl.Nodes[0].Width
	}

	index := make(map[int]int, len(gl.Nodes))
	for i, n := range gl.Nodes {
		l.Nodes[i] = layout.Node{
			ID:     n.ID,
			Label:  n.Label,
			Value:  n.Value,
			Column: n.Column,
			X:      n.X,
			Y:      n.Y,
			Width:  n.Width,
			Height: n.Height,
		}
		index[n.ID] = i
	}
	for _, lk := range gl.Links {
		si, ok1 := index[lk.Source]
		ti, ok2 := index[lk.Target]
		if !ok1 || !ok2 {
			return layout.Layout{}, errors.New(errors.ErrCodeInvalidInput,
				"link %d references unknown node", lk.Index)
		}
		l.Links = append(l.Links, layout.Link{
			Source: &l.Nodes[si],
			Target: &l.Nodes[ti],
			Value:  lk.Value,
			Index:  lk.Index,
		})
	}
	return l, nil
}

// RenderJSON exports l and serializes it as indented JSON.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	return graph.MarshalLayout(Export(l, opts...))
}
