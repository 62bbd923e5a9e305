package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/moneyflow/pkg/render/sankey/layout"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/route"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/styles"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/zone"
)

// labelGap is the distance between a node edge and its label.
const labelGap = 6.0

const flowInteractionCSS = `
    .link { transition: fill-opacity 0.2s ease; }
    .link.highlight { fill-opacity: 0.8; }
    .link.dim { fill-opacity: 0.1; }
    .node { transition: opacity 0.2s ease; }
    .node.dim, .label.dim { opacity: 0.35; }
    .flow-value { pointer-events: none; transition: opacity 0.2s ease; }
    .link:hover + .flow-value { opacity: 1; }`

const flowInteractionJS = `
    function connected(id) {
      return Array.from(document.querySelectorAll('.link'))
        .filter(l => l.dataset.source === id || l.dataset.target === id);
    }
    function highlight(id) {
      const links = connected(id);
      const nodes = new Set([id]);
      links.forEach(l => { nodes.add(l.dataset.source); nodes.add(l.dataset.target); });
      document.querySelectorAll('.link').forEach(l => {
        l.classList.toggle('highlight', links.includes(l));
        l.classList.toggle('dim', !links.includes(l));
      });
      document.querySelectorAll('.node, .label').forEach(n => n.classList.toggle('dim', !nodes.has(n.dataset.node)));
    }
    function clearHighlight() {
      document.querySelectorAll('.link, .node, .label').forEach(el => el.classList.remove('highlight', 'dim'));
    }
    document.querySelectorAll('.node').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.dataset.node));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	curvature   float64
	labels      bool
	tooltips    bool
	currency    string
	interactive bool
}

// WithStyle sets the visual style (default [styles.Simple]).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithCurvature sets the ribbon curvature (default [route.DefaultCurvature]).
func WithCurvature(c float64) SVGOption { return func(r *svgRenderer) { r.curvature = c } }

// WithLabels toggles node labels (default on).
func WithLabels(on bool) SVGOption { return func(r *svgRenderer) { r.labels = on } }

// WithTooltips adds <title> elements with labels and formatted values, and a
// value label at each ribbon's midpoint that shows while the ribbon is hovered.
func WithTooltips() SVGOption { return func(r *svgRenderer) { r.tooltips = true } }

// WithCurrency appends a currency code to tooltip values.
func WithCurrency(code string) SVGOption { return func(r *svgRenderer) { r.currency = code } }

// WithoutInteraction omits the hover CSS and script, for static exports.
func WithoutInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = false } }

// RenderSVG renders l as a standalone SVG document.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	ribbons := buildRibbons(l, r)
	nodes := buildNodes(l, r)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	r.style.RenderDefs(&buf, ribbons)
	for _, rb := range ribbons {
		r.style.RenderRibbon(&buf, rb)
	}
	for _, n := range nodes {
		r.style.RenderNode(&buf, n)
	}
	if r.labels {
		for _, n := range nodes {
			r.style.RenderLabel(&buf, n)
		}
	}
	if r.interactive {
		renderFlowInteraction(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		style:       styles.Simple{},
		curvature:   route.DefaultCurvature,
		labels:      true,
		interactive: true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderFlowInteraction(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", flowInteractionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", flowInteractionJS)
}

func buildNodes(l layout.Layout, r svgRenderer) []styles.Node {
	nodes := make([]styles.Node, 0, len(l.Nodes))
	for _, n := range l.Nodes {
		sn := styles.Node{
			ID:    n.ID,
			Label: styles.FitLabel(n.Label, l.Width),
			Zone:  zone.ClassifyNode(n.Column, l.MaxColumn),
			X:     n.X, Y: n.Y,
			W: n.Width, H: n.Height,
			LabelY: n.CenterY(),
		}
		placeLabel(&sn, n, l.Width, l.MaxColumn > 0 && n.Column == l.MaxColumn)
		if r.tooltips {
			sn.Tooltip = fmt.Sprintf("%s: %s", n.Label, styles.FormatValue(n.Value, r.currency))
		}
		nodes = append(nodes, sn)
	}
	return nodes
}

// placeLabel puts the label right of the node, or left of it for the last
// column. A label that would cross the canvas edge on its preferred side moves
// to the other side when it fits there.
func placeLabel(sn *styles.Node, n layout.Node, width float64, left bool) {
	w := styles.TextWidth(sn.Label)
	rightX, leftX := n.Right()+labelGap, n.X-labelGap
	if left && leftX-w < 0 && rightX+w <= width {
		left = false
	} else if !left && rightX+w > width && leftX-w >= 0 {
		left = true
	}
	if left {
		sn.LabelX, sn.Anchor = leftX, "end"
		return
	}
	sn.LabelX, sn.Anchor = rightX, "start"
}

func buildRibbons(l layout.Layout, r svgRenderer) []styles.Ribbon {
	routed := route.Links(l, r.curvature)
	ribbons := make([]styles.Ribbon, len(routed))
	for i, rt := range routed {
		lk := l.Links[i]
		sc, tc := lk.Source.Column, lk.Target.Column
		ribbons[i] = styles.Ribbon{
			Index:      rt.Index,
			SourceID:   lk.Source.ID,
			TargetID:   lk.Target.ID,
			Path:       rt.Path(),
			Zone:       zone.ClassifyLink(sc, tc, l.MaxColumn),
			SourceZone: zone.ClassifyNode(sc, l.MaxColumn),
			TargetZone: zone.ClassifyNode(tc, l.MaxColumn),
			X0:         rt.Start.X,
			X1:         rt.End.X,
		}
		if r.tooltips {
			v := styles.FormatValue(lk.Value, r.currency)
			mid := rt.Midpoint()
			ribbons[i].Tooltip = fmt.Sprintf("%s → %s: %s", lk.Source.Label, lk.Target.Label, v)
			ribbons[i].ValueLabel = v
			ribbons[i].MidX, ribbons[i].MidY = mid.X, mid.Y
		}
	}
	return ribbons
}
