package styles

import (
	"bytes"
	"fmt"
)

// Gradient shades each ribbon from its source node's zone color to its
// target node's, so money visibly changes category as it flows.
type Gradient struct{}

// RenderDefs implements Style with one linearGradient per ribbon.
func (Gradient) RenderDefs(buf *bytes.Buffer, ribbons []Ribbon) {
	if len(ribbons) == 0 {
		return
	}
	buf.WriteString("  <defs>\n")
	for _, r := range ribbons {
		fmt.Fprintf(buf, `    <linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%.2f" x2="%.2f">`+"\n",
			gradientID(r), r.X0, r.X1)
		fmt.Fprintf(buf, `      <stop offset="0%%" stop-color="%s"/>`+"\n", ZoneColor(r.SourceZone))
		fmt.Fprintf(buf, `      <stop offset="100%%" stop-color="%s"/>`+"\n", ZoneColor(r.TargetZone))
		buf.WriteString("    </linearGradient>\n")
	}
	buf.WriteString("  </defs>\n")
}

// RenderRibbon implements Style.
func (Gradient) RenderRibbon(buf *bytes.Buffer, r Ribbon) {
	renderRibbon(buf, r, fmt.Sprintf("url(#%s)", gradientID(r)))
}

// RenderNode implements Style. Nodes get a darker outline than Simple.
func (Gradient) RenderNode(buf *bytes.Buffer, n Node) {
	fmt.Fprintf(buf, `  <rect id="node-%d" class="node zone-%s" data-node="%d" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="2" fill="%s" stroke="#111" stroke-opacity="0.4"`,
		n.ID, n.Zone, n.ID, n.X, n.Y, n.W, n.H, ZoneColor(n.Zone))
	closeWithTooltip(buf, "rect", n.Tooltip)
}

// RenderLabel implements Style.
func (Gradient) RenderLabel(buf *bytes.Buffer, n Node) {
	renderLabel(buf, n, "#111")
}

func gradientID(r Ribbon) string { return fmt.Sprintf("grad-%d", r.Index) }
