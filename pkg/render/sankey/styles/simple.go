package styles

import (
	"bytes"
	"fmt"
)

// Simple draws ribbons and nodes in flat zone colors.
type Simple struct{}

// RenderDefs implements Style. Simple needs no defs.
func (Simple) RenderDefs(*bytes.Buffer, []Ribbon) {}

// RenderRibbon implements Style.
func (Simple) RenderRibbon(buf *bytes.Buffer, r Ribbon) {
	renderRibbon(buf, r, ZoneColor(r.Zone))
}

// RenderNode implements Style.
func (Simple) RenderNode(buf *bytes.Buffer, n Node) {
	fmt.Fprintf(buf, `  <rect id="node-%d" class="node zone-%s" data-node="%d" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"`,
		n.ID, n.Zone, n.ID, n.X, n.Y, n.W, n.H, ZoneColor(n.Zone))
	closeWithTooltip(buf, "rect", n.Tooltip)
}

// RenderLabel implements Style.
func (Simple) RenderLabel(buf *bytes.Buffer, n Node) {
	renderLabel(buf, n, "#222")
}

func renderRibbon(buf *bytes.Buffer, r Ribbon, fill string) {
	fmt.Fprintf(buf, `  <path id="link-%d" class="link zone-%s" data-source="%d" data-target="%d" d="%s" fill="%s" fill-opacity="0.45"`,
		r.Index, r.Zone, r.SourceID, r.TargetID, r.Path, fill)
	closeWithTooltip(buf, "path", r.Tooltip)
	if r.ValueLabel != "" {
		fmt.Fprintf(buf, `  <text class="flow-value" data-link="%d" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-size="%.0f" fill="#111" opacity="0">%s</text>`+"\n",
			r.Index, r.MidX, r.MidY, FontSize-1, EscapeXML(r.ValueLabel))
	}
}

func renderLabel(buf *bytes.Buffer, n Node, color string) {
	fmt.Fprintf(buf, `  <text class="label" data-node="%d" x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="middle" font-size="%.0f" fill="%s">%s</text>`+"\n",
		n.ID, n.LabelX, n.LabelY, n.Anchor, FontSize, color, EscapeXML(n.Label))
}

func closeWithTooltip(buf *bytes.Buffer, tag, tooltip string) {
	if tooltip == "" {
		buf.WriteString("/>\n")
		return
	}
	fmt.Fprintf(buf, "><title>%s</title></%s>\n", EscapeXML(tooltip), tag)
}
