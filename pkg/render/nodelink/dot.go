package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/moneyflow/pkg/flow"
	"github.com/matzehuels/moneyflow/pkg/flow/transform"
	"github.com/matzehuels/moneyflow/pkg/render"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/styles"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/zone"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the column, zone and total value to node labels.
	// When false, only the label is shown.
	Detailed bool
	// Currency is appended to edge values.
	Currency string
}

// ToDOT converts a flow graph to Graphviz DOT format for node-link
// visualization. Nodes of the same column share a rank, so the diagram reads
// left to right like the sankey view. Malformed links are skipped.
func ToDOT(g flow.Graph, opts Options) string {
	columns := transform.AssignColumns(g)
	maxColumn := transform.MaxColumn(columns)
	values := g.NodeValues()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=11, color=\"#555555\"];\n")
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ranks := make([][]int, maxColumn+1)
	for id := range g.NodeCount() {
		c := columns[id]
		ranks[c] = append(ranks[c], id)
		z := zone.ClassifyNode(c, maxColumn)
		label := fmtLabel(g.Labels[id], c, z, values[id], opts)
		fmt.Fprintf(&buf, "  %s [label=%q, fillcolor=%q];\n", nodeID(id), label, styles.ZoneColor(z))
	}

	buf.WriteString("\n")
	for c, ids := range ranks {
		if len(ids) < 2 {
			continue
		}
		names := make([]string, len(ids))
		for i, id := range ids {
			names[i] = nodeID(id)
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; } // column %d\n", strings.Join(names, "; "), c)
	}

	buf.WriteString("\n")
	for _, lk := range g.Links() {
		fmt.Fprintf(&buf, "  %s -> %s [label=%q];\n",
			nodeID(lk.Source), nodeID(lk.Target), styles.FormatValue(lk.Value, opts.Currency))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(id int) string { return "n" + strconv.Itoa(id) }

func fmtLabel(label string, column int, z zone.Zone, value float64, opts Options) string {
	if !opts.Detailed {
		return label
	}
	return fmt.Sprintf("%s\ncolumn: %d\nzone: %s\nvalue: %s",
		label, column, z, styles.FormatValue(value, opts.Currency))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based <svg> tag with a plain
// pixel one so the output scales like the sankey SVG.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
