package sink

import (
	"context"

	"github.com/matzehuels/moneyflow/pkg/render"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/layout"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	svgOpts []SVGOption
}

// WithPDFSVGOptions passes options through to the underlying SVG renderer.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = opts }
}

// RenderPDF renders the layout as PDF via SVG conversion.
func RenderPDF(ctx context.Context, l layout.Layout, opts ...PDFOption) ([]byte, error) {
	var r pdfRenderer
	for _, opt := range opts {
		opt(&r)
	}
	svg := RenderSVG(l, append(r.svgOpts[:len(r.svgOpts):len(r.svgOpts)], WithoutInteraction())...)
	return render.ToPDF(ctx, svg)
}
