package sink

import (
	"context"

	"github.com/matzehuels/moneyflow/pkg/render"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/layout"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG renders the layout as PNG via SVG conversion.
// Hover scripting is dropped since raster output cannot use it.
func RenderPNG(ctx context.Context, l layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	svg := RenderSVG(l, append(r.svgOpts[:len(r.svgOpts):len(r.svgOpts)], WithoutInteraction())...)
	return render.ToPNG(ctx, svg, r.scale)
}
