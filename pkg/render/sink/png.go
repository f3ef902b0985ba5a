package sink

import "github.com/matzehuels/refugeeflow/pkg/render"

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes a rendered SVG.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(svg []byte, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: render.DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}
	return render.ToPNG(svg, r.scale)
}
