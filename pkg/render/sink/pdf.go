package sink

import "github.com/matzehuels/refugeeflow/pkg/render"

// RenderPDF converts a rendered SVG to a single-page PDF. SMIL animation is
// dropped, so callers render a static frame first.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(svg []byte) ([]byte, error) {
	return render.ToPDF(svg)
}
