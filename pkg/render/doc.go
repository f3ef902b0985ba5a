// Package render converts rendered SVG into raster and print formats.
//
// # Overview
//
// The visual outputs of this module are produced as SVG by the [sink]
// subpackage (map, flow and overview charts) and by the [nodelink]
// subpackage (the flow diagram as a Graphviz graph). This package turns any
// of that SVG into PNG or PDF through the external rsvg-convert tool:
//
//	svg, _ := sink.RenderMapSVG(result, background)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// rsvg-convert ships with librsvg: brew install librsvg (macOS),
// apt install librsvg2-bin (Linux).
//
// [sink]: github.com/matzehuels/refugeeflow/pkg/render/sink
// [nodelink]: github.com/matzehuels/refugeeflow/pkg/render/nodelink
package render
