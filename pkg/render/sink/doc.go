// Package sink renders map, flow and overview layouts to output formats.
//
// # SVG
//
// [RenderMapSVG] draws the base map (sphere, graticule, land and observer
// outline), one circle per country, the total label and, for multi-frame
// results, a year timeline. Multi-frame maps embed SMIL animations that
// cycle through the frames with the scheduler's cadence, so a single file
// replays the animation in any browser.
//
// [RenderFlowSVG] draws column nodes and cubic ribbons using each link's
// band offsets. [RenderOverviewSVG] draws stacked yearly bars by region.
//
// # Other Formats
//
// [RenderJSON] serializes any layout. [RenderPNG] and [RenderPDF] convert
// rendered SVG through [render.ToPNG] and [render.ToPDF].
//
// Region colors come from [region.Color]; a region outside the color domain
// is an error rather than a silent default.
//
// [render.ToPNG]: github.com/matzehuels/refugeeflow/pkg/render.ToPNG
// [render.ToPDF]: github.com/matzehuels/refugeeflow/pkg/render.ToPDF
// [region.Color]: github.com/matzehuels/refugeeflow/pkg/region.Color
package sink
