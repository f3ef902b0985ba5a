// Package nodelink renders a flow diagram as a Graphviz graph.
//
// The Sankey rendering in [sink] draws ribbons at exact pixel positions. A
// node-link view trades that geometry for Graphviz's own layout: each
// category of each year becomes a box, columns are pinned to the same rank,
// and links become edges whose pen width follows their value.
//
//	dot := nodelink.ToDOT(diagram, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// [sink]: github.com/matzehuels/refugeeflow/pkg/render/sink
package nodelink
