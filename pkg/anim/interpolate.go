package anim

import (
	"github.com/matzehuels/refugeeflow/pkg/layout/frames"
	"github.com/matzehuels/refugeeflow/pkg/layout/symbol"
)

// InterpolateFrame blends two frames at progress t. Nodes are matched by
// country. Entering nodes grow from radius 0 at their target position and
// leaving nodes shrink to 0 in place; leaving nodes follow the target's
// nodes in the output.
func InterpolateFrame(a, b frames.Frame, t float64) frames.Frame {
	t = min(max(t, 0), 1)
	out := frames.Frame{
		Year:  b.Year,
		Total: Lerp(a.Total, b.Total, t),
		Nodes: make([]symbol.Node, 0, len(b.Nodes)),
	}
	if t < 1 && a.Year != 0 {
		out.Year = a.Year
		if t >= 0.5 {
			out.Year = b.Year
		}
	}

	from := make(map[string]symbol.Node, len(a.Nodes))
	for _, n := range a.Nodes {
		from[n.Country] = n
	}
	seen := make(map[string]bool, len(b.Nodes))
	for _, n := range b.Nodes {
		seen[n.Country] = true
		start, ok := from[n.Country]
		if !ok {
			start = n
			start.Radius = 0
			start.Magnitude = 0
		}
		out.Nodes = append(out.Nodes, blend(start, n, t))
	}
	for _, n := range a.Nodes {
		if seen[n.Country] {
			continue
		}
		end := n
		end.Radius = 0
		end.Magnitude = 0
		out.Nodes = append(out.Nodes, blend(n, end, t))
	}
	return out
}

func blend(a, b symbol.Node, t float64) symbol.Node {
	n := b
	n.X = Lerp(a.X, b.X, t)
	n.Y = Lerp(a.Y, b.Y, t)
	n.Radius = Lerp(a.Radius, b.Radius, t)
	n.Magnitude = Lerp(a.Magnitude, b.Magnitude, t)
	if t < 0.5 {
		n.Suppressed = a.Suppressed
	}
	return n
}
