package symbol

import (
	"math"

	"github.com/matzehuels/refugeeflow/pkg/geo"
)

// DefaultIterations is the number of solver ticks per frame.
const DefaultIterations = 300

const (
	alphaMin        = 0.001
	anchorStrength  = 0.5
	collideMargin   = 1.0
	collideStrength = 1.0
	zoneStrength    = 2.0
	velocityKeep    = 0.6
	coincidentNudge = 1e-6
)

// alphaDecay brings alpha from 1 to alphaMin in DefaultIterations ticks.
var alphaDecay = 1 - math.Pow(alphaMin, 1.0/DefaultIterations)

// Relax runs exactly iterations solver ticks and returns the relaxed nodes.
// The input slice is not modified. Each node starts at its anchor; a nil
// zone disables the exclusion force.
func Relax(nodes []Node, zone *geo.Zone, iterations int) []Node {
	if len(nodes) == 0 {
		return []Node{}
	}

	out := make([]Node, len(nodes))
	copy(out, nodes)
	for i := range out {
		out[i].X, out[i].Y = out[i].AnchorX, out[i].AnchorY
	}
	vx := make([]float64, len(out))
	vy := make([]float64, len(out))

	alpha := 1.0
	for range max(iterations, 0) {
		alpha -= alpha * alphaDecay
		applyAnchor(out, vx, vy, alpha)
		applyCollide(out, vx, vy)
		if zone != nil {
			applyZone(out, vx, vy, *zone)
		}
		for i := range out {
			vx[i] *= velocityKeep
			vy[i] *= velocityKeep
			out[i].X += vx[i]
			out[i].Y += vy[i]
		}
	}
	return out
}

func applyAnchor(nodes []Node, vx, vy []float64, alpha float64) {
	k := anchorStrength * alpha
	for i, n := range nodes {
		vx[i] += (n.AnchorX - n.X) * k
		vy[i] += (n.AnchorY - n.Y) * k
	}
}

// applyCollide resolves each pair once, on positions predicted one tick
// ahead. Velocity updates take effect immediately for later pairs.
func applyCollide(nodes []Node, vx, vy []float64) {
	for i := range nodes {
		ri := nodes[i].Radius
		ri2 := ri * ri
		xi := nodes[i].X + vx[i]
		yi := nodes[i].Y + vy[i]
		for j := i + 1; j < len(nodes); j++ {
			rj := nodes[j].Radius
			r := ri + rj + collideMargin
			x := xi - nodes[j].X - vx[j]
			y := yi - nodes[j].Y - vy[j]
			l := x*x + y*y
			if l >= r*r {
				continue
			}
			if x == 0 {
				x = nudge(i, j)
				l += x * x
			}
			if y == 0 {
				y = nudge(j, i)
				l += y * y
			}
			l = math.Sqrt(l)
			l = (r - l) / l * collideStrength
			x *= l
			y *= l

			rj2 := rj * rj
			w := 0.5
			if ri2+rj2 > 0 {
				w = rj2 / (ri2 + rj2)
			}
			vx[i] += x * w
			vy[i] += y * w
			vx[j] -= x * (1 - w)
			vy[j] -= y * (1 - w)
		}
	}
}

// nudge separates coincident centers by a tiny offset derived from the
// pair's indices.
func nudge(a, b int) float64 {
	if (a+b)%2 == 0 {
		return coincidentNudge * float64(b-a)
	}
	return -coincidentNudge * float64(b-a)
}

func applyZone(nodes []Node, vx, vy []float64, z geo.Zone) {
	for i, n := range nodes {
		if !z.Overlaps(n.X, n.Y, n.Radius) {
			continue
		}
		dx, dy := n.X-z.CenterX, n.Y-z.CenterY
		l := math.Hypot(dx, dy)
		if l == 0 {
			l = 1
		}
		vx[i] += dx / l * zoneStrength
		vy[i] += dy / l * zoneStrength
	}
}
