package geo

import "math"

// Zone is a rotated rectangle symbols must not cover.
type Zone struct {
	CenterX         float64 `json:"center_x"`
	CenterY         float64 `json:"center_y"`
	HalfWidth       float64 `json:"half_width"`
	HalfHeight      float64 `json:"half_height"`
	RotationDegrees float64 `json:"rotation_degrees"`
}

// referenceZones are observer silhouettes in the reference frame.
var referenceZones = map[string]Zone{
	DefaultObserver: {CenterX: 100, CenterY: 76, HalfWidth: 30, HalfHeight: 15, RotationDegrees: 15},
}

// Local returns (x, y) in the zone's rotated frame, relative to its center.
func (z Zone) Local(x, y float64) (rx, ry float64) {
	a := -z.RotationDegrees * math.Pi / 180
	cos, sin := math.Cos(a), math.Sin(a)
	dx, dy := x-z.CenterX, y-z.CenterY
	return dx*cos - dy*sin, dx*sin + dy*cos
}

// Overlaps reports whether a circle at (x, y) with radius r intersects the
// zone's bounding box in the rotated frame.
func (z Zone) Overlaps(x, y, r float64) bool {
	rx, ry := z.Local(x, y)
	return rx+r > -z.HalfWidth && rx-r < z.HalfWidth &&
		ry+r > -z.HalfHeight && ry-r < z.HalfHeight
}

// Corners returns the four zone corners in frame coordinates, clockwise
// from the top-left.
func (z Zone) Corners() [4][2]float64 {
	a := z.RotationDegrees * math.Pi / 180
	cos, sin := math.Cos(a), math.Sin(a)
	local := [4][2]float64{
		{-z.HalfWidth, -z.HalfHeight},
		{z.HalfWidth, -z.HalfHeight},
		{z.HalfWidth, z.HalfHeight},
		{-z.HalfWidth, z.HalfHeight},
	}
	var out [4][2]float64
	for i, p := range local {
		out[i] = [2]float64{
			z.CenterX + p[0]*cos - p[1]*sin,
			z.CenterY + p[0]*sin + p[1]*cos,
		}
	}
	return out
}

func (z Zone) rescale(p, ref Projection) Zone {
	k := p.Scale / ref.Scale
	z.CenterX, z.CenterY = p.Rescale(ref, z.CenterX, z.CenterY)
	z.HalfWidth *= k
	z.HalfHeight *= k
	return z
}
