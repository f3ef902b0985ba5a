package geo

import "math"

// Projection is a Natural Earth I projection with uniform scale and a
// translate offset. Projected y grows downward, as in SVG.
type Projection struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// ReferenceWidth and ReferenceHeight describe the frame the default map is
// laid out in. Exclusion zones are specified in this frame.
const (
	ReferenceWidth  = 400.0
	ReferenceHeight = 250.0
)

// NaturalEarth1 returns the raw projection of a point given in radians.
func NaturalEarth1(lambda, phi float64) (x, y float64) {
	phi2 := phi * phi
	phi4 := phi2 * phi2
	x = lambda * (0.8707 - 0.131979*phi2 + phi4*(-0.013791+phi4*(0.003971*phi2-0.001529*phi4)))
	y = phi * (1.007226 + phi2*(0.015085+phi4*(-0.044475+0.028874*phi2-0.005916*phi4)))
	return x, y
}

// sphereExtent is the raw half-width and half-height of the projected
// sphere. The widest point is the equator at the antimeridian and the
// tallest is the pole.
func sphereExtent() (hw, hh float64) {
	hw, _ = NaturalEarth1(math.Pi, 0)
	_, hh = NaturalEarth1(0, math.Pi/2)
	return hw, hh
}

// FitSize returns a projection that fits the whole sphere into a
// width x height frame, centered.
func FitSize(width, height float64) Projection {
	hw, hh := sphereExtent()
	k := math.Min(width/(2*hw), height/(2*hh))
	return Projection{Scale: k, TranslateX: width / 2, TranslateY: height / 2}
}

// Project maps longitude/latitude in degrees to frame coordinates.
func (p Projection) Project(lon, lat float64) (x, y float64) {
	rx, ry := NaturalEarth1(lon*math.Pi/180, lat*math.Pi/180)
	return p.TranslateX + p.Scale*rx, p.TranslateY - p.Scale*ry
}

// ProjectLonLat is a convenience wrapper around [Projection.Project].
func (p Projection) ProjectLonLat(ll LonLat) (x, y float64) {
	return p.Project(ll.Lon, ll.Lat)
}

// Rescale maps a point from the frame of ref into the frame of p. Both
// projections share the same raw coordinates, so the mapping is a uniform
// scale about the translate origin.
func (p Projection) Rescale(ref Projection, x, y float64) (float64, float64) {
	k := p.Scale / ref.Scale
	return p.TranslateX + (x-ref.TranslateX)*k, p.TranslateY + (y-ref.TranslateY)*k
}
