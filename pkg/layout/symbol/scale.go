package symbol

import "math"

// MaxRadius is the radius of the largest magnitude in a scale's domain.
const MaxRadius = 30.0

// Scale maps a magnitude to a circle radius. Implementations must be
// monotonic non-decreasing with Radius(0) == 0.
type Scale interface {
	Radius(magnitude float64) float64
}

// SqrtScale is a square-root scale over [0, DomainMax] → [0, RangeMax].
// A zero domain maps every magnitude to radius 0.
type SqrtScale struct {
	DomainMax float64
	RangeMax  float64
}

// NewSqrtScale returns a square-root scale whose largest radius is [MaxRadius].
func NewSqrtScale(domainMax float64) SqrtScale {
	return SqrtScale{DomainMax: domainMax, RangeMax: MaxRadius}
}

// Radius implements [Scale]. Magnitudes beyond the domain extrapolate.
func (s SqrtScale) Radius(magnitude float64) float64 {
	if s.DomainMax <= 0 || magnitude <= 0 {
		return 0
	}
	return math.Sqrt(magnitude/s.DomainMax) * s.RangeMax
}

// ScaleFunc adapts a plain function to [Scale].
type ScaleFunc func(float64) float64

// Radius implements [Scale].
func (f ScaleFunc) Radius(magnitude float64) float64 { return f(magnitude) }
