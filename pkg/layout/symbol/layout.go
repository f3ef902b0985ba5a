package symbol

import "github.com/matzehuels/refugeeflow/pkg/geo"

// Option configures [Layout].
type Option func(*options)

type options struct {
	iterations int
}

// WithIterations overrides [DefaultIterations].
func WithIterations(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.iterations = n
		}
	}
}

// Layout builds one node per input, sized by scale, and relaxes them.
// Output order matches input order.
func Layout(inputs []Input, zone *geo.Zone, scale Scale, opts ...Option) []Node {
	o := options{iterations: DefaultIterations}
	for _, opt := range opts {
		opt(&o)
	}

	nodes := make([]Node, len(inputs))
	for i, in := range inputs {
		nodes[i] = Node{
			Country:    in.Country,
			Region:     in.Region,
			Magnitude:  in.Value.Magnitude,
			Suppressed: in.Value.Suppressed,
			AnchorX:    in.Anchor.X,
			AnchorY:    in.Anchor.Y,
			Radius:     scale.Radius(in.Value.Magnitude),
		}
	}
	return Relax(nodes, zone, o.iterations)
}
