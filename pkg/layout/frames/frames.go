package frames

import (
	"github.com/matzehuels/refugeeflow/pkg/dataset"
	"github.com/matzehuels/refugeeflow/pkg/geo"
	"github.com/matzehuels/refugeeflow/pkg/layout/symbol"
)

// Frame is one year's relaxed symbols and their total.
type Frame struct {
	Year  int           `json:"year"`
	Nodes []symbol.Node `json:"nodes"`
	// Total sums non-suppressed magnitudes.
	Total float64 `json:"total"`
}

// Result is every frame of one selection.
type Result struct {
	Selection Selection `json:"selection"`
	Frames    []Frame   `json:"frames"`
	// Missing lists selected countries without geometry, sorted.
	Missing []string `json:"missing,omitempty"`
	// Zone is the exclusion zone the frames were relaxed against.
	Zone *geo.Zone `json:"zone,omitempty"`
	// MaxMagnitude is the scale domain shared by all frames.
	MaxMagnitude float64 `json:"max_magnitude"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
}

// Empty reports whether there is nothing to draw on top of the base map.
func (r Result) Empty() bool { return len(r.Frames) == 0 }

// Years returns the year of each frame in order.
func (r Result) Years() []int {
	out := make([]int, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.Year
	}
	return out
}

// Scale returns the radius scale the frames were built with.
func (r Result) Scale() symbol.SqrtScale { return symbol.NewSqrtScale(r.MaxMagnitude) }

// Option configures [Build].
type Option func(*options)

type options struct {
	observer   string
	iterations int
}

// WithObserver selects whose exclusion zone symbols avoid. Observers without
// a known silhouette disable the exclusion force.
func WithObserver(name string) Option {
	return func(o *options) { o.observer = name }
}

// WithIterations overrides the solver tick count.
func WithIterations(n int) Option {
	return func(o *options) { o.iterations = n }
}

// Build computes every frame of sel from scratch. Nothing is shared between
// calls or between frames of one call.
func Build(ds *dataset.Dataset, adapter *geo.Adapter, sel Selection, opts ...Option) Result {
	o := options{observer: geo.DefaultObserver, iterations: symbol.DefaultIterations}
	for _, opt := range opts {
		opt(&o)
	}

	width, height := adapter.Size()
	res := Result{Selection: sel, Width: width, Height: height}
	years := sel.Years()
	if len(sel.Regions) == 0 || len(years) == 0 {
		return res
	}

	rows, missing := anchored(ds.Filter(sel.Regions), adapter)
	res.Missing = missing
	if z, ok := adapter.ExclusionZoneFor(o.observer); ok {
		res.Zone = &z
	}

	values := make([][]dataset.Value, len(years))
	for i, year := range years {
		values[i] = make([]dataset.Value, len(rows))
		for j, r := range rows {
			v := r.record.Value(year)
			values[i][j] = v
			res.MaxMagnitude = max(res.MaxMagnitude, v.Magnitude)
		}
	}

	scale := res.Scale()
	res.Frames = make([]Frame, len(years))
	for i, year := range years {
		inputs := make([]symbol.Input, len(rows))
		for j, r := range rows {
			inputs[j] = symbol.Input{
				Country: r.record.Country,
				Region:  r.record.Region,
				Value:   values[i][j],
				Anchor:  r.anchor,
			}
		}
		nodes := symbol.Layout(inputs, res.Zone, scale, symbol.WithIterations(o.iterations))
		res.Frames[i] = Frame{Year: year, Nodes: nodes, Total: symbol.Total(nodes)}
	}
	return res
}

type anchoredRecord struct {
	record dataset.Record
	anchor geo.Point
}

// anchored keeps the first record per country that has geometry.
func anchored(records []dataset.Record, adapter *geo.Adapter) ([]anchoredRecord, []string) {
	countries := make([]string, len(records))
	for i, r := range records {
		countries[i] = r.Country
	}
	points, missing := adapter.Resolve(countries)

	out := make([]anchoredRecord, 0, len(points))
	seen := make(map[string]bool, len(points))
	for _, r := range records {
		p, ok := points[r.Country]
		if !ok || seen[r.Country] {
			continue
		}
		seen[r.Country] = true
		out = append(out, anchoredRecord{record: r, anchor: p})
	}
	return out, missing
}
