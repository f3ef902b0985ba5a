package pipeline

import (
	"github.com/matzehuels/refugeeflow/pkg/dataset"
	"github.com/matzehuels/refugeeflow/pkg/geo"
	"github.com/matzehuels/refugeeflow/pkg/layout/flow"
	"github.com/matzehuels/refugeeflow/pkg/layout/frames"
	"github.com/matzehuels/refugeeflow/pkg/layout/overview"
)

// Layout holds the computed layout of one kind. Exactly one of Map, Flow
// and Overview is set.
type Layout struct {
	Kind       string             `json:"kind"`
	Map        *frames.Result     `json:"map,omitempty"`
	Background *geo.Background    `json:"background,omitempty"`
	Flow       *flow.Diagram      `json:"flow,omitempty"`
	Overview   *overview.Overview `json:"overview,omitempty"`
}

// Value returns the layout of the set kind.
func (l Layout) Value() any {
	switch {
	case l.Map != nil:
		return *l.Map
	case l.Flow != nil:
		return *l.Flow
	case l.Overview != nil:
		return *l.Overview
	}
	return nil
}

// Empty reports whether there is nothing to draw besides the base map.
func (l Layout) Empty() bool {
	switch {
	case l.Map != nil:
		return l.Map.Empty()
	case l.Flow != nil:
		return l.Flow.Empty()
	case l.Overview != nil:
		return l.Overview.Empty()
	}
	return true
}

// Missing lists selected countries without a known centroid. Only map
// layouts drop countries.
func (l Layout) Missing() []string {
	if l.Map == nil {
		return nil
	}
	return l.Map.Missing
}

// GenerateLayout computes the layout for opts.Kind from scratch. geometry
// may be nil to use the built-in centroid table.
func GenerateLayout(ds *dataset.Dataset, geometry *geo.Geometry, opts Options) Layout {
	switch opts.Kind {
	case KindFlow:
		d := flow.Build(ds, opts.Regions, opts.Years(), opts.Flow)
		return Layout{Kind: KindFlow, Flow: &d}
	case KindOverview:
		o := overview.Build(ds)
		return Layout{Kind: KindOverview, Overview: &o}
	}

	adapter := geo.NewAdapter(geo.WithSize(opts.Width, opts.Height), geo.WithGeometry(geometry))
	res := frames.Build(ds, adapter, opts.Selection(),
		frames.WithObserver(opts.Observer),
		frames.WithIterations(opts.Iterations))
	bg := adapter.Background(opts.Observer)
	return Layout{Kind: KindMap, Map: &res, Background: &bg}
}
