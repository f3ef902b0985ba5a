package geo

import (
	"maps"
	"slices"
)

// Point is a country's projected anchor before collision relaxation.
type Point struct {
	Country string  `json:"country"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// Adapter resolves country names to projected anchors and exclusion zones.
type Adapter struct {
	width, height float64
	proj          Projection
	aliases       map[string]string
	centroids     map[string]LonLat
	outlines      map[string][][][]float64
	points        map[string]Point
}

// Option configures an [Adapter].
type Option func(*Adapter)

// WithSize sets the map frame. The default is the reference frame.
func WithSize(width, height float64) Option {
	return func(a *Adapter) {
		if width > 0 && height > 0 {
			a.width, a.height = width, height
		}
	}
}

// WithAliases replaces the alias table.
func WithAliases(aliases map[string]string) Option {
	return func(a *Adapter) { a.aliases = cloneAliases(aliases) }
}

// WithCentroids replaces the centroid table.
func WithCentroids(c map[string]LonLat) Option {
	return func(a *Adapter) { a.centroids = maps.Clone(c) }
}

// WithGeometry uses centroids and outlines loaded from a boundary dataset.
func WithGeometry(g *Geometry) Option {
	return func(a *Adapter) {
		if g == nil {
			return
		}
		a.centroids = maps.Clone(g.Centroids)
		a.outlines = g.Outlines
	}
}

// NewAdapter builds the projected centroid table once. Later lookups are
// read-only.
func NewAdapter(opts ...Option) *Adapter {
	a := &Adapter{
		width:     ReferenceWidth,
		height:    ReferenceHeight,
		aliases:   cloneAliases(DefaultAliases),
		centroids: builtinCentroids,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.proj = FitSize(a.width, a.height)
	a.points = make(map[string]Point, len(a.centroids))
	for name, ll := range a.centroids {
		x, y := a.proj.ProjectLonLat(ll)
		a.points[name] = Point{Country: name, X: x, Y: y}
	}
	return a
}

// Size returns the frame dimensions.
func (a *Adapter) Size() (width, height float64) { return a.width, a.height }

// Projection returns the fitted projection.
func (a *Adapter) Projection() Projection { return a.proj }

// GeoName returns the geometry-source name used for a dataset country.
func (a *Adapter) GeoName(country string) string {
	return aliasIn(a.aliases, country)
}

// ProjectedPointFor returns the anchor for a dataset country name. The
// returned point carries the dataset name, not the geometry name.
func (a *Adapter) ProjectedPointFor(country string) (Point, bool) {
	p, ok := a.points[a.GeoName(country)]
	if !ok {
		return Point{}, false
	}
	p.Country = country
	return p, true
}

// ExclusionZoneFor returns the observer's silhouette in this adapter's
// frame. Observers without a known silhouette report false.
func (a *Adapter) ExclusionZoneFor(observer string) (Zone, bool) {
	z, ok := referenceZones[a.GeoName(observer)]
	if !ok {
		return Zone{}, false
	}
	return z.rescale(a.proj, FitSize(ReferenceWidth, ReferenceHeight)), true
}

// Resolve looks up every country once. Countries without geometry are
// returned in missing, deduplicated and sorted; they get no point.
func (a *Adapter) Resolve(countries []string) (points map[string]Point, missing []string) {
	points = make(map[string]Point, len(countries))
	seen := make(map[string]bool)
	for _, c := range countries {
		if _, done := points[c]; done {
			continue
		}
		if p, ok := a.ProjectedPointFor(c); ok {
			points[c] = p
			continue
		}
		if !seen[c] {
			seen[c] = true
			missing = append(missing, c)
		}
	}
	slices.Sort(missing)
	return points, missing
}

// Missing returns the countries that have no geometry, deduplicated and
// sorted.
func (a *Adapter) Missing(countries []string) []string {
	_, missing := a.Resolve(countries)
	return missing
}

// HasOutlines reports whether boundary polygons were loaded.
func (a *Adapter) HasOutlines() bool { return len(a.outlines) > 0 }

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
