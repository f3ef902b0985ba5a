// Package geo maps country names to projected map anchors.
//
// An [Adapter] owns a Natural Earth I projection fitted to the map frame and
// a table of country centroids. It answers two questions for the layout
// engines:
//
//   - [Adapter.ProjectedPointFor]: where does a country's symbol start?
//   - [Adapter.ExclusionZoneFor]: which area must symbols stay clear of?
//
// Dataset country names are reconciled with geometry-source names through
// an alias table ([DefaultAliases]) before lookup. Countries that still have
// no centroid are not placed anywhere; [Adapter.Resolve] returns them as
// diagnostics so callers can log them.
//
// The centroid table comes from one of two places: the built-in table of
// approximate centroids ([BuiltinCentroids]), or a country-boundary GeoJSON
// FeatureCollection loaded with [LoadGeoJSON] or [Fetch]. Loaded geometry
// also supplies land outlines for [Adapter.Background].
//
// An Adapter is immutable after construction and safe for concurrent use.
package geo
