package geo

import (
	"io"
	"math"

	geojson "github.com/paulmach/go.geojson"

	"github.com/matzehuels/refugeeflow/pkg/errors"
)

// Geometry is the country table extracted from a boundary dataset.
type Geometry struct {
	// Centroids are keyed by the feature's name property.
	Centroids map[string]LonLat
	// Outlines holds every polygon ring of a country as [lon, lat] pairs.
	Outlines map[string][][][]float64
}

// nameProperties are tried in order to find a feature's country name.
var nameProperties = []string{"name", "NAME", "ADMIN", "admin"}

// LoadGeoJSON reads a FeatureCollection of country polygons. Features
// without a name or without polygonal geometry are skipped.
func LoadGeoJSON(r io.Reader) (*Geometry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read geometry")
	}
	return ParseGeoJSON(data)
}

// ParseGeoJSON is [LoadGeoJSON] for an in-memory document.
func ParseGeoJSON(data []byte) (*Geometry, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse geometry")
	}

	g := &Geometry{
		Centroids: make(map[string]LonLat),
		Outlines:  make(map[string][][][]float64),
	}
	for _, f := range fc.Features {
		name := featureName(f)
		if name == "" || f.Geometry == nil {
			continue
		}
		var polys [][][][]float64
		switch {
		case f.Geometry.IsPolygon():
			polys = [][][][]float64{f.Geometry.Polygon}
		case f.Geometry.IsMultiPolygon():
			polys = f.Geometry.MultiPolygon
		default:
			continue
		}
		c, ok := polygonCentroid(polys)
		if !ok {
			continue
		}
		g.Centroids[name] = c
		for _, p := range polys {
			g.Outlines[name] = append(g.Outlines[name], p...)
		}
	}
	if len(g.Centroids) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "geometry contains no named country polygons")
	}
	return g, nil
}

func featureName(f *geojson.Feature) string {
	for _, key := range nameProperties {
		if s, err := f.PropertyString(key); err == nil && s != "" {
			return s
		}
	}
	return ""
}

// polygonCentroid is the area-weighted centroid of every outer ring, in
// planar lon/lat. Degenerate rings fall back to the vertex mean.
func polygonCentroid(polys [][][][]float64) (LonLat, bool) {
	var area, cx, cy float64
	var sumX, sumY float64
	var n int
	for _, poly := range polys {
		if len(poly) == 0 {
			continue
		}
		ring := poly[0]
		for i := range ring {
			if len(ring[i]) < 2 {
				continue
			}
			sumX += ring[i][0]
			sumY += ring[i][1]
			n++
			j := (i + 1) % len(ring)
			if len(ring[j]) < 2 {
				continue
			}
			x0, y0 := ring[i][0], ring[i][1]
			x1, y1 := ring[j][0], ring[j][1]
			cross := x0*y1 - x1*y0
			area += cross
			cx += (x0 + x1) * cross
			cy += (y0 + y1) * cross
		}
	}
	if n == 0 {
		return LonLat{}, false
	}
	if math.Abs(area) < 1e-12 {
		return LonLat{Lon: sumX / float64(n), Lat: sumY / float64(n)}, true
	}
	area /= 2
	return LonLat{Lon: cx / (6 * area), Lat: cy / (6 * area)}, true
}
